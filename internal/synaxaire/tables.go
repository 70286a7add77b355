package synaxaire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Table names used in load errors and logs.
const (
	TableCommemorations = "commemorations"
	TableSchedule       = "weekly_schedule"
)

// DataLoadError reports that a source table could not be loaded.
type DataLoadError struct {
	Table  string
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Table, e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// Source supplies the raw rows of both tables.
type Source interface {
	Name() string
	Commemorations(ctx context.Context) ([]Commemoration, error)
	Schedule(ctx context.Context) ([]ScheduleEntry, error)
}

// CSVSource reads both tables from CSV files.
type CSVSource struct {
	CommemorationsPath string
	SchedulePath       string
}

func (s CSVSource) Name() string {
	return "csv"
}

func (s CSVSource) Commemorations(ctx context.Context) ([]Commemoration, error) {
	return LoadCommemorationsCSV(s.CommemorationsPath)
}

func (s CSVSource) Schedule(ctx context.Context) ([]ScheduleEntry, error) {
	return LoadScheduleCSV(s.SchedulePath)
}

// Tables is the immutable pair of lookup tables built once at startup.
// Warnings lists the load failures that left a table empty.
type Tables struct {
	Commemorations *CommemorationTable
	Schedule       *ScheduleTable
	Warnings       []error
}

// Degraded reports whether any table failed to load.
func (t *Tables) Degraded() bool {
	return len(t.Warnings) > 0
}

// LoadTables builds both tables from src. A table that fails to load is
// replaced by an empty one and the failure is logged and kept in Warnings,
// so the service stays available with "no data" lookups.
func LoadTables(ctx context.Context, src Source, logger *slog.Logger) *Tables {
	if logger == nil {
		logger = slog.Default()
	}

	tables := &Tables{
		Commemorations: NewCommemorationTable(nil),
		Schedule:       EmptySchedule(),
	}

	records, err := src.Commemorations(ctx)
	if err != nil {
		tables.warn(logger, asLoadError(TableCommemorations, src.Name(), err))
	} else {
		tables.Commemorations = NewCommemorationTable(records)
	}

	entries, err := src.Schedule(ctx)
	if err == nil {
		var schedule *ScheduleTable
		schedule, err = NewScheduleTable(entries)
		if err == nil {
			tables.Schedule = schedule
		}
	}
	if err != nil {
		tables.warn(logger, asLoadError(TableSchedule, src.Name(), err))
	}

	logger.Info("lookup tables loaded",
		slog.String("source", src.Name()),
		slog.Int("commemorations", tables.Commemorations.Len()),
		slog.Int("schedule_days", tables.Schedule.Len()),
		slog.Bool("degraded", tables.Degraded()),
	)

	return tables
}

func (t *Tables) warn(logger *slog.Logger, err *DataLoadError) {
	logger.Warn("table failed to load, continuing with empty table",
		slog.String("table", err.Table),
		slog.String("source", err.Source),
		slog.Any("error", err.Err),
	)
	t.Warnings = append(t.Warnings, err)
}

func asLoadError(table, source string, err error) *DataLoadError {
	var loadErr *DataLoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return &DataLoadError{Table: table, Source: source, Err: err}
}
