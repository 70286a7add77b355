package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zapponejosh/synaxaire-program/internal/synaxaire"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// Commemorations
// =============================================================================

// InsertCommemoration stores one Synaxarium entry within the transaction
// and returns its row id.
func (tx *Tx) InsertCommemoration(ctx context.Context, c synaxaire.Commemoration) (int64, error) {
	return insertCommemoration(ctx, tx.Tx, c)
}

func insertCommemoration(ctx context.Context, q querier, c synaxaire.Commemoration) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO commemorations (coptic_month, coptic_day, month_name, description, category, is_martyr)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.CopticMonth, c.CopticDay, c.MonthName, c.Description, string(c.Category), boolToInt(c.IsMartyr))
	if err != nil {
		return 0, fmt.Errorf("insert commemoration %d/%d: %w", c.CopticMonth, c.CopticDay, err)
	}
	return res.LastInsertId()
}

// ClearCommemorations removes every Synaxarium entry.
func (tx *Tx) ClearCommemorations(ctx context.Context) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM commemorations"); err != nil {
		return fmt.Errorf("clear commemorations: %w", err)
	}
	return nil
}

// ListCommemorations returns all entries ordered by Coptic date, keeping
// insertion order within a day.
func (db *DB) ListCommemorations(ctx context.Context) ([]synaxaire.Commemoration, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT coptic_month, coptic_day, month_name, description, category, is_martyr
		FROM commemorations
		ORDER BY coptic_month, coptic_day, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query commemorations: %w", err)
	}
	defer rows.Close()

	var out []synaxaire.Commemoration
	for rows.Next() {
		var c synaxaire.Commemoration
		var category string
		var martyr int
		if err := rows.Scan(&c.CopticMonth, &c.CopticDay, &c.MonthName, &c.Description, &category, &martyr); err != nil {
			return nil, fmt.Errorf("scan commemoration: %w", err)
		}
		c.Category = synaxaire.Category(category)
		c.IsMartyr = martyr == 1
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commemorations: %w", err)
	}

	return out, nil
}

// CountCommemorations returns the number of stored entries.
func (db *DB) CountCommemorations(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM commemorations").Scan(&n); err != nil {
		return 0, fmt.Errorf("count commemorations: %w", err)
	}
	return n, nil
}

// =============================================================================
// Weekly schedule
// =============================================================================

// UpsertScheduleEntry stores the recurring event of a weekday within the
// transaction, replacing any previous one.
func (tx *Tx) UpsertScheduleEntry(ctx context.Context, e synaxaire.ScheduleEntry) error {
	return upsertScheduleEntry(ctx, tx.Tx, e)
}

func upsertScheduleEntry(ctx context.Context, q querier, e synaxaire.ScheduleEntry) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO weekly_schedule (weekday, time, event)
		VALUES (?, ?, ?)
		ON CONFLICT(weekday) DO UPDATE SET
			time = excluded.time,
			event = excluded.event,
			updated_at = datetime('now')
	`, e.Weekday, e.Time, e.Event)
	if err != nil {
		return fmt.Errorf("upsert schedule weekday %d: %w", e.Weekday, err)
	}
	return nil
}

// ClearSchedule removes every weekly entry.
func (tx *Tx) ClearSchedule(ctx context.Context) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM weekly_schedule"); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	return nil
}

// ListSchedule returns all weekly entries ordered by weekday.
func (db *DB) ListSchedule(ctx context.Context) ([]synaxaire.ScheduleEntry, error) {
	rows, err := db.QueryContext(ctx, "SELECT weekday, time, event FROM weekly_schedule ORDER BY weekday")
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var out []synaxaire.ScheduleEntry
	for rows.Next() {
		var e synaxaire.ScheduleEntry
		if err := rows.Scan(&e.Weekday, &e.Time, &e.Event); err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule: %w", err)
	}

	return out, nil
}

// =============================================================================
// synaxaire.Source
// =============================================================================

// Name identifies the store in load reports.
func (db *DB) Name() string {
	return "sqlite:" + db.path
}

// Commemorations implements synaxaire.Source. A table without rows is
// reported as ErrNotFound so the caller sees the database was never
// imported.
func (db *DB) Commemorations(ctx context.Context) ([]synaxaire.Commemoration, error) {
	records, err := db.ListCommemorations(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("commemorations table is empty: %w", ErrNotFound)
	}
	return records, nil
}

// Schedule implements synaxaire.Source.
func (db *DB) Schedule(ctx context.Context) ([]synaxaire.ScheduleEntry, error) {
	return db.ListSchedule(ctx)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
