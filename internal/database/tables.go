package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/zapponejosh/synaxaire-program/internal/config"
	"github.com/zapponejosh/synaxaire-program/internal/synaxaire"
)

// LoadTables builds the lookup tables from the configured source. For the
// sqlite source the opened database is returned so the caller can health
// check and close it; for csv, or when the database file does not exist,
// it is nil. Missing, empty or malformed table data degrades to empty
// tables and is never an error here; only failing to open an existing
// database is.
func LoadTables(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*synaxaire.Tables, *DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DataSource {
	case config.SourceSQLite:
		if cfg.DatabasePath != ":memory:" {
			if _, err := os.Stat(cfg.DatabasePath); errors.Is(err, fs.ErrNotExist) {
				// Opening would create and migrate an empty database.
				src := missingDatabase{path: cfg.DatabasePath, err: err}
				return synaxaire.LoadTables(ctx, src, logger), nil, nil
			}
		}

		db, err := Open(DefaultConfig(cfg.DatabasePath), logger)
		if err != nil {
			return nil, nil, err
		}
		if _, err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		tables := synaxaire.LoadTables(ctx, db, logger)
		for _, w := range tables.Warnings {
			var loadErr *synaxaire.DataLoadError
			if IsNotFound(w) && errors.As(w, &loadErr) {
				logger.Warn("database has no table data, run the import command to load it",
					slog.String("path", cfg.DatabasePath),
					slog.String("table", loadErr.Table),
				)
			}
		}
		return tables, db, nil

	case config.SourceCSV, "":
		src := synaxaire.CSVSource{
			CommemorationsPath: cfg.CommemorationsPath,
			SchedulePath:       cfg.SchedulePath,
		}
		return synaxaire.LoadTables(ctx, src, logger), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}

// missingDatabase is the source used when the database file is absent.
// Both tables fail with the stat error.
type missingDatabase struct {
	path string
	err  error
}

func (m missingDatabase) Name() string { return "sqlite:" + m.path }

func (m missingDatabase) Commemorations(context.Context) ([]synaxaire.Commemoration, error) {
	return nil, fmt.Errorf("database file missing: %w", m.err)
}

func (m missingDatabase) Schedule(context.Context) ([]synaxaire.ScheduleEntry, error) {
	return nil, fmt.Errorf("database file missing: %w", m.err)
}
