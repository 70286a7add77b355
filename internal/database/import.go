package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zapponejosh/synaxaire-program/internal/synaxaire"
)

// ImportStats counts the rows written by ReplaceTables.
type ImportStats struct {
	Commemorations int
	ScheduleDays   int
}

// ReplaceTables replaces the contents of both tables in one transaction.
// Either table may be nil to leave it untouched.
func (db *DB) ReplaceTables(ctx context.Context, records []synaxaire.Commemoration, entries []synaxaire.ScheduleEntry) (ImportStats, error) {
	var stats ImportStats

	err := db.WithTx(ctx, func(tx *Tx) error {
		if records != nil {
			if err := tx.ClearCommemorations(ctx); err != nil {
				return err
			}
			for i, c := range records {
				if _, err := tx.InsertCommemoration(ctx, c); err != nil {
					return fmt.Errorf("row %d: %w", i+1, err)
				}
				stats.Commemorations++

				if (i+1)%100 == 0 {
					db.logger.Debug("import progress",
						slog.Int("row", i+1),
						slog.Int("total", len(records)),
					)
				}
			}
		}

		if entries != nil {
			if err := tx.ClearSchedule(ctx); err != nil {
				return err
			}
			for _, e := range entries {
				if err := tx.UpsertScheduleEntry(ctx, e); err != nil {
					return err
				}
				stats.ScheduleDays++
			}
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, fmt.Errorf("replace tables: %w", err)
	}

	return stats, nil
}
