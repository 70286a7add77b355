// Command import loads the Synaxarium and weekly schedule CSV files into the
// SQLite database used when DATA_SOURCE=sqlite.
//
// Usage:
//
//	go run ./cmd/import -commemorations data/synaxaire.csv -schedule data/church_schedule.csv -db data/synaxaire.db
//
// This tool:
// 1. Parses both CSV files (any malformed row aborts the import)
// 2. Creates/opens the SQLite database
// 3. Runs migrations to ensure schema is current
// 4. Replaces the contents of both tables in a single transaction
//
// The import is idempotent: running it twice leaves the same rows.
// Pass an empty path to leave that table untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/synaxaire-program/internal/database"
	"github.com/zapponejosh/synaxaire-program/internal/synaxaire"
)

func main() {
	// Parse command line flags
	commemorationsPath := flag.String("commemorations", "data/synaxaire.csv", "Path to the Synaxarium CSV file")
	schedulePath := flag.String("schedule", "data/church_schedule.csv", "Path to the weekly schedule CSV file")
	dbPath := flag.String("db", "data/synaxaire.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Run import
	if err := run(*commemorationsPath, *schedulePath, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(commemorationsPath, schedulePath, dbPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse CSV files
	// =========================================================================
	var (
		records []synaxaire.Commemoration
		entries []synaxaire.ScheduleEntry
		err     error
	)

	if commemorationsPath != "" {
		logger.Info("reading commemorations", slog.String("path", commemorationsPath))
		records, err = synaxaire.LoadCommemorationsCSV(commemorationsPath)
		if err != nil {
			return err
		}
		if records == nil {
			records = []synaxaire.Commemoration{}
		}
	}

	if schedulePath != "" {
		logger.Info("reading schedule", slog.String("path", schedulePath))
		entries, err = synaxaire.LoadScheduleCSV(schedulePath)
		if err != nil {
			return err
		}
		// reject duplicate or out-of-range weekdays before touching the database
		if _, err := synaxaire.NewScheduleTable(entries); err != nil {
			return fmt.Errorf("schedule %s: %w", schedulePath, err)
		}
		if entries == nil {
			entries = []synaxaire.ScheduleEntry{}
		}
	}

	logger.Info("parsed CSV files",
		slog.Int("commemorations", len(records)),
		slog.Int("schedule_days", len(entries)),
	)

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import data in a transaction
	// =========================================================================
	logger.Info("starting import")

	stats, err := db.ReplaceTables(ctx, records, entries)
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	count, err := db.CountCommemorations(ctx)
	if err != nil {
		return fmt.Errorf("count commemorations: %w", err)
	}

	schedule, err := db.ListSchedule(ctx)
	if err != nil {
		return fmt.Errorf("list schedule: %w", err)
	}

	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("commemorations", count),
		slog.Int("schedule_days", len(schedule)),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Commemorations imported: %d\n", stats.Commemorations)
	fmt.Printf("Schedule days imported:  %d\n", stats.ScheduleDays)
	fmt.Printf("Commemorations in db:    %d\n", count)
	fmt.Printf("Schedule days in db:     %d\n", len(schedule))
	fmt.Printf("Time elapsed:            %v\n", elapsed.Round(time.Millisecond))

	return nil
}
