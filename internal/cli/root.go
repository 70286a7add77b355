// Package cli implements the synaxaire command-line tool, which resolves
// and renders monthly programs locally from the same tables as the server.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zapponejosh/synaxaire-program/internal/config"
	"github.com/zapponejosh/synaxaire-program/internal/database"
	"github.com/zapponejosh/synaxaire-program/internal/logger"
	"github.com/zapponejosh/synaxaire-program/internal/program"
)

// Version is set at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// settings keys shared by flags, environment and config file
const (
	keyDataSource     = "data_source"
	keyCommemorations = "commemorations_path"
	keySchedule       = "schedule_path"
	keyDatabase       = "database_path"
	keyVerbose        = "verbose"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds a fresh command tree with its own settings.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "synaxaire",
		Short: "Coptic monthly program generator",
		Long: `synaxaire builds the monthly program of a Coptic church: every day of a
Gregorian month with its Coptic date, the commemorations of the Synaxarium
and the recurring weekly schedule.

Tables are read from CSV files or from the SQLite database filled by the
import command. The same environment variables as the server apply
(DATA_SOURCE, COMMEMORATIONS_PATH, SCHEDULE_PATH, DATABASE_PATH).`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	flags.String("data-source", config.SourceCSV, "table source: csv or sqlite")
	flags.String("commemorations", "./data/synaxaire.csv", "Synaxarium CSV file")
	flags.String("schedule", "./data/church_schedule.csv", "weekly schedule CSV file")
	flags.String("db", "./data/synaxaire.db", "SQLite database")
	flags.BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = a.v.BindPFlag(keyDataSource, flags.Lookup("data-source"))
	_ = a.v.BindPFlag(keyCommemorations, flags.Lookup("commemorations"))
	_ = a.v.BindPFlag(keySchedule, flags.Lookup("schedule"))
	_ = a.v.BindPFlag(keyDatabase, flags.Lookup("db"))
	_ = a.v.BindPFlag(keyVerbose, flags.Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(
		newGenerateCmd(a),
		newLookupCmd(a),
		newMonthCmd(a),
		newCoverageCmd(a),
		newConvertCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// initConfig reads the optional config file and environment variables.
// Flags set on the command line win over both.
func (a *app) initConfig() error {
	for _, key := range []string{keyDataSource, keyCommemorations, keySchedule, keyDatabase} {
		// server variable names, without a prefix
		_ = a.v.BindEnv(key, envName(key))
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	}
	return nil
}

func envName(key string) string {
	switch key {
	case keyDataSource:
		return "DATA_SOURCE"
	case keyCommemorations:
		return "COMMEMORATIONS_PATH"
	case keySchedule:
		return "SCHEDULE_PATH"
	case keyDatabase:
		return "DATABASE_PATH"
	}
	return ""
}

// logger writes diagnostics to stderr so stdout only carries results.
func (a *app) logger(w io.Writer) *slog.Logger {
	level := "warn"
	if a.v.GetBool(keyVerbose) {
		level = "debug"
	}
	return logger.New(w, level, "text")
}

// resolver loads the tables and returns a resolver over them. Load
// problems are reported on stderr and leave the tables empty.
func (a *app) resolver(ctx context.Context, stderr io.Writer) (*program.Resolver, error) {
	cfg := &config.Config{
		DataSource:         a.v.GetString(keyDataSource),
		CommemorationsPath: a.v.GetString(keyCommemorations),
		SchedulePath:       a.v.GetString(keySchedule),
		DatabasePath:       a.v.GetString(keyDatabase),
	}

	tables, db, err := database.LoadTables(ctx, cfg, a.logger(stderr))
	if err != nil {
		return nil, err
	}
	if db != nil {
		// tables are fully in memory once loaded
		db.Close()
	}

	for _, w := range tables.Warnings {
		fmt.Fprintf(stderr, "warning: %v\n", w)
	}

	return program.NewResolver(tables.Commemorations, tables.Schedule), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "synaxaire %s\n", Version)
		},
	}
}
