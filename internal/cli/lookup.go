package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/synaxaire-program/internal/program"
	"github.com/zapponejosh/synaxaire-program/internal/render"
)

func newLookupCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lookup <coptic-month> [coptic-day]",
		Short: "Show the commemorations of a Coptic day or month",
		Long: `Lookup prints the Synaxarium entries of a Coptic (month, day), grouped the
way they appear in the program. With only a month it prints every
commemorated day of that month.

Example:
  synaxaire lookup 4 29
  synaxaire lookup 4
  synaxaire lookup 13 6 --format yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			month, err := strconv.Atoi(args[0])
			if err != nil {
				return &program.ValidationError{Field: "month", Message: fmt.Sprintf("%q is not a number", args[0])}
			}
			day := 0
			if len(args) == 2 {
				day, err = strconv.Atoi(args[1])
				if err != nil {
					return &program.ValidationError{Field: "day", Message: fmt.Sprintf("%q is not a number", args[1])}
				}
			}

			resolver, err := a.resolver(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				entries, err := resolver.LookupMonth(month)
				if err != nil {
					return err
				}
				if format != formatText {
					return writeStructured(cmd.OutOrStdout(), format, entries)
				}
				writeMonthEntries(cmd.OutOrStdout(), entries)
				return nil
			}

			entries, err := resolver.Lookup(month, day)
			if err != nil {
				return err
			}

			if format != formatText {
				return writeStructured(cmd.OutOrStdout(), format, entries)
			}
			writeEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func writeEntries(w io.Writer, e *program.DayEntries) {
	fmt.Fprintf(w, "%d %s\n", e.Day, e.MonthName)
	sections := e.Commemorations.Sections()
	if len(sections) == 0 {
		fmt.Fprintln(w, "  (no commemorations)")
		return
	}
	for _, s := range sections {
		fmt.Fprintf(w, "  %s\n", render.BucketLabel(s.Bucket))
		for _, item := range s.Items {
			fmt.Fprintf(w, "    - %s\n", item)
		}
	}
}

func writeMonthEntries(w io.Writer, m *program.MonthEntries) {
	if len(m.Days) == 0 {
		fmt.Fprintf(w, "%s: no commemorations\n", m.MonthName)
		return
	}
	for i := range m.Days {
		writeEntries(w, &m.Days[i])
	}
}
