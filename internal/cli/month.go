package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/synaxaire-program/internal/calendar"
	"github.com/zapponejosh/synaxaire-program/internal/program"
)

func newMonthCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "month <year> <month>",
		Short: "Print the resolved days of a Gregorian month",
		Long: `Month prints one line per day of a Gregorian month with its Coptic date,
the scheduled service and the number of commemorations.

Example:
  synaxaire month 2024 1
  synaxaire month 2024 1 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			year, err := strconv.Atoi(args[0])
			if err != nil {
				return &program.ValidationError{Field: "year", Message: fmt.Sprintf("%q is not a number", args[0])}
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return &program.ValidationError{Field: "month", Message: fmt.Sprintf("%q is not a number", args[1])}
			}

			if err := program.ValidateMonth(year, month); err != nil {
				return err
			}

			resolver, err := a.resolver(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			days, err := resolver.Resolve(year, month)
			if err != nil {
				return err
			}

			if format != formatText {
				return writeStructured(cmd.OutOrStdout(), format, days)
			}
			return writeDays(cmd.OutOrStdout(), days)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func writeDays(w io.Writer, days []program.ResolvedDay) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tJOUR\tCOPTE\tHEURE\tEVENEMENT\tSYNAXAIRE")
	for _, d := range days {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			d.Gregorian,
			calendar.FrenchWeekday(d.Weekday),
			d.Coptic,
			d.ScheduleTime,
			strings.ReplaceAll(d.ScheduleEvent, "\n", " / "),
			d.Commemorations.Count(),
		)
	}
	return tw.Flush()
}
