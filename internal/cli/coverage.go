package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/synaxaire-program/internal/program"
)

// ErrCoverageGaps is returned by coverage --strict when days are missing.
var ErrCoverageGaps = errors.New("commemorations table has missing days")

func newCoverageCmd(a *app) *cobra.Command {
	var (
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Report Coptic days without any commemoration",
		Long: `Coverage checks every day of the Coptic year against the commemorations
table and lists the days that would print an empty Synaxaire cell.

Example:
  synaxaire coverage
  synaxaire coverage --strict   # exit non-zero when any day is missing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			resolver, err := a.resolver(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			report := resolver.Coverage()

			if format != formatText {
				if err := writeStructured(cmd.OutOrStdout(), format, report); err != nil {
					return err
				}
			} else {
				writeCoverage(cmd.OutOrStdout(), report)
			}

			if strict && report.Missing() > 0 {
				return ErrCoverageGaps
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any day has no commemoration")
	return cmd
}

func writeCoverage(w io.Writer, r *program.CoverageReport) {
	pct := func(n, total int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total) * 100
	}

	fmt.Fprintf(w, "Coptic days:     %d\n", r.TotalDays)
	fmt.Fprintf(w, "Commemorations:  %d\n", r.Records)
	fmt.Fprintf(w, "Covered days:    %d (%.1f%%)\n", r.Covered, pct(r.Covered, r.TotalDays))
	fmt.Fprintf(w, "Missing days:    %d\n", r.Missing())
	fmt.Fprintln(w)

	for _, m := range r.Months {
		status := "ok"
		if len(m.Missing) > 0 {
			status = "--"
		}
		fmt.Fprintf(w, "  %s %-11s %2d/%2d", status, m.Name, m.Covered, m.Days)
		if len(m.Missing) > 0 && len(m.Missing) < m.Days {
			fmt.Fprintf(w, "  missing %s", dayRanges(m.Missing))
		}
		fmt.Fprintln(w)
	}
}

// dayRanges compacts sorted days: [1 2 3 7 9 10] -> "1-3, 7, 9-10".
func dayRanges(days []int) string {
	out := ""
	for i := 0; i < len(days); {
		j := i
		for j+1 < len(days) && days[j+1] == days[j]+1 {
			j++
		}
		if out != "" {
			out += ", "
		}
		if i == j {
			out += fmt.Sprintf("%d", days[i])
		} else {
			out += fmt.Sprintf("%d-%d", days[i], days[j])
		}
		i = j + 1
	}
	return out
}
