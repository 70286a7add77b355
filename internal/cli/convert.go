package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/synaxaire-program/internal/calendar"
	"github.com/zapponejosh/synaxaire-program/internal/program"
)

// ConvertedDate is one Gregorian date with its Coptic equivalent.
type ConvertedDate struct {
	Gregorian   string              `json:"gregorian" yaml:"gregorian"`
	Label       string              `json:"label" yaml:"label"`
	Coptic      calendar.CopticDate `json:"coptic" yaml:"coptic"`
	CopticLabel string              `json:"coptic_label" yaml:"coptic_label"`
	NasieDays   int                 `json:"nasie_days" yaml:"nasie_days"`
}

func newConvertCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert <YYYY-MM-DD>...",
		Short: "Convert Gregorian dates to the Coptic calendar",
		Long: `Convert prints the Coptic date of each Gregorian date, with the length of
Nasie in that Coptic year. It needs no table data.

Example:
  synaxaire convert 2024-01-07
  synaxaire convert 2023-09-11 2023-09-12 -f json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			dates := make([]ConvertedDate, 0, len(args))
			for _, arg := range args {
				d, err := convertDate(arg)
				if err != nil {
					return err
				}
				dates = append(dates, d)
			}

			if format != formatText {
				return writeStructured(cmd.OutOrStdout(), format, dates)
			}
			writeConverted(cmd.OutOrStdout(), dates)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func convertDate(s string) (ConvertedDate, error) {
	t, err := calendar.ParseDateString(s)
	if err != nil {
		return ConvertedDate{}, &program.ValidationError{Field: "date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}

	coptic, err := calendar.Convert(t.Year(), int(t.Month()), t.Day())
	if err != nil {
		return ConvertedDate{}, err
	}

	nasie := 5
	if calendar.IsCopticLeapYear(coptic.Year) {
		nasie = 6
	}

	return ConvertedDate{
		Gregorian:   calendar.FormatDate(t),
		Label:       calendar.FormatGregorian(t),
		Coptic:      coptic,
		CopticLabel: coptic.String(),
		NasieDays:   nasie,
	}, nil
}

func writeConverted(w io.Writer, dates []ConvertedDate) {
	for _, d := range dates {
		fmt.Fprintf(w, "%s  %-15s %s (Nasie %d)\n", d.Gregorian, d.Label, d.CopticLabel, d.NasieDays)
	}
}
