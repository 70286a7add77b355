package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/synaxaire-program/internal/program"
	"github.com/zapponejosh/synaxaire-program/internal/render"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		req    program.Request
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the program of a month to a file",
		Long: `Generate resolves every day of a Gregorian month and renders it as a Word
document (default) or an iCalendar file.

Example:
  synaxaire generate --year 2024 --month 1
  synaxaire generate --year 2024 --month 1 --french-verse "..." --arabic-verse "..." --out janvier.docx
  synaxaire generate --year 2024 --month 1 --format ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sink render.Sink
			switch format {
			case "docx":
				sink = render.DocxSink{}
			case "ics":
				sink = render.ICSSink{}
			default:
				return fmt.Errorf("unknown format %q (want docx or ics)", format)
			}

			if err := req.Validate(); err != nil {
				return err
			}

			resolver, err := a.resolver(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			days, err := resolver.Resolve(req.Year, req.Month)
			if err != nil {
				return err
			}

			data, err := sink.Render(render.Program{
				Year:        req.Year,
				Month:       req.Month,
				FrenchVerse: req.FrenchVerse,
				ArabicVerse: req.ArabicVerse,
				Days:        days,
			})
			if err != nil {
				return err
			}

			if out == "" {
				out = render.Filename(sink, req.Year, req.Month)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d days, %d bytes)\n", out, len(days), len(data))
			return nil
		},
	}

	cmd.Flags().IntVar(&req.Year, "year", 0, "Gregorian year")
	cmd.Flags().IntVar(&req.Month, "month", 0, "Gregorian month (1-12)")
	cmd.Flags().StringVar(&req.FrenchVerse, "french-verse", "", "verse printed under the title")
	cmd.Flags().StringVar(&req.ArabicVerse, "arabic-verse", "", "right-to-left verse printed under the French one")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default program_<year>_<month>.<format>)")
	cmd.Flags().StringVar(&format, "format", "docx", "output format: docx or ics")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}
