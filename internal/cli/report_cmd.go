package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/controlhoras/hours-backend/internal/hours/export"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

func newTotalsCmd(app *App) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Print the totals summary for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}

			ctx := localeContext(cmd)
			rep, err := app.Reports.Build(ctx, filter)
			if err != nil {
				return err
			}

			l := i18n.LocalizerFromContext(ctx)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rep.Subject(l))
			fmt.Fprintln(out, rep.Period(l))
			fmt.Fprintln(out)
			fmt.Fprintln(out, l.T("report.totals"))

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, line := range rep.TotalsLines(l) {
				fmt.Fprintf(tw, "  %s\t%s\n", line[0], line[1])
			}
			return tw.Flush()
		},
	}

	flags.register(cmd)
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var (
		flags  filterFlags
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report as pdf, xlsx or csv under its suggested file name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}

			file, _, err := app.Reports.Export(localeContext(cmd), filter, format)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			path := filepath.Join(outDir, file.Name)
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(export.FormatPDF), "pdf, xlsx or csv")
	cmd.Flags().StringVar(&outDir, "out", app.OutputDir, "output directory")
	return cmd
}
