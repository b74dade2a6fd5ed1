package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/report"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

func newDayTypesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day-types",
		Short: "List day types in precedence order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := i18n.LocalizerFromContext(localeContext(cmd))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tNAME\tLABEL")
			for _, dt := range domain.DayTypes {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", dt.Rank(), dt, report.DayTypeName(l, dt))
			}
			return tw.Flush()
		},
	}
}

func newEmployeesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "List employees and their IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(employees) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No employees found.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, e := range employees {
				fmt.Fprintf(tw, "%s\t%s\n", e.ID, e.DisplayName())
			}
			return tw.Flush()
		},
	}
}
