// Package cli implements the hours-report command line tool.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/pkg/i18n"
	"github.com/controlhoras/hours-backend/pkg/messaging"
)

// EventSource streams hours events until ctx is done
type EventSource interface {
	Stream(ctx context.Context, handle func(*messaging.Event) error) error
}

// App holds the services used by CLI commands
type App struct {
	Employees *service.EmployeeService
	Reports   *service.ReportService
	// Events is nil when RabbitMQ is disabled
	Events        EventSource
	DefaultLocale string
	OutputDir     string
}

// NewRootCmd creates the top-level "hours-report" command and registers
// all subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "hours-report",
		Short:         "Work hours totals and report exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("lang", app.DefaultLocale, "output language (en, es)")

	root.AddCommand(
		newTotalsCmd(app),
		newExportCmd(app),
		newDayTypesCmd(app),
		newEmployeesCmd(app),
		newWatchCmd(app),
	)

	return root
}

// localeContext returns the command context carrying the --lang locale
func localeContext(cmd *cobra.Command) context.Context {
	lang, _ := cmd.Flags().GetString("lang")
	if !i18n.IsSupported(strings.ToLower(lang)) {
		lang = i18n.DefaultLocale
	}
	return i18n.WithLocale(cmd.Context(), strings.ToLower(lang))
}

// filterFlags are the report filter options shared by totals and export
type filterFlags struct {
	employee string
	from     string
	to       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.employee, "employee", "", "employee ID (all employees when empty)")
	cmd.Flags().StringVar(&f.from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "last date, YYYY-MM-DD")
}

func (f *filterFlags) filter() (domain.ReportFilter, error) {
	var filter domain.ReportFilter

	if f.employee != "" {
		id := f.employee
		filter.EmployeeID = &id
	}

	parse := func(name, raw string) (*domain.Date, error) {
		if raw == "" {
			return nil, nil
		}
		d, err := domain.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}
		return &d, nil
	}

	var err error
	if filter.StartDate, err = parse("from", f.from); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parse("to", f.to); err != nil {
		return filter, err
	}

	return filter, nil
}
