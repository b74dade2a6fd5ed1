package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/internal/hours/export"
	"github.com/controlhoras/hours-backend/internal/hours/report"
	"github.com/controlhoras/hours-backend/internal/hours/totals"
	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/i18n"
	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
)

// ReportService builds totals reports and renders them as documents
type ReportService struct {
	employees   EmployeeStore
	timeEntries TimeEntryStore
	publisher   *events.HoursEventPublisher
	options     export.Options
	logger      *logger.Logger
	now         func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	employees EmployeeStore,
	timeEntries TimeEntryStore,
	publisher *events.HoursEventPublisher,
	options export.Options,
	log *logger.Logger,
) *ReportService {
	return &ReportService{
		employees:   employees,
		timeEntries: timeEntries,
		publisher:   publisher,
		options:     options,
		logger:      log.WithComponent("report_service"),
		now:         time.Now,
	}
}

// Build loads the selected employee and the matching rows concurrently and
// runs the totals aggregator over the rows.
func (s *ReportService) Build(ctx context.Context, filter domain.ReportFilter) (*report.Report, error) {
	if err := filter.Validate(); err != nil {
		return nil, errors.BadRequestKey("errors.invalid_range")
	}

	rep := &report.Report{Filter: filter, GeneratedAt: s.now().UTC()}

	g, gctx := errgroup.WithContext(ctx)

	if filter.EmployeeID != nil {
		g.Go(func() error {
			emp, err := s.employees.GetByID(gctx, *filter.EmployeeID)
			if err != nil {
				return err
			}
			rep.Employee = emp
			return nil
		})
	}

	g.Go(func() error {
		entries, err := s.timeEntries.List(gctx, filter)
		if err != nil {
			return err
		}
		rep.Entries = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if rep.Entries == nil {
		rep.Entries = []domain.TimeEntry{}
	}
	rep.Summary = totals.Aggregate(rep.Entries)

	return rep, nil
}

// Export builds the report for filter and renders it in format using the
// locale carried by ctx.
func (s *ReportService) Export(ctx context.Context, filter domain.ReportFilter, format string) (*export.File, *report.Report, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, nil, err
	}

	rep, err := s.Build(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	file, err := export.Render(f, rep, i18n.LocalizerFromContext(ctx), s.options)
	if err != nil {
		return nil, nil, err
	}

	event := messaging.ReportExportedEvent{
		Format:      string(f),
		FileName:    file.Name,
		EmployeeID:  filter.EmployeeID,
		Rows:        len(rep.Entries),
		HoursWorked: rep.Summary.HoursWorked(),
	}
	if filter.StartDate != nil {
		start := filter.StartDate.Key()
		event.StartDate = &start
	}
	if filter.EndDate != nil {
		end := filter.EndDate.Key()
		event.EndDate = &end
	}
	s.publisher.ReportExported(ctx, event)

	logger.FromContext(ctx, s.logger).Info().
		Str("format", string(f)).
		Str("file_name", file.Name).
		Int("rows", len(rep.Entries)).
		Msg("report exported")

	return file, rep, nil
}
