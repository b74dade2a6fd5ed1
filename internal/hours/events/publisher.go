package events

import (
	"context"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
)

// HoursEventPublisher publishes employee, time entry and report events.
// Publishing is best effort: failures are logged and never fail the request.
type HoursEventPublisher struct {
	publisher messaging.EventPublisher
	logger    *logger.Logger
}

// NewHoursEventPublisher wraps an existing publisher
func NewHoursEventPublisher(publisher messaging.EventPublisher, log *logger.Logger) *HoursEventPublisher {
	return &HoursEventPublisher{
		publisher: publisher,
		logger:    log.WithComponent("events"),
	}
}

// NewRabbitPublisher publishes to the hours exchange on rmq
func NewRabbitPublisher(rmq *messaging.RabbitMQ, source string, log *logger.Logger) (*HoursEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeHoursEvents, source, log)
	if err != nil {
		return nil, err
	}
	return NewHoursEventPublisher(publisher, log), nil
}

// NewNopPublisher returns a publisher that drops every event
func NewNopPublisher(log *logger.Logger) *HoursEventPublisher {
	return NewHoursEventPublisher(messaging.NopPublisher{}, log)
}

func (p *HoursEventPublisher) publish(ctx context.Context, eventType string, data interface{}) {
	if err := p.publisher.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}

// EmployeeCreated publishes an employee created event
func (p *HoursEventPublisher) EmployeeCreated(ctx context.Context, emp *domain.Employee) {
	p.publish(ctx, messaging.EventEmployeeCreated, messaging.EmployeeCreatedEvent{
		EmployeeID: emp.ID,
		Name:       emp.DisplayName(),
	})
}

// EmployeeUpdated publishes an employee updated event
func (p *HoursEventPublisher) EmployeeUpdated(ctx context.Context, emp *domain.Employee) {
	p.publish(ctx, messaging.EventEmployeeUpdated, messaging.EmployeeUpdatedEvent{
		EmployeeID: emp.ID,
		Name:       emp.DisplayName(),
	})
}

// EmployeeDeleted publishes an employee deleted event
func (p *HoursEventPublisher) EmployeeDeleted(ctx context.Context, employeeID string) {
	p.publish(ctx, messaging.EventEmployeeDeleted, messaging.EmployeeDeletedEvent{
		EmployeeID: employeeID,
	})
}

// DayRecorded publishes one event for the rows stored by a single recording.
// All rows share employee, date, day type and holiday flag.
func (p *HoursEventPublisher) DayRecorded(ctx context.Context, entries []*domain.TimeEntry) {
	if len(entries) == 0 {
		return
	}

	first := entries[0]
	data := messaging.TimeEntryRecordedEvent{
		EmployeeID:      first.EmployeeID,
		Date:            first.Date.Key(),
		DayType:         string(first.DayType),
		WorkedOnHoliday: first.WorkedOnHoliday,
		EntryIDs:        make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		data.EntryIDs = append(data.EntryIDs, e.ID)
		data.HoursWorked += e.WorkedHours()
	}

	p.publish(ctx, messaging.EventTimeEntryRecorded, data)
}

// TimeEntryDeleted publishes a time entry deleted event
func (p *HoursEventPublisher) TimeEntryDeleted(ctx context.Context, entry *domain.TimeEntry) {
	p.publish(ctx, messaging.EventTimeEntryDeleted, messaging.TimeEntryDeletedEvent{
		EntryID:    entry.ID,
		EmployeeID: entry.EmployeeID,
		Date:       entry.Date.Key(),
	})
}

// ReportExported publishes a report exported event
func (p *HoursEventPublisher) ReportExported(ctx context.Context, data messaging.ReportExportedEvent) {
	p.publish(ctx, messaging.EventReportExported, data)
}
