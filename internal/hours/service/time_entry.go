package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/i18n"
	"github.com/controlhoras/hours-backend/pkg/logger"
)

// Interval is one entry/exit pair of a recorded day. Empty strings mean absent.
type Interval struct {
	Entry string `json:"entry" validate:"omitempty,clock"`
	Exit  string `json:"exit" validate:"omitempty,clock"`
}

// RecordDayInput describes one employee day with its worked intervals
type RecordDayInput struct {
	EmployeeID      string     `json:"employee_id" validate:"required"`
	Date            string     `json:"date" validate:"required,date"`
	DayType         string     `json:"day_type" validate:"required,day_type"`
	WorkedOnHoliday bool       `json:"worked_on_holiday"`
	Intervals       []Interval `json:"intervals" validate:"dive"`
}

// TimeEntryService records and lists time entries
type TimeEntryService struct {
	tx          Transactor
	employees   EmployeeStore
	timeEntries TimeEntryStore
	publisher   *events.HoursEventPublisher
	logger      *logger.Logger
}

// NewTimeEntryService creates a new time entry service
func NewTimeEntryService(
	tx Transactor,
	employees EmployeeStore,
	timeEntries TimeEntryStore,
	publisher *events.HoursEventPublisher,
	log *logger.Logger,
) *TimeEntryService {
	return &TimeEntryService{
		tx:          tx,
		employees:   employees,
		timeEntries: timeEntries,
		publisher:   publisher,
		logger:      log.WithComponent("time_entry_service"),
	}
}

// RecordDay stores one row per interval, all sharing date, day type and
// holiday flag. Day types that carry no working time store a single row
// without times and ignore the intervals.
func (s *TimeEntryService) RecordDay(ctx context.Context, input RecordDayInput) ([]*domain.TimeEntry, error) {
	entries, err := buildDayEntries(ctx, input)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		emp, err := s.employees.GetByID(ctx, entries[0].EmployeeID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			e.EmployeeName = emp.DisplayName()
		}
		return s.timeEntries.CreateMany(ctx, entries)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.DayRecorded(ctx, entries)

	logger.FromContext(ctx, s.logger).Info().
		Str("employee_id", entries[0].EmployeeID).
		Str("date", entries[0].Date.Key()).
		Str("day_type", string(entries[0].DayType)).
		Int("rows", len(entries)).
		Msg("day recorded")

	return entries, nil
}

// ListEntries lists entries matching filter ordered by date, then entry time
func (s *TimeEntryService) ListEntries(ctx context.Context, filter domain.ReportFilter) ([]domain.TimeEntry, error) {
	if err := filter.Validate(); err != nil {
		return nil, errors.BadRequestKey("errors.invalid_range")
	}
	return s.timeEntries.List(ctx, filter)
}

// GetEntry gets a time entry by ID
func (s *TimeEntryService) GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error) {
	return s.timeEntries.GetByID(ctx, id)
}

// DeleteEntry deletes a single time entry
func (s *TimeEntryService) DeleteEntry(ctx context.Context, id string) error {
	entry, err := s.timeEntries.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.timeEntries.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.TimeEntryDeleted(ctx, entry)

	logger.FromContext(ctx, s.logger).Info().
		Str("entry_id", id).
		Str("employee_id", entry.EmployeeID).
		Msg("time entry deleted")

	return nil
}

// buildDayEntries validates input and expands it into rows
func buildDayEntries(ctx context.Context, input RecordDayInput) ([]*domain.TimeEntry, error) {
	l := i18n.LocalizerFromContext(ctx)
	details := make(map[string]string)

	employeeID := strings.TrimSpace(input.EmployeeID)
	if employeeID == "" {
		details["employee_id"] = l.T("validation.required")
	}

	var date domain.Date
	if strings.TrimSpace(input.Date) == "" {
		details["date"] = l.T("validation.required")
	} else if d, err := domain.ParseDate(input.Date); err != nil {
		details["date"] = l.T("validation.date")
	} else {
		date = d
	}

	var dayType domain.DayType
	if strings.TrimSpace(input.DayType) == "" {
		details["day_type"] = l.T("validation.required")
	} else if dt, err := domain.ParseDayType(input.DayType); err != nil {
		details["day_type"] = l.T("validation.day_type")
	} else {
		dayType = dt
	}

	if len(details) > 0 {
		return nil, errors.Validation(details)
	}

	workedOnHoliday := dayType == domain.Holiday && input.WorkedOnHoliday

	newEntry := func() *domain.TimeEntry {
		return &domain.TimeEntry{
			EmployeeID:      employeeID,
			Date:            date,
			DayType:         dayType,
			WorkedOnHoliday: workedOnHoliday,
		}
	}

	if !dayType.NeedsHours(workedOnHoliday) {
		return []*domain.TimeEntry{newEntry()}, nil
	}

	entries := make([]*domain.TimeEntry, 0, len(input.Intervals))
	for i, interval := range input.Intervals {
		field := fmt.Sprintf("intervals[%d]", i)

		entryTime, err := domain.ParseOptionalClockTime(interval.Entry)
		if err != nil {
			details[field+".entry"] = l.T("validation.clock")
		}
		exitTime, err := domain.ParseOptionalClockTime(interval.Exit)
		if err != nil {
			details[field+".exit"] = l.T("validation.clock")
		}

		switch {
		case entryTime == nil && exitTime == nil:
			// blank rows of the form are skipped
			continue
		case entryTime == nil && details[field+".entry"] == "":
			details[field+".entry"] = l.T("validation.required")
		case exitTime == nil && details[field+".exit"] == "":
			details[field+".exit"] = l.T("validation.required")
		}

		e := newEntry()
		e.EntryTime = entryTime
		e.ExitTime = exitTime
		entries = append(entries, e)
	}

	if len(details) > 0 {
		return nil, errors.Validation(details)
	}
	if len(entries) == 0 {
		return nil, errors.BadRequestKey("errors.hours_required")
	}

	return entries, nil
}
