package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/pkg/database"
)

// FixtureFactory builds employees and time entries with unique defaults
type FixtureFactory struct {
	mu  sync.Mutex
	seq int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{}
}

func (f *FixtureFactory) nextSeq() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return f.seq
}

// Employee builds an employee that is not persisted
func (f *FixtureFactory) Employee(opts ...func(*domain.Employee)) domain.Employee {
	n := f.nextSeq()
	emp := domain.Employee{
		ID:        uuid.New().String(),
		FirstName: fmt.Sprintf("Test%d", n),
		LastName:  fmt.Sprintf("Employee%d", n),
	}
	for _, opt := range opts {
		opt(&emp)
	}
	return emp
}

// WithEmployeeName sets the employee's names
func WithEmployeeName(first, last string) func(*domain.Employee) {
	return func(e *domain.Employee) {
		e.FirstName = first
		e.LastName = last
	}
}

// TimeEntry builds a Work entry without times for employeeID on date
func (f *FixtureFactory) TimeEntry(employeeID string, date domain.Date, opts ...func(*domain.TimeEntry)) domain.TimeEntry {
	entry := domain.TimeEntry{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Date:       date,
		DayType:    domain.Work,
	}
	for _, opt := range opts {
		opt(&entry)
	}
	return entry
}

// WithDayType sets the entry's day type
func WithDayType(dt domain.DayType) func(*domain.TimeEntry) {
	return func(e *domain.TimeEntry) {
		e.DayType = dt
	}
}

// WithTimes sets entry and exit times; an empty string leaves the time unset
func WithTimes(entry, exit string) func(*domain.TimeEntry) {
	return func(e *domain.TimeEntry) {
		e.EntryTime, _ = domain.ParseOptionalClockTime(entry)
		e.ExitTime, _ = domain.ParseOptionalClockTime(exit)
	}
}

// WithWorkedOnHoliday marks the entry as a worked holiday
func WithWorkedOnHoliday() func(*domain.TimeEntry) {
	return func(e *domain.TimeEntry) {
		e.DayType = domain.Holiday
		e.WorkedOnHoliday = true
	}
}

// InsertEmployee persists a new employee built from opts
func (f *FixtureFactory) InsertEmployee(t *testing.T, ctx context.Context, db *database.DB, opts ...func(*domain.Employee)) domain.Employee {
	t.Helper()

	emp := f.Employee(opts...)
	err := db.QueryRowxContext(ctx,
		`INSERT INTO employees (id, first_name, last_name) VALUES ($1, $2, $3) RETURNING created_at, updated_at`,
		emp.ID, emp.FirstName, emp.LastName,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to insert employee fixture: %v", err)
	}
	return emp
}

// InsertTimeEntry persists entry as is
func (f *FixtureFactory) InsertTimeEntry(t *testing.T, ctx context.Context, db *database.DB, entry domain.TimeEntry) domain.TimeEntry {
	t.Helper()

	err := db.QueryRowxContext(ctx,
		`INSERT INTO time_entries (id, employee_id, date, entry_time, exit_time, day_type, worked_on_holiday)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`,
		entry.ID, entry.EmployeeID, entry.Date, entry.EntryTime, entry.ExitTime, entry.DayType, entry.WorkedOnHoliday,
	).Scan(&entry.CreatedAt)
	if err != nil {
		t.Fatalf("failed to insert time entry fixture: %v", err)
	}
	return entry
}

// Clock parses HH:MM or HH:MM:SS or fails the test
func Clock(t *testing.T, s string) *domain.ClockTime {
	t.Helper()
	c, err := domain.ParseClockTime(s)
	if err != nil {
		t.Fatalf("bad clock fixture %q: %v", s, err)
	}
	return &c
}

// Date parses YYYY-MM-DD or fails the test
func Date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date fixture %q: %v", s, err)
	}
	return d
}
