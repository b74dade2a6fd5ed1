package domain

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a filter starts after it ends.
var ErrInvalidRange = errors.New("start date after end date")

// Employee is a person whose working days are recorded.
type Employee struct {
	ID        string    `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName returns "First Last".
func (e Employee) DisplayName() string {
	return e.FirstName + " " + e.LastName
}

// TimeEntry is one recorded row for an employee and day. Split shifts are
// stored as several rows sharing date, day type and holiday flag.
type TimeEntry struct {
	ID              string     `db:"id" json:"id"`
	EmployeeID      string     `db:"employee_id" json:"employee_id"`
	EmployeeName    string     `db:"employee_name" json:"employee_name,omitempty"`
	Date            Date       `db:"date" json:"date"`
	EntryTime       *ClockTime `db:"entry_time" json:"entry_time"`
	ExitTime        *ClockTime `db:"exit_time" json:"exit_time"`
	DayType         DayType    `db:"day_type" json:"day_type"`
	WorkedOnHoliday bool       `db:"worked_on_holiday" json:"worked_on_holiday"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// HasTimes reports whether both entry and exit times are present.
func (t TimeEntry) HasTimes() bool {
	return t.EntryTime != nil && t.ExitTime != nil
}

// WorkedHours returns the hours this row contributes: its own day type must
// carry working time and both times must be present.
func (t TimeEntry) WorkedHours() float64 {
	if !t.DayType.NeedsHours(t.WorkedOnHoliday) || !t.HasTimes() {
		return 0
	}
	return t.EntryTime.HoursUntil(*t.ExitTime)
}

// ReportFilter narrows the rows of a report. Every field is optional and
// both date bounds are inclusive.
type ReportFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *Date   `json:"start_date,omitempty"`
	EndDate    *Date   `json:"end_date,omitempty"`
}

// Validate rejects a range whose start is after its end.
func (f ReportFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(f.EndDate.Time) {
		return ErrInvalidRange
	}
	return nil
}
