package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventEmployeeCreated = "hours.employee.created"
	EventEmployeeUpdated = "hours.employee.updated"
	EventEmployeeDeleted = "hours.employee.deleted"

	EventTimeEntryRecorded = "hours.time_entry.recorded"
	EventTimeEntryDeleted  = "hours.time_entry.deleted"

	EventReportExported = "hours.report.exported"
)

// Exchange names
const (
	ExchangeHoursEvents = "hours.events"
	ExchangeDeadLetter  = "dlx.events"
)

// Event is the envelope every message travels in
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// ParseData unmarshals the event payload into v
func (e *Event) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// ============================================================================
// Employee events
// ============================================================================

// EmployeeCreatedEvent is published after an employee is created
type EmployeeCreatedEvent struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

// EmployeeUpdatedEvent is published after an employee is renamed
type EmployeeUpdatedEvent struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

// EmployeeDeletedEvent is published after an employee is deleted
type EmployeeDeletedEvent struct {
	EmployeeID string `json:"employee_id"`
}

// ============================================================================
// Time entry events
// ============================================================================

// TimeEntryRecordedEvent is published once per recorded day
type TimeEntryRecordedEvent struct {
	EmployeeID      string   `json:"employee_id"`
	Date            string   `json:"date"`
	DayType         string   `json:"day_type"`
	WorkedOnHoliday bool     `json:"worked_on_holiday"`
	EntryIDs        []string `json:"entry_ids"`
	HoursWorked     float64  `json:"hours_worked"`
}

// TimeEntryDeletedEvent is published after a single row is removed
type TimeEntryDeletedEvent struct {
	EntryID    string `json:"entry_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

// ============================================================================
// Report events
// ============================================================================

// ReportExportedEvent is published after a report document is rendered
type ReportExportedEvent struct {
	Format      string  `json:"format"`
	FileName    string  `json:"file_name"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Rows        int     `json:"rows"`
	HoursWorked float64 `json:"hours_worked"`
}

// GenerateEventID returns a new unique event ID
func GenerateEventID() string {
	return uuid.New().String()
}
