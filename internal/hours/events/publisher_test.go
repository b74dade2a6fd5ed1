package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
	"github.com/controlhoras/hours-backend/pkg/testutil"
)

func clock(t *testing.T, s string) *domain.ClockTime {
	c, err := domain.ParseClockTime(s)
	require.NoError(t, err)
	return &c
}

func TestDayRecorded_SplitShift(t *testing.T) {
	mock := testutil.NewMockPublisher()
	pub := events.NewHoursEventPublisher(mock, logger.Nop())
	date := domain.NewDate(2024, 10, 1)

	pub.DayRecorded(context.Background(), []*domain.TimeEntry{
		{ID: "te-1", EmployeeID: "emp-1", Date: date, DayType: domain.Work, EntryTime: clock(t, "08:00"), ExitTime: clock(t, "12:00")},
		{ID: "te-2", EmployeeID: "emp-1", Date: date, DayType: domain.Work, EntryTime: clock(t, "13:00"), ExitTime: clock(t, "17:30")},
	})

	event, ok := mock.Find(messaging.EventTimeEntryRecorded)
	require.True(t, ok)
	data, ok := event.Payload.(messaging.TimeEntryRecordedEvent)
	require.True(t, ok)
	assert.Equal(t, "emp-1", data.EmployeeID)
	assert.Equal(t, "2024-10-01", data.Date)
	assert.Equal(t, "Work", data.DayType)
	assert.Equal(t, []string{"te-1", "te-2"}, data.EntryIDs)
	assert.InDelta(t, 8.5, data.HoursWorked, 1e-9)
}

func TestDayRecorded_NoRows(t *testing.T) {
	mock := testutil.NewMockPublisher()
	events.NewHoursEventPublisher(mock, logger.Nop()).DayRecorded(context.Background(), nil)

	mock.AssertNoEventsPublished(t)
}

func TestEmployeeEvents(t *testing.T) {
	mock := testutil.NewMockPublisher()
	pub := events.NewHoursEventPublisher(mock, logger.Nop())
	emp := &domain.Employee{ID: "emp-1", FirstName: "Ana", LastName: "Pérez"}
	ctx := context.Background()

	pub.EmployeeCreated(ctx, emp)
	pub.EmployeeUpdated(ctx, emp)
	pub.EmployeeDeleted(ctx, emp.ID)

	got := mock.Events()
	require.Len(t, got, 3)
	assert.Equal(t, messaging.EventEmployeeCreated, got[0].Type)
	assert.Equal(t, messaging.EventEmployeeUpdated, got[1].Type)
	assert.Equal(t, messaging.EventEmployeeDeleted, got[2].Type)

	body, err := json.Marshal(got[0].Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"employee_id":"emp-1","name":"Ana Pérez"}`, string(body))
}

func TestTimeEntryDeleted(t *testing.T) {
	mock := testutil.NewMockPublisher()
	pub := events.NewHoursEventPublisher(mock, logger.Nop())

	pub.TimeEntryDeleted(context.Background(), &domain.TimeEntry{
		ID: "te-9", EmployeeID: "emp-1", Date: domain.NewDate(2024, 10, 3), DayType: domain.Rest,
	})

	event, ok := mock.Find(messaging.EventTimeEntryDeleted)
	require.True(t, ok)
	assert.Equal(t, messaging.TimeEntryDeletedEvent{EntryID: "te-9", EmployeeID: "emp-1", Date: "2024-10-03"}, event.Payload)
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	mock := testutil.NewMockPublisher()
	mock.Err = errors.New("channel closed")
	pub := events.NewHoursEventPublisher(mock, logger.Nop())

	assert.NotPanics(t, func() {
		pub.ReportExported(context.Background(), messaging.ReportExportedEvent{Format: "pdf", FileName: "Report_All_Employees.pdf"})
	})
	mock.AssertEventPublished(t, messaging.EventReportExported)
}
