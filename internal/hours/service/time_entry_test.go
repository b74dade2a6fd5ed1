package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
	"github.com/controlhoras/hours-backend/pkg/testutil"
)

type timeEntryFixture struct {
	svc     *service.TimeEntryService
	tx      *testutil.PassthroughTx
	entries *testutil.MemoryTimeEntries
	pub     *testutil.MockPublisher
}

func newTimeEntryFixture() *timeEntryFixture {
	f := &timeEntryFixture{
		tx:      &testutil.PassthroughTx{},
		entries: &testutil.MemoryTimeEntries{},
		pub:     testutil.NewMockPublisher(),
	}
	employees := testutil.NewMemoryEmployees(domain.Employee{ID: "emp", FirstName: "Ana", LastName: "Pérez"})
	f.svc = service.NewTimeEntryService(
		f.tx, employees, f.entries,
		events.NewHoursEventPublisher(f.pub, logger.Nop()),
		logger.Nop(),
	)
	return f
}

func TestRecordDay_SplitShift(t *testing.T) {
	f := newTimeEntryFixture()

	entries, err := f.svc.RecordDay(context.Background(), service.RecordDayInput{
		EmployeeID: "emp",
		Date:       "2024-10-01",
		DayType:    "Work",
		Intervals: []service.Interval{
			{Entry: "09:00", Exit: "13:00"},
			{Entry: "", Exit: ""},
			{Entry: "14:00", Exit: "18:30"},
		},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.Equal(t, "2024-10-01", e.Date.Key())
		assert.Equal(t, domain.Work, e.DayType)
		assert.Equal(t, "Ana Pérez", e.EmployeeName)
		assert.NotEmpty(t, e.ID)
	}
	assert.Equal(t, 1, f.tx.Calls)
	assert.Len(t, f.entries.Rows, 2)

	event, ok := f.pub.Find(messaging.EventTimeEntryRecorded)
	require.True(t, ok)
	payload := event.Payload.(messaging.TimeEntryRecordedEvent)
	assert.Equal(t, 8.5, payload.HoursWorked)
	assert.Len(t, payload.EntryIDs, 2)
}

func TestRecordDay_DayTypeWithoutHoursStoresSingleRow(t *testing.T) {
	f := newTimeEntryFixture()

	entries, err := f.svc.RecordDay(context.Background(), service.RecordDayInput{
		EmployeeID:      "emp",
		Date:            "2024-10-02",
		DayType:         "vacaciones",
		WorkedOnHoliday: true,
		Intervals:       []service.Interval{{Entry: "09:00", Exit: "17:00"}},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, domain.Vacation, entries[0].DayType)
	assert.False(t, entries[0].WorkedOnHoliday)
	assert.Nil(t, entries[0].EntryTime)
	assert.Nil(t, entries[0].ExitTime)
}

func TestRecordDay_HolidayNotWorked(t *testing.T) {
	f := newTimeEntryFixture()

	entries, err := f.svc.RecordDay(context.Background(), service.RecordDayInput{
		EmployeeID: "emp",
		Date:       "2024-10-03",
		DayType:    "Holiday",
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].HasTimes())
}

func TestRecordDay_HolidayWorkedNeedsHours(t *testing.T) {
	f := newTimeEntryFixture()

	_, err := f.svc.RecordDay(context.Background(), service.RecordDayInput{
		EmployeeID:      "emp",
		Date:            "2024-10-03",
		DayType:         "Holiday",
		WorkedOnHoliday: true,
		Intervals:       []service.Interval{{}},
	})

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BAD_REQUEST", appErr.Code)
	assert.Equal(t, "errors.hours_required", appErr.MessageKey)
	assert.Equal(t, 0, f.tx.Calls)
	f.pub.AssertNoEventsPublished(t)
}

func TestRecordDay_HolidayWorkedKeepsFlag(t *testing.T) {
	f := newTimeEntryFixture()

	entries, err := f.svc.RecordDay(context.Background(), service.RecordDayInput{
		EmployeeID:      "emp",
		Date:            "2024-12-25",
		DayType:         "Holiday",
		WorkedOnHoliday: true,
		Intervals:       []service.Interval{{Entry: "22:00", Exit: "06:00"}},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].WorkedOnHoliday)
	assert.Equal(t, 8.0, entries[0].WorkedHours())
}

func TestRecordDay_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  service.RecordDayInput
		fields []string
	}{
		{
			name:   "missing fields",
			input:  service.RecordDayInput{},
			fields: []string{"employee_id", "date", "day_type"},
		},
		{
			name:   "bad date and day type",
			input:  service.RecordDayInput{EmployeeID: "emp", Date: "01/10/2024", DayType: "Overtime"},
			fields: []string{"date", "day_type"},
		},
		{
			name: "bad clock",
			input: service.RecordDayInput{
				EmployeeID: "emp", Date: "2024-10-01", DayType: "Work",
				Intervals: []service.Interval{{Entry: "25:00", Exit: "17:00"}},
			},
			fields: []string{"intervals[0].entry"},
		},
		{
			name: "half interval",
			input: service.RecordDayInput{
				EmployeeID: "emp", Date: "2024-10-01", DayType: "Work",
				Intervals: []service.Interval{{Entry: "09:00"}},
			},
			fields: []string{"intervals[0].exit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTimeEntryFixture()

			_, err := f.svc.RecordDay(context.Background(), tt.input)

			var appErr *errors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			for _, field := range tt.fields {
				assert.Contains(t, appErr.Details, field)
			}
			assert.Len(t, appErr.Details, len(tt.fields))
		})
	}
}

func TestRecordDay_UnknownEmployee(t *testing.T) {
	f := newTimeEntryFixture()

	_, err := f.svc.RecordDay(context.Background(), service.RecordDayInput{
		EmployeeID: "missing",
		Date:       "2024-10-01",
		DayType:    "Rest",
	})

	assert.True(t, errors.IsNotFound(err))
	assert.Empty(t, f.entries.Rows)
	f.pub.AssertNoEventsPublished(t)
}

func TestListEntries_InvalidRange(t *testing.T) {
	f := newTimeEntryFixture()
	start := domain.NewDate(2024, time.October, 31)
	end := domain.NewDate(2024, time.October, 1)

	_, err := f.svc.ListEntries(context.Background(), domain.ReportFilter{StartDate: &start, EndDate: &end})

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "errors.invalid_range", appErr.MessageKey)
	assert.Nil(t, f.entries.LastQuery)
}

func TestDeleteEntry(t *testing.T) {
	f := newTimeEntryFixture()
	ctx := context.Background()

	entries, err := f.svc.RecordDay(ctx, service.RecordDayInput{EmployeeID: "emp", Date: "2024-10-01", DayType: "Rest"})
	require.NoError(t, err)

	got, err := f.svc.GetEntry(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Rest, got.DayType)

	require.NoError(t, f.svc.DeleteEntry(ctx, entries[0].ID))
	event, ok := f.pub.Find(messaging.EventTimeEntryDeleted)
	require.True(t, ok)
	assert.Equal(t, messaging.TimeEntryDeletedEvent{EntryID: entries[0].ID, EmployeeID: "emp", Date: "2024-10-01"}, event.Payload)

	assert.True(t, errors.IsNotFound(f.svc.DeleteEntry(ctx, entries[0].ID)))
}
