package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/internal/hours/export"
	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/internal/hours/totals"
	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/i18n"
	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
	"github.com/controlhoras/hours-backend/pkg/testutil"
)

func ptrDate(y int, m time.Month, d int) *domain.Date {
	v := domain.NewDate(y, m, d)
	return &v
}

func ptrClock(h, m int) *domain.ClockTime {
	c := domain.NewClockTime(h, m, 0)
	return &c
}

func newReportFixture() (*service.ReportService, *testutil.MockPublisher) {
	employees := testutil.NewMemoryEmployees(
		domain.Employee{ID: "emp", FirstName: "Ana", LastName: "Pérez"},
		domain.Employee{ID: "other", FirstName: "Luis", LastName: "Alvarez"},
	)
	entries := &testutil.MemoryTimeEntries{Rows: []domain.TimeEntry{
		{ID: "1", EmployeeID: "emp", EmployeeName: "Ana Pérez", Date: *ptrDate(2024, time.October, 1), DayType: domain.Work, EntryTime: ptrClock(9, 0), ExitTime: ptrClock(17, 0)},
		{ID: "2", EmployeeID: "emp", EmployeeName: "Ana Pérez", Date: *ptrDate(2024, time.October, 1), DayType: domain.JustifiedAbsence},
		{ID: "3", EmployeeID: "emp", EmployeeName: "Ana Pérez", Date: *ptrDate(2024, time.October, 2), DayType: domain.Holiday, WorkedOnHoliday: true, EntryTime: ptrClock(8, 0), ExitTime: ptrClock(10, 15)},
		{ID: "4", EmployeeID: "other", EmployeeName: "Luis Alvarez", Date: *ptrDate(2024, time.October, 2), DayType: domain.Rest},
		{ID: "5", EmployeeID: "emp", EmployeeName: "Ana Pérez", Date: *ptrDate(2024, time.November, 4), DayType: domain.Work, EntryTime: ptrClock(9, 0), ExitTime: ptrClock(10, 0)},
	}}

	pub := testutil.NewMockPublisher()
	svc := service.NewReportService(
		employees, entries,
		events.NewHoursEventPublisher(pub, logger.Nop()),
		export.Options{CompanyName: "Clínica Sur"},
		logger.Nop(),
	)
	return svc, pub
}

func TestReportService_Build(t *testing.T) {
	svc, _ := newReportFixture()

	rep, err := svc.Build(context.Background(), domain.ReportFilter{
		EmployeeID: testutil.PtrString("emp"),
		StartDate:  ptrDate(2024, time.October, 1),
		EndDate:    ptrDate(2024, time.October, 31),
	})
	require.NoError(t, err)

	require.NotNil(t, rep.Employee)
	assert.Equal(t, "Ana Pérez", rep.Employee.DisplayName())
	assert.Len(t, rep.Entries, 3)

	// row 1 still adds hours: the date resolves to Justified Absence but the
	// Work row carries its own hours
	assert.Equal(t, 10.25, rep.Summary.HoursWorked())
	assert.Equal(t, []string{totals.LabelHoursWorked, "Justified Absence", totals.LabelHolidayWorked}, rep.Summary.Labels())
	assert.False(t, rep.GeneratedAt.IsZero())
}

func TestReportService_Build_AllEmployees(t *testing.T) {
	svc, _ := newReportFixture()

	rep, err := svc.Build(context.Background(), domain.ReportFilter{})
	require.NoError(t, err)

	assert.Nil(t, rep.Employee)
	assert.Len(t, rep.Entries, 5)
}

func TestReportService_Build_Empty(t *testing.T) {
	svc, _ := newReportFixture()

	rep, err := svc.Build(context.Background(), domain.ReportFilter{StartDate: ptrDate(2030, time.January, 1)})
	require.NoError(t, err)

	assert.NotNil(t, rep.Entries)
	assert.Empty(t, rep.Entries)
	assert.Equal(t, 0.0, rep.Summary.HoursWorked())
	assert.Equal(t, 1, rep.Summary.Len())
}

func TestReportService_Build_UnknownEmployee(t *testing.T) {
	svc, _ := newReportFixture()

	_, err := svc.Build(context.Background(), domain.ReportFilter{EmployeeID: testutil.PtrString("missing")})
	assert.True(t, errors.IsNotFound(err))
}

func TestReportService_Build_InvalidRange(t *testing.T) {
	svc, _ := newReportFixture()

	_, err := svc.Build(context.Background(), domain.ReportFilter{
		StartDate: ptrDate(2024, time.October, 2),
		EndDate:   ptrDate(2024, time.October, 1),
	})

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestReportService_Export(t *testing.T) {
	svc, pub := newReportFixture()
	ctx := i18n.WithLocale(context.Background(), "es")

	filter := domain.ReportFilter{StartDate: ptrDate(2024, time.October, 1), EndDate: ptrDate(2024, time.October, 31)}
	file, rep, err := svc.Export(ctx, filter, "pdf")
	require.NoError(t, err)

	assert.Equal(t, "Reporte_Todos_los_Empleados_octubre de 2024.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
	assert.Len(t, rep.Entries, 4)

	event, ok := pub.Find(messaging.EventReportExported)
	require.True(t, ok)
	payload := event.Payload.(messaging.ReportExportedEvent)
	assert.Equal(t, "pdf", payload.Format)
	assert.Equal(t, file.Name, payload.FileName)
	assert.Equal(t, 4, payload.Rows)
	require.NotNil(t, payload.StartDate)
	assert.Equal(t, "2024-10-01", *payload.StartDate)
	assert.Nil(t, payload.EmployeeID)
}

func TestReportService_Export_UnsupportedFormat(t *testing.T) {
	svc, pub := newReportFixture()

	_, _, err := svc.Export(context.Background(), domain.ReportFilter{}, "docx")

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "UNSUPPORTED_FORMAT", appErr.Code)
	pub.AssertNoEventsPublished(t)
}
