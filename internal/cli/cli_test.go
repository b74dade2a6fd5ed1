package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/internal/hours/export"
	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
	"github.com/controlhoras/hours-backend/pkg/testutil"
)

// testApp wires an App backed by in-memory stores
func testApp(t *testing.T) *App {
	t.Helper()

	clock := func(h, m int) *domain.ClockTime {
		c := domain.NewClockTime(h, m, 0)
		return &c
	}

	employees := testutil.NewMemoryEmployees(domain.Employee{ID: "emp", FirstName: "Ana", LastName: "Pérez"})
	entries := &testutil.MemoryTimeEntries{Rows: []domain.TimeEntry{
		{ID: "1", EmployeeID: "emp", EmployeeName: "Ana Pérez", Date: domain.NewDate(2024, time.October, 1), DayType: domain.Work, EntryTime: clock(9, 0), ExitTime: clock(12, 0)},
		{ID: "2", EmployeeID: "emp", EmployeeName: "Ana Pérez", Date: domain.NewDate(2024, time.October, 1), DayType: domain.Work, EntryTime: clock(13, 0), ExitTime: clock(17, 45)},
		{ID: "3", EmployeeID: "emp", EmployeeName: "Ana Pérez", Date: domain.NewDate(2024, time.October, 2), DayType: domain.Vacation},
	}}

	log := logger.Nop()
	publisher := events.NewNopPublisher(log)

	return &App{
		Employees:     service.NewEmployeeService(employees, publisher, log),
		Reports:       service.NewReportService(employees, entries, publisher, export.Options{}, log),
		DefaultLocale: "en",
		OutputDir:     t.TempDir(),
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTotalsCmd(t *testing.T) {
	out, err := execute(t, testApp(t), "totals", "--employee", "emp", "--from", "2024-10-01", "--to", "2024-10-31")
	require.NoError(t, err)

	assert.Contains(t, out, "Ana Pérez")
	assert.Contains(t, out, "Period: 2024-10-01 to 2024-10-31")
	assert.Regexp(t, `Hours Worked\s+7h 45m`, out)
	assert.Regexp(t, `Work\s+1`, out)
	assert.Regexp(t, `Vacation\s+1`, out)
}

func TestTotalsCmd_Spanish(t *testing.T) {
	out, err := execute(t, testApp(t), "totals", "--lang", "es")
	require.NoError(t, err)

	assert.Contains(t, out, "Todos los empleados")
	assert.Contains(t, out, "Totales:")
	assert.Regexp(t, `Horas Trabajadas\s+7h 45m`, out)
}

func TestTotalsCmd_BadDate(t *testing.T) {
	_, err := execute(t, testApp(t), "totals", "--from", "10/01/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from")
}

func TestExportCmd(t *testing.T) {
	app := testApp(t)

	out, err := execute(t, app, "export", "--format", "csv", "--employee", "emp", "--from", "2024-10-01")
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(app.OutputDir, "Report_Ana_Pérez_October 2024.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hours Worked,7h 45m")
}

func TestExportCmd_UnsupportedFormat(t *testing.T) {
	_, err := execute(t, testApp(t), "export", "--format", "odt")
	require.Error(t, err)
}

func TestDayTypesCmd(t *testing.T) {
	out, err := execute(t, testApp(t), "day-types", "--lang", "es")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Regexp(t, `^1\s+Unjustified Absence\s+Falta Injustificada$`, lines[1])
	assert.Regexp(t, `^7\s+Work\s+Trabajo$`, lines[7])
}

func TestEmployeesCmd(t *testing.T) {
	out, err := execute(t, testApp(t), "employees")
	require.NoError(t, err)
	assert.Regexp(t, `emp\s+Ana Pérez`, out)
}

type stubEvents struct {
	events []*messaging.Event
}

func (s *stubEvents) Stream(ctx context.Context, handle func(*messaging.Event) error) error {
	for _, e := range s.events {
		if err := handle(e); err != nil {
			return err
		}
	}
	return nil
}

func TestWatchCmd(t *testing.T) {
	app := testApp(t)

	_, err := execute(t, app, "watch")
	assert.ErrorIs(t, err, errEventsDisabled)

	data, _ := json.Marshal(messaging.EmployeeDeletedEvent{EmployeeID: "emp"})
	app.Events = &stubEvents{events: []*messaging.Event{{
		Type:      messaging.EventEmployeeDeleted,
		Timestamp: time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC),
		Data:      data,
	}}}

	out, err := execute(t, app, "watch")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-10-01T12:00:00Z")
	assert.Contains(t, out, messaging.EventEmployeeDeleted)
	assert.Contains(t, out, `"employee_id":"emp"`)
}
