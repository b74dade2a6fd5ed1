package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayType_Rank(t *testing.T) {
	for i, dt := range DayTypes {
		assert.Equal(t, i+1, dt.Rank(), dt)
		assert.True(t, dt.Valid())
	}

	assert.Equal(t, UnknownRank, DayType("Overtime").Rank())
	assert.False(t, DayType("Overtime").Valid())
}

func TestParseDayType(t *testing.T) {
	tests := []struct {
		in   string
		want DayType
	}{
		{"Work", Work},
		{"  holiday ", Holiday},
		{"Trabajo", Work},
		{"Feriado", Holiday},
		{"Suspensión", Suspension},
		{"suspension", Suspension},
		{"Falta Injustificada", UnjustifiedAbsence},
		{"justified_absence", JustifiedAbsence},
		{"Vacaciones", Vacation},
		{"Descanso", Rest},
	}

	for _, tt := range tests {
		got, err := ParseDayType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDayType("Overtime")
	assert.ErrorIs(t, err, ErrInvalidDayType)
}

func TestDayType_NeedsHours(t *testing.T) {
	assert.True(t, Work.NeedsHours(false))
	assert.True(t, Holiday.NeedsHours(true))
	assert.False(t, Holiday.NeedsHours(false))
	assert.False(t, Rest.NeedsHours(true))
	assert.False(t, Vacation.NeedsHours(false))
}

func TestParseClockTime(t *testing.T) {
	c, err := ParseClockTime("08:30")
	require.NoError(t, err)
	assert.Equal(t, NewClockTime(8, 30, 0), c)
	assert.Equal(t, "08:30", c.String())

	c, err = ParseClockTime("17:05:09")
	require.NoError(t, err)
	assert.Equal(t, 17, c.Hour())
	assert.Equal(t, 5, c.Minute())
	assert.Equal(t, 9, c.Second())
	assert.Equal(t, "17:05:09", c.String())

	for _, bad := range []string{"", "25:00", "8h", "12:60"} {
		_, err := ParseClockTime(bad)
		assert.ErrorIs(t, err, ErrInvalidClockTime, bad)
	}
}

func TestParseOptionalClockTime(t *testing.T) {
	c, err := ParseOptionalClockTime("")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = ParseOptionalClockTime("09:00")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, NewClockTime(9, 0, 0), *c)
}

func TestClockTime_HoursUntil(t *testing.T) {
	assert.Equal(t, 8.5, NewClockTime(9, 0, 0).HoursUntil(NewClockTime(17, 30, 0)))
	assert.Equal(t, 8.0, NewClockTime(22, 0, 0).HoursUntil(NewClockTime(6, 0, 0)))
	assert.Equal(t, 0.0, NewClockTime(9, 0, 0).HoursUntil(NewClockTime(9, 0, 0)))
}

func TestClockTime_Scan(t *testing.T) {
	var c ClockTime

	require.NoError(t, c.Scan(time.Date(0, 1, 1, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, NewClockTime(13, 45, 0), c)

	require.NoError(t, c.Scan([]byte("07:15:00")))
	assert.Equal(t, NewClockTime(7, 15, 0), c)

	require.NoError(t, c.Scan("07:15:30.250"))
	assert.Equal(t, NewClockTime(7, 15, 30), c)

	assert.Error(t, c.Scan(42))

	v, err := NewClockTime(7, 5, 0).Value()
	require.NoError(t, err)
	assert.Equal(t, "07:05:00", v)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-10-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-10-03", d.Key())

	var scanned Date
	require.NoError(t, scanned.Scan(time.Date(2024, 10, 3, 0, 0, 0, 0, time.FixedZone("", -3*3600))))
	assert.Equal(t, d, scanned)

	require.NoError(t, scanned.Scan("2024-10-03T00:00:00Z"))
	assert.Equal(t, d, scanned)

	_, err = ParseDate("03/10/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestTimeEntry_JSON(t *testing.T) {
	in := NewClockTime(9, 0, 0)
	entry := TimeEntry{
		ID:         "e1",
		EmployeeID: "emp",
		Date:       NewDate(2024, time.October, 1),
		EntryTime:  &in,
		DayType:    Work,
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "2024-10-01", m["date"])
	assert.Equal(t, "09:00", m["entry_time"])
	assert.Nil(t, m["exit_time"])
	assert.Equal(t, "Work", m["day_type"])
}

func TestTimeEntry_WorkedHours(t *testing.T) {
	in, out := NewClockTime(8, 0, 0), NewClockTime(12, 0, 0)

	assert.Equal(t, 4.0, TimeEntry{DayType: Work, EntryTime: &in, ExitTime: &out}.WorkedHours())
	assert.Equal(t, 4.0, TimeEntry{DayType: Holiday, WorkedOnHoliday: true, EntryTime: &in, ExitTime: &out}.WorkedHours())
	assert.Equal(t, 0.0, TimeEntry{DayType: Holiday, EntryTime: &in, ExitTime: &out}.WorkedHours())
	assert.Equal(t, 0.0, TimeEntry{DayType: Work, EntryTime: &in}.WorkedHours())
	assert.Equal(t, 0.0, TimeEntry{DayType: Rest, EntryTime: &in, ExitTime: &out}.WorkedHours())
}

func TestEmployee_DisplayName(t *testing.T) {
	assert.Equal(t, "Ana Pérez", Employee{FirstName: "Ana", LastName: "Pérez"}.DisplayName())
}

func TestReportFilter_Validate(t *testing.T) {
	start := NewDate(2024, time.October, 1)
	end := NewDate(2024, time.October, 31)

	assert.NoError(t, ReportFilter{}.Validate())
	assert.NoError(t, ReportFilter{StartDate: &start}.Validate())
	assert.NoError(t, ReportFilter{StartDate: &start, EndDate: &end}.Validate())
	assert.NoError(t, ReportFilter{StartDate: &start, EndDate: &start}.Validate())
	assert.ErrorIs(t, ReportFilter{StartDate: &end, EndDate: &start}.Validate(), ErrInvalidRange)
}
