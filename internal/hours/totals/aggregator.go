// Package totals reduces recorded time entries to per-category day counts
// and a total of worked hours.
package totals

import (
	"github.com/controlhoras/hours-backend/internal/hours/domain"
)

// Summary labels that are not day type names
const (
	LabelHoursWorked      = "Hours Worked"
	LabelHolidayWorked    = "Holiday Worked"
	LabelHolidayNotWorked = "Holiday Not Worked"
)

// DayRecord is the resolved state of one calendar date.
type DayRecord struct {
	Date            domain.Date    `json:"date"`
	DayType         domain.DayType `json:"day_type"`
	WorkedOnHoliday bool           `json:"worked_on_holiday"`
	HoursWorked     float64        `json:"hours_worked"`
}

// Label returns the summary category the day is counted under.
func (d DayRecord) Label() string {
	return CategoryLabel(d.DayType, d.WorkedOnHoliday)
}

// CategoryLabel maps a resolved day type and holiday flag to its category.
func CategoryLabel(dayType domain.DayType, workedOnHoliday bool) string {
	if dayType == domain.Holiday {
		if workedOnHoliday {
			return LabelHolidayWorked
		}
		return LabelHolidayNotWorked
	}
	return string(dayType)
}

// Resolve groups entries by date in a single pass. Dates are returned in the
// order they were first seen. The input slice is not modified.
//
// The first row of a date sets its day type and holiday flag. A later row
// replaces the day type only when its rank is strictly lower, and a later
// worked holiday row sets the flag. The flag never goes back to false.
// Hours are added per row using that row's own day type and flag.
func Resolve(entries []domain.TimeEntry) []DayRecord {
	records := make([]DayRecord, 0)
	byDate := make(map[string]int)

	for _, e := range entries {
		key := e.Date.Key()

		i, seen := byDate[key]
		if !seen {
			records = append(records, DayRecord{
				Date:            e.Date,
				DayType:         e.DayType,
				WorkedOnHoliday: e.WorkedOnHoliday,
			})
			i = len(records) - 1
			byDate[key] = i
		} else {
			rec := &records[i]
			if e.DayType.Rank() < rec.DayType.Rank() {
				rec.DayType = e.DayType
			}
			if e.DayType == domain.Holiday && e.WorkedOnHoliday {
				rec.WorkedOnHoliday = true
			}
		}

		records[i].HoursWorked += e.WorkedHours()
	}

	return records
}

// Aggregate computes the summary of entries. It performs no I/O and returns
// the same summary, label order included, for the same input.
func Aggregate(entries []domain.TimeEntry) Summary {
	return Summarize(Resolve(entries))
}

// Summarize builds the summary of already resolved days. "Hours Worked" is
// always first; categories follow in order of first appearance.
func Summarize(days []DayRecord) Summary {
	s := newSummary()

	var hours float64
	for _, d := range days {
		s.add(d.Label(), 1)
		hours += d.HoursWorked
	}
	s.set(LabelHoursWorked, hours)

	return s
}
