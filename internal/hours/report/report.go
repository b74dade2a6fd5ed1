// Package report holds a built hours report and its presentation helpers
// shared by the HTTP API, the document exporters and the CLI.
package report

import (
	"strings"
	"time"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/totals"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

// Report is the result of running the totals aggregator over a filtered
// set of time entries.
type Report struct {
	Filter      domain.ReportFilter `json:"filter"`
	Employee    *domain.Employee    `json:"employee,omitempty"`
	Entries     []domain.TimeEntry  `json:"entries"`
	Summary     totals.Summary      `json:"totals"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// fileNameReplacer drops characters that would escape the target directory
var fileNameReplacer = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

// SuggestedFileName returns "<Report>_<First>_<Last>[_<month year>].<ext>",
// or "<Report>_<All_Employees>..." when no employee is selected. The month
// and year come from the start date.
func (r *Report) SuggestedFileName(l *i18n.Localizer, ext string) string {
	var b strings.Builder
	b.WriteString(l.T("report.file_prefix"))
	b.WriteByte('_')

	if r.Employee != nil {
		b.WriteString(r.Employee.FirstName)
		b.WriteByte('_')
		b.WriteString(r.Employee.LastName)
	} else {
		b.WriteString(l.T("report.all_employees"))
	}

	if r.Filter.StartDate != nil {
		b.WriteByte('_')
		b.WriteString(l.MonthYear(r.Filter.StartDate.Time))
	}

	if ext != "" {
		b.WriteByte('.')
		b.WriteString(strings.TrimPrefix(ext, "."))
	}

	return fileNameReplacer.Replace(b.String())
}

// Subject names the selected employee or the all employees caption.
func (r *Report) Subject(l *i18n.Localizer) string {
	if r.Employee != nil {
		return r.Employee.DisplayName()
	}
	return l.T("report.all_employees_caption")
}

// Period renders the date range with open bounds shown as "...".
func (r *Report) Period(l *i18n.Localizer) string {
	bound := func(d *domain.Date) string {
		if d == nil {
			return l.T("report.open_bound")
		}
		return d.Key()
	}
	return l.T("report.period", map[string]string{
		"from": bound(r.Filter.StartDate),
		"to":   bound(r.Filter.EndDate),
	})
}

// DayTypeCell renders the day type column of a row, adding the worked on
// holiday suffix when it applies.
func DayTypeCell(l *i18n.Localizer, e domain.TimeEntry) string {
	name := DayTypeName(l, e.DayType)
	if Highlighted(e) {
		name += l.T("report.worked_on_holiday")
	}
	return name
}

// Highlighted reports whether a row is a worked holiday.
func Highlighted(e domain.TimeEntry) bool {
	return e.DayType == domain.Holiday && e.WorkedOnHoliday
}

// DayTypeName translates a day type, falling back to its stored name.
func DayTypeName(l *i18n.Localizer, dt domain.DayType) string {
	return l.TOr("day_types."+string(dt), string(dt))
}

// ClockCell renders an optional time, "-" when absent.
func ClockCell(c *domain.ClockTime) string {
	if c == nil {
		return "-"
	}
	return c.String()
}

// CategoryName translates a totals label.
func CategoryName(l *i18n.Localizer, label string) string {
	if name, ok := l.Lookup("categories." + label); ok {
		return name
	}
	return DayTypeName(l, domain.DayType(label))
}

// TotalsLines returns the localized label and formatted value of every
// summary line in summary order.
func (r *Report) TotalsLines(l *i18n.Localizer) [][2]string {
	lines := r.Summary.Lines()
	out := make([][2]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, [2]string{CategoryName(l, line.Label), line.Display()})
	}
	return out
}

// TableHeader returns the localized column captions of the entries table.
func TableHeader(l *i18n.Localizer) []string {
	return []string{
		l.T("table.employee"),
		l.T("table.date"),
		l.T("table.entry"),
		l.T("table.exit"),
		l.T("table.day_type"),
	}
}

// TableRow renders one entry as table cells in TableHeader order.
func TableRow(l *i18n.Localizer, e domain.TimeEntry) []string {
	return []string{
		e.EmployeeName,
		e.Date.Key(),
		ClockCell(e.EntryTime),
		ClockCell(e.ExitTime),
		DayTypeCell(l, e),
	}
}
