package handler

import (
	"net/http"
	"strings"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

// parseFilter reads employee_id, start_date and end_date from the query string
func parseFilter(r *http.Request) (domain.ReportFilter, error) {
	q := r.URL.Query()
	var filter domain.ReportFilter
	details := make(map[string]string)

	if id := strings.TrimSpace(q.Get("employee_id")); id != "" {
		filter.EmployeeID = &id
	}

	parseDate := func(field string) *domain.Date {
		raw := strings.TrimSpace(q.Get(field))
		if raw == "" {
			return nil
		}
		d, err := domain.ParseDate(raw)
		if err != nil {
			details[field] = i18n.LocalizerFromContext(r.Context()).T("validation.date")
			return nil
		}
		return &d
	}
	filter.StartDate = parseDate("start_date")
	filter.EndDate = parseDate("end_date")

	if len(details) > 0 {
		return filter, errors.Validation(details)
	}
	return filter, nil
}
