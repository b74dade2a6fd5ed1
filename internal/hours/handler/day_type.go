package handler

import (
	"net/http"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/internal/hours/report"
	"github.com/controlhoras/hours-backend/pkg/httputil"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

// DayTypeView describes a day type for form pickers
type DayTypeView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Rank  int    `json:"rank"`
	// Hours reports whether the type always carries worked time
	Hours bool `json:"hours"`
}

// DayTypeHandler lists the day types
type DayTypeHandler struct{}

// NewDayTypeHandler creates a new day type handler
func NewDayTypeHandler() *DayTypeHandler {
	return &DayTypeHandler{}
}

// List returns the day types in precedence order
func (h *DayTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, DayTypeViews(i18n.LocalizerFromContext(r.Context())))
}

// DayTypeViews returns the localized day types in precedence order
func DayTypeViews(l *i18n.Localizer) []DayTypeView {
	views := make([]DayTypeView, 0, len(domain.DayTypes))
	for _, dt := range domain.DayTypes {
		views = append(views, DayTypeView{
			Name:  string(dt),
			Label: report.DayTypeName(l, dt),
			Rank:  dt.Rank(),
			Hours: dt.NeedsHours(false),
		})
	}
	return views
}
