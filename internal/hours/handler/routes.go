package handler

import "github.com/go-chi/chi/v5"

// Handlers groups the HTTP handlers of the hours API
type Handlers struct {
	Employees   *EmployeeHandler
	TimeEntries *TimeEntryHandler
	Reports     *ReportHandler
	DayTypes    *DayTypeHandler
}

// Register mounts the hours API on r. Callers mount it under /api/v1.
func (h Handlers) Register(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.Employees.List)
		r.Post("/", h.Employees.Create)
		r.Get("/{id}", h.Employees.Get)
		r.Put("/{id}", h.Employees.Update)
		r.Delete("/{id}", h.Employees.Delete)
	})

	r.Route("/time-entries", func(r chi.Router) {
		r.Get("/", h.TimeEntries.List)
		r.Post("/", h.TimeEntries.RecordDay)
		r.Get("/{id}", h.TimeEntries.Get)
		r.Delete("/{id}", h.TimeEntries.Delete)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/", h.Reports.Get)
		r.Get("/export", h.Reports.Export)
	})

	r.Get("/day-types", h.DayTypes.List)
}
