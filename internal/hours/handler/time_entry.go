package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/pkg/httputil"
	"github.com/controlhoras/hours-backend/pkg/logger"
)

// TimeEntryHandler handles time entry endpoints
type TimeEntryHandler struct {
	service *service.TimeEntryService
	logger  *logger.Logger
}

// NewTimeEntryHandler creates a new time entry handler
func NewTimeEntryHandler(svc *service.TimeEntryService, log *logger.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{
		service: svc,
		logger:  log,
	}
}

// List lists time entries filtered by employee_id, start_date and end_date
func (h *TimeEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	entries, err := h.service.ListEntries(r.Context(), filter)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, entries, &httputil.Meta{Total: int64(len(entries))})
}

// RecordDay records one employee day, one row per interval
func (h *TimeEntryHandler) RecordDay(w http.ResponseWriter, r *http.Request) {
	var req service.RecordDayInput
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}
	if err := httputil.ValidateCtx(r.Context(), &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	entries, err := h.service.RecordDay(r.Context(), req)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.Created(w, entries)
}

// Get gets a time entry by ID
func (h *TimeEntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, entry)
}

// Delete deletes a time entry
func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.NoContent(w)
}
