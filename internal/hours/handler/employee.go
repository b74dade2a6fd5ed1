package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/pkg/httputil"
	"github.com/controlhoras/hours-backend/pkg/logger"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	service *service.EmployeeService
	logger  *logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(svc *service.EmployeeService, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: svc,
		logger:  log,
	}
}

// List lists all employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, employees, &httputil.Meta{Total: int64(len(employees))})
}

// Get gets an employee by ID
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employee)
}

// Create creates a new employee
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.EmployeeInput
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}
	if err := httputil.ValidateCtx(r.Context(), &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	employee, err := h.service.Create(r.Context(), req)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.Created(w, employee)
}

// Update replaces an employee's names
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.EmployeeInput
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}
	if err := httputil.ValidateCtx(r.Context(), &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	employee, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, employee)
}

// Delete deletes an employee without time entries
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.NoContent(w)
}
