package handler

import (
	"net/http"

	"github.com/controlhoras/hours-backend/internal/hours/export"
	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/pkg/httputil"
	"github.com/controlhoras/hours-backend/pkg/i18n"
	"github.com/controlhoras/hours-backend/pkg/logger"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	service *service.ReportService
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(svc *service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		logger:  log,
	}
}

// Get returns the rows and totals for the filter in the query string
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	rep, err := h.service.Build(r.Context(), filter)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	l := i18n.LocalizerFromContext(r.Context())
	httputil.JSONWithMeta(w, http.StatusOK, rep, &httputil.Meta{
		Total:  int64(len(rep.Entries)),
		Locale: l.GetLocale(),
	})
}

// Export downloads the report as pdf, xlsx or csv (default pdf)
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(export.FormatPDF)
	}

	file, _, err := h.service.Export(r.Context(), filter, format)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.Attachment(w, file.Name, file.ContentType, file.Data)
}
