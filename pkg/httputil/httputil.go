package httputil

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorBody represents an error in the response
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Meta contains listing metadata
type Meta struct {
	Total  int64  `json:"total"`
	Locale string `json:"locale,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	write(w, statusCode, Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	})
}

// JSONWithMeta sends a JSON response with metadata
func JSONWithMeta(w http.ResponseWriter, statusCode int, data interface{}, meta *Meta) {
	write(w, statusCode, Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
		Meta:    meta,
	})
}

func write(w http.ResponseWriter, statusCode int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// Error sends an error response localized to the request's locale.
// Errors that are not AppErrors are reported as 500 without leaking their text.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		write(w, appErr.StatusCode, Response{
			Error: &ErrorBody{
				Code:    appErr.Code,
				Message: appErr.Localize(r.Context()),
				Details: appErr.Details,
			},
		})
		return
	}

	localizer := i18n.LocalizerFromContext(r.Context())
	write(w, http.StatusInternalServerError, Response{
		Error: &ErrorBody{
			Code:    "INTERNAL_ERROR",
			Message: localizer.T("errors.internal"),
		},
	})
}

// NoContent sends a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Created sends a 201 Created response
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// Attachment sends data as a file download named filename.
func Attachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DecodeJSON decodes the request body into the provided struct
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.BadRequest("invalid JSON body").WithCause(err)
	}
	return nil
}
