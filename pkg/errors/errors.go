package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/controlhoras/hours-backend/pkg/i18n"
)

// Standard error types
var (
	ErrNotFound    = errors.New("resource not found")
	ErrBadRequest  = errors.New("bad request")
	ErrConflict    = errors.New("resource conflict")
	ErrInternal    = errors.New("internal server error")
	ErrValidation  = errors.New("validation error")
	ErrUnsupported = errors.New("unsupported")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	MessageKey string            `json:"-"` // i18n key for localization
	Params     map[string]string `json:"-"` // Parameters for i18n interpolation
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`

	// resource is an i18n key under "resources." substituted into {resource}
	resource string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Localize returns the message in the locale carried by ctx
func (e *AppError) Localize(ctx context.Context) string {
	return e.LocalizeWith(i18n.LocalizerFromContext(ctx))
}

// LocalizeWith returns the message using a specific localizer
func (e *AppError) LocalizeWith(l *i18n.Localizer) string {
	if e.MessageKey == "" {
		return e.Message
	}

	params := make(map[string]string, len(e.Params)+1)
	for k, v := range e.Params {
		params[k] = v
	}
	if e.resource != "" {
		params["resource"] = l.TOr("resources."+e.resource, e.resource)
	}

	return l.TOr(e.MessageKey, e.Message, params)
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewWithKey creates a new AppError with an i18n key
func NewWithKey(code string, messageKey string, statusCode int, params ...map[string]string) *AppError {
	var p map[string]string
	if len(params) > 0 {
		p = params[0]
	}
	return &AppError{
		Code:       code,
		Message:    i18n.T(messageKey, p),
		MessageKey: messageKey,
		Params:     p,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// WithCause attaches the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// Common error constructors

// NotFound builds a 404 for a resource key such as "employee" or "time_entry".
func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resourceName(resource)),
		MessageKey: "errors.not_found",
		StatusCode: http.StatusNotFound,
		resource:   resource,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// BadRequestKey builds a 400 whose message comes from the catalog.
func BadRequestKey(messageKey string) *AppError {
	e := NewWithKey("BAD_REQUEST", messageKey, http.StatusBadRequest)
	e.Err = ErrBadRequest
	return e
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:        ErrConflict,
		Code:       "CONFLICT",
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// Duplicate builds a 409 for a unique constraint violation on resource.
func Duplicate(resource string) *AppError {
	return &AppError{
		Err:        ErrConflict,
		Code:       "DUPLICATE",
		Message:    fmt.Sprintf("%s already exists", resourceName(resource)),
		MessageKey: "errors.duplicate",
		StatusCode: http.StatusConflict,
		resource:   resource,
	}
}

// InvalidReference builds a 400 for a foreign key pointing at a missing resource.
func InvalidReference(resource string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "INVALID_REFERENCE",
		Message:    fmt.Sprintf("Referenced %s does not exist", resourceName(resource)),
		MessageKey: "errors.invalid_reference",
		StatusCode: http.StatusBadRequest,
		resource:   resource,
	}
}

// EmployeeInUse is returned when deleting an employee that still owns time entries.
func EmployeeInUse() *AppError {
	e := NewWithKey("EMPLOYEE_IN_USE", "errors.employee_in_use", http.StatusConflict)
	e.Err = ErrConflict
	return e
}

// UnsupportedFormat is returned for an unknown export format.
func UnsupportedFormat(format string) *AppError {
	e := NewWithKey("UNSUPPORTED_FORMAT", "errors.unsupported_format", http.StatusBadRequest)
	e.Err = ErrUnsupported
	return e.WithDetails(map[string]string{"format": format})
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		MessageKey: "errors.internal",
		StatusCode: http.StatusInternalServerError,
	}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		MessageKey: "errors.validation_failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}

func resourceName(resource string) string {
	return i18n.NewLocalizer(i18n.DefaultLocale).TOr("resources."+resource, resource)
}

// IsNotFound reports whether err is, or wraps, a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
