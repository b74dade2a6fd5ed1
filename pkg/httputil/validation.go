package httputil

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so details match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate validates a struct using go-playground/validator with English messages
func Validate(v interface{}) error {
	return ValidateCtx(context.Background(), v)
}

// ValidateCtx validates a struct and localizes messages to the locale in ctx
func ValidateCtx(ctx context.Context, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.BadRequest(err.Error())
	}

	localizer := i18n.LocalizerFromContext(ctx)
	details := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		details[e.Field()] = formatValidationError(localizer, e)
	}

	return errors.Validation(details)
}

func formatValidationError(l *i18n.Localizer, e validator.FieldError) string {
	return l.TOr("validation."+e.Tag(), l.T("validation.invalid"), map[string]string{"param": e.Param()})
}

// RegisterCustomValidation registers a custom validation function
func RegisterCustomValidation(tag string, fn validator.Func) error {
	return validate.RegisterValidation(tag, fn)
}
