package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/controlhoras/hours-backend/internal/hours/domain"
	"github.com/controlhoras/hours-backend/pkg/httputil"
)

func init() {
	validators := map[string]validator.Func{
		"day_type": func(fl validator.FieldLevel) bool {
			_, err := domain.ParseDayType(fl.Field().String())
			return err == nil
		},
		"clock": func(fl validator.FieldLevel) bool {
			_, err := domain.ParseClockTime(fl.Field().String())
			return err == nil
		},
		"date": func(fl validator.FieldLevel) bool {
			_, err := domain.ParseDate(fl.Field().String())
			return err == nil
		},
	}

	for tag, fn := range validators {
		if err := httputil.RegisterCustomValidation(tag, fn); err != nil {
			panic("register validator " + tag + ": " + err.Error())
		}
	}
}
