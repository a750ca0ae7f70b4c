package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fit1-backend/internal/apperr"
	"fit1-backend/internal/tracking"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, ok := tracking.NormalizeDate(fl.Field().String())
		return ok
	})
	mustRegister(v, "timeofday", func(fl validator.FieldLevel) bool {
		_, ok := tracking.NormalizeTime(fl.Field().String())
		return ok
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	v.RegisterStructValidation(validateSleepWindow, SleepRequest{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate checks every constraint on s and returns an *apperr.ValidationError
// listing all of them, or nil.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &apperr.ValidationError{Violations: []apperr.FieldViolation{{
			Field: "", Rule: "invalid", Message: err.Error(),
		}}}
	}

	violations := make([]apperr.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		violations = append(violations, apperr.FieldViolation{
			Field:   field,
			Rule:    fe.Tag(),
			Message: message(field, fe),
		})
	}
	return &apperr.ValidationError{Violations: violations}
}

// fieldPath drops the top-level struct name from a namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "isodate":
		return field + " must be a YYYY-MM-DD calendar date"
	case "timeofday":
		return field + " must be a 24h time like 08:30"
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", field, fe.Param())
	case "maxwindow":
		return field + " must be within 24 hours of startTime"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
