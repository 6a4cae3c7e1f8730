package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var global *validator.Validate

const (
	ErrInvalidFormat      = "Invalid format"
	ErrFieldRequired      = "Field is required"
	ErrFieldExceedsMaxLen = "Field exceeds maximum length"
	ErrFieldBelowMinLen   = "Field is below minimum length"
	ErrFieldExceedsMaxVal = "Field exceeds maximum value"
	ErrFieldBelowMinVal   = "Field is below minimum value"
	ErrUnknownValue       = "Value is not allowed"
	ErrUnknownValidation  = "Unknown validation error"
)

// FieldErrors maps a JSON field name to its messages.
type FieldErrors map[string][]string

// Messages overrides the default message of a field, keyed by JSON field name.
type Messages map[string]string

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON name so errors line up with the request body
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

// Validate checks structure and returns every failing field, or nil.
func Validate(ctx context.Context, structure any, messages Messages) FieldErrors {
	return parseValidationErrors(Validator().StructCtx(ctx, structure), messages)
}

func parseValidationErrors(err error, messages Messages) FieldErrors {
	if err == nil {
		return nil
	}
	var vErrors validator.ValidationErrors
	if !errors.As(err, &vErrors) || len(vErrors) == 0 {
		return FieldErrors{"": {ErrUnknownValidation}}
	}

	fieldErrors := make(FieldErrors, len(vErrors))
	for _, ve := range vErrors {
		field := ve.Field()
		msg, ok := messages[field]
		if !ok {
			msg = defaultMessage(ve.Tag())
		}
		fieldErrors[field] = append(fieldErrors[field], msg)
	}
	return fieldErrors
}

func defaultMessage(tag string) string {
	switch tag {
	case "required":
		return ErrFieldRequired
	case "max":
		return ErrFieldExceedsMaxLen
	case "min":
		return ErrFieldBelowMinLen
	case "lt", "lte":
		return ErrFieldExceedsMaxVal
	case "gt", "gte":
		return ErrFieldBelowMinVal
	case "email", "url":
		return ErrInvalidFormat
	case "oneof", "eq":
		return ErrUnknownValue
	default:
		return ErrUnknownValidation
	}
}
