package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to the ordered list of violation messages
// reported for it.
type FieldErrors map[string][]string

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Check validates the struct against its declared tags. It returns nil on
// success, a FieldErrors mapping for constraint violations, and a plain error
// for anything that is not a validation outcome (e.g. a non-struct input).
func (v *Validator) Check(input any) (FieldErrors, error) {
	err := v.validate.Struct(input)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, err
	}

	fieldErrors := make(FieldErrors, len(validationErrs))
	for _, fieldErr := range validationErrs {
		field := lowerFirst(fieldErr.Field())
		fieldErrors[field] = append(fieldErrors[field], message(fieldErr))
	}

	return fieldErrors, nil
}

func message(fieldErr validator.FieldError) string {
	field := lowerFirst(fieldErr.Field())

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, lowerFirst(fieldErr.Param()))
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "datetime":
		return fmt.Sprintf("%s must be a valid RFC 3339 timestamp", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
