package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/wellnest-hq/wellness-api/internal/errs"

	"github.com/go-playground/validator/v10"
)

// extractValidationError converts validator (or custom) validation errors
// into a summary message plus per-field errors.
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		if customErrors, ok := err.(CustomValidationErrors); ok {
			for _, custom := range customErrors {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: custom.Field,
					Error: custom.Message,
				})
			}
			return "Validation failed", fieldErrors
		}
		// Not a shape we understand; report it as a single opaque failure.
		return "Validation failed", []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, ve := range validationErrors {
		field := strings.ToLower(ve.Field())
		var msg string

		switch ve.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if ve.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", ve.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", ve.Param())
			}

		case "max":
			if ve.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", ve.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", ve.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", ve.Param())

		case "email":
			msg = "must be a valid email address"

		case "e164":
			msg = "must be a valid phone number with country code"

		case "uuid":
			msg = "must be a valid UUID"

		case "datetime":
			msg = fmt.Sprintf("must be a date in %s format", ve.Param())

		case "dive":
			msg = "some items are invalid"

		default:
			if ve.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, ve.Tag(), ve.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, ve.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks format only, not version or variant semantics.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}
