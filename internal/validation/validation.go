// Package validation binds and validates request payloads.
//
// Request types declare rules with validator struct tags and implement
// Validatable; BindAndValidate runs Echo's binder followed by the rules
// and reshapes failures into field-level errors the client understands.
package validation

import (
	"strings"
	"sync"

	"github.com/wellnest-hq/wellness-api/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves. In practice this is always a pointer-to-struct
// whose Validate calls validation.Struct.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a single validation issue that cannot be
// expressed through validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error so custom checks can be returned
// from Validate alongside tag-based failures.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Struct runs tag-based validation against v using a shared validator
// instance. Request types call this from their Validate method.
func Struct(v any) error {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate.Struct(v)
}

// BindAndValidate binds the request into payload and validates it.
//
// payload must be a pointer so Echo's binder can populate it. Failures
// come back as a 400 *errs.HTTPError carrying field errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		// Echo's bind errors read "code=400, message=<detail>"; surface just
		// the detail. Fall back to the raw error if the shape ever changes.
		message := err.Error()
		if _, detail, found := strings.Cut(message, "message="); found {
			message = detail
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}
