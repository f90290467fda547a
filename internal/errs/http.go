package errs

import "strings"

// FieldError is a single field-level validation error, e.g.
//
//	{ "field": "parent_email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType enumerates follow-up actions a client can be instructed to take.
type ActionType string

const (
	// ActionTypeRedirect instructs the client to navigate elsewhere.
	// Value carries the target URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional instruction attached to an error response,
// mostly useful in auth flows ("redirect to login").
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the canonical API error. It satisfies the error interface
// and serializes directly into the response body.
//
// Override signals to the client UI that Message is safe to display
// verbatim instead of a generic fallback.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, &HTTPError{}) match any *HTTPError regardless
// of code or status. Callers that care about the specific status should
// use errors.As and inspect the fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with only Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
// Used to derive stable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
