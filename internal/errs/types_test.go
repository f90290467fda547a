package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetStatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", NewUnauthorizedError("nope", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("nope", true), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("nope", true, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("nope", true, nil), http.StatusNotFound, "NOT_FOUND"},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"conflict", NewConflictError("nope", true), http.StatusConflict, "CONFLICT"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestCustomCodeOverridesDefault(t *testing.T) {
	code := "STUDENT_NOT_FOUND"

	err := NewNotFoundError("Student not found", true, &code)

	assert.Equal(t, "STUDENT_NOT_FOUND", err.Code)
}

func TestHTTPErrorIsMatchesAnyHTTPError(t *testing.T) {
	err := NewNotFoundError("gone", false, nil)
	wrapped := errors.Wrap(err, "lookup failed")

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var target *HTTPError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, http.StatusNotFound, target.Status)
}

func TestWithMessageCopies(t *testing.T) {
	original := NewConflictError("original", true)

	changed := original.WithMessage("changed")

	assert.Equal(t, "changed", changed.Message)
	assert.Equal(t, "original", original.Message)
	assert.Equal(t, original.Status, changed.Status)
	assert.Equal(t, original.Override, changed.Override)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("OK"))
	assert.Equal(t, "", MakeUpperCaseWithUnderscores(""))
}
