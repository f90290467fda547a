package sqlerr

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnest-hq/wellness-api/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleErrorPassesThroughHTTPErrors(t *testing.T) {
	original := errs.NewForbiddenError("No access to this school", true)

	handled := HandleError(original)

	assert.Same(t, original, handled.(*errs.HTTPError))
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgerr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	httpErr := asHTTPError(t, HandleError(pgerr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Contains(t, httpErr.Message, "Email")
	assert.True(t, httpErr.Override)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgerr := &pgconn.PgError{
		Code:      "23503",
		Severity:  "ERROR",
		TableName: "activity_submissions",
		Message:   `insert or update violates foreign key constraint "activity_submissions_student_id_fkey"`,
	}

	httpErr := asHTTPError(t, HandleError(pgerr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ACTIVITY_SUBMISSION_NOT_FOUND", httpErr.Code)
	assert.False(t, httpErr.Override)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgerr := &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "students",
		ColumnName: "first_name",
	}

	httpErr := asHTTPError(t, HandleError(pgerr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "STUDENT_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "first_name", httpErr.Errors[0].Field)
}

func TestHandleErrorNoRowsWithTableMarker(t *testing.T) {
	err := errors.Wrap(pgx.ErrNoRows, "table:students: get by id")

	httpErr := asHTTPError(t, HandleError(err))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Student not found", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorNoRowsWithoutMarker(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(pgx.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
	assert.False(t, httpErr.Override)
}

func TestHandleErrorUnknownBecomesInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"users_email_key", "email"},
		{"unique_users_email", "email"},
		{"activity_submissions_assignment_student_key", "student"},
		{"", ""},
		{"pkey", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractColumnForUniqueViolation(tt.constraint), tt.constraint)
	}
}
