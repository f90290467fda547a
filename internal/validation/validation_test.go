package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnest-hq/wellness-api/internal/errs"
)

type enrolRequest struct {
	FirstName   string  `json:"first_name" validate:"required"`
	ParentEmail *string `json:"parent_email" validate:"omitempty,email"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female other prefer_not_to_say"`
	ClassID     *string `json:"class_id" validate:"omitempty,uuid"`
}

func (r *enrolRequest) Validate() error {
	return Struct(r)
}

func newContext(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func fieldErrors(t *testing.T, err error) []errs.FieldError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr.Errors
}

func TestBindAndValidateAcceptsValidPayload(t *testing.T) {
	c := newContext(t, `{"first_name":"Maia","parent_email":"parent@example.com"}`)
	payload := &enrolRequest{}

	err := BindAndValidate(c, payload)

	require.NoError(t, err)
	assert.Equal(t, "Maia", payload.FirstName)
	require.NotNil(t, payload.ParentEmail)
	assert.Equal(t, "parent@example.com", *payload.ParentEmail)
}

func TestBindAndValidateReportsMissingRequiredField(t *testing.T) {
	c := newContext(t, `{"parent_email":"parent@example.com"}`)

	err := BindAndValidate(c, &enrolRequest{})

	fields := fieldErrors(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "firstname", fields[0].Field)
	assert.Equal(t, "is required", fields[0].Error)
}

func TestBindAndValidateReportsTagFailures(t *testing.T) {
	c := newContext(t, `{"first_name":"Maia","parent_email":"not-an-email","gender":"unknown","class_id":"nope"}`)

	err := BindAndValidate(c, &enrolRequest{})

	fields := fieldErrors(t, err)
	require.Len(t, fields, 3)

	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Error
	}
	assert.Equal(t, "must be a valid email address", byField["parentemail"])
	assert.Contains(t, byField["gender"], "must be one of")
	assert.Equal(t, "must be a valid UUID", byField["classid"])
}

func TestBindAndValidateRejectsMalformedJSON(t *testing.T) {
	c := newContext(t, `{"first_name":`)

	err := BindAndValidate(c, &enrolRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0d1f9a10-6f2e-4d7c-9c3b-2b8a1f4e5d6c"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("0d1f9a106f2e4d7c9c3b2b8a1f4e5d6c"))
}
