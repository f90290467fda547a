package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnest-hq/wellness-api/internal/model"
)

func testUser() *model.User {
	return &model.User{
		UserID:   uuid.New(),
		SchoolID: uuid.New(),
		Role:     model.RoleCounsellor,
		Email:    "counsellor@northside.example",
	}
}

func TestIssueAndParse(t *testing.T) {
	user := testUser()

	signed, err := Issue("secret", time.Hour, user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Parse("secret", signed)
	require.NoError(t, err)

	assert.Equal(t, user.Email, claims.Subject)
	assert.Equal(t, user.UserID.String(), claims.UserID)
	assert.Equal(t, string(model.RoleCounsellor), claims.Role)
	assert.Equal(t, user.SchoolID.String(), claims.SchoolID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := Issue("secret", time.Hour, testUser())
	require.NoError(t, err)

	_, err = Parse("other-secret", signed)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	signed, err := Issue("secret", -time.Minute, testUser())
	require.NoError(t, err)

	_, err = Parse("secret", signed)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("secret", "not.a.token")
	assert.Error(t, err)
}
