// Package token issues and verifies the HS256-signed JWTs used for API
// authentication. Both the auth service (issuing at login) and the auth
// middleware (verifying per request) go through this package so the
// claim layout stays in one place.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/wellnest-hq/wellness-api/internal/model"
)

// AccessClaims is the JWT claim set carried by access tokens.
//
// Subject holds the user's email. UserID, Role, and SchoolID identify
// the user and scope every request to their tenant.
type AccessClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	SchoolID string `json:"school_id,omitempty"`
}

// Issue signs an access token for the given user, valid for expiry.
func Issue(secret string, expiry time.Duration, user *model.User) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		UserID:   user.UserID.String(),
		Role:     string(user.Role),
		SchoolID: user.SchoolID.String(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// Parse verifies an access token's signature and expiry and returns its
// claims. Only HS256 tokens are accepted.
func Parse(secret, tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}

	return claims, nil
}
