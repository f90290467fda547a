package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/lib/token"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// AuthService issues access tokens and verifies credentials.
type AuthService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewAuthService(s *server.Server, repos *repository.Repositories) *AuthService {
	return &AuthService{
		server: s,
		repos:  repos,
	}
}

// LoginResult is returned on successful login.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        *model.User `json:"user"`
}

// Login verifies email + password and returns a signed access token with
// the user payload. Unknown email and wrong password both return the
// same 401 so the endpoint does not leak which accounts exist.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := svc.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		svc.server.Logger.Warn().Str("email", email).Msg("login attempt for unknown email")
		return nil, errs.NewUnauthorizedError("Incorrect email or password", true)
	}

	if user.HashedPassword == nil {
		return nil, errs.NewUnauthorizedError("Incorrect email or password", true)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(password)); err != nil {
		svc.server.Logger.Warn().Str("user_id", user.UserID.String()).Msg("login attempt with wrong password")
		return nil, errs.NewUnauthorizedError("Incorrect email or password", true)
	}

	expiry := time.Duration(svc.server.Config.Auth.TokenExpiryMinutes) * time.Minute

	accessToken, err := token.Issue(svc.server.Config.Auth.SecretKey, expiry, user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(expiry.Seconds()),
		User:        user,
	}, nil
}

// HashPassword bcrypt-hashes a plaintext password for storage.
func (svc *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hashed), nil
}

// ChangePassword verifies the current password and stores a new hash.
func (svc *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := svc.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.HashedPassword == nil || bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(current)) != nil {
		return errs.NewUnauthorizedError("Current password is incorrect", true)
	}

	hashed, err := svc.HashPassword(next)
	if err != nil {
		return err
	}

	return svc.repos.Users.UpdatePassword(ctx, userID, hashed)
}
