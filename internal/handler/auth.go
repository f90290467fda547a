package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/server"
	"github.com/wellnest-hq/wellness-api/internal/service"
	"github.com/wellnest-hq/wellness-api/internal/validation"
)

// AuthHandler serves login, the current-user endpoint, logout, and
// password changes.
type AuthHandler struct {
	Handler
	services *service.Services
}

func NewAuthHandler(s *server.Server, services *service.Services) *AuthHandler {
	return &AuthHandler{Handler: NewHandler(s), services: services}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) Validate() error { return validation.Struct(r) }

func (h *AuthHandler) Login() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *loginRequest) (*service.LoginResult, error) {
		return h.services.Auth.Login(c.Request().Context(), req.Email, req.Password)
	}, http.StatusOK, &loginRequest{})
}

type emptyRequest struct{}

func (r *emptyRequest) Validate() error { return nil }

// Me returns the authenticated user's profile, resolved fresh from the
// database rather than echoed from the token.
func (h *AuthHandler) Me() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *emptyRequest) (*model.User, error) {
		return h.services.Users.Get(c.Request().Context(), callerID(c))
	}, http.StatusOK, &emptyRequest{})
}

// Logout acknowledges a logout. Tokens are stateless, so the client
// simply discards its copy.
func (h *AuthHandler) Logout() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *emptyRequest) error {
		return nil
	}, http.StatusNoContent, &emptyRequest{})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func (r *changePasswordRequest) Validate() error { return validation.Struct(r) }

func (h *AuthHandler) ChangePassword() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *changePasswordRequest) error {
		return h.services.Auth.ChangePassword(c.Request().Context(), callerID(c), req.CurrentPassword, req.NewPassword)
	}, http.StatusNoContent, &changePasswordRequest{})
}
