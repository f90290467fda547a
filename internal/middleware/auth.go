package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/lib/token"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// AuthMiddleware holds the app Server so middleware can access shared
// deps like Logger and Config.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth is an Echo middleware that enforces authentication.
//
// It reads "Authorization: Bearer <token>", verifies the JWT, and stores
// the authenticated identity into Echo context for handlers to read:
// user_id, user_email, user_role, and school_id.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			return errs.NewUnauthorizedError("Missing or malformed authorization header", false)
		}

		claims, err := token.Parse(auth.server.Config.Auth.SecretKey, tokenString)
		if err != nil {
			auth.server.Logger.Warn().
				Str("function", "RequireAuth").
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Err(err).
				Msg("token verification failed")

			return errs.NewUnauthorizedError("Invalid or expired token", false)
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Subject)
		c.Set(UserRoleKey, claims.Role)
		c.Set(SchoolIDKey, claims.SchoolID)

		return next(c)
	}
}

// RequireRole returns a middleware that allows only the given roles.
// It must run after RequireAuth.
func (auth *AuthMiddleware) RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := model.Role(GetUserRole(c))

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			auth.server.Logger.Warn().
				Str("function", "RequireRole").
				Str("request_id", GetRequestID(c)).
				Str("user_id", GetUserID(c)).
				Str("user_role", string(role)).
				Msg("role not permitted for route")

			return errs.NewForbiddenError("You do not have permission to perform this action", false)
		}
	}
}
