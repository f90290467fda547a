package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/server"
)

// HealthHandler serves the health endpoint used by load balancers and
// uptime checks.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(s)}
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// CheckHealth pings the database and redis. The database is required;
// redis is reported but does not fail the check since the API degrades
// without it rather than stopping.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status := HealthStatus{
		Status: "ok",
		Checks: map[string]string{},
	}
	healthy := true

	dbStart := time.Now()
	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		healthy = false
		status.Checks["database"] = "unreachable"

		h.server.Logger.Error().Err(err).Msg("health check: database ping failed")
		h.recordHealthCheckError("database", err)
	} else {
		status.Checks["database"] = "ok"
		h.server.Logger.Debug().
			Dur("duration", time.Since(dbStart)).
			Msg("health check: database ping ok")
	}

	if err := h.server.Redis.Ping(ctx).Err(); err != nil {
		status.Checks["redis"] = "unreachable"

		h.server.Logger.Error().Err(err).Msg("health check: redis ping failed")
		h.recordHealthCheckError("redis", err)
	} else {
		status.Checks["redis"] = "ok"
	}

	if !healthy {
		status.Status = "degraded"
		return c.JSON(http.StatusServiceUnavailable, status)
	}

	return c.JSON(http.StatusOK, status)
}

func (h *HealthHandler) recordHealthCheckError(component string, err error) {
	if h.server.LoggerService == nil {
		return
	}
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"component": component,
			"error":     err.Error(),
		})
	}
}
