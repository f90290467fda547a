package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/handler"
)

// registerSystemRoutes attaches the non-API surface: health, static
// assets, and the API reference.
func registerSystemRoutes(e *echo.Echo, handlers *handler.Handlers) {
	e.GET("/status", handlers.Health.CheckHealth)
	e.Static("/static", "static")
	e.GET("/docs", handlers.OpenAPI.ServeOpenAPIUI)
}
