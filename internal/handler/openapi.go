package handler

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// OpenAPIHandler serves the API reference UI.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{Handler: NewHandler(s)}
}

// ServeOpenAPIUI serves the static HTML page that renders the OpenAPI
// document from /static/openapi.json.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	html, err := os.ReadFile("static/openapi.html")
	if err != nil {
		h.server.Logger.Error().Err(err).Msg("failed to read OpenAPI UI page")
		return errs.NewInternalServerError()
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, html)
}
