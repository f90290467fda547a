package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/server"
	"github.com/wellnest-hq/wellness-api/internal/service"
	"github.com/wellnest-hq/wellness-api/internal/validation"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the school-admin dashboard and report exports.
type AdminHandler struct {
	Handler
	services *service.Services
}

func NewAdminHandler(s *server.Server, services *service.Services) *AdminHandler {
	return &AdminHandler{Handler: NewHandler(s), services: services}
}

// CounsellorWorkload lists the school's counsellors with open case
// counts.
func (h *AdminHandler) CounsellorWorkload() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *emptyRequest) ([]service.CounsellorLoad, error) {
		return h.services.Analytics.CounsellorWorkload(c.Request().Context(), callerSchoolID(c))
	}, http.StatusOK, &emptyRequest{})
}

// GradeAnalysis aggregates wellbeing per grade level.
func (h *AdminHandler) GradeAnalysis() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *emptyRequest) ([]service.GradeInsight, error) {
		return h.services.Analytics.GradeAnalysis(c.Request().Context(), callerSchoolID(c))
	}, http.StatusOK, &emptyRequest{})
}

type periodSummaryRequest struct {
	Days int `query:"days" validate:"omitempty,min=1,max=365"`
}

func (r *periodSummaryRequest) Validate() error { return validation.Struct(r) }

// PeriodSummary rolls up recent assessments, submissions, and cases
// over a trailing window (?days=, default 30).
func (h *AdminHandler) PeriodSummary() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *periodSummaryRequest) (*service.PeriodSummary, error) {
		return h.services.Analytics.PeriodSummary(c.Request().Context(), callerSchoolID(c), req.Days)
	}, http.StatusOK, &periodSummaryRequest{})
}

// PlatformReport exports the per-school platform summary as a
// spreadsheet download.
func (h *AdminHandler) PlatformReport() echo.HandlerFunc {
	return HandleFile(h.Handler, func(c echo.Context, req *emptyRequest) ([]byte, error) {
		return h.services.Reports.PlatformSummaryXLSX(c.Request().Context())
	}, http.StatusOK, &emptyRequest{}, "platform-summary.xlsx", xlsxContentType)
}
