package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/server"
	"github.com/wellnest-hq/wellness-api/internal/service"
	"github.com/wellnest-hq/wellness-api/internal/validation"
)

// AnalyticsHandler serves the teacher and counsellor dashboards.
type AnalyticsHandler struct {
	Handler
	services *service.Services
}

func NewAnalyticsHandler(s *server.Server, services *service.Services) *AnalyticsHandler {
	return &AnalyticsHandler{Handler: NewHandler(s), services: services}
}

type classOverviewRequest struct {
	ClassID string `param:"class_id" validate:"required,uuid"`
}

func (r *classOverviewRequest) Validate() error { return validation.Struct(r) }

// ClassOverview is the teacher dashboard for one class.
func (h *AnalyticsHandler) ClassOverview() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *classOverviewRequest) (*service.ClassOverview, error) {
		return h.services.Analytics.ClassOverview(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.ClassID))
	}, http.StatusOK, &classOverviewRequest{})
}

// SchoolOverview is the counsellor dashboard for the caller's school.
func (h *AnalyticsHandler) SchoolOverview() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *emptyRequest) (*service.SchoolOverview, error) {
		return h.services.Analytics.SchoolOverview(c.Request().Context(), callerSchoolID(c))
	}, http.StatusOK, &emptyRequest{})
}

type studentDetailRequest struct {
	StudentID string `param:"student_id" validate:"required,uuid"`
}

func (r *studentDetailRequest) Validate() error { return validation.Struct(r) }

// StudentDetail is the counsellor's single-student view.
func (h *AnalyticsHandler) StudentDetail() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentDetailRequest) (*service.StudentDetail, error) {
		return h.services.Analytics.StudentDetail(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.StudentID))
	}, http.StatusOK, &studentDetailRequest{})
}

// TeacherOverview is the caller's cross-class teacher dashboard.
func (h *AnalyticsHandler) TeacherOverview() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *emptyRequest) (*service.TeacherOverview, error) {
		return h.services.Analytics.TeacherOverview(c.Request().Context(), callerSchoolID(c), callerID(c))
	}, http.StatusOK, &emptyRequest{})
}

// ClassList is the counsellor's school-wide class list.
func (h *AnalyticsHandler) ClassList() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *emptyRequest) ([]service.ClassInsight, error) {
		return h.services.Analytics.ClassList(c.Request().Context(), callerSchoolID(c))
	}, http.StatusOK, &emptyRequest{})
}

// AtRiskStudents lists the school's high and critical risk students.
func (h *AnalyticsHandler) AtRiskStudents() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *emptyRequest) ([]service.StudentLine, error) {
		return h.services.Analytics.AtRiskStudents(c.Request().Context(), callerSchoolID(c))
	}, http.StatusOK, &emptyRequest{})
}

// StudentActivityHistory is the per-student activity view.
func (h *AnalyticsHandler) StudentActivityHistory() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentDetailRequest) (*service.StudentActivityHistory, error) {
		return h.services.Analytics.StudentActivityHistory(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.StudentID))
	}, http.StatusOK, &studentDetailRequest{})
}

// StudentAssessmentHistory is the per-student assessment view.
func (h *AnalyticsHandler) StudentAssessmentHistory() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentDetailRequest) ([]service.AssessmentRecord, error) {
		return h.services.Analytics.StudentAssessmentHistory(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.StudentID))
	}, http.StatusOK, &studentDetailRequest{})
}
