package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/server"
	"github.com/wellnest-hq/wellness-api/internal/service"
	"github.com/wellnest-hq/wellness-api/internal/validation"
)

// EngagementHandler serves app-open tracking and streak views.
type EngagementHandler struct {
	Handler
	services *service.Services
}

func NewEngagementHandler(s *server.Server, services *service.Services) *EngagementHandler {
	return &EngagementHandler{Handler: NewHandler(s), services: services}
}

type recordAppOpenRequest struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	OpenedAt  *string `json:"opened_at"`
}

func (r *recordAppOpenRequest) Validate() error { return validation.Struct(r) }

// RecordAppOpen logs an app open for a student. opened_at defaults to
// now and accepts RFC 3339.
func (h *EngagementHandler) RecordAppOpen() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *recordAppOpenRequest) error {
		at := time.Now()
		if req.OpenedAt != nil && *req.OpenedAt != "" {
			parsed, err := time.Parse(time.RFC3339, *req.OpenedAt)
			if err != nil {
				return errs.NewBadRequestError("opened_at must be an RFC 3339 timestamp", true, nil, nil, nil)
			}
			at = parsed
		}

		return h.services.Engagement.RecordAppOpen(c.Request().Context(), uuid.MustParse(req.StudentID), at)
	}, http.StatusNoContent, &recordAppOpenRequest{})
}

type streakStudentRequest struct {
	StudentID string `param:"student_id" validate:"required,uuid"`
}

func (r *streakStudentRequest) Validate() error { return validation.Struct(r) }

// StreakDetail returns the full streak view for one student: rollup,
// 28-day history, and weekly summaries.
func (h *EngagementHandler) StreakDetail() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *streakStudentRequest) (*service.StreakDetail, error) {
		return h.services.Engagement.GetStreakDetail(c.Request().Context(), uuid.MustParse(req.StudentID))
	}, http.StatusOK, &streakStudentRequest{})
}
