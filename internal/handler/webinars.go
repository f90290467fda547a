package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
	"github.com/wellnest-hq/wellness-api/internal/service"
	"github.com/wellnest-hq/wellness-api/internal/validation"
)

// WebinarsHandler serves the webinar catalogue, staff registrations,
// and student attendance roll-ups.
type WebinarsHandler struct {
	Handler
	services *service.Services
}

func NewWebinarsHandler(s *server.Server, services *service.Services) *WebinarsHandler {
	return &WebinarsHandler{Handler: NewHandler(s), services: services}
}

type createWebinarRequest struct {
	Title           string          `json:"title" validate:"required,min=2,max=200"`
	Description     *string         `json:"description"`
	SpeakerName     string          `json:"speaker_name" validate:"required"`
	SpeakerTitle    *string         `json:"speaker_title"`
	SpeakerBio      *string         `json:"speaker_bio"`
	SpeakerImageURL *string         `json:"speaker_image_url"`
	Date            string          `json:"date" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=1"`
	Category        string          `json:"category" validate:"required"`
	Level           string          `json:"level" validate:"required,oneof=Beginner Intermediate Advanced 'All Levels'"`
	Price           decimal.Decimal `json:"price"`
	Topics          []string        `json:"topics"`
	VideoURL        *string         `json:"video_url"`
	ThumbnailURL    *string         `json:"thumbnail_url"`
	MaxAttendees    *int            `json:"max_attendees" validate:"omitempty,min=1"`
}

func (r *createWebinarRequest) Validate() error { return validation.Struct(r) }

func (h *WebinarsHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createWebinarRequest) (*model.Webinar, error) {
		return h.services.Webinars.Create(c.Request().Context(), repository.CreateWebinarParams{
			Title:           req.Title,
			Description:     req.Description,
			SpeakerName:     req.SpeakerName,
			SpeakerTitle:    req.SpeakerTitle,
			SpeakerBio:      req.SpeakerBio,
			SpeakerImageURL: req.SpeakerImageURL,
			Date:            req.Date,
			DurationMinutes: req.DurationMinutes,
			Category:        req.Category,
			Level:           model.WebinarLevel(req.Level),
			Price:           req.Price,
			Topics:          req.Topics,
			VideoURL:        req.VideoURL,
			ThumbnailURL:    req.ThumbnailURL,
			MaxAttendees:    req.MaxAttendees,
		})
	}, http.StatusCreated, &createWebinarRequest{})
}

type webinarIDRequest struct {
	WebinarID string `param:"id" validate:"required,uuid"`
}

func (r *webinarIDRequest) Validate() error { return validation.Struct(r) }

func (h *WebinarsHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *webinarIDRequest) (*model.Webinar, error) {
		return h.services.Webinars.Get(c.Request().Context(), uuid.MustParse(req.WebinarID))
	}, http.StatusOK, &webinarIDRequest{})
}

type listWebinarsRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=Upcoming Live Recorded Cancelled"`
	Category string `query:"category"`
	Level    string `query:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced 'All Levels'"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

func (r *listWebinarsRequest) Validate() error { return validation.Struct(r) }

func (h *WebinarsHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listWebinarsRequest) (*ListResponse[model.Webinar], error) {
		filter := repository.WebinarFilter{}
		if req.Status != "" {
			status := model.WebinarStatus(req.Status)
			filter.Status = &status
		}
		if req.Category != "" {
			filter.Category = &req.Category
		}
		if req.Level != "" {
			level := model.WebinarLevel(req.Level)
			filter.Level = &level
		}

		webinars, meta, err := h.services.Webinars.List(c.Request().Context(), filter, utils.NewPagination(req.Page, req.PageSize))
		if err != nil {
			return nil, err
		}
		return &ListResponse[model.Webinar]{Items: webinars, Meta: meta}, nil
	}, http.StatusOK, &listWebinarsRequest{})
}

type updateWebinarStatusRequest struct {
	WebinarID string `param:"id" validate:"required,uuid"`
	Status    string `json:"status" validate:"required,oneof=Upcoming Live Recorded Cancelled"`
}

func (r *updateWebinarStatusRequest) Validate() error { return validation.Struct(r) }

func (h *WebinarsHandler) UpdateStatus() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateWebinarStatusRequest) (*model.Webinar, error) {
		return h.services.Webinars.UpdateStatus(c.Request().Context(), uuid.MustParse(req.WebinarID), model.WebinarStatus(req.Status))
	}, http.StatusOK, &updateWebinarStatusRequest{})
}

func (h *WebinarsHandler) Register() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *webinarIDRequest) (*model.WebinarRegistration, error) {
		return h.services.Webinars.Register(c.Request().Context(), uuid.MustParse(req.WebinarID), callerID(c))
	}, http.StatusCreated, &webinarIDRequest{})
}

func (h *WebinarsHandler) CancelRegistration() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *webinarIDRequest) error {
		return h.services.Webinars.CancelRegistration(c.Request().Context(), uuid.MustParse(req.WebinarID), callerID(c))
	}, http.StatusNoContent, &webinarIDRequest{})
}

func (h *WebinarsHandler) MyRegistrations() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *emptyRequest) ([]model.WebinarRegistration, error) {
		return h.services.Webinars.ListMyRegistrations(c.Request().Context(), callerID(c))
	}, http.StatusOK, &emptyRequest{})
}

func (h *WebinarsHandler) MarkAttended() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *webinarIDRequest) (*model.WebinarRegistration, error) {
		return h.services.Webinars.MarkAttended(c.Request().Context(), uuid.MustParse(req.WebinarID), callerID(c))
	}, http.StatusOK, &webinarIDRequest{})
}

type studentAttendanceRequest struct {
	WebinarID    string  `param:"id" validate:"required,uuid"`
	StudentID    string  `json:"student_id" validate:"required,uuid"`
	JoinTime     *string `json:"join_time"`
	LeaveTime    *string `json:"leave_time"`
	WatchMinutes *int    `json:"watch_minutes" validate:"omitempty,min=0"`
}

func (r *studentAttendanceRequest) Validate() error { return validation.Struct(r) }

func (h *WebinarsHandler) RecordStudentAttendance() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentAttendanceRequest) (*model.StudentWebinarAttendance, error) {
		return h.services.Webinars.RecordStudentAttendance(c.Request().Context(), uuid.MustParse(req.WebinarID), uuid.MustParse(req.StudentID), req.JoinTime, req.LeaveTime, req.WatchMinutes)
	}, http.StatusCreated, &studentAttendanceRequest{})
}

func (h *WebinarsHandler) ListStudentAttendance() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *webinarIDRequest) ([]model.StudentWebinarAttendance, error) {
		return h.services.Webinars.ListStudentAttendance(c.Request().Context(), uuid.MustParse(req.WebinarID))
	}, http.StatusOK, &webinarIDRequest{})
}

func (h *WebinarsHandler) SchoolSummary() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *emptyRequest) ([]service.SchoolWebinarSummary, error) {
		return h.services.Webinars.SchoolSummary(c.Request().Context(), callerSchoolID(c))
	}, http.StatusOK, &emptyRequest{})
}

func (h *WebinarsHandler) ClassBreakdown() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *webinarIDRequest) ([]service.ClassAttendance, error) {
		return h.services.Webinars.ClassBreakdown(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.WebinarID))
	}, http.StatusOK, &webinarIDRequest{})
}
