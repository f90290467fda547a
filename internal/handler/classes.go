package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
	"github.com/wellnest-hq/wellness-api/internal/service"
	"github.com/wellnest-hq/wellness-api/internal/validation"
)

// ClassesHandler serves class management and rosters.
type ClassesHandler struct {
	Handler
	services *service.Services
}

func NewClassesHandler(s *server.Server, services *service.Services) *ClassesHandler {
	return &ClassesHandler{Handler: NewHandler(s), services: services}
}

type createClassRequest struct {
	Name           string         `json:"name" validate:"required,min=1,max=120"`
	Grade          string         `json:"grade" validate:"required,max=20"`
	Section        *string        `json:"section"`
	AcademicYear   *string        `json:"academic_year"`
	TeacherID      *string        `json:"teacher_id" validate:"omitempty,uuid"`
	Capacity       *int           `json:"capacity" validate:"omitempty,min=1"`
	AdditionalInfo map[string]any `json:"additional_info"`
}

func (r *createClassRequest) Validate() error { return validation.Struct(r) }

func (r *createClassRequest) params(schoolID uuid.UUID) repository.CreateClassParams {
	return repository.CreateClassParams{
		SchoolID:       schoolID,
		Name:           r.Name,
		Grade:          r.Grade,
		Section:        r.Section,
		AcademicYear:   r.AcademicYear,
		TeacherID:      optionalUUID(r.TeacherID),
		Capacity:       r.Capacity,
		AdditionalInfo: r.AdditionalInfo,
	}
}

func (h *ClassesHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createClassRequest) (*model.Class, error) {
		return h.services.Classes.Create(c.Request().Context(), req.params(callerSchoolID(c)))
	}, http.StatusCreated, &createClassRequest{})
}

type classIDRequest struct {
	ClassID string `param:"id" validate:"required,uuid"`
}

func (r *classIDRequest) Validate() error { return validation.Struct(r) }

func (h *ClassesHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *classIDRequest) (*model.Class, error) {
		return h.services.Classes.Get(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.ClassID))
	}, http.StatusOK, &classIDRequest{})
}

type listClassesRequest struct {
	TeacherID string `query:"teacher_id" validate:"omitempty,uuid"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
}

func (r *listClassesRequest) Validate() error { return validation.Struct(r) }

func (h *ClassesHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listClassesRequest) (*ListResponse[model.Class], error) {
		var teacherID *uuid.UUID
		if req.TeacherID != "" {
			id := uuid.MustParse(req.TeacherID)
			teacherID = &id
		}

		classes, meta, err := h.services.Classes.List(c.Request().Context(), callerSchoolID(c), teacherID, utils.NewPagination(req.Page, req.PageSize))
		if err != nil {
			return nil, err
		}
		return &ListResponse[model.Class]{Items: classes, Meta: meta}, nil
	}, http.StatusOK, &listClassesRequest{})
}

func (h *ClassesHandler) Roster() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *classIDRequest) ([]model.Student, error) {
		return h.services.Classes.Roster(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.ClassID))
	}, http.StatusOK, &classIDRequest{})
}

type updateClassRequest struct {
	ClassID string `param:"id" validate:"required,uuid"`
	createClassRequest
}

func (r *updateClassRequest) Validate() error { return validation.Struct(r) }

func (h *ClassesHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateClassRequest) (*model.Class, error) {
		return h.services.Classes.Update(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.ClassID), req.params(callerSchoolID(c)))
	}, http.StatusOK, &updateClassRequest{})
}

func (h *ClassesHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *classIDRequest) error {
		return h.services.Classes.Delete(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.ClassID))
	}, http.StatusNoContent, &classIDRequest{})
}
