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

// StudentsHandler serves student record management within a school.
type StudentsHandler struct {
	Handler
	services *service.Services
}

func NewStudentsHandler(s *server.Server, services *service.Services) *StudentsHandler {
	return &StudentsHandler{Handler: NewHandler(s), services: services}
}

type createStudentRequest struct {
	ClassID        *string        `json:"class_id" validate:"omitempty,uuid"`
	FirstName      string         `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string         `json:"last_name" validate:"required,min=1,max=100"`
	Pseudonym      *string        `json:"pseudonym"`
	DOB            *string        `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender         *string        `json:"gender" validate:"omitempty,oneof=male female other prefer_not_to_say"`
	ParentEmail    *string        `json:"parent_email" validate:"omitempty,email"`
	ParentPhone    *string        `json:"parent_phone"`
	AdditionalInfo map[string]any `json:"additional_info"`
}

func (r *createStudentRequest) Validate() error { return validation.Struct(r) }

func (r *createStudentRequest) params(schoolID uuid.UUID) repository.CreateStudentParams {
	return repository.CreateStudentParams{
		SchoolID:       schoolID,
		ClassID:        optionalUUID(r.ClassID),
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Pseudonym:      r.Pseudonym,
		DOB:            r.DOB,
		Gender:         optionalGender(r.Gender),
		ParentEmail:    r.ParentEmail,
		ParentPhone:    r.ParentPhone,
		AdditionalInfo: r.AdditionalInfo,
	}
}

func (h *StudentsHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createStudentRequest) (*model.Student, error) {
		return h.services.Students.Create(c.Request().Context(), req.params(callerSchoolID(c)))
	}, http.StatusCreated, &createStudentRequest{})
}

type studentIDRequest struct {
	StudentID string `param:"id" validate:"required,uuid"`
}

func (r *studentIDRequest) Validate() error { return validation.Struct(r) }

func (h *StudentsHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentIDRequest) (*model.Student, error) {
		return h.services.Students.Get(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.StudentID))
	}, http.StatusOK, &studentIDRequest{})
}

type listStudentsRequest struct {
	ClassID   string `query:"class_id" validate:"omitempty,uuid"`
	RiskLevel string `query:"risk_level" validate:"omitempty,oneof=low medium high critical"`
	Search    string `query:"search"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
}

func (r *listStudentsRequest) Validate() error { return validation.Struct(r) }

func (h *StudentsHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listStudentsRequest) (*ListResponse[model.Student], error) {
		filter := repository.StudentFilter{}
		if req.ClassID != "" {
			id := uuid.MustParse(req.ClassID)
			filter.ClassID = &id
		}
		if req.RiskLevel != "" {
			level := model.RiskLevel(req.RiskLevel)
			filter.RiskLevel = &level
		}
		if req.Search != "" {
			filter.Search = &req.Search
		}

		students, meta, err := h.services.Students.List(c.Request().Context(), callerSchoolID(c), filter, utils.NewPagination(req.Page, req.PageSize))
		if err != nil {
			return nil, err
		}
		return &ListResponse[model.Student]{Items: students, Meta: meta}, nil
	}, http.StatusOK, &listStudentsRequest{})
}

type updateStudentRequest struct {
	StudentID string `param:"id" validate:"required,uuid"`
	createStudentRequest
}

func (r *updateStudentRequest) Validate() error { return validation.Struct(r) }

func (h *StudentsHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateStudentRequest) (*model.Student, error) {
		return h.services.Students.Update(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.StudentID), repository.UpdateStudentParams{
			ClassID:        optionalUUID(req.ClassID),
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Pseudonym:      req.Pseudonym,
			DOB:            req.DOB,
			Gender:         optionalGender(req.Gender),
			ParentEmail:    req.ParentEmail,
			ParentPhone:    req.ParentPhone,
			AdditionalInfo: req.AdditionalInfo,
		})
	}, http.StatusOK, &updateStudentRequest{})
}

func (h *StudentsHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *studentIDRequest) error {
		return h.services.Students.Delete(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.StudentID))
	}, http.StatusNoContent, &studentIDRequest{})
}

// optionalUUID parses an optional, already-validated UUID string.
func optionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id := uuid.MustParse(*s)
	return &id
}

func optionalGender(s *string) *model.Gender {
	if s == nil || *s == "" {
		return nil
	}
	g := model.Gender(*s)
	return &g
}
