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

// SchoolsHandler serves school CRUD, platform-admin only.
type SchoolsHandler struct {
	Handler
	services *service.Services
}

func NewSchoolsHandler(s *server.Server, services *service.Services) *SchoolsHandler {
	return &SchoolsHandler{Handler: NewHandler(s), services: services}
}

type createSchoolRequest struct {
	Name                string         `json:"name" validate:"required,min=2,max=200"`
	Address             *string        `json:"address"`
	City                *string        `json:"city"`
	State               *string        `json:"state"`
	Country             *string        `json:"country"`
	Phone               *string        `json:"phone"`
	Email               *string        `json:"email" validate:"omitempty,email"`
	Website             *string        `json:"website"`
	Timezone            string         `json:"timezone"`
	AcademicYear        *string        `json:"academic_year"`
	DataRetentionPolicy map[string]any `json:"data_retention_policy"`
	Settings            map[string]any `json:"settings"`
}

func (r *createSchoolRequest) Validate() error { return validation.Struct(r) }

func (r *createSchoolRequest) params() repository.CreateSchoolParams {
	return repository.CreateSchoolParams{
		Name:                r.Name,
		Address:             r.Address,
		City:                r.City,
		State:               r.State,
		Country:             r.Country,
		Phone:               r.Phone,
		Email:               r.Email,
		Website:             r.Website,
		Timezone:            r.Timezone,
		AcademicYear:        r.AcademicYear,
		DataRetentionPolicy: r.DataRetentionPolicy,
		Settings:            r.Settings,
	}
}

func (h *SchoolsHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createSchoolRequest) (*model.School, error) {
		return h.services.Schools.Create(c.Request().Context(), req.params())
	}, http.StatusCreated, &createSchoolRequest{})
}

type schoolIDRequest struct {
	SchoolID string `param:"id" validate:"required,uuid"`
}

func (r *schoolIDRequest) Validate() error { return validation.Struct(r) }

func (h *SchoolsHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *schoolIDRequest) (*model.School, error) {
		return h.services.Schools.Get(c.Request().Context(), uuid.MustParse(req.SchoolID))
	}, http.StatusOK, &schoolIDRequest{})
}

type listSchoolsRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

func (r *listSchoolsRequest) Validate() error { return validation.Struct(r) }

func (h *SchoolsHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listSchoolsRequest) (*ListResponse[model.School], error) {
		schools, meta, err := h.services.Schools.List(c.Request().Context(), utils.NewPagination(req.Page, req.PageSize))
		if err != nil {
			return nil, err
		}
		return &ListResponse[model.School]{Items: schools, Meta: meta}, nil
	}, http.StatusOK, &listSchoolsRequest{})
}

type updateSchoolRequest struct {
	SchoolID string `param:"id" validate:"required,uuid"`
	createSchoolRequest
}

func (r *updateSchoolRequest) Validate() error { return validation.Struct(r) }

func (h *SchoolsHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateSchoolRequest) (*model.School, error) {
		return h.services.Schools.Update(c.Request().Context(), uuid.MustParse(req.SchoolID), req.params())
	}, http.StatusOK, &updateSchoolRequest{})
}

func (h *SchoolsHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *schoolIDRequest) error {
		return h.services.Schools.Delete(c.Request().Context(), uuid.MustParse(req.SchoolID))
	}, http.StatusNoContent, &schoolIDRequest{})
}
