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

// UsersHandler serves staff account management within a school.
type UsersHandler struct {
	Handler
	services *service.Services
}

func NewUsersHandler(s *server.Server, services *service.Services) *UsersHandler {
	return &UsersHandler{Handler: NewHandler(s), services: services}
}

type createUserRequest struct {
	Role         string         `json:"role" validate:"required,oneof=COUNSELLOR TEACHER PRINCIPAL PARENT CLINICIAN ADMIN"`
	Email        string         `json:"email" validate:"required,email"`
	Password     string         `json:"password" validate:"required,min=8"`
	DisplayName  string         `json:"display_name" validate:"required,min=2,max=120"`
	Phone        *string        `json:"phone"`
	Profile      map[string]any `json:"profile"`
	Availability map[string]any `json:"availability"`
}

func (r *createUserRequest) Validate() error { return validation.Struct(r) }

func (h *UsersHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createUserRequest) (*model.User, error) {
		return h.services.Users.Create(c.Request().Context(), service.CreateUserInput{
			SchoolID:     callerSchoolID(c),
			Role:         model.Role(req.Role),
			Email:        req.Email,
			Password:     req.Password,
			DisplayName:  req.DisplayName,
			Phone:        req.Phone,
			Profile:      req.Profile,
			Availability: req.Availability,
		})
	}, http.StatusCreated, &createUserRequest{})
}

type userIDRequest struct {
	UserID string `param:"id" validate:"required,uuid"`
}

func (r *userIDRequest) Validate() error { return validation.Struct(r) }

func (h *UsersHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *userIDRequest) (*model.User, error) {
		return h.services.Users.Get(c.Request().Context(), uuid.MustParse(req.UserID))
	}, http.StatusOK, &userIDRequest{})
}

type listUsersRequest struct {
	Role     string `query:"role" validate:"omitempty,oneof=COUNSELLOR TEACHER PRINCIPAL PARENT CLINICIAN ADMIN"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

func (r *listUsersRequest) Validate() error { return validation.Struct(r) }

func (h *UsersHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listUsersRequest) (*ListResponse[model.User], error) {
		var role *model.Role
		if req.Role != "" {
			r := model.Role(req.Role)
			role = &r
		}

		users, meta, err := h.services.Users.List(c.Request().Context(), callerSchoolID(c), role, utils.NewPagination(req.Page, req.PageSize))
		if err != nil {
			return nil, err
		}
		return &ListResponse[model.User]{Items: users, Meta: meta}, nil
	}, http.StatusOK, &listUsersRequest{})
}

type updateUserRequest struct {
	UserID       string         `param:"id" validate:"required,uuid"`
	DisplayName  string         `json:"display_name" validate:"required,min=2,max=120"`
	Phone        *string        `json:"phone"`
	Profile      map[string]any `json:"profile"`
	Availability map[string]any `json:"availability"`
}

func (r *updateUserRequest) Validate() error { return validation.Struct(r) }

func (h *UsersHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateUserRequest) (*model.User, error) {
		return h.services.Users.Update(c.Request().Context(), uuid.MustParse(req.UserID), repository.UpdateUserParams{
			DisplayName:  req.DisplayName,
			Phone:        req.Phone,
			Profile:      req.Profile,
			Availability: req.Availability,
		})
	}, http.StatusOK, &updateUserRequest{})
}

func (h *UsersHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *userIDRequest) error {
		return h.services.Users.Delete(c.Request().Context(), uuid.MustParse(req.UserID))
	}, http.StatusNoContent, &userIDRequest{})
}
