package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
	"github.com/wellnest-hq/wellness-api/internal/service"
	"github.com/wellnest-hq/wellness-api/internal/validation"
)

// ConsentsHandler serves parental consent records.
type ConsentsHandler struct {
	Handler
	services *service.Services
}

func NewConsentsHandler(s *server.Server, services *service.Services) *ConsentsHandler {
	return &ConsentsHandler{Handler: NewHandler(s), services: services}
}

type createConsentRequest struct {
	StudentID   string   `json:"student_id" validate:"required,uuid"`
	ParentName  *string  `json:"parent_name"`
	ConsentType string   `json:"consent_type" validate:"required,oneof=ASSESSMENT INTERVENTION DATA_SHARING AI_ANALYSIS"`
	Status      string   `json:"status" validate:"omitempty,oneof=GRANTED PENDING DENIED REVOKED"`
	ExpiresAt   *string  `json:"expires_at" validate:"omitempty,datetime=2006-01-02"`
	Documents   []string `json:"documents"`
}

func (r *createConsentRequest) Validate() error { return validation.Struct(r) }

func (h *ConsentsHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createConsentRequest) (*model.ConsentRecord, error) {
		return h.services.Consents.Create(c.Request().Context(), repository.CreateConsentParams{
			StudentID:   uuid.MustParse(req.StudentID),
			ParentName:  req.ParentName,
			ConsentType: model.ConsentType(req.ConsentType),
			Status:      model.ConsentStatus(req.Status),
			ExpiresAt:   req.ExpiresAt,
			Documents:   req.Documents,
		})
	}, http.StatusCreated, &createConsentRequest{})
}

type consentIDRequest struct {
	ConsentID string `param:"id" validate:"required,uuid"`
}

func (r *consentIDRequest) Validate() error { return validation.Struct(r) }

func (h *ConsentsHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *consentIDRequest) (*model.ConsentRecord, error) {
		return h.services.Consents.Get(c.Request().Context(), uuid.MustParse(req.ConsentID))
	}, http.StatusOK, &consentIDRequest{})
}

type studentConsentsRequest struct {
	StudentID string `param:"student_id" validate:"required,uuid"`
}

func (r *studentConsentsRequest) Validate() error { return validation.Struct(r) }

func (h *ConsentsHandler) ListByStudent() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentConsentsRequest) ([]model.ConsentRecord, error) {
		return h.services.Consents.ListByStudent(c.Request().Context(), uuid.MustParse(req.StudentID))
	}, http.StatusOK, &studentConsentsRequest{})
}

type updateConsentStatusRequest struct {
	ConsentID string  `param:"id" validate:"required,uuid"`
	Status    string  `json:"status" validate:"required,oneof=GRANTED PENDING DENIED REVOKED"`
	ExpiresAt *string `json:"expires_at" validate:"omitempty,datetime=2006-01-02"`
}

func (r *updateConsentStatusRequest) Validate() error { return validation.Struct(r) }

func (h *ConsentsHandler) UpdateStatus() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateConsentStatusRequest) (*model.ConsentRecord, error) {
		return h.services.Consents.UpdateStatus(c.Request().Context(), uuid.MustParse(req.ConsentID), model.ConsentStatus(req.Status), req.ExpiresAt)
	}, http.StatusOK, &updateConsentStatusRequest{})
}
