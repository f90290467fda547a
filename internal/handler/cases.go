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

// CasesHandler serves counselling cases and their journal entries.
type CasesHandler struct {
	Handler
	services *service.Services
}

func NewCasesHandler(s *server.Server, services *service.Services) *CasesHandler {
	return &CasesHandler{Handler: NewHandler(s), services: services}
}

type openCaseRequest struct {
	StudentID          string   `json:"student_id" validate:"required,uuid"`
	RiskLevel          string   `json:"risk_level" validate:"omitempty,oneof=low medium high critical"`
	Tags               []string `json:"tags"`
	AssignedCounsellor *string  `json:"assigned_counsellor" validate:"omitempty,uuid"`
	Summary            *string  `json:"summary"`
}

func (r *openCaseRequest) Validate() error { return validation.Struct(r) }

func (h *CasesHandler) Open() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *openCaseRequest) (*model.Case, error) {
		riskLevel := model.RiskLow
		if req.RiskLevel != "" {
			riskLevel = model.RiskLevel(req.RiskLevel)
		}

		return h.services.Cases.Open(c.Request().Context(), callerSchoolID(c), repository.CreateCaseParams{
			StudentID:          uuid.MustParse(req.StudentID),
			CreatedBy:          callerID(c),
			RiskLevel:          riskLevel,
			Tags:               req.Tags,
			AssignedCounsellor: optionalUUID(req.AssignedCounsellor),
			Summary:            req.Summary,
		})
	}, http.StatusCreated, &openCaseRequest{})
}

type caseIDRequest struct {
	CaseID string `param:"id" validate:"required,uuid"`
}

func (r *caseIDRequest) Validate() error { return validation.Struct(r) }

func (h *CasesHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *caseIDRequest) (*model.Case, error) {
		return h.services.Cases.Get(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.CaseID))
	}, http.StatusOK, &caseIDRequest{})
}

type listCasesRequest struct {
	StudentID          string `query:"student_id" validate:"omitempty,uuid"`
	AssignedCounsellor string `query:"assigned_counsellor" validate:"omitempty,uuid"`
	Status             string `query:"status" validate:"omitempty,oneof=intake assessment intervention monitoring closed"`
	Page               int    `query:"page"`
	PageSize           int    `query:"page_size"`
}

func (r *listCasesRequest) Validate() error { return validation.Struct(r) }

func (h *CasesHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listCasesRequest) (*ListResponse[model.Case], error) {
		filter := repository.CaseFilter{SchoolID: callerSchoolID(c)}
		if req.StudentID != "" {
			id := uuid.MustParse(req.StudentID)
			filter.StudentID = &id
		}
		if req.AssignedCounsellor != "" {
			id := uuid.MustParse(req.AssignedCounsellor)
			filter.AssignedCounsellor = &id
		}
		if req.Status != "" {
			status := model.CaseStatus(req.Status)
			filter.Status = &status
		}

		cases, meta, err := h.services.Cases.List(c.Request().Context(), filter, utils.NewPagination(req.Page, req.PageSize))
		if err != nil {
			return nil, err
		}
		return &ListResponse[model.Case]{Items: cases, Meta: meta}, nil
	}, http.StatusOK, &listCasesRequest{})
}

type updateCaseRequest struct {
	CaseID             string   `param:"id" validate:"required,uuid"`
	Status             string   `json:"status" validate:"required,oneof=intake assessment intervention monitoring closed"`
	RiskLevel          string   `json:"risk_level" validate:"required,oneof=low medium high critical"`
	Tags               []string `json:"tags"`
	AssignedCounsellor *string  `json:"assigned_counsellor" validate:"omitempty,uuid"`
	Summary            *string  `json:"summary"`
}

func (r *updateCaseRequest) Validate() error { return validation.Struct(r) }

func (h *CasesHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateCaseRequest) (*model.Case, error) {
		return h.services.Cases.Update(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.CaseID), repository.UpdateCaseParams{
			Status:             model.CaseStatus(req.Status),
			RiskLevel:          model.RiskLevel(req.RiskLevel),
			Tags:               req.Tags,
			AssignedCounsellor: optionalUUID(req.AssignedCounsellor),
			Summary:            req.Summary,
		})
	}, http.StatusOK, &updateCaseRequest{})
}

// Process flags a case as reviewed.
func (h *CasesHandler) Process() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *caseIDRequest) (*model.Case, error) {
		return h.services.Cases.MarkProcessed(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.CaseID))
	}, http.StatusOK, &caseIDRequest{})
}

type addEntryRequest struct {
	CaseID     string  `param:"id" validate:"required,uuid"`
	Visibility string  `json:"visibility" validate:"required,oneof=private shared"`
	Type       string  `json:"type" validate:"required,oneof=session_note observation assessment_result contact_log"`
	Content    *string `json:"content"`
	AudioURL   *string `json:"audio_url"`
}

func (r *addEntryRequest) Validate() error { return validation.Struct(r) }

func (h *CasesHandler) AddEntry() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *addEntryRequest) (*model.JournalEntry, error) {
		return h.services.Cases.AddEntry(c.Request().Context(), callerSchoolID(c), repository.CreateEntryParams{
			CaseID:     uuid.MustParse(req.CaseID),
			AuthorID:   callerID(c),
			Visibility: model.EntryVisibility(req.Visibility),
			Type:       model.EntryType(req.Type),
			Content:    req.Content,
			AudioURL:   req.AudioURL,
		})
	}, http.StatusCreated, &addEntryRequest{})
}

func (h *CasesHandler) ListEntries() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *caseIDRequest) ([]model.JournalEntry, error) {
		return h.services.Cases.ListEntries(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.CaseID), callerID(c))
	}, http.StatusOK, &caseIDRequest{})
}
