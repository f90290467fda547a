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

// AssessmentsHandler serves assessment templates, assessment runs,
// student submissions, and the monitoring views.
type AssessmentsHandler struct {
	Handler
	services *service.Services
}

func NewAssessmentsHandler(s *server.Server, services *service.Services) *AssessmentsHandler {
	return &AssessmentsHandler{Handler: NewHandler(s), services: services}
}

type createTemplateRequest struct {
	Name         string                   `json:"name" validate:"required,min=2,max=200"`
	Description  *string                  `json:"description"`
	Category     *string                  `json:"category"`
	Questions    []model.TemplateQuestion `json:"questions" validate:"required,min=1"`
	ScoringRules map[string]any           `json:"scoring_rules"`
}

func (r *createTemplateRequest) Validate() error { return validation.Struct(r) }

func (h *AssessmentsHandler) CreateTemplate() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createTemplateRequest) (*model.AssessmentTemplate, error) {
		return h.services.Assessments.CreateTemplate(c.Request().Context(), repository.CreateTemplateParams{
			Name:         req.Name,
			Description:  req.Description,
			Category:     req.Category,
			Questions:    req.Questions,
			ScoringRules: req.ScoringRules,
			CreatedBy:    callerID(c),
		})
	}, http.StatusCreated, &createTemplateRequest{})
}

type templateIDRequest struct {
	TemplateID string `param:"id" validate:"required,uuid"`
}

func (r *templateIDRequest) Validate() error { return validation.Struct(r) }

func (h *AssessmentsHandler) GetTemplate() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *templateIDRequest) (*model.AssessmentTemplate, error) {
		return h.services.Assessments.GetTemplate(c.Request().Context(), uuid.MustParse(req.TemplateID))
	}, http.StatusOK, &templateIDRequest{})
}

type listTemplatesRequest struct {
	All      bool   `query:"all"`
	Category string `query:"category"`
}

func (r *listTemplatesRequest) Validate() error { return validation.Struct(r) }

// ListTemplates returns active templates by default; ?all=true includes
// retired ones.
func (h *AssessmentsHandler) ListTemplates() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listTemplatesRequest) ([]model.AssessmentTemplate, error) {
		var category *string
		if req.Category != "" {
			category = &req.Category
		}
		return h.services.Assessments.ListTemplates(c.Request().Context(), !req.All, category)
	}, http.StatusOK, &listTemplatesRequest{})
}

type setTemplateActiveRequest struct {
	TemplateID string `param:"id" validate:"required,uuid"`
	Active     bool   `json:"active"`
}

func (r *setTemplateActiveRequest) Validate() error { return validation.Struct(r) }

func (h *AssessmentsHandler) SetTemplateActive() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *setTemplateActiveRequest) error {
		return h.services.Assessments.SetTemplateActive(c.Request().Context(), uuid.MustParse(req.TemplateID), req.Active)
	}, http.StatusNoContent, &setTemplateActiveRequest{})
}

type createAssessmentRequest struct {
	TemplateID       string   `json:"template_id" validate:"required,uuid"`
	ClassID          *string  `json:"class_id" validate:"omitempty,uuid"`
	Title            *string  `json:"title"`
	ExcludedStudents []string `json:"excluded_students" validate:"omitempty,dive,uuid"`
	Notes            *string  `json:"notes"`
}

func (r *createAssessmentRequest) Validate() error { return validation.Struct(r) }

func (h *AssessmentsHandler) CreateAssessment() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createAssessmentRequest) (*model.Assessment, error) {
		schoolID := callerSchoolID(c)

		excluded := make([]uuid.UUID, 0, len(req.ExcludedStudents))
		for _, id := range req.ExcludedStudents {
			excluded = append(excluded, uuid.MustParse(id))
		}

		return h.services.Assessments.CreateAssessment(c.Request().Context(), repository.CreateAssessmentParams{
			TemplateID:       uuid.MustParse(req.TemplateID),
			SchoolID:         &schoolID,
			ClassID:          optionalUUID(req.ClassID),
			Title:            req.Title,
			ExcludedStudents: excluded,
			Notes:            req.Notes,
			CreatedBy:        callerID(c),
		})
	}, http.StatusCreated, &createAssessmentRequest{})
}

type assessmentIDRequest struct {
	AssessmentID string `param:"id" validate:"required,uuid"`
}

func (r *assessmentIDRequest) Validate() error { return validation.Struct(r) }

func (h *AssessmentsHandler) GetAssessment() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *assessmentIDRequest) (*model.Assessment, error) {
		return h.services.Assessments.GetAssessment(c.Request().Context(), uuid.MustParse(req.AssessmentID))
	}, http.StatusOK, &assessmentIDRequest{})
}

type listAssessmentsRequest struct {
	ClassID    string `query:"class_id" validate:"omitempty,uuid"`
	TemplateID string `query:"template_id" validate:"omitempty,uuid"`
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
}

func (r *listAssessmentsRequest) Validate() error { return validation.Struct(r) }

func (h *AssessmentsHandler) ListAssessments() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listAssessmentsRequest) (*ListResponse[model.Assessment], error) {
		classID := optionalUUID(&req.ClassID)
		templateID := optionalUUID(&req.TemplateID)

		assessments, meta, err := h.services.Assessments.ListAssessments(c.Request().Context(), callerSchoolID(c), classID, templateID, utils.NewPagination(req.Page, req.PageSize))
		if err != nil {
			return nil, err
		}
		return &ListResponse[model.Assessment]{Items: assessments, Meta: meta}, nil
	}, http.StatusOK, &listAssessmentsRequest{})
}

type answerPayload struct {
	QuestionID string   `json:"question_id" validate:"required"`
	Answer     any      `json:"answer" validate:"required"`
	Score      *float64 `json:"score"`
}

type submitResponsesRequest struct {
	AssessmentID string          `param:"id" validate:"required,uuid"`
	StudentID    string          `json:"student_id" validate:"required,uuid"`
	Answers      []answerPayload `json:"answers" validate:"required,min=1,dive"`
}

func (r *submitResponsesRequest) Validate() error { return validation.Struct(r) }

func (h *AssessmentsHandler) SubmitResponses() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *submitResponsesRequest) error {
		answers := make([]service.AnswerInput, 0, len(req.Answers))
		for _, a := range req.Answers {
			answers = append(answers, service.AnswerInput{
				QuestionID: a.QuestionID,
				Answer:     a.Answer,
				Score:      a.Score,
			})
		}

		return h.services.Assessments.SubmitResponses(c.Request().Context(), uuid.MustParse(req.AssessmentID), uuid.MustParse(req.StudentID), answers)
	}, http.StatusNoContent, &submitResponsesRequest{})
}

func (h *AssessmentsHandler) Monitor() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *assessmentIDRequest) (*service.MonitoringResult, error) {
		return h.services.Assessments.Monitor(c.Request().Context(), uuid.MustParse(req.AssessmentID))
	}, http.StatusOK, &assessmentIDRequest{})
}

func (h *AssessmentsHandler) Breakdown() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *assessmentIDRequest) ([]service.QuestionBreakdown, error) {
		return h.services.Assessments.BreakdownByQuestion(c.Request().Context(), uuid.MustParse(req.AssessmentID))
	}, http.StatusOK, &assessmentIDRequest{})
}
