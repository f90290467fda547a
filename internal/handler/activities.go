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

// ActivitiesHandler serves the activity library, class assignments,
// student submissions, and comment threads.
type ActivitiesHandler struct {
	Handler
	services *service.Services
}

func NewActivitiesHandler(s *server.Server, services *service.Services) *ActivitiesHandler {
	return &ActivitiesHandler{Handler: NewHandler(s), services: services}
}

type createActivityRequest struct {
	Global       bool     `json:"global"`
	Title        string   `json:"title" validate:"required,min=2,max=200"`
	Description  *string  `json:"description"`
	Type         string   `json:"type" validate:"required,oneof=MINDFULNESS SOCIAL_SKILLS EMOTIONAL_REGULATION ACADEMIC_SUPPORT TEAM_BUILDING"`
	Duration     *int     `json:"duration" validate:"omitempty,min=1"`
	TargetGrades []string `json:"target_grades"`
	Materials    []string `json:"materials"`
	Instructions []string `json:"instructions"`
	Objectives   []string `json:"objectives"`
}

func (r *createActivityRequest) Validate() error { return validation.Struct(r) }

func (r *createActivityRequest) params(c echo.Context) repository.CreateActivityParams {
	p := repository.CreateActivityParams{
		Title:        r.Title,
		Description:  r.Description,
		Type:         model.ActivityType(r.Type),
		Duration:     r.Duration,
		TargetGrades: r.TargetGrades,
		Materials:    r.Materials,
		Instructions: r.Instructions,
		Objectives:   r.Objectives,
		CreatedBy:    callerID(c),
	}
	if !r.Global {
		schoolID := callerSchoolID(c)
		p.SchoolID = &schoolID
	}
	return p
}

func (h *ActivitiesHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createActivityRequest) (*model.Activity, error) {
		return h.services.Activities.Create(c.Request().Context(), req.params(c))
	}, http.StatusCreated, &createActivityRequest{})
}

type activityIDRequest struct {
	ActivityID string `param:"id" validate:"required,uuid"`
}

func (r *activityIDRequest) Validate() error { return validation.Struct(r) }

func (h *ActivitiesHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *activityIDRequest) (*model.Activity, error) {
		return h.services.Activities.Get(c.Request().Context(), uuid.MustParse(req.ActivityID))
	}, http.StatusOK, &activityIDRequest{})
}

type listActivitiesRequest struct {
	Type        string `query:"type" validate:"omitempty,oneof=MINDFULNESS SOCIAL_SKILLS EMOTIONAL_REGULATION ACADEMIC_SUPPORT TEAM_BUILDING"`
	TargetGrade string `query:"target_grade"`
	Page        int    `query:"page"`
	PageSize    int    `query:"page_size"`
}

func (r *listActivitiesRequest) Validate() error { return validation.Struct(r) }

func (h *ActivitiesHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listActivitiesRequest) (*ListResponse[model.Activity], error) {
		filter := repository.ActivityFilter{}
		if req.Type != "" {
			t := model.ActivityType(req.Type)
			filter.Type = &t
		}
		if req.TargetGrade != "" {
			filter.TargetGrade = &req.TargetGrade
		}

		activities, meta, err := h.services.Activities.List(c.Request().Context(), callerSchoolID(c), filter, utils.NewPagination(req.Page, req.PageSize))
		if err != nil {
			return nil, err
		}
		return &ListResponse[model.Activity]{Items: activities, Meta: meta}, nil
	}, http.StatusOK, &listActivitiesRequest{})
}

type updateActivityRequest struct {
	ActivityID string `param:"id" validate:"required,uuid"`
	createActivityRequest
}

func (r *updateActivityRequest) Validate() error { return validation.Struct(r) }

func (h *ActivitiesHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateActivityRequest) (*model.Activity, error) {
		return h.services.Activities.Update(c.Request().Context(), uuid.MustParse(req.ActivityID), req.params(c))
	}, http.StatusOK, &updateActivityRequest{})
}

func (h *ActivitiesHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *activityIDRequest) error {
		return h.services.Activities.Delete(c.Request().Context(), uuid.MustParse(req.ActivityID))
	}, http.StatusNoContent, &activityIDRequest{})
}

type assignActivityRequest struct {
	ActivityID string  `param:"id" validate:"required,uuid"`
	ClassID    string  `json:"class_id" validate:"required,uuid"`
	DueDate    *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *assignActivityRequest) Validate() error { return validation.Struct(r) }

func (h *ActivitiesHandler) Assign() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *assignActivityRequest) (*model.ActivityAssignment, error) {
		return h.services.Activities.Assign(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.ActivityID), uuid.MustParse(req.ClassID), callerID(c), req.DueDate)
	}, http.StatusCreated, &assignActivityRequest{})
}

type classAssignmentsRequest struct {
	ClassID string `param:"class_id" validate:"required,uuid"`
}

func (r *classAssignmentsRequest) Validate() error { return validation.Struct(r) }

func (h *ActivitiesHandler) ListAssignments() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *classAssignmentsRequest) ([]model.ActivityAssignment, error) {
		return h.services.Activities.ListAssignments(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.ClassID))
	}, http.StatusOK, &classAssignmentsRequest{})
}

// Stats is the activity dashboard for one class.
func (h *ActivitiesHandler) Stats() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *classAssignmentsRequest) (*service.ClassStats, error) {
		return h.services.Activities.Stats(c.Request().Context(), callerSchoolID(c), uuid.MustParse(req.ClassID))
	}, http.StatusOK, &classAssignmentsRequest{})
}

type assignmentIDRequest struct {
	AssignmentID string `param:"id" validate:"required,uuid"`
}

func (r *assignmentIDRequest) Validate() error { return validation.Struct(r) }

func (h *ActivitiesHandler) ArchiveAssignment() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *assignmentIDRequest) error {
		return h.services.Activities.ArchiveAssignment(c.Request().Context(), uuid.MustParse(req.AssignmentID))
	}, http.StatusNoContent, &assignmentIDRequest{})
}

type submitActivityRequest struct {
	AssignmentID string  `param:"id" validate:"required,uuid"`
	StudentID    string  `json:"student_id" validate:"required,uuid"`
	FileURL      *string `json:"file_url"`
	FileType     *string `json:"file_type" validate:"omitempty,oneof=IMAGE VIDEO OTHER"`
}

func (r *submitActivityRequest) Validate() error { return validation.Struct(r) }

func (h *ActivitiesHandler) Submit() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *submitActivityRequest) (*model.ActivitySubmission, error) {
		var fileType *model.FileType
		if req.FileType != nil && *req.FileType != "" {
			ft := model.FileType(*req.FileType)
			fileType = &ft
		}

		return h.services.Activities.Submit(c.Request().Context(), uuid.MustParse(req.AssignmentID), uuid.MustParse(req.StudentID), req.FileURL, fileType)
	}, http.StatusCreated, &submitActivityRequest{})
}

func (h *ActivitiesHandler) ListSubmissions() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *assignmentIDRequest) ([]model.ActivitySubmission, error) {
		return h.services.Activities.ListSubmissions(c.Request().Context(), uuid.MustParse(req.AssignmentID))
	}, http.StatusOK, &assignmentIDRequest{})
}

type submissionIDRequest struct {
	SubmissionID string `param:"id" validate:"required,uuid"`
}

func (r *submissionIDRequest) Validate() error { return validation.Struct(r) }

func (h *ActivitiesHandler) GetSubmission() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *submissionIDRequest) (*model.ActivitySubmission, error) {
		return h.services.Activities.GetSubmission(c.Request().Context(), uuid.MustParse(req.SubmissionID))
	}, http.StatusOK, &submissionIDRequest{})
}

type reviewSubmissionRequest struct {
	SubmissionID string  `param:"id" validate:"required,uuid"`
	Status       string  `json:"status" validate:"required,oneof=VERIFIED REJECTED"`
	Feedback     *string `json:"feedback"`
}

func (r *reviewSubmissionRequest) Validate() error { return validation.Struct(r) }

func (h *ActivitiesHandler) Review() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *reviewSubmissionRequest) (*model.ActivitySubmission, error) {
		return h.services.Activities.Review(c.Request().Context(), uuid.MustParse(req.SubmissionID), model.SubmissionStatus(req.Status), req.Feedback)
	}, http.StatusOK, &reviewSubmissionRequest{})
}

type commentRequest struct {
	SubmissionID string  `param:"id" validate:"required,uuid"`
	StudentID    *string `json:"student_id" validate:"omitempty,uuid"`
	Message      string  `json:"message" validate:"required,min=1,max=2000"`
}

func (r *commentRequest) Validate() error { return validation.Struct(r) }

// Comment adds a message to a submission thread. When student_id is
// set the comment is attributed to the student; otherwise to the
// authenticated staff member.
func (h *ActivitiesHandler) Comment() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *commentRequest) (*model.SubmissionComment, error) {
		var userID *uuid.UUID
		studentID := optionalUUID(req.StudentID)
		if studentID == nil {
			id := callerID(c)
			userID = &id
		}

		return h.services.Activities.Comment(c.Request().Context(), uuid.MustParse(req.SubmissionID), userID, studentID, req.Message)
	}, http.StatusCreated, &commentRequest{})
}

func (h *ActivitiesHandler) ListComments() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *submissionIDRequest) ([]model.SubmissionComment, error) {
		return h.services.Activities.ListComments(c.Request().Context(), uuid.MustParse(req.SubmissionID))
	}, http.StatusOK, &submissionIDRequest{})
}
