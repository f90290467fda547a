package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// AssessmentsService manages templates, assessment instances, response
// submission, and the monitoring views built on top of them.
type AssessmentsService struct {
	server   *server.Server
	repos    *repository.Repositories
	consents *ConsentsService
}

func NewAssessmentsService(s *server.Server, repos *repository.Repositories, consents *ConsentsService) *AssessmentsService {
	return &AssessmentsService{
		server:   s,
		repos:    repos,
		consents: consents,
	}
}

func (svc *AssessmentsService) CreateTemplate(ctx context.Context, p repository.CreateTemplateParams) (*model.AssessmentTemplate, error) {
	if len(p.Questions) == 0 {
		return nil, errs.NewBadRequestError("Template needs at least one question", true, nil, nil, nil)
	}

	seen := make(map[string]bool, len(p.Questions))
	for _, q := range p.Questions {
		if seen[q.QuestionID] {
			return nil, errs.NewBadRequestError(
				fmt.Sprintf("Duplicate question id %q in template", q.QuestionID), true, nil, nil, nil)
		}
		seen[q.QuestionID] = true
	}

	return svc.repos.Assessments.CreateTemplate(ctx, p)
}

func (svc *AssessmentsService) GetTemplate(ctx context.Context, templateID uuid.UUID) (*model.AssessmentTemplate, error) {
	return svc.repos.Assessments.GetTemplateByID(ctx, templateID)
}

func (svc *AssessmentsService) ListTemplates(ctx context.Context, activeOnly bool, category *string) ([]model.AssessmentTemplate, error) {
	return svc.repos.Assessments.ListTemplates(ctx, activeOnly, category)
}

func (svc *AssessmentsService) SetTemplateActive(ctx context.Context, templateID uuid.UUID, active bool) error {
	return svc.repos.Assessments.SetTemplateActive(ctx, templateID, active)
}

// CreateAssessment instantiates a template for a class. The template
// must be active.
func (svc *AssessmentsService) CreateAssessment(ctx context.Context, p repository.CreateAssessmentParams) (*model.Assessment, error) {
	template, err := svc.repos.Assessments.GetTemplateByID(ctx, p.TemplateID)
	if err != nil {
		return nil, err
	}
	if !template.IsActive {
		return nil, errs.NewConflictError("Template is no longer active", true)
	}

	return svc.repos.Assessments.CreateAssessment(ctx, p)
}

func (svc *AssessmentsService) GetAssessment(ctx context.Context, assessmentID uuid.UUID) (*model.Assessment, error) {
	return svc.repos.Assessments.GetAssessmentByID(ctx, assessmentID)
}

func (svc *AssessmentsService) ListAssessments(ctx context.Context, schoolID uuid.UUID, classID, templateID *uuid.UUID, p utils.Pagination) ([]model.Assessment, utils.PageMeta, error) {
	assessments, total, err := svc.repos.Assessments.ListAssessments(ctx, schoolID, classID, templateID, p)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return assessments, utils.NewPageMeta(p, total), nil
}

// AnswerInput is one answered question in a submission.
type AnswerInput struct {
	QuestionID string
	Answer     any
	Score      *float64
}

// SubmitResponses records a student's full submission, replacing any
// earlier one, then rescores the student's wellbeing from the template's
// scoring weights. Excluded students cannot submit, the student needs an
// active ASSESSMENT consent, and answers must map to template questions.
func (svc *AssessmentsService) SubmitResponses(ctx context.Context, assessmentID, studentID uuid.UUID, answers []AnswerInput) error {
	assessment, err := svc.repos.Assessments.GetAssessmentByID(ctx, assessmentID)
	if err != nil {
		return err
	}

	for _, excluded := range assessment.ExcludedStudents {
		if excluded == studentID {
			return errs.NewConflictError("Student is excluded from this assessment", true)
		}
	}

	hasConsent, err := svc.consents.HasActiveConsent(ctx, studentID, model.ConsentAssessment)
	if err != nil {
		return err
	}
	if !hasConsent {
		return errs.NewForbiddenError("Student has no active assessment consent", true)
	}

	template, err := svc.repos.Assessments.GetTemplateByID(ctx, assessment.TemplateID)
	if err != nil {
		return err
	}

	questions := make(map[string]model.TemplateQuestion, len(template.Questions))
	for _, q := range template.Questions {
		questions[q.QuestionID] = q
	}

	responses := make([]repository.ResponseParams, 0, len(answers))
	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			return errs.NewBadRequestError(
				fmt.Sprintf("Question %q is not part of this assessment", a.QuestionID), true, nil, nil, nil)
		}
		responses = append(responses, repository.ResponseParams{
			QuestionID:   a.QuestionID,
			QuestionText: q.Text,
			Answer:       a.Answer,
			Score:        a.Score,
		})
	}

	if err := svc.repos.Assessments.SubmitResponses(ctx, assessmentID, studentID, responses); err != nil {
		return err
	}

	svc.rescoreStudent(ctx, template, studentID, responses)
	return nil
}

// rescoreStudent recomputes a student's wellbeing score and risk level
// from a scored submission. Skipped silently when the template carries
// no score weights.
func (svc *AssessmentsService) rescoreStudent(ctx context.Context, template *model.AssessmentTemplate, studentID uuid.UUID, responses []repository.ResponseParams) {
	maxByQuestion := make(map[string]float64, len(template.Questions))
	for _, q := range template.Questions {
		if q.MaxScore > 0 {
			maxByQuestion[q.QuestionID] = q.MaxScore
		}
	}

	var total, max float64
	for _, resp := range responses {
		m, ok := maxByQuestion[resp.QuestionID]
		if !ok || resp.Score == nil {
			continue
		}
		total += *resp.Score
		max += m
	}
	if max == 0 {
		return
	}

	score := int(math.Round(total / max * 100))
	risk := ClassifyRisk(score)

	if err := svc.repos.Students.UpdateWellbeing(ctx, studentID, risk, score); err != nil {
		svc.server.Logger.Error().Err(err).
			Str("student_id", studentID.String()).
			Msg("failed to update student wellbeing after assessment")
	}
}

// ClassifyRisk maps a 0-100 wellbeing score onto a risk level. Lower
// scores mean higher risk.
func ClassifyRisk(score int) model.RiskLevel {
	switch {
	case score >= 70:
		return model.RiskLow
	case score >= 40:
		return model.RiskMedium
	case score >= 20:
		return model.RiskHigh
	default:
		return model.RiskCritical
	}
}

// MonitoringStudent is a student's line in the monitoring view.
type MonitoringStudent struct {
	StudentID     uuid.UUID `json:"student_id"`
	Name          string    `json:"name"`
	AnsweredCount int       `json:"answered_count"`
	QuestionCount int       `json:"question_count"`
}

// MonitoringResult buckets the class roster by submission progress.
// Unexpected holds respondents who are not on the expected roster
// (moved class, or excluded after submitting).
type MonitoringResult struct {
	AssessmentID   uuid.UUID           `json:"assessment_id"`
	ExpectedCount  int                 `json:"expected_count"`
	CompletedCount int                 `json:"completed_count"`
	CompletionRate float64             `json:"completion_rate"`
	Completed      []MonitoringStudent `json:"completed"`
	Incomplete     []MonitoringStudent `json:"incomplete"`
	NotStarted     []MonitoringStudent `json:"not_started"`
	Unexpected     []uuid.UUID         `json:"unexpected"`
}

// Monitor reports submission progress for an assessment against its
// class roster, honoring the excluded-students list.
func (svc *AssessmentsService) Monitor(ctx context.Context, assessmentID uuid.UUID) (*MonitoringResult, error) {
	assessment, err := svc.repos.Assessments.GetAssessmentByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.ClassID == nil {
		return nil, errs.NewConflictError("Assessment is not assigned to a class", true)
	}

	template, err := svc.repos.Assessments.GetTemplateByID(ctx, assessment.TemplateID)
	if err != nil {
		return nil, err
	}

	roster, err := svc.repos.Students.ListByClass(ctx, *assessment.ClassID, assessment.ExcludedStudents)
	if err != nil {
		return nil, err
	}

	responses, err := svc.repos.Assessments.ListResponses(ctx, assessmentID, nil)
	if err != nil {
		return nil, err
	}

	result := BucketMonitoring(assessment.AssessmentID, len(template.Questions), roster, responses)
	return &result, nil
}

// BucketMonitoring classifies roster students by their answered-question
// counts. Pure function so the classification is testable without a
// database.
func BucketMonitoring(assessmentID uuid.UUID, questionCount int, roster []model.Student, responses []model.StudentResponse) MonitoringResult {
	// Distinct question ids per student, so duplicate rows for one
	// question never count a student as further along than they are.
	questionsByStudent := make(map[uuid.UUID]map[string]bool)
	for _, resp := range responses {
		if questionsByStudent[resp.StudentID] == nil {
			questionsByStudent[resp.StudentID] = make(map[string]bool)
		}
		questionsByStudent[resp.StudentID][resp.QuestionID] = true
	}

	answered := make(map[uuid.UUID]int, len(questionsByStudent))
	for studentID, questions := range questionsByStudent {
		answered[studentID] = len(questions)
	}

	result := MonitoringResult{
		AssessmentID:  assessmentID,
		ExpectedCount: len(roster),
		Completed:     []MonitoringStudent{},
		Incomplete:    []MonitoringStudent{},
		NotStarted:    []MonitoringStudent{},
		Unexpected:    []uuid.UUID{},
	}

	expected := make(map[uuid.UUID]bool, len(roster))
	for _, student := range roster {
		expected[student.StudentID] = true

		line := MonitoringStudent{
			StudentID:     student.StudentID,
			Name:          student.FullName(),
			AnsweredCount: answered[student.StudentID],
			QuestionCount: questionCount,
		}

		switch {
		case questionCount > 0 && line.AnsweredCount >= questionCount:
			result.Completed = append(result.Completed, line)
		case line.AnsweredCount > 0:
			result.Incomplete = append(result.Incomplete, line)
		default:
			result.NotStarted = append(result.NotStarted, line)
		}
	}

	for studentID := range answered {
		if !expected[studentID] {
			result.Unexpected = append(result.Unexpected, studentID)
		}
	}

	result.CompletedCount = len(result.Completed)
	if result.ExpectedCount > 0 {
		rate := float64(result.CompletedCount) / float64(result.ExpectedCount) * 100
		result.CompletionRate = math.Round(rate*10) / 10
	}

	return result
}

// QuestionBreakdown aggregates responses for one template question.
type QuestionBreakdown struct {
	QuestionID    string         `json:"question_id"`
	QuestionText  string         `json:"question_text"`
	ResponseCount int            `json:"response_count"`
	AverageScore  *float64       `json:"average_score"`
	Distribution  map[string]int `json:"distribution"`
}

// BreakdownByQuestion aggregates an assessment's responses per question:
// response counts, mean score, and the answer distribution.
func (svc *AssessmentsService) BreakdownByQuestion(ctx context.Context, assessmentID uuid.UUID) ([]QuestionBreakdown, error) {
	assessment, err := svc.repos.Assessments.GetAssessmentByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	template, err := svc.repos.Assessments.GetTemplateByID(ctx, assessment.TemplateID)
	if err != nil {
		return nil, err
	}

	responses, err := svc.repos.Assessments.ListResponses(ctx, assessmentID, nil)
	if err != nil {
		return nil, err
	}

	return BuildQuestionBreakdown(template.Questions, responses), nil
}

// BuildQuestionBreakdown computes the per-question aggregation. Pure
// function over template questions and collected responses.
func BuildQuestionBreakdown(questions []model.TemplateQuestion, responses []model.StudentResponse) []QuestionBreakdown {
	byQuestion := make(map[string][]model.StudentResponse)
	for _, resp := range responses {
		byQuestion[resp.QuestionID] = append(byQuestion[resp.QuestionID], resp)
	}

	breakdown := make([]QuestionBreakdown, 0, len(questions))
	for _, q := range questions {
		entry := QuestionBreakdown{
			QuestionID:   q.QuestionID,
			QuestionText: q.Text,
			Distribution: map[string]int{},
		}

		var scoreSum float64
		var scored int
		for _, resp := range byQuestion[q.QuestionID] {
			entry.ResponseCount++
			entry.Distribution[fmt.Sprintf("%v", resp.Answer)]++
			if resp.Score != nil {
				scoreSum += *resp.Score
				scored++
			}
		}

		if scored > 0 {
			avg := math.Round(scoreSum/float64(scored)*10) / 10
			entry.AverageScore = &avg
		}

		breakdown = append(breakdown, entry)
	}

	return breakdown
}
