package model

import (
	"time"

	"github.com/google/uuid"
)

// TemplateQuestion is one question inside an assessment template.
// Options and scoring weights live in the template so every assessment
// instance is scored consistently.
type TemplateQuestion struct {
	QuestionID string   `json:"question_id"`
	Text       string   `json:"text"`
	Type       string   `json:"type"` // scale | choice | text
	Options    []string `json:"options,omitempty"`
	MaxScore   float64  `json:"max_score,omitempty"`
}

// AssessmentTemplate is a reusable questionnaire definition.
type AssessmentTemplate struct {
	TemplateID   uuid.UUID          `db:"template_id" json:"template_id"`
	Name         string             `db:"name" json:"name"`
	Description  *string            `db:"description" json:"description"`
	Category     *string            `db:"category" json:"category"`
	Questions    []TemplateQuestion `db:"questions" json:"questions"`
	ScoringRules map[string]any     `db:"scoring_rules" json:"scoring_rules"`
	IsActive     bool               `db:"is_active" json:"is_active"`
	CreatedBy    uuid.UUID          `db:"created_by" json:"created_by"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updated_at"`
}

// Assessment is a template instance assigned to a class. Students in the
// class are expected to respond unless listed in ExcludedStudents.
type Assessment struct {
	AssessmentID     uuid.UUID   `db:"assessment_id" json:"assessment_id"`
	TemplateID       uuid.UUID   `db:"template_id" json:"template_id"`
	SchoolID         *uuid.UUID  `db:"school_id" json:"school_id"`
	ClassID          *uuid.UUID  `db:"class_id" json:"class_id"`
	Title            *string     `db:"title" json:"title"`
	ExcludedStudents []uuid.UUID `db:"excluded_students" json:"excluded_students"`
	Notes            *string     `db:"notes" json:"notes"`
	CreatedBy        uuid.UUID   `db:"created_by" json:"created_by"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
}

// StudentResponse is a single answered question within an assessment.
// A student's submission is the set of their responses; CompletedAt is
// stamped on all of them when the submission lands.
type StudentResponse struct {
	ResponseID   uuid.UUID  `db:"response_id" json:"response_id"`
	AssessmentID uuid.UUID  `db:"assessment_id" json:"assessment_id"`
	StudentID    uuid.UUID  `db:"student_id" json:"student_id"`
	QuestionID   string     `db:"question_id" json:"question_id"`
	QuestionText string     `db:"question_text" json:"question_text"`
	Answer       any        `db:"answer" json:"answer"`
	Score        *float64   `db:"score" json:"score"`
	CompletedAt  *time.Time `db:"completed_at" json:"completed_at"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
