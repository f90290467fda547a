package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType categorizes wellbeing activities.
type ActivityType string

const (
	ActivityMindfulness         ActivityType = "MINDFULNESS"
	ActivitySocialSkills        ActivityType = "SOCIAL_SKILLS"
	ActivityEmotionalRegulation ActivityType = "EMOTIONAL_REGULATION"
	ActivityAcademicSupport     ActivityType = "ACADEMIC_SUPPORT"
	ActivityTeamBuilding        ActivityType = "TEAM_BUILDING"
)

// AssignmentStatus marks whether an assignment is still collecting
// submissions.
type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "ACTIVE"
	AssignmentArchived AssignmentStatus = "ARCHIVED"
)

// SubmissionStatus tracks a submission through review. SUBMITTED and
// VERIFIED both count as completed for analytics.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "PENDING"
	SubmissionSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionVerified  SubmissionStatus = "VERIFIED"
	SubmissionRejected  SubmissionStatus = "REJECTED"
)

// FileType of an uploaded submission artifact.
type FileType string

const (
	FileImage FileType = "IMAGE"
	FileVideo FileType = "VIDEO"
	FileOther FileType = "OTHER"
)

// Activity is a wellbeing exercise that teachers assign to classes.
type Activity struct {
	ActivityID   uuid.UUID    `db:"activity_id" json:"activity_id"`
	SchoolID     *uuid.UUID   `db:"school_id" json:"school_id"`
	Title        string       `db:"title" json:"title"`
	Description  *string      `db:"description" json:"description"`
	Type         ActivityType `db:"type" json:"type"`
	Duration     *int         `db:"duration" json:"duration"`
	TargetGrades []string     `db:"target_grades" json:"target_grades"`
	Materials    []string     `db:"materials" json:"materials"`
	Instructions []string     `db:"instructions" json:"instructions"`
	Objectives   []string     `db:"objectives" json:"objectives"`
	CreatedBy    uuid.UUID    `db:"created_by" json:"created_by"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// ActivityAssignment links an activity to a class with a due date.
type ActivityAssignment struct {
	AssignmentID uuid.UUID        `db:"assignment_id" json:"assignment_id"`
	ActivityID   uuid.UUID        `db:"activity_id" json:"activity_id"`
	ClassID      uuid.UUID        `db:"class_id" json:"class_id"`
	AssignedBy   uuid.UUID        `db:"assigned_by" json:"assigned_by"`
	DueDate      *time.Time       `db:"due_date" json:"due_date"`
	Status       AssignmentStatus `db:"status" json:"status"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// ActivitySubmission is a student's response to an assignment. One
// submission per student per assignment (unique constraint).
type ActivitySubmission struct {
	SubmissionID uuid.UUID        `db:"submission_id" json:"submission_id"`
	AssignmentID uuid.UUID        `db:"assignment_id" json:"assignment_id"`
	StudentID    uuid.UUID        `db:"student_id" json:"student_id"`
	FileURL      *string          `db:"file_url" json:"file_url"`
	FileType     *FileType        `db:"file_type" json:"file_type"`
	Status       SubmissionStatus `db:"status" json:"status"`
	Feedback     *string          `db:"feedback" json:"feedback"`
	SubmittedAt  *time.Time       `db:"submitted_at" json:"submitted_at"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// SubmissionComment is a message on a submission thread. Exactly one of
// UserID (teacher side) and StudentID (student side) is set.
type SubmissionComment struct {
	CommentID    uuid.UUID  `db:"comment_id" json:"comment_id"`
	SubmissionID uuid.UUID  `db:"submission_id" json:"submission_id"`
	UserID       *uuid.UUID `db:"user_id" json:"user_id"`
	StudentID    *uuid.UUID `db:"student_id" json:"student_id"`
	Message      string     `db:"message" json:"message"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
