package model

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus tracks a case through its lifecycle.
type CaseStatus string

const (
	CaseIntake       CaseStatus = "intake"
	CaseAssessment   CaseStatus = "assessment"
	CaseIntervention CaseStatus = "intervention"
	CaseMonitoring   CaseStatus = "monitoring"
	CaseClosed       CaseStatus = "closed"
)

// EntryVisibility controls who can read a journal entry.
type EntryVisibility string

const (
	EntryPrivate EntryVisibility = "private"
	EntryShared  EntryVisibility = "shared"
)

// EntryType categorizes journal entries.
type EntryType string

const (
	EntrySessionNote      EntryType = "session_note"
	EntryObservation      EntryType = "observation"
	EntryAssessmentResult EntryType = "assessment_result"
	EntryContactLog       EntryType = "contact_log"
)

// Case is a counselling case opened for a student.
type Case struct {
	CaseID             uuid.UUID  `db:"case_id" json:"case_id"`
	StudentID          uuid.UUID  `db:"student_id" json:"student_id"`
	CreatedBy          uuid.UUID  `db:"created_by" json:"created_by"`
	Status             CaseStatus `db:"status" json:"status"`
	RiskLevel          RiskLevel  `db:"risk_level" json:"risk_level"`
	Tags               []string   `db:"tags" json:"tags"`
	AssignedCounsellor *uuid.UUID `db:"assigned_counsellor" json:"assigned_counsellor"`
	Summary            *string    `db:"summary" json:"summary"`
	Processed          bool       `db:"processed" json:"processed"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	ClosedAt           *time.Time `db:"closed_at" json:"closed_at"`
}

// JournalEntry is a dated note attached to a case. At least one of
// Content and AudioURL is present (enforced by a table check).
type JournalEntry struct {
	EntryID    uuid.UUID       `db:"entry_id" json:"entry_id"`
	CaseID     uuid.UUID       `db:"case_id" json:"case_id"`
	AuthorID   uuid.UUID       `db:"author_id" json:"author_id"`
	Visibility EntryVisibility `db:"visibility" json:"visibility"`
	Type       EntryType       `db:"type" json:"type"`
	Content    *string         `db:"content" json:"content"`
	AudioURL   *string         `db:"audio_url" json:"audio_url"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
