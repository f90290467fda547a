package model

import (
	"time"

	"github.com/google/uuid"
)

// ConsentType enumerates what a guardian consents to.
type ConsentType string

const (
	ConsentAssessment   ConsentType = "ASSESSMENT"
	ConsentIntervention ConsentType = "INTERVENTION"
	ConsentDataSharing  ConsentType = "DATA_SHARING"
	ConsentAIAnalysis   ConsentType = "AI_ANALYSIS"
)

// ConsentStatus is the consent lifecycle state.
type ConsentStatus string

const (
	ConsentGranted ConsentStatus = "GRANTED"
	ConsentPending ConsentStatus = "PENDING"
	ConsentDenied  ConsentStatus = "DENIED"
	ConsentRevoked ConsentStatus = "REVOKED"
)

// ConsentRecord tracks guardian consent for a student. GRANTED records
// past ExpiresAt are swept to REVOKED by a background job.
type ConsentRecord struct {
	ConsentID   uuid.UUID     `db:"consent_id" json:"consent_id"`
	StudentID   uuid.UUID     `db:"student_id" json:"student_id"`
	ParentName  *string       `db:"parent_name" json:"parent_name"`
	ConsentType ConsentType   `db:"consent_type" json:"consent_type"`
	Status      ConsentStatus `db:"status" json:"status"`
	GrantedAt   *time.Time    `db:"granted_at" json:"granted_at"`
	ExpiresAt   *time.Time    `db:"expires_at" json:"expires_at"`
	Documents   []string      `db:"documents" json:"documents"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}
