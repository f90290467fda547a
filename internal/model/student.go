package model

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted for students.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// RiskLevel is the wellbeing risk classification shared by students and
// cases.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Student is a pupil tracked by the platform. WellbeingScore is a 0-100
// composite updated by assessments; RiskLevel drives the at-risk views.
type Student struct {
	StudentID      uuid.UUID      `db:"student_id" json:"student_id"`
	SchoolID       uuid.UUID      `db:"school_id" json:"school_id"`
	ClassID        *uuid.UUID     `db:"class_id" json:"class_id"`
	FirstName      string         `db:"first_name" json:"first_name"`
	LastName       string         `db:"last_name" json:"last_name"`
	Pseudonym      *string        `db:"pseudonym" json:"pseudonym"`
	DOB            *time.Time     `db:"dob" json:"dob"`
	Gender         *Gender        `db:"gender" json:"gender"`
	RiskLevel      RiskLevel      `db:"risk_level" json:"risk_level"`
	WellbeingScore *int           `db:"wellbeing_score" json:"wellbeing_score"`
	ParentEmail    *string        `db:"parent_email" json:"parent_email"`
	ParentPhone    *string        `db:"parent_phone" json:"parent_phone"`
	AdditionalInfo map[string]any `db:"additional_info" json:"additional_info"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// FullName returns "First Last", the display form used across analytics
// payloads.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
