package model

import (
	"time"

	"github.com/google/uuid"
)

// Class is a school class/section, e.g. "Grade 5-A".
type Class struct {
	ClassID        uuid.UUID      `db:"class_id" json:"class_id"`
	SchoolID       uuid.UUID      `db:"school_id" json:"school_id"`
	Name           string         `db:"name" json:"name"`
	Grade          string         `db:"grade" json:"grade"`
	Section        *string        `db:"section" json:"section"`
	AcademicYear   *string        `db:"academic_year" json:"academic_year"`
	TeacherID      *uuid.UUID     `db:"teacher_id" json:"teacher_id"`
	Capacity       *int           `db:"capacity" json:"capacity"`
	AdditionalInfo map[string]any `db:"additional_info" json:"additional_info"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}
