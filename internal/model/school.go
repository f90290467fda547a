package model

import (
	"time"

	"github.com/google/uuid"
)

// School is the tenant root. Every user, student, and class belongs to
// exactly one school.
type School struct {
	SchoolID            uuid.UUID      `db:"school_id" json:"school_id"`
	Name                string         `db:"name" json:"name"`
	Address             *string        `db:"address" json:"address"`
	City                *string        `db:"city" json:"city"`
	State               *string        `db:"state" json:"state"`
	Country             *string        `db:"country" json:"country"`
	Phone               *string        `db:"phone" json:"phone"`
	Email               *string        `db:"email" json:"email"`
	Website             *string        `db:"website" json:"website"`
	Timezone            string         `db:"timezone" json:"timezone"`
	AcademicYear        *string        `db:"academic_year" json:"academic_year"`
	DataRetentionPolicy map[string]any `db:"data_retention_policy" json:"data_retention_policy"`
	Settings            map[string]any `db:"settings" json:"settings"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}
