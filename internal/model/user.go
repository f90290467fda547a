package model

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the platform's user roles.
type Role string

const (
	RoleCounsellor Role = "COUNSELLOR"
	RoleTeacher    Role = "TEACHER"
	RolePrincipal  Role = "PRINCIPAL"
	RoleParent     Role = "PARENT"
	RoleClinician  Role = "CLINICIAN"
	RoleAdmin      Role = "ADMIN"
)

// User is a platform account: teacher, counsellor, admin, etc. Students
// are a separate entity and do not log in.
type User struct {
	UserID         uuid.UUID      `db:"user_id" json:"user_id"`
	SchoolID       uuid.UUID      `db:"school_id" json:"school_id"`
	Role           Role           `db:"role" json:"role"`
	Email          string         `db:"email" json:"email"`
	HashedPassword *string        `db:"hashed_password" json:"-"`
	DisplayName    string         `db:"display_name" json:"display_name"`
	Phone          *string        `db:"phone" json:"phone"`
	Profile        map[string]any `db:"profile" json:"profile"`
	Availability   map[string]any `db:"availability" json:"availability"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}
