package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WebinarStatus tracks a webinar through its lifecycle.
type WebinarStatus string

const (
	WebinarUpcoming  WebinarStatus = "Upcoming"
	WebinarLive      WebinarStatus = "Live"
	WebinarRecorded  WebinarStatus = "Recorded"
	WebinarCancelled WebinarStatus = "Cancelled"
)

// WebinarLevel is the intended audience experience level.
type WebinarLevel string

const (
	LevelBeginner     WebinarLevel = "Beginner"
	LevelIntermediate WebinarLevel = "Intermediate"
	LevelAdvanced     WebinarLevel = "Advanced"
	LevelAllLevels    WebinarLevel = "All Levels"
)

// RegistrationStatus of a user's webinar registration.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "Registered"
	RegistrationAttended   RegistrationStatus = "Attended"
	RegistrationCancelled  RegistrationStatus = "Cancelled"
)

// Webinar is a professional-development session offered to school staff.
// Price is NUMERIC(10,2); zero means free. MaxAttendees nil means
// unlimited capacity.
type Webinar struct {
	WebinarID       uuid.UUID       `db:"webinar_id" json:"webinar_id"`
	Title           string          `db:"title" json:"title"`
	Description     *string         `db:"description" json:"description"`
	SpeakerName     string          `db:"speaker_name" json:"speaker_name"`
	SpeakerTitle    *string         `db:"speaker_title" json:"speaker_title"`
	SpeakerBio      *string         `db:"speaker_bio" json:"speaker_bio"`
	SpeakerImageURL *string         `db:"speaker_image_url" json:"speaker_image_url"`
	Date            time.Time       `db:"date" json:"date"`
	DurationMinutes int             `db:"duration_minutes" json:"duration_minutes"`
	Category        string          `db:"category" json:"category"`
	Status          WebinarStatus   `db:"status" json:"status"`
	Level           WebinarLevel    `db:"level" json:"level"`
	Price           decimal.Decimal `db:"price" json:"price"`
	Topics          []string        `db:"topics" json:"topics"`
	VideoURL        *string         `db:"video_url" json:"video_url"`
	ThumbnailURL    *string         `db:"thumbnail_url" json:"thumbnail_url"`
	MaxAttendees    *int            `db:"max_attendees" json:"max_attendees"`
	AttendeeCount   int             `db:"attendee_count" json:"attendee_count"`
	Views           int             `db:"views" json:"views"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// IsFree reports whether the webinar has no fee.
func (w Webinar) IsFree() bool {
	return w.Price.IsZero()
}

// WebinarRegistration is a staff user's registration. One row per
// (webinar, user); cancelled rows are reactivated on re-registration.
type WebinarRegistration struct {
	RegistrationID uuid.UUID          `db:"registration_id" json:"registration_id"`
	WebinarID      uuid.UUID          `db:"webinar_id" json:"webinar_id"`
	UserID         uuid.UUID          `db:"user_id" json:"user_id"`
	SchoolID       uuid.UUID          `db:"school_id" json:"school_id"`
	Status         RegistrationStatus `db:"status" json:"status"`
	RegisteredAt   time.Time          `db:"registered_at" json:"registered_at"`
	AttendedAt     *time.Time         `db:"attended_at" json:"attended_at"`
	CancelledAt    *time.Time         `db:"cancelled_at" json:"cancelled_at"`
}

// StudentWebinarAttendance records a student watching a webinar,
// separate from staff registrations.
type StudentWebinarAttendance struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	WebinarID            uuid.UUID  `db:"webinar_id" json:"webinar_id"`
	StudentID            uuid.UUID  `db:"student_id" json:"student_id"`
	Attended             bool       `db:"attended" json:"attended"`
	JoinTime             *time.Time `db:"join_time" json:"join_time"`
	LeaveTime            *time.Time `db:"leave_time" json:"leave_time"`
	WatchDurationMinutes *int       `db:"watch_duration_minutes" json:"watch_duration_minutes"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
}
