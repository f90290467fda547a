package model

import (
	"time"

	"github.com/google/uuid"
)

// AppSession is a single student app session.
type AppSession struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	StudentID       uuid.UUID  `db:"student_id" json:"student_id"`
	SessionStart    time.Time  `db:"session_start" json:"session_start"`
	SessionEnd      *time.Time `db:"session_end" json:"session_end"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// DailyStreak is one student-day of activity, the raw material for
// streak computation. One row per (student, date).
type DailyStreak struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	StudentID         uuid.UUID  `db:"student_id" json:"student_id"`
	Date              time.Time  `db:"date" json:"date"`
	AppOpened         bool       `db:"app_opened" json:"app_opened"`
	AppOpenTime       *time.Time `db:"app_open_time" json:"app_open_time"`
	ActivityCompleted bool       `db:"activity_completed" json:"activity_completed"`
	ActivitiesCount   int        `db:"activities_count" json:"activities_count"`
	StreakMaintained  bool       `db:"streak_maintained" json:"streak_maintained"`
}

// StreakSummary is the denormalized per-student streak rollup, kept
// current by the engagement service and refreshed nightly.
type StreakSummary struct {
	StudentID       uuid.UUID  `db:"student_id" json:"student_id"`
	CurrentStreak   int        `db:"current_streak" json:"current_streak"`
	MaxStreak       int        `db:"max_streak" json:"max_streak"`
	StreakStartDate *time.Time `db:"streak_start_date" json:"streak_start_date"`
	LastActiveDate  *time.Time `db:"last_active_date" json:"last_active_date"`
	TotalActiveDays int        `db:"total_active_days" json:"total_active_days"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
