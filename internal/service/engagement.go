package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// EngagementService tracks student app usage and computes streaks.
type EngagementService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewEngagementService(s *server.Server, repos *repository.Repositories) *EngagementService {
	return &EngagementService{
		server: s,
		repos:  repos,
	}
}

// RecordAppOpen logs an app open: session row, daily streak row, and a
// refreshed summary.
func (svc *EngagementService) RecordAppOpen(ctx context.Context, studentID uuid.UUID, at time.Time) error {
	if _, err := svc.repos.Students.GetByID(ctx, studentID); err != nil {
		return err
	}

	if _, err := svc.repos.Engagement.CreateSession(ctx, studentID, at, nil); err != nil {
		return err
	}

	day := at.Truncate(24 * time.Hour)
	if err := svc.repos.Engagement.MarkAppOpened(ctx, studentID, day); err != nil {
		return err
	}

	return svc.RefreshSummary(ctx, studentID, at)
}

// RecordActivityCompleted marks today's streak row for a completed
// activity and refreshes the rollup. Called by the activities service on
// submission.
func (svc *EngagementService) RecordActivityCompleted(ctx context.Context, studentID uuid.UUID, at time.Time) error {
	day := at.Truncate(24 * time.Hour)
	if err := svc.repos.Engagement.MarkActivityCompleted(ctx, studentID, day); err != nil {
		return err
	}
	return svc.RefreshSummary(ctx, studentID, at)
}

// RefreshSummary recomputes one student's streak rollup from their full
// daily history.
func (svc *EngagementService) RefreshSummary(ctx context.Context, studentID uuid.UUID, now time.Time) error {
	days, err := svc.repos.Engagement.ListAllDailyStreaks(ctx, studentID)
	if err != nil {
		return err
	}

	summary := ComputeStreaks(studentID, days, now)
	return svc.repos.Engagement.UpsertSummary(ctx, summary)
}

// RefreshAllSummaries recomputes the rollup for every student with
// streak history. Runs nightly from the scheduler.
func (svc *EngagementService) RefreshAllSummaries(ctx context.Context) (int, error) {
	ids, err := svc.repos.Engagement.ListStudentIDsWithStreaks(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	refreshed := 0
	for _, id := range ids {
		if err := svc.RefreshSummary(ctx, id, now); err != nil {
			svc.server.Logger.Error().Err(err).
				Str("student_id", id.String()).
				Msg("failed to refresh streak summary")
			continue
		}
		refreshed++
	}

	return refreshed, nil
}

// ComputeStreaks derives the streak rollup from a student's daily rows
// (oldest first). A day counts as active when streak_maintained is set.
// The current streak is the run of consecutive active days ending today
// or yesterday; an older run means the streak is broken and current is
// zero. Pure function so the arithmetic is testable.
func ComputeStreaks(studentID uuid.UUID, days []model.DailyStreak, now time.Time) model.StreakSummary {
	summary := model.StreakSummary{StudentID: studentID}

	var active []time.Time
	for _, d := range days {
		if d.StreakMaintained {
			active = append(active, d.Date.Truncate(24*time.Hour))
		}
	}
	if len(active) == 0 {
		return summary
	}

	summary.TotalActiveDays = len(active)
	last := active[len(active)-1]
	summary.LastActiveDate = &last

	// Walk runs of consecutive days to find the longest, tracking the
	// final run for the current streak.
	runLen := 1
	runStart := active[0]
	maxRun := 1
	for i := 1; i < len(active); i++ {
		if active[i].Sub(active[i-1]) == 24*time.Hour {
			runLen++
		} else {
			runLen = 1
			runStart = active[i]
		}
		if runLen > maxRun {
			maxRun = runLen
		}
	}
	summary.MaxStreak = maxRun

	// The final run only counts as current when it reaches today or
	// yesterday.
	today := now.Truncate(24 * time.Hour)
	gap := today.Sub(last)
	if gap <= 24*time.Hour {
		summary.CurrentStreak = runLen
		summary.StreakStartDate = &runStart
	}

	return summary
}

// WeeklySummary is one week's activity rollup in the streak detail view.
type WeeklySummary struct {
	WeekStart  string `json:"week_start"`
	ActiveDays int    `json:"active_days"`
	Activities int    `json:"activities"`
}

// StreakDetail is the full engagement view for one student.
type StreakDetail struct {
	StudentID       uuid.UUID           `json:"student_id"`
	CurrentStreak   int                 `json:"current_streak"`
	MaxStreak       int                 `json:"max_streak"`
	TotalActiveDays int                 `json:"total_active_days"`
	StreakStartDate *time.Time          `json:"streak_start_date"`
	LastActiveDate  *time.Time          `json:"last_active_date"`
	History         []model.DailyStreak `json:"history"`
	WeeklySummary   []WeeklySummary     `json:"weekly_summary"`
}

// GetStreakDetail returns the streak rollup plus the last 28 days of
// history bucketed into four weekly summaries.
func (svc *EngagementService) GetStreakDetail(ctx context.Context, studentID uuid.UUID) (*StreakDetail, error) {
	if _, err := svc.repos.Students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	now := time.Now()
	from := now.AddDate(0, 0, -28).Truncate(24 * time.Hour)

	history, err := svc.repos.Engagement.ListDailyStreaks(ctx, studentID, from, now)
	if err != nil {
		return nil, err
	}

	summary, err := svc.repos.Engagement.GetSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		computed := ComputeStreaks(studentID, history, now)
		summary = &computed
	}

	detail := &StreakDetail{
		StudentID:       studentID,
		CurrentStreak:   summary.CurrentStreak,
		MaxStreak:       summary.MaxStreak,
		TotalActiveDays: summary.TotalActiveDays,
		StreakStartDate: summary.StreakStartDate,
		LastActiveDate:  summary.LastActiveDate,
		History:         history,
		WeeklySummary:   BucketWeekly(history, now),
	}

	return detail, nil
}

// BucketWeekly rolls daily rows into four week buckets counting back
// from today. Pure function.
func BucketWeekly(history []model.DailyStreak, now time.Time) []WeeklySummary {
	today := now.Truncate(24 * time.Hour)
	weeks := make([]WeeklySummary, 4)

	for i := range weeks {
		start := today.AddDate(0, 0, -7*(4-i)+1)
		weeks[i].WeekStart = start.Format("2006-01-02")
	}

	for _, day := range history {
		d := day.Date.Truncate(24 * time.Hour)
		daysAgo := int(today.Sub(d).Hours() / 24)
		if daysAgo < 0 || daysAgo >= 28 {
			continue
		}
		idx := 3 - daysAgo/7
		if day.StreakMaintained {
			weeks[idx].ActiveDays++
		}
		weeks[idx].Activities += day.ActivitiesCount
	}

	return weeks
}
