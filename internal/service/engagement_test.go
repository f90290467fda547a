package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnest-hq/wellness-api/internal/model"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func streakDays(t *testing.T, dates ...string) []model.DailyStreak {
	t.Helper()
	days := make([]model.DailyStreak, 0, len(dates))
	for _, d := range dates {
		days = append(days, model.DailyStreak{
			Date:             day(t, d),
			StreakMaintained: true,
		})
	}
	return days
}

func TestComputeStreaksEmpty(t *testing.T) {
	studentID := uuid.New()
	now := day(t, "2026-03-15")

	summary := ComputeStreaks(studentID, nil, now)

	assert.Equal(t, studentID, summary.StudentID)
	assert.Zero(t, summary.CurrentStreak)
	assert.Zero(t, summary.MaxStreak)
	assert.Zero(t, summary.TotalActiveDays)
	assert.Nil(t, summary.LastActiveDate)
	assert.Nil(t, summary.StreakStartDate)
}

func TestComputeStreaksIgnoresUnmaintainedDays(t *testing.T) {
	now := day(t, "2026-03-15")
	days := []model.DailyStreak{
		{Date: day(t, "2026-03-14"), StreakMaintained: false},
		{Date: day(t, "2026-03-15"), StreakMaintained: false},
	}

	summary := ComputeStreaks(uuid.New(), days, now)

	assert.Zero(t, summary.CurrentStreak)
	assert.Zero(t, summary.TotalActiveDays)
}

func TestComputeStreaksCurrentRunEndsToday(t *testing.T) {
	now := day(t, "2026-03-15")
	days := streakDays(t, "2026-03-13", "2026-03-14", "2026-03-15")

	summary := ComputeStreaks(uuid.New(), days, now)

	assert.Equal(t, 3, summary.CurrentStreak)
	assert.Equal(t, 3, summary.MaxStreak)
	assert.Equal(t, 3, summary.TotalActiveDays)
	require.NotNil(t, summary.StreakStartDate)
	assert.Equal(t, day(t, "2026-03-13"), *summary.StreakStartDate)
	require.NotNil(t, summary.LastActiveDate)
	assert.Equal(t, day(t, "2026-03-15"), *summary.LastActiveDate)
}

func TestComputeStreaksCurrentRunEndsYesterday(t *testing.T) {
	now := day(t, "2026-03-15")
	days := streakDays(t, "2026-03-13", "2026-03-14")

	summary := ComputeStreaks(uuid.New(), days, now)

	assert.Equal(t, 2, summary.CurrentStreak)
	assert.Equal(t, 2, summary.MaxStreak)
}

func TestComputeStreaksStaleRunIsBroken(t *testing.T) {
	now := day(t, "2026-03-15")
	days := streakDays(t, "2026-03-10", "2026-03-11", "2026-03-12")

	summary := ComputeStreaks(uuid.New(), days, now)

	assert.Zero(t, summary.CurrentStreak)
	assert.Nil(t, summary.StreakStartDate)
	assert.Equal(t, 3, summary.MaxStreak)
	assert.Equal(t, 3, summary.TotalActiveDays)
}

func TestComputeStreaksLongestRunInThePast(t *testing.T) {
	now := day(t, "2026-03-15")
	days := streakDays(t,
		"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05",
		"2026-03-14", "2026-03-15",
	)

	summary := ComputeStreaks(uuid.New(), days, now)

	assert.Equal(t, 2, summary.CurrentStreak)
	assert.Equal(t, 5, summary.MaxStreak)
	assert.Equal(t, 7, summary.TotalActiveDays)
	require.NotNil(t, summary.StreakStartDate)
	assert.Equal(t, day(t, "2026-03-14"), *summary.StreakStartDate)
}

func TestBucketWeeklyAssignsDaysToWeeks(t *testing.T) {
	now := day(t, "2026-03-28")
	history := []model.DailyStreak{
		// Current week: two active days, three activities.
		{Date: day(t, "2026-03-28"), StreakMaintained: true, ActivitiesCount: 2},
		{Date: day(t, "2026-03-26"), StreakMaintained: true, ActivitiesCount: 1},
		// Previous week: opened the app but maintained nothing.
		{Date: day(t, "2026-03-20"), StreakMaintained: false, ActivitiesCount: 0},
		// Oldest week in range.
		{Date: day(t, "2026-03-01"), StreakMaintained: true, ActivitiesCount: 1},
		// Outside the 28-day window, dropped.
		{Date: day(t, "2026-02-20"), StreakMaintained: true, ActivitiesCount: 4},
	}

	weeks := BucketWeekly(history, now)

	require.Len(t, weeks, 4)
	assert.Equal(t, "2026-03-01", weeks[0].WeekStart)
	assert.Equal(t, "2026-03-08", weeks[1].WeekStart)
	assert.Equal(t, "2026-03-15", weeks[2].WeekStart)
	assert.Equal(t, "2026-03-22", weeks[3].WeekStart)

	assert.Equal(t, 2, weeks[3].ActiveDays)
	assert.Equal(t, 3, weeks[3].Activities)

	assert.Equal(t, 0, weeks[2].ActiveDays)

	assert.Equal(t, 1, weeks[0].ActiveDays)
	assert.Equal(t, 1, weeks[0].Activities)
}

func TestBucketWeeklyEmptyHistory(t *testing.T) {
	weeks := BucketWeekly(nil, day(t, "2026-03-28"))

	require.Len(t, weeks, 4)
	for _, week := range weeks {
		assert.Zero(t, week.ActiveDays)
		assert.Zero(t, week.Activities)
		assert.NotEmpty(t, week.WeekStart)
	}
}
