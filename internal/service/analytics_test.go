package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
)

func TestFoldRiskCountsMergesCriticalIntoHigh(t *testing.T) {
	counts := []repository.RiskCount{
		{RiskLevel: model.RiskLow, Count: 12},
		{RiskLevel: model.RiskMedium, Count: 5},
		{RiskLevel: model.RiskHigh, Count: 3},
		{RiskLevel: model.RiskCritical, Count: 2},
	}

	dist := FoldRiskCounts(counts)

	assert.Equal(t, int64(12), dist.Low)
	assert.Equal(t, int64(5), dist.Medium)
	assert.Equal(t, int64(5), dist.High)
}

func TestFoldRiskCountsEmpty(t *testing.T) {
	dist := FoldRiskCounts(nil)

	assert.Zero(t, dist.Low)
	assert.Zero(t, dist.Medium)
	assert.Zero(t, dist.High)
}

func TestRoundAvg(t *testing.T) {
	assert.Nil(t, roundAvg(nil))

	v := 66.666
	rounded := roundAvg(&v)
	require.NotNil(t, rounded)
	assert.InDelta(t, 66.7, *rounded, 0.001)

	exact := 70.0
	rounded = roundAvg(&exact)
	require.NotNil(t, rounded)
	assert.InDelta(t, 70.0, *rounded, 0.001)
}

func TestSummarizeClassesWeightsByRosterSize(t *testing.T) {
	avgA := 80.0
	avgB := 50.0
	rows := []repository.ClassWellbeingRow{
		{StudentCount: 30, AvgWellbeing: &avgA, HighRisk: 1},
		{StudentCount: 10, AvgWellbeing: &avgB, HighRisk: 3},
	}

	students, highRisk, avg := SummarizeClasses(rows)

	assert.Equal(t, int64(40), students)
	assert.Equal(t, int64(4), highRisk)
	require.NotNil(t, avg)
	// (80*30 + 50*10) / 40 = 72.5
	assert.Equal(t, 72.5, *avg)
}

func TestSummarizeClassesSkipsUnscoredClasses(t *testing.T) {
	avg := 60.0
	rows := []repository.ClassWellbeingRow{
		{StudentCount: 20, AvgWellbeing: &avg},
		// A class whose students have no wellbeing scores yet must not
		// drag the overall average toward zero.
		{StudentCount: 15, AvgWellbeing: nil},
	}

	students, _, overall := SummarizeClasses(rows)

	assert.Equal(t, int64(35), students)
	require.NotNil(t, overall)
	assert.Equal(t, 60.0, *overall)
}

func TestSummarizeClassesEmpty(t *testing.T) {
	students, highRisk, avg := SummarizeClasses(nil)

	assert.Zero(t, students)
	assert.Zero(t, highRisk)
	assert.Nil(t, avg)
}

func TestBuildClassInsightsRoundsAverages(t *testing.T) {
	raw := 64.666
	rows := []repository.ClassWellbeingRow{
		{Name: "Year 9 Kea", Grade: "9", StudentCount: 3, AvgWellbeing: &raw, HighRisk: 1},
	}

	insights := buildClassInsights(rows)

	require.Len(t, insights, 1)
	assert.Equal(t, "Year 9 Kea", insights[0].Name)
	require.NotNil(t, insights[0].AverageWellbeing)
	assert.Equal(t, 64.7, *insights[0].AverageWellbeing)
	assert.Equal(t, int64(1), insights[0].HighRiskCount)
}
