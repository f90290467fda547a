package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnest-hq/wellness-api/internal/model"
)

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		score int
		want  model.RiskLevel
	}{
		{100, model.RiskLow},
		{70, model.RiskLow},
		{69, model.RiskMedium},
		{40, model.RiskMedium},
		{39, model.RiskHigh},
		{20, model.RiskHigh},
		{19, model.RiskCritical},
		{0, model.RiskCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRisk(tt.score), "score %d", tt.score)
	}
}

func rosterStudent(first, last string) model.Student {
	return model.Student{
		StudentID: uuid.New(),
		FirstName: first,
		LastName:  last,
	}
}

func TestBucketMonitoringClassifiesRoster(t *testing.T) {
	assessmentID := uuid.New()
	done := rosterStudent("Maia", "Henare")
	partial := rosterStudent("Liam", "O'Connor")
	absent := rosterStudent("Sofia", "Reyes")
	outsider := uuid.New()

	responses := []model.StudentResponse{
		{StudentID: done.StudentID, QuestionID: "q1"},
		{StudentID: done.StudentID, QuestionID: "q2"},
		{StudentID: partial.StudentID, QuestionID: "q1"},
		{StudentID: outsider, QuestionID: "q1"},
	}

	result := BucketMonitoring(assessmentID, 2, []model.Student{done, partial, absent}, responses)

	assert.Equal(t, assessmentID, result.AssessmentID)
	assert.Equal(t, 3, result.ExpectedCount)
	assert.Equal(t, 1, result.CompletedCount)
	assert.InDelta(t, 33.3, result.CompletionRate, 0.001)

	require.Len(t, result.Completed, 1)
	assert.Equal(t, done.StudentID, result.Completed[0].StudentID)
	assert.Equal(t, "Maia Henare", result.Completed[0].Name)
	assert.Equal(t, 2, result.Completed[0].AnsweredCount)

	require.Len(t, result.Incomplete, 1)
	assert.Equal(t, partial.StudentID, result.Incomplete[0].StudentID)

	require.Len(t, result.NotStarted, 1)
	assert.Equal(t, absent.StudentID, result.NotStarted[0].StudentID)

	require.Len(t, result.Unexpected, 1)
	assert.Equal(t, outsider, result.Unexpected[0])
}

func TestBucketMonitoringEmptyRoster(t *testing.T) {
	result := BucketMonitoring(uuid.New(), 2, nil, nil)

	assert.Zero(t, result.ExpectedCount)
	assert.Zero(t, result.CompletedCount)
	assert.Zero(t, result.CompletionRate)
	assert.Empty(t, result.Completed)
	assert.Empty(t, result.Incomplete)
	assert.Empty(t, result.NotStarted)
	assert.Empty(t, result.Unexpected)
}

func TestBucketMonitoringCountsDistinctQuestions(t *testing.T) {
	student := rosterStudent("Aroha", "Ngata")
	responses := []model.StudentResponse{
		{StudentID: student.StudentID, QuestionID: "q1"},
		{StudentID: student.StudentID, QuestionID: "q1"},
	}

	result := BucketMonitoring(uuid.New(), 2, []model.Student{student}, responses)

	assert.Empty(t, result.Completed)
	require.Len(t, result.Incomplete, 1)
	assert.Equal(t, 1, result.Incomplete[0].AnsweredCount)
	assert.Zero(t, result.CompletionRate)
}

func TestBucketMonitoringZeroQuestionsNeverCompletes(t *testing.T) {
	student := rosterStudent("Noah", "Chen")
	responses := []model.StudentResponse{
		{StudentID: student.StudentID, QuestionID: "q1"},
	}

	result := BucketMonitoring(uuid.New(), 0, []model.Student{student}, responses)

	assert.Empty(t, result.Completed)
	require.Len(t, result.Incomplete, 1)
}

func scorePtr(v float64) *float64 { return &v }

func TestBuildQuestionBreakdown(t *testing.T) {
	questions := []model.TemplateQuestion{
		{QuestionID: "q1", Text: "How are you feeling today?", Type: "scale", MaxScore: 5},
		{QuestionID: "q2", Text: "Anything on your mind?", Type: "text"},
		{QuestionID: "q3", Text: "How well did you sleep?", Type: "scale", MaxScore: 5},
	}
	responses := []model.StudentResponse{
		{QuestionID: "q1", Answer: float64(4), Score: scorePtr(4)},
		{QuestionID: "q1", Answer: float64(4), Score: scorePtr(4)},
		{QuestionID: "q1", Answer: float64(3), Score: scorePtr(3)},
		{QuestionID: "q2", Answer: "all good"},
	}

	breakdown := BuildQuestionBreakdown(questions, responses)

	require.Len(t, breakdown, 3)

	q1 := breakdown[0]
	assert.Equal(t, "q1", q1.QuestionID)
	assert.Equal(t, "How are you feeling today?", q1.QuestionText)
	assert.Equal(t, 3, q1.ResponseCount)
	require.NotNil(t, q1.AverageScore)
	assert.InDelta(t, 3.7, *q1.AverageScore, 0.001)
	assert.Equal(t, 2, q1.Distribution["4"])
	assert.Equal(t, 1, q1.Distribution["3"])

	q2 := breakdown[1]
	assert.Equal(t, 1, q2.ResponseCount)
	assert.Nil(t, q2.AverageScore)
	assert.Equal(t, 1, q2.Distribution["all good"])

	q3 := breakdown[2]
	assert.Zero(t, q3.ResponseCount)
	assert.Nil(t, q3.AverageScore)
	assert.Empty(t, q3.Distribution)
}
