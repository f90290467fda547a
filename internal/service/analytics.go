package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// AnalyticsService builds the teacher and counsellor dashboard payloads
// from the aggregate repository queries.
type AnalyticsService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewAnalyticsService(s *server.Server, repos *repository.Repositories) *AnalyticsService {
	return &AnalyticsService{
		server: s,
		repos:  repos,
	}
}

// RiskDistribution folds risk counts into three buckets; critical
// students are reported under high.
type RiskDistribution struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}

// FoldRiskCounts collapses the four stored risk levels into the
// three-bucket distribution shown on dashboards.
func FoldRiskCounts(counts []repository.RiskCount) RiskDistribution {
	var dist RiskDistribution
	for _, c := range counts {
		switch c.RiskLevel {
		case model.RiskLow:
			dist.Low += c.Count
		case model.RiskMedium:
			dist.Medium += c.Count
		case model.RiskHigh, model.RiskCritical:
			dist.High += c.Count
		}
	}
	return dist
}

// ClassOverview is the teacher dashboard payload for one class.
type ClassOverview struct {
	ClassID             uuid.UUID        `json:"class_id"`
	StudentCount        int              `json:"student_count"`
	RiskDistribution    RiskDistribution `json:"risk_distribution"`
	AverageWellbeing    *float64         `json:"average_wellbeing"`
	ActivitiesCompleted int64            `json:"activities_completed"`
	Students            []StudentLine    `json:"students"`
}

// StudentLine is one student's row in an overview payload.
type StudentLine struct {
	StudentID           uuid.UUID       `json:"student_id"`
	Name                string          `json:"name"`
	RiskLevel           model.RiskLevel `json:"risk_level"`
	WellbeingScore      *int            `json:"wellbeing_score"`
	CurrentStreak       int             `json:"current_streak"`
	ActivitiesCompleted int64           `json:"activities_completed"`
}

// ClassOverview assembles the teacher dashboard for one class.
func (svc *AnalyticsService) ClassOverview(ctx context.Context, schoolID, classID uuid.UUID) (*ClassOverview, error) {
	students, err := svc.repos.Students.ListByClass(ctx, classID, nil)
	if err != nil {
		return nil, err
	}

	riskCounts, err := svc.repos.Analytics.RiskDistribution(ctx, schoolID, &classID)
	if err != nil {
		return nil, err
	}

	avg, err := svc.repos.Analytics.AverageWellbeing(ctx, schoolID, &classID)
	if err != nil {
		return nil, err
	}

	completed, err := svc.repos.Analytics.CompletedActivitiesByStudent(ctx, schoolID, &classID)
	if err != nil {
		return nil, err
	}
	completedByStudent := make(map[uuid.UUID]int64, len(completed))
	var totalCompleted int64
	for _, c := range completed {
		completedByStudent[c.StudentID] = c.Completed
		totalCompleted += c.Completed
	}

	overview := &ClassOverview{
		ClassID:             classID,
		StudentCount:        len(students),
		RiskDistribution:    FoldRiskCounts(riskCounts),
		AverageWellbeing:    roundAvg(avg),
		ActivitiesCompleted: totalCompleted,
		Students:            make([]StudentLine, 0, len(students)),
	}

	for _, student := range students {
		line := StudentLine{
			StudentID:           student.StudentID,
			Name:                student.FullName(),
			RiskLevel:           student.RiskLevel,
			WellbeingScore:      student.WellbeingScore,
			ActivitiesCompleted: completedByStudent[student.StudentID],
		}
		if summary, err := svc.repos.Engagement.GetSummary(ctx, student.StudentID); err == nil && summary != nil {
			line.CurrentStreak = summary.CurrentStreak
		}
		overview.Students = append(overview.Students, line)
	}

	return overview, nil
}

// SchoolOverview is the counsellor dashboard payload.
type SchoolOverview struct {
	SchoolID            uuid.UUID        `json:"school_id"`
	StudentCount        int64            `json:"student_count"`
	RiskDistribution    RiskDistribution `json:"risk_distribution"`
	AverageWellbeing    *float64         `json:"average_wellbeing"`
	ActiveCases         int64            `json:"active_cases"`
	ActivitiesCompleted int64            `json:"activities_completed"`
	TotalActiveDays     int              `json:"total_active_days"`
	TopPerformers       []StudentLine    `json:"top_performers"`
	AtRiskStudents      []StudentLine    `json:"at_risk_students"`
}

// SchoolOverview assembles the counsellor dashboard: school-wide risk
// distribution, engagement totals, the top five performers by current
// streak, and up to ten at-risk students (high and critical).
func (svc *AnalyticsService) SchoolOverview(ctx context.Context, schoolID uuid.UUID) (*SchoolOverview, error) {
	riskCounts, err := svc.repos.Analytics.RiskDistribution(ctx, schoolID, nil)
	if err != nil {
		return nil, err
	}

	var studentCount int64
	for _, c := range riskCounts {
		studentCount += c.Count
	}

	avg, err := svc.repos.Analytics.AverageWellbeing(ctx, schoolID, nil)
	if err != nil {
		return nil, err
	}

	activeCases, err := svc.repos.Analytics.CountActiveCases(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	completed, err := svc.repos.Analytics.CompletedActivitiesByStudent(ctx, schoolID, nil)
	if err != nil {
		return nil, err
	}
	completedByStudent := make(map[uuid.UUID]int64, len(completed))
	var totalCompleted int64
	for _, c := range completed {
		completedByStudent[c.StudentID] = c.Completed
		totalCompleted += c.Completed
	}

	summaries, err := svc.repos.Engagement.ListSummariesBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	streakByStudent := make(map[uuid.UUID]int, len(summaries))
	totalActiveDays := 0
	for _, s := range summaries {
		streakByStudent[s.StudentID] = s.CurrentStreak
		totalActiveDays += s.TotalActiveDays
	}

	overview := &SchoolOverview{
		SchoolID:            schoolID,
		StudentCount:        studentCount,
		RiskDistribution:    FoldRiskCounts(riskCounts),
		AverageWellbeing:    roundAvg(avg),
		ActiveCases:         activeCases,
		ActivitiesCompleted: totalCompleted,
		TotalActiveDays:     totalActiveDays,
	}

	// Top five performers by current streak. Summaries arrive sorted by
	// streak already; resolve names for the head of the list.
	for _, s := range summaries {
		if len(overview.TopPerformers) == 5 {
			break
		}
		student, err := svc.repos.Students.GetByID(ctx, s.StudentID)
		if err != nil {
			continue
		}
		overview.TopPerformers = append(overview.TopPerformers, StudentLine{
			StudentID:           student.StudentID,
			Name:                student.FullName(),
			RiskLevel:           student.RiskLevel,
			WellbeingScore:      student.WellbeingScore,
			CurrentStreak:       s.CurrentStreak,
			ActivitiesCompleted: completedByStudent[student.StudentID],
		})
	}

	atRisk, err := svc.atRiskStudents(ctx, schoolID, streakByStudent, completedByStudent)
	if err != nil {
		return nil, err
	}
	overview.AtRiskStudents = atRisk

	return overview, nil
}

// atRiskStudents returns up to ten high and critical students, critical
// first, lowest wellbeing score first within a level.
func (svc *AnalyticsService) atRiskStudents(ctx context.Context, schoolID uuid.UUID, streaks map[uuid.UUID]int, completed map[uuid.UUID]int64) ([]StudentLine, error) {
	var lines []StudentLine

	for _, level := range []model.RiskLevel{model.RiskCritical, model.RiskHigh} {
		level := level
		students, _, err := svc.repos.Students.ListBySchool(ctx, schoolID,
			repository.StudentFilter{RiskLevel: &level},
			// One page of ten; ten is the display cap anyway.
			utils.NewPagination(1, 10),
		)
		if err != nil {
			return nil, err
		}

		sort.SliceStable(students, func(i, j int) bool {
			return deref(students[i].WellbeingScore) < deref(students[j].WellbeingScore)
		})

		for _, student := range students {
			if len(lines) == 10 {
				return lines, nil
			}
			lines = append(lines, StudentLine{
				StudentID:           student.StudentID,
				Name:                student.FullName(),
				RiskLevel:           student.RiskLevel,
				WellbeingScore:      student.WellbeingScore,
				CurrentStreak:       streaks[student.StudentID],
				ActivitiesCompleted: completed[student.StudentID],
			})
		}
	}

	return lines, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// roundAvg rounds a nullable average to one decimal.
func roundAvg(avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	rounded := math.Round(*avg*10) / 10
	return &rounded
}

// StudentDetail is the counsellor's single-student view.
type StudentDetail struct {
	Student             *model.Student       `json:"student"`
	Streak              *model.StreakSummary `json:"streak"`
	ActivitiesCompleted int64                `json:"activities_completed"`
	Cases               []model.Case         `json:"cases"`
}

// StudentDetail assembles the counsellor view for one student: profile,
// streak rollup, completed activities, and case history.
func (svc *AnalyticsService) StudentDetail(ctx context.Context, schoolID, studentID uuid.UUID) (*StudentDetail, error) {
	student, err := svc.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.SchoolID != schoolID {
		return nil, errs.NewNotFoundError("Student not found", true, nil)
	}

	detail := &StudentDetail{Student: student}

	detail.Streak, err = svc.repos.Engagement.GetSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}

	completed, err := svc.repos.Analytics.CompletedActivitiesByStudent(ctx, schoolID, student.ClassID)
	if err != nil {
		return nil, err
	}
	for _, c := range completed {
		if c.StudentID == studentID {
			detail.ActivitiesCompleted = c.Completed
			break
		}
	}

	cases, _, err := svc.repos.Cases.List(ctx,
		repository.CaseFilter{SchoolID: schoolID, StudentID: &studentID},
		utils.NewPagination(1, utils.MaxPageSize),
	)
	if err != nil {
		return nil, err
	}
	detail.Cases = cases

	return detail, nil
}

// CounsellorLoad is one counsellor's open caseload.
type CounsellorLoad struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	OpenCases   int64     `json:"open_cases"`
}

// CounsellorWorkload lists a school's counsellors with their active
// case counts.
func (svc *AnalyticsService) CounsellorWorkload(ctx context.Context, schoolID uuid.UUID) ([]CounsellorLoad, error) {
	role := model.RoleCounsellor
	counsellors, _, err := svc.repos.Users.ListBySchool(ctx, schoolID, &role, utils.NewPagination(1, utils.MaxPageSize))
	if err != nil {
		return nil, err
	}

	workload := make([]CounsellorLoad, 0, len(counsellors))
	for _, counsellor := range counsellors {
		open, err := svc.repos.Cases.CountOpenByCounsellor(ctx, counsellor.UserID)
		if err != nil {
			return nil, err
		}
		workload = append(workload, CounsellorLoad{
			UserID:      counsellor.UserID,
			DisplayName: counsellor.DisplayName,
			OpenCases:   open,
		})
	}

	return workload, nil
}

// GradeInsight is one grade level's aggregate on the admin dashboard.
type GradeInsight struct {
	Grade            string   `json:"grade"`
	StudentCount     int64    `json:"student_count"`
	AverageWellbeing *float64 `json:"average_wellbeing"`
	HighRiskStudents int64    `json:"high_risk_students"`
}

// GradeAnalysis aggregates wellbeing per grade level for a school.
func (svc *AnalyticsService) GradeAnalysis(ctx context.Context, schoolID uuid.UUID) ([]GradeInsight, error) {
	rows, err := svc.repos.Analytics.GradeBreakdown(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	grades := make([]GradeInsight, 0, len(rows))
	for _, row := range rows {
		grades = append(grades, GradeInsight{
			Grade:            row.Grade,
			StudentCount:     row.StudentCount,
			AverageWellbeing: roundAvg(row.AvgWellbeing),
			HighRiskStudents: row.HighRisk,
		})
	}

	return grades, nil
}

// PeriodSummary is the admin dashboard's activity roll-up for a recent
// period.
type PeriodSummary struct {
	SchoolID            uuid.UUID `json:"school_id"`
	Days                int       `json:"days"`
	AssessmentsCreated  int64     `json:"assessments_created"`
	ActivitiesSubmitted int64     `json:"activities_submitted"`
	CasesOpened         int64     `json:"cases_opened"`
	ActiveCases         int64     `json:"active_cases"`
}

// PeriodSummary counts a school's recent assessments, submissions, and
// cases over the trailing number of days (default 30).
func (svc *AnalyticsService) PeriodSummary(ctx context.Context, schoolID uuid.UUID, days int) (*PeriodSummary, error) {
	if days < 1 {
		days = 30
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	summary := &PeriodSummary{SchoolID: schoolID, Days: days}

	var err error
	if summary.AssessmentsCreated, err = svc.repos.Analytics.CountAssessmentsInRange(ctx, schoolID, from, to); err != nil {
		return nil, err
	}
	if summary.ActivitiesSubmitted, err = svc.repos.Analytics.CountSubmissionsInRange(ctx, schoolID, from, to); err != nil {
		return nil, err
	}
	if summary.CasesOpened, err = svc.repos.Analytics.CountCasesOpenedInRange(ctx, schoolID, from, to); err != nil {
		return nil, err
	}
	if summary.ActiveCases, err = svc.repos.Analytics.CountActiveCases(ctx, schoolID); err != nil {
		return nil, err
	}

	return summary, nil
}

// ClassInsight is one class's row in the teacher overview and the
// counsellor class list.
type ClassInsight struct {
	ClassID          uuid.UUID `json:"class_id"`
	Name             string    `json:"name"`
	Grade            string    `json:"grade"`
	StudentCount     int64     `json:"student_count"`
	AverageWellbeing *float64  `json:"average_wellbeing"`
	HighRiskCount    int64     `json:"high_risk_count"`
}

// TeacherOverview is the teacher's cross-class dashboard payload.
type TeacherOverview struct {
	TeacherID        uuid.UUID      `json:"teacher_id"`
	ClassCount       int            `json:"class_count"`
	StudentCount     int64          `json:"student_count"`
	HighRiskCount    int64          `json:"high_risk_count"`
	AverageWellbeing *float64       `json:"average_wellbeing"`
	Classes          []ClassInsight `json:"classes"`
}

func buildClassInsights(rows []repository.ClassWellbeingRow) []ClassInsight {
	insights := make([]ClassInsight, 0, len(rows))
	for _, row := range rows {
		insights = append(insights, ClassInsight{
			ClassID:          row.ClassID,
			Name:             row.Name,
			Grade:            row.Grade,
			StudentCount:     row.StudentCount,
			AverageWellbeing: roundAvg(row.AvgWellbeing),
			HighRiskCount:    row.HighRisk,
		})
	}
	return insights
}

// SummarizeClasses folds per-class aggregate rows into overview totals.
// The overall average weights each class mean by its roster size and
// rounds to one decimal; it is nil when no class has a mean.
func SummarizeClasses(rows []repository.ClassWellbeingRow) (students, highRisk int64, avg *float64) {
	var weighted float64
	var scored int64
	for _, row := range rows {
		students += row.StudentCount
		highRisk += row.HighRisk
		if row.AvgWellbeing != nil && row.StudentCount > 0 {
			weighted += *row.AvgWellbeing * float64(row.StudentCount)
			scored += row.StudentCount
		}
	}
	if scored > 0 {
		rounded := math.Round(weighted/float64(scored)*10) / 10
		avg = &rounded
	}
	return students, highRisk, avg
}

// TeacherOverview assembles the cross-class dashboard for one teacher:
// their classes with per-class aggregates plus roll-up totals.
func (svc *AnalyticsService) TeacherOverview(ctx context.Context, schoolID, teacherID uuid.UUID) (*TeacherOverview, error) {
	rows, err := svc.repos.Analytics.ClassWellbeing(ctx, schoolID, &teacherID)
	if err != nil {
		return nil, err
	}

	students, highRisk, avg := SummarizeClasses(rows)
	return &TeacherOverview{
		TeacherID:        teacherID,
		ClassCount:       len(rows),
		StudentCount:     students,
		HighRiskCount:    highRisk,
		AverageWellbeing: avg,
		Classes:          buildClassInsights(rows),
	}, nil
}

// ClassList is the counsellor's school-wide class list with wellbeing
// aggregates per class.
func (svc *AnalyticsService) ClassList(ctx context.Context, schoolID uuid.UUID) ([]ClassInsight, error) {
	rows, err := svc.repos.Analytics.ClassWellbeing(ctx, schoolID, nil)
	if err != nil {
		return nil, err
	}
	return buildClassInsights(rows), nil
}

// AtRiskStudents lists a school's high and critical risk students as
// overview rows, most severe first.
func (svc *AnalyticsService) AtRiskStudents(ctx context.Context, schoolID uuid.UUID) ([]StudentLine, error) {
	students, err := svc.repos.Analytics.AtRiskStudents(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	completed, err := svc.repos.Analytics.CompletedActivitiesByStudent(ctx, schoolID, nil)
	if err != nil {
		return nil, err
	}
	completedByStudent := make(map[uuid.UUID]int64, len(completed))
	for _, c := range completed {
		completedByStudent[c.StudentID] = c.Completed
	}

	lines := make([]StudentLine, 0, len(students))
	for _, student := range students {
		line := StudentLine{
			StudentID:           student.StudentID,
			Name:                student.FullName(),
			RiskLevel:           student.RiskLevel,
			WellbeingScore:      student.WellbeingScore,
			ActivitiesCompleted: completedByStudent[student.StudentID],
		}
		if summary, err := svc.repos.Engagement.GetSummary(ctx, student.StudentID); err == nil && summary != nil {
			line.CurrentStreak = summary.CurrentStreak
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// ActivityRecord is one row in a student's activity history.
type ActivityRecord struct {
	SubmissionID uuid.UUID              `json:"submission_id"`
	ActivityID   uuid.UUID              `json:"activity_id"`
	Title        string                 `json:"title"`
	Type         model.ActivityType     `json:"type"`
	Status       model.SubmissionStatus `json:"status"`
	Feedback     *string                `json:"feedback"`
	DueDate      *time.Time             `json:"due_date"`
	SubmittedAt  *time.Time             `json:"submitted_at"`
}

// StudentActivityHistory is the per-student activity view.
type StudentActivityHistory struct {
	StudentID uuid.UUID        `json:"student_id"`
	Completed int              `json:"completed"`
	Pending   int              `json:"pending"`
	Records   []ActivityRecord `json:"records"`
}

// StudentActivityHistory lists every submission the student has made
// with its activity context. SUBMITTED and VERIFIED both count as
// completed, matching the dashboard tallies.
func (svc *AnalyticsService) StudentActivityHistory(ctx context.Context, schoolID, studentID uuid.UUID) (*StudentActivityHistory, error) {
	if err := svc.requireStudent(ctx, schoolID, studentID); err != nil {
		return nil, err
	}

	rows, err := svc.repos.Activities.ListSubmissionsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	history := &StudentActivityHistory{
		StudentID: studentID,
		Records:   make([]ActivityRecord, 0, len(rows)),
	}
	for _, row := range rows {
		switch row.Status {
		case model.SubmissionSubmitted, model.SubmissionVerified:
			history.Completed++
		case model.SubmissionPending:
			history.Pending++
		}
		history.Records = append(history.Records, ActivityRecord{
			SubmissionID: row.SubmissionID,
			ActivityID:   row.ActivityID,
			Title:        row.Title,
			Type:         row.Type,
			Status:       row.Status,
			Feedback:     row.Feedback,
			DueDate:      row.DueDate,
			SubmittedAt:  row.SubmittedAt,
		})
	}

	return history, nil
}

// AssessmentRecord is one row in a student's assessment history.
type AssessmentRecord struct {
	AssessmentID  uuid.UUID  `json:"assessment_id"`
	TemplateID    uuid.UUID  `json:"template_id"`
	Title         *string    `json:"title"`
	AnsweredCount int64      `json:"answered_count"`
	AverageScore  *float64   `json:"average_score"`
	CompletedAt   *time.Time `json:"completed_at"`
}

// StudentAssessmentHistory lists the assessments a student has answered
// with their per-assessment averages, most recent first.
func (svc *AnalyticsService) StudentAssessmentHistory(ctx context.Context, schoolID, studentID uuid.UUID) ([]AssessmentRecord, error) {
	if err := svc.requireStudent(ctx, schoolID, studentID); err != nil {
		return nil, err
	}

	rows, err := svc.repos.Assessments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	records := make([]AssessmentRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, AssessmentRecord{
			AssessmentID:  row.AssessmentID,
			TemplateID:    row.TemplateID,
			Title:         row.Title,
			AnsweredCount: row.Answered,
			AverageScore:  roundAvg(row.AvgScore),
			CompletedAt:   row.CompletedAt,
		})
	}

	return records, nil
}

// requireStudent resolves a student and hides students from other
// schools behind a 404.
func (svc *AnalyticsService) requireStudent(ctx context.Context, schoolID, studentID uuid.UUID) error {
	student, err := svc.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student.SchoolID != schoolID {
		return errs.NewNotFoundError("Student not found", true, nil)
	}
	return nil
}
