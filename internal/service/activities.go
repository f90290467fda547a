package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// ActivitiesService manages the activity library, class assignments,
// submissions, and comment threads.
type ActivitiesService struct {
	server     *server.Server
	repos      *repository.Repositories
	engagement *EngagementService
}

func NewActivitiesService(s *server.Server, repos *repository.Repositories, engagement *EngagementService) *ActivitiesService {
	return &ActivitiesService{
		server:     s,
		repos:      repos,
		engagement: engagement,
	}
}

func (svc *ActivitiesService) Create(ctx context.Context, p repository.CreateActivityParams) (*model.Activity, error) {
	return svc.repos.Activities.Create(ctx, p)
}

func (svc *ActivitiesService) Get(ctx context.Context, activityID uuid.UUID) (*model.Activity, error) {
	return svc.repos.Activities.GetByID(ctx, activityID)
}

func (svc *ActivitiesService) List(ctx context.Context, schoolID uuid.UUID, f repository.ActivityFilter, p utils.Pagination) ([]model.Activity, utils.PageMeta, error) {
	activities, total, err := svc.repos.Activities.List(ctx, schoolID, f, p)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return activities, utils.NewPageMeta(p, total), nil
}

func (svc *ActivitiesService) Update(ctx context.Context, activityID uuid.UUID, p repository.CreateActivityParams) (*model.Activity, error) {
	return svc.repos.Activities.Update(ctx, activityID, p)
}

func (svc *ActivitiesService) Delete(ctx context.Context, activityID uuid.UUID) error {
	return svc.repos.Activities.Delete(ctx, activityID)
}

// Assign links an activity to a class.
func (svc *ActivitiesService) Assign(ctx context.Context, schoolID, activityID, classID, assignedBy uuid.UUID, dueDate *string) (*model.ActivityAssignment, error) {
	if _, err := svc.repos.Activities.GetByID(ctx, activityID); err != nil {
		return nil, err
	}

	class, err := svc.repos.Classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class.SchoolID != schoolID {
		return nil, errs.NewNotFoundError("Class not found", true, nil)
	}

	return svc.repos.Activities.CreateAssignment(ctx, activityID, classID, assignedBy, dueDate)
}

func (svc *ActivitiesService) ListAssignments(ctx context.Context, schoolID, classID uuid.UUID) ([]model.ActivityAssignment, error) {
	class, err := svc.repos.Classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class.SchoolID != schoolID {
		return nil, errs.NewNotFoundError("Class not found", true, nil)
	}

	return svc.repos.Activities.ListAssignmentsByClass(ctx, classID)
}

func (svc *ActivitiesService) ArchiveAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	return svc.repos.Activities.ArchiveAssignment(ctx, assignmentID)
}

// Submit records a student's submission for an assignment and feeds the
// engagement tracker. Submissions to archived assignments are rejected.
func (svc *ActivitiesService) Submit(ctx context.Context, assignmentID, studentID uuid.UUID, fileURL *string, fileType *model.FileType) (*model.ActivitySubmission, error) {
	assignment, err := svc.repos.Activities.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status == model.AssignmentArchived {
		return nil, errs.NewConflictError("Assignment is archived and no longer accepts submissions", true)
	}

	student, err := svc.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.ClassID == nil || *student.ClassID != assignment.ClassID {
		return nil, errs.NewBadRequestError("Student is not enrolled in the assigned class", true, nil, nil, nil)
	}

	submission, err := svc.repos.Activities.UpsertSubmission(ctx, assignmentID, studentID, fileURL, fileType)
	if err != nil {
		return nil, err
	}

	if err := svc.engagement.RecordActivityCompleted(ctx, studentID, time.Now()); err != nil {
		svc.server.Logger.Error().Err(err).
			Str("student_id", studentID.String()).
			Msg("failed to record activity completion for streaks")
	}

	return submission, nil
}

func (svc *ActivitiesService) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*model.ActivitySubmission, error) {
	return svc.repos.Activities.GetSubmissionByID(ctx, submissionID)
}

func (svc *ActivitiesService) ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]model.ActivitySubmission, error) {
	if _, err := svc.repos.Activities.GetAssignmentByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	return svc.repos.Activities.ListSubmissionsByAssignment(ctx, assignmentID)
}

// Review verifies or rejects a submission. Only SUBMITTED submissions
// can be reviewed.
func (svc *ActivitiesService) Review(ctx context.Context, submissionID uuid.UUID, status model.SubmissionStatus, feedback *string) (*model.ActivitySubmission, error) {
	if status != model.SubmissionVerified && status != model.SubmissionRejected {
		return nil, errs.NewBadRequestError("Review status must be VERIFIED or REJECTED", true, nil, nil, nil)
	}

	submission, err := svc.repos.Activities.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status != model.SubmissionSubmitted {
		return nil, errs.NewConflictError("Only submitted work can be reviewed", true)
	}

	return svc.repos.Activities.ReviewSubmission(ctx, submissionID, status, feedback)
}

// Comment adds a message to a submission thread from either side.
func (svc *ActivitiesService) Comment(ctx context.Context, submissionID uuid.UUID, userID, studentID *uuid.UUID, message string) (*model.SubmissionComment, error) {
	if (userID == nil) == (studentID == nil) {
		return nil, errs.NewBadRequestError("Comment needs exactly one author", true, nil, nil, nil)
	}

	if _, err := svc.repos.Activities.GetSubmissionByID(ctx, submissionID); err != nil {
		return nil, err
	}

	return svc.repos.Activities.CreateComment(ctx, submissionID, userID, studentID, message)
}

func (svc *ActivitiesService) ListComments(ctx context.Context, submissionID uuid.UUID) ([]model.SubmissionComment, error) {
	if _, err := svc.repos.Activities.GetSubmissionByID(ctx, submissionID); err != nil {
		return nil, err
	}
	return svc.repos.Activities.ListComments(ctx, submissionID)
}

// AssignmentStats is one assignment's row on the class activity
// dashboard.
type AssignmentStats struct {
	AssignmentID   uuid.UUID              `json:"assignment_id"`
	ActivityID     uuid.UUID              `json:"activity_id"`
	DueDate        *time.Time             `json:"due_date"`
	Status         model.AssignmentStatus `json:"status"`
	Submitted      int                    `json:"submitted"`
	Verified       int                    `json:"verified"`
	CompletionRate float64                `json:"completion_rate"`
}

// ClassStats is the activity dashboard for one class.
type ClassStats struct {
	ClassID        uuid.UUID         `json:"class_id"`
	StudentCount   int64             `json:"student_count"`
	Assignments    []AssignmentStats `json:"assignments"`
	CompletionRate float64           `json:"completion_rate"`
}

// Stats builds the activity dashboard for a class: per-assignment
// submission counts and completion rates against the roster size.
func (svc *ActivitiesService) Stats(ctx context.Context, schoolID, classID uuid.UUID) (*ClassStats, error) {
	assignments, err := svc.ListAssignments(ctx, schoolID, classID)
	if err != nil {
		return nil, err
	}

	studentCount, err := svc.repos.Classes.CountStudents(ctx, classID)
	if err != nil {
		return nil, err
	}

	stats := &ClassStats{
		ClassID:      classID,
		StudentCount: studentCount,
		Assignments:  make([]AssignmentStats, 0, len(assignments)),
	}

	var totalCompleted, totalExpected int64
	for _, assignment := range assignments {
		submissions, err := svc.repos.Activities.ListSubmissionsByAssignment(ctx, assignment.AssignmentID)
		if err != nil {
			return nil, err
		}

		row := AssignmentStats{
			AssignmentID: assignment.AssignmentID,
			ActivityID:   assignment.ActivityID,
			DueDate:      assignment.DueDate,
			Status:       assignment.Status,
		}
		for _, sub := range submissions {
			switch sub.Status {
			case model.SubmissionSubmitted:
				row.Submitted++
			case model.SubmissionVerified:
				row.Submitted++
				row.Verified++
			}
		}
		row.CompletionRate = completionRate(int64(row.Submitted), studentCount)

		totalCompleted += int64(row.Submitted)
		totalExpected += studentCount
		stats.Assignments = append(stats.Assignments, row)
	}

	stats.CompletionRate = completionRate(totalCompleted, totalExpected)

	return stats, nil
}

// completionRate is a percentage rounded to one decimal. Empty
// denominators yield 0.
func completionRate(completed, expected int64) float64 {
	if expected == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(expected)*1000) / 10
}
