package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
)

// ActivitiesRepository persists activities, class assignments, student
// submissions, and submission comment threads.
type ActivitiesRepository struct {
	pool *pgxpool.Pool
}

// CreateActivityParams carries the writable activity fields.
type CreateActivityParams struct {
	SchoolID     *uuid.UUID
	Title        string
	Description  *string
	Type         model.ActivityType
	Duration     *int
	TargetGrades []string
	Materials    []string
	Instructions []string
	Objectives   []string
	CreatedBy    uuid.UUID
}

func (r *ActivitiesRepository) Create(ctx context.Context, p CreateActivityParams) (*model.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		insert into activities (school_id, title, description, type, duration, target_grades, materials, instructions, objectives, created_by)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		returning *`,
		p.SchoolID, p.Title, p.Description, p.Type, p.Duration, p.TargetGrades, p.Materials, p.Instructions, p.Objectives, p.CreatedBy,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert activity")
	}

	activity, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Activity])
	if err != nil {
		return nil, errors.Wrap(err, "table:activities: failed to scan activity")
	}

	return activity, nil
}

func (r *ActivitiesRepository) GetByID(ctx context.Context, activityID uuid.UUID) (*model.Activity, error) {
	rows, err := r.pool.Query(ctx, `select * from activities where activity_id = $1`, activityID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query activity")
	}

	activity, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Activity])
	if err != nil {
		return nil, errors.Wrap(err, "table:activities: failed to get activity")
	}

	return activity, nil
}

// ActivityFilter narrows List results. Nil fields are ignored.
type ActivityFilter struct {
	Type        *model.ActivityType
	TargetGrade *string
}

// List returns a page of activities: global ones (school_id null) plus
// those belonging to the given school.
func (r *ActivitiesRepository) List(ctx context.Context, schoolID uuid.UUID, f ActivityFilter, p utils.Pagination) ([]model.Activity, int64, error) {
	where := `
		(school_id is null or school_id = $1)
		and ($2::text is null or type = $2)
		and ($3::text is null or $3 = any(target_grades))`

	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from activities where`+where,
		schoolID, f.Type, f.TargetGrade,
	).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count activities")
	}

	rows, err := r.pool.Query(ctx, `select * from activities where`+where+`
		order by title
		limit $4 offset $5`,
		schoolID, f.Type, f.TargetGrade, p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list activities")
	}

	activities, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Activity])
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan activities")
	}

	return activities, total, nil
}

func (r *ActivitiesRepository) Update(ctx context.Context, activityID uuid.UUID, p CreateActivityParams) (*model.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		update activities
		set title = $2, description = $3, type = $4, duration = $5, target_grades = $6,
		    materials = $7, instructions = $8, objectives = $9, updated_at = now()
		where activity_id = $1
		returning *`,
		activityID, p.Title, p.Description, p.Type, p.Duration, p.TargetGrades, p.Materials, p.Instructions, p.Objectives,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update activity")
	}

	activity, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Activity])
	if err != nil {
		return nil, errors.Wrap(err, "table:activities: failed to get updated activity")
	}

	return activity, nil
}

// CreateAssignment links an activity to a class.
func (r *ActivitiesRepository) CreateAssignment(ctx context.Context, activityID, classID, assignedBy uuid.UUID, dueDate *string) (*model.ActivityAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		insert into activity_assignments (activity_id, class_id, assigned_by, due_date)
		values ($1, $2, $3, $4)
		returning *`,
		activityID, classID, assignedBy, dueDate,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert activity assignment")
	}

	assignment, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.ActivityAssignment])
	if err != nil {
		return nil, errors.Wrap(err, "table:activity_assignments: failed to scan assignment")
	}

	return assignment, nil
}

func (r *ActivitiesRepository) GetAssignmentByID(ctx context.Context, assignmentID uuid.UUID) (*model.ActivityAssignment, error) {
	rows, err := r.pool.Query(ctx, `select * from activity_assignments where assignment_id = $1`, assignmentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query activity assignment")
	}

	assignment, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.ActivityAssignment])
	if err != nil {
		return nil, errors.Wrap(err, "table:activity_assignments: failed to get assignment")
	}

	return assignment, nil
}

// ListAssignmentsByClass returns a class's assignments, newest first.
// Archived assignments are included so history stays visible.
func (r *ActivitiesRepository) ListAssignmentsByClass(ctx context.Context, classID uuid.UUID) ([]model.ActivityAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		select * from activity_assignments
		where class_id = $1
		order by created_at desc`,
		classID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activity assignments")
	}

	assignments, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ActivityAssignment])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan activity assignments")
	}

	return assignments, nil
}

func (r *ActivitiesRepository) ArchiveAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`update activity_assignments set status = 'ARCHIVED' where assignment_id = $1`,
		assignmentID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to archive activity assignment")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:activity_assignments: archive matched no rows")
	}
	return nil
}

// UpsertSubmission records a student's submission for an assignment.
// Resubmitting replaces the file and moves the row back to SUBMITTED.
func (r *ActivitiesRepository) UpsertSubmission(ctx context.Context, assignmentID, studentID uuid.UUID, fileURL *string, fileType *model.FileType) (*model.ActivitySubmission, error) {
	rows, err := r.pool.Query(ctx, `
		insert into activity_submissions (assignment_id, student_id, file_url, file_type, status, submitted_at)
		values ($1, $2, $3, $4, 'SUBMITTED', now())
		on conflict on constraint activity_submissions_assignment_student_key
		do update set file_url = $3, file_type = $4, status = 'SUBMITTED', submitted_at = now(), updated_at = now()
		returning *`,
		assignmentID, studentID, fileURL, fileType,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert activity submission")
	}

	submission, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.ActivitySubmission])
	if err != nil {
		return nil, errors.Wrap(err, "table:activity_submissions: failed to scan submission")
	}

	return submission, nil
}

func (r *ActivitiesRepository) GetSubmissionByID(ctx context.Context, submissionID uuid.UUID) (*model.ActivitySubmission, error) {
	rows, err := r.pool.Query(ctx, `select * from activity_submissions where submission_id = $1`, submissionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query activity submission")
	}

	submission, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.ActivitySubmission])
	if err != nil {
		return nil, errors.Wrap(err, "table:activity_submissions: failed to get submission")
	}

	return submission, nil
}

func (r *ActivitiesRepository) ListSubmissionsByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]model.ActivitySubmission, error) {
	rows, err := r.pool.Query(ctx, `
		select * from activity_submissions
		where assignment_id = $1
		order by submitted_at desc nulls last`,
		assignmentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activity submissions")
	}

	submissions, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ActivitySubmission])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan activity submissions")
	}

	return submissions, nil
}

// ReviewSubmission moves a submission to VERIFIED or REJECTED with
// optional feedback.
func (r *ActivitiesRepository) ReviewSubmission(ctx context.Context, submissionID uuid.UUID, status model.SubmissionStatus, feedback *string) (*model.ActivitySubmission, error) {
	rows, err := r.pool.Query(ctx, `
		update activity_submissions
		set status = $2, feedback = $3, updated_at = now()
		where submission_id = $1
		returning *`,
		submissionID, status, feedback,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to review activity submission")
	}

	submission, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.ActivitySubmission])
	if err != nil {
		return nil, errors.Wrap(err, "table:activity_submissions: failed to get reviewed submission")
	}

	return submission, nil
}

// CreateComment adds a message to a submission thread. Exactly one of
// userID and studentID must be set.
func (r *ActivitiesRepository) CreateComment(ctx context.Context, submissionID uuid.UUID, userID, studentID *uuid.UUID, message string) (*model.SubmissionComment, error) {
	rows, err := r.pool.Query(ctx, `
		insert into submission_comments (submission_id, user_id, student_id, message)
		values ($1, $2, $3, $4)
		returning *`,
		submissionID, userID, studentID, message,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert submission comment")
	}

	comment, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.SubmissionComment])
	if err != nil {
		return nil, errors.Wrap(err, "table:submission_comments: failed to scan comment")
	}

	return comment, nil
}

func (r *ActivitiesRepository) ListComments(ctx context.Context, submissionID uuid.UUID) ([]model.SubmissionComment, error) {
	rows, err := r.pool.Query(ctx, `
		select * from submission_comments
		where submission_id = $1
		order by created_at`,
		submissionID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list submission comments")
	}

	comments, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SubmissionComment])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan submission comments")
	}

	return comments, nil
}

func (r *ActivitiesRepository) Delete(ctx context.Context, activityID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `delete from activities where activity_id = $1`, activityID)
	if err != nil {
		return errors.Wrap(err, "failed to delete activity")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:activities: delete matched no rows")
	}
	return nil
}

// StudentSubmissionRow is one submission joined with its activity
// context, for the per-student history view.
type StudentSubmissionRow struct {
	SubmissionID uuid.UUID              `db:"submission_id"`
	AssignmentID uuid.UUID              `db:"assignment_id"`
	ActivityID   uuid.UUID              `db:"activity_id"`
	Title        string                 `db:"title"`
	Type         model.ActivityType     `db:"type"`
	Status       model.SubmissionStatus `db:"status"`
	Feedback     *string                `db:"feedback"`
	DueDate      *time.Time             `db:"due_date"`
	SubmittedAt  *time.Time             `db:"submitted_at"`
}

// ListSubmissionsByStudent returns all of a student's submissions with
// the assigned activity's title and type, newest first.
func (r *ActivitiesRepository) ListSubmissionsByStudent(ctx context.Context, studentID uuid.UUID) ([]StudentSubmissionRow, error) {
	rows, err := r.pool.Query(ctx, `
		select
			sub.submission_id,
			sub.assignment_id,
			a.activity_id,
			a.title,
			a.type,
			sub.status,
			sub.feedback,
			asg.due_date,
			sub.submitted_at
		from activity_submissions sub
		join activity_assignments asg on asg.assignment_id = sub.assignment_id
		join activities a on a.activity_id = asg.activity_id
		where sub.student_id = $1
		order by sub.created_at desc`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list student submissions")
	}

	submissions, err := pgx.CollectRows(rows, pgx.RowToStructByName[StudentSubmissionRow])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan student submissions")
	}

	return submissions, nil
}
