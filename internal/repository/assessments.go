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

// AssessmentsRepository persists assessment templates, assessment
// instances, and student responses.
type AssessmentsRepository struct {
	pool *pgxpool.Pool
}

// CreateTemplateParams carries the writable template fields.
type CreateTemplateParams struct {
	Name         string
	Description  *string
	Category     *string
	Questions    []model.TemplateQuestion
	ScoringRules map[string]any
	CreatedBy    uuid.UUID
}

func (r *AssessmentsRepository) CreateTemplate(ctx context.Context, p CreateTemplateParams) (*model.AssessmentTemplate, error) {
	rows, err := r.pool.Query(ctx, `
		insert into assessment_templates (name, description, category, questions, scoring_rules, created_by)
		values ($1, $2, $3, $4, $5, $6)
		returning *`,
		p.Name, p.Description, p.Category, p.Questions, p.ScoringRules, p.CreatedBy,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert assessment template")
	}

	template, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.AssessmentTemplate])
	if err != nil {
		return nil, errors.Wrap(err, "table:assessment_templates: failed to scan template")
	}

	return template, nil
}

func (r *AssessmentsRepository) GetTemplateByID(ctx context.Context, templateID uuid.UUID) (*model.AssessmentTemplate, error) {
	rows, err := r.pool.Query(ctx, `select * from assessment_templates where template_id = $1`, templateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query assessment template")
	}

	template, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.AssessmentTemplate])
	if err != nil {
		return nil, errors.Wrap(err, "table:assessment_templates: failed to get template")
	}

	return template, nil
}

// ListTemplates returns templates, optionally only active ones and
// optionally filtered by category.
func (r *AssessmentsRepository) ListTemplates(ctx context.Context, activeOnly bool, category *string) ([]model.AssessmentTemplate, error) {
	rows, err := r.pool.Query(ctx, `
		select * from assessment_templates
		where (not $1 or is_active)
		and ($2::text is null or category = $2)
		order by name`,
		activeOnly, category,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assessment templates")
	}

	templates, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.AssessmentTemplate])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan assessment templates")
	}

	return templates, nil
}

// SetTemplateActive toggles a template's availability without deleting
// historic assessments that reference it.
func (r *AssessmentsRepository) SetTemplateActive(ctx context.Context, templateID uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`update assessment_templates set is_active = $2, updated_at = now() where template_id = $1`,
		templateID, active,
	)
	if err != nil {
		return errors.Wrap(err, "failed to toggle assessment template")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:assessment_templates: toggle matched no rows")
	}
	return nil
}

// CreateAssessmentParams carries the writable assessment fields.
type CreateAssessmentParams struct {
	TemplateID       uuid.UUID
	SchoolID         *uuid.UUID
	ClassID          *uuid.UUID
	Title            *string
	ExcludedStudents []uuid.UUID
	Notes            *string
	CreatedBy        uuid.UUID
}

func (r *AssessmentsRepository) CreateAssessment(ctx context.Context, p CreateAssessmentParams) (*model.Assessment, error) {
	rows, err := r.pool.Query(ctx, `
		insert into assessments (template_id, school_id, class_id, title, excluded_students, notes, created_by)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning *`,
		p.TemplateID, p.SchoolID, p.ClassID, p.Title, p.ExcludedStudents, p.Notes, p.CreatedBy,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert assessment")
	}

	assessment, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Assessment])
	if err != nil {
		return nil, errors.Wrap(err, "table:assessments: failed to scan assessment")
	}

	return assessment, nil
}

func (r *AssessmentsRepository) GetAssessmentByID(ctx context.Context, assessmentID uuid.UUID) (*model.Assessment, error) {
	rows, err := r.pool.Query(ctx, `select * from assessments where assessment_id = $1`, assessmentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query assessment")
	}

	assessment, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Assessment])
	if err != nil {
		return nil, errors.Wrap(err, "table:assessments: failed to get assessment")
	}

	return assessment, nil
}

// ListAssessments returns a page of assessments for a school, optionally
// narrowed to one class.
func (r *AssessmentsRepository) ListAssessments(ctx context.Context, schoolID uuid.UUID, classID, templateID *uuid.UUID, p utils.Pagination) ([]model.Assessment, int64, error) {
	where := ` school_id = $1 and ($2::uuid is null or class_id = $2) and ($3::uuid is null or template_id = $3)`

	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from assessments where`+where,
		schoolID, classID, templateID,
	).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count assessments")
	}

	rows, err := r.pool.Query(ctx, `select * from assessments where`+where+`
		order by created_at desc
		limit $4 offset $5`,
		schoolID, classID, templateID, p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list assessments")
	}

	assessments, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Assessment])
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan assessments")
	}

	return assessments, total, nil
}

// ResponseParams is one answered question in a submission.
type ResponseParams struct {
	QuestionID   string
	QuestionText string
	Answer       any
	Score        *float64
}

// SubmitResponses stores a student's full response set in one
// transaction with completed_at stamped on every row. A resubmission
// replaces the student's previous answers for the assessment.
func (r *AssessmentsRepository) SubmitResponses(ctx context.Context, assessmentID, studentID uuid.UUID, responses []ResponseParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin responses transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		delete from student_responses
		where assessment_id = $1 and student_id = $2`,
		assessmentID, studentID,
	); err != nil {
		return errors.Wrap(err, "failed to clear previous responses")
	}

	for _, resp := range responses {
		_, err := tx.Exec(ctx, `
			insert into student_responses (assessment_id, student_id, question_id, question_text, answer, score, completed_at)
			values ($1, $2, $3, $4, $5, $6, now())`,
			assessmentID, studentID, resp.QuestionID, resp.QuestionText, resp.Answer, resp.Score,
		)
		if err != nil {
			return errors.Wrap(err, "failed to insert student response")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit responses transaction")
	}

	return nil
}

// ListResponses returns all responses for an assessment, optionally for
// one student.
func (r *AssessmentsRepository) ListResponses(ctx context.Context, assessmentID uuid.UUID, studentID *uuid.UUID) ([]model.StudentResponse, error) {
	rows, err := r.pool.Query(ctx, `
		select * from student_responses
		where assessment_id = $1 and ($2::uuid is null or student_id = $2)
		order by student_id, question_id`,
		assessmentID, studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list student responses")
	}

	responses, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.StudentResponse])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan student responses")
	}

	return responses, nil
}

// ListRespondents returns the distinct student ids who completed an
// assessment.
func (r *AssessmentsRepository) ListRespondents(ctx context.Context, assessmentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		select distinct student_id from student_responses
		where assessment_id = $1 and completed_at is not null`,
		assessmentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list respondents")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan respondents")
	}

	return ids, nil
}

// StudentAssessmentRow summarizes one student's answers to one
// assessment.
type StudentAssessmentRow struct {
	AssessmentID uuid.UUID  `db:"assessment_id"`
	TemplateID   uuid.UUID  `db:"template_id"`
	Title        *string    `db:"title"`
	Answered     int64      `db:"answered"`
	AvgScore     *float64   `db:"avg_score"`
	CompletedAt  *time.Time `db:"completed_at"`
}

// ListByStudent aggregates a student's responses per assessment, most
// recent first.
func (r *AssessmentsRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]StudentAssessmentRow, error) {
	rows, err := r.pool.Query(ctx, `
		select
			a.assessment_id,
			a.template_id,
			a.title,
			count(distinct resp.question_id) as answered,
			avg(resp.score) as avg_score,
			max(resp.completed_at) as completed_at
		from student_responses resp
		join assessments a on a.assessment_id = resp.assessment_id
		where resp.student_id = $1
		group by a.assessment_id, a.template_id, a.title
		order by completed_at desc nulls last`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list student assessments")
	}

	history, err := pgx.CollectRows(rows, pgx.RowToStructByName[StudentAssessmentRow])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan student assessments")
	}

	return history, nil
}
