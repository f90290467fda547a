package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
)

// StudentsRepository persists students.
type StudentsRepository struct {
	pool *pgxpool.Pool
}

// CreateStudentParams carries the writable student fields.
type CreateStudentParams struct {
	SchoolID       uuid.UUID
	ClassID        *uuid.UUID
	FirstName      string
	LastName       string
	Pseudonym      *string
	DOB            *string
	Gender         *model.Gender
	ParentEmail    *string
	ParentPhone    *string
	AdditionalInfo map[string]any
}

func (r *StudentsRepository) Create(ctx context.Context, p CreateStudentParams) (*model.Student, error) {
	rows, err := r.pool.Query(ctx, `
		insert into students (school_id, class_id, first_name, last_name, pseudonym, dob, gender, parent_email, parent_phone, additional_info)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		returning *`,
		p.SchoolID, p.ClassID, p.FirstName, p.LastName, p.Pseudonym, p.DOB, p.Gender, p.ParentEmail, p.ParentPhone, p.AdditionalInfo,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert student")
	}

	student, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Student])
	if err != nil {
		return nil, errors.Wrap(err, "table:students: failed to scan student")
	}

	return student, nil
}

func (r *StudentsRepository) GetByID(ctx context.Context, studentID uuid.UUID) (*model.Student, error) {
	rows, err := r.pool.Query(ctx, `select * from students where student_id = $1`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query student")
	}

	student, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Student])
	if err != nil {
		return nil, errors.Wrap(err, "table:students: failed to get student")
	}

	return student, nil
}

// StudentFilter narrows ListBySchool results. Nil fields are ignored.
type StudentFilter struct {
	ClassID   *uuid.UUID
	RiskLevel *model.RiskLevel
	Search    *string
}

// ListBySchool returns a page of students for a school with optional
// class, risk, and name filters.
func (r *StudentsRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, f StudentFilter, p utils.Pagination) ([]model.Student, int64, error) {
	where := `
		school_id = $1
		and ($2::uuid is null or class_id = $2)
		and ($3::text is null or risk_level = $3)
		and ($4::text is null or first_name || ' ' || last_name ilike '%' || $4 || '%')`

	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from students where`+where,
		schoolID, f.ClassID, f.RiskLevel, f.Search,
	).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count students")
	}

	rows, err := r.pool.Query(ctx, `select * from students where`+where+`
		order by last_name, first_name
		limit $5 offset $6`,
		schoolID, f.ClassID, f.RiskLevel, f.Search, p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list students")
	}

	students, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Student])
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan students")
	}

	return students, total, nil
}

// ListByClass returns all students in a class, excluding the given ids.
// Used for assessment rosters where some students are opted out.
func (r *StudentsRepository) ListByClass(ctx context.Context, classID uuid.UUID, excluded []uuid.UUID) ([]model.Student, error) {
	if excluded == nil {
		excluded = []uuid.UUID{}
	}

	rows, err := r.pool.Query(ctx, `
		select * from students
		where class_id = $1 and student_id != all($2)
		order by last_name, first_name`,
		classID, excluded,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list class students")
	}

	students, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Student])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan class students")
	}

	return students, nil
}

// UpdateStudentParams carries the student fields editable after creation.
type UpdateStudentParams struct {
	ClassID        *uuid.UUID
	FirstName      string
	LastName       string
	Pseudonym      *string
	DOB            *string
	Gender         *model.Gender
	ParentEmail    *string
	ParentPhone    *string
	AdditionalInfo map[string]any
}

func (r *StudentsRepository) Update(ctx context.Context, studentID uuid.UUID, p UpdateStudentParams) (*model.Student, error) {
	rows, err := r.pool.Query(ctx, `
		update students
		set class_id = $2, first_name = $3, last_name = $4, pseudonym = $5, dob = $6,
		    gender = $7, parent_email = $8, parent_phone = $9, additional_info = $10,
		    updated_at = now()
		where student_id = $1
		returning *`,
		studentID, p.ClassID, p.FirstName, p.LastName, p.Pseudonym, p.DOB, p.Gender, p.ParentEmail, p.ParentPhone, p.AdditionalInfo,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update student")
	}

	student, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Student])
	if err != nil {
		return nil, errors.Wrap(err, "table:students: failed to get updated student")
	}

	return student, nil
}

// UpdateWellbeing sets the computed risk level and wellbeing score.
// Called by the assessment service after scoring a submission.
func (r *StudentsRepository) UpdateWellbeing(ctx context.Context, studentID uuid.UUID, riskLevel model.RiskLevel, wellbeingScore int) error {
	tag, err := r.pool.Exec(ctx, `
		update students
		set risk_level = $2, wellbeing_score = $3, updated_at = now()
		where student_id = $1`,
		studentID, riskLevel, wellbeingScore,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update student wellbeing")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:students: wellbeing update matched no rows")
	}
	return nil
}

func (r *StudentsRepository) Delete(ctx context.Context, studentID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `delete from students where student_id = $1`, studentID)
	if err != nil {
		return errors.Wrap(err, "failed to delete student")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:students: delete matched no rows")
	}
	return nil
}
