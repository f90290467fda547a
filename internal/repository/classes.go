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

// ClassesRepository persists classes.
type ClassesRepository struct {
	pool *pgxpool.Pool
}

// CreateClassParams carries the writable class fields.
type CreateClassParams struct {
	SchoolID       uuid.UUID
	Name           string
	Grade          string
	Section        *string
	AcademicYear   *string
	TeacherID      *uuid.UUID
	Capacity       *int
	AdditionalInfo map[string]any
}

func (r *ClassesRepository) Create(ctx context.Context, p CreateClassParams) (*model.Class, error) {
	rows, err := r.pool.Query(ctx, `
		insert into classes (school_id, name, grade, section, academic_year, teacher_id, capacity, additional_info)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning *`,
		p.SchoolID, p.Name, p.Grade, p.Section, p.AcademicYear, p.TeacherID, p.Capacity, p.AdditionalInfo,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert class")
	}

	class, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Class])
	if err != nil {
		return nil, errors.Wrap(err, "table:classes: failed to scan class")
	}

	return class, nil
}

func (r *ClassesRepository) GetByID(ctx context.Context, classID uuid.UUID) (*model.Class, error) {
	rows, err := r.pool.Query(ctx, `select * from classes where class_id = $1`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query class")
	}

	class, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Class])
	if err != nil {
		return nil, errors.Wrap(err, "table:classes: failed to get class")
	}

	return class, nil
}

// ListBySchool returns a page of classes, optionally filtered by the
// assigned teacher.
func (r *ClassesRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, teacherID *uuid.UUID, p utils.Pagination) ([]model.Class, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`select count(*) from classes where school_id = $1 and ($2::uuid is null or teacher_id = $2)`,
		schoolID, teacherID,
	).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count classes")
	}

	rows, err := r.pool.Query(ctx, `
		select * from classes
		where school_id = $1 and ($2::uuid is null or teacher_id = $2)
		order by grade, name
		limit $3 offset $4`,
		schoolID, teacherID, p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list classes")
	}

	classes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Class])
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan classes")
	}

	return classes, total, nil
}

func (r *ClassesRepository) Update(ctx context.Context, classID uuid.UUID, p CreateClassParams) (*model.Class, error) {
	rows, err := r.pool.Query(ctx, `
		update classes
		set name = $2, grade = $3, section = $4, academic_year = $5, teacher_id = $6,
		    capacity = $7, additional_info = $8
		where class_id = $1
		returning *`,
		classID, p.Name, p.Grade, p.Section, p.AcademicYear, p.TeacherID, p.Capacity, p.AdditionalInfo,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update class")
	}

	class, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Class])
	if err != nil {
		return nil, errors.Wrap(err, "table:classes: failed to get updated class")
	}

	return class, nil
}

// CountStudents returns the number of students enrolled in a class.
func (r *ClassesRepository) CountStudents(ctx context.Context, classID uuid.UUID) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `select count(*) from students where class_id = $1`, classID).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count class students")
	}
	return count, nil
}

func (r *ClassesRepository) Delete(ctx context.Context, classID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `delete from classes where class_id = $1`, classID)
	if err != nil {
		return errors.Wrap(err, "failed to delete class")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:classes: delete matched no rows")
	}
	return nil
}
