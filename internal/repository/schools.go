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

// SchoolsRepository persists school tenants.
type SchoolsRepository struct {
	pool *pgxpool.Pool
}

// CreateSchoolParams carries the writable school fields.
type CreateSchoolParams struct {
	Name                string
	Address             *string
	City                *string
	State               *string
	Country             *string
	Phone               *string
	Email               *string
	Website             *string
	Timezone            string
	AcademicYear        *string
	DataRetentionPolicy map[string]any
	Settings            map[string]any
}

func (r *SchoolsRepository) Create(ctx context.Context, p CreateSchoolParams) (*model.School, error) {
	rows, err := r.pool.Query(ctx, `
		insert into schools (name, address, city, state, country, phone, email, website, timezone, academic_year, data_retention_policy, settings)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		returning *`,
		p.Name, p.Address, p.City, p.State, p.Country, p.Phone, p.Email, p.Website, p.Timezone, p.AcademicYear, p.DataRetentionPolicy, p.Settings,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert school")
	}

	school, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.School])
	if err != nil {
		return nil, errors.Wrap(err, "table:schools: failed to scan school")
	}

	return school, nil
}

func (r *SchoolsRepository) GetByID(ctx context.Context, schoolID uuid.UUID) (*model.School, error) {
	rows, err := r.pool.Query(ctx, `select * from schools where school_id = $1`, schoolID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query school")
	}

	school, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.School])
	if err != nil {
		return nil, errors.Wrap(err, "table:schools: failed to get school")
	}

	return school, nil
}

func (r *SchoolsRepository) List(ctx context.Context, p utils.Pagination) ([]model.School, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from schools`).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count schools")
	}

	rows, err := r.pool.Query(ctx, `select * from schools order by name limit $1 offset $2`, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list schools")
	}

	schools, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.School])
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan schools")
	}

	return schools, total, nil
}

func (r *SchoolsRepository) Update(ctx context.Context, schoolID uuid.UUID, p CreateSchoolParams) (*model.School, error) {
	rows, err := r.pool.Query(ctx, `
		update schools
		set name = $2, address = $3, city = $4, state = $5, country = $6, phone = $7,
		    email = $8, website = $9, timezone = $10, academic_year = $11,
		    data_retention_policy = $12, settings = $13, updated_at = now()
		where school_id = $1
		returning *`,
		schoolID, p.Name, p.Address, p.City, p.State, p.Country, p.Phone, p.Email, p.Website, p.Timezone, p.AcademicYear, p.DataRetentionPolicy, p.Settings,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update school")
	}

	school, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.School])
	if err != nil {
		return nil, errors.Wrap(err, "table:schools: failed to get updated school")
	}

	return school, nil
}

func (r *SchoolsRepository) Delete(ctx context.Context, schoolID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `delete from schools where school_id = $1`, schoolID)
	if err != nil {
		return errors.Wrap(err, "failed to delete school")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:schools: delete matched no rows")
	}
	return nil
}
