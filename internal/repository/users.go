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

// UsersRepository persists platform accounts (staff, parents, admins).
type UsersRepository struct {
	pool *pgxpool.Pool
}

// CreateUserParams carries the writable user fields. HashedPassword is
// already bcrypt-hashed by the service layer.
type CreateUserParams struct {
	SchoolID       uuid.UUID
	Role           model.Role
	Email          string
	HashedPassword *string
	DisplayName    string
	Phone          *string
	Profile        map[string]any
	Availability   map[string]any
}

func (r *UsersRepository) Create(ctx context.Context, p CreateUserParams) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `
		insert into users (school_id, role, email, hashed_password, display_name, phone, profile, availability)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning *`,
		p.SchoolID, p.Role, p.Email, p.HashedPassword, p.DisplayName, p.Phone, p.Profile, p.Availability,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert user")
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, errors.Wrap(err, "table:users: failed to scan user")
	}

	return user, nil
}

func (r *UsersRepository) GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `select * from users where user_id = $1`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query user")
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, errors.Wrap(err, "table:users: failed to get user")
	}

	return user, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `select * from users where lower(email) = lower($1)`, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query user by email")
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, errors.Wrap(err, "table:users: failed to get user by email")
	}

	return user, nil
}

// ListBySchool returns a page of users for a school, optionally filtered
// by role.
func (r *UsersRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, role *model.Role, p utils.Pagination) ([]model.User, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`select count(*) from users where school_id = $1 and ($2::text is null or role = $2)`,
		schoolID, role,
	).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	rows, err := r.pool.Query(ctx, `
		select * from users
		where school_id = $1 and ($2::text is null or role = $2)
		order by display_name
		limit $3 offset $4`,
		schoolID, role, p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan users")
	}

	return users, total, nil
}

// UpdateUserParams carries the user fields editable after creation.
type UpdateUserParams struct {
	DisplayName  string
	Phone        *string
	Profile      map[string]any
	Availability map[string]any
}

func (r *UsersRepository) Update(ctx context.Context, userID uuid.UUID, p UpdateUserParams) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `
		update users
		set display_name = $2, phone = $3, profile = $4, availability = $5, updated_at = now()
		where user_id = $1
		returning *`,
		userID, p.DisplayName, p.Phone, p.Profile, p.Availability,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, errors.Wrap(err, "table:users: failed to get updated user")
	}

	return user, nil
}

func (r *UsersRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	tag, err := r.pool.Exec(ctx,
		`update users set hashed_password = $2, updated_at = now() where user_id = $1`,
		userID, hashedPassword,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update password")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:users: password update matched no rows")
	}
	return nil
}

func (r *UsersRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `delete from users where user_id = $1`, userID)
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, "table:users: delete matched no rows")
	}
	return nil
}
