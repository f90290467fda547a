package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/wellnest-hq/wellness-api/internal/model"
)

// ConsentsRepository persists guardian consent records.
type ConsentsRepository struct {
	pool *pgxpool.Pool
}

// CreateConsentParams carries the writable consent fields.
type CreateConsentParams struct {
	StudentID   uuid.UUID
	ParentName  *string
	ConsentType model.ConsentType
	Status      model.ConsentStatus
	ExpiresAt   *string
	Documents   []string
}

func (r *ConsentsRepository) Create(ctx context.Context, p CreateConsentParams) (*model.ConsentRecord, error) {
	rows, err := r.pool.Query(ctx, `
		insert into consent_records (student_id, parent_name, consent_type, status, granted_at, expires_at, documents)
		values ($1, $2, $3, $4, case when $4 = 'GRANTED' then now() end, $5, $6)
		returning *`,
		p.StudentID, p.ParentName, p.ConsentType, p.Status, p.ExpiresAt, p.Documents,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert consent record")
	}

	consent, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.ConsentRecord])
	if err != nil {
		return nil, errors.Wrap(err, "table:consent_records: failed to scan consent record")
	}

	return consent, nil
}

func (r *ConsentsRepository) GetByID(ctx context.Context, consentID uuid.UUID) (*model.ConsentRecord, error) {
	rows, err := r.pool.Query(ctx, `select * from consent_records where consent_id = $1`, consentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query consent record")
	}

	consent, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.ConsentRecord])
	if err != nil {
		return nil, errors.Wrap(err, "table:consent_records: failed to get consent record")
	}

	return consent, nil
}

func (r *ConsentsRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.ConsentRecord, error) {
	rows, err := r.pool.Query(ctx, `
		select * from consent_records
		where student_id = $1
		order by created_at desc`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list consent records")
	}

	consents, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ConsentRecord])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan consent records")
	}

	return consents, nil
}

// UpdateStatus moves a consent record through its lifecycle. granted_at
// is stamped when the status becomes GRANTED.
func (r *ConsentsRepository) UpdateStatus(ctx context.Context, consentID uuid.UUID, status model.ConsentStatus, expiresAt *string) (*model.ConsentRecord, error) {
	rows, err := r.pool.Query(ctx, `
		update consent_records
		set status = $2,
		    granted_at = case when $2 = 'GRANTED' then now() else granted_at end,
		    expires_at = coalesce($3, expires_at),
		    updated_at = now()
		where consent_id = $1
		returning *`,
		consentID, status, expiresAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update consent record")
	}

	consent, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.ConsentRecord])
	if err != nil {
		return nil, errors.Wrap(err, "table:consent_records: failed to get updated consent record")
	}

	return consent, nil
}

// ExpiredConsent is a swept consent joined with the student's guardian
// contact details, enough to send the renewal notice.
type ExpiredConsent struct {
	ConsentID   uuid.UUID         `db:"consent_id"`
	StudentID   uuid.UUID         `db:"student_id"`
	ConsentType model.ConsentType `db:"consent_type"`
	FirstName   string            `db:"first_name"`
	LastName    string            `db:"last_name"`
	ParentEmail *string           `db:"parent_email"`
}

// ExpireGranted flips GRANTED records past their expiry to REVOKED and
// returns them with guardian contact info for notification.
func (r *ConsentsRepository) ExpireGranted(ctx context.Context) ([]ExpiredConsent, error) {
	rows, err := r.pool.Query(ctx, `
		with expired as (
			update consent_records
			set status = 'REVOKED', updated_at = now()
			where status = 'GRANTED' and expires_at is not null and expires_at <= now()
			returning consent_id, student_id, consent_type
		)
		select e.consent_id, e.student_id, e.consent_type, s.first_name, s.last_name, s.parent_email
		from expired e
		join students s on s.student_id = e.student_id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to expire consent records")
	}

	expired, err := pgx.CollectRows(rows, pgx.RowToStructByName[ExpiredConsent])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan expired consent records")
	}

	return expired, nil
}
