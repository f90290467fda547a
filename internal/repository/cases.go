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

// CasesRepository persists counselling cases and their journal entries.
type CasesRepository struct {
	pool *pgxpool.Pool
}

// CreateCaseParams carries the writable case fields.
type CreateCaseParams struct {
	StudentID          uuid.UUID
	CreatedBy          uuid.UUID
	RiskLevel          model.RiskLevel
	Tags               []string
	AssignedCounsellor *uuid.UUID
	Summary            *string
}

func (r *CasesRepository) Create(ctx context.Context, p CreateCaseParams) (*model.Case, error) {
	rows, err := r.pool.Query(ctx, `
		insert into cases (student_id, created_by, risk_level, tags, assigned_counsellor, summary)
		values ($1, $2, $3, $4, $5, $6)
		returning *`,
		p.StudentID, p.CreatedBy, p.RiskLevel, p.Tags, p.AssignedCounsellor, p.Summary,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert case")
	}

	kase, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Case])
	if err != nil {
		return nil, errors.Wrap(err, "table:cases: failed to scan case")
	}

	return kase, nil
}

func (r *CasesRepository) GetByID(ctx context.Context, caseID uuid.UUID) (*model.Case, error) {
	rows, err := r.pool.Query(ctx, `select * from cases where case_id = $1`, caseID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query case")
	}

	kase, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Case])
	if err != nil {
		return nil, errors.Wrap(err, "table:cases: failed to get case")
	}

	return kase, nil
}

// CaseFilter narrows List results. Nil fields are ignored. SchoolID
// scopes through the student join and is always required.
type CaseFilter struct {
	SchoolID           uuid.UUID
	StudentID          *uuid.UUID
	AssignedCounsellor *uuid.UUID
	Status             *model.CaseStatus
}

func (r *CasesRepository) List(ctx context.Context, f CaseFilter, p utils.Pagination) ([]model.Case, int64, error) {
	where := `
		exists (select 1 from students s where s.student_id = c.student_id and s.school_id = $1)
		and ($2::uuid is null or c.student_id = $2)
		and ($3::uuid is null or c.assigned_counsellor = $3)
		and ($4::text is null or c.status = $4)`

	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from cases c where`+where,
		f.SchoolID, f.StudentID, f.AssignedCounsellor, f.Status,
	).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count cases")
	}

	rows, err := r.pool.Query(ctx, `select c.* from cases c where`+where+`
		order by c.created_at desc
		limit $5 offset $6`,
		f.SchoolID, f.StudentID, f.AssignedCounsellor, f.Status, p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list cases")
	}

	cases, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Case])
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan cases")
	}

	return cases, total, nil
}

// UpdateCaseParams carries the case fields editable after creation.
type UpdateCaseParams struct {
	Status             model.CaseStatus
	RiskLevel          model.RiskLevel
	Tags               []string
	AssignedCounsellor *uuid.UUID
	Summary            *string
}

// Update edits a case. closed_at is stamped when the status moves to
// closed and cleared if a closed case is reopened.
func (r *CasesRepository) Update(ctx context.Context, caseID uuid.UUID, p UpdateCaseParams) (*model.Case, error) {
	rows, err := r.pool.Query(ctx, `
		update cases
		set status = $2, risk_level = $3, tags = $4, assigned_counsellor = $5, summary = $6,
		    closed_at = case when $2 = 'closed' then coalesce(closed_at, now()) else null end
		where case_id = $1
		returning *`,
		caseID, p.Status, p.RiskLevel, p.Tags, p.AssignedCounsellor, p.Summary,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update case")
	}

	kase, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Case])
	if err != nil {
		return nil, errors.Wrap(err, "table:cases: failed to get updated case")
	}

	return kase, nil
}

// CreateEntryParams carries the writable journal entry fields.
type CreateEntryParams struct {
	CaseID     uuid.UUID
	AuthorID   uuid.UUID
	Visibility model.EntryVisibility
	Type       model.EntryType
	Content    *string
	AudioURL   *string
}

func (r *CasesRepository) CreateEntry(ctx context.Context, p CreateEntryParams) (*model.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, `
		insert into journal_entries (case_id, author_id, visibility, type, content, audio_url)
		values ($1, $2, $3, $4, $5, $6)
		returning *`,
		p.CaseID, p.AuthorID, p.Visibility, p.Type, p.Content, p.AudioURL,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert journal entry")
	}

	entry, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.JournalEntry])
	if err != nil {
		return nil, errors.Wrap(err, "table:journal_entries: failed to scan journal entry")
	}

	return entry, nil
}

// ListEntries returns a case's journal entries visible to the viewer:
// all shared entries plus the viewer's own private ones.
func (r *CasesRepository) ListEntries(ctx context.Context, caseID, viewerID uuid.UUID) ([]model.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, `
		select * from journal_entries
		where case_id = $1 and (visibility = 'shared' or author_id = $2)
		order by created_at desc`,
		caseID, viewerID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list journal entries")
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.JournalEntry])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan journal entries")
	}

	return entries, nil
}

// MarkProcessed flags a case as reviewed.
func (r *CasesRepository) MarkProcessed(ctx context.Context, caseID uuid.UUID) (*model.Case, error) {
	rows, err := r.pool.Query(ctx, `
		update cases set processed = true where case_id = $1
		returning *`,
		caseID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to mark case processed")
	}

	kase, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Case])
	if err != nil {
		return nil, errors.Wrap(err, "table:cases: failed to scan case")
	}

	return kase, nil
}

// CountOpenByCounsellor returns the counsellor's active caseload.
func (r *CasesRepository) CountOpenByCounsellor(ctx context.Context, counsellorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx,
		`select count(*) from cases where assigned_counsellor = $1 and status != 'closed'`,
		counsellorID,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count open cases")
	}
	return count, nil
}
