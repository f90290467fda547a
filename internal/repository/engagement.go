package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/wellnest-hq/wellness-api/internal/model"
)

// EngagementRepository persists app sessions, daily streak rows, and the
// per-student streak summary rollup.
type EngagementRepository struct {
	pool *pgxpool.Pool
}

// CreateSession records a student app session. duration is derived when
// both ends are known.
func (r *EngagementRepository) CreateSession(ctx context.Context, studentID uuid.UUID, start time.Time, end *time.Time) (*model.AppSession, error) {
	var duration *int
	if end != nil {
		d := int(end.Sub(start).Minutes())
		duration = &d
	}

	rows, err := r.pool.Query(ctx, `
		insert into student_app_sessions (student_id, session_start, session_end, duration_minutes)
		values ($1, $2, $3, $4)
		returning *`,
		studentID, start, end, duration,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert app session")
	}

	session, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.AppSession])
	if err != nil {
		return nil, errors.Wrap(err, "table:student_app_sessions: failed to scan app session")
	}

	return session, nil
}

// MarkAppOpened upserts today's daily streak row for an app open event.
func (r *EngagementRepository) MarkAppOpened(ctx context.Context, studentID uuid.UUID, day time.Time) error {
	_, err := r.pool.Exec(ctx, `
		insert into student_daily_streaks (student_id, date, app_opened, app_open_time, streak_maintained)
		values ($1, $2, true, now(), true)
		on conflict on constraint unique_student_daily_streaks_date
		do update set app_opened = true,
			app_open_time = coalesce(student_daily_streaks.app_open_time, now()),
			streak_maintained = true`,
		studentID, day,
	)
	return errors.Wrap(err, "failed to mark app opened")
}

// MarkActivityCompleted upserts today's daily streak row for a completed
// activity.
func (r *EngagementRepository) MarkActivityCompleted(ctx context.Context, studentID uuid.UUID, day time.Time) error {
	_, err := r.pool.Exec(ctx, `
		insert into student_daily_streaks (student_id, date, activity_completed, activities_count, streak_maintained)
		values ($1, $2, true, 1, true)
		on conflict on constraint unique_student_daily_streaks_date
		do update set activity_completed = true,
			activities_count = student_daily_streaks.activities_count + 1,
			streak_maintained = true`,
		studentID, day,
	)
	return errors.Wrap(err, "failed to mark activity completed")
}

// ListDailyStreaks returns a student's daily rows within [from, to],
// oldest first.
func (r *EngagementRepository) ListDailyStreaks(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]model.DailyStreak, error) {
	rows, err := r.pool.Query(ctx, `
		select * from student_daily_streaks
		where student_id = $1 and date between $2 and $3
		order by date`,
		studentID, from, to,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list daily streaks")
	}

	streaks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.DailyStreak])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan daily streaks")
	}

	return streaks, nil
}

// ListAllDailyStreaks returns every daily row for a student, oldest
// first. Used for full streak recomputation.
func (r *EngagementRepository) ListAllDailyStreaks(ctx context.Context, studentID uuid.UUID) ([]model.DailyStreak, error) {
	rows, err := r.pool.Query(ctx, `
		select * from student_daily_streaks
		where student_id = $1
		order by date`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list daily streaks")
	}

	streaks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.DailyStreak])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan daily streaks")
	}

	return streaks, nil
}

// GetSummary returns the streak rollup for one student. Returns nil
// without error when no rollup exists yet.
func (r *EngagementRepository) GetSummary(ctx context.Context, studentID uuid.UUID) (*model.StreakSummary, error) {
	rows, err := r.pool.Query(ctx, `select * from student_streak_summary where student_id = $1`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query streak summary")
	}

	summary, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.StreakSummary])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to scan streak summary")
	}

	return summary, nil
}

// UpsertSummary writes the recomputed rollup for a student.
func (r *EngagementRepository) UpsertSummary(ctx context.Context, s model.StreakSummary) error {
	_, err := r.pool.Exec(ctx, `
		insert into student_streak_summary (student_id, current_streak, max_streak, streak_start_date, last_active_date, total_active_days, updated_at)
		values ($1, $2, $3, $4, $5, $6, now())
		on conflict (student_id)
		do update set current_streak = $2, max_streak = $3, streak_start_date = $4,
			last_active_date = $5, total_active_days = $6, updated_at = now()`,
		s.StudentID, s.CurrentStreak, s.MaxStreak, s.StreakStartDate, s.LastActiveDate, s.TotalActiveDays,
	)
	return errors.Wrap(err, "failed to upsert streak summary")
}

// ListStudentIDsWithStreaks returns every student id that has at least
// one daily streak row. Drives the nightly summary refresh.
func (r *EngagementRepository) ListStudentIDsWithStreaks(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `select distinct student_id from student_daily_streaks`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list students with streaks")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan students with streaks")
	}

	return ids, nil
}

// ListSummariesBySchool returns streak rollups for every student in a
// school, highest current streak first.
func (r *EngagementRepository) ListSummariesBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.StreakSummary, error) {
	rows, err := r.pool.Query(ctx, `
		select ss.* from student_streak_summary ss
		join students s on s.student_id = ss.student_id
		where s.school_id = $1
		order by ss.current_streak desc`,
		schoolID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list school streak summaries")
	}

	summaries, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.StreakSummary])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan school streak summaries")
	}

	return summaries, nil
}
