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

// AnalyticsRepository runs the aggregate queries behind the teacher,
// counsellor, and admin dashboards. It owns no tables of its own.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// RiskCount is one slice of a risk distribution.
type RiskCount struct {
	RiskLevel model.RiskLevel `db:"risk_level"`
	Count     int64           `db:"count"`
}

// RiskDistribution counts students per risk level for a school,
// optionally narrowed to one class.
func (r *AnalyticsRepository) RiskDistribution(ctx context.Context, schoolID uuid.UUID, classID *uuid.UUID) ([]RiskCount, error) {
	rows, err := r.pool.Query(ctx, `
		select risk_level, count(*) as count
		from students
		where school_id = $1 and ($2::uuid is null or class_id = $2)
		group by risk_level`,
		schoolID, classID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query risk distribution")
	}

	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[RiskCount])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan risk distribution")
	}

	return counts, nil
}

// AverageWellbeing returns the mean wellbeing score for a school or
// class. Nil when no student has a score yet.
func (r *AnalyticsRepository) AverageWellbeing(ctx context.Context, schoolID uuid.UUID, classID *uuid.UUID) (*float64, error) {
	var avg *float64
	if err := r.pool.QueryRow(ctx, `
		select avg(wellbeing_score)
		from students
		where school_id = $1 and ($2::uuid is null or class_id = $2)`,
		schoolID, classID,
	).Scan(&avg); err != nil {
		return nil, errors.Wrap(err, "failed to query average wellbeing")
	}
	return avg, nil
}

// StudentActivityCount is a student's completed activity tally.
// SUBMITTED and VERIFIED submissions both count as completed.
type StudentActivityCount struct {
	StudentID uuid.UUID `db:"student_id"`
	Completed int64     `db:"completed"`
}

// CompletedActivitiesByStudent tallies completed submissions per student
// across a school, optionally narrowed to one class.
func (r *AnalyticsRepository) CompletedActivitiesByStudent(ctx context.Context, schoolID uuid.UUID, classID *uuid.UUID) ([]StudentActivityCount, error) {
	rows, err := r.pool.Query(ctx, `
		select sub.student_id, count(*) as completed
		from activity_submissions sub
		join students s on s.student_id = sub.student_id
		where s.school_id = $1
		and ($2::uuid is null or s.class_id = $2)
		and sub.status in ('SUBMITTED', 'VERIFIED')
		group by sub.student_id`,
		schoolID, classID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query completed activities")
	}

	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[StudentActivityCount])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan completed activities")
	}

	return counts, nil
}

// CountActiveCases returns non-closed cases for a school.
func (r *AnalyticsRepository) CountActiveCases(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `
		select count(*)
		from cases c
		join students s on s.student_id = c.student_id
		where s.school_id = $1 and c.status != 'closed'`,
		schoolID,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count active cases")
	}
	return count, nil
}

// CountAssessmentsInRange returns assessments created for a school
// within [from, to).
func (r *AnalyticsRepository) CountAssessmentsInRange(ctx context.Context, schoolID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `
		select count(*)
		from assessments
		where school_id = $1 and created_at >= $2 and created_at < $3`,
		schoolID, from, to,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count assessments in range")
	}
	return count, nil
}

// GradeRow aggregates wellbeing per grade level for a school.
type GradeRow struct {
	Grade        string   `db:"grade"`
	StudentCount int64    `db:"student_count"`
	AvgWellbeing *float64 `db:"avg_wellbeing"`
	HighRisk     int64    `db:"high_risk"`
}

// GradeBreakdown groups a school's students by their class grade.
// Students without a class are excluded.
func (r *AnalyticsRepository) GradeBreakdown(ctx context.Context, schoolID uuid.UUID) ([]GradeRow, error) {
	rows, err := r.pool.Query(ctx, `
		select
			c.grade,
			count(*) as student_count,
			avg(s.wellbeing_score) as avg_wellbeing,
			count(*) filter (where s.risk_level in ('high', 'critical')) as high_risk
		from students s
		join classes c on c.class_id = s.class_id
		where s.school_id = $1
		group by c.grade
		order by c.grade`,
		schoolID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query grade breakdown")
	}

	grades, err := pgx.CollectRows(rows, pgx.RowToStructByName[GradeRow])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan grade breakdown")
	}

	return grades, nil
}

// CountSubmissionsInRange returns completed activity submissions for a
// school within [from, to).
func (r *AnalyticsRepository) CountSubmissionsInRange(ctx context.Context, schoolID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `
		select count(*)
		from activity_submissions sub
		join students s on s.student_id = sub.student_id
		where s.school_id = $1
		and sub.status in ('SUBMITTED', 'VERIFIED')
		and sub.submitted_at >= $2 and sub.submitted_at < $3`,
		schoolID, from, to,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count submissions in range")
	}
	return count, nil
}

// CountCasesOpenedInRange returns cases opened for a school's students
// within [from, to).
func (r *AnalyticsRepository) CountCasesOpenedInRange(ctx context.Context, schoolID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `
		select count(*)
		from cases c
		join students s on s.student_id = c.student_id
		where s.school_id = $1 and c.created_at >= $2 and c.created_at < $3`,
		schoolID, from, to,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count cases in range")
	}
	return count, nil
}

// SchoolSummaryRow is one school's line in the admin platform report.
type SchoolSummaryRow struct {
	SchoolID         uuid.UUID `db:"school_id"`
	Name             string    `db:"name"`
	StudentCount     int64     `db:"student_count"`
	StaffCount       int64     `db:"staff_count"`
	ClassCount       int64     `db:"class_count"`
	ActiveCases      int64     `db:"active_cases"`
	HighRiskStudents int64     `db:"high_risk_students"`
	AvgWellbeing     *float64  `db:"avg_wellbeing"`
}

// SchoolSummaries returns one aggregate row per school, the raw
// material for the admin report export.
func (r *AnalyticsRepository) SchoolSummaries(ctx context.Context) ([]SchoolSummaryRow, error) {
	rows, err := r.pool.Query(ctx, `
		select
			sc.school_id,
			sc.name,
			(select count(*) from students st where st.school_id = sc.school_id) as student_count,
			(select count(*) from users u where u.school_id = sc.school_id) as staff_count,
			(select count(*) from classes cl where cl.school_id = sc.school_id) as class_count,
			(select count(*) from cases c join students st on st.student_id = c.student_id
				where st.school_id = sc.school_id and c.status != 'closed') as active_cases,
			(select count(*) from students st where st.school_id = sc.school_id
				and st.risk_level in ('high', 'critical')) as high_risk_students,
			(select avg(st.wellbeing_score) from students st where st.school_id = sc.school_id) as avg_wellbeing
		from schools sc
		order by sc.name`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query school summaries")
	}

	summaries, err := pgx.CollectRows(rows, pgx.RowToStructByName[SchoolSummaryRow])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan school summaries")
	}

	return summaries, nil
}

// ClassWellbeingRow aggregates one class's roster size, mean wellbeing,
// and high-risk count.
type ClassWellbeingRow struct {
	ClassID      uuid.UUID  `db:"class_id"`
	Name         string     `db:"name"`
	Grade        string     `db:"grade"`
	TeacherID    *uuid.UUID `db:"teacher_id"`
	StudentCount int64      `db:"student_count"`
	AvgWellbeing *float64   `db:"avg_wellbeing"`
	HighRisk     int64      `db:"high_risk"`
}

// ClassWellbeing returns per-class aggregates for a school, optionally
// narrowed to the classes one teacher owns. Classes without students
// still appear with zero counts.
func (r *AnalyticsRepository) ClassWellbeing(ctx context.Context, schoolID uuid.UUID, teacherID *uuid.UUID) ([]ClassWellbeingRow, error) {
	rows, err := r.pool.Query(ctx, `
		select
			c.class_id,
			c.name,
			c.grade,
			c.teacher_id,
			count(s.student_id) as student_count,
			avg(s.wellbeing_score) as avg_wellbeing,
			count(s.student_id) filter (where s.risk_level in ('high', 'critical')) as high_risk
		from classes c
		left join students s on s.class_id = c.class_id
		where c.school_id = $1 and ($2::uuid is null or c.teacher_id = $2)
		group by c.class_id, c.name, c.grade, c.teacher_id
		order by c.grade, c.name`,
		schoolID, teacherID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query class wellbeing")
	}

	classes, err := pgx.CollectRows(rows, pgx.RowToStructByName[ClassWellbeingRow])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan class wellbeing")
	}

	return classes, nil
}

// AtRiskStudents lists a school's high and critical risk students,
// critical first, lowest wellbeing score first within a level.
func (r *AnalyticsRepository) AtRiskStudents(ctx context.Context, schoolID uuid.UUID) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx, `
		select * from students
		where school_id = $1 and risk_level in ('high', 'critical')
		order by
			case risk_level when 'critical' then 0 else 1 end,
			wellbeing_score asc nulls last`,
		schoolID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query at-risk students")
	}

	students, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Student])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan at-risk students")
	}

	return students, nil
}
