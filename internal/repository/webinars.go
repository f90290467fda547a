package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
)

// WebinarsRepository persists webinars, staff registrations, and student
// attendance records.
type WebinarsRepository struct {
	pool *pgxpool.Pool
}

// CreateWebinarParams carries the writable webinar fields.
type CreateWebinarParams struct {
	Title           string
	Description     *string
	SpeakerName     string
	SpeakerTitle    *string
	SpeakerBio      *string
	SpeakerImageURL *string
	Date            string
	DurationMinutes int
	Category        string
	Level           model.WebinarLevel
	Price           decimal.Decimal
	Topics          []string
	VideoURL        *string
	ThumbnailURL    *string
	MaxAttendees    *int
}

func (r *WebinarsRepository) Create(ctx context.Context, p CreateWebinarParams) (*model.Webinar, error) {
	rows, err := r.pool.Query(ctx, `
		insert into webinars (title, description, speaker_name, speaker_title, speaker_bio, speaker_image_url,
			date, duration_minutes, category, level, price, topics, video_url, thumbnail_url, max_attendees)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		returning *`,
		p.Title, p.Description, p.SpeakerName, p.SpeakerTitle, p.SpeakerBio, p.SpeakerImageURL,
		p.Date, p.DurationMinutes, p.Category, p.Level, p.Price, p.Topics, p.VideoURL, p.ThumbnailURL, p.MaxAttendees,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert webinar")
	}

	webinar, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Webinar])
	if err != nil {
		return nil, errors.Wrap(err, "table:webinars: failed to scan webinar")
	}

	return webinar, nil
}

func (r *WebinarsRepository) GetByID(ctx context.Context, webinarID uuid.UUID) (*model.Webinar, error) {
	rows, err := r.pool.Query(ctx, `select * from webinars where webinar_id = $1`, webinarID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query webinar")
	}

	webinar, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Webinar])
	if err != nil {
		return nil, errors.Wrap(err, "table:webinars: failed to get webinar")
	}

	return webinar, nil
}

// WebinarFilter narrows List results. Nil fields are ignored.
type WebinarFilter struct {
	Status   *model.WebinarStatus
	Category *string
	Level    *model.WebinarLevel
}

func (r *WebinarsRepository) List(ctx context.Context, f WebinarFilter, p utils.Pagination) ([]model.Webinar, int64, error) {
	where := `
		($1::text is null or status = $1)
		and ($2::text is null or category = $2)
		and ($3::text is null or level = $3)`

	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from webinars where`+where,
		f.Status, f.Category, f.Level,
	).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count webinars")
	}

	rows, err := r.pool.Query(ctx, `select * from webinars where`+where+`
		order by date desc
		limit $4 offset $5`,
		f.Status, f.Category, f.Level, p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list webinars")
	}

	webinars, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Webinar])
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to scan webinars")
	}

	return webinars, total, nil
}

func (r *WebinarsRepository) UpdateStatus(ctx context.Context, webinarID uuid.UUID, status model.WebinarStatus) (*model.Webinar, error) {
	rows, err := r.pool.Query(ctx, `
		update webinars set status = $2, updated_at = now()
		where webinar_id = $1
		returning *`,
		webinarID, status,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update webinar status")
	}

	webinar, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Webinar])
	if err != nil {
		return nil, errors.Wrap(err, "table:webinars: failed to get updated webinar")
	}

	return webinar, nil
}

// IncrementViews bumps the webinar view counter.
func (r *WebinarsRepository) IncrementViews(ctx context.Context, webinarID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `update webinars set views = views + 1 where webinar_id = $1`, webinarID)
	return errors.Wrap(err, "failed to increment webinar views")
}

// AdjustAttendeeCount moves the denormalized attendee counter by delta
// (+1 on registration, -1 on cancellation).
func (r *WebinarsRepository) AdjustAttendeeCount(ctx context.Context, webinarID uuid.UUID, delta int) error {
	_, err := r.pool.Exec(ctx,
		`update webinars set attendee_count = greatest(attendee_count + $2, 0), updated_at = now() where webinar_id = $1`,
		webinarID, delta,
	)
	return errors.Wrap(err, "failed to adjust webinar attendee count")
}

// GetRegistration returns the registration row for (webinar, user), if
// any. Returns nil without error when no row exists.
func (r *WebinarsRepository) GetRegistration(ctx context.Context, webinarID, userID uuid.UUID) (*model.WebinarRegistration, error) {
	rows, err := r.pool.Query(ctx,
		`select * from webinar_registrations where webinar_id = $1 and user_id = $2`,
		webinarID, userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query webinar registration")
	}

	registration, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.WebinarRegistration])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to scan webinar registration")
	}

	return registration, nil
}

func (r *WebinarsRepository) CreateRegistration(ctx context.Context, webinarID, userID, schoolID uuid.UUID) (*model.WebinarRegistration, error) {
	rows, err := r.pool.Query(ctx, `
		insert into webinar_registrations (webinar_id, user_id, school_id)
		values ($1, $2, $3)
		returning *`,
		webinarID, userID, schoolID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert webinar registration")
	}

	registration, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.WebinarRegistration])
	if err != nil {
		return nil, errors.Wrap(err, "table:webinar_registrations: failed to scan registration")
	}

	return registration, nil
}

// SetRegistrationStatus updates a registration's status and stamps the
// matching timestamp column.
func (r *WebinarsRepository) SetRegistrationStatus(ctx context.Context, registrationID uuid.UUID, status model.RegistrationStatus) (*model.WebinarRegistration, error) {
	rows, err := r.pool.Query(ctx, `
		update webinar_registrations
		set status = $2,
		    registered_at = case when $2 = 'Registered' then now() else registered_at end,
		    attended_at = case when $2 = 'Attended' then now() else attended_at end,
		    cancelled_at = case when $2 = 'Cancelled' then now() else null end
		where registration_id = $1
		returning *`,
		registrationID, status,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update webinar registration")
	}

	registration, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.WebinarRegistration])
	if err != nil {
		return nil, errors.Wrap(err, "table:webinar_registrations: failed to get updated registration")
	}

	return registration, nil
}

func (r *WebinarsRepository) ListRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]model.WebinarRegistration, error) {
	rows, err := r.pool.Query(ctx, `
		select * from webinar_registrations
		where user_id = $1 and status != 'Cancelled'
		order by registered_at desc`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user registrations")
	}

	registrations, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.WebinarRegistration])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan user registrations")
	}

	return registrations, nil
}

// CountActiveRegistrations returns non-cancelled registrations for a
// webinar, used for capacity checks.
func (r *WebinarsRepository) CountActiveRegistrations(ctx context.Context, webinarID uuid.UUID) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx,
		`select count(*) from webinar_registrations where webinar_id = $1 and status != 'Cancelled'`,
		webinarID,
	).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count webinar registrations")
	}
	return count, nil
}

// UpsertStudentAttendance records or updates a student's watch session
// for a webinar.
func (r *WebinarsRepository) UpsertStudentAttendance(ctx context.Context, webinarID, studentID uuid.UUID, joinTime, leaveTime *string, watchMinutes *int) (*model.StudentWebinarAttendance, error) {
	rows, err := r.pool.Query(ctx, `
		insert into student_webinar_attendance (webinar_id, student_id, attended, join_time, leave_time, watch_duration_minutes)
		values ($1, $2, true, $3, $4, $5)
		on conflict on constraint student_webinar_attendance_webinar_student_key
		do update set attended = true, join_time = coalesce($3, student_webinar_attendance.join_time),
			leave_time = $4, watch_duration_minutes = $5
		returning *`,
		webinarID, studentID, joinTime, leaveTime, watchMinutes,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert student webinar attendance")
	}

	attendance, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.StudentWebinarAttendance])
	if err != nil {
		return nil, errors.Wrap(err, "table:student_webinar_attendance: failed to scan attendance")
	}

	return attendance, nil
}

func (r *WebinarsRepository) ListStudentAttendance(ctx context.Context, webinarID uuid.UUID) ([]model.StudentWebinarAttendance, error) {
	rows, err := r.pool.Query(ctx, `
		select * from student_webinar_attendance
		where webinar_id = $1
		order by created_at`,
		webinarID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list student webinar attendance")
	}

	attendance, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.StudentWebinarAttendance])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan student webinar attendance")
	}

	return attendance, nil
}

// SchoolWebinarSummaryRow aggregates one webinar's staff registrations
// for a school.
type SchoolWebinarSummaryRow struct {
	WebinarID  uuid.UUID `db:"webinar_id"`
	Title      string    `db:"title"`
	Registered int64     `db:"registered"`
	Attended   int64     `db:"attended"`
}

// SchoolSummary returns per-webinar registered and attended counts for
// one school's staff.
func (r *WebinarsRepository) SchoolSummary(ctx context.Context, schoolID uuid.UUID) ([]SchoolWebinarSummaryRow, error) {
	rows, err := r.pool.Query(ctx, `
		select
			w.webinar_id,
			w.title,
			count(*) filter (where r.status != 'Cancelled') as registered,
			count(*) filter (where r.status = 'Attended') as attended
		from webinars w
		join webinar_registrations r on r.webinar_id = w.webinar_id
		where r.school_id = $1
		group by w.webinar_id, w.title
		order by w.date desc`,
		schoolID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query school webinar summary")
	}

	summary, err := pgx.CollectRows(rows, pgx.RowToStructByName[SchoolWebinarSummaryRow])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan school webinar summary")
	}

	return summary, nil
}

// ClassAttendanceRow aggregates one class's student attendance for a
// webinar.
type ClassAttendanceRow struct {
	ClassID      uuid.UUID `db:"class_id"`
	ClassName    string    `db:"class_name"`
	StudentCount int64     `db:"student_count"`
	Attended     int64     `db:"attended"`
}

// ClassBreakdown returns per-class attendance counts for one webinar
// within a school.
func (r *WebinarsRepository) ClassBreakdown(ctx context.Context, schoolID, webinarID uuid.UUID) ([]ClassAttendanceRow, error) {
	rows, err := r.pool.Query(ctx, `
		select
			c.class_id,
			c.name as class_name,
			count(s.student_id) as student_count,
			count(a.id) filter (where a.attended) as attended
		from classes c
		join students s on s.class_id = c.class_id
		left join student_webinar_attendance a
			on a.student_id = s.student_id and a.webinar_id = $2
		where c.school_id = $1
		group by c.class_id, c.name
		order by c.name`,
		schoolID, webinarID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query webinar class breakdown")
	}

	breakdown, err := pgx.CollectRows(rows, pgx.RowToStructByName[ClassAttendanceRow])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan webinar class breakdown")
	}

	return breakdown, nil
}
