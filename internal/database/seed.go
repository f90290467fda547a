package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellnest-hq/wellness-api/internal/config"
)

// Seed loads a small development dataset: one school, staff accounts
// for every role that logs in, a class with students, and a starter
// activity and assessment template. Safe to re-run; all inserts are
// idempotent on their natural keys.
func Seed(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, dsnFromConfig(cfg))
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	password, err := bcrypt.GenerateFromPassword([]byte("wellness-dev"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var schoolID string
	err = tx.QueryRow(ctx,
		`select school_id from schools where name = 'Northside Academy'`,
	).Scan(&schoolID)
	if err == pgx.ErrNoRows {
		err = tx.QueryRow(ctx, `
			insert into schools (name, city, country, timezone, academic_year)
			values ('Northside Academy', 'Wellington', 'New Zealand', 'Pacific/Auckland', '2026')
			returning school_id`,
		).Scan(&schoolID)
	}
	if err != nil {
		return fmt.Errorf("seeding school: %w", err)
	}

	staff := []struct {
		role  string
		email string
		name  string
	}{
		{"ADMIN", "admin@northside.example", "Ada Armstrong"},
		{"PRINCIPAL", "principal@northside.example", "Priya Patel"},
		{"COUNSELLOR", "counsellor@northside.example", "Casey Morgan"},
		{"TEACHER", "teacher@northside.example", "Tane Walker"},
	}

	var teacherID string
	for _, member := range staff {
		var userID string
		if err := tx.QueryRow(ctx, `
			insert into users (school_id, role, email, hashed_password, display_name)
			values ($1, $2, $3, $4, $5)
			on conflict (email) do update set display_name = excluded.display_name
			returning user_id`,
			schoolID, member.role, member.email, string(password), member.name,
		).Scan(&userID); err != nil {
			return fmt.Errorf("seeding user %s: %w", member.email, err)
		}
		if member.role == "TEACHER" {
			teacherID = userID
		}
	}

	var classID string
	err = tx.QueryRow(ctx,
		`select class_id from classes where school_id = $1 and name = 'Year 9 Kea'`,
		schoolID,
	).Scan(&classID)
	if err == pgx.ErrNoRows {
		err = tx.QueryRow(ctx, `
			insert into classes (school_id, name, grade, section, academic_year, teacher_id, capacity)
			values ($1, 'Year 9 Kea', '9', 'A', '2026', $2, 30)
			returning class_id`,
			schoolID, teacherID,
		).Scan(&classID)
	}
	if err != nil {
		return fmt.Errorf("seeding class: %w", err)
	}

	students := []struct {
		first string
		last  string
	}{
		{"Maia", "Henare"}, {"Liam", "O'Connor"}, {"Sofia", "Reyes"},
		{"Noah", "Chen"}, {"Aroha", "Ngata"}, {"Ethan", "Brown"},
	}
	for _, s := range students {
		if _, err := tx.Exec(ctx, `
			insert into students (school_id, class_id, first_name, last_name)
			select $1, $2, $3, $4
			where not exists (
				select 1 from students
				where school_id = $1 and first_name = $3 and last_name = $4
			)`,
			schoolID, classID, s.first, s.last,
		); err != nil {
			return fmt.Errorf("seeding student %s %s: %w", s.first, s.last, err)
		}
	}

	if _, err := tx.Exec(ctx, `
		insert into activities (title, description, type, duration, target_grades, created_by)
		select 'Five-minute breathing', 'A short guided breathing exercise.',
			'MINDFULNESS', 5, array['8','9','10'],
			(select user_id from users where email = 'teacher@northside.example')
		where not exists (select 1 from activities where title = 'Five-minute breathing')`,
	); err != nil {
		return fmt.Errorf("seeding activity: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		insert into assessment_templates (name, description, questions, created_by)
		select 'Wellbeing check-in',
			'Baseline mood and stress check.',
			'[{"question_id":"q1","text":"How are you feeling today?","type":"scale","max_score":5},
			  {"question_id":"q2","text":"How well did you sleep?","type":"scale","max_score":5}]'::jsonb,
			(select user_id from users where email = 'counsellor@northside.example')
		where not exists (select 1 from assessment_templates where name = 'Wellbeing check-in')`,
	); err != nil {
		return fmt.Errorf("seeding assessment template: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	logger.Info().Msg("development data seeded")
	return nil
}
