package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/lib/job"
	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// WebinarsService manages the webinar catalog, staff registrations, and
// student attendance.
type WebinarsService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewWebinarsService(s *server.Server, repos *repository.Repositories) *WebinarsService {
	return &WebinarsService{
		server: s,
		repos:  repos,
	}
}

func (svc *WebinarsService) Create(ctx context.Context, p repository.CreateWebinarParams) (*model.Webinar, error) {
	return svc.repos.Webinars.Create(ctx, p)
}

// Get returns a webinar and counts the view.
func (svc *WebinarsService) Get(ctx context.Context, webinarID uuid.UUID) (*model.Webinar, error) {
	webinar, err := svc.repos.Webinars.GetByID(ctx, webinarID)
	if err != nil {
		return nil, err
	}

	if err := svc.repos.Webinars.IncrementViews(ctx, webinarID); err != nil {
		svc.server.Logger.Error().Err(err).
			Str("webinar_id", webinarID.String()).
			Msg("failed to increment webinar views")
	}

	return webinar, nil
}

func (svc *WebinarsService) List(ctx context.Context, f repository.WebinarFilter, p utils.Pagination) ([]model.Webinar, utils.PageMeta, error) {
	webinars, total, err := svc.repos.Webinars.List(ctx, f, p)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return webinars, utils.NewPageMeta(p, total), nil
}

func (svc *WebinarsService) UpdateStatus(ctx context.Context, webinarID uuid.UUID, status model.WebinarStatus) (*model.Webinar, error) {
	return svc.repos.Webinars.UpdateStatus(ctx, webinarID, status)
}

// Register signs a staff user up for a webinar.
//
// Rules: cancelled webinars cannot take registrations; capacity is
// enforced against non-cancelled registrations; an active registration
// cannot be duplicated; a previously cancelled registration is
// reactivated instead of duplicated. A confirmation email is enqueued
// on success.
func (svc *WebinarsService) Register(ctx context.Context, webinarID, userID uuid.UUID) (*model.WebinarRegistration, error) {
	webinar, err := svc.repos.Webinars.GetByID(ctx, webinarID)
	if err != nil {
		return nil, err
	}
	if webinar.Status == model.WebinarCancelled {
		return nil, errs.NewConflictError("Webinar has been cancelled", true)
	}

	user, err := svc.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := svc.repos.Webinars.GetRegistration(ctx, webinarID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != model.RegistrationCancelled {
		return nil, errs.NewConflictError("Already registered for this webinar", true)
	}

	if webinar.MaxAttendees != nil {
		active, err := svc.repos.Webinars.CountActiveRegistrations(ctx, webinarID)
		if err != nil {
			return nil, err
		}
		if active >= int64(*webinar.MaxAttendees) {
			return nil, errs.NewConflictError("Webinar is at capacity", true)
		}
	}

	var registration *model.WebinarRegistration
	if existing != nil {
		registration, err = svc.repos.Webinars.SetRegistrationStatus(ctx, existing.RegistrationID, model.RegistrationRegistered)
	} else {
		registration, err = svc.repos.Webinars.CreateRegistration(ctx, webinarID, userID, user.SchoolID)
	}
	if err != nil {
		return nil, err
	}

	if err := svc.repos.Webinars.AdjustAttendeeCount(ctx, webinarID, 1); err != nil {
		svc.server.Logger.Error().Err(err).
			Str("webinar_id", webinarID.String()).
			Msg("failed to bump attendee count")
	}

	task, err := job.NewWebinarRegistrationEmailTask(
		user.Email, user.DisplayName, webinar.Title, webinar.Date.Format("Jan 2, 2006 15:04 MST"))
	if err != nil {
		svc.server.Logger.Error().Err(err).Msg("failed to build webinar registration email task")
		return registration, nil
	}
	if _, err := svc.server.Job.Client.EnqueueContext(ctx, task); err != nil {
		svc.server.Logger.Error().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to enqueue webinar registration email")
	}

	return registration, nil
}

// CancelRegistration cancels a user's active registration.
func (svc *WebinarsService) CancelRegistration(ctx context.Context, webinarID, userID uuid.UUID) error {
	existing, err := svc.repos.Webinars.GetRegistration(ctx, webinarID, userID)
	if err != nil {
		return err
	}
	if existing == nil || existing.Status == model.RegistrationCancelled {
		return errs.NewNotFoundError("No active registration for this webinar", true, nil)
	}

	if _, err := svc.repos.Webinars.SetRegistrationStatus(ctx, existing.RegistrationID, model.RegistrationCancelled); err != nil {
		return err
	}

	if err := svc.repos.Webinars.AdjustAttendeeCount(ctx, webinarID, -1); err != nil {
		svc.server.Logger.Error().Err(err).
			Str("webinar_id", webinarID.String()).
			Msg("failed to drop attendee count")
	}

	return nil
}

func (svc *WebinarsService) ListMyRegistrations(ctx context.Context, userID uuid.UUID) ([]model.WebinarRegistration, error) {
	return svc.repos.Webinars.ListRegistrationsByUser(ctx, userID)
}

// MarkAttended stamps a staff registration as attended.
func (svc *WebinarsService) MarkAttended(ctx context.Context, webinarID, userID uuid.UUID) (*model.WebinarRegistration, error) {
	existing, err := svc.repos.Webinars.GetRegistration(ctx, webinarID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.Status == model.RegistrationCancelled {
		return nil, errs.NewNotFoundError("No active registration for this webinar", true, nil)
	}

	return svc.repos.Webinars.SetRegistrationStatus(ctx, existing.RegistrationID, model.RegistrationAttended)
}

// RecordStudentAttendance logs a student watching a webinar.
func (svc *WebinarsService) RecordStudentAttendance(ctx context.Context, webinarID, studentID uuid.UUID, joinTime, leaveTime *string, watchMinutes *int) (*model.StudentWebinarAttendance, error) {
	if _, err := svc.repos.Webinars.GetByID(ctx, webinarID); err != nil {
		return nil, err
	}
	if _, err := svc.repos.Students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	return svc.repos.Webinars.UpsertStudentAttendance(ctx, webinarID, studentID, joinTime, leaveTime, watchMinutes)
}

func (svc *WebinarsService) ListStudentAttendance(ctx context.Context, webinarID uuid.UUID) ([]model.StudentWebinarAttendance, error) {
	if _, err := svc.repos.Webinars.GetByID(ctx, webinarID); err != nil {
		return nil, err
	}
	return svc.repos.Webinars.ListStudentAttendance(ctx, webinarID)
}

// SchoolWebinarSummary is one webinar's registration roll-up for a
// school, with the attendance rate as a percentage.
type SchoolWebinarSummary struct {
	WebinarID      uuid.UUID `json:"webinar_id"`
	Title          string    `json:"title"`
	Registered     int64     `json:"registered"`
	Attended       int64     `json:"attended"`
	AttendanceRate float64   `json:"attendance_rate"`
}

// SchoolSummary reports registered vs attended counts per webinar for
// one school's staff.
func (svc *WebinarsService) SchoolSummary(ctx context.Context, schoolID uuid.UUID) ([]SchoolWebinarSummary, error) {
	rows, err := svc.repos.Webinars.SchoolSummary(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	summary := make([]SchoolWebinarSummary, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, SchoolWebinarSummary{
			WebinarID:      row.WebinarID,
			Title:          row.Title,
			Registered:     row.Registered,
			Attended:       row.Attended,
			AttendanceRate: completionRate(row.Attended, row.Registered),
		})
	}

	return summary, nil
}

// ClassAttendance is one class's student attendance for a webinar.
type ClassAttendance struct {
	ClassID        uuid.UUID `json:"class_id"`
	ClassName      string    `json:"class_name"`
	StudentCount   int64     `json:"student_count"`
	Attended       int64     `json:"attended"`
	AttendanceRate float64   `json:"attendance_rate"`
}

// ClassBreakdown reports per-class student attendance for a webinar.
func (svc *WebinarsService) ClassBreakdown(ctx context.Context, schoolID, webinarID uuid.UUID) ([]ClassAttendance, error) {
	if _, err := svc.repos.Webinars.GetByID(ctx, webinarID); err != nil {
		return nil, err
	}

	rows, err := svc.repos.Webinars.ClassBreakdown(ctx, schoolID, webinarID)
	if err != nil {
		return nil, err
	}

	breakdown := make([]ClassAttendance, 0, len(rows))
	for _, row := range rows {
		breakdown = append(breakdown, ClassAttendance{
			ClassID:        row.ClassID,
			ClassName:      row.ClassName,
			StudentCount:   row.StudentCount,
			Attended:       row.Attended,
			AttendanceRate: completionRate(row.Attended, row.StudentCount),
		})
	}

	return breakdown, nil
}
