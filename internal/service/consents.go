package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/lib/job"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// ConsentsService manages guardian consent records and the expiry sweep.
type ConsentsService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewConsentsService(s *server.Server, repos *repository.Repositories) *ConsentsService {
	return &ConsentsService{
		server: s,
		repos:  repos,
	}
}

func (svc *ConsentsService) Create(ctx context.Context, p repository.CreateConsentParams) (*model.ConsentRecord, error) {
	if _, err := svc.repos.Students.GetByID(ctx, p.StudentID); err != nil {
		return nil, err
	}
	if p.Status == "" {
		p.Status = model.ConsentPending
	}
	return svc.repos.Consents.Create(ctx, p)
}

func (svc *ConsentsService) Get(ctx context.Context, consentID uuid.UUID) (*model.ConsentRecord, error) {
	return svc.repos.Consents.GetByID(ctx, consentID)
}

func (svc *ConsentsService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.ConsentRecord, error) {
	if _, err := svc.repos.Students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return svc.repos.Consents.ListByStudent(ctx, studentID)
}

// UpdateStatus moves a consent through its lifecycle. DENIED and REVOKED
// are terminal except that a new grant may supersede them via Create.
func (svc *ConsentsService) UpdateStatus(ctx context.Context, consentID uuid.UUID, status model.ConsentStatus, expiresAt *string) (*model.ConsentRecord, error) {
	consent, err := svc.repos.Consents.GetByID(ctx, consentID)
	if err != nil {
		return nil, err
	}

	if consent.Status == model.ConsentDenied || consent.Status == model.ConsentRevoked {
		return nil, errs.NewConflictError("Consent record is already finalized; create a new record instead", true)
	}

	return svc.repos.Consents.UpdateStatus(ctx, consentID, status, expiresAt)
}

// HasActiveConsent reports whether a student has a GRANTED, unexpired
// consent of the given type. The assessments service calls this before
// accepting a submission.
func (svc *ConsentsService) HasActiveConsent(ctx context.Context, studentID uuid.UUID, consentType model.ConsentType) (bool, error) {
	consents, err := svc.repos.Consents.ListByStudent(ctx, studentID)
	if err != nil {
		return false, err
	}

	now := time.Now()
	for _, consent := range consents {
		if ConsentActiveAt(consent, consentType, now) {
			return true, nil
		}
	}
	return false, nil
}

// ConsentActiveAt reports whether a consent record covers the given type
// at the given instant: GRANTED and not past its expiry. A consent past
// expires_at is inactive even before the nightly sweep revokes it.
func ConsentActiveAt(consent model.ConsentRecord, consentType model.ConsentType, at time.Time) bool {
	if consent.ConsentType != consentType || consent.Status != model.ConsentGranted {
		return false
	}
	return consent.ExpiresAt == nil || consent.ExpiresAt.After(at)
}

// SweepExpired revokes GRANTED consents past their expiry and enqueues a
// renewal notice per swept record. Runs nightly from the scheduler.
func (svc *ConsentsService) SweepExpired(ctx context.Context) (int, error) {
	expired, err := svc.repos.Consents.ExpireGranted(ctx)
	if err != nil {
		return 0, err
	}

	for _, consent := range expired {
		if consent.ParentEmail == nil {
			continue
		}

		task, err := job.NewConsentExpiryEmailTask(
			*consent.ParentEmail,
			consent.FirstName+" "+consent.LastName,
			string(consent.ConsentType),
		)
		if err != nil {
			svc.server.Logger.Error().Err(err).Msg("failed to build consent expiry email task")
			continue
		}
		if _, err := svc.server.Job.Client.EnqueueContext(ctx, task); err != nil {
			svc.server.Logger.Error().Err(err).
				Str("consent_id", consent.ConsentID.String()).
				Msg("failed to enqueue consent expiry email")
		}
	}

	if len(expired) > 0 {
		svc.server.Logger.Info().Int("count", len(expired)).Msg("swept expired consent records")
	}

	return len(expired), nil
}
