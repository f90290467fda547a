package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// CasesService manages counselling cases and journal entries.
type CasesService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewCasesService(s *server.Server, repos *repository.Repositories) *CasesService {
	return &CasesService{
		server: s,
		repos:  repos,
	}
}

// Open creates a case for a student. The student's own risk level is
// raised to match the case when the case is assessed as riskier.
func (svc *CasesService) Open(ctx context.Context, schoolID uuid.UUID, p repository.CreateCaseParams) (*model.Case, error) {
	student, err := svc.repos.Students.GetByID(ctx, p.StudentID)
	if err != nil {
		return nil, err
	}
	if student.SchoolID != schoolID {
		return nil, errs.NewNotFoundError("Student not found", true, nil)
	}

	kase, err := svc.repos.Cases.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	if riskRank(kase.RiskLevel) > riskRank(student.RiskLevel) {
		score := 0
		if student.WellbeingScore != nil {
			score = *student.WellbeingScore
		}
		if err := svc.repos.Students.UpdateWellbeing(ctx, student.StudentID, kase.RiskLevel, score); err != nil {
			svc.server.Logger.Error().Err(err).
				Str("student_id", student.StudentID.String()).
				Msg("failed to raise student risk level for new case")
		}
	}

	return kase, nil
}

// Get returns a case scoped to the caller's school.
func (svc *CasesService) Get(ctx context.Context, schoolID, caseID uuid.UUID) (*model.Case, error) {
	kase, err := svc.repos.Cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	student, err := svc.repos.Students.GetByID(ctx, kase.StudentID)
	if err != nil {
		return nil, err
	}
	if student.SchoolID != schoolID {
		return nil, errs.NewNotFoundError("Case not found", true, nil)
	}

	return kase, nil
}

func (svc *CasesService) List(ctx context.Context, f repository.CaseFilter, p utils.Pagination) ([]model.Case, utils.PageMeta, error) {
	cases, total, err := svc.repos.Cases.List(ctx, f, p)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return cases, utils.NewPageMeta(p, total), nil
}

// Update edits a case. Closed cases cannot transition anywhere except
// back to monitoring (reopening).
func (svc *CasesService) Update(ctx context.Context, schoolID, caseID uuid.UUID, p repository.UpdateCaseParams) (*model.Case, error) {
	kase, err := svc.Get(ctx, schoolID, caseID)
	if err != nil {
		return nil, err
	}

	if kase.Status == model.CaseClosed && p.Status != model.CaseClosed && p.Status != model.CaseMonitoring {
		return nil, errs.NewConflictError("Closed cases can only be reopened into monitoring", true)
	}

	return svc.repos.Cases.Update(ctx, caseID, p)
}

// AddEntry appends a journal entry to a case.
func (svc *CasesService) AddEntry(ctx context.Context, schoolID uuid.UUID, p repository.CreateEntryParams) (*model.JournalEntry, error) {
	kase, err := svc.Get(ctx, schoolID, p.CaseID)
	if err != nil {
		return nil, err
	}

	if kase.Status == model.CaseClosed {
		return nil, errs.NewConflictError("Cannot add entries to a closed case", true)
	}

	if p.Content == nil && p.AudioURL == nil {
		return nil, errs.NewBadRequestError("Entry needs either content or an audio recording", true, nil, nil, nil)
	}

	return svc.repos.Cases.CreateEntry(ctx, p)
}

// ListEntries returns the case journal visible to the viewer: shared
// entries plus the viewer's own private ones.
func (svc *CasesService) ListEntries(ctx context.Context, schoolID, caseID, viewerID uuid.UUID) ([]model.JournalEntry, error) {
	if _, err := svc.Get(ctx, schoolID, caseID); err != nil {
		return nil, err
	}
	return svc.repos.Cases.ListEntries(ctx, caseID, viewerID)
}

// riskRank orders risk levels for comparisons.
func riskRank(r model.RiskLevel) int {
	switch r {
	case model.RiskCritical:
		return 3
	case model.RiskHigh:
		return 2
	case model.RiskMedium:
		return 1
	default:
		return 0
	}
}

// MarkProcessed flags a case as reviewed.
func (svc *CasesService) MarkProcessed(ctx context.Context, schoolID, caseID uuid.UUID) (*model.Case, error) {
	if _, err := svc.Get(ctx, schoolID, caseID); err != nil {
		return nil, err
	}

	return svc.repos.Cases.MarkProcessed(ctx, caseID)
}
