package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// SchoolsService manages school tenants.
type SchoolsService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewSchoolsService(s *server.Server, repos *repository.Repositories) *SchoolsService {
	return &SchoolsService{
		server: s,
		repos:  repos,
	}
}

func (svc *SchoolsService) Create(ctx context.Context, p repository.CreateSchoolParams) (*model.School, error) {
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}
	return svc.repos.Schools.Create(ctx, p)
}

func (svc *SchoolsService) Get(ctx context.Context, schoolID uuid.UUID) (*model.School, error) {
	return svc.repos.Schools.GetByID(ctx, schoolID)
}

func (svc *SchoolsService) List(ctx context.Context, p utils.Pagination) ([]model.School, utils.PageMeta, error) {
	schools, total, err := svc.repos.Schools.List(ctx, p)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return schools, utils.NewPageMeta(p, total), nil
}

func (svc *SchoolsService) Update(ctx context.Context, schoolID uuid.UUID, p repository.CreateSchoolParams) (*model.School, error) {
	return svc.repos.Schools.Update(ctx, schoolID, p)
}

func (svc *SchoolsService) Delete(ctx context.Context, schoolID uuid.UUID) error {
	return svc.repos.Schools.Delete(ctx, schoolID)
}
