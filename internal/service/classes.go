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

// ClassesService manages classes.
type ClassesService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewClassesService(s *server.Server, repos *repository.Repositories) *ClassesService {
	return &ClassesService{
		server: s,
		repos:  repos,
	}
}

func (svc *ClassesService) Create(ctx context.Context, p repository.CreateClassParams) (*model.Class, error) {
	if p.TeacherID != nil {
		teacher, err := svc.repos.Users.GetByID(ctx, *p.TeacherID)
		if err != nil {
			return nil, err
		}
		if teacher.SchoolID != p.SchoolID {
			return nil, errs.NewBadRequestError("Teacher belongs to a different school", true, nil, nil, nil)
		}
	}

	return svc.repos.Classes.Create(ctx, p)
}

// Get returns a class scoped to the caller's school.
func (svc *ClassesService) Get(ctx context.Context, schoolID, classID uuid.UUID) (*model.Class, error) {
	class, err := svc.repos.Classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class.SchoolID != schoolID {
		return nil, errs.NewNotFoundError("Class not found", true, nil)
	}
	return class, nil
}

func (svc *ClassesService) List(ctx context.Context, schoolID uuid.UUID, teacherID *uuid.UUID, p utils.Pagination) ([]model.Class, utils.PageMeta, error) {
	classes, total, err := svc.repos.Classes.ListBySchool(ctx, schoolID, teacherID, p)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return classes, utils.NewPageMeta(p, total), nil
}

// Roster returns all students enrolled in a class.
func (svc *ClassesService) Roster(ctx context.Context, schoolID, classID uuid.UUID) ([]model.Student, error) {
	if _, err := svc.Get(ctx, schoolID, classID); err != nil {
		return nil, err
	}
	return svc.repos.Students.ListByClass(ctx, classID, nil)
}

func (svc *ClassesService) Update(ctx context.Context, schoolID, classID uuid.UUID, p repository.CreateClassParams) (*model.Class, error) {
	if _, err := svc.Get(ctx, schoolID, classID); err != nil {
		return nil, err
	}
	p.SchoolID = schoolID
	return svc.repos.Classes.Update(ctx, classID, p)
}

// Delete removes a class. A class that still has students enrolled
// cannot be deleted.
func (svc *ClassesService) Delete(ctx context.Context, schoolID, classID uuid.UUID) error {
	if _, err := svc.Get(ctx, schoolID, classID); err != nil {
		return err
	}

	enrolled, err := svc.repos.Classes.CountStudents(ctx, classID)
	if err != nil {
		return err
	}
	if enrolled > 0 {
		return errs.NewConflictError("Class still has students enrolled", true)
	}

	return svc.repos.Classes.Delete(ctx, classID)
}
