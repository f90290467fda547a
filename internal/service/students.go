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

// StudentsService manages student records.
type StudentsService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewStudentsService(s *server.Server, repos *repository.Repositories) *StudentsService {
	return &StudentsService{
		server: s,
		repos:  repos,
	}
}

func (svc *StudentsService) Create(ctx context.Context, p repository.CreateStudentParams) (*model.Student, error) {
	if p.ClassID != nil {
		class, err := svc.repos.Classes.GetByID(ctx, *p.ClassID)
		if err != nil {
			return nil, err
		}
		if class.SchoolID != p.SchoolID {
			return nil, errs.NewBadRequestError("Class belongs to a different school", true, nil, nil, nil)
		}
	}

	return svc.repos.Students.Create(ctx, p)
}

// Get returns a student, enforcing tenant scoping: callers only see
// students of their own school.
func (svc *StudentsService) Get(ctx context.Context, schoolID, studentID uuid.UUID) (*model.Student, error) {
	student, err := svc.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.SchoolID != schoolID {
		return nil, errs.NewNotFoundError("Student not found", true, nil)
	}
	return student, nil
}

func (svc *StudentsService) List(ctx context.Context, schoolID uuid.UUID, f repository.StudentFilter, p utils.Pagination) ([]model.Student, utils.PageMeta, error) {
	students, total, err := svc.repos.Students.ListBySchool(ctx, schoolID, f, p)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return students, utils.NewPageMeta(p, total), nil
}

func (svc *StudentsService) Update(ctx context.Context, schoolID, studentID uuid.UUID, p repository.UpdateStudentParams) (*model.Student, error) {
	if _, err := svc.Get(ctx, schoolID, studentID); err != nil {
		return nil, err
	}

	if p.ClassID != nil {
		class, err := svc.repos.Classes.GetByID(ctx, *p.ClassID)
		if err != nil {
			return nil, err
		}
		if class.SchoolID != schoolID {
			return nil, errs.NewBadRequestError("Class belongs to a different school", true, nil, nil, nil)
		}
	}

	return svc.repos.Students.Update(ctx, studentID, p)
}

func (svc *StudentsService) Delete(ctx context.Context, schoolID, studentID uuid.UUID) error {
	if _, err := svc.Get(ctx, schoolID, studentID); err != nil {
		return err
	}
	return svc.repos.Students.Delete(ctx, studentID)
}
