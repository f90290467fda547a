package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkg/errors"

	"github.com/wellnest-hq/wellness-api/internal/lib/job"
	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// UsersService manages staff and parent accounts.
type UsersService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewUsersService(s *server.Server, repos *repository.Repositories) *UsersService {
	return &UsersService{
		server: s,
		repos:  repos,
	}
}

// CreateUserInput is the service-level input for account creation.
// Password is plaintext here; it is hashed before storage.
type CreateUserInput struct {
	SchoolID     uuid.UUID
	Role         model.Role
	Email        string
	Password     string
	DisplayName  string
	Phone        *string
	Profile      map[string]any
	Availability map[string]any
}

// Create hashes the password, persists the account, and enqueues the
// welcome email. A failed enqueue only logs; account creation stands.
func (svc *UsersService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}
	hashedStr := string(hashed)

	user, err := svc.repos.Users.Create(ctx, repository.CreateUserParams{
		SchoolID:       in.SchoolID,
		Role:           in.Role,
		Email:          in.Email,
		HashedPassword: &hashedStr,
		DisplayName:    in.DisplayName,
		Phone:          in.Phone,
		Profile:        in.Profile,
		Availability:   in.Availability,
	})
	if err != nil {
		return nil, err
	}

	task, err := job.NewWelcomeEmailTask(user.Email, user.DisplayName)
	if err != nil {
		svc.server.Logger.Error().Err(err).Msg("failed to build welcome email task")
		return user, nil
	}
	if _, err := svc.server.Job.Client.EnqueueContext(ctx, task); err != nil {
		svc.server.Logger.Error().Err(err).Str("user_id", user.UserID.String()).Msg("failed to enqueue welcome email")
	}

	return user, nil
}

func (svc *UsersService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return svc.repos.Users.GetByID(ctx, userID)
}

func (svc *UsersService) List(ctx context.Context, schoolID uuid.UUID, role *model.Role, p utils.Pagination) ([]model.User, utils.PageMeta, error) {
	users, total, err := svc.repos.Users.ListBySchool(ctx, schoolID, role, p)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return users, utils.NewPageMeta(p, total), nil
}

func (svc *UsersService) Update(ctx context.Context, userID uuid.UUID, p repository.UpdateUserParams) (*model.User, error) {
	return svc.repos.Users.Update(ctx, userID, p)
}

func (svc *UsersService) Delete(ctx context.Context, userID uuid.UUID) error {
	return svc.repos.Users.Delete(ctx, userID)
}
