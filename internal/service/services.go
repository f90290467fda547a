package service

import (
	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// Services is a container that groups all business-logic services.
type Services struct {
	Auth        *AuthService
	Schools     *SchoolsService
	Users       *UsersService
	Students    *StudentsService
	Classes     *ClassesService
	Cases       *CasesService
	Assessments *AssessmentsService
	Activities  *ActivitiesService
	Webinars    *WebinarsService
	Consents    *ConsentsService
	Engagement  *EngagementService
	Analytics   *AnalyticsService
	Reports     *ReportsService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	engagement := NewEngagementService(s, repos)
	consents := NewConsentsService(s, repos)

	return &Services{
		Auth:        NewAuthService(s, repos),
		Schools:     NewSchoolsService(s, repos),
		Users:       NewUsersService(s, repos),
		Students:    NewStudentsService(s, repos),
		Classes:     NewClassesService(s, repos),
		Cases:       NewCasesService(s, repos),
		Assessments: NewAssessmentsService(s, repos, consents),
		Activities:  NewActivitiesService(s, repos, engagement),
		Webinars:    NewWebinarsService(s, repos),
		Consents:    consents,
		Engagement:  engagement,
		Analytics:   NewAnalyticsService(s, repos),
		Reports:     NewReportsService(s, repos),
	}, nil
}
