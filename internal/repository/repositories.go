package repository

import (
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// Repositories is a container for all repository instances. Built once
// at startup and handed to the service layer.
type Repositories struct {
	Schools     *SchoolsRepository
	Users       *UsersRepository
	Students    *StudentsRepository
	Classes     *ClassesRepository
	Cases       *CasesRepository
	Assessments *AssessmentsRepository
	Activities  *ActivitiesRepository
	Webinars    *WebinarsRepository
	Consents    *ConsentsRepository
	Engagement  *EngagementRepository
	Analytics   *AnalyticsRepository
}

// NewRepositories constructs the repository container from the app
// container's database pool.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Schools:     &SchoolsRepository{pool: pool},
		Users:       &UsersRepository{pool: pool},
		Students:    &StudentsRepository{pool: pool},
		Classes:     &ClassesRepository{pool: pool},
		Cases:       &CasesRepository{pool: pool},
		Assessments: &AssessmentsRepository{pool: pool},
		Activities:  &ActivitiesRepository{pool: pool},
		Webinars:    &WebinarsRepository{pool: pool},
		Consents:    &ConsentsRepository{pool: pool},
		Engagement:  &EngagementRepository{pool: pool},
		Analytics:   &AnalyticsRepository{pool: pool},
	}
}
