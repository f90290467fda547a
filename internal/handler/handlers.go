package handler

import (
	"github.com/wellnest-hq/wellness-api/internal/lib/utils"
	"github.com/wellnest-hq/wellness-api/internal/server"
	"github.com/wellnest-hq/wellness-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health      *HealthHandler
	OpenAPI     *OpenAPIHandler
	Auth        *AuthHandler
	Schools     *SchoolsHandler
	Users       *UsersHandler
	Students    *StudentsHandler
	Classes     *ClassesHandler
	Cases       *CasesHandler
	Assessments *AssessmentsHandler
	Activities  *ActivitiesHandler
	Webinars    *WebinarsHandler
	Consents    *ConsentsHandler
	Engagement  *EngagementHandler
	Analytics   *AnalyticsHandler
	Admin       *AdminHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(s),
		OpenAPI:     NewOpenAPIHandler(s),
		Auth:        NewAuthHandler(s, services),
		Schools:     NewSchoolsHandler(s, services),
		Users:       NewUsersHandler(s, services),
		Students:    NewStudentsHandler(s, services),
		Classes:     NewClassesHandler(s, services),
		Cases:       NewCasesHandler(s, services),
		Assessments: NewAssessmentsHandler(s, services),
		Activities:  NewActivitiesHandler(s, services),
		Webinars:    NewWebinarsHandler(s, services),
		Consents:    NewConsentsHandler(s, services),
		Engagement:  NewEngagementHandler(s, services),
		Analytics:   NewAnalyticsHandler(s, services),
		Admin:       NewAdminHandler(s, services),
	}
}

// ListResponse is the common envelope for paginated list endpoints.
type ListResponse[T any] struct {
	Items []T            `json:"items"`
	Meta  utils.PageMeta `json:"meta"`
}
