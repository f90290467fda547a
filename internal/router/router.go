// Package router wires the Echo instance: global middleware, system
// routes, and the versioned API groups with their role requirements.
package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/handler"
	"github.com/wellnest-hq/wellness-api/internal/middleware"
	"github.com/wellnest-hq/wellness-api/internal/model"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// staff are the roles allowed on the school-scoped API surface.
var staff = []model.Role{
	model.RoleCounsellor,
	model.RoleTeacher,
	model.RolePrincipal,
	model.RoleClinician,
	model.RoleAdmin,
}

// New builds the Echo router with all middleware and routes attached.
func New(s *server.Server, middlewares *middleware.Middlewares, handlers *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	e.Use(middlewares.Global.Recover())
	e.Use(middlewares.Global.Secure())
	e.Use(middleware.RequestID())
	e.Use(middlewares.Tracing.NewRelicMiddleware())
	e.Use(middlewares.ContextEnhancer.EnhanceContext())
	e.Use(middlewares.Tracing.EnhanceTracing())
	e.Use(middlewares.Global.CORS())
	e.Use(middlewares.Global.RequestLogger())

	registerSystemRoutes(e, handlers)
	registerAPIRoutes(e, middlewares, handlers)

	return e
}

func registerAPIRoutes(e *echo.Echo, middlewares *middleware.Middlewares, handlers *handler.Handlers) {
	v1 := e.Group("/api/v1")

	// Login is the only unauthenticated business route; it carries a
	// rate limit so password guessing stays expensive.
	v1.POST("/auth/login", handlers.Auth.Login(), middlewares.RateLimit.Limit(10, time.Minute))

	authed := v1.Group("", middlewares.Auth.RequireAuth)

	authed.GET("/auth/me", handlers.Auth.Me())
	authed.POST("/auth/logout", handlers.Auth.Logout())
	authed.POST("/auth/password", handlers.Auth.ChangePassword())

	// Platform administration.
	admin := authed.Group("", middlewares.Auth.RequireRole(model.RoleAdmin))
	admin.POST("/schools", handlers.Schools.Create())
	admin.GET("/schools", handlers.Schools.List())
	admin.GET("/schools/:id", handlers.Schools.Get())
	admin.PATCH("/schools/:id", handlers.Schools.Update())
	admin.DELETE("/schools/:id", handlers.Schools.Delete())
	admin.GET("/admin/report", handlers.Admin.PlatformReport())

	// School staff management.
	principals := authed.Group("", middlewares.Auth.RequireRole(model.RolePrincipal, model.RoleAdmin))
	principals.POST("/users", handlers.Users.Create())
	principals.PATCH("/users/:id", handlers.Users.Update())
	principals.DELETE("/users/:id", handlers.Users.Delete())

	school := authed.Group("", middlewares.Auth.RequireRole(staff...))
	school.GET("/users", handlers.Users.List())
	school.GET("/users/:id", handlers.Users.Get())

	// Students and classes.
	school.POST("/students", handlers.Students.Create())
	school.GET("/students", handlers.Students.List())
	school.GET("/students/:id", handlers.Students.Get())
	school.PATCH("/students/:id", handlers.Students.Update())
	school.DELETE("/students/:id", handlers.Students.Delete())

	school.POST("/classes", handlers.Classes.Create())
	school.GET("/classes", handlers.Classes.List())
	school.GET("/classes/:id", handlers.Classes.Get())
	school.GET("/classes/:id/roster", handlers.Classes.Roster())
	school.PATCH("/classes/:id", handlers.Classes.Update())
	school.DELETE("/classes/:id", handlers.Classes.Delete())

	// Counselling cases. Journal access is restricted to clinical staff.
	clinical := authed.Group("", middlewares.Auth.RequireRole(model.RoleCounsellor, model.RoleClinician, model.RoleAdmin))
	clinical.POST("/cases", handlers.Cases.Open())
	clinical.GET("/cases", handlers.Cases.List())
	clinical.GET("/cases/:id", handlers.Cases.Get())
	clinical.PATCH("/cases/:id", handlers.Cases.Update())
	clinical.POST("/cases/:id/process", handlers.Cases.Process())
	clinical.POST("/cases/:id/entries", handlers.Cases.AddEntry())
	clinical.GET("/cases/:id/entries", handlers.Cases.ListEntries())

	// Assessments.
	school.POST("/assessment-templates", handlers.Assessments.CreateTemplate())
	school.GET("/assessment-templates", handlers.Assessments.ListTemplates())
	school.GET("/assessment-templates/:id", handlers.Assessments.GetTemplate())
	school.PATCH("/assessment-templates/:id/active", handlers.Assessments.SetTemplateActive())

	school.POST("/assessments", handlers.Assessments.CreateAssessment())
	school.GET("/assessments", handlers.Assessments.ListAssessments())
	school.GET("/assessments/:id", handlers.Assessments.GetAssessment())
	school.POST("/assessments/:id/responses", handlers.Assessments.SubmitResponses())
	school.GET("/assessments/:id/monitoring", handlers.Assessments.Monitor())
	school.GET("/assessments/:id/breakdown", handlers.Assessments.Breakdown())

	// Activity library, assignments, submissions.
	school.POST("/activities", handlers.Activities.Create())
	school.GET("/activities", handlers.Activities.List())
	school.GET("/activities/:id", handlers.Activities.Get())
	school.PATCH("/activities/:id", handlers.Activities.Update())
	school.DELETE("/activities/:id", handlers.Activities.Delete())
	school.POST("/activities/:id/assign", handlers.Activities.Assign())

	school.GET("/classes/:class_id/assignments", handlers.Activities.ListAssignments())
	school.GET("/classes/:class_id/activity-stats", handlers.Activities.Stats())
	school.POST("/assignments/:id/archive", handlers.Activities.ArchiveAssignment())
	school.POST("/assignments/:id/submissions", handlers.Activities.Submit())
	school.GET("/assignments/:id/submissions", handlers.Activities.ListSubmissions())
	school.GET("/submissions/:id", handlers.Activities.GetSubmission())
	school.POST("/submissions/:id/review", handlers.Activities.Review())
	school.POST("/submissions/:id/comments", handlers.Activities.Comment())
	school.GET("/submissions/:id/comments", handlers.Activities.ListComments())

	// Webinars.
	school.POST("/webinars", handlers.Webinars.Create())
	school.GET("/webinars", handlers.Webinars.List())
	school.GET("/webinars/:id", handlers.Webinars.Get())
	school.PATCH("/webinars/:id/status", handlers.Webinars.UpdateStatus())
	school.POST("/webinars/:id/register", handlers.Webinars.Register())
	school.DELETE("/webinars/:id/register", handlers.Webinars.CancelRegistration())
	school.GET("/webinars/registrations/me", handlers.Webinars.MyRegistrations())
	school.POST("/webinars/:id/attended", handlers.Webinars.MarkAttended())
	school.POST("/webinars/:id/student-attendance", handlers.Webinars.RecordStudentAttendance())
	school.GET("/webinars/:id/student-attendance", handlers.Webinars.ListStudentAttendance())
	school.GET("/webinars/summary", handlers.Webinars.SchoolSummary())
	school.GET("/webinars/:id/class-breakdown", handlers.Webinars.ClassBreakdown())

	// Consents.
	clinical.POST("/consents", handlers.Consents.Create())
	clinical.GET("/consents/:id", handlers.Consents.Get())
	clinical.GET("/students/:student_id/consents", handlers.Consents.ListByStudent())
	clinical.PATCH("/consents/:id/status", handlers.Consents.UpdateStatus())

	// Engagement.
	school.POST("/engagement/app-open", handlers.Engagement.RecordAppOpen())
	school.GET("/students/:student_id/streak", handlers.Engagement.StreakDetail())

	// Dashboards.
	school.GET("/analytics/teacher", handlers.Analytics.TeacherOverview())
	school.GET("/analytics/classes/:class_id", handlers.Analytics.ClassOverview())
	school.GET("/analytics/students/:student_id/activities", handlers.Analytics.StudentActivityHistory())
	school.GET("/analytics/students/:student_id/assessments", handlers.Analytics.StudentAssessmentHistory())
	clinical.GET("/analytics/school", handlers.Analytics.SchoolOverview())
	clinical.GET("/analytics/classes", handlers.Analytics.ClassList())
	clinical.GET("/analytics/students/:student_id", handlers.Analytics.StudentDetail())

	adminDash := authed.Group("", middlewares.Auth.RequireRole(model.RolePrincipal, model.RoleAdmin))
	adminDash.GET("/analytics/overview", handlers.Analytics.SchoolOverview())
	adminDash.GET("/analytics/at-risk", handlers.Analytics.AtRiskStudents())
	adminDash.GET("/analytics/counsellor-workload", handlers.Admin.CounsellorWorkload())
	adminDash.GET("/analytics/grades", handlers.Admin.GradeAnalysis())
	adminDash.GET("/analytics/summary", handlers.Admin.PeriodSummary())
}
