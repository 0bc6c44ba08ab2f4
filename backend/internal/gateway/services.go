package gateway

import (
	"context"

	"studysync/backend/internal/admin"
	"studysync/backend/internal/analytics"
	"studysync/backend/internal/assignment"
	"studysync/backend/internal/auth"
	"studysync/backend/internal/calendar"
	"studysync/backend/internal/course"
	"studysync/backend/internal/shared"
	"studysync/backend/internal/store"
)

// Services holds the domain services the HTTP handlers call into.
// It is built once in main and injected into SetupRoutes.
type Services struct {
	Courses     *course.CourseService
	Assignments *assignment.Service
	Admin       *admin.AdminService
	Analytics   *analytics.Service
	Auth        *auth.AuthService

	// Ping reports store health for /api/health
	Ping func(ctx context.Context) error
}

// NewServices wires every service onto one store
func NewServices(st *store.Store, config *shared.ServiceConfig, clock calendar.Clock) *Services {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Services{
		Courses:     course.NewCourseService(st.Courses, st.Grades, st.Assignments, clock),
		Assignments: assignment.NewService(st.Assignments, clock),
		Admin:       admin.NewAdminService(st.Students, st.Faculty),
		Analytics:   analytics.NewService(st.Courses, st.Assignments, st.Students, clock),
		Auth:        auth.NewAuthService(config),
		Ping:        st.Ping,
	}
}
