package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studysync/backend/internal/auth"
	"studysync/backend/internal/gateway/handlers"
	"studysync/backend/internal/gateway/util"
	"studysync/backend/internal/shared"
)

// SetupRoutes configures the Chi router, middleware, and route handlers.
func SetupRoutes(svcs *Services, config *shared.ServiceConfig) *chi.Mux {
	r := chi.NewRouter()

	// 1. Global Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(MetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.CORS.AllowedOrigins,
		AllowedMethods:   config.CORS.AllowedMethods,
		AllowedHeaders:   config.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           config.CORS.MaxAge,
	}))

	// 2. Initialize Handlers
	authHandler := &handlers.AuthHandler{}
	courseHandler := &handlers.CourseHandler{Courses: svcs.Courses, Assignments: svcs.Assignments}
	assignmentHandler := &handlers.AssignmentHandler{Assignments: svcs.Assignments}
	gradeHandler := &handlers.GradeHandler{Courses: svcs.Courses, Analytics: svcs.Analytics}
	adminHandler := &handlers.AdminHandler{Admin: svcs.Admin}
	analyticsHandler := &handlers.AnalyticsHandler{Analytics: svcs.Analytics}

	// 3. Define Routes (grouped by prefix)
	r.Route("/api", func(r chi.Router) {

		// --- Public Routes ---
		r.Get("/health", healthHandler(svcs.Ping))
		r.Handle("/metrics", promhttp.Handler())

		// --- Protected Routes (Require Valid Token) ---
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(svcs.Auth, config.Security.AuthDisabled))

			r.Get("/auth/validate", authHandler.ValidateToken)

			r.Route("/courses", func(r chi.Router) {
				r.Get("/", courseHandler.ListCourses)
				r.Post("/", courseHandler.CreateCourse)
				r.Get("/{id}", courseHandler.GetCourse)
				r.Put("/{id}", courseHandler.UpdateCourse)
				r.Delete("/{id}", courseHandler.DeleteCourse)
				r.Put("/{id}/grade", courseHandler.UpdateCourseGrade)
				r.Post("/{id}/recalculate", courseHandler.RecalculateGrade)
				r.Get("/{id}/grades", courseHandler.ListCourseGrades)
				r.Get("/{id}/assignments", courseHandler.ListCourseAssignments)
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/", assignmentHandler.ListAssignments)
				r.Post("/", assignmentHandler.CreateAssignment)
				r.Get("/upcoming", assignmentHandler.Upcoming)
				r.Get("/today", assignmentHandler.Today)
				r.Get("/{id}", assignmentHandler.GetAssignment)
				r.Put("/{id}", assignmentHandler.UpdateAssignment)
				r.Delete("/{id}", assignmentHandler.DeleteAssignment)
				r.Patch("/{id}/status", assignmentHandler.UpdateStatus)
			})

			r.Route("/grades", func(r chi.Router) {
				r.Get("/", gradeHandler.ListGrades)
				r.Post("/", gradeHandler.AddGrade)
				r.Get("/summary", gradeHandler.Summary)
				r.Get("/{id}", gradeHandler.GetGrade)
				r.Put("/{id}", gradeHandler.UpdateGrade)
				r.Delete("/{id}", gradeHandler.DeleteGrade)
			})

			r.Route("/students", func(r chi.Router) {
				r.Get("/", adminHandler.ListStudents)
				r.Post("/", adminHandler.CreateStudent)
				r.Get("/{id}", adminHandler.GetStudent)
				r.Put("/{id}", adminHandler.UpdateStudent)
				r.Delete("/{id}", adminHandler.DeleteStudent)
				r.Put("/{id}/attendance", adminHandler.UpdateAttendance)
			})

			r.Route("/faculty", func(r chi.Router) {
				r.Get("/", adminHandler.ListFaculty)
				r.Post("/", adminHandler.CreateFaculty)
				r.Get("/{id}", adminHandler.GetFaculty)
				r.Put("/{id}", adminHandler.UpdateFaculty)
				r.Delete("/{id}", adminHandler.DeleteFaculty)
				r.Put("/{id}/salary", adminHandler.UpdateSalary)
			})

			r.Get("/dashboard", analyticsHandler.Dashboard)
			r.Get("/calendar", analyticsHandler.Calendar)
			r.Route("/stats", func(r chi.Router) {
				r.Get("/assignments", analyticsHandler.AssignmentStats)
				r.Get("/students", analyticsHandler.StudentStats)
				r.Get("/courses", analyticsHandler.CourseStats)
			})
		})
	})

	return r
}

// healthHandler reports whether the store answers a ping
func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if ping != nil {
			if err := ping(ctx); err != nil {
				util.WriteJSONError(w, http.StatusServiceUnavailable, "store unavailable")
				return
			}
		}
		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"status":  "ok",
		})
	}
}

// AuthMiddleware validates the bearer token and stores its claims on the
// request context. With disabled set every request passes through.
func AuthMiddleware(authService *auth.AuthService, disabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if disabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract Token
			tokenStr, err := util.ExtractToken(r)
			if err != nil {
				util.WriteJSONError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			// 2. Validate
			claims, err := authService.ValidateToken(tokenStr)
			if err != nil {
				if errors.Is(err, auth.ErrTokenMissing) {
					util.WriteJSONError(w, http.StatusUnauthorized, "Authorization token required")
					return
				}
				util.WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			// 3. Inject claims into context
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
