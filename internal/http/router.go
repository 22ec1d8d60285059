package http

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/forma/server/internal/auth"
	"github.com/forma/server/internal/http/handlers"
	"github.com/forma/server/internal/middleware"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tokens *auth.TokenService,
	authService *auth.Service,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		healthHandler := handlers.NewHealthHandler()
		r.Get("/health", healthHandler.ServeHTTP)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
		})

		// Protected routes (require a valid access token)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens, authService))

			r.Get("/me", authHandler.HandleMe)

			// Per-user data: the path owner must be the token subject.
			r.Route("/users/{id}", func(r chi.Router) {
				r.Use(middleware.RequireSelf)

				r.Get("/stats", userHandler.HandleStats)
				r.Get("/active-plan", userHandler.HandleActivePlan)
				r.Get("/recommended-workouts", userHandler.HandleRecommendedWorkouts)
				r.Get("/progress", userHandler.HandleListProgress)
				r.Post("/progress", userHandler.HandleLogProgress)
				r.Post("/sessions/start", userHandler.HandleStartSession)
				r.Get("/sessions/{workoutId}", userHandler.HandleActiveSession)
				r.Put("/sessions/{sessionId}", userHandler.HandleUpdateSession)
			})
		})
	})

	return r
}
