package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/forma/server/internal/observability"
	"github.com/forma/server/internal/stats"
	"github.com/forma/server/internal/workout"
)

// UserHandler handles the per-user workout data endpoints. All routes are
// mounted behind the auth and owner-check middleware, so the {id} path
// parameter is always the authenticated user by the time these run.
type UserHandler struct {
	stats    *stats.Service
	sessions *workout.SessionService
	plans    *workout.PlanService
	catalog  *workout.Catalog
}

// NewUserHandler creates a new user handler.
func NewUserHandler(statsService *stats.Service, sessions *workout.SessionService, plans *workout.PlanService, catalog *workout.Catalog) *UserHandler {
	return &UserHandler{
		stats:    statsService,
		sessions: sessions,
		plans:    plans,
		catalog:  catalog,
	}
}

// userID parses the {id} path parameter. RequireSelf already validated it.
func userID(r *http.Request) uuid.UUID {
	id, _ := uuid.Parse(chi.URLParam(r, "id"))
	return id
}

// HandleStats handles GET /api/users/{id}/stats
func (h *UserHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Get(r.Context(), userID(r))
	if err != nil {
		log.Printf("Failed to load stats: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	respondWithJSON(w, http.StatusOK, st)
}

// HandleActivePlan handles GET /api/users/{id}/active-plan
func (h *UserHandler) HandleActivePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.plans.Active(r.Context(), userID(r))
	if err != nil {
		log.Printf("Failed to load active plan: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal", "failed to load plan")
		return
	}
	// plan is nil when the user has none; the body is then JSON null.
	respondWithJSON(w, http.StatusOK, plan)
}

// HandleRecommendedWorkouts handles GET /api/users/{id}/recommended-workouts
func (h *UserHandler) HandleRecommendedWorkouts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Recommended())
}

// HandleListProgress handles GET /api/users/{id}/progress?workoutId=
func (h *UserHandler) HandleListProgress(w http.ResponseWriter, r *http.Request) {
	workoutID := r.URL.Query().Get("workoutId")
	entries, err := h.stats.Progress(r.Context(), userID(r), workoutID)
	if err != nil {
		log.Printf("Failed to list progress: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal", "failed to list progress")
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// logProgressRequest is the request body for POST /api/users/{id}/progress
type logProgressRequest struct {
	WorkoutID   string     `json:"workoutId"`
	Duration    int        `json:"duration"`
	Notes       string     `json:"notes"`
	CompletedAt *time.Time `json:"completedAt"`
}

// HandleLogProgress handles POST /api/users/{id}/progress
func (h *UserHandler) HandleLogProgress(w http.ResponseWriter, r *http.Request) {
	var req logProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	req.WorkoutID = strings.TrimSpace(req.WorkoutID)
	if req.WorkoutID == "" || req.Duration <= 0 {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "workoutId and a positive duration are required")
		return
	}

	in := stats.LogWorkoutInput{
		WorkoutID: req.WorkoutID,
		Duration:  req.Duration,
		Notes:     req.Notes,
	}
	if req.CompletedAt != nil {
		in.CompletedAt = *req.CompletedAt
	}

	entry, err := h.stats.LogWorkout(r.Context(), userID(r), in)
	if err != nil {
		log.Printf("Failed to log workout: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal", "failed to log workout")
		return
	}

	observability.RecordWorkoutLogged()
	respondWithJSON(w, http.StatusOK, entry)
}

// startSessionRequest is the request body for POST /api/users/{id}/sessions/start
type startSessionRequest struct {
	WorkoutID string `json:"workoutId"`
}

// HandleStartSession handles POST /api/users/{id}/sessions/start
func (h *UserHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	req.WorkoutID = strings.TrimSpace(req.WorkoutID)
	if req.WorkoutID == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "workoutId is required")
		return
	}

	session, err := h.sessions.Start(r.Context(), userID(r), req.WorkoutID)
	if err != nil {
		if errors.Is(err, workout.ErrWorkoutNotFound) {
			respondWithError(w, http.StatusBadRequest, "workout_not_found", "unknown workout")
			return
		}
		log.Printf("Failed to start session: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal", "failed to start session")
		return
	}

	observability.RecordSessionStarted()
	respondWithJSON(w, http.StatusOK, session)
}

// HandleActiveSession handles GET /api/users/{id}/sessions/{workoutId}
func (h *UserHandler) HandleActiveSession(w http.ResponseWriter, r *http.Request) {
	workoutID := chi.URLParam(r, "workoutId")
	session, err := h.sessions.Active(r.Context(), userID(r), workoutID)
	if err != nil {
		log.Printf("Failed to load active session: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal", "failed to load session")
		return
	}
	// session is nil when none is active; the body is then JSON null.
	respondWithJSON(w, http.StatusOK, session)
}

// updateSessionRequest is the request body for PUT /api/users/{id}/sessions/{sessionId}
type updateSessionRequest struct {
	CompletedExercises []string `json:"completedExercises"`
}

// HandleUpdateSession handles PUT /api/users/{id}/sessions/{sessionId}
func (h *UserHandler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "session_not_found", "session not found")
		return
	}

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	session, err := h.sessions.UpdateProgress(r.Context(), userID(r), sessionID, req.CompletedExercises)
	if err != nil {
		if errors.Is(err, workout.ErrSessionNotFound) {
			respondWithError(w, http.StatusNotFound, "session_not_found", "session not found")
			return
		}
		log.Printf("Failed to update session: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal", "failed to update session")
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}
