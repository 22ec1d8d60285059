// Package workout implements the session lifecycle, the plan view, and
// the seeded catalog.
package workout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/forma/server/internal/locks"
	"github.com/forma/server/internal/model"
	"github.com/forma/server/internal/repo"
)

var (
	// ErrSessionNotFound is returned when a session id does not exist
	// for the user.
	ErrSessionNotFound = errors.New("session not found")
	// ErrWorkoutNotFound is returned for ids outside the catalog.
	ErrWorkoutNotFound = errors.New("workout not found")
)

// SessionService manages the per-(user, workout) session lifecycle.
// A session moves NoSession -> Active -> Inactive; at most one session is
// active per pair at a time.
type SessionService struct {
	sessions repo.SessionRepo
	catalog  *Catalog
	locks    *locks.PerUser
	now      func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(sessions repo.SessionRepo, catalog *Catalog, userLocks *locks.PerUser) *SessionService {
	return &SessionService{
		sessions: sessions,
		catalog:  catalog,
		locks:    userLocks,
		now:      time.Now,
	}
}

// Start deactivates any active session for the (user, workout) pair and
// creates a fresh active one with an empty completed set.
func (s *SessionService) Start(ctx context.Context, userID uuid.UUID, workoutID string) (model.WorkoutSession, error) {
	if _, ok := s.catalog.ByID(workoutID); !ok {
		return model.WorkoutSession{}, ErrWorkoutNotFound
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.sessions.DeactivateForWorkout(ctx, userID, workoutID); err != nil {
		return model.WorkoutSession{}, fmt.Errorf("failed to deactivate prior sessions: %w", err)
	}

	session := model.WorkoutSession{
		ID:                 uuid.New(),
		UserID:             userID,
		WorkoutID:          workoutID,
		StartedAt:          s.now(),
		CompletedExercises: []string{},
		IsActive:           true,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return model.WorkoutSession{}, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Active returns the active session for the pair, or nil when there is
// none.
func (s *SessionService) Active(ctx context.Context, userID uuid.UUID, workoutID string) (*model.WorkoutSession, error) {
	session, err := s.sessions.ActiveForWorkout(ctx, userID, workoutID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}
	return &session, nil
}

// UpdateProgress replaces the session's completed-exercise set wholesale.
// The session is not required to be active, and the set is not checked
// against the workout's exercise list.
func (s *SessionService) UpdateProgress(ctx context.Context, userID, sessionID uuid.UUID, completedExercises []string) (model.WorkoutSession, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	session, err := s.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.WorkoutSession{}, ErrSessionNotFound
		}
		return model.WorkoutSession{}, fmt.Errorf("failed to look up session: %w", err)
	}

	if completedExercises == nil {
		completedExercises = []string{}
	}
	session.CompletedExercises = completedExercises
	if err := s.sessions.Update(ctx, session); err != nil {
		return model.WorkoutSession{}, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

// CompletionPercent derives the completion percentage for a workout from
// its active session: round(100 * completed / total). It is 0 when there
// is no active session or the workout has no exercises.
func (s *SessionService) CompletionPercent(ctx context.Context, userID uuid.UUID, workoutID string, totalExercises int) (int, error) {
	if totalExercises == 0 {
		return 0, nil
	}
	session, err := s.Active(ctx, userID, workoutID)
	if err != nil {
		return 0, err
	}
	if session == nil {
		return 0, nil
	}
	ratio := float64(len(session.CompletedExercises)) / float64(totalExercises)
	return int(math.Round(ratio * 100)), nil
}
