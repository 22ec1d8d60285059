package workout_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forma/server/internal/locks"
	"github.com/forma/server/internal/repo/memory"
	"github.com/forma/server/internal/workout"
)

func newSessionService() (*workout.SessionService, *memory.SessionRepo) {
	sessions := memory.NewSessionRepo()
	svc := workout.NewSessionService(sessions, workout.NewCatalog(), locks.NewPerUser())
	return svc, sessions
}

func TestStartSession(t *testing.T) {
	svc, _ := newSessionService()
	ctx := context.Background()
	userID := uuid.New()

	session, err := svc.Start(ctx, userID, "1")
	require.NoError(t, err)
	assert.True(t, session.IsActive)
	assert.Equal(t, "1", session.WorkoutID)
	assert.Empty(t, session.CompletedExercises)
	assert.False(t, session.StartedAt.IsZero())
}

func TestStartSessionUnknownWorkout(t *testing.T) {
	svc, _ := newSessionService()
	_, err := svc.Start(context.Background(), uuid.New(), "missing")
	assert.ErrorIs(t, err, workout.ErrWorkoutNotFound)
}

func TestStartSessionDeactivatesPrior(t *testing.T) {
	svc, sessions := newSessionService()
	ctx := context.Background()
	userID := uuid.New()

	s1, err := svc.Start(ctx, userID, "1")
	require.NoError(t, err)

	s2, err := svc.Start(ctx, userID, "1")
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID, s2.ID)

	// Exactly one active session remains, and it is the newer one.
	active, err := svc.Active(ctx, userID, "1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, s2.ID, active.ID)

	old, err := sessions.GetByID(ctx, userID, s1.ID)
	require.NoError(t, err)
	assert.False(t, old.IsActive)
}

func TestStartSessionPerWorkoutIsolation(t *testing.T) {
	svc, _ := newSessionService()
	ctx := context.Background()
	userID := uuid.New()

	s1, err := svc.Start(ctx, userID, "1")
	require.NoError(t, err)
	_, err = svc.Start(ctx, userID, "2")
	require.NoError(t, err)

	// Starting workout 2 must not touch workout 1's session.
	active, err := svc.Active(ctx, userID, "1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, s1.ID, active.ID)
}

func TestActiveNoSession(t *testing.T) {
	svc, _ := newSessionService()
	active, err := svc.Active(context.Background(), uuid.New(), "1")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestUpdateProgress(t *testing.T) {
	svc, _ := newSessionService()
	ctx := context.Background()
	userID := uuid.New()

	session, err := svc.Start(ctx, userID, "1")
	require.NoError(t, err)

	updated, err := svc.UpdateProgress(ctx, userID, session.ID, []string{"e1", "e2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2"}, updated.CompletedExercises)

	// Replacement is wholesale, not additive.
	updated, err = svc.UpdateProgress(ctx, userID, session.ID, []string{"e3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"e3"}, updated.CompletedExercises)
}

func TestUpdateProgressUnknownSession(t *testing.T) {
	svc, _ := newSessionService()
	_, err := svc.UpdateProgress(context.Background(), uuid.New(), uuid.New(), []string{"e1"})
	assert.ErrorIs(t, err, workout.ErrSessionNotFound)
}

func TestCompletionPercent(t *testing.T) {
	svc, _ := newSessionService()
	ctx := context.Background()
	userID := uuid.New()

	// No active session: 0.
	pct, err := svc.CompletionPercent(ctx, userID, "1", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, pct)

	// Zero exercises: 0, regardless of session state.
	pct, err = svc.CompletionPercent(ctx, userID, "1", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pct)

	session, err := svc.Start(ctx, userID, "1")
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, userID, session.ID, []string{"e1", "e2"})
	require.NoError(t, err)
	pct, err = svc.CompletionPercent(ctx, userID, "1", 5)
	require.NoError(t, err)
	assert.Equal(t, 40, pct)

	// Full coverage is exactly 100, order irrelevant.
	_, err = svc.UpdateProgress(ctx, userID, session.ID, []string{"e5", "e3", "e1", "e4", "e2"})
	require.NoError(t, err)
	pct, err = svc.CompletionPercent(ctx, userID, "1", 5)
	require.NoError(t, err)
	assert.Equal(t, 100, pct)
}

func TestCompletionPercentRounds(t *testing.T) {
	svc, _ := newSessionService()
	ctx := context.Background()
	userID := uuid.New()

	session, err := svc.Start(ctx, userID, "1")
	require.NoError(t, err)
	_, err = svc.UpdateProgress(ctx, userID, session.ID, []string{"e1"})
	require.NoError(t, err)

	// 1/3 of the exercises rounds to 33.
	pct, err := svc.CompletionPercent(ctx, userID, "1", 3)
	require.NoError(t, err)
	assert.Equal(t, 33, pct)

	// 2/3 rounds to 67.
	_, err = svc.UpdateProgress(ctx, userID, session.ID, []string{"e1", "e2"})
	require.NoError(t, err)
	pct, err = svc.CompletionPercent(ctx, userID, "1", 3)
	require.NoError(t, err)
	assert.Equal(t, 67, pct)
}
