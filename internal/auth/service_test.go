package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forma/server/internal/auth"
	"github.com/forma/server/internal/repo/memory"
)

func newService() *auth.Service {
	tokens := auth.NewTokenService("test-jwt-secret-at-least-32-characters-long")
	return auth.NewService(memory.NewStore(), tokens, []string{"1", "2", "3"}, 5)
}

func TestSignupAndLogin(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	user, tokens, err := svc.Signup(ctx, "Ann", "a@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "", user.ID.String())
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "Ann", user.Name)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	// Wrong password fails closed.
	_, _, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Right password resolves to the same account.
	loggedIn, loginTokens, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginTokens.AccessToken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Ann", "a@x.com", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "Other", "a@x.com", "different")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	// The original credentials still work after the rejected signup.
	_, _, err = svc.Login(ctx, "a@x.com", "secret1")
	assert.NoError(t, err)
}

func TestSignupEmailCaseSensitive(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Ann", "a@x.com", "secret1")
	require.NoError(t, err)

	// Exact-match semantics: a different casing is a different account.
	_, _, err = svc.Signup(ctx, "Ann", "A@x.com", "secret1")
	assert.NoError(t, err)
}

func TestSignupOnboardsAccount(t *testing.T) {
	store := memory.NewStore()
	tokens := auth.NewTokenService("test-jwt-secret-at-least-32-characters-long")
	svc := auth.NewService(store, tokens, []string{"1", "2", "3"}, 5)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "Ann", "a@x.com", "secret1")
	require.NoError(t, err)

	// Stats exist immediately and are zeroed, not mock-seeded.
	st, err := store.Stats.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, st.TotalWorkouts)
	assert.Equal(t, 0, st.TotalMinutes)
	assert.Equal(t, 5, st.WeeklyGoal)
	assert.Equal(t, 0, st.WeeklyProgress)

	// The starter plan is active and references the seeded workouts.
	plan, err := store.Plans.ActiveForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, plan.IsActive)
	assert.Equal(t, []string{"1", "2", "3"}, plan.WorkoutIDs)
	assert.Equal(t, "Beginner Fitness Journey", plan.Title)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newService()
	_, _, err := svc.Login(context.Background(), "nobody@x.com", "whatever")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestValidateUser(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "Ann", "a@x.com", "secret1")
	require.NoError(t, err)

	resolved, err := svc.ValidateUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resolved.Email)
}
