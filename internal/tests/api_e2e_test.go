package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forma/server/internal/model"
)

// authResponse matches the signup and login response bodies.
type authResponse struct {
	User   model.User       `json:"user"`
	Tokens model.AuthTokens `json:"tokens"`
}

// errorResponse matches the error JSON body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// apiClient wraps the httptest client with JSON helpers and a bearer token.
type apiClient struct {
	t      *testing.T
	base   string
	client *http.Client
	token  string
}

func newAPIClient(t *testing.T, ts *testServer) *apiClient {
	return &apiClient{t: t, base: ts.BaseURL(), client: ts.Server.Client()}
}

func (c *apiClient) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// mustDecode asserts the status first, with the body in the failure
// message, then unmarshals. readBody consumes the body, so both steps
// work from the same string.
func mustDecode[T any](t *testing.T, resp *http.Response, wantStatus int) T {
	t.Helper()
	body := readBody(resp)
	resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode, "body: %s", body)
	var out T
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

// signup registers an account and attaches the access token to the client.
func (c *apiClient) signup(email, name, password string) authResponse {
	c.t.Helper()
	resp := c.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"email": email, "name": name, "password": password,
	})
	res := mustDecode[authResponse](c.t, resp, http.StatusCreated)
	c.token = res.Tokens.AccessToken
	return res
}

func (c *apiClient) userPath(res authResponse, suffix string) string {
	return fmt.Sprintf("/api/users/%s%s", res.User.ID, suffix)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Server.Client().Get(ts.BaseURL() + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]bool](t, resp)
	assert.True(t, body["ok"])
}

func TestSignupAndLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	c := newAPIClient(t, ts)

	signupRes := c.signup("casey@example.com", "Casey", "hunter22")
	assert.Equal(t, "casey@example.com", signupRes.User.Email)
	assert.Equal(t, "Casey", signupRes.User.Name)
	assert.NotEmpty(t, signupRes.Tokens.AccessToken)
	assert.NotEmpty(t, signupRes.Tokens.RefreshToken)
	assert.NotEqual(t, signupRes.Tokens.AccessToken, signupRes.Tokens.RefreshToken)

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		resp := c.do(http.MethodPost, "/api/auth/signup", map[string]string{
			"email": "casey@example.com", "name": "Other", "password": "different",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		res := decode[errorResponse](t, resp)
		assert.Equal(t, "email_taken", res.Code)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		resp := c.do(http.MethodPost, "/api/auth/login", map[string]string{
			"email": "casey@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		res := decode[errorResponse](t, resp)
		assert.Equal(t, "invalid_credentials", res.Code)
	})

	t.Run("unknown email gets the same error as a wrong password", func(t *testing.T) {
		resp := c.do(http.MethodPost, "/api/auth/login", map[string]string{
			"email": "nobody@example.com", "password": "hunter22",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		res := decode[errorResponse](t, resp)
		assert.Equal(t, "invalid_credentials", res.Code)
	})

	t.Run("login returns the same account", func(t *testing.T) {
		resp := c.do(http.MethodPost, "/api/auth/login", map[string]string{
			"email": "casey@example.com", "password": "hunter22",
		})
		res := mustDecode[authResponse](t, resp, http.StatusOK)
		assert.Equal(t, signupRes.User.ID, res.User.ID)
		assert.NotEmpty(t, res.Tokens.AccessToken)
	})

	t.Run("me returns the profile", func(t *testing.T) {
		resp := c.do(http.MethodGet, "/api/me", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		res := decode[model.User](t, resp)
		assert.Equal(t, signupRes.User.ID, res.ID)
		assert.Equal(t, "casey@example.com", res.Email)
	})

	t.Run("invalid signup body", func(t *testing.T) {
		resp := c.do(http.MethodPost, "/api/auth/signup", map[string]string{
			"email": "", "name": "", "password": "",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		res := decode[errorResponse](t, resp)
		assert.Equal(t, "invalid_request", res.Code)
	})
}

func TestAuthBoundaries(t *testing.T) {
	ts := newTestServer(t)
	alice := newAPIClient(t, ts)
	aliceRes := alice.signup("alice@example.com", "Alice", "password1")
	bob := newAPIClient(t, ts)
	bobRes := bob.signup("bob@example.com", "Bob", "password2")

	t.Run("missing token is unauthorized", func(t *testing.T) {
		anon := newAPIClient(t, ts)
		resp := anon.do(http.MethodGet, anon.userPath(aliceRes, "/stats"), nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		res := decode[errorResponse](t, resp)
		assert.Equal(t, "unauthorized", res.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		anon := newAPIClient(t, ts)
		anon.token = "not-a-jwt"
		resp := anon.do(http.MethodGet, "/api/me", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token for someone else's data is forbidden", func(t *testing.T) {
		resp := bob.do(http.MethodGet, bob.userPath(aliceRes, "/stats"), nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		res := decode[errorResponse](t, resp)
		assert.Equal(t, "forbidden", res.Code)
	})

	t.Run("owner access still works", func(t *testing.T) {
		resp := bob.do(http.MethodGet, bob.userPath(bobRes, "/stats"), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestOnboardedAccountState(t *testing.T) {
	ts := newTestServer(t)
	c := newAPIClient(t, ts)
	res := c.signup("dana@example.com", "Dana", "password3")

	t.Run("stats start zeroed with the weekly goal", func(t *testing.T) {
		resp := c.do(http.MethodGet, c.userPath(res, "/stats"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		st := decode[model.UserStats](t, resp)
		assert.Equal(t, 0, st.TotalWorkouts)
		assert.Equal(t, 0, st.TotalMinutes)
		assert.Equal(t, 0, st.WeeklyProgress)
		assert.Equal(t, testWeeklyGoal, st.WeeklyGoal)
	})

	t.Run("starter plan is active", func(t *testing.T) {
		resp := c.do(http.MethodGet, c.userPath(res, "/active-plan"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		plan := decode[model.WorkoutPlan](t, resp)
		assert.Equal(t, "Beginner Fitness Journey", plan.Title)
		assert.True(t, plan.IsActive)
		require.Len(t, plan.Workouts, 3)
		assert.Equal(t, "Full Body Workout", plan.Workouts[0].Title)
		for _, w := range plan.Workouts {
			assert.Equal(t, 0, w.ProgressPercentage)
		}
	})

	t.Run("recommended workouts are shared catalog entries", func(t *testing.T) {
		resp := c.do(http.MethodGet, c.userPath(res, "/recommended-workouts"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		workouts := decode[[]model.Workout](t, resp)
		require.Len(t, workouts, 2)
		assert.Equal(t, "Morning Yoga", workouts[0].Title)
		assert.Equal(t, "HIIT Cardio", workouts[1].Title)
	})
}

func TestSessionLifecycleE2E(t *testing.T) {
	ts := newTestServer(t)
	c := newAPIClient(t, ts)
	res := c.signup("eli@example.com", "Eli", "password4")

	t.Run("no active session before start", func(t *testing.T) {
		resp := c.do(http.MethodGet, c.userPath(res, "/sessions/1"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()
		assert.Equal(t, "null", strings.TrimSpace(readBody(resp)))
	})

	t.Run("unknown workout cannot be started", func(t *testing.T) {
		resp := c.do(http.MethodPost, c.userPath(res, "/sessions/start"), map[string]string{"workoutId": "99"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		errRes := decode[errorResponse](t, resp)
		assert.Equal(t, "workout_not_found", errRes.Code)
	})

	resp := c.do(http.MethodPost, c.userPath(res, "/sessions/start"), map[string]string{"workoutId": "1"})
	first := mustDecode[model.WorkoutSession](t, resp, http.StatusOK)
	assert.True(t, first.IsActive)
	assert.Equal(t, "1", first.WorkoutID)
	assert.Empty(t, first.CompletedExercises)

	t.Run("restart replaces the active session", func(t *testing.T) {
		resp := c.do(http.MethodPost, c.userPath(res, "/sessions/start"), map[string]string{"workoutId": "1"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		second := decode[model.WorkoutSession](t, resp)
		assert.NotEqual(t, first.ID, second.ID)

		resp = c.do(http.MethodGet, c.userPath(res, "/sessions/1"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		active := decode[model.WorkoutSession](t, resp)
		assert.Equal(t, second.ID, active.ID)
		assert.True(t, active.IsActive)
	})

	t.Run("progress update replaces the completed set", func(t *testing.T) {
		resp := c.do(http.MethodGet, c.userPath(res, "/sessions/1"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		active := decode[model.WorkoutSession](t, resp)

		resp = c.do(http.MethodPut, c.userPath(res, "/sessions/"+active.ID.String()), map[string][]string{
			"completedExercises": {"e1", "e2"},
		})
		updated := mustDecode[model.WorkoutSession](t, resp, http.StatusOK)
		assert.Equal(t, []string{"e1", "e2"}, updated.CompletedExercises)

		// The plan view now reflects the active session's progress.
		resp = c.do(http.MethodGet, c.userPath(res, "/active-plan"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		plan := decode[model.WorkoutPlan](t, resp)
		require.Len(t, plan.Workouts, 3)
		// Full Body Workout has five exercises; two completed is 40%.
		assert.Equal(t, 40, plan.Workouts[0].ProgressPercentage)
	})

	t.Run("unknown session id is not found", func(t *testing.T) {
		resp := c.do(http.MethodPut, c.userPath(res, "/sessions/00000000-0000-0000-0000-000000000000"), map[string][]string{
			"completedExercises": {"e1"},
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		errRes := decode[errorResponse](t, resp)
		assert.Equal(t, "session_not_found", errRes.Code)
	})

	t.Run("non-uuid session id is not found", func(t *testing.T) {
		resp := c.do(http.MethodPut, c.userPath(res, "/sessions/not-a-uuid"), map[string][]string{})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestProgressAndStatsE2E(t *testing.T) {
	ts := newTestServer(t)
	c := newAPIClient(t, ts)
	res := c.signup("fran@example.com", "Fran", "password5")

	t.Run("empty log", func(t *testing.T) {
		resp := c.do(http.MethodGet, c.userPath(res, "/progress"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		entries := decode[[]model.WorkoutProgress](t, resp)
		assert.Empty(t, entries)
	})

	t.Run("invalid entries are rejected", func(t *testing.T) {
		resp := c.do(http.MethodPost, c.userPath(res, "/progress"), map[string]any{
			"workoutId": "", "duration": 30,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()

		resp = c.do(http.MethodPost, c.userPath(res, "/progress"), map[string]any{
			"workoutId": "1", "duration": 0,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	resp := c.do(http.MethodPost, c.userPath(res, "/progress"), map[string]any{
		"workoutId": "1", "duration": 45, "notes": "good pace",
	})
	entry := mustDecode[model.WorkoutProgress](t, resp, http.StatusOK)
	assert.Equal(t, "1", entry.WorkoutID)
	assert.Equal(t, 45, entry.Duration)
	assert.Equal(t, "good pace", entry.Notes)
	assert.False(t, entry.CompletedAt.IsZero())

	resp = c.do(http.MethodPost, c.userPath(res, "/progress"), map[string]any{
		"workoutId": "2", "duration": 20,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	t.Run("stats reflect both workouts", func(t *testing.T) {
		resp := c.do(http.MethodGet, c.userPath(res, "/stats"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		st := decode[model.UserStats](t, resp)
		assert.Equal(t, 2, st.TotalWorkouts)
		assert.Equal(t, 65, st.TotalMinutes)
		assert.Equal(t, 2, st.WeeklyProgress)
	})

	t.Run("log filters by workout", func(t *testing.T) {
		resp := c.do(http.MethodGet, c.userPath(res, "/progress?workoutId=1"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		entries := decode[[]model.WorkoutProgress](t, resp)
		require.Len(t, entries, 1)
		assert.Equal(t, "1", entries[0].WorkoutID)
	})

	t.Run("weekly progress caps at the goal", func(t *testing.T) {
		for i := 0; i < 6; i++ {
			resp := c.do(http.MethodPost, c.userPath(res, "/progress"), map[string]any{
				"workoutId": "3", "duration": 10,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			resp.Body.Close()
		}
		resp := c.do(http.MethodGet, c.userPath(res, "/stats"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		st := decode[model.UserStats](t, resp)
		assert.Equal(t, 8, st.TotalWorkouts)
		assert.Equal(t, testWeeklyGoal, st.WeeklyProgress)
	})
}
