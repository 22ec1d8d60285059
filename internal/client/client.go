// Package client is the Go API client used by the forma CLI. It mirrors
// the mobile app's API surface: auth calls fail loud, read calls leave
// empty-state handling to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/forma/server/internal/model"
)

// AuthResponse is the body returned by signup and login.
type AuthResponse struct {
	User   model.User       `json:"user"`
	Tokens model.AuthTokens `json:"tokens"`
}

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Client talks to the forma API server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches an access token to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, name, email, password string) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &out)
	return out, err
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out)
	return out, err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &out)
	return out, err
}

// Stats returns the user's rolling counters.
func (c *Client) Stats(ctx context.Context, userID uuid.UUID) (model.UserStats, error) {
	var out model.UserStats
	err := c.do(ctx, http.MethodGet, "/api/users/"+userID.String()+"/stats", nil, &out)
	return out, err
}

// ActivePlan returns the user's active plan, or nil.
func (c *Client) ActivePlan(ctx context.Context, userID uuid.UUID) (*model.WorkoutPlan, error) {
	var out *model.WorkoutPlan
	err := c.do(ctx, http.MethodGet, "/api/users/"+userID.String()+"/active-plan", nil, &out)
	return out, err
}

// RecommendedWorkouts returns the recommended catalog subset.
func (c *Client) RecommendedWorkouts(ctx context.Context, userID uuid.UUID) ([]model.Workout, error) {
	var out []model.Workout
	err := c.do(ctx, http.MethodGet, "/api/users/"+userID.String()+"/recommended-workouts", nil, &out)
	return out, err
}

// Progress returns the user's workout log, optionally filtered.
func (c *Client) Progress(ctx context.Context, userID uuid.UUID, workoutID string) ([]model.WorkoutProgress, error) {
	path := "/api/users/" + userID.String() + "/progress"
	if workoutID != "" {
		path += "?workoutId=" + url.QueryEscape(workoutID)
	}
	var out []model.WorkoutProgress
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// LogWorkout appends a progress entry.
func (c *Client) LogWorkout(ctx context.Context, userID uuid.UUID, workoutID string, duration int, notes string) (model.WorkoutProgress, error) {
	body := map[string]interface{}{"workoutId": workoutID, "duration": duration, "notes": notes}
	var out model.WorkoutProgress
	err := c.do(ctx, http.MethodPost, "/api/users/"+userID.String()+"/progress", body, &out)
	return out, err
}

// StartSession starts a fresh session for a workout.
func (c *Client) StartSession(ctx context.Context, userID uuid.UUID, workoutID string) (model.WorkoutSession, error) {
	body := map[string]string{"workoutId": workoutID}
	var out model.WorkoutSession
	err := c.do(ctx, http.MethodPost, "/api/users/"+userID.String()+"/sessions/start", body, &out)
	return out, err
}

// ActiveSession returns the active session for a workout, or nil.
func (c *Client) ActiveSession(ctx context.Context, userID uuid.UUID, workoutID string) (*model.WorkoutSession, error) {
	var out *model.WorkoutSession
	err := c.do(ctx, http.MethodGet, "/api/users/"+userID.String()+"/sessions/"+url.PathEscape(workoutID), nil, &out)
	return out, err
}

// UpdateSession replaces a session's completed-exercise set.
func (c *Client) UpdateSession(ctx context.Context, userID, sessionID uuid.UUID, completedExercises []string) (model.WorkoutSession, error) {
	body := map[string][]string{"completedExercises": completedExercises}
	var out model.WorkoutSession
	err := c.do(ctx, http.MethodPut, "/api/users/"+userID.String()+"/sessions/"+sessionID.String(), body, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
