package tests

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forma/server/internal/auth"
	httphandler "github.com/forma/server/internal/http"
	"github.com/forma/server/internal/http/handlers"
	"github.com/forma/server/internal/locks"
	"github.com/forma/server/internal/repo/memory"
	"github.com/forma/server/internal/stats"
	"github.com/forma/server/internal/workout"
)

const (
	testJWTSecret  = "integration-test-secret"
	testWeeklyGoal = 5
)

// testServer wires the full router over the in-memory store, the same
// assembly the binary uses when DATABASE_URL is unset. Each call gets a
// fresh store, so tests are isolated without any teardown.
type testServer struct {
	Server *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	catalog := workout.NewCatalog()
	userLocks := locks.NewPerUser()

	tokens := auth.NewTokenService(testJWTSecret)
	authService := auth.NewService(store, tokens, catalog.IDs(), testWeeklyGoal)
	sessionService := workout.NewSessionService(store.Sessions, catalog, userLocks)
	planService := workout.NewPlanService(store.Plans, catalog, sessionService)
	statsService := stats.NewService(store.Progress, store.Stats, userLocks)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(statsService, sessionService, planService, catalog)

	router := httphandler.NewRouter(authHandler, userHandler, tokens, authService)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{Server: server}
}

func (s *testServer) BaseURL() string { return s.Server.URL }

// readBody reads and returns the response body (consumes it). Use for error messages only.
func readBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}
