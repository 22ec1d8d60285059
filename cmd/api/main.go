package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/forma/server/internal/auth"
	"github.com/forma/server/internal/config"
	"github.com/forma/server/internal/db"
	httphandler "github.com/forma/server/internal/http"
	"github.com/forma/server/internal/http/handlers"
	"github.com/forma/server/internal/locks"
	"github.com/forma/server/internal/repo"
	"github.com/forma/server/internal/repo/memory"
	"github.com/forma/server/internal/stats"
	"github.com/forma/server/internal/workout"

	_ "github.com/lib/pq"
)

func main() {
	// Load .env from CWD if present (env vars override)
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer cleanup()

	// Shared services
	catalog := workout.NewCatalog()
	userLocks := locks.NewPerUser()
	tokens := auth.NewTokenService(cfg.JWTSecret)
	authService := auth.NewService(store, tokens, catalog.IDs(), cfg.WeeklyGoal)
	sessionService := workout.NewSessionService(store.Sessions, catalog, userLocks)
	planService := workout.NewPlanService(store.Plans, catalog, sessionService)
	statsService := stats.NewService(store.Progress, store.Stats, userLocks)

	// Handlers and router
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(statsService, sessionService, planService, catalog)
	router := httphandler.NewRouter(authHandler, userHandler, tokens, authService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// openStore selects the storage backend: Postgres when DATABASE_URL is
// set, in-memory otherwise.
func openStore(ctx context.Context, cfg *config.Config) (repo.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set; using in-memory storage (state is lost on restart)")
		return memory.NewStore(), func() {}, nil
	}

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return repo.Store{}, nil, err
	}
	if err := runMigrations(database); err != nil {
		_ = database.Close()
		return repo.Store{}, nil, err
	}
	return repo.NewPgStore(database), func() { _ = database.Close() }, nil
}

// runMigrations runs database migrations using goose.
func runMigrations(database *sql.DB) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	migrationDir := "internal/db/migrations"
	if info, err := os.Stat(migrationDir); err != nil || !info.IsDir() {
		return fmt.Errorf("migrations directory not found (run from the repo root)")
	}

	if err := goose.Up(database, migrationDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
