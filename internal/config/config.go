package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	Port        string
	JWTSecret   string
	DatabaseURL string // empty selects the in-memory store
	WeeklyGoal  int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       "8080", // default port
		WeeklyGoal: 5,
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	// JWT_SECRET is required; every token in flight is signed with it.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	cfg.JWTSecret = jwtSecret

	// DATABASE_URL is optional: unset means in-memory storage with no
	// persistence across restarts.
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if goal := os.Getenv("WEEKLY_GOAL"); goal != "" {
		n, err := strconv.Atoi(goal)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("WEEKLY_GOAL must be a positive integer, got %q", goal)
		}
		cfg.WeeklyGoal = n
	}

	return cfg, nil
}
