package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account holder. The password hash lives in the
// repository layer and is never part of this type.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthTokens is the pair of signed JWTs returned on signup and login.
// Both are stateless; the server keeps no record of issued tokens.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Difficulty grades a workout.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Exercise is one step of a workout. It has no lifecycle of its own; it
// exists only inside its parent Workout. The numeric fields are optional
// because an exercise is either timed (Duration) or counted (Sets/Reps).
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Duration    *int   `json:"duration,omitempty"` // seconds
	Sets        *int   `json:"sets,omitempty"`
	Reps        *int   `json:"reps,omitempty"`
	RestTime    *int   `json:"restTime,omitempty"` // seconds
}

// Workout is read-only catalog data, seeded once and shared across users.
type Workout struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Duration    int        `json:"duration"` // minutes
	Difficulty  Difficulty `json:"difficulty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Exercises   []Exercise `json:"exercises"`

	// ProgressPercentage is derived from the active session when the
	// workout is returned inside a plan; zero otherwise.
	ProgressPercentage int `json:"progressPercentage,omitempty"`
}

// WorkoutPlan is a user's ordered program of catalog workouts.
type WorkoutPlan struct {
	ID          string     `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Workouts    []Workout  `json:"workouts"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsActive    bool       `json:"isActive"`
}

// WorkoutSession tracks one attempt at a workout. At most one session is
// active per (user, workout) pair; starting a new one deactivates the old.
type WorkoutSession struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"userId"`
	WorkoutID          string    `json:"workoutId"`
	StartedAt          time.Time `json:"startedAt"`
	CompletedExercises []string  `json:"completedExercises"`
	IsActive           bool      `json:"isActive"`
}

// WorkoutProgress is an append-only log entry for a finished workout.
type WorkoutProgress struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	WorkoutID   string    `json:"workoutId"`
	CompletedAt time.Time `json:"completedAt"`
	Duration    int       `json:"duration"` // minutes
	Notes       string    `json:"notes,omitempty"`
}

// UserStats holds rolling per-user counters, updated whenever a workout
// is logged. WeeklyProgress is capped at WeeklyGoal and never rolls over.
type UserStats struct {
	TotalWorkouts  int `json:"totalWorkouts"`
	TotalMinutes   int `json:"totalMinutes"`
	CurrentStreak  int `json:"currentStreak"`
	LongestStreak  int `json:"longestStreak"`
	WeeklyGoal     int `json:"weeklyGoal,omitempty"`
	WeeklyProgress int `json:"weeklyProgress"`
}
