package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/forma/server/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by UserRepo.Create on an email collision.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepo persists users together with their password hash. The hash is
// write-once and only ever surfaces through GetByEmail for verification.
type UserRepo interface {
	Create(ctx context.Context, user model.User, passwordHash []byte) error
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, []byte, error)
}

// PlanRecord is the storage shape of a workout plan. It references catalog
// workouts by id; the workout service expands them into full workouts.
type PlanRecord struct {
	ID          string
	UserID      uuid.UUID
	Title       string
	Description string
	WorkoutIDs  []string
	StartDate   time.Time
	EndDate     *time.Time
	IsActive    bool
}

// PlanRepo persists workout plans.
type PlanRepo interface {
	Create(ctx context.Context, plan PlanRecord) error
	ActiveForUser(ctx context.Context, userID uuid.UUID) (PlanRecord, error)
}

// SessionRepo persists workout sessions. Lookups are always scoped to a
// user; sessions are never visible across users.
type SessionRepo interface {
	Create(ctx context.Context, s model.WorkoutSession) error
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (model.WorkoutSession, error)
	ActiveForWorkout(ctx context.Context, userID uuid.UUID, workoutID string) (model.WorkoutSession, error)
	DeactivateForWorkout(ctx context.Context, userID uuid.UUID, workoutID string) error
	Update(ctx context.Context, s model.WorkoutSession) error
}

// ProgressRepo persists the append-only workout log. Entries are immutable
// once appended.
type ProgressRepo interface {
	Append(ctx context.Context, p model.WorkoutProgress) error
	// ListByUser returns the user's entries, filtered to workoutID when
	// it is non-empty.
	ListByUser(ctx context.Context, userID uuid.UUID, workoutID string) ([]model.WorkoutProgress, error)
}

// StatsRepo persists one stats record per user.
type StatsRepo interface {
	Create(ctx context.Context, userID uuid.UUID, s model.UserStats) error
	Get(ctx context.Context, userID uuid.UUID) (model.UserStats, error)
	Put(ctx context.Context, userID uuid.UUID, s model.UserStats) error
}

// Store bundles the repositories so main can wire either backend in one go.
type Store struct {
	Users    UserRepo
	Plans    PlanRepo
	Sessions SessionRepo
	Progress ProgressRepo
	Stats    StatsRepo
}

// NewPgStore returns a Store with all repositories backed by Postgres.
func NewPgStore(db *sql.DB) Store {
	return Store{
		Users:    NewPgUserRepo(db),
		Plans:    NewPgPlanRepo(db),
		Sessions: NewPgSessionRepo(db),
		Progress: NewPgProgressRepo(db),
		Stats:    NewPgStatsRepo(db),
	}
}
