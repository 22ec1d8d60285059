// Package stats maintains the per-user rolling counters and the
// append-only workout log.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forma/server/internal/locks"
	"github.com/forma/server/internal/model"
	"github.com/forma/server/internal/repo"
)

// DefaultWeeklyGoal applies when a stats record carries no goal.
const DefaultWeeklyGoal = 5

// Service reads and updates user stats. LogWorkout's read-modify-write
// runs under the user's lock so two concurrent logs cannot lose an
// increment.
type Service struct {
	progress repo.ProgressRepo
	stats    repo.StatsRepo
	locks    *locks.PerUser
	now      func() time.Time
}

// NewService creates a new stats service.
func NewService(progress repo.ProgressRepo, statsRepo repo.StatsRepo, userLocks *locks.PerUser) *Service {
	return &Service{
		progress: progress,
		stats:    statsRepo,
		locks:    userLocks,
		now:      time.Now,
	}
}

// Get returns the user's stats record. Accounts onboarded at signup
// always have one; a zero record is returned for ids created before
// onboarding existed.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (model.UserStats, error) {
	st, err := s.stats.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.UserStats{WeeklyGoal: DefaultWeeklyGoal}, nil
		}
		return model.UserStats{}, fmt.Errorf("failed to load stats: %w", err)
	}
	return st, nil
}

// LogWorkoutInput is the caller-supplied part of a progress entry.
type LogWorkoutInput struct {
	WorkoutID   string
	Duration    int // minutes
	Notes       string
	CompletedAt time.Time // zero means now
}

// LogWorkout appends a progress entry and applies the stat increments:
// totalWorkouts +1, totalMinutes +duration, weeklyProgress +1 capped at
// the weekly goal. Weekly progress never rolls over to a new week.
func (s *Service) LogWorkout(ctx context.Context, userID uuid.UUID, in LogWorkoutInput) (model.WorkoutProgress, error) {
	completedAt := in.CompletedAt
	if completedAt.IsZero() {
		completedAt = s.now()
	}
	entry := model.WorkoutProgress{
		ID:          uuid.New(),
		UserID:      userID,
		WorkoutID:   in.WorkoutID,
		CompletedAt: completedAt,
		Duration:    in.Duration,
		Notes:       in.Notes,
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.progress.Append(ctx, entry); err != nil {
		return model.WorkoutProgress{}, fmt.Errorf("failed to append progress: %w", err)
	}

	st, err := s.stats.Get(ctx, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return model.WorkoutProgress{}, fmt.Errorf("failed to load stats: %w", err)
	}
	created := errors.Is(err, repo.ErrNotFound)

	goal := st.WeeklyGoal
	if goal == 0 {
		goal = DefaultWeeklyGoal
		st.WeeklyGoal = goal
	}
	st.TotalWorkouts++
	st.TotalMinutes += in.Duration
	if st.WeeklyProgress < goal {
		st.WeeklyProgress++
	}

	if created {
		err = s.stats.Create(ctx, userID, st)
	} else {
		err = s.stats.Put(ctx, userID, st)
	}
	if err != nil {
		return model.WorkoutProgress{}, fmt.Errorf("failed to store stats: %w", err)
	}
	return entry, nil
}

// Progress returns the user's log, filtered to a workout when workoutID
// is non-empty.
func (s *Service) Progress(ctx context.Context, userID uuid.UUID, workoutID string) ([]model.WorkoutProgress, error) {
	entries, err := s.progress.ListByUser(ctx, userID, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return entries, nil
}
