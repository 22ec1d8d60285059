package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/forma/server/internal/model"
)

type pgStatsRepo struct {
	db *sql.DB
}

// NewPgStatsRepo creates a Postgres-backed StatsRepo.
func NewPgStatsRepo(db *sql.DB) StatsRepo {
	return &pgStatsRepo{db: db}
}

func (r *pgStatsRepo) Create(ctx context.Context, userID uuid.UUID, s model.UserStats) error {
	query := `
		INSERT INTO user_stats (user_id, total_workouts, total_minutes, current_streak, longest_streak, weekly_goal, weekly_progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		userID, s.TotalWorkouts, s.TotalMinutes, s.CurrentStreak, s.LongestStreak, s.WeeklyGoal, s.WeeklyProgress,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stats: %w", err)
	}
	return nil
}

func (r *pgStatsRepo) Get(ctx context.Context, userID uuid.UUID) (model.UserStats, error) {
	query := `
		SELECT total_workouts, total_minutes, current_streak, longest_streak, weekly_goal, weekly_progress
		FROM user_stats
		WHERE user_id = $1
	`
	var s model.UserStats
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.TotalWorkouts, &s.TotalMinutes, &s.CurrentStreak, &s.LongestStreak, &s.WeeklyGoal, &s.WeeklyProgress,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.UserStats{}, ErrNotFound
		}
		return model.UserStats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	return s, nil
}

func (r *pgStatsRepo) Put(ctx context.Context, userID uuid.UUID, s model.UserStats) error {
	query := `
		UPDATE user_stats
		SET total_workouts = $1, total_minutes = $2, current_streak = $3,
		    longest_streak = $4, weekly_goal = $5, weekly_progress = $6
		WHERE user_id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		s.TotalWorkouts, s.TotalMinutes, s.CurrentStreak, s.LongestStreak, s.WeeklyGoal, s.WeeklyProgress, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
