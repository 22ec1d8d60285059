package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/forma/server/internal/model"
)

type pgProgressRepo struct {
	db *sql.DB
}

// NewPgProgressRepo creates a Postgres-backed ProgressRepo.
func NewPgProgressRepo(db *sql.DB) ProgressRepo {
	return &pgProgressRepo{db: db}
}

func (r *pgProgressRepo) Append(ctx context.Context, p model.WorkoutProgress) error {
	query := `
		INSERT INTO workout_progress (id, user_id, workout_id, completed_at, duration_minutes, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.WorkoutID, p.CompletedAt, p.Duration, p.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert progress entry: %w", err)
	}
	return nil
}

func (r *pgProgressRepo) ListByUser(ctx context.Context, userID uuid.UUID, workoutID string) ([]model.WorkoutProgress, error) {
	query := `
		SELECT id, user_id, workout_id, completed_at, duration_minutes, notes
		FROM workout_progress
		WHERE user_id = $1 AND ($2 = '' OR workout_id = $2)
		ORDER BY completed_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	entries := []model.WorkoutProgress{}
	for rows.Next() {
		var p model.WorkoutProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.WorkoutID, &p.CompletedAt, &p.Duration, &p.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan progress entry: %w", err)
		}
		entries = append(entries, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate progress: %w", err)
	}
	return entries, nil
}
