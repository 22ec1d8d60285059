package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/forma/server/internal/model"
)

type pgSessionRepo struct {
	db *sql.DB
}

// NewPgSessionRepo creates a Postgres-backed SessionRepo.
func NewPgSessionRepo(db *sql.DB) SessionRepo {
	return &pgSessionRepo{db: db}
}

func (r *pgSessionRepo) Create(ctx context.Context, s model.WorkoutSession) error {
	query := `
		INSERT INTO workout_sessions (id, user_id, workout_id, started_at, completed_exercises, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.WorkoutID, s.StartedAt, pq.Array(s.CompletedExercises), s.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *pgSessionRepo) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (model.WorkoutSession, error) {
	query := `
		SELECT id, user_id, workout_id, started_at, completed_exercises, is_active
		FROM workout_sessions
		WHERE id = $1 AND user_id = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, sessionID, userID))
}

func (r *pgSessionRepo) ActiveForWorkout(ctx context.Context, userID uuid.UUID, workoutID string) (model.WorkoutSession, error) {
	query := `
		SELECT id, user_id, workout_id, started_at, completed_exercises, is_active
		FROM workout_sessions
		WHERE user_id = $1 AND workout_id = $2 AND is_active
		ORDER BY started_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, workoutID))
}

func (r *pgSessionRepo) DeactivateForWorkout(ctx context.Context, userID uuid.UUID, workoutID string) error {
	query := `
		UPDATE workout_sessions
		SET is_active = FALSE
		WHERE user_id = $1 AND workout_id = $2 AND is_active
	`
	if _, err := r.db.ExecContext(ctx, query, userID, workoutID); err != nil {
		return fmt.Errorf("failed to deactivate sessions: %w", err)
	}
	return nil
}

func (r *pgSessionRepo) Update(ctx context.Context, s model.WorkoutSession) error {
	query := `
		UPDATE workout_sessions
		SET completed_exercises = $1, is_active = $2
		WHERE id = $3 AND user_id = $4
	`
	res, err := r.db.ExecContext(ctx, query, pq.Array(s.CompletedExercises), s.IsActive, s.ID, s.UserID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
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

func (r *pgSessionRepo) scanOne(row *sql.Row) (model.WorkoutSession, error) {
	var s model.WorkoutSession
	err := row.Scan(
		&s.ID, &s.UserID, &s.WorkoutID, &s.StartedAt, pq.Array(&s.CompletedExercises), &s.IsActive,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.WorkoutSession{}, ErrNotFound
		}
		return model.WorkoutSession{}, fmt.Errorf("failed to scan session: %w", err)
	}
	if s.CompletedExercises == nil {
		s.CompletedExercises = []string{}
	}
	return s, nil
}
