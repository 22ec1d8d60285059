package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type pgPlanRepo struct {
	db *sql.DB
}

// NewPgPlanRepo creates a Postgres-backed PlanRepo.
func NewPgPlanRepo(db *sql.DB) PlanRepo {
	return &pgPlanRepo{db: db}
}

func (r *pgPlanRepo) Create(ctx context.Context, plan PlanRecord) error {
	query := `
		INSERT INTO workout_plans (id, user_id, title, description, workout_ids, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		plan.ID, plan.UserID, plan.Title, plan.Description,
		pq.Array(plan.WorkoutIDs), plan.StartDate, plan.EndDate, plan.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

func (r *pgPlanRepo) ActiveForUser(ctx context.Context, userID uuid.UUID) (PlanRecord, error) {
	query := `
		SELECT id, user_id, title, description, workout_ids, start_date, end_date, is_active
		FROM workout_plans
		WHERE user_id = $1 AND is_active
		ORDER BY start_date DESC
		LIMIT 1
	`
	var plan PlanRecord
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&plan.ID, &plan.UserID, &plan.Title, &plan.Description,
		pq.Array(&plan.WorkoutIDs), &plan.StartDate, &plan.EndDate, &plan.IsActive,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return PlanRecord{}, ErrNotFound
		}
		return PlanRecord{}, fmt.Errorf("failed to query active plan: %w", err)
	}
	return plan, nil
}
