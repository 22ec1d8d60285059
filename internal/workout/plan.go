package workout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/forma/server/internal/model"
	"github.com/forma/server/internal/repo"
)

// PlanService assembles a user's active plan: the stored record expanded
// with catalog workouts, each decorated with its live completion
// percentage.
type PlanService struct {
	plans    repo.PlanRepo
	catalog  *Catalog
	sessions *SessionService
}

// NewPlanService creates a new plan service.
func NewPlanService(plans repo.PlanRepo, catalog *Catalog, sessions *SessionService) *PlanService {
	return &PlanService{plans: plans, catalog: catalog, sessions: sessions}
}

// Active returns the user's active plan, or nil when there is none.
func (s *PlanService) Active(ctx context.Context, userID uuid.UUID) (*model.WorkoutPlan, error) {
	record, err := s.plans.ActiveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up active plan: %w", err)
	}

	workouts := make([]model.Workout, 0, len(record.WorkoutIDs))
	for _, id := range record.WorkoutIDs {
		w, ok := s.catalog.ByID(id)
		if !ok {
			// Plans only ever reference catalog ids; skip anything stale.
			continue
		}
		pct, err := s.sessions.CompletionPercent(ctx, userID, w.ID, len(w.Exercises))
		if err != nil {
			return nil, err
		}
		w.ProgressPercentage = pct
		workouts = append(workouts, w)
	}

	plan := &model.WorkoutPlan{
		ID:          record.ID,
		UserID:      record.UserID,
		Title:       record.Title,
		Description: record.Description,
		Workouts:    workouts,
		StartDate:   record.StartDate,
		EndDate:     record.EndDate,
		IsActive:    record.IsActive,
	}
	return plan, nil
}
