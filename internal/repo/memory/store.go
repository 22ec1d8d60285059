// Package memory implements the repositories over process-local maps.
// It is the default store when no DATABASE_URL is configured and the
// store every test runs against.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/forma/server/internal/model"
	"github.com/forma/server/internal/repo"
)

// NewStore returns a Store with every repository backed by memory.
func NewStore() repo.Store {
	return repo.Store{
		Users:    NewUserRepo(),
		Plans:    NewPlanRepo(),
		Sessions: NewSessionRepo(),
		Progress: NewProgressRepo(),
		Stats:    NewStatsRepo(),
	}
}

type userRecord struct {
	user model.User
	hash []byte
}

// UserRepo is an in-memory repo.UserRepo.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]userRecord
	byEmail map[string]uuid.UUID
}

// NewUserRepo returns an empty in-memory user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[uuid.UUID]userRecord),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepo) Create(_ context.Context, user model.User, passwordHash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	hash := make([]byte, len(passwordHash))
	copy(hash, passwordHash)
	r.byID[user.ID] = userRecord{user: user, hash: hash}
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	r.mu.RLock()
	rec, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return model.User{}, repo.ErrNotFound
	}
	return rec.user, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (model.User, []byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return model.User{}, nil, repo.ErrNotFound
	}
	rec := r.byID[id]
	return rec.user, rec.hash, nil
}

// PlanRepo is an in-memory repo.PlanRepo.
type PlanRepo struct {
	mu    sync.RWMutex
	plans map[uuid.UUID][]repo.PlanRecord
}

// NewPlanRepo returns an empty in-memory plan repository.
func NewPlanRepo() *PlanRepo {
	return &PlanRepo{plans: make(map[uuid.UUID][]repo.PlanRecord)}
}

func (r *PlanRepo) Create(_ context.Context, plan repo.PlanRecord) error {
	r.mu.Lock()
	r.plans[plan.UserID] = append(r.plans[plan.UserID], plan)
	r.mu.Unlock()
	return nil
}

func (r *PlanRepo) ActiveForUser(_ context.Context, userID uuid.UUID) (repo.PlanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, plan := range r.plans[userID] {
		if plan.IsActive {
			return plan, nil
		}
	}
	return repo.PlanRecord{}, repo.ErrNotFound
}

// SessionRepo is an in-memory repo.SessionRepo.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]model.WorkoutSession
}

// NewSessionRepo returns an empty in-memory session repository.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[uuid.UUID][]model.WorkoutSession)}
}

func (r *SessionRepo) Create(_ context.Context, s model.WorkoutSession) error {
	r.mu.Lock()
	r.sessions[s.UserID] = append(r.sessions[s.UserID], s)
	r.mu.Unlock()
	return nil
}

func (r *SessionRepo) GetByID(_ context.Context, userID, sessionID uuid.UUID) (model.WorkoutSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions[userID] {
		if s.ID == sessionID {
			return s, nil
		}
	}
	return model.WorkoutSession{}, repo.ErrNotFound
}

func (r *SessionRepo) ActiveForWorkout(_ context.Context, userID uuid.UUID, workoutID string) (model.WorkoutSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions[userID] {
		if s.WorkoutID == workoutID && s.IsActive {
			return s, nil
		}
	}
	return model.WorkoutSession{}, repo.ErrNotFound
}

func (r *SessionRepo) DeactivateForWorkout(_ context.Context, userID uuid.UUID, workoutID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sessions[userID]
	for i := range list {
		if list[i].WorkoutID == workoutID && list[i].IsActive {
			list[i].IsActive = false
		}
	}
	return nil
}

func (r *SessionRepo) Update(_ context.Context, s model.WorkoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sessions[s.UserID]
	for i := range list {
		if list[i].ID == s.ID {
			list[i] = s
			return nil
		}
	}
	return repo.ErrNotFound
}

// ProgressRepo is an in-memory repo.ProgressRepo.
type ProgressRepo struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]model.WorkoutProgress
}

// NewProgressRepo returns an empty in-memory progress repository.
func NewProgressRepo() *ProgressRepo {
	return &ProgressRepo{entries: make(map[uuid.UUID][]model.WorkoutProgress)}
}

func (r *ProgressRepo) Append(_ context.Context, p model.WorkoutProgress) error {
	r.mu.Lock()
	r.entries[p.UserID] = append(r.entries[p.UserID], p)
	r.mu.Unlock()
	return nil
}

func (r *ProgressRepo) ListByUser(_ context.Context, userID uuid.UUID, workoutID string) ([]model.WorkoutProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.WorkoutProgress{}
	for _, p := range r.entries[userID] {
		if workoutID == "" || p.WorkoutID == workoutID {
			out = append(out, p)
		}
	}
	return out, nil
}

// StatsRepo is an in-memory repo.StatsRepo.
type StatsRepo struct {
	mu    sync.RWMutex
	stats map[uuid.UUID]model.UserStats
}

// NewStatsRepo returns an empty in-memory stats repository.
func NewStatsRepo() *StatsRepo {
	return &StatsRepo{stats: make(map[uuid.UUID]model.UserStats)}
}

func (r *StatsRepo) Create(_ context.Context, userID uuid.UUID, s model.UserStats) error {
	r.mu.Lock()
	r.stats[userID] = s
	r.mu.Unlock()
	return nil
}

func (r *StatsRepo) Get(_ context.Context, userID uuid.UUID) (model.UserStats, error) {
	r.mu.RLock()
	s, ok := r.stats[userID]
	r.mu.RUnlock()
	if !ok {
		return model.UserStats{}, repo.ErrNotFound
	}
	return s, nil
}

func (r *StatsRepo) Put(_ context.Context, userID uuid.UUID, s model.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stats[userID]; !ok {
		return repo.ErrNotFound
	}
	r.stats[userID] = s
	return nil
}
