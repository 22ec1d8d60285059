package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forma/server/internal/model"
	"github.com/forma/server/internal/repo"
)

var (
	// ErrEmailTaken is returned by Signup when the email is already
	// registered. Matching is case-sensitive exact.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned by Login for an unknown email or
	// a wrong password, indistinguishably.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service orchestrates signup, login, and token-subject resolution.
// Signup also onboards the account: the zeroed stats record and the
// starter plan are created here, not lazily inside getters.
type Service struct {
	users      repo.UserRepo
	stats      repo.StatsRepo
	plans      repo.PlanRepo
	tokens     *TokenService
	weeklyGoal int
	starter    []string // catalog workout ids for the starter plan
	now        func() time.Time
}

// NewService creates a new auth service. starterWorkoutIDs are the catalog
// workouts seeded into every new account's plan.
func NewService(store repo.Store, tokens *TokenService, starterWorkoutIDs []string, weeklyGoal int) *Service {
	return &Service{
		users:      store.Users,
		stats:      store.Stats,
		plans:      store.Plans,
		tokens:     tokens,
		weeklyGoal: weeklyGoal,
		starter:    starterWorkoutIDs,
		now:        time.Now,
	}
}

// Signup registers a new account and issues its first token pair.
func (s *Service) Signup(ctx context.Context, name, email, password string) (model.User, model.AuthTokens, error) {
	if _, _, err := s.users.GetByEmail(ctx, email); err == nil {
		return model.User{}, model.AuthTokens{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.User{}, model.AuthTokens{}, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return model.User{}, model.AuthTokens{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := model.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user, hash); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return model.User{}, model.AuthTokens{}, ErrEmailTaken
		}
		return model.User{}, model.AuthTokens{}, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.onboard(ctx, user.ID, now); err != nil {
		return model.User{}, model.AuthTokens{}, err
	}

	tokens, err := s.tokens.IssueTokens(user.ID, user.Email)
	if err != nil {
		return model.User{}, model.AuthTokens{}, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return user, tokens, nil
}

// onboard creates the account's stats record and starter plan.
func (s *Service) onboard(ctx context.Context, userID uuid.UUID, now time.Time) error {
	stats := model.UserStats{WeeklyGoal: s.weeklyGoal}
	if err := s.stats.Create(ctx, userID, stats); err != nil {
		return fmt.Errorf("failed to create stats: %w", err)
	}

	plan := repo.PlanRecord{
		ID:          "plan-" + uuid.NewString(),
		UserID:      userID,
		Title:       "Beginner Fitness Journey",
		Description: "4-week program to build strength and endurance",
		WorkoutIDs:  append([]string(nil), s.starter...),
		StartDate:   now,
		IsActive:    true,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return fmt.Errorf("failed to create starter plan: %w", err)
	}
	return nil
}

// Login authenticates an existing account and issues a fresh token pair.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, model.AuthTokens, error) {
	user, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.User{}, model.AuthTokens{}, ErrInvalidCredentials
		}
		return model.User{}, model.AuthTokens{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !CheckPassword(hash, password) {
		return model.User{}, model.AuthTokens{}, ErrInvalidCredentials
	}

	tokens, err := s.tokens.IssueTokens(user.ID, user.Email)
	if err != nil {
		return model.User{}, model.AuthTokens{}, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return user, tokens, nil
}

// ValidateUser resolves a token's subject claim into a user record.
// Returns repo.ErrNotFound when the subject no longer exists.
func (s *Service) ValidateUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	return s.users.GetByID(ctx, userID)
}
