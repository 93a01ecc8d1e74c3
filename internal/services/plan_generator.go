package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/lock"
	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/google/uuid"
)

var ErrGenerationInProgress = errors.New("plan generation already in progress")

// PlanGenerator produces coaching content. Implementations never fail; they
// return fallback text instead.
type PlanGenerator interface {
	GenerateStarterPlans(ctx context.Context, user models.User) (workout string, diet string)
	RegenerateDietPlan(ctx context.Context, user models.User) string
	GenerateFitnessAdvice(ctx context.Context, query string, userContext string) string
}

const DefaultGenerationLockTTL = 2 * time.Minute

// generationGuard allows one generation per user at a time.
type generationGuard struct {
	locker lock.Locker
	ttl    time.Duration
}

func (guard generationGuard) acquire(ctx context.Context, userID string) (func(), error) {
	release, err := guard.locker.Acquire(ctx, "generate:"+userID, guard.ttl)
	if errors.Is(err, lock.ErrHeld) {
		return nil, ErrGenerationInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("acquire generation lock: %w", err)
	}
	return release, nil
}

// NeedsStarterPlans is keyed on the workout plan only; a custom workout is
// never replaced because the diet is still pending.
func NeedsStarterPlans(user models.User) bool {
	return models.PlanIsPending(user.WorkoutPlan)
}

func appendPlanHistory(user *models.User, planType string, content string, at time.Time) {
	user.PlanHistory = append(user.PlanHistory, models.PlanHistoryEntry{
		ID:      uuid.NewString(),
		Date:    at,
		Type:    planType,
		Content: content,
	})
}

func applyStarterPlans(user *models.User, workout string, diet string, at time.Time) {
	user.WorkoutPlan = workout
	user.DietPlan = diet
	appendPlanHistory(user, models.PlanTypeWorkout, workout, at)
	appendPlanHistory(user, models.PlanTypeDiet, diet, at)
}
