package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/lock"
	"github.com/dreambody011-stack/dream--body/internal/models"
)

var (
	ErrPlanAccessLocked = errors.New("subscription inactive or unverified")
	ErrChatQueryEmpty   = errors.New("chat message is empty")
)

type ClientPlans struct {
	WorkoutPlan string                    `json:"workout_plan"`
	DietPlan    string                    `json:"diet_plan"`
	History     []models.PlanHistoryEntry `json:"history"`
}

// ContextBuilder summarises a client for the advice prompt.
type ContextBuilder func(user models.User, now time.Time) string

type PlanService struct {
	users        UserStore
	planner      PlanGenerator
	guard        generationGuard
	buildContext ContextBuilder
}

func NewPlanService(users UserStore, planner PlanGenerator, locker lock.Locker, lockTTL time.Duration, buildContext ContextBuilder) *PlanService {
	if lockTTL <= 0 {
		lockTTL = DefaultGenerationLockTTL
	}
	return &PlanService{
		users:        users,
		planner:      planner,
		guard:        generationGuard{locker: locker, ttl: lockTTL},
		buildContext: buildContext,
	}
}

func (service *PlanService) Plans(userID string, now time.Time) (ClientPlans, error) {
	user, err := findUser(service.users, userID)
	if err != nil {
		return ClientPlans{}, err
	}
	if !HasPlanAccess(user, now) {
		return ClientPlans{}, ErrPlanAccessLocked
	}
	history := user.PlanHistory
	if history == nil {
		history = []models.PlanHistoryEntry{}
	}
	return ClientPlans{WorkoutPlan: user.WorkoutPlan, DietPlan: user.DietPlan, History: history}, nil
}

// RegenerateDiet replaces only the diet plan with a freshly generated one.
func (service *PlanService) RegenerateDiet(ctx context.Context, userID string, now time.Time) (models.User, error) {
	user, err := findUser(service.users, userID)
	if err != nil {
		return models.User{}, err
	}
	if !HasPlanAccess(user, now) {
		return models.User{}, ErrPlanAccessLocked
	}

	release, err := service.guard.acquire(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	defer release()

	diet := service.planner.RegenerateDietPlan(ctx, user)
	return mutateUser(service.users, userID, func(current *models.User) error {
		current.DietPlan = diet
		appendPlanHistory(current, models.PlanTypeDiet, diet, now.UTC())
		return nil
	})
}

// Advice answers a chat question using the client's profile as context.
func (service *PlanService) Advice(ctx context.Context, userID string, query string, now time.Time) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrChatQueryEmpty
	}
	user, err := findUser(service.users, userID)
	if err != nil {
		return "", err
	}
	return service.planner.GenerateFitnessAdvice(ctx, query, service.buildContext(user, now)), nil
}
