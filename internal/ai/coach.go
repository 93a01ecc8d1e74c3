package ai

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
)

const (
	FallbackWorkoutError   = "Error generating workout."
	FallbackDietError      = "Error generating diet."
	FallbackWorkoutMissing = "Workout plan generation failed."
	FallbackDietMissing    = "Diet plan generation failed."
	FallbackRegenError     = "AI error during nutrition update."
	FallbackRegenEmpty     = "Regeneration failed."
	FallbackAdviceError    = "The network is saturated. Please retry."
	FallbackAdviceEmpty    = "I am processing your data. Stand by."
)

// Coach generates plans and advice. It never fails: any transport or model
// error is replaced by a fixed fallback text.
type Coach struct {
	generator TextGenerator
	timeout   time.Duration
	now       func() time.Time
}

func NewCoach(generator TextGenerator, timeout time.Duration) *Coach {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coach{generator: generator, timeout: timeout, now: time.Now}
}

func (coach *Coach) generate(ctx context.Context, operation string, request Request) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, coach.timeout)
	defer cancel()

	text, err := coach.generator.Generate(callCtx, request)
	if err != nil {
		log.Printf("ai %s failed: %v", operation, err)
		return "", false
	}
	return text, true
}

func (coach *Coach) GenerateStarterPlans(ctx context.Context, user models.User) (string, string) {
	text, ok := coach.generate(ctx, "starter plans", Request{
		Prompt:      starterPlansPrompt(user, coach.now()),
		Temperature: starterTemperature,
	})
	if !ok {
		return FallbackWorkoutError, FallbackDietError
	}
	return SplitStarterPlans(text)
}

// SplitStarterPlans separates the workout and diet sections of a combined answer.
func SplitStarterPlans(text string) (string, string) {
	sections := strings.Split(text, PlanSeparator)

	workout := strings.TrimSpace(sections[0])
	if workout == "" {
		workout = FallbackWorkoutMissing
	}
	diet := ""
	if len(sections) > 1 {
		diet = strings.TrimSpace(sections[1])
	}
	if diet == "" {
		diet = FallbackDietMissing
	}
	return workout, diet
}

func (coach *Coach) RegenerateDietPlan(ctx context.Context, user models.User) string {
	text, ok := coach.generate(ctx, "diet regeneration", Request{
		Prompt:      dietPrompt(user),
		Temperature: dietTemperature,
	})
	if !ok {
		return FallbackRegenError
	}
	if text == "" {
		return FallbackRegenEmpty
	}
	return text
}

func (coach *Coach) GenerateFitnessAdvice(ctx context.Context, query string, userContext string) string {
	text, ok := coach.generate(ctx, "advice", Request{
		SystemInstruction: coachInstruction,
		Prompt:            advicePrompt(query, userContext),
		Temperature:       adviceTemperature,
	})
	if !ok {
		return FallbackAdviceError
	}
	if text == "" {
		return FallbackAdviceEmpty
	}
	return text
}

func (coach *Coach) UserContext(user models.User) string {
	return UserContext(user, coach.now())
}
