package ai

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
)

const (
	PlanSeparator = "|||SEPARATOR|||"

	coachInstruction = "You are the Elite AI Coach for Dream Body Fitness. Provide strict, data-driven, and highly motivational responses. Respect all biometrics and restrictions."

	starterTemperature = 0.3
	dietTemperature    = 0.5
	adviceTemperature  = 0.7

	contextPlanPreview = 300
)

// ApproximateAge is the difference between calendar years, matching how the
// coaching prompts have always reported age. It returns false for an unparsable DOB.
func ApproximateAge(dob string, now time.Time) (int, bool) {
	born, err := time.Parse("2006-01-02", strings.TrimSpace(dob))
	if err != nil {
		return 0, false
	}
	return now.Year() - born.Year(), true
}

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "None"
	}
	return value
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func starterPlansPrompt(user models.User, now time.Time) string {
	age := "Unknown"
	if years, ok := ApproximateAge(user.DOB, now); ok {
		age = strconv.Itoa(years)
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Generate a complete Fitness Transformation protocol for %s.\n\n", user.Name)
	prompt.WriteString("### USER PROFILE\n")
	fmt.Fprintf(&prompt, "- Age: %s\n", age)
	fmt.Fprintf(&prompt, "- Gender: %s\n", user.Gender)
	fmt.Fprintf(&prompt, "- Height: %scm, Weight: %skg\n", formatNumber(user.Height), formatNumber(user.CurrentWeight))
	fmt.Fprintf(&prompt, "- Goal: %s\n", user.FitnessGoal)
	fmt.Fprintf(&prompt, "- Target Body Style: %s\n", user.TargetBody)
	fmt.Fprintf(&prompt, "- Commitment: %d workouts per week\n", user.WeeklyWorkoutDays)
	fmt.Fprintf(&prompt, "- Activity Level: %s\n\n", user.ActivityLevel)
	prompt.WriteString("### DIETARY CONSTRAINTS (STRICT)\n")
	fmt.Fprintf(&prompt, "- ALLERGIES: %s\n", orNone(user.Allergies))
	fmt.Fprintf(&prompt, "- DISLIKES: %s\n", orNone(user.FoodDislikes))
	fmt.Fprintf(&prompt, "- FORBIDDEN (MEDICAL/RELIGIOUS): %s\n\n", orNone(user.ForbiddenFoods))
	prompt.WriteString("### OUTPUT REQUIREMENTS\n")
	fmt.Fprintf(&prompt, "Format the response as two distinct sections separated by %q.\n", PlanSeparator)
	prompt.WriteString("Section 1: Detailed Workout Plan (Day-by-Day).\n")
	prompt.WriteString("Section 2: Comprehensive Nutrition Plan (Meals & Macros). DO NOT include any forbidden foods or allergens.\n")
	return prompt.String()
}

func dietPrompt(user models.User) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Regenerate a NEW NUTRITION PLAN for %s.\n", user.Name)
	fmt.Fprintf(&prompt, "Goal: %s, Weight: %skg.\n\n", user.FitnessGoal, formatNumber(user.CurrentWeight))
	fmt.Fprintf(&prompt, "STRICT EXCLUSIONS (Allergies/Forbidden): %s, %s.\n", orNone(user.Allergies), orNone(user.ForbiddenFoods))
	fmt.Fprintf(&prompt, "AVOID (Dislikes): %s.\n\n", orNone(user.FoodDislikes))
	prompt.WriteString("Provide a full daily meal structure with macros.\n")
	return prompt.String()
}

func advicePrompt(query string, userContext string) string {
	return fmt.Sprintf("User Context: %s\n\nUser Question: %s", userContext, query)
}

// UserContext summarises a client for the chat coach.
func UserContext(user models.User, now time.Time) string {
	age := "Unknown"
	if years, ok := ApproximateAge(user.DOB, now); ok {
		age = strconv.Itoa(years)
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "Name: %s\n", user.Name)
	fmt.Fprintf(&summary, "Gender: %s\n", user.Gender)
	fmt.Fprintf(&summary, "Weight: %skg\n", formatNumber(user.CurrentWeight))
	fmt.Fprintf(&summary, "Height: %scm\n", formatNumber(user.Height))
	fmt.Fprintf(&summary, "Age (approx): %s\n", age)
	fmt.Fprintf(&summary, "Current Diet Plan Summary: %s...\n", planPreview(user.DietPlan))
	fmt.Fprintf(&summary, "Current Workout Plan Summary: %s...\n", planPreview(user.WorkoutPlan))
	return summary.String()
}

// planPreview cuts on rune boundaries so multi-byte plans never split a character.
func planPreview(plan string) string {
	if plan == "" {
		return "None assigned"
	}
	runes := []rune(plan)
	if len(runes) > contextPlanPreview {
		return string(runes[:contextPlanPreview])
	}
	return plan
}
