package api

import (
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
)

type loginInput struct {
	Identifier string `json:"identifier" form:"identifier"`
	Password   string `json:"password" form:"password"`
}

type registerInput struct {
	Name              string  `json:"name" form:"name"`
	Email             string  `json:"email" form:"email"`
	Phone             string  `json:"phone" form:"phone"`
	Password          string  `json:"password" form:"password"`
	ConfirmPassword   string  `json:"confirm_password" form:"confirm_password"`
	Gender            string  `json:"gender" form:"gender"`
	DOB               string  `json:"dob" form:"dob"`
	Height            float64 `json:"height" form:"height"`
	Weight            float64 `json:"weight" form:"weight"`
	FitnessGoal       string  `json:"fitness_goal" form:"fitness_goal"`
	TargetBody        string  `json:"target_body" form:"target_body"`
	WeeklyWorkoutDays int     `json:"weekly_workout_days" form:"weekly_workout_days"`
	ActivityLevel     string  `json:"activity_level" form:"activity_level"`
	Allergies         string  `json:"allergies" form:"allergies"`
	FoodDislikes      string  `json:"food_dislikes" form:"food_dislikes"`
	ForbiddenFoods    string  `json:"forbidden_foods" form:"forbidden_foods"`
}

type profileInput struct {
	Gender            string  `json:"gender"`
	Height            float64 `json:"height"`
	Weight            float64 `json:"weight"`
	FitnessGoal       string  `json:"fitness_goal"`
	TargetBody        string  `json:"target_body"`
	WeeklyWorkoutDays int     `json:"weekly_workout_days"`
	ActivityLevel     string  `json:"activity_level"`
	Allergies         string  `json:"allergies"`
	FoodDislikes      string  `json:"food_dislikes"`
	ForbiddenFoods    string  `json:"forbidden_foods"`
	OldPassword       string  `json:"old_password"`
	NewPassword       string  `json:"new_password"`
	ConfirmPassword   string  `json:"confirm_password"`
}

type weightInput struct {
	Weight float64 `json:"weight"`
	// Date is optional; the request time is used when it is empty.
	Date string `json:"date"`
}

type chatInput struct {
	Message string `json:"message"`
}

type subscriptionRequestInput struct {
	PackageID     string `json:"package_id"`
	PromoCode     string `json:"promo_code"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
}

type promoQuoteInput struct {
	PackageID string `json:"package_id"`
	Code      string `json:"code"`
}

type adminUserInput struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	WorkoutPlan   *string `json:"workout_plan"`
	DietPlan      *string `json:"diet_plan"`
	Notes         *string `json:"notes"`
	TransactionID *string `json:"transaction_id"`
	Version       uint    `json:"version"`
}

type activeInput struct {
	Active bool `json:"active"`
}

type packageInput struct {
	Name           string   `json:"name"`
	Price          string   `json:"price"`
	DurationMonths int      `json:"duration_months"`
	Features       []string `json:"features"`
	Version        uint     `json:"version"`
}

type promoInput struct {
	Code            string           `json:"code"`
	DiscountValue   float64          `json:"discount_value"`
	DiscountType    string           `json:"discount_type"`
	Deadline        time.Time        `json:"deadline"`
	MaxUsageTotal   *models.UsageCap `json:"max_usage_total"`
	MaxUsagePerUser int              `json:"max_usage_per_user"`
}

type offerInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ShowLimit   int    `json:"show_limit"`
}

type adminProfileInput struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	NewPassword string `json:"new_password"`
}
