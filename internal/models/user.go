package models

import (
	"strings"
	"time"
)

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

const (
	ActivitySedentary        = "SEDENTARY"
	ActivityLightlyActive    = "LIGHTLY_ACTIVE"
	ActivityModeratelyActive = "MODERATELY_ACTIVE"
	ActivityVeryActive       = "VERY_ACTIVE"
)

const (
	PaymentInstaPay     = "INSTAPAY"
	PaymentMobileWallet = "MOBILE_WALLET"
)

const (
	// PendingPlanSentinel marks a plan that has not been generated yet.
	PendingPlanSentinel = "Pending activation..."
	pendingPlanMarker   = "Pending"
	// PendingTransactionID is the placeholder carried by an unverified request.
	PendingTransactionID = "PENDING"

	DefaultWeeklyWorkoutDays = 3
)

type WeightEntry struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

type PaymentDetails struct {
	TransactionID string    `json:"transaction_id"`
	Method        string    `json:"method"`
	Date          time.Time `json:"date"`
}

type PendingRequest struct {
	PackageID      string    `json:"package_id"`
	PackageName    string    `json:"package_name"`
	RequestedPrice string    `json:"requested_price"`
	PromoCodeUsed  string    `json:"promo_code_used,omitempty"`
	RequestDate    time.Time `json:"request_date"`
	TransactionID  string    `json:"transaction_id"`
	Method         string    `json:"method"`
}

const (
	PlanTypeWorkout = "WORKOUT"
	PlanTypeDiet    = "DIET"
)

type PlanHistoryEntry struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Content string    `json:"content"`
}

const (
	SubscriptionStatusPending = "PENDING"
	SubscriptionStatusActive  = "ACTIVE"
	SubscriptionStatusExpired = "EXPIRED"
)

type SubscriptionHistoryEntry struct {
	ID            string    `json:"id"`
	PackageName   string    `json:"package_name"`
	Amount        string    `json:"amount"`
	TransactionID string    `json:"transaction_id"`
	Method        string    `json:"method"`
	Date          time.Time `json:"date"`
	PromoCode     string    `json:"promo_code,omitempty"`
	Status        string    `json:"status"`
}

type User struct {
	ID           string    `gorm:"primaryKey;size:6" json:"id"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"index" json:"email"`
	Phone        string    `gorm:"index" json:"phone"`
	Gender       string    `gorm:"not null;default:MALE" json:"gender"`
	DOB          string    `gorm:"column:dob" json:"dob"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Height        float64       `json:"height"`
	CurrentWeight float64       `json:"current_weight"`
	WeightHistory []WeightEntry `gorm:"serializer:json" json:"weight_history"`

	FitnessGoal       string `json:"fitness_goal"`
	TargetBody        string `json:"target_body"`
	WeeklyWorkoutDays int    `gorm:"not null;default:3" json:"weekly_workout_days"`
	ActivityLevel     string `gorm:"not null;default:MODERATELY_ACTIVE" json:"activity_level"`

	Allergies      string `json:"allergies"`
	FoodDislikes   string `json:"food_dislikes"`
	ForbiddenFoods string `json:"forbidden_foods"`

	SubscriptionStart *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time `json:"subscription_end,omitempty"`
	IsActive          bool       `gorm:"not null;default:false" json:"is_active"`

	Payment        *PaymentDetails `gorm:"serializer:json" json:"payment,omitempty"`
	PendingRequest *PendingRequest `gorm:"serializer:json" json:"pending_request,omitempty"`

	WorkoutPlan string `json:"workout_plan"`
	DietPlan    string `json:"diet_plan"`
	Notes       string `json:"notes"`

	PlanHistory         []PlanHistoryEntry         `gorm:"serializer:json" json:"plan_history"`
	SubscriptionHistory []SubscriptionHistoryEntry `gorm:"serializer:json" json:"subscription_history"`

	PromoUsage map[string]int `gorm:"serializer:json" json:"promo_usage"`
	SeenOffers map[string]int `gorm:"serializer:json" json:"seen_offers"`

	Version uint `gorm:"not null;default:1" json:"version"`
}

// PlanIsPending reports whether a plan still needs to be generated: it is
// blank or mentions "Pending" anywhere, as in "Pending review".
func PlanIsPending(plan string) bool {
	trimmed := strings.TrimSpace(plan)
	return trimmed == "" || strings.Contains(trimmed, pendingPlanMarker)
}

func IsValidActivityLevel(level string) bool {
	switch level {
	case ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive:
		return true
	default:
		return false
	}
}

func IsValidPaymentMethod(method string) bool {
	return method == PaymentInstaPay || method == PaymentMobileWallet
}
