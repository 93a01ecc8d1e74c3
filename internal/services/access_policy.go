package services

import (
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
)

const (
	SubscriptionNoRequest = "NO_REQUEST"
	SubscriptionPending   = "PENDING_REQUEST"
	SubscriptionActive    = "ACTIVE"
	SubscriptionExpired   = "EXPIRED"
)

// HasPlanAccess reports whether locked content (plans, chat, diet
// regeneration) is visible to the client at now.
func HasPlanAccess(user models.User, now time.Time) bool {
	if !user.IsActive || user.SubscriptionEnd == nil || !user.SubscriptionEnd.After(now) {
		return false
	}
	return user.Payment != nil && strings.TrimSpace(user.Payment.TransactionID) != ""
}

// SubscriptionState derives the workflow state. EXPIRED is never stored.
func SubscriptionState(user models.User, now time.Time) string {
	switch {
	case HasPlanAccess(user, now):
		return SubscriptionActive
	case user.PendingRequest != nil:
		return SubscriptionPending
	case user.SubscriptionEnd != nil:
		return SubscriptionExpired
	default:
		return SubscriptionNoRequest
	}
}

func IsAdminRole(role string) bool {
	return role == models.RoleAdmin
}

func IsClientRole(role string) bool {
	return role == models.RoleClient
}
