package api

import (
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/dreambody011-stack/dream--body/internal/services"
)

// userView is a client record plus the state derived from it at request time.
type userView struct {
	models.User
	SubscriptionState string `json:"subscription_state"`
	HasPlanAccess     bool   `json:"has_plan_access"`
}

func newUserView(user models.User, now time.Time) userView {
	return userView{
		User:              user,
		SubscriptionState: services.SubscriptionState(user, now),
		HasPlanAccess:     services.HasPlanAccess(user, now),
	}
}

// newClientView is what a client sees about themselves: plans and their
// history stay empty until the subscription grants access.
func newClientView(user models.User, now time.Time) userView {
	view := newUserView(user, now)
	if !view.HasPlanAccess {
		view.WorkoutPlan = ""
		view.DietPlan = ""
		view.PlanHistory = []models.PlanHistoryEntry{}
	}
	return view
}

func newUserViews(users []models.User, now time.Time) []userView {
	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, newUserView(user, now))
	}
	return views
}
