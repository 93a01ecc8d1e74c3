package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/dreambody011-stack/dream--body/internal/services"
)

func TestSubscriptionApprovalUnlocksPlans(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	client := registerClient(t, fixture, "Karim", "karim@dreambody.local")
	adminCookie := loginAdmin(t, fixture)

	response := fixture.request(t, http.MethodPost, "/api/me/subscription/request", subscriptionRequestInput{PackageID: "2", TransactionID: "IP-778"}, client.Cookie)
	expectStatus(t, response, http.StatusOK)
	var pending userView
	decodeResponse(t, response, &pending)
	if pending.SubscriptionState != services.SubscriptionPending || pending.PendingRequest == nil {
		t.Fatalf("expected pending request, got %#v", pending)
	}
	if pending.PendingRequest.Method != models.PaymentInstaPay || pending.PendingRequest.RequestedPrice != "1200" {
		t.Fatalf("unexpected pending request %#v", pending.PendingRequest)
	}

	expectStatus(t, fixture.request(t, http.MethodGet, "/api/me/plans", nil, client.Cookie), http.StatusForbidden)
	expectStatus(t, fixture.request(t, http.MethodPost, "/api/me/plans/diet/regenerate", nil, client.Cookie), http.StatusForbidden)

	response = fixture.request(t, http.MethodPost, "/api/admin/users/"+client.ID+"/approve", nil, adminCookie)
	expectStatus(t, response, http.StatusOK)
	var approved userView
	decodeResponse(t, response, &approved)
	if !approved.IsActive || approved.PendingRequest != nil || approved.Payment == nil || approved.Payment.TransactionID != "IP-778" {
		t.Fatalf("unexpected approved user %#v", approved)
	}
	if approved.SubscriptionStart == nil || approved.SubscriptionEnd == nil {
		t.Fatal("expected subscription window to be set")
	}
	if want := services.AddCalendarMonths(*approved.SubscriptionStart, 3); !approved.SubscriptionEnd.Equal(want) {
		t.Fatalf("expected subscription end %v, got %v", want, *approved.SubscriptionEnd)
	}
	if fixture.planner.starterCallCount() != 1 {
		t.Fatalf("expected exactly one starter generation, got %d", fixture.planner.starterCallCount())
	}

	response = fixture.request(t, http.MethodGet, "/api/me/plans", nil, client.Cookie)
	expectStatus(t, response, http.StatusOK)
	var plans services.ClientPlans
	decodeResponse(t, response, &plans)
	if plans.WorkoutPlan != "Workout for Karim" || plans.DietPlan != "Diet for Karim" {
		t.Fatalf("unexpected plans %#v", plans)
	}

	response = fixture.request(t, http.MethodPost, "/api/me/plans/diet/regenerate", nil, client.Cookie)
	expectStatus(t, response, http.StatusOK)
	var regenerated map[string]string
	decodeResponse(t, response, &regenerated)
	if regenerated["diet_plan"] != "Fresh diet for Karim" {
		t.Fatalf("unexpected regenerated diet %#v", regenerated)
	}

	response = fixture.request(t, http.MethodPost, "/api/admin/users/"+client.ID+"/approve", nil, adminCookie)
	expectStatus(t, response, http.StatusConflict)
	if got := readAPIError(t, response); got != services.ErrNoPendingRequest.Error() {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestSetActiveGeneratesPlansOnce(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	client := registerClient(t, fixture, "Nour", "nour@dreambody.local")
	adminCookie := loginAdmin(t, fixture)

	expectStatus(t, fixture.request(t, http.MethodPost, "/api/admin/users/"+client.ID+"/active", activeInput{Active: true}, adminCookie), http.StatusOK)
	expectStatus(t, fixture.request(t, http.MethodPost, "/api/admin/users/"+client.ID+"/active", activeInput{Active: false}, adminCookie), http.StatusOK)
	expectStatus(t, fixture.request(t, http.MethodPost, "/api/admin/users/"+client.ID+"/active", activeInput{Active: true}, adminCookie), http.StatusOK)

	if fixture.planner.starterCallCount() != 1 {
		t.Fatalf("expected plans to be generated once, got %d", fixture.planner.starterCallCount())
	}
}

func TestPromoQuoteAndRedemptionCap(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	adminCookie := loginAdmin(t, fixture)
	first := registerClient(t, fixture, "First", "first@dreambody.local")
	second := registerClient(t, fixture, "Second", "second@dreambody.local")

	capOne := models.CapAt(1)
	response := fixture.request(t, http.MethodPost, "/api/admin/promos", promoInput{
		Code:          "save10",
		DiscountValue: 10,
		DiscountType:  "percentage",
		Deadline:      time.Now().Add(48 * time.Hour),
		MaxUsageTotal: &capOne,
	}, adminCookie)
	expectStatus(t, response, http.StatusCreated)
	var promo models.PromoCode
	decodeResponse(t, response, &promo)
	if promo.Code != "SAVE10" || promo.DiscountType != models.DiscountPercentage {
		t.Fatalf("unexpected promo %#v", promo)
	}

	response = fixture.request(t, http.MethodPost, "/api/me/promo/quote", promoQuoteInput{PackageID: "1", Code: "save10"}, first.Cookie)
	expectStatus(t, response, http.StatusOK)
	var quote services.PromoQuote
	decodeResponse(t, response, &quote)
	if quote.FinalPrice != "450" || quote.Discount != 50 {
		t.Fatalf("unexpected quote %#v", quote)
	}

	response = fixture.request(t, http.MethodPost, "/api/me/subscription/request", subscriptionRequestInput{PackageID: "1", PromoCode: "SAVE10"}, first.Cookie)
	expectStatus(t, response, http.StatusOK)
	var pending userView
	decodeResponse(t, response, &pending)
	if pending.PendingRequest == nil || pending.PendingRequest.RequestedPrice != "450" || pending.PromoUsage["SAVE10"] != 1 {
		t.Fatalf("unexpected discounted request %#v", pending.PendingRequest)
	}

	response = fixture.request(t, http.MethodPost, "/api/me/subscription/request", subscriptionRequestInput{PackageID: "1", PromoCode: "SAVE10"}, second.Cookie)
	expectStatus(t, response, http.StatusBadRequest)
	if got := readAPIError(t, response); got != services.ErrPromoExhausted.Error() {
		t.Fatalf("unexpected error %q", got)
	}

	response = fixture.request(t, http.MethodGet, "/api/admin/promos", nil, adminCookie)
	expectStatus(t, response, http.StatusOK)
	var promos []models.PromoCode
	decodeResponse(t, response, &promos)
	if len(promos) != 1 || promos[0].CurrentUsageCount != 1 {
		t.Fatalf("expected one recorded redemption, got %#v", promos)
	}
}

func TestOfferImpressionLimit(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	adminCookie := loginAdmin(t, fixture)
	client := registerClient(t, fixture, "Offer", "offer@dreambody.local")

	expectStatus(t, fixture.request(t, http.MethodGet, "/api/me/offers/next", nil, client.Cookie), http.StatusNoContent)

	response := fixture.request(t, http.MethodPost, "/api/admin/offers", offerInput{Title: "Ramadan sale", ShowLimit: 1}, adminCookie)
	expectStatus(t, response, http.StatusCreated)
	var offer models.Offer
	decodeResponse(t, response, &offer)

	response = fixture.request(t, http.MethodGet, "/api/me/offers/next", nil, client.Cookie)
	expectStatus(t, response, http.StatusOK)
	var next models.Offer
	decodeResponse(t, response, &next)
	if next.ID != offer.ID {
		t.Fatalf("expected offer %s, got %s", offer.ID, next.ID)
	}

	expectStatus(t, fixture.request(t, http.MethodPost, "/api/me/offers/"+offer.ID+"/seen", nil, client.Cookie), http.StatusOK)
	expectStatus(t, fixture.request(t, http.MethodGet, "/api/me/offers/next", nil, client.Cookie), http.StatusNoContent)
	expectStatus(t, fixture.request(t, http.MethodPost, "/api/me/offers/missing/seen", nil, client.Cookie), http.StatusNotFound)

	response = fixture.request(t, http.MethodPost, "/api/admin/offers/"+offer.ID+"/toggle", nil, adminCookie)
	expectStatus(t, response, http.StatusOK)
	var toggled models.Offer
	decodeResponse(t, response, &toggled)
	if toggled.IsActive {
		t.Fatal("expected toggled offer to be inactive")
	}
}

func TestChatAndProfileUpdates(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	client := registerClient(t, fixture, "Salma", "salma@dreambody.local")

	response := fixture.request(t, http.MethodPost, "/api/me/chat", chatInput{Message: "How much protein?"}, client.Cookie)
	expectStatus(t, response, http.StatusOK)
	var reply map[string]string
	decodeResponse(t, response, &reply)
	if reply["reply"] != "Coach says: How much protein?" {
		t.Fatalf("unexpected reply %#v", reply)
	}
	expectStatus(t, fixture.request(t, http.MethodPost, "/api/me/chat", chatInput{Message: "  "}, client.Cookie), http.StatusBadRequest)

	response = fixture.request(t, http.MethodPost, "/api/me/weight", weightInput{Weight: 78.5, Date: "2030-01-01"}, client.Cookie)
	expectStatus(t, response, http.StatusOK)
	var weighed userView
	decodeResponse(t, response, &weighed)
	if weighed.CurrentWeight != 78.5 || len(weighed.WeightHistory) != 2 {
		t.Fatalf("unexpected weight history %#v", weighed.WeightHistory)
	}
	expectStatus(t, fixture.request(t, http.MethodPost, "/api/me/weight", weightInput{Weight: 70, Date: "01/02/2030"}, client.Cookie), http.StatusBadRequest)

	response = fixture.request(t, http.MethodPut, "/api/me/profile", profileInput{
		Height:          176,
		ActivityLevel:   models.ActivityLightlyActive,
		OldPassword:     "wrong",
		NewPassword:     "NewPass22",
		ConfirmPassword: "NewPass22",
	}, client.Cookie)
	expectStatus(t, response, http.StatusUnauthorized)

	response = fixture.request(t, http.MethodPut, "/api/me/profile", profileInput{
		Height:          176,
		ActivityLevel:   models.ActivityLightlyActive,
		Allergies:       "Peanuts",
		OldPassword:     "ClientPass1",
		NewPassword:     "NewPass22",
		ConfirmPassword: "NewPass22",
	}, client.Cookie)
	expectStatus(t, response, http.StatusOK)

	response = fixture.request(t, http.MethodPost, "/api/auth/login", loginInput{Identifier: client.ID, Password: "NewPass22"}, "")
	expectStatus(t, response, http.StatusOK)
	if !strings.Contains(authCookieHeader(t, response), authCookieName) {
		t.Fatal("expected login with the new password")
	}
}

func TestClientViewHidesPlansUntilAccess(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	client := registerClient(t, fixture, "Hidden", "hidden@dreambody.local")
	adminCookie := loginAdmin(t, fixture)

	workout := "Coach written workout"
	response := fixture.request(t, http.MethodPut, "/api/admin/users/"+client.ID, adminUserInput{WorkoutPlan: &workout}, adminCookie)
	expectStatus(t, response, http.StatusOK)
	var edited userView
	decodeResponse(t, response, &edited)
	if edited.WorkoutPlan != workout {
		t.Fatalf("expected admin view to carry the workout, got %q", edited.WorkoutPlan)
	}

	expectStatus(t, fixture.request(t, http.MethodGet, "/api/me/plans", nil, client.Cookie), http.StatusForbidden)

	response = fixture.request(t, http.MethodGet, "/api/me", nil, client.Cookie)
	expectStatus(t, response, http.StatusOK)
	var locked userView
	decodeResponse(t, response, &locked)
	if locked.HasPlanAccess || locked.WorkoutPlan != "" || locked.DietPlan != "" || len(locked.PlanHistory) != 0 {
		t.Fatalf("expected locked plans hidden, got access=%v workout=%q diet=%q history=%d", locked.HasPlanAccess, locked.WorkoutPlan, locked.DietPlan, len(locked.PlanHistory))
	}

	response = fixture.request(t, http.MethodPost, "/api/auth/login", loginInput{Identifier: client.ID, Password: "ClientPass1"}, "")
	expectStatus(t, response, http.StatusOK)
	var login struct {
		User userView `json:"user"`
	}
	decodeResponse(t, response, &login)
	if login.User.WorkoutPlan != "" {
		t.Fatalf("expected login payload to hide the locked workout, got %q", login.User.WorkoutPlan)
	}

	response = fixture.request(t, http.MethodPost, "/api/me/subscription/request", subscriptionRequestInput{PackageID: "1", TransactionID: "IP-100"}, client.Cookie)
	expectStatus(t, response, http.StatusOK)
	var pending userView
	decodeResponse(t, response, &pending)
	if pending.WorkoutPlan != "" {
		t.Fatalf("expected pending request view to hide the workout, got %q", pending.WorkoutPlan)
	}

	expectStatus(t, fixture.request(t, http.MethodPost, "/api/admin/users/"+client.ID+"/approve", nil, adminCookie), http.StatusOK)
	if fixture.planner.starterCallCount() != 0 {
		t.Fatalf("expected the coach workout to be kept without generation, got %d calls", fixture.planner.starterCallCount())
	}

	response = fixture.request(t, http.MethodGet, "/api/me", nil, client.Cookie)
	expectStatus(t, response, http.StatusOK)
	var unlocked userView
	decodeResponse(t, response, &unlocked)
	if !unlocked.HasPlanAccess || unlocked.WorkoutPlan != workout || unlocked.DietPlan != models.PendingPlanSentinel {
		t.Fatalf("expected plans visible after approval, got access=%v workout=%q diet=%q", unlocked.HasPlanAccess, unlocked.WorkoutPlan, unlocked.DietPlan)
	}
}
