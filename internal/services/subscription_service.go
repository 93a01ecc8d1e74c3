package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/lock"
	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNoPendingRequest     = errors.New("no pending subscription request")
	ErrPaymentMethodInvalid = errors.New("invalid payment method")
)

type SubscriptionRequestInput struct {
	PackageID     string
	PromoCode     string
	Method        string
	TransactionID string
}

type SubscriptionService struct {
	users    UserStore
	packages *PackageService
	promos   *PromoService
	planner  PlanGenerator
	guard    generationGuard
}

func NewSubscriptionService(users UserStore, packages *PackageService, promos *PromoService, planner PlanGenerator, locker lock.Locker, lockTTL time.Duration) *SubscriptionService {
	if lockTTL <= 0 {
		lockTTL = DefaultGenerationLockTTL
	}
	return &SubscriptionService{
		users:    users,
		packages: packages,
		promos:   promos,
		planner:  planner,
		guard:    generationGuard{locker: locker, ttl: lockTTL},
	}
}

// RequestSubscription attaches a pending request, replacing any existing one.
// A promo code is redeemed in the same write as the request, and the promo use
// of a replaced request is given back in that write.
func (service *SubscriptionService) RequestSubscription(ctx context.Context, userID string, input SubscriptionRequestInput, now time.Time) (models.User, error) {
	method := strings.TrimSpace(input.Method)
	if method == "" {
		method = models.PaymentInstaPay
	}
	if !models.IsValidPaymentMethod(method) {
		return models.User{}, ErrPaymentMethodInvalid
	}
	transactionID := strings.TrimSpace(input.TransactionID)
	if transactionID == "" {
		transactionID = models.PendingTransactionID
	}

	user, err := findUser(service.users, userID)
	if err != nil {
		return models.User{}, err
	}
	pricingPackage, err := service.packages.Get(strings.TrimSpace(input.PackageID))
	if err != nil {
		return models.User{}, err
	}

	// A replaced request gives its promo use back before the new code is checked.
	refundCode := ""
	if user.PendingRequest != nil {
		refundCode = NormalizePromoCode(user.PendingRequest.PromoCodeUsed)
	}

	price := pricingPackage.Price
	code := NormalizePromoCode(input.PromoCode)
	if code != "" {
		quoteUser := user
		quoteUser.PromoUsage = withoutPromoUse(user.PromoUsage, refundCode)
		quote, err := service.promos.QuoteReplacing(code, pricingPackage, quoteUser, refundCode, now)
		if err != nil {
			return models.User{}, err
		}
		price = quote.FinalPrice
	}

	user.PendingRequest = &models.PendingRequest{
		PackageID:      pricingPackage.ID,
		PackageName:    pricingPackage.Name,
		RequestedPrice: price,
		PromoCodeUsed:  code,
		RequestDate:    now.UTC(),
		TransactionID:  transactionID,
		Method:         method,
	}
	user.SubscriptionHistory = append(user.SubscriptionHistory, models.SubscriptionHistoryEntry{
		ID:            uuid.NewString(),
		PackageName:   pricingPackage.Name,
		Amount:        price,
		TransactionID: transactionID,
		Method:        method,
		Date:          now.UTC(),
		PromoCode:     code,
		Status:        models.SubscriptionStatusPending,
	})

	if code != "" || refundCode != "" {
		if err := service.promos.Swap(ctx, &user, code, refundCode, now); err != nil {
			return models.User{}, err
		}
		return user, nil
	}
	if err := service.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// starterPlans runs the generator once when the workout plan is still pending.
// The returned release func must be called after the user record is written.
func (service *SubscriptionService) starterPlans(ctx context.Context, user models.User) (workout string, diet string, generated bool, release func(), err error) {
	if !NeedsStarterPlans(user) {
		return "", "", false, func() {}, nil
	}
	release, err = service.guard.acquire(ctx, user.ID)
	if err != nil {
		return "", "", false, nil, err
	}
	workout, diet = service.planner.GenerateStarterPlans(ctx, user)
	return workout, diet, true, release, nil
}

// ApproveRequest activates the pending request: the subscription runs from now
// for the package duration in calendar months and starter plans are generated
// when missing.
func (service *SubscriptionService) ApproveRequest(ctx context.Context, userID string, now time.Time) (models.User, error) {
	user, err := findUser(service.users, userID)
	if err != nil {
		return models.User{}, err
	}
	if user.PendingRequest == nil {
		return models.User{}, ErrNoPendingRequest
	}
	pricingPackage, err := service.packages.Get(user.PendingRequest.PackageID)
	if err != nil {
		return models.User{}, err
	}

	workout, diet, generated, release, err := service.starterPlans(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	defer release()

	requested := *user.PendingRequest
	return mutateUser(service.users, userID, func(current *models.User) error {
		if current.PendingRequest == nil {
			return ErrNoPendingRequest
		}
		if current.PendingRequest.PackageID != requested.PackageID {
			return ErrVersionConflict
		}
		pending := *current.PendingRequest

		start := now.UTC()
		end := AddCalendarMonths(start, pricingPackage.DurationMonths)
		current.SubscriptionStart = &start
		current.SubscriptionEnd = &end
		current.IsActive = true
		current.Payment = &models.PaymentDetails{
			TransactionID: pending.TransactionID,
			Method:        pending.Method,
			Date:          start,
		}
		current.PendingRequest = nil
		current.SubscriptionHistory = append(current.SubscriptionHistory, models.SubscriptionHistoryEntry{
			ID:            uuid.NewString(),
			PackageName:   pricingPackage.Name,
			Amount:        pending.RequestedPrice,
			TransactionID: pending.TransactionID,
			Method:        pending.Method,
			Date:          start,
			PromoCode:     pending.PromoCodeUsed,
			Status:        models.SubscriptionStatusActive,
		})

		if generated {
			applyStarterPlans(current, workout, diet, start)
		}
		return nil
	})
}

// SetActive is the admin override of the active flag. Activating a client
// without plans generates starter plans first.
func (service *SubscriptionService) SetActive(ctx context.Context, userID string, active bool, now time.Time) (models.User, error) {
	user, err := findUser(service.users, userID)
	if err != nil {
		return models.User{}, err
	}

	workout, diet, generated := "", "", false
	release := func() {}
	if active {
		workout, diet, generated, release, err = service.starterPlans(ctx, user)
		if err != nil {
			return models.User{}, err
		}
	}
	defer release()

	return mutateUser(service.users, userID, func(current *models.User) error {
		current.IsActive = active
		if generated {
			applyStarterPlans(current, workout, diet, now.UTC())
		}
		return nil
	})
}
