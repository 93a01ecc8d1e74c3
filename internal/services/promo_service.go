package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/db"
	"github.com/dreambody011-stack/dream--body/internal/lock"
	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPromoNotFound       = errors.New("promo code not found")
	ErrPromoExpired        = errors.New("promo code expired")
	ErrPromoExhausted      = errors.New("promo code usage limit reached")
	ErrPromoUserLimit      = errors.New("promo code already used the maximum number of times")
	ErrPromoInvalid        = errors.New("invalid promo code")
	ErrPromoCodeTaken      = errors.New("promo code already exists")
	ErrPromoBusy           = errors.New("promo code redemption in progress")
	ErrPackagePriceInvalid = errors.New("package price is not a number")
)

const promoLockTTL = 10 * time.Second

type PromoRepository interface {
	List() ([]models.PromoCode, error)
	FindByCode(code string) (models.PromoCode, error)
	Create(promo *models.PromoCode) error
	Delete(promoID string) error
	UpdateUsage(redeemID string, refundID string, user *models.User) error
}

type PromoInput struct {
	Code            string
	DiscountValue   float64
	DiscountType    string
	Deadline        time.Time
	MaxUsageTotal   models.UsageCap
	MaxUsagePerUser int
}

type PromoQuote struct {
	Code          string  `json:"code"`
	OriginalPrice string  `json:"original_price"`
	FinalPrice    string  `json:"final_price"`
	Discount      float64 `json:"discount"`
}

type PromoService struct {
	promos PromoRepository
	locker lock.Locker
}

func NewPromoService(promos PromoRepository, locker lock.Locker) *PromoService {
	return &PromoService{promos: promos, locker: locker}
}

func NormalizePromoCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (service *PromoService) List() ([]models.PromoCode, error) {
	return service.promos.List()
}

func (service *PromoService) Create(input PromoInput) (models.PromoCode, error) {
	code := NormalizePromoCode(input.Code)
	if code == "" || input.DiscountValue <= 0 || input.Deadline.IsZero() || input.MaxUsagePerUser < 0 {
		return models.PromoCode{}, ErrPromoInvalid
	}
	switch input.DiscountType {
	case models.DiscountPercentage:
		if input.DiscountValue > 100 {
			return models.PromoCode{}, ErrPromoInvalid
		}
	case models.DiscountFixed:
	default:
		return models.PromoCode{}, ErrPromoInvalid
	}
	if !input.MaxUsageTotal.Unlimited && input.MaxUsageTotal.Limit <= 0 {
		return models.PromoCode{}, ErrPromoInvalid
	}

	if _, err := service.promos.FindByCode(code); err == nil {
		return models.PromoCode{}, ErrPromoCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PromoCode{}, err
	}

	promo := models.PromoCode{
		ID:              uuid.NewString(),
		Code:            code,
		DiscountValue:   input.DiscountValue,
		DiscountType:    input.DiscountType,
		Deadline:        input.Deadline.UTC(),
		MaxUsageTotal:   input.MaxUsageTotal,
		MaxUsagePerUser: input.MaxUsagePerUser,
	}
	if err := service.promos.Create(&promo); err != nil {
		return models.PromoCode{}, err
	}
	return promo, nil
}

func (service *PromoService) Delete(promoID string) error {
	return service.promos.Delete(promoID)
}

func (service *PromoService) lookup(code string) (models.PromoCode, error) {
	promo, err := service.promos.FindByCode(NormalizePromoCode(code))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PromoCode{}, ErrPromoNotFound
	}
	if err != nil {
		return models.PromoCode{}, err
	}
	return promo, nil
}

// CheckRedeemable validates a promo for user at now without changing anything.
func CheckRedeemable(promo models.PromoCode, user models.User, now time.Time) error {
	if now.After(promo.Deadline) {
		return ErrPromoExpired
	}
	if !promo.MaxUsageTotal.Allows(promo.CurrentUsageCount) {
		return ErrPromoExhausted
	}
	if promo.MaxUsagePerUser > 0 && user.PromoUsage[promo.Code] >= promo.MaxUsagePerUser {
		return ErrPromoUserLimit
	}
	return nil
}

// DiscountedPrice applies the promo to a unit-less price and rounds to cents.
func DiscountedPrice(price string, promo models.PromoCode) (string, float64, error) {
	original, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return "", 0, ErrPackagePriceInvalid
	}

	final := original
	switch promo.DiscountType {
	case models.DiscountPercentage:
		final = original * (1 - promo.DiscountValue/100)
	case models.DiscountFixed:
		final = original - promo.DiscountValue
	}
	final = math.Max(0, math.Round(final*100)/100)
	return strconv.FormatFloat(final, 'f', -1, 64), math.Round((original-final)*100) / 100, nil
}

func (service *PromoService) Quote(code string, pricingPackage models.PricingPackage, user models.User, now time.Time) (PromoQuote, error) {
	return service.QuoteReplacing(code, pricingPackage, user, "", now)
}

// QuoteReplacing quotes code as if the use of refundCode had been given back.
func (service *PromoService) QuoteReplacing(code string, pricingPackage models.PricingPackage, user models.User, refundCode string, now time.Time) (PromoQuote, error) {
	promo, err := service.lookup(code)
	if err != nil {
		return PromoQuote{}, err
	}
	if err := checkReplacing(promo, user, NormalizePromoCode(refundCode), now); err != nil {
		return PromoQuote{}, err
	}

	final, discount, err := DiscountedPrice(pricingPackage.Price, promo)
	if err != nil {
		return PromoQuote{}, err
	}
	return PromoQuote{
		Code:          promo.Code,
		OriginalPrice: pricingPackage.Price,
		FinalPrice:    final,
		Discount:      discount,
	}, nil
}

// Redeem counts one use of code by user and persists the user record in the
// same transaction. Callers put any other pending changes on user first.
func (service *PromoService) Redeem(ctx context.Context, user *models.User, code string, now time.Time) error {
	return service.Swap(ctx, user, code, "", now)
}

// Swap gives back one use of refundCode and takes one of redeemCode, either of
// which may be empty, then persists user in the same transaction. A refunded
// code that was deleted in the meantime only returns the per-user use.
func (service *PromoService) Swap(ctx context.Context, user *models.User, redeemCode string, refundCode string, now time.Time) error {
	redeemCode = NormalizePromoCode(redeemCode)
	refundCode = NormalizePromoCode(refundCode)
	lockCode := redeemCode
	if lockCode == "" {
		lockCode = refundCode
	}
	release, err := service.locker.Acquire(ctx, "promo:"+user.ID+":"+lockCode, promoLockTTL)
	if errors.Is(err, lock.ErrHeld) {
		return ErrPromoBusy
	}
	if err != nil {
		return fmt.Errorf("acquire promo lock: %w", err)
	}
	defer release()

	previousUsage := user.PromoUsage
	user.PromoUsage = withoutPromoUse(user.PromoUsage, refundCode)
	restore := func(err error) error {
		user.PromoUsage = previousUsage
		return err
	}

	refundID := ""
	if refundCode != "" {
		promo, err := service.lookup(refundCode)
		switch {
		case err == nil:
			refundID = promo.ID
		case !errors.Is(err, ErrPromoNotFound):
			return restore(err)
		}
	}

	redeemID := ""
	if redeemCode != "" {
		promo, err := service.lookup(redeemCode)
		if err != nil {
			return restore(err)
		}
		if err := checkReplacing(promo, *user, refundCode, now); err != nil {
			return restore(err)
		}
		user.PromoUsage[promo.Code]++
		redeemID = promo.ID
	}

	err = service.promos.UpdateUsage(redeemID, refundID, user)
	if errors.Is(err, db.ErrUsageCapReached) {
		return restore(ErrPromoExhausted)
	}
	if err != nil {
		return restore(err)
	}
	return nil
}

// checkReplacing is CheckRedeemable with one use of refundCode already given
// back on the promo counter. user must already carry the refunded usage.
func checkReplacing(promo models.PromoCode, user models.User, refundCode string, now time.Time) error {
	if refundCode != "" && refundCode == promo.Code && promo.CurrentUsageCount > 0 {
		promo.CurrentUsageCount--
	}
	return CheckRedeemable(promo, user, now)
}

// withoutPromoUse returns a copy of usage with one use of code removed.
func withoutPromoUse(usage map[string]int, code string) map[string]int {
	next := make(map[string]int, len(usage))
	for key, count := range usage {
		next[key] = count
	}
	if code == "" {
		return next
	}
	if next[code] <= 1 {
		delete(next, code)
	} else {
		next[code]--
	}
	return next
}
