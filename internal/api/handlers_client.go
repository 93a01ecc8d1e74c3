package api

import (
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	return c.JSON(newClientView(*user, handler.currentTime()))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := profileInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.currentTime()
	updated, err := handler.profileService.UpdateProfile(user.ID, services.ProfileUpdateInput{
		Gender:            input.Gender,
		Height:            input.Height,
		Weight:            input.Weight,
		FitnessGoal:       input.FitnessGoal,
		TargetBody:        input.TargetBody,
		WeeklyWorkoutDays: input.WeeklyWorkoutDays,
		ActivityLevel:     input.ActivityLevel,
		Allergies:         input.Allergies,
		FoodDislikes:      input.FoodDislikes,
		ForbiddenFoods:    input.ForbiddenFoods,
		OldPassword:       input.OldPassword,
		NewPassword:       input.NewPassword,
		ConfirmPassword:   input.ConfirmPassword,
	}, now)
	if err != nil {
		return respondServiceError(c, err, "failed to update profile")
	}
	return c.JSON(newClientView(updated, now))
}

func (handler *Handler) LogWeight(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := weightInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.currentTime()
	at := now
	if raw := strings.TrimSpace(input.Date); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		at = parsed
	}

	updated, err := handler.profileService.LogWeight(user.ID, input.Weight, at)
	if err != nil {
		return respondServiceError(c, err, "failed to log weight")
	}
	return c.JSON(newClientView(updated, now))
}

func (handler *Handler) Plans(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	plans, err := handler.planService.Plans(user.ID, handler.currentTime())
	if err != nil {
		return respondServiceError(c, err, "failed to load plans")
	}
	return c.JSON(plans)
}

func (handler *Handler) RegenerateDiet(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	updated, err := handler.planService.RegenerateDiet(c.UserContext(), user.ID, handler.currentTime())
	if err != nil {
		return respondServiceError(c, err, "failed to regenerate diet plan")
	}
	return c.JSON(fiber.Map{"diet_plan": updated.DietPlan})
}

func (handler *Handler) Chat(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := chatInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	answer, err := handler.planService.Advice(c.UserContext(), user.ID, input.Message, handler.currentTime())
	if err != nil {
		return respondServiceError(c, err, "failed to answer")
	}
	return c.JSON(fiber.Map{"reply": answer})
}

func (handler *Handler) RequestSubscription(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := subscriptionRequestInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.currentTime()
	updated, err := handler.subscriptionService.RequestSubscription(c.UserContext(), user.ID, services.SubscriptionRequestInput{
		PackageID:     input.PackageID,
		PromoCode:     input.PromoCode,
		Method:        input.Method,
		TransactionID: input.TransactionID,
	}, now)
	if err != nil {
		return respondServiceError(c, err, "failed to request subscription")
	}
	return c.JSON(newClientView(updated, now))
}

func (handler *Handler) QuotePromo(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := promoQuoteInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	pricingPackage, err := handler.packageService.Get(input.PackageID)
	if err != nil {
		return respondServiceError(c, err, "failed to load package")
	}
	quote, err := handler.promoService.Quote(input.Code, pricingPackage, *user, handler.currentTime())
	if err != nil {
		return respondServiceError(c, err, "failed to apply promo code")
	}
	return c.JSON(quote)
}

func (handler *Handler) ActiveOffers(c *fiber.Ctx) error {
	offers, err := handler.offerService.ActiveOffers()
	if err != nil {
		return respondServiceError(c, err, "failed to load offers")
	}
	return c.JSON(offers)
}

// NextOffer returns the offer to show, or 204 when every active offer has
// reached its impression limit for this client.
func (handler *Handler) NextOffer(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	offer, ok, err := handler.offerService.NextOffer(*user)
	if err != nil {
		return respondServiceError(c, err, "failed to load offers")
	}
	if !ok {
		return sendNoContent(c)
	}
	return c.JSON(offer)
}

func (handler *Handler) MarkOfferSeen(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	updated, err := handler.offerService.RecordImpression(user.ID, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "failed to record offer")
	}
	return c.JSON(fiber.Map{"seen_offers": updated.SeenOffers})
}

func (handler *Handler) ListPackages(c *fiber.Ctx) error {
	packages, err := handler.packageService.List()
	if err != nil {
		return respondServiceError(c, err, "failed to load packages")
	}
	return c.JSON(packages)
}
