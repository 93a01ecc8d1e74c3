package api

import (
	"errors"
	"log"
	"strings"

	"github.com/dreambody011-stack/dream--body/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

var serviceErrorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{services.ErrProfilePasswordInvalid, fiber.StatusUnauthorized},
	{services.ErrPlanAccessLocked, fiber.StatusForbidden},
	{services.ErrUserNotFound, fiber.StatusNotFound},
	{services.ErrPackageNotFound, fiber.StatusNotFound},
	{services.ErrPromoNotFound, fiber.StatusNotFound},
	{services.ErrOfferNotFound, fiber.StatusNotFound},
	{services.ErrAdminProfileMissing, fiber.StatusNotFound},
	{services.ErrVersionConflict, fiber.StatusConflict},
	{services.ErrGenerationInProgress, fiber.StatusConflict},
	{services.ErrPromoBusy, fiber.StatusConflict},
	{services.ErrPromoCodeTaken, fiber.StatusConflict},
	{services.ErrNoPendingRequest, fiber.StatusConflict},
	{services.ErrRegistrationInvalid, fiber.StatusBadRequest},
	{services.ErrPasswordMismatch, fiber.StatusBadRequest},
	{services.ErrProfilePasswordMismatch, fiber.StatusBadRequest},
	{services.ErrProfileInvalid, fiber.StatusBadRequest},
	{services.ErrWeightInvalid, fiber.StatusBadRequest},
	{services.ErrPaymentMethodInvalid, fiber.StatusBadRequest},
	{services.ErrPackageInvalid, fiber.StatusBadRequest},
	{services.ErrPackagePriceInvalid, fiber.StatusBadRequest},
	{services.ErrPromoExpired, fiber.StatusBadRequest},
	{services.ErrPromoExhausted, fiber.StatusBadRequest},
	{services.ErrPromoUserLimit, fiber.StatusBadRequest},
	{services.ErrPromoInvalid, fiber.StatusBadRequest},
	{services.ErrOfferInvalid, fiber.StatusBadRequest},
	{services.ErrAdminProfileInvalid, fiber.StatusBadRequest},
	{services.ErrChatQueryEmpty, fiber.StatusBadRequest},
}

// respondServiceError maps a service sentinel to its status. Anything else is
// logged and reported as a storage failure.
func respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	for _, mapping := range serviceErrorStatuses {
		if errors.Is(err, mapping.err) {
			return apiError(c, mapping.status, mapping.err.Error())
		}
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return apiError(c, fiber.StatusInternalServerError, fallback)
}

func parseBody(c *fiber.Ctx, target any) error {
	if len(strings.TrimSpace(string(c.Body()))) == 0 {
		return nil
	}
	return c.BodyParser(target)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
