package api

import (
	"strings"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/dreambody011-stack/dream--body/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AdminCreatePackage(c *fiber.Ctx) error {
	input := packageInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	created, err := handler.packageService.Create(services.PackageInput{
		Name:           input.Name,
		Price:          input.Price,
		DurationMonths: input.DurationMonths,
		Features:       input.Features,
	})
	if err != nil {
		return respondServiceError(c, err, "failed to create package")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) AdminUpdatePackage(c *fiber.Ctx) error {
	input := packageInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.packageService.Update(c.Params("id"), services.PackageInput{
		Name:           input.Name,
		Price:          input.Price,
		DurationMonths: input.DurationMonths,
		Features:       input.Features,
		Version:        input.Version,
	})
	if err != nil {
		return respondServiceError(c, err, "failed to update package")
	}
	return c.JSON(updated)
}

func (handler *Handler) AdminDeletePackage(c *fiber.Ctx) error {
	if err := handler.packageService.Delete(c.Params("id")); err != nil {
		return respondServiceError(c, err, "failed to delete package")
	}
	return sendNoContent(c)
}

func (handler *Handler) AdminListPromos(c *fiber.Ctx) error {
	promos, err := handler.promoService.List()
	if err != nil {
		return respondServiceError(c, err, "failed to load promo codes")
	}
	return c.JSON(promos)
}

// AdminCreatePromo treats a missing max_usage_total as unlimited.
func (handler *Handler) AdminCreatePromo(c *fiber.Ctx) error {
	input := promoInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	usageCap := models.Unlimited()
	if input.MaxUsageTotal != nil {
		usageCap = *input.MaxUsageTotal
	}
	created, err := handler.promoService.Create(services.PromoInput{
		Code:            input.Code,
		DiscountValue:   input.DiscountValue,
		DiscountType:    strings.ToUpper(strings.TrimSpace(input.DiscountType)),
		Deadline:        input.Deadline,
		MaxUsageTotal:   usageCap,
		MaxUsagePerUser: input.MaxUsagePerUser,
	})
	if err != nil {
		return respondServiceError(c, err, "failed to create promo code")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) AdminDeletePromo(c *fiber.Ctx) error {
	if err := handler.promoService.Delete(c.Params("id")); err != nil {
		return respondServiceError(c, err, "failed to delete promo code")
	}
	return sendNoContent(c)
}

func (handler *Handler) AdminListOffers(c *fiber.Ctx) error {
	offers, err := handler.offerService.List()
	if err != nil {
		return respondServiceError(c, err, "failed to load offers")
	}
	return c.JSON(offers)
}

func (handler *Handler) AdminCreateOffer(c *fiber.Ctx) error {
	input := offerInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	created, err := handler.offerService.Create(input.Title, input.Description, input.ShowLimit, handler.currentTime())
	if err != nil {
		return respondServiceError(c, err, "failed to create offer")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) AdminToggleOffer(c *fiber.Ctx) error {
	offer, err := handler.offerService.Toggle(c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "failed to update offer")
	}
	return c.JSON(offer)
}

func (handler *Handler) AdminDeleteOffer(c *fiber.Ctx) error {
	if err := handler.offerService.Delete(c.Params("id")); err != nil {
		return respondServiceError(c, err, "failed to delete offer")
	}
	return sendNoContent(c)
}
