package api

import (
	"github.com/dreambody011-stack/dream--body/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AdminListUsers(c *fiber.Ctx) error {
	users, err := handler.profileService.ListUsers(c.Query("q"))
	if err != nil {
		return respondServiceError(c, err, "failed to load users")
	}
	return c.JSON(newUserViews(users, handler.currentTime()))
}

func (handler *Handler) AdminGetUser(c *fiber.Ctx) error {
	user, err := handler.profileService.Get(c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "failed to load user")
	}
	return c.JSON(newUserView(user, handler.currentTime()))
}

func (handler *Handler) AdminUpdateUser(c *fiber.Ctx) error {
	input := adminUserInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.profileService.AdminUpdateUser(c.Params("id"), services.AdminUserUpdate{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		WorkoutPlan:   input.WorkoutPlan,
		DietPlan:      input.DietPlan,
		Notes:         input.Notes,
		TransactionID: input.TransactionID,
		Version:       input.Version,
	})
	if err != nil {
		return respondServiceError(c, err, "failed to update user")
	}
	return c.JSON(newUserView(updated, handler.currentTime()))
}

func (handler *Handler) AdminDeleteUser(c *fiber.Ctx) error {
	if err := handler.profileService.DeleteUser(c.Params("id")); err != nil {
		return respondServiceError(c, err, "failed to delete user")
	}
	return sendNoContent(c)
}

func (handler *Handler) AdminApproveRequest(c *fiber.Ctx) error {
	now := handler.currentTime()
	updated, err := handler.subscriptionService.ApproveRequest(c.UserContext(), c.Params("id"), now)
	if err != nil {
		return respondServiceError(c, err, "failed to approve request")
	}
	return c.JSON(newUserView(updated, now))
}

func (handler *Handler) AdminSetActive(c *fiber.Ctx) error {
	input := activeInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.currentTime()
	updated, err := handler.subscriptionService.SetActive(c.UserContext(), c.Params("id"), input.Active, now)
	if err != nil {
		return respondServiceError(c, err, "failed to update subscription")
	}
	return c.JSON(newUserView(updated, now))
}
