package api

import (
	"encoding/json"
	"fmt"

	"github.com/dreambody011-stack/dream--body/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AdminProfile(c *fiber.Ctx) error {
	profile, err := handler.adminService.Profile()
	if err != nil {
		return respondServiceError(c, err, "failed to load admin profile")
	}
	return c.JSON(profile)
}

func (handler *Handler) AdminUpdateProfile(c *fiber.Ctx) error {
	input := adminProfileInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.adminService.UpdateProfile(services.AdminProfileInput{
		ID:          input.ID,
		Email:       input.Email,
		Phone:       input.Phone,
		NewPassword: input.NewPassword,
	}, handler.currentTime())
	if err != nil {
		return respondServiceError(c, err, "failed to update admin profile")
	}
	return c.JSON(updated)
}

// AdminExport downloads the whole store as one JSON document.
func (handler *Handler) AdminExport(c *fiber.Ctx) error {
	current, _ := currentSession(c)
	backup, err := handler.exportService.BuildBackup(&services.SessionInfo{Type: current.Role, UserID: current.UserID})
	if err != nil {
		return respondServiceError(c, err, "failed to build backup")
	}

	body, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to encode backup")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", services.BackupFileName(handler.currentTime())))
	return c.Send(body)
}
