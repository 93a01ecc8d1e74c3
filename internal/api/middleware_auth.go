package api

import (
	"errors"
	"strings"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/dreambody011-stack/dream--body/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (session, *models.User, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return session{}, nil, errors.New("missing auth cookie")
	}

	current, err := handler.parseToken(rawToken)
	if err != nil {
		return session{}, nil, err
	}
	if current.Role == models.RoleAdmin {
		return current, nil, nil
	}

	user, err := handler.profileService.Get(current.UserID)
	if err != nil {
		return session{}, nil, err
	}
	return current, &user, nil
}

// AuthRequired resolves the session cookie. A client session whose record was
// deleted is treated as signed out.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	current, user, err := handler.authenticateRequest(c)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			handler.clearAuthCookie(c)
		}
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextSessionKey, current)
	if user != nil {
		c.Locals(contextUserKey, user)
	}
	return c.Next()
}

func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !services.IsAdminRole(current.Role) {
		return apiError(c, fiber.StatusForbidden, "admin access required")
	}
	return c.Next()
}

func (handler *Handler) ClientOnly(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !services.IsClientRole(current.Role) {
		return apiError(c, fiber.StatusForbidden, "client access required")
	}
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.Next()
}
