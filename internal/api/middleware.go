package api

import (
	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName    = "dreambody_auth"
	contextSessionKey = "current_session"
	contextUserKey    = "current_user"
)

// session is the signed-in principal. UserID is empty for the admin.
type session struct {
	Role   string
	UserID string
}

func currentSession(c *fiber.Ctx) (session, bool) {
	value, ok := c.Locals(contextSessionKey).(session)
	return value, ok
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
