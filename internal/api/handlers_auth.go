package api

import (
	"errors"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/dreambody011-stack/dream--body/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Register creates a client and signs it in. The response carries the new
// login id, which is the only place the client learns it.
func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.currentTime()
	user, err := handler.profileService.Register(services.RegistrationInput{
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		Password:          input.Password,
		ConfirmPassword:   input.ConfirmPassword,
		Gender:            input.Gender,
		DOB:               input.DOB,
		Height:            input.Height,
		Weight:            input.Weight,
		FitnessGoal:       input.FitnessGoal,
		TargetBody:        input.TargetBody,
		WeeklyWorkoutDays: input.WeeklyWorkoutDays,
		ActivityLevel:     input.ActivityLevel,
		Allergies:         input.Allergies,
		FoodDislikes:      input.FoodDislikes,
		ForbiddenFoods:    input.ForbiddenFoods,
	}, now)
	if err != nil {
		return respondServiceError(c, err, "failed to create account")
	}

	if err := handler.setAuthCookie(c, session{Role: models.RoleClient, UserID: user.ID}); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"role": models.RoleClient,
		"user": newClientView(user, now),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.currentTime()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := loginInput{}
	if err := parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.authService.Authenticate(input.Identifier, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.addFailure(limiterKey, now)
		}
		return respondServiceError(c, err, "failed to sign in")
	}
	handler.loginLimiter.reset(limiterKey)

	current := session{Role: result.Role}
	if result.User != nil {
		current.UserID = result.User.ID
	}
	if err := handler.setAuthCookie(c, current); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	payload := fiber.Map{"role": result.Role}
	if result.User != nil {
		payload["user"] = newClientView(*result.User, now)
	}
	return c.JSON(payload)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// Session reports the signed-in principal in the backup's session shape.
func (handler *Handler) Session(c *fiber.Ctx) error {
	current, _ := currentSession(c)
	return c.JSON(services.SessionInfo{Type: current.Role, UserID: current.UserID})
}
