package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/models"
	"github.com/terraincognita07/wellnest/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Language == "" {
		input.Language = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}

	now := handler.now()
	user, err := handler.authService.Register(services.RegisterInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Language:    input.Language,
	}, now)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create account")
	}
	return handler.startSession(c, &user, now, fiber.StatusCreated)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c)
	if !handler.loginLimiter.allow(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return handler.respondServiceError(c, err, "failed to sign in")
	}

	handler.loginLimiter.reset(limiterKey)
	return handler.startSession(c, &user, now, fiber.StatusOK)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) startSession(c *fiber.Ctx, user *models.User, now time.Time, status int) error {
	token, expiresAt, err := handler.buildToken(user, now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.setAuthCookie(c, token, expiresAt)
	return c.Status(status).JSON(fiber.Map{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt.UTC(),
	})
}
