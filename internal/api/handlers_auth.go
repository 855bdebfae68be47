package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/paaga/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	payload := registerPayload{}
	if message, ok := handler.bindPayload(c, &payload); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	user, err := handler.authService.Register(payload.Email, payload.Password, payload.Name, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.blocked(limiterKey, handler.now()) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	payload := loginPayload{}
	if message, ok := handler.bindPayload(c, &payload); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	user, err := handler.authService.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.recordFailure(limiterKey, handler.now())
		}
		return handler.respondError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	token, expiresAt, err := handler.buildToken(&user)
	if err != nil {
		return handler.respondError(c, err)
	}
	handler.setAuthCookie(c, token, expiresAt)

	return c.JSON(fiber.Map{
		"token":                token,
		"must_change_password": user.MustChangePassword,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	payload := changePasswordPayload{}
	if message, ok := handler.bindPayload(c, &payload); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	if err := handler.authService.ChangePassword(callerID(c), payload.CurrentPassword, payload.NewPassword); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
