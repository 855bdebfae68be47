package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetProgress(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "challengeId")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	progress, err := handler.progressService.ForChallenge(callerID(c), id, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(progress)
}
