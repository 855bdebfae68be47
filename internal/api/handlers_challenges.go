package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ListChallenges lists the challenges of ?user_id=, defaulting to the caller.
func (handler *Handler) ListChallenges(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		userID = callerID(c)
	}

	challenges, err := handler.challengeService.ListForUser(callerID(c), userID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(challenges)
}

func (handler *Handler) CurrentChallenge(c *fiber.Ctx) error {
	caller := callerID(c)
	challenge, found, err := handler.challengeService.GetForUser(caller, caller)
	if err != nil {
		return handler.respondError(c, err)
	}
	if !found {
		return c.JSON(fiber.Map{"challenge": nil})
	}
	return c.JSON(fiber.Map{"challenge": challenge})
}

func (handler *Handler) CreateChallenge(c *fiber.Ctx) error {
	payload := createChallengePayload{}
	if message, ok := handler.bindPayload(c, &payload); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	userID := strings.TrimSpace(payload.UserID)
	if userID == "" {
		userID = callerID(c)
	}

	challenge, err := handler.challengeService.Create(callerID(c), userID, payload.StartDate, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(challenge)
}

func (handler *Handler) GetChallenge(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	challenge, err := handler.challengeService.Get(callerID(c), id)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(challenge)
}

func (handler *Handler) UpdateChallenge(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	payload := updateChallengePayload{}
	if message, ok := handler.bindPayload(c, &payload); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	challenge, err := handler.challengeService.UpdateStartDate(callerID(c), id, payload.StartDate)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(challenge)
}

func (handler *Handler) ChallengeCalendar(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	days, err := handler.progressService.Calendar(callerID(c), id, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"challenge_id": id, "days": days})
}
