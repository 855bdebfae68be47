package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/paaga/internal/services"
)

func (handler *Handler) ListDeposits(c *fiber.Ctx) error {
	challengeID, err := parseID(c.Query("challenge_id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "challenge_id is required")
	}

	deposits, err := handler.depositService.List(callerID(c), challengeID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(deposits)
}

// RecordDeposit answers 201 when the day was new and 200 when an existing
// deposit was overwritten.
func (handler *Handler) RecordDeposit(c *fiber.Ctx) error {
	payload := recordDepositPayload{}
	if message, ok := handler.bindPayload(c, &payload); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	depositedAt, err := parseDepositedAt(payload.DepositedAt)
	if err != nil {
		return handler.respondError(c, err)
	}

	caller := callerID(c)
	challengeID := uint(payload.ChallengeID)
	now := handler.now()
	deposit, created, err := handler.depositService.RecordDeposit(caller, challengeID, *payload.DayNumber, depositedAt, now)
	if err != nil {
		return handler.respondError(c, err)
	}

	progress, err := handler.progressService.ForChallenge(caller, challengeID, now)
	if err != nil {
		return handler.respondError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"deposit":  deposit,
		"created":  created,
		"progress": progress,
	})
}

func (handler *Handler) DeleteDeposit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid deposit id")
	}

	caller := callerID(c)
	deposit, err := handler.depositService.RemoveDeposit(caller, id)
	if err != nil {
		return handler.respondError(c, err)
	}

	progress, err := handler.progressService.ForChallenge(caller, deposit.ChallengeID, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "deposit removed",
		"progress": progress,
	})
}

func parseDepositedAt(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, trimmed)
	if err != nil {
		return nil, services.ErrInvalidDepositedAt
	}
	parsed = parsed.UTC()
	return &parsed, nil
}
