package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/paaga/internal/models"
)

const (
	authCookieName = "paaga_auth"
	contextUserKey = "current_user"
	requestIDKey   = "requestid"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// callerID is the opaque identity handed to the services; empty when the
// request is anonymous.
func callerID(c *fiber.Ctx) string {
	if user, ok := currentUser(c); ok && user != nil {
		return user.ID
	}
	return ""
}

func requestID(c *fiber.Ctx) string {
	value, _ := c.Locals(requestIDKey).(string)
	return value
}
