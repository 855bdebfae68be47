package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type registerPayload struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"max=500"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type createChallengePayload struct {
	StartDate string `json:"start_date" validate:"required"`
	UserID    string `json:"user_id"`
}

type updateChallengePayload struct {
	StartDate string `json:"start_date" validate:"required"`
}

// recordDepositPayload accepts an amount for compatibility with older
// clients; it is never used.
type recordDepositPayload struct {
	ChallengeID flexibleID `json:"challenge_id" validate:"required"`
	DayNumber   *int       `json:"day_number" validate:"required"`
	DepositedAt *string    `json:"deposited_at"`
	Amount      *float64   `json:"amount"`
}

// flexibleID decodes an id sent either as a JSON number or as a numeric string.
type flexibleID uint

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = 0
		return nil
	}
	raw := string(trimmed)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	value, err := parseID(raw)
	if err != nil {
		return fmt.Errorf("invalid id %s", string(trimmed))
	}
	*id = flexibleID(value)
	return nil
}

func newPayloadValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return validate
}

// bindPayload decodes the JSON body into payload and validates it. The
// returned message is safe to show to the client.
func (handler *Handler) bindPayload(c *fiber.Ctx, payload any) (string, bool) {
	if err := json.Unmarshal(c.Body(), payload); err != nil {
		return "invalid request body", false
	}
	if err := handler.validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return validationMessage(validationErrors[0]), false
		}
		return "invalid request body", false
	}
	return "", true
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}
