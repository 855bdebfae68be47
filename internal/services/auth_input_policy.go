package services

import (
	"html"
	"net/mail"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	minDisplayNameLength = 2
	maxDisplayNameLength = 100
)

var (
	ErrAuthCredentialsInvalid = newKindError(ErrUnauthenticated, "invalid email or password")
	ErrInvalidEmail           = newKindError(ErrValidation, "invalid email")
	ErrInvalidDisplayName     = newKindError(ErrValidation, "name must be between 2 and 100 characters")
)

var displayNamePolicy = bluemonday.StrictPolicy()

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" || strings.TrimSpace(passwordRaw) == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, passwordRaw, nil
}

// SanitizeDisplayName strips markup and quote characters from a user supplied
// name. An empty input is allowed and stays empty.
func SanitizeDisplayName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	if !displayNameLengthValid(trimmed) {
		return "", ErrInvalidDisplayName
	}

	cleaned := html.UnescapeString(displayNamePolicy.Sanitize(trimmed))
	cleaned = strings.Map(func(char rune) rune {
		switch char {
		case '<', '>', '"', '\'', '&':
			return -1
		}
		return char
	}, cleaned)
	cleaned = strings.TrimSpace(cleaned)

	if !displayNameLengthValid(cleaned) {
		return "", ErrInvalidDisplayName
	}
	return cleaned, nil
}

func displayNameLengthValid(value string) bool {
	length := len([]rune(value))
	return length >= minDisplayNameLength && length <= maxDisplayNameLength
}
