package services

import "unicode"

const (
	minPasswordLength = 8
	maxPasswordLength = 100
)

var ErrWeakPassword = newKindError(ErrValidation, "password must be 8 to 100 characters and contain a letter and a digit")

func ValidatePasswordStrength(password string) error {
	length := len([]rune(password))
	if length < minPasswordLength || length > maxPasswordLength {
		return ErrWeakPassword
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		switch {
		case char <= unicode.MaxASCII && unicode.IsLetter(char):
			hasLetter = true
		case char >= '0' && char <= '9':
			hasDigit = true
		}
	}

	if hasLetter && hasDigit {
		return nil
	}
	return ErrWeakPassword
}
