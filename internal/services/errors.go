package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of
// these so callers can classify it with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInternal        = errors.New("internal error")
)

type kindError struct {
	kind    error
	message string
}

func (err *kindError) Error() string {
	return err.message
}

func (err *kindError) Unwrap() error {
	return err.kind
}

func newKindError(kind error, message string) error {
	return &kindError{kind: kind, message: message}
}

var (
	ErrUserIDRequired        = newKindError(ErrValidation, "user id is required")
	ErrInvalidStartDate      = newKindError(ErrValidation, "invalid start date")
	ErrInvalidDepositedAt    = newKindError(ErrValidation, "invalid deposited_at")
	ErrDayNumberOutOfRange   = newKindError(ErrValidation, "day number must be between 1 and 200")
	ErrChallengeUnresolved   = newKindError(ErrValidation, "challenge does not exist")
	ErrChallengeNotFound     = newKindError(ErrNotFound, "challenge not found")
	ErrDepositNotFound       = newKindError(ErrNotFound, "deposit not found")
	ErrActiveChallengeExists = newKindError(ErrConflict, "an active challenge already exists")
	ErrIdentityMissing       = newKindError(ErrUnauthenticated, "unauthorized")
	ErrNotOwner              = newKindError(ErrForbidden, "access denied")
)

// internalError hides storage detail from callers while keeping it for logs.
func internalError(operation string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, operation, cause)
}

// PublicMessage is the text that may be shown to a caller for err.
func PublicMessage(err error) string {
	var kinded *kindError
	if errors.As(err, &kinded) {
		return kinded.message
	}
	return "internal server error"
}
