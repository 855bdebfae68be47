package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/paaga/internal/models"
	"github.com/terraincognita07/paaga/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	passwordHashCost        = 12
	temporaryPasswordLength = 12
)

var (
	ErrEmailAlreadyRegistered = newKindError(ErrConflict, "email already registered")
	ErrCurrentPasswordInvalid = newKindError(ErrValidation, "current password is incorrect")
	ErrPasswordUnchanged      = newKindError(ErrValidation, "new password must differ from the current one")
	ErrUserNotFound           = newKindError(ErrNotFound, "user not found")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID string) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID string, passwordHash string, mustChangePassword bool) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) Register(emailRaw string, password string, nameRaw string, now time.Time) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}
	name, err := SanitizeDisplayName(nameRaw)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, internalError("check registered email", err)
	}
	if exists {
		return models.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return models.User{}, internalError("hash password", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		if isUniqueConstraintError(err) {
			return models.User{}, ErrEmailAlreadyRegistered
		}
		return models.User{}, internalError("create user", err)
	}
	return user, nil
}

// Authenticate returns ErrAuthCredentialsInvalid for both an unknown email and
// a wrong password.
func (service *AuthService) Authenticate(emailRaw string, password string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, password)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		return models.User{}, internalError("load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID string) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrIdentityMissing
		}
		return models.User{}, internalError("load user", err)
	}
	return user, nil
}

// ChangePassword replaces the password of userID after checking the current
// one and clears the forced-change flag set by an operator reset.
func (service *AuthService) ChangePassword(userID string, currentPassword string, newPassword string) error {
	user, err := service.FindByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrCurrentPasswordInvalid
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	if newPassword == currentPassword {
		return ErrPasswordUnchanged
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordHashCost)
	if err != nil {
		return internalError("hash password", err)
	}
	if err := service.users.UpdatePassword(user.ID, string(hash), false); err != nil {
		return internalError("update password", err)
	}
	return nil
}

// IssueTemporaryPassword replaces the password of the account registered under
// emailRaw with a random one and flags the account so the owner must change
// it after signing in.
func (service *AuthService) IssueTemporaryPassword(emailRaw string) (string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", ErrInvalidEmail
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", internalError("load user", err)
	}

	temporary, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", internalError("generate temporary password", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), passwordHashCost)
	if err != nil {
		return "", internalError("hash password", err)
	}
	if err := service.users.UpdatePassword(user.ID, string(hash), true); err != nil {
		return "", internalError("update password", err)
	}
	return temporary, nil
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
