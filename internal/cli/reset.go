package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/paaga/internal/db"
	"github.com/terraincognita07/paaga/internal/services"
	"go.uber.org/zap"
)

// RunResetPasswordCommand issues a temporary password for email and prints it
// to out. The account must choose a new password after the next login.
func RunResetPasswordCommand(dbPath string, email string, out io.Writer, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if services.NormalizeAuthEmail(email) == "" {
		return errors.New("a valid email is required")
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if closeErr := db.Close(database); closeErr != nil && err == nil {
			err = fmt.Errorf("close database: %w", closeErr)
		}
	}()

	authService := services.NewAuthService(db.NewUserRepository(database))
	temporaryPassword, err := authService.IssueTemporaryPassword(email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", services.NormalizeAuthEmail(email))
		}
		return fmt.Errorf("reset password: %w", err)
	}

	logger.Info("temporary password issued", zap.String("email", services.NormalizeAuthEmail(email)))

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "The user must change it after the next login.")
	return nil
}
