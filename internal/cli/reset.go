package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dreambody011-stack/dream--body/internal/db"
	"github.com/dreambody011-stack/dream--body/internal/security"
	"github.com/dreambody011-stack/dream--body/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// RunResetPasswordCommand opens the store at dbPath and gives the client a
// generated password, printed once to out.
func RunResetPasswordCommand(dbPath string, userID string, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}
	return resetClientPassword(database, userID, out)
}

func resetClientPassword(database *gorm.DB, userID string, out io.Writer) error {
	userID = strings.ToUpper(strings.TrimSpace(userID))
	if userID == "" {
		return errors.New("user id is required")
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	profiles := services.NewProfileService(db.NewUserRepository(database))
	if err := profiles.ResetPassword(userID, temporaryPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", userID)
		}
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password for %s: %s\n", userID, temporaryPassword)
	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.RandomString(length, temporaryPasswordAlphabet)
}
