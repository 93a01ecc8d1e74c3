package services

import (
	"errors"
	"fmt"

	"github.com/dreambody011-stack/dream--body/internal/db"
	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// ErrVersionConflict is reported when a record changed between read and write.
var ErrVersionConflict = db.ErrVersionConflict

const userWriteAttempts = 3

type UserStore interface {
	FindByID(userID string) (models.User, error)
	Update(user *models.User) error
}

func findUser(users UserStore, userID string) (models.User, error) {
	user, err := users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user %s: %w", userID, err)
	}
	return user, nil
}

// mutateUser applies mutate to a fresh copy of the user and writes it back.
// When a concurrent writer wins, the mutation is replayed on the newer record.
func mutateUser(users UserStore, userID string, mutate func(user *models.User) error) (models.User, error) {
	var lastErr error
	for attempt := 0; attempt < userWriteAttempts; attempt++ {
		user, err := findUser(users, userID)
		if err != nil {
			return models.User{}, err
		}
		if err := mutate(&user); err != nil {
			return models.User{}, err
		}

		lastErr = users.Update(&user)
		if lastErr == nil {
			return user, nil
		}
		if !errors.Is(lastErr, ErrVersionConflict) {
			return models.User{}, fmt.Errorf("save user %s: %w", userID, lastErr)
		}
	}
	return models.User{}, lastErr
}
