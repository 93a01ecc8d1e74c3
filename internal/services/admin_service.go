package services

import (
	"errors"
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAdminProfileMissing = errors.New("admin profile not initialised")
	ErrAdminProfileInvalid = errors.New("admin id and email are required")
)

type AdminProfileInput struct {
	ID          string
	Email       string
	Phone       string
	NewPassword string
}

type AdminService struct {
	admin AdminProfileRepository
}

func NewAdminService(admin AdminProfileRepository) *AdminService {
	return &AdminService{admin: admin}
}

func (service *AdminService) Profile() (models.AdminProfile, error) {
	profile, err := service.admin.Find()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AdminProfile{}, ErrAdminProfileMissing
	}
	return profile, err
}

// UpdateProfile replaces the admin profile. An empty password keeps the
// current one.
func (service *AdminService) UpdateProfile(input AdminProfileInput, now time.Time) (models.AdminProfile, error) {
	id := strings.TrimSpace(input.ID)
	email := strings.TrimSpace(input.Email)
	if id == "" || email == "" {
		return models.AdminProfile{}, ErrAdminProfileInvalid
	}

	current, err := service.Profile()
	if err != nil {
		return models.AdminProfile{}, err
	}

	updated := models.AdminProfile{
		ID:           id,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: current.PasswordHash,
		UpdatedAt:    now.UTC(),
	}
	if password := strings.TrimSpace(input.NewPassword); password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return models.AdminProfile{}, err
		}
		updated.PasswordHash = hash
	}

	if err := service.admin.Save(&updated); err != nil {
		return models.AdminProfile{}, err
	}
	return updated, nil
}
