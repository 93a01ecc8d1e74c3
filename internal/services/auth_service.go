package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid id, email, or password")

type AuthUserRepository interface {
	ListByIdentifier(identifier string) ([]models.User, error)
}

type AdminProfileRepository interface {
	Find() (models.AdminProfile, error)
	Save(profile *models.AdminProfile) error
}

type AuthResult struct {
	Role string
	User *models.User
}

type AuthService struct {
	admin AdminProfileRepository
	users AuthUserRepository
	// allowAdminIDWithoutPassword grants ADMIN on an admin id match alone.
	allowAdminIDWithoutPassword bool
}

func NewAuthService(admin AdminProfileRepository, users AuthUserRepository, allowAdminIDWithoutPassword bool) *AuthService {
	return &AuthService{
		admin:                       admin,
		users:                       users,
		allowAdminIDWithoutPassword: allowAdminIDWithoutPassword,
	}
}

func passwordMatches(hash string, password string) bool {
	return hash != "" && bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticate resolves an identifier (id, email or phone) and password to a
// role. The admin profile is checked before client records.
func (service *AuthService) Authenticate(rawIdentifier string, rawPassword string) (AuthResult, error) {
	identifier := strings.TrimSpace(rawIdentifier)
	password := strings.TrimSpace(rawPassword)
	if identifier == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	admin, err := service.admin.Find()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResult{}, fmt.Errorf("load admin profile: %w", err)
	}
	if err == nil {
		adminPasswordOK := passwordMatches(admin.PasswordHash, password)
		if identifier == admin.ID && (adminPasswordOK || service.allowAdminIDWithoutPassword) {
			return AuthResult{Role: models.RoleAdmin}, nil
		}
		if identifier == admin.Email && adminPasswordOK {
			return AuthResult{Role: models.RoleAdmin}, nil
		}
	}

	candidates, err := service.users.ListByIdentifier(identifier)
	if err != nil {
		return AuthResult{}, fmt.Errorf("load users: %w", err)
	}
	for index := range candidates {
		if passwordMatches(candidates[index].PasswordHash, password) {
			return AuthResult{Role: models.RoleClient, User: &candidates[index]}, nil
		}
	}
	return AuthResult{}, ErrInvalidCredentials
}
