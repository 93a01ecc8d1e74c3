package services

import (
	"errors"
	"testing"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubAdminRepo struct {
	profile *models.AdminProfile
	saves   int
}

func (repo *stubAdminRepo) Find() (models.AdminProfile, error) {
	if repo.profile == nil {
		return models.AdminProfile{}, gorm.ErrRecordNotFound
	}
	return *repo.profile, nil
}

func (repo *stubAdminRepo) Save(profile *models.AdminProfile) error {
	stored := *profile
	repo.profile = &stored
	repo.saves++
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func newAuthFixture(t *testing.T, allowBypass bool) *AuthService {
	t.Helper()

	admin := &stubAdminRepo{profile: &models.AdminProfile{
		ID:           "COACH1",
		Email:        "coach@dreambody.local",
		PasswordHash: mustHash(t, "AdminPass1"),
	}}
	users := newStubUserRepo(models.User{
		ID:           "CLI234",
		Email:        "client@dreambody.local",
		Phone:        "01000000001",
		PasswordHash: mustHash(t, "ClientPass"),
	})
	return NewAuthService(admin, users, allowBypass)
}

func TestAuthenticateMatrix(t *testing.T) {
	t.Parallel()

	service := newAuthFixture(t, false)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantRole   string
		wantErr    error
	}{
		{name: "admin id with password", identifier: "COACH1", password: "AdminPass1", wantRole: models.RoleAdmin},
		{name: "admin id wrong password", identifier: "COACH1", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "admin email with password", identifier: "coach@dreambody.local", password: "AdminPass1", wantRole: models.RoleAdmin},
		{name: "admin email wrong password", identifier: "coach@dreambody.local", password: "x", wantErr: ErrInvalidCredentials},
		{name: "client id", identifier: "CLI234", password: "ClientPass", wantRole: models.RoleClient},
		{name: "client email", identifier: "client@dreambody.local", password: "ClientPass", wantRole: models.RoleClient},
		{name: "client phone trimmed", identifier: "  01000000001 ", password: " ClientPass ", wantRole: models.RoleClient},
		{name: "client password is case sensitive", identifier: "CLI234", password: "clientpass", wantErr: ErrInvalidCredentials},
		{name: "client id is case sensitive", identifier: "cli234", password: "ClientPass", wantErr: ErrInvalidCredentials},
		{name: "empty identifier", identifier: "", password: "ClientPass", wantErr: ErrInvalidCredentials},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			result, err := service.Authenticate(test.identifier, test.password)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Authenticate() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() unexpected error: %v", err)
			}
			if result.Role != test.wantRole {
				t.Fatalf("Authenticate() role = %q, want %q", result.Role, test.wantRole)
			}
			if test.wantRole == models.RoleClient && (result.User == nil || result.User.ID != "CLI234") {
				t.Fatalf("expected client record, got %#v", result.User)
			}
		})
	}
}

func TestAuthenticateAdminIDBypassIsOptIn(t *testing.T) {
	t.Parallel()

	result, err := newAuthFixture(t, true).Authenticate("COACH1", "anything")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if result.Role != models.RoleAdmin {
		t.Fatalf("expected ADMIN with bypass enabled, got %q", result.Role)
	}

	if _, err := newAuthFixture(t, true).Authenticate("coach@dreambody.local", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected email login to still require the password, got %v", err)
	}
}

func TestAuthenticateWithoutAdminProfileFallsBackToClients(t *testing.T) {
	t.Parallel()

	users := newStubUserRepo(models.User{ID: "SOL234", PasswordHash: mustHash(t, "pw")})
	service := NewAuthService(&stubAdminRepo{}, users, false)

	result, err := service.Authenticate("SOL234", "pw")
	if err != nil || result.Role != models.RoleClient {
		t.Fatalf("expected client login, got role=%q err=%v", result.Role, err)
	}
}
