package db

import (
	"strings"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) FindByID(userID string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("id = ?", userID).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByID(userID string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).Where("id = ?", userID).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// ListByIdentifier returns every user whose id, email or phone equals the
// identifier exactly, oldest first.
func (repo *UserRepository) ListByIdentifier(identifier string) ([]models.User, error) {
	users := make([]models.User, 0)
	if identifier == "" {
		return users, nil
	}
	if err := repo.database.
		Where("id = ? OR email = ? OR phone = ?", identifier, identifier, identifier).
		Order("created_at ASC, id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// List returns users whose name or id contains query, ignoring case.
func (repo *UserRepository) List(query string) ([]models.User, error) {
	users := make([]models.User, 0)
	statement := repo.database.Order("created_at ASC, id ASC")
	if trimmed := strings.ToLower(strings.TrimSpace(query)); trimmed != "" {
		pattern := "%" + escapeLike(trimmed) + "%"
		statement = statement.Where(`lower(name) LIKE ? ESCAPE '\' OR lower(id) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if err := statement.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	if user.Version == 0 {
		user.Version = 1
	}
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Update(user *models.User) error {
	return updateVersioned(repo.database, user, user.ID, &user.Version)
}

func (repo *UserRepository) UpdatePassword(userID string, passwordHash string) error {
	return repo.database.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"version":       gorm.Expr("version + 1"),
		}).Error
}

func (repo *UserRepository) Delete(userID string) error {
	return repo.database.Where("id = ?", userID).Delete(&models.User{}).Error
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
