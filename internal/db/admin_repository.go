package db

import (
	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminRepository struct {
	database *gorm.DB
}

func NewAdminRepository(database *gorm.DB) *AdminRepository {
	return &AdminRepository{database: database}
}

func (repo *AdminRepository) Find() (models.AdminProfile, error) {
	var profile models.AdminProfile
	if err := repo.database.Where("row_id = ?", models.AdminProfileRowID).First(&profile).Error; err != nil {
		return models.AdminProfile{}, err
	}
	return profile, nil
}

// Save replaces the singleton admin row in place.
func (repo *AdminRepository) Save(profile *models.AdminProfile) error {
	profile.RowID = models.AdminProfileRowID
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "row_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"admin_id", "email", "phone", "password_hash", "updated_at"}),
	}).Create(profile).Error
}
