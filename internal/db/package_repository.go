package db

import (
	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
)

type PackageRepository struct {
	database *gorm.DB
}

func NewPackageRepository(database *gorm.DB) *PackageRepository {
	return &PackageRepository{database: database}
}

// List returns packages in insertion order.
func (repo *PackageRepository) List() ([]models.PricingPackage, error) {
	packages := make([]models.PricingPackage, 0)
	if err := repo.database.Order("rowid ASC").Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (repo *PackageRepository) FindByID(packageID string) (models.PricingPackage, error) {
	var pricingPackage models.PricingPackage
	if err := repo.database.Where("id = ?", packageID).First(&pricingPackage).Error; err != nil {
		return models.PricingPackage{}, err
	}
	return pricingPackage, nil
}

func (repo *PackageRepository) Create(pricingPackage *models.PricingPackage) error {
	if pricingPackage.Version == 0 {
		pricingPackage.Version = 1
	}
	return repo.database.Create(pricingPackage).Error
}

func (repo *PackageRepository) Update(pricingPackage *models.PricingPackage) error {
	return updateVersioned(repo.database, pricingPackage, pricingPackage.ID, &pricingPackage.Version)
}

func (repo *PackageRepository) Delete(packageID string) error {
	return repo.database.Where("id = ?", packageID).Delete(&models.PricingPackage{}).Error
}
