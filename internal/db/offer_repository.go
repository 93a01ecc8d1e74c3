package db

import (
	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
)

type OfferRepository struct {
	database *gorm.DB
}

func NewOfferRepository(database *gorm.DB) *OfferRepository {
	return &OfferRepository{database: database}
}

// List returns offers in creation order.
func (repo *OfferRepository) List() ([]models.Offer, error) {
	offers := make([]models.Offer, 0)
	if err := repo.database.Order("created_at ASC, rowid ASC").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (repo *OfferRepository) FindByID(offerID string) (models.Offer, error) {
	var offer models.Offer
	if err := repo.database.Where("id = ?", offerID).First(&offer).Error; err != nil {
		return models.Offer{}, err
	}
	return offer, nil
}

func (repo *OfferRepository) Create(offer *models.Offer) error {
	return repo.database.Create(offer).Error
}

func (repo *OfferRepository) SetActive(offerID string, active bool) error {
	return repo.database.Model(&models.Offer{}).Where("id = ?", offerID).Update("is_active", active).Error
}

func (repo *OfferRepository) Delete(offerID string) error {
	return repo.database.Where("id = ?", offerID).Delete(&models.Offer{}).Error
}
