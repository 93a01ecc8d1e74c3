package db

import (
	"errors"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
)

// ErrUsageCapReached is returned when a promo code ran out of redemptions
// between validation and the counter update.
var ErrUsageCapReached = errors.New("promo usage cap reached")

type PromoRepository struct {
	database *gorm.DB
}

func NewPromoRepository(database *gorm.DB) *PromoRepository {
	return &PromoRepository{database: database}
}

func (repo *PromoRepository) List() ([]models.PromoCode, error) {
	codes := make([]models.PromoCode, 0)
	if err := repo.database.Order("rowid ASC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (repo *PromoRepository) FindByCode(code string) (models.PromoCode, error) {
	var promo models.PromoCode
	if err := repo.database.Where("code = ?", code).First(&promo).Error; err != nil {
		return models.PromoCode{}, err
	}
	return promo, nil
}

func (repo *PromoRepository) Create(promo *models.PromoCode) error {
	return repo.database.Create(promo).Error
}

func (repo *PromoRepository) Delete(promoID string) error {
	return repo.database.Where("id = ?", promoID).Delete(&models.PromoCode{}).Error
}

// UpdateUsage moves promo counters and persists the user record in one
// transaction. refundID, when set, gives one use back; redeemID, when set,
// takes one while the counter is below the total cap. A refund of a code that
// no longer exists only saves the user.
func (repo *PromoRepository) UpdateUsage(redeemID string, refundID string, user *models.User) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if refundID != "" {
			err := tx.Model(&models.PromoCode{}).
				Where("id = ? AND current_usage_count > 0", refundID).
				UpdateColumn("current_usage_count", gorm.Expr("current_usage_count - 1")).Error
			if err != nil {
				return err
			}
		}
		if redeemID != "" {
			result := tx.Model(&models.PromoCode{}).
				Where("id = ? AND (max_usage_total IS NULL OR current_usage_count < max_usage_total)", redeemID).
				UpdateColumn("current_usage_count", gorm.Expr("current_usage_count + 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrUsageCapReached
			}
		}
		return updateVersioned(tx, user, user.ID, &user.Version)
	})
}
