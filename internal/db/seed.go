package db

import (
	"fmt"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
)

// AdminSeed is the admin profile written on first start.
type AdminSeed struct {
	ID           string
	Email        string
	Phone        string
	PasswordHash string
}

// SeedStore initialises every collection that has never been initialised.
// Existing collections are left untouched, so edits survive restarts.
func SeedStore(database *gorm.DB, admin AdminSeed) error {
	return database.Transaction(func(tx *gorm.DB) error {
		initialized, err := NewStoreKeyRepository(tx).Initialized()
		if err != nil {
			return fmt.Errorf("load store keys: %w", err)
		}
		now := time.Now().UTC()

		if !initialized[models.StoreKeyPackages] {
			defaults := models.DefaultPricingPackages()
			for index := range defaults {
				defaults[index].Version = 1
				if err := tx.Create(&defaults[index]).Error; err != nil {
					return fmt.Errorf("seed package %s: %w", defaults[index].ID, err)
				}
			}
		}

		if !initialized[models.StoreKeyConfig] {
			profile := models.AdminProfile{
				ID:           admin.ID,
				Email:        admin.Email,
				Phone:        admin.Phone,
				PasswordHash: admin.PasswordHash,
				UpdatedAt:    now,
			}
			if err := NewAdminRepository(tx).Save(&profile); err != nil {
				return fmt.Errorf("seed admin profile: %w", err)
			}
		}

		missing := make([]string, 0, len(models.StoreKeys))
		for _, key := range []string{
			models.StoreKeyPackages,
			models.StoreKeyConfig,
			models.StoreKeyUsers,
			models.StoreKeyPromos,
			models.StoreKeyOffers,
		} {
			if !initialized[key] {
				missing = append(missing, key)
			}
		}
		return markInitialized(tx, now, missing...)
	})
}
