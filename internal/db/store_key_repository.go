package db

import (
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoreKeyRepository struct {
	database *gorm.DB
}

func NewStoreKeyRepository(database *gorm.DB) *StoreKeyRepository {
	return &StoreKeyRepository{database: database}
}

func (repo *StoreKeyRepository) Initialized() (map[string]bool, error) {
	rows := make([]models.StoreKey, 0)
	if err := repo.database.Find(&rows).Error; err != nil {
		return nil, err
	}
	initialized := make(map[string]bool, len(rows))
	for _, row := range rows {
		initialized[row.Key] = true
	}
	return initialized, nil
}

func (repo *StoreKeyRepository) MarkInitialized(keys ...string) error {
	return markInitialized(repo.database, time.Now().UTC(), keys...)
}

func markInitialized(database *gorm.DB, at time.Time, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	rows := make([]models.StoreKey, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, models.StoreKey{Key: key, InitializedAt: at})
	}
	return database.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
