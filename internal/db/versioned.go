package db

import "gorm.io/gorm"

// updateVersioned writes every column of model when the stored version still
// equals the version the caller read. On success the caller's version is bumped.
func updateVersioned(database *gorm.DB, model any, id string, version *uint) error {
	expected := *version
	*version = expected + 1

	result := database.Model(model).
		Where("id = ? AND version = ?", id, expected).
		Select("*").
		Updates(model)
	if result.Error != nil {
		*version = expected
		return result.Error
	}
	if result.RowsAffected == 0 {
		*version = expected
		return ErrVersionConflict
	}
	return nil
}
