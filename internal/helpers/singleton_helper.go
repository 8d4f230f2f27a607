package helpers

import (
	"errors"

	"github.com/nusantaramc/cms/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadSingleton returns the single row of T, inserting defaults() first if
// the row does not exist yet. The insert ignores conflicts so two requests
// racing on an empty table both end up reading the same row.
func LoadSingleton[T any](db *gorm.DB, defaults func() T) (*T, error) {
	var record T
	err := db.First(&record, models.SingletonID).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seed := defaults()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}

	if err := db.First(&record, models.SingletonID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
