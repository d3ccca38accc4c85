package repository

import (
	"errors"

	"leettrack_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// GetOrCreate returns the user's settings row, seeding defaults on first use.
func (r *SettingsRepository) GetOrCreate(userID string) (*model.UserSettings, error) {
	var settings model.UserSettings
	err := r.DB.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = *model.DefaultUserSettings(userID)
	err = r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error
	if err != nil {
		return nil, err
	}
	// Re-read in case a concurrent request won the insert.
	if err := r.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save upserts the full settings row keyed on user_id.
func (r *SettingsRepository) Save(settings *model.UserSettings) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"path_questions_per_day",
			"review_interval_mode",
			"review_randomized",
			"path_randomized",
		}),
	}).Create(settings).Error
}
