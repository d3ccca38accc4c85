package model

import "time"

// UserSettings holds per-user feed tuning. A row is created lazily with
// defaults on first read.
type UserSettings struct {
	UserID              string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	PathQuestionsPerDay int       `gorm:"default:3" json:"path_questions_per_day"`
	ReviewIntervalMode  string    `gorm:"size:32;default:standard" json:"review_interval_mode"`
	ReviewRandomized    bool      `gorm:"default:false" json:"review_randomized"`
	PathRandomized      bool      `gorm:"default:false" json:"path_randomized"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

func DefaultUserSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:              userID,
		PathQuestionsPerDay: 3,
		ReviewIntervalMode:  "standard",
	}
}
