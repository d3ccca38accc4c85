package model

import "time"

// SourceType names the feed group a today-question came from.
type SourceType string

const (
	SourcePath   SourceType = "path"
	SourceReview SourceType = "review"
	SourceDaily  SourceType = "daily"
)

func (s SourceType) Valid() bool {
	switch s {
	case SourcePath, SourceReview, SourceDaily:
		return true
	}
	return false
}

// RecommendationTypeNew is the only recommendation_type the feed composer
// writes today; the column exists so other types can be introduced without a
// migration.
const RecommendationTypeNew = "new"

// DailyRecommendation is one date-stamped pick shown to a user. The unique
// index over (user_id, date, question_id, recommendation_type) is what makes
// concurrent feed generation safe: inserts racing on the same key resolve as
// conflict-ignored no-ops.
type DailyRecommendation struct {
	UUIDBase
	UserID             string     `gorm:"type:uuid;uniqueIndex:idx_daily_rec;not null" json:"user_id"`
	Date               time.Time  `gorm:"type:date;uniqueIndex:idx_daily_rec;not null" json:"date"`
	QuestionID         string     `gorm:"type:uuid;uniqueIndex:idx_daily_rec;not null" json:"question_id"`
	RecommendationType string     `gorm:"size:16;uniqueIndex:idx_daily_rec;not null;default:new" json:"recommendation_type"`
	PathID             *string    `gorm:"type:uuid" json:"path_id,omitempty"`
	PriorityScore      float64    `gorm:"default:0" json:"priority_score"`
	IsCompleted        bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

func (DailyRecommendation) TableName() string {
	return "daily_recommendations"
}
