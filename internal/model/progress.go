package model

import "time"

// ProgressStatus is the closed set of states a (user, question, path) record
// can be in.
type ProgressStatus string

const (
	StatusInProgress  ProgressStatus = "in_progress"
	StatusCompleted   ProgressStatus = "completed"
	StatusNeedsReview ProgressStatus = "needs_review"
)

// QuestionProgress tracks a user's work on a question, optionally scoped to a
// path. A nil PathID means the record is kept independent of any path; the
// (user_id, question_id, path_id) triple is the natural key.
type QuestionProgress struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID           string         `gorm:"type:uuid;uniqueIndex:idx_user_question_path;not null" json:"user_id"`
	QuestionID       string         `gorm:"type:uuid;uniqueIndex:idx_user_question_path;not null" json:"question_id"`
	PathID           *string        `gorm:"type:uuid;uniqueIndex:idx_user_question_path" json:"path_id,omitempty"`
	Status           ProgressStatus `gorm:"size:16;not null;default:in_progress" json:"status"`
	WantsReview      bool           `gorm:"default:false" json:"wants_review"`
	NextReviewDate   *time.Time     `gorm:"type:date" json:"next_review_date,omitempty"`
	ReviewCount      int            `gorm:"default:0" json:"review_count"`
	FirstAttemptedAt *time.Time     `json:"first_attempted_at,omitempty"`
	LastAttemptedAt  *time.Time     `json:"last_attempted_at,omitempty"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
}

func (QuestionProgress) TableName() string {
	return "user_question_progress"
}

// ReviewQuestion is a review-flagged question inside a path, as returned by
// GET /api/paths/reviews.
type ReviewQuestion struct {
	ID              string     `json:"id"`
	LeetCodeID      string     `json:"leetcode_id,omitempty"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Difficulty      string     `json:"difficulty"`
	URL             string     `json:"url,omitempty"`
	Tags            []string   `json:"tags"`
	WantsReview     bool       `json:"wants_review"`
	NextReviewDate  *time.Time `json:"next_review_date,omitempty"`
	ReviewCount     int        `json:"review_count"`
	LastAttemptedAt *time.Time `json:"last_attempted_at,omitempty"`
}
