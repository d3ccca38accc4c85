package model

// swagger:model
type User struct {
	UUIDBase
	Email            string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username         string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash     string `gorm:"size:255;not null" json:"-"`
	LeetCodeUsername string `gorm:"size:64" json:"leetcode_username,omitempty"`
	IsAdmin          bool   `gorm:"default:false" json:"is_admin"`
}

func (User) TableName() string {
	return "users"
}

// UserStats aggregates a user's progress for the profile endpoint.
// Streak fields are placeholders supplied by an external stats collaborator;
// there is no in-repo streak algorithm.
type UserStats struct {
	TotalQuestionsAttempted int `json:"total_questions_attempted"`
	TotalQuestionsSolved    int `json:"total_questions_solved"`
	EasySolved              int `json:"easy_solved"`
	MediumSolved            int `json:"medium_solved"`
	HardSolved              int `json:"hard_solved"`
	CurrentStreak           int `json:"current_streak"`
	LongestStreak           int `json:"longest_streak"`
	EnrolledPaths           int `json:"enrolled_paths"`
	CompletedPaths          int `json:"completed_paths"`
}
