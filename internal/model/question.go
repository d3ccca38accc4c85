package model

// Difficulty is the closed set of LeetCode difficulty ratings.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// swagger:model
type Question struct {
	UUIDBase
	LeetCodeID  string     `gorm:"size:16;index" json:"leetcode_id,omitempty"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Difficulty  Difficulty `gorm:"size:16;not null" json:"difficulty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	URL         string     `gorm:"size:512" json:"url,omitempty"`
	IsCustom    bool       `gorm:"default:true" json:"is_custom"`
	CreatedBy   string     `gorm:"type:uuid;index" json:"created_by,omitempty"`

	Tags []string `gorm:"-" json:"tags"`
}

func (Question) TableName() string {
	return "questions"
}

// ProblemURL falls back to the public problem URL when none is stored.
func ProblemURL(url, slug string) string {
	if url != "" {
		return url
	}
	return "https://leetcode.com/problems/" + slug + "/"
}

// CanonicalURL falls back to the public problem URL when none is stored.
func (q *Question) CanonicalURL() string {
	return ProblemURL(q.URL, q.Slug)
}

type QuestionTag struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	QuestionID string `gorm:"type:uuid;uniqueIndex:idx_question_tag;not null" json:"question_id"`
	Tag        string `gorm:"size:64;uniqueIndex:idx_question_tag;not null" json:"tag"`
}

func (QuestionTag) TableName() string {
	return "question_tags"
}

// QuestionStats summarizes the stored question bank.
type QuestionStats struct {
	Total      int            `json:"total"`
	Custom     int            `json:"custom"`
	Imported   int            `json:"imported"`
	Difficulty map[string]int `json:"by_difficulty"`
	TagCount   int            `json:"tag_count"`
}
