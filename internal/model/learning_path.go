package model

import "time"

// swagger:model
type LearningPath struct {
	UUIDBase
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description,omitempty"`
	Difficulty     Difficulty `gorm:"size:16" json:"difficulty,omitempty"`
	EstimatedHours int        `gorm:"default:1" json:"estimated_hours"`
	IsPublic       bool       `gorm:"default:false" json:"is_public"`
	CreatedBy      string     `gorm:"type:uuid;index" json:"created_by,omitempty"`

	Tags        []string `gorm:"-" json:"tags"`
	QuestionIDs []string `gorm:"-" json:"question_ids,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

type PathTag struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	PathID string `gorm:"type:uuid;uniqueIndex:idx_path_tag;not null" json:"path_id"`
	Tag    string `gorm:"size:64;uniqueIndex:idx_path_tag;not null" json:"tag"`
}

func (PathTag) TableName() string {
	return "path_tags"
}

// PathQuestion pins a question at a position inside a path's curriculum.
type PathQuestion struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	PathID     string `gorm:"type:uuid;uniqueIndex:idx_path_question;not null" json:"path_id"`
	QuestionID string `gorm:"type:uuid;uniqueIndex:idx_path_question;not null" json:"question_id"`
	OrderIndex int    `gorm:"not null" json:"order_index"`
}

func (PathQuestion) TableName() string {
	return "path_questions"
}

// PathEnrollment links a user to a path. completion_percentage is derived
// bookkeeping, recomputed on completion events.
type PathEnrollment struct {
	UUIDBase
	UserID               string    `gorm:"type:uuid;uniqueIndex:idx_user_path;not null" json:"user_id"`
	PathID               string    `gorm:"type:uuid;uniqueIndex:idx_user_path;not null" json:"path_id"`
	IsActive             bool      `gorm:"default:true" json:"is_active"`
	CompletionPercentage float64   `gorm:"default:0" json:"completion_percentage"`
	EnrolledAt           time.Time `gorm:"autoCreateTime" json:"enrolled_at"`
}

func (PathEnrollment) TableName() string {
	return "user_path_enrollments"
}

// EnrolledPath is the per-enrollment row returned by GET /api/paths/enrolled.
type EnrolledPath struct {
	EnrollmentID         string    `json:"enrollment_id"`
	PathID               string    `json:"path_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Difficulty           string    `json:"difficulty"`
	EstimatedHours       int       `json:"estimated_hours"`
	TotalQuestions       int       `json:"total_questions"`
	CompletedQuestions   int       `json:"completed_questions"`
	IsActive             bool      `json:"is_active"`
	EnrolledAt           time.Time `json:"enrolled_at"`
	CompletionPercentage float64   `json:"completion_percentage"`
}
