package repository

import (
	"errors"
	"time"

	"leettrack_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// progressConflict is the natural key of user_question_progress.
var progressConflict = []clause.Column{
	{Name: "user_id"},
	{Name: "question_id"},
	{Name: "path_id"},
}

// Find returns the progress row for (user, question, path-or-nil), or nil
// when the user has never touched the question in that scope.
func (r *ProgressRepository) Find(userID, questionID string, pathID *string) (*model.QuestionProgress, error) {
	q := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID)
	if pathID == nil {
		q = q.Where("path_id IS NULL")
	} else {
		q = q.Where("path_id = ?", *pathID)
	}

	var progress model.QuestionProgress
	if err := q.First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

// ScheduleReview upserts the progress row into the needs_review state.
// first_attempted_at is only set on insert; updates keep the original value.
func (r *ProgressRepository) ScheduleReview(userID, questionID string, pathID *string, nextReviewDate time.Time, reviewCount int, now time.Time) error {
	row := model.QuestionProgress{
		UserID:           userID,
		QuestionID:       questionID,
		PathID:           pathID,
		Status:           model.StatusNeedsReview,
		WantsReview:      true,
		NextReviewDate:   &nextReviewDate,
		ReviewCount:      reviewCount,
		FirstAttemptedAt: &now,
		LastAttemptedAt:  &now,
	}
	return r.upsert(userID, questionID, pathID, row, map[string]interface{}{
		"status":            model.StatusNeedsReview,
		"wants_review":      true,
		"next_review_date":  nextReviewDate,
		"review_count":      reviewCount,
		"last_attempted_at": now,
	})
}

// MarkCompleted upserts the progress row into the completed state.
func (r *ProgressRepository) MarkCompleted(userID, questionID string, pathID *string, now time.Time) error {
	row := model.QuestionProgress{
		UserID:           userID,
		QuestionID:       questionID,
		PathID:           pathID,
		Status:           model.StatusCompleted,
		FirstAttemptedAt: &now,
		LastAttemptedAt:  &now,
		CompletedAt:      &now,
	}
	return r.upsert(userID, questionID, pathID, row, map[string]interface{}{
		"status":            model.StatusCompleted,
		"wants_review":      false,
		"last_attempted_at": now,
		"completed_at":      now,
	})
}

// upsert updates an existing row in place or inserts a new one. Rows with a
// NULL path_id never collide on the composite index, so the existing row is
// located first; ON CONFLICT only backstops the race between two inserts on
// a path-scoped key.
func (r *ProgressRepository) upsert(userID, questionID string, pathID *string, row model.QuestionProgress, updates map[string]interface{}) error {
	existing, err := r.Find(userID, questionID, pathID)
	if err != nil {
		return err
	}
	if existing != nil {
		return r.DB.Model(&model.QuestionProgress{}).
			Where("id = ?", existing.ID).
			Updates(updates).Error
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   progressConflict,
		DoUpdates: clause.Assignments(updates),
	}).Create(&row).Error
}

// ClearReviewFlag drops a question out of the review rotation for every
// path scope it is tracked under.
func (r *ProgressRepository) ClearReviewFlag(userID, questionID string) error {
	return r.DB.Model(&model.QuestionProgress{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Updates(map[string]interface{}{
			"wants_review":     false,
			"next_review_date": nil,
		}).Error
}

// PathCompletionStats counts a path's questions and how many of them the
// user has completed in that path's scope.
func (r *ProgressRepository) PathCompletionStats(userID, pathID string) (total int64, completed int64, err error) {
	err = r.DB.Model(&model.PathQuestion{}).Where("path_id = ?", pathID).Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.DB.Model(&model.QuestionProgress{}).
		Where("user_id = ? AND path_id = ? AND status = ?", userID, pathID, model.StatusCompleted).
		Count(&completed).Error
	return total, completed, err
}
