package repository

import (
	"errors"
	"time"

	"leettrack_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyRepository struct {
	DB *gorm.DB
}

func NewDailyRepository(db *gorm.DB) *DailyRepository {
	return &DailyRepository{DB: db}
}

// PathCandidate is one uncompleted curriculum question from an active
// enrollment, carrying its path identity for the feed payload.
type PathCandidate struct {
	QuestionID string
	Title      string
	Slug       string
	Difficulty string
	URL        string
	LeetCodeID string
	PathID     string
	PathTitle  string
	OrderIndex int
}

// ReviewCandidate is one review-flagged question due on or before today.
type ReviewCandidate struct {
	QuestionID      string
	Title           string
	Slug            string
	Difficulty      string
	URL             string
	LeetCodeID      string
	PathID          *string
	NextReviewDate  *time.Time
	ReviewCount     int
	LastAttemptedAt *time.Time
}

// DailyPick is one stored ad-hoc recommendation joined to its question.
type DailyPick struct {
	RecommendationID string
	QuestionID       string
	Title            string
	Slug             string
	Difficulty       string
	URL              string
	LeetCodeID       string
	PriorityScore    float64
}

// PathCandidates walks the user's active enrollments in curriculum order and
// returns the first uncompleted questions across all of them.
func (r *DailyRepository) PathCandidates(userID string, limit int) ([]PathCandidate, error) {
	var rows []PathCandidate
	err := r.DB.Raw(`
		SELECT
			q.id AS question_id,
			q.title,
			q.slug,
			q.difficulty,
			q.url,
			q.leet_code_id,
			lp.id AS path_id,
			lp.title AS path_title,
			pq.order_index
		FROM user_path_enrollments upe
		JOIN learning_paths lp ON lp.id = upe.path_id
		JOIN path_questions pq ON pq.path_id = lp.id
		JOIN questions q ON q.id = pq.question_id
		WHERE upe.user_id = ?
			AND upe.is_active = true
			AND NOT EXISTS (
				SELECT 1 FROM user_question_progress uqp
				WHERE uqp.user_id = upe.user_id
					AND uqp.question_id = q.id
					AND uqp.path_id = lp.id
					AND uqp.status = 'completed'
			)
		ORDER BY lp.id, pq.order_index
		LIMIT ?`, userID, limit).Scan(&rows).Error
	return rows, err
}

// NextPathCandidate is PathCandidates narrowed for the more-path endpoint: it
// also skips anything already surfaced as a path recommendation today and
// returns a single question, or nil when every enrollment is exhausted.
func (r *DailyRepository) NextPathCandidate(userID string, date time.Time) (*PathCandidate, error) {
	var rows []PathCandidate
	err := r.DB.Raw(`
		SELECT
			q.id AS question_id,
			q.title,
			q.slug,
			q.difficulty,
			q.url,
			q.leet_code_id,
			lp.id AS path_id,
			lp.title AS path_title,
			pq.order_index
		FROM user_path_enrollments upe
		JOIN learning_paths lp ON lp.id = upe.path_id
		JOIN path_questions pq ON pq.path_id = lp.id
		JOIN questions q ON q.id = pq.question_id
		WHERE upe.user_id = ?
			AND upe.is_active = true
			AND NOT EXISTS (
				SELECT 1 FROM user_question_progress uqp
				WHERE uqp.user_id = upe.user_id
					AND uqp.question_id = q.id
					AND uqp.path_id = lp.id
					AND uqp.status = 'completed'
			)
			AND NOT EXISTS (
				SELECT 1 FROM daily_recommendations dr
				WHERE dr.user_id = upe.user_id
					AND dr.date = ?
					AND dr.question_id = q.id
					AND dr.path_id IS NOT NULL
			)
		ORDER BY lp.id, pq.order_index
		LIMIT 1`, userID, date).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// DueReviews lists questions the user flagged for review that are due on or
// before today, soonest first, then by staleness.
func (r *DailyRepository) DueReviews(userID string, today time.Time, limit int) ([]ReviewCandidate, error) {
	var rows []ReviewCandidate
	err := r.DB.Raw(`
		SELECT
			q.id AS question_id,
			q.title,
			q.slug,
			q.difficulty,
			q.url,
			q.leet_code_id,
			uqp.path_id,
			uqp.next_review_date,
			uqp.review_count,
			uqp.last_attempted_at
		FROM user_question_progress uqp
		JOIN questions q ON q.id = uqp.question_id
		WHERE uqp.user_id = ?
			AND uqp.wants_review = true
			AND uqp.status != 'completed'
			AND uqp.next_review_date IS NOT NULL
			AND uqp.next_review_date <= ?
		ORDER BY uqp.next_review_date ASC, uqp.last_attempted_at ASC
		LIMIT ?`, userID, today, limit).Scan(&rows).Error
	return rows, err
}

// InsertIgnore persists a recommendation, treating a duplicate of the
// (user, date, question, type) key as a no-op. Racing requests both succeed.
func (r *DailyRepository) InsertIgnore(rec *model.DailyRecommendation) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(rec).Error
}

// CountGenerated counts today's ad-hoc recommendations. Path picks persisted
// by the feed carry a path_id and are excluded, so one path-heavy day does not
// suppress ad-hoc generation forever after.
func (r *DailyRepository) CountGenerated(userID string, date time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.DailyRecommendation{}).
		Where("user_id = ? AND date = ? AND recommendation_type = ? AND path_id IS NULL",
			userID, date, model.RecommendationTypeNew).
		Count(&count).Error
	return count, err
}

// DailyPicks returns today's stored, uncompleted ad-hoc picks in priority
// order.
func (r *DailyRepository) DailyPicks(userID string, date time.Time, limit int) ([]DailyPick, error) {
	var rows []DailyPick
	err := r.DB.Raw(`
		SELECT
			dr.id AS recommendation_id,
			q.id AS question_id,
			q.title,
			q.slug,
			q.difficulty,
			q.url,
			q.leet_code_id,
			dr.priority_score
		FROM daily_recommendations dr
		JOIN questions q ON q.id = dr.question_id
		WHERE dr.user_id = ?
			AND dr.date = ?
			AND dr.path_id IS NULL
			AND dr.is_completed = false
		ORDER BY dr.priority_score DESC, dr.created_at ASC
		LIMIT ?`, userID, date, limit).Scan(&rows).Error
	return rows, err
}

// CompleteForDate marks today's recommendation rows for a question as done.
// Rows already completed keep their original completed_at.
func (r *DailyRepository) CompleteForDate(userID, questionID string, date time.Time, now time.Time) error {
	return r.DB.Model(&model.DailyRecommendation{}).
		Where("user_id = ? AND date = ? AND question_id = ? AND is_completed = false", userID, date, questionID).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
		}).Error
}

// FindForDate returns the recommendation row for a question on a date, or nil.
func (r *DailyRepository) FindForDate(userID, questionID string, date time.Time) (*model.DailyRecommendation, error) {
	var rec model.DailyRecommendation
	err := r.DB.
		Where("user_id = ? AND date = ? AND question_id = ?", userID, date, questionID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
