package repository

import (
	"time"

	"leettrack_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PathRepository struct {
	DB *gorm.DB
}

func NewPathRepository(db *gorm.DB) *PathRepository {
	return &PathRepository{DB: db}
}

func (r *PathRepository) Create(path *model.LearningPath) error {
	tags := path.Tags
	questionIDs := path.QuestionIDs
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(path).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			row := model.PathTag{PathID: path.ID, Tag: tag}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		for i, questionID := range questionIDs {
			row := model.PathQuestion{PathID: path.ID, QuestionID: questionID, OrderIndex: i}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PathRepository) FindByID(id string) (*model.LearningPath, error) {
	var path model.LearningPath
	if err := r.DB.Where("id = ?", id).First(&path).Error; err != nil {
		return nil, err
	}

	var tags []model.PathTag
	if err := r.DB.Where("path_id = ?", id).Find(&tags).Error; err != nil {
		return nil, err
	}
	path.Tags = make([]string, len(tags))
	for i, t := range tags {
		path.Tags[i] = t.Tag
	}

	var questions []model.PathQuestion
	err := r.DB.Where("path_id = ?", id).Order("order_index").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	path.QuestionIDs = make([]string, len(questions))
	for i, q := range questions {
		path.QuestionIDs[i] = q.QuestionID
	}

	return &path, nil
}

func (r *PathRepository) ListPublic() ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.Where("is_public = true").Order("created_at DESC").Find(&paths).Error
	if err != nil {
		return nil, err
	}

	for i := range paths {
		var tags []model.PathTag
		if err := r.DB.Where("path_id = ?", paths[i].ID).Find(&tags).Error; err != nil {
			return nil, err
		}
		paths[i].Tags = make([]string, len(tags))
		for j, t := range tags {
			paths[i].Tags[j] = t.Tag
		}
	}
	return paths, nil
}

// PathQuestionRow is one curriculum entry with the caller's progress folded
// in.
type PathQuestionRow struct {
	QuestionID  string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Difficulty  string   `json:"difficulty"`
	URL         string   `json:"url,omitempty"`
	LeetCodeID  string   `json:"leetcode_id,omitempty"`
	OrderIndex  int      `json:"order_index"`
	Status      string   `json:"status,omitempty"`
	WantsReview bool     `json:"wants_review"`
	Tags        []string `json:"tags"`
}

func (r *PathRepository) QuestionsInPath(pathID, userID string) ([]PathQuestionRow, error) {
	var rows []PathQuestionRow
	err := r.DB.Raw(`
		SELECT
			q.id AS question_id,
			q.title,
			q.slug,
			q.difficulty,
			q.url,
			q.leet_code_id,
			pq.order_index,
			COALESCE(uqp.status, '') AS status,
			COALESCE(uqp.wants_review, false) AS wants_review
		FROM path_questions pq
		JOIN questions q ON pq.question_id = q.id
		LEFT JOIN user_question_progress uqp
			ON uqp.question_id = q.id AND uqp.path_id = pq.path_id AND uqp.user_id = ?
		WHERE pq.path_id = ?
		ORDER BY pq.order_index`, userID, pathID).Scan(&rows).Error
	return rows, err
}

func (r *PathRepository) Enroll(enrollment *model.PathEnrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *PathRepository) FindEnrollment(userID, pathID string) (*model.PathEnrollment, error) {
	var enrollment model.PathEnrollment
	err := r.DB.Where("user_id = ? AND path_id = ?", userID, pathID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *PathRepository) EnrolledPaths(userID string) ([]model.EnrolledPath, error) {
	var rows []model.EnrolledPath
	err := r.DB.Raw(`
		SELECT
			upe.id AS enrollment_id,
			lp.id AS path_id,
			lp.title,
			lp.description,
			lp.difficulty,
			lp.estimated_hours,
			(SELECT COUNT(*) FROM path_questions WHERE path_id = lp.id) AS total_questions,
			(SELECT COUNT(*) FROM user_question_progress
			 WHERE user_id = ? AND path_id = lp.id AND status = 'completed') AS completed_questions,
			upe.is_active,
			upe.enrolled_at,
			upe.completion_percentage
		FROM user_path_enrollments upe
		JOIN learning_paths lp ON upe.path_id = lp.id
		WHERE upe.user_id = ?
		ORDER BY upe.enrolled_at DESC`, userID, userID).Scan(&rows).Error
	return rows, err
}

func (r *PathRepository) UpdateCompletionPercentage(userID, pathID string, percentage float64) error {
	return r.DB.Model(&model.PathEnrollment{}).
		Where("user_id = ? AND path_id = ?", userID, pathID).
		Update("completion_percentage", percentage).Error
}

// ReviewQuestionsInPath lists the review-flagged questions of one path,
// soonest due first.
func (r *PathRepository) ReviewQuestionsInPath(userID, pathID string) ([]model.ReviewQuestion, error) {
	type row struct {
		ID              string
		LeetCodeID      string
		Title           string
		Slug            string
		Difficulty      string
		URL             string
		WantsReview     bool
		NextReviewDate  *time.Time
		ReviewCount     int
		LastAttemptedAt *time.Time
	}
	var rows []row
	err := r.DB.Raw(`
		SELECT
			q.id,
			q.leet_code_id,
			q.title,
			q.slug,
			q.difficulty,
			q.url,
			uqp.wants_review,
			uqp.next_review_date,
			uqp.review_count,
			uqp.last_attempted_at
		FROM user_question_progress uqp
		JOIN questions q ON uqp.question_id = q.id
		WHERE uqp.user_id = ?
			AND uqp.path_id = ?
			AND uqp.wants_review = true
			AND uqp.status = 'needs_review'
		ORDER BY uqp.next_review_date ASC NULLS LAST, uqp.last_attempted_at DESC`,
		userID, pathID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(rows))
	for i, rw := range rows {
		ids[i] = rw.ID
	}
	var tags []model.QuestionTag
	if len(ids) > 0 {
		if err := r.DB.Where("question_id IN ?", ids).Find(&tags).Error; err != nil {
			return nil, err
		}
	}
	tagsMap := make(map[string][]string)
	for _, t := range tags {
		tagsMap[t.QuestionID] = append(tagsMap[t.QuestionID], t.Tag)
	}

	out := make([]model.ReviewQuestion, len(rows))
	for i, rw := range rows {
		qTags := tagsMap[rw.ID]
		if qTags == nil {
			qTags = []string{}
		}
		out[i] = model.ReviewQuestion{
			ID:              rw.ID,
			LeetCodeID:      rw.LeetCodeID,
			Title:           rw.Title,
			Slug:            rw.Slug,
			Difficulty:      rw.Difficulty,
			URL:             rw.URL,
			Tags:            qTags,
			WantsReview:     rw.WantsReview,
			NextReviewDate:  rw.NextReviewDate,
			ReviewCount:     rw.ReviewCount,
			LastAttemptedAt: rw.LastAttemptedAt,
		}
	}
	return out, nil
}

// QuestionCount returns how many questions a path holds.
func (r *PathRepository) QuestionCount(pathID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PathQuestion{}).Where("path_id = ?", pathID).Count(&count).Error
	return count, err
}
