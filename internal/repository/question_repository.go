package repository

import (
	"fmt"
	"strings"

	"leettrack_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// QuestionSearchParams mirrors the query string of GET /api/questions.
type QuestionSearchParams struct {
	Query      string
	Difficulty model.Difficulty
	Tags       []string
	IsCustom   *bool
	CreatedBy  string
	Limit      int
	Offset     int
	SortBy     string
	SortOrder  string
}

func (r *QuestionRepository) Create(question *model.Question) error {
	tags := question.Tags
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return replaceTags(tx, question.ID, tags)
	})
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	if err := r.DB.Where("id = ?", id).First(&question).Error; err != nil {
		return nil, err
	}
	if err := r.loadTags(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindBySlug(slug string) (*model.Question, error) {
	var question model.Question
	if err := r.DB.Where("slug = ?", slug).First(&question).Error; err != nil {
		return nil, err
	}
	if err := r.loadTags(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *QuestionRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	tags := question.Tags
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		if tags == nil {
			return nil
		}
		return replaceTags(tx, question.ID, tags)
	})
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Question{}).Error
	})
}

// UpsertBySlug inserts a question or refreshes its title when the slug is
// already known. Used when syncing LeetCode's daily challenge.
func (r *QuestionRepository) UpsertBySlug(question *model.Question) error {
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"title"}),
	}).Create(question).Error
	if err != nil {
		return err
	}
	if question.ID == "" {
		existing, err := r.FindBySlug(question.Slug)
		if err != nil {
			return err
		}
		question.ID = existing.ID
	}
	return nil
}

func (r *QuestionRepository) Search(params QuestionSearchParams) ([]model.Question, int64, error) {
	q := r.DB.Model(&model.Question{})

	if params.Query != "" {
		like := "%" + strings.ToLower(params.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}
	if params.Difficulty != "" {
		q = q.Where("difficulty = ?", params.Difficulty)
	}
	if params.IsCustom != nil {
		q = q.Where("is_custom = ?", *params.IsCustom)
	}
	if params.CreatedBy != "" {
		q = q.Where("created_by = ?", params.CreatedBy)
	}
	if len(params.Tags) > 0 {
		q = q.Where("id IN (?)", r.DB.Model(&model.QuestionTag{}).
			Select("question_id").
			Where("tag IN ?", params.Tags))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	switch sortBy {
	case "title", "difficulty", "created_at", "updated_at":
	default:
		sortBy = "created_at"
	}
	order := "desc"
	if params.SortOrder == "asc" {
		order = "asc"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var questions []model.Question
	err := q.Order(fmt.Sprintf("%s %s", sortBy, order)).
		Limit(limit).
		Offset(params.Offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
	}
	tagsMap, err := r.TagsForQuestions(ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range questions {
		questions[i].Tags = tagsMap[questions[i].ID]
		if questions[i].Tags == nil {
			questions[i].Tags = []string{}
		}
	}

	return questions, total, nil
}

// TagsForQuestions batch-loads tags for a set of question ids in one query.
func (r *QuestionRepository) TagsForQuestions(questionIDs []string) (map[string][]string, error) {
	tagsMap := make(map[string][]string)
	if len(questionIDs) == 0 {
		return tagsMap, nil
	}

	var rows []model.QuestionTag
	err := r.DB.Where("question_id IN ?", questionIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		tagsMap[row.QuestionID] = append(tagsMap[row.QuestionID], row.Tag)
	}
	return tagsMap, nil
}

// UnattemptedQuestions returns the user's oldest questions with no progress
// record, used as the candidate pool for ad-hoc daily picks.
func (r *QuestionRepository) UnattemptedQuestions(userID string, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.
		Where("id NOT IN (?)", r.DB.Model(&model.QuestionProgress{}).
			Select("question_id").
			Where("user_id = ?", userID)).
		Order("created_at ASC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

// ReplaceTags rewrites a question's tag set.
func (r *QuestionRepository) ReplaceTags(questionID string, tags []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return replaceTags(tx, questionID, tags)
	})
}

func (r *QuestionRepository) Stats() (*model.QuestionStats, error) {
	stats := &model.QuestionStats{Difficulty: make(map[string]int)}

	type diffRow struct {
		Difficulty string
		Count      int
	}
	var rows []diffRow
	err := r.DB.Model(&model.Question{}).
		Select("difficulty, COUNT(*) AS count").
		Group("difficulty").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.Difficulty[row.Difficulty] = row.Count
		stats.Total += row.Count
	}

	var custom int64
	if err := r.DB.Model(&model.Question{}).Where("is_custom = true").Count(&custom).Error; err != nil {
		return nil, err
	}
	stats.Custom = int(custom)
	stats.Imported = stats.Total - stats.Custom

	var tagCount int64
	err = r.DB.Model(&model.QuestionTag{}).Distinct("tag").Count(&tagCount).Error
	if err != nil {
		return nil, err
	}
	stats.TagCount = int(tagCount)

	return stats, nil
}

func (r *QuestionRepository) loadTags(question *model.Question) error {
	tagsMap, err := r.TagsForQuestions([]string{question.ID})
	if err != nil {
		return err
	}
	question.Tags = tagsMap[question.ID]
	if question.Tags == nil {
		question.Tags = []string{}
	}
	return nil
}

func replaceTags(tx *gorm.DB, questionID string, tags []string) error {
	if err := tx.Where("question_id = ?", questionID).Delete(&model.QuestionTag{}).Error; err != nil {
		return err
	}
	for _, tag := range tags {
		row := model.QuestionTag{QuestionID: questionID, Tag: tag}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}
