package service

import (
	"regexp"

	"leettrack_backend/internal/model"
	"leettrack_backend/internal/repository"
	"leettrack_backend/internal/util"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

type CreateQuestionInput struct {
	LeetCodeID  string   `json:"leetcode_id"`
	Title       string   `json:"title" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	Difficulty  string   `json:"difficulty" binding:"required"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

type UpdateQuestionInput struct {
	Title       *string  `json:"title"`
	Difficulty  *string  `json:"difficulty"`
	Description *string  `json:"description"`
	URL         *string  `json:"url"`
	Tags        []string `json:"tags"`
}

func (s *QuestionService) Create(input CreateQuestionInput, createdBy string) (*model.Question, error) {
	difficulty := model.Difficulty(input.Difficulty)
	if !difficulty.Valid() {
		return nil, util.ErrInvalidDifficulty
	}
	if !slugPattern.MatchString(input.Slug) {
		return nil, util.ErrInvalidSlug
	}

	exists, err := s.questionRepo.SlugExists(input.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrSlugExists
	}

	question := &model.Question{
		LeetCodeID:  input.LeetCodeID,
		Title:       input.Title,
		Slug:        input.Slug,
		Difficulty:  difficulty,
		Description: input.Description,
		URL:         input.URL,
		IsCustom:    true,
		CreatedBy:   createdBy,
		Tags:        input.Tags,
	}
	if question.URL == "" {
		question.URL = question.CanonicalURL()
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}
	if question.Tags == nil {
		question.Tags = []string{}
	}
	return question, nil
}

func (s *QuestionService) Get(id string) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Update(id string, input UpdateQuestionInput) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		question.Title = *input.Title
	}
	if input.Difficulty != nil {
		difficulty := model.Difficulty(*input.Difficulty)
		if !difficulty.Valid() {
			return nil, util.ErrInvalidDifficulty
		}
		question.Difficulty = difficulty
	}
	if input.Description != nil {
		question.Description = *input.Description
	}
	if input.URL != nil {
		question.URL = *input.URL
	}
	if input.Tags != nil {
		question.Tags = input.Tags
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Delete(id string) error {
	exists, err := s.questionRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrQuestionNotFound
	}
	return s.questionRepo.Delete(id)
}

func (s *QuestionService) Search(params repository.QuestionSearchParams) ([]model.Question, int64, error) {
	return s.questionRepo.Search(params)
}

func (s *QuestionService) Stats() (*model.QuestionStats, error) {
	return s.questionRepo.Stats()
}
