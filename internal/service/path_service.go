package service

import (
	"leettrack_backend/internal/model"
	"leettrack_backend/internal/repository"
	"leettrack_backend/internal/util"

	"gorm.io/gorm"
)

type PathService struct {
	pathRepo     *repository.PathRepository
	questionRepo *repository.QuestionRepository
}

func NewPathService(pathRepo *repository.PathRepository, questionRepo *repository.QuestionRepository) *PathService {
	return &PathService{pathRepo: pathRepo, questionRepo: questionRepo}
}

type CreatePathInput struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Difficulty     string   `json:"difficulty"`
	EstimatedHours int      `json:"estimated_hours"`
	IsPublic       *bool    `json:"is_public"`
	Tags           []string `json:"tags"`
	QuestionIDs    []string `json:"question_ids"`
}

func (s *PathService) Create(input CreatePathInput, createdBy string) (*model.LearningPath, error) {
	for _, questionID := range input.QuestionIDs {
		exists, err := s.questionRepo.Exists(questionID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, util.ErrQuestionNotFound
		}
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	difficulty := model.Difficulty(input.Difficulty)
	if input.Difficulty != "" && !difficulty.Valid() {
		return nil, util.ErrInvalidDifficulty
	}

	path := &model.LearningPath{
		Title:          input.Title,
		Description:    input.Description,
		Difficulty:     difficulty,
		EstimatedHours: input.EstimatedHours,
		IsPublic:       isPublic,
		CreatedBy:      createdBy,
		Tags:           input.Tags,
		QuestionIDs:    input.QuestionIDs,
	}
	if err := s.pathRepo.Create(path); err != nil {
		return nil, err
	}
	if path.Tags == nil {
		path.Tags = []string{}
	}
	return path, nil
}

func (s *PathService) Get(id string) (*model.LearningPath, error) {
	path, err := s.pathRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPathNotFound
		}
		return nil, err
	}
	return path, nil
}

func (s *PathService) ListPublic() ([]model.LearningPath, error) {
	return s.pathRepo.ListPublic()
}

// Questions returns a path's curriculum in order with the caller's per
// question progress attached.
func (s *PathService) Questions(pathID, userID string) ([]repository.PathQuestionRow, error) {
	if _, err := s.Get(pathID); err != nil {
		return nil, err
	}

	rows, err := s.pathRepo.QuestionsInPath(pathID, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].QuestionID
	}
	tagsMap, err := s.questionRepo.TagsForQuestions(ids)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Tags = tagsMap[rows[i].QuestionID]
		if rows[i].Tags == nil {
			rows[i].Tags = []string{}
		}
	}
	return rows, nil
}

// Enroll activates a public path for the user. Enrolling twice is an error
// surfaced to the client, not a silent no-op.
func (s *PathService) Enroll(userID, pathID string) (*model.PathEnrollment, error) {
	path, err := s.Get(pathID)
	if err != nil {
		return nil, err
	}
	if !path.IsPublic {
		return nil, util.ErrPathNotPublic
	}

	if _, err := s.pathRepo.FindEnrollment(userID, pathID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	enrollment := &model.PathEnrollment{
		UserID:   userID,
		PathID:   pathID,
		IsActive: true,
	}
	if err := s.pathRepo.Enroll(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *PathService) EnrolledPaths(userID string) ([]model.EnrolledPath, error) {
	return s.pathRepo.EnrolledPaths(userID)
}

// ReviewQuestions lists the review-flagged questions in one of the user's
// paths, soonest due first.
func (s *PathService) ReviewQuestions(userID, pathID string) ([]model.ReviewQuestion, error) {
	if _, err := s.Get(pathID); err != nil {
		return nil, err
	}
	return s.pathRepo.ReviewQuestionsInPath(userID, pathID)
}
