package repository

import (
	"leettrack_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdateLeetCodeUsername(userID, leetcodeUsername string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("leet_code_username", leetcodeUsername).Error
}

// GetStats aggregates the user's progress and enrollment counters. Streaks
// are not computed here; they come from an external stats collaborator and
// default to zero.
func (r *UserRepository) GetStats(userID string) (*model.UserStats, error) {
	var progress struct {
		TotalAttempted int
		TotalSolved    int
		EasySolved     int
		MediumSolved   int
		HardSolved     int
	}
	err := r.DB.Raw(`
		SELECT
			COUNT(DISTINCT uqp.question_id) AS total_attempted,
			COUNT(DISTINCT CASE WHEN uqp.status = 'completed' THEN uqp.question_id END) AS total_solved,
			COUNT(DISTINCT CASE WHEN uqp.status = 'completed' AND q.difficulty = 'Easy' THEN uqp.question_id END) AS easy_solved,
			COUNT(DISTINCT CASE WHEN uqp.status = 'completed' AND q.difficulty = 'Medium' THEN uqp.question_id END) AS medium_solved,
			COUNT(DISTINCT CASE WHEN uqp.status = 'completed' AND q.difficulty = 'Hard' THEN uqp.question_id END) AS hard_solved
		FROM user_question_progress uqp
		LEFT JOIN questions q ON uqp.question_id = q.id
		WHERE uqp.user_id = ?`, userID).Scan(&progress).Error
	if err != nil {
		return nil, err
	}

	var paths struct {
		EnrolledPaths  int
		CompletedPaths int
	}
	err = r.DB.Raw(`
		SELECT
			COUNT(*) AS enrolled_paths,
			COUNT(CASE WHEN completion_percentage = 100 THEN 1 END) AS completed_paths
		FROM user_path_enrollments
		WHERE user_id = ? AND is_active = true`, userID).Scan(&paths).Error
	if err != nil {
		return nil, err
	}

	return &model.UserStats{
		TotalQuestionsAttempted: progress.TotalAttempted,
		TotalQuestionsSolved:    progress.TotalSolved,
		EasySolved:              progress.EasySolved,
		MediumSolved:            progress.MediumSolved,
		HardSolved:              progress.HardSolved,
		EnrolledPaths:           paths.EnrolledPaths,
		CompletedPaths:          paths.CompletedPaths,
	}, nil
}
