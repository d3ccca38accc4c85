package service

import (
	"leettrack_backend/internal/model"
	"leettrack_backend/internal/repository"
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	userRepo     *repository.UserRepository
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, userRepo *repository.UserRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, userRepo: userRepo}
}

type UpdateSettingsInput struct {
	PathQuestionsPerDay *int    `json:"path_questions_per_day" binding:"omitempty,min=1,max=10"`
	ReviewIntervalMode  *string `json:"review_interval_mode" binding:"omitempty,oneof=standard aggressive relaxed"`
	ReviewRandomized    *bool   `json:"review_randomized"`
	PathRandomized      *bool   `json:"path_randomized"`
	LeetCodeUsername    *string `json:"leetcode_username"`
}

func (s *SettingsService) Get(userID string) (*model.UserSettings, error) {
	return s.settingsRepo.GetOrCreate(userID)
}

// Update applies only the fields present in the request and returns the
// resulting row. The linked LeetCode username lives on the users table but is
// edited from the same settings screen, so it rides along here.
func (s *SettingsService) Update(userID string, input UpdateSettingsInput) (*model.UserSettings, error) {
	settings, err := s.settingsRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	if input.PathQuestionsPerDay != nil {
		settings.PathQuestionsPerDay = *input.PathQuestionsPerDay
	}
	if input.ReviewIntervalMode != nil {
		settings.ReviewIntervalMode = *input.ReviewIntervalMode
	}
	if input.ReviewRandomized != nil {
		settings.ReviewRandomized = *input.ReviewRandomized
	}
	if input.PathRandomized != nil {
		settings.PathRandomized = *input.PathRandomized
	}

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}

	if input.LeetCodeUsername != nil {
		if err := s.userRepo.UpdateLeetCodeUsername(userID, *input.LeetCodeUsername); err != nil {
			return nil, err
		}
	}

	return settings, nil
}
