package service

import (
	"strings"

	"leettrack_backend/internal/config"
	"leettrack_backend/internal/model"
	"leettrack_backend/internal/repository"
	"leettrack_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

type RegisterInput struct {
	Email            string `json:"email" binding:"required,email"`
	Username         string `json:"username" binding:"required,min=3,max=32"`
	Password         string `json:"password" binding:"required,min=8"`
	LeetCodeUsername string `json:"leetcode_username"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user and returns it with a signed session token.
func (s *AuthService) Register(input RegisterInput) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	taken, err := s.userRepo.EmailExists(email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", util.ErrEmailRegistered
	}

	taken, err = s.userRepo.UsernameExists(input.Username)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", util.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:            email,
		Username:         input.Username,
		PasswordHash:     string(hash),
		LeetCodeUsername: input.LeetCodeUsername,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token. A
// missing account and a bad password are indistinguishable to the caller.
func (s *AuthService) Login(input LoginInput) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile returns the user with aggregated progress stats.
func (s *AuthService) Profile(userID string) (*model.User, *model.UserStats, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, err
	}

	stats, err := s.userRepo.GetStats(userID)
	if err != nil {
		return nil, nil, err
	}
	return user, stats, nil
}
