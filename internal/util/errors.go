package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrInvalidDifficulty  = errors.New("difficulty must be Easy, Medium or Hard")
	ErrSlugExists         = errors.New("a question with this slug already exists")
	ErrInvalidSlug        = errors.New("slug may only contain lowercase letters, digits and hyphens")
	ErrPathNotFound       = errors.New("path not found")
	ErrPathNotPublic      = errors.New("this path is not available for enrollment")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this path")
	ErrAlreadyQueued      = errors.New("question already in daily queue")
)
