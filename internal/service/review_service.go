package service

import (
	"time"

	"leettrack_backend/internal/model"
	"leettrack_backend/internal/util"
	"leettrack_backend/pkg/srs"
)

// ProgressStore is the progress persistence the scheduler writes through.
type ProgressStore interface {
	Find(userID, questionID string, pathID *string) (*model.QuestionProgress, error)
	ScheduleReview(userID, questionID string, pathID *string, nextReviewDate time.Time, reviewCount int, now time.Time) error
	MarkCompleted(userID, questionID string, pathID *string, now time.Time) error
	ClearReviewFlag(userID, questionID string) error
	PathCompletionStats(userID, pathID string) (total int64, completed int64, err error)
}

// EnrollmentStore updates enrollment progress after a path-scoped completion.
type EnrollmentStore interface {
	UpdateCompletionPercentage(userID, pathID string, percentage float64) error
}

// RecommendationCompleter marks today's feed rows done for a question.
type RecommendationCompleter interface {
	CompleteForDate(userID, questionID string, date, now time.Time) error
}

// QuestionChecker verifies a question id before progress is written.
type QuestionChecker interface {
	Exists(id string) (bool, error)
}

type ReviewService struct {
	progress    ProgressStore
	enrollments EnrollmentStore
	daily       RecommendationCompleter
	questions   QuestionChecker
	now         func() time.Time
}

func NewReviewService(progress ProgressStore, enrollments EnrollmentStore, daily RecommendationCompleter, questions QuestionChecker) *ReviewService {
	return &ReviewService{
		progress:    progress,
		enrollments: enrollments,
		daily:       daily,
		questions:   questions,
		now:         time.Now,
	}
}

// ScheduleReview flags a question for spaced repetition. The interval ladder
// is indexed by how many times the question has already been reviewed, so each
// pass pushes the next date further out; the count saturates at the last rung.
// A daily-sourced request also closes today's recommendation row, since the
// question was worked on even though it goes back into rotation. Returns the
// computed next review date and the review count after this pass.
func (s *ReviewService) ScheduleReview(userID, questionID string, pathID *string, source model.SourceType) (time.Time, int, error) {
	exists, err := s.questions.Exists(questionID)
	if err != nil {
		return time.Time{}, 0, err
	}
	if !exists {
		return time.Time{}, 0, util.ErrQuestionNotFound
	}

	now := s.now()
	today := srs.Truncate(now)

	existing, err := s.progress.Find(userID, questionID, pathID)
	if err != nil {
		return time.Time{}, 0, err
	}
	reviewCount := 0
	if existing != nil {
		reviewCount = existing.ReviewCount
	}

	next := srs.NextReviewDate(reviewCount, today)
	err = s.progress.ScheduleReview(userID, questionID, pathID, next, reviewCount+1, now)
	if err != nil {
		return time.Time{}, 0, err
	}

	if source == model.SourceDaily {
		if err := s.daily.CompleteForDate(userID, questionID, today, now); err != nil {
			return time.Time{}, 0, err
		}
	}

	return next, reviewCount + 1, nil
}

// Complete marks a question done. A path-scoped completion refreshes the
// enrollment's completion percentage; a daily-sourced one also closes today's
// recommendation row so the question drops out of the feed.
func (s *ReviewService) Complete(userID, questionID string, pathID *string, source model.SourceType) error {
	exists, err := s.questions.Exists(questionID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrQuestionNotFound
	}

	now := s.now()
	today := srs.Truncate(now)

	if err := s.progress.MarkCompleted(userID, questionID, pathID, now); err != nil {
		return err
	}
	if err := s.progress.ClearReviewFlag(userID, questionID); err != nil {
		return err
	}

	if source == model.SourceDaily {
		if err := s.daily.CompleteForDate(userID, questionID, today, now); err != nil {
			return err
		}
	}

	if pathID != nil {
		total, completed, err := s.progress.PathCompletionStats(userID, *pathID)
		if err != nil {
			return err
		}
		percentage := 0.0
		if total > 0 {
			percentage = float64(completed) / float64(total) * 100
		}
		if err := s.enrollments.UpdateCompletionPercentage(userID, *pathID, percentage); err != nil {
			return err
		}
	}

	return nil
}
