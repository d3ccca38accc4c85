package service

import (
	"context"
	"time"

	"leettrack_backend/internal/model"
	"leettrack_backend/internal/repository"
	"leettrack_backend/internal/util"
	"leettrack_backend/pkg/leetcode"
	"leettrack_backend/pkg/monitoring"
	"leettrack_backend/pkg/srs"
)

// DailyStore is the recommendation persistence the feed composer needs.
type DailyStore interface {
	PathCandidates(userID string, limit int) ([]repository.PathCandidate, error)
	NextPathCandidate(userID string, date time.Time) (*repository.PathCandidate, error)
	DueReviews(userID string, today time.Time, limit int) ([]repository.ReviewCandidate, error)
	InsertIgnore(rec *model.DailyRecommendation) error
	CountGenerated(userID string, date time.Time) (int64, error)
	DailyPicks(userID string, date time.Time, limit int) ([]repository.DailyPick, error)
	CompleteForDate(userID, questionID string, date, now time.Time) error
	FindForDate(userID, questionID string, date time.Time) (*model.DailyRecommendation, error)
}

// QuestionSource is the slice of the question bank the feed composer reads.
type QuestionSource interface {
	Exists(id string) (bool, error)
	TagsForQuestions(questionIDs []string) (map[string][]string, error)
	UnattemptedQuestions(userID string, limit int) ([]model.Question, error)
	UpsertBySlug(question *model.Question) error
	ReplaceTags(questionID string, tags []string) error
}

// ChallengeSource fetches LeetCode's official question of today.
type ChallengeSource interface {
	GetDailyChallenge(ctx context.Context) (*leetcode.DailyChallenge, error)
}

// Priority scores stored with recommendation rows. Path work and the synced
// official challenge outrank ad-hoc picks.
const (
	priorityPath   = 1.0
	prioritySync   = 1.0
	priorityReview = 0.9
	priorityAdHoc  = 0.5
)

// TodayQuestion is one entry of the today feed as serialized to clients.
type TodayQuestion struct {
	ID               string           `json:"id"`
	RecommendationID string           `json:"recommendation_id,omitempty"`
	Title            string           `json:"title"`
	Slug             string           `json:"slug"`
	Difficulty       string           `json:"difficulty"`
	URL              string           `json:"url"`
	LeetCodeID       string           `json:"leetcode_id,omitempty"`
	Tags             []string         `json:"tags"`
	SourceType       model.SourceType `json:"source_type"`
	PathID           *string          `json:"path_id,omitempty"`
	PathTitle        string           `json:"path_title,omitempty"`
	PriorityScore    float64          `json:"priority_score"`
	NextReviewDate   *time.Time       `json:"next_review_date,omitempty"`
	ReviewCount      int              `json:"review_count,omitempty"`
}

// FeedBreakdown counts the feed's three groups.
type FeedBreakdown struct {
	Path   int `json:"path"`
	Review int `json:"review"`
	Daily  int `json:"daily"`
}

// TodayFeed is the full response of GET /api/daily/today.
type TodayFeed struct {
	Date      string          `json:"date"`
	Questions []TodayQuestion `json:"questions"`
	Total     int             `json:"total"`
	Breakdown FeedBreakdown   `json:"breakdown"`
}

// FeedCaps bounds each group of the feed.
type FeedCaps struct {
	Path   int
	Review int
	Daily  int
}

type DailyService struct {
	store     DailyStore
	questions QuestionSource
	challenge ChallengeSource
	caps      FeedCaps
	now       func() time.Time
}

func NewDailyService(store DailyStore, questions QuestionSource, challenge ChallengeSource, caps FeedCaps) *DailyService {
	return &DailyService{
		store:     store,
		questions: questions,
		challenge: challenge,
		caps:      caps,
		now:       time.Now,
	}
}

// GetToday composes the user's feed for the current date: up to Path cap
// questions from active enrollments, up to Review cap due reviews, and up to
// Daily cap ad-hoc picks. Ad-hoc picks are generated at most once per day;
// every row is written conflict-ignored so concurrent requests converge on
// the same feed.
func (s *DailyService) GetToday(userID string) (*TodayFeed, error) {
	today := srs.Truncate(s.now())

	pathCands, err := s.store.PathCandidates(userID, s.caps.Path)
	if err != nil {
		return nil, err
	}
	for _, cand := range pathCands {
		pathID := cand.PathID
		err := s.store.InsertIgnore(&model.DailyRecommendation{
			UserID:             userID,
			Date:               today,
			QuestionID:         cand.QuestionID,
			RecommendationType: model.RecommendationTypeNew,
			PathID:             &pathID,
			PriorityScore:      priorityPath,
		})
		if err != nil {
			return nil, err
		}
	}

	reviews, err := s.store.DueReviews(userID, today, s.caps.Review)
	if err != nil {
		return nil, err
	}

	generated, err := s.store.CountGenerated(userID, today)
	if err != nil {
		return nil, err
	}
	if generated == 0 {
		candidates, err := s.questions.UnattemptedQuestions(userID, s.caps.Daily)
		if err != nil {
			return nil, err
		}
		for _, q := range candidates {
			err := s.store.InsertIgnore(&model.DailyRecommendation{
				UserID:             userID,
				Date:               today,
				QuestionID:         q.ID,
				RecommendationType: model.RecommendationTypeNew,
				PriorityScore:      priorityAdHoc,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	picks, err := s.store.DailyPicks(userID, today, s.caps.Daily)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(pathCands)+len(reviews)+len(picks))
	for _, c := range pathCands {
		ids = append(ids, c.QuestionID)
	}
	for _, c := range reviews {
		ids = append(ids, c.QuestionID)
	}
	for _, p := range picks {
		ids = append(ids, p.QuestionID)
	}
	tagsMap, err := s.questions.TagsForQuestions(ids)
	if err != nil {
		return nil, err
	}

	feed := &TodayFeed{
		Date:      today.Format("2006-01-02"),
		Questions: make([]TodayQuestion, 0, len(ids)),
	}
	for _, c := range pathCands {
		pathID := c.PathID
		feed.Questions = append(feed.Questions, TodayQuestion{
			ID:            c.QuestionID,
			Title:         c.Title,
			Slug:          c.Slug,
			Difficulty:    c.Difficulty,
			URL:           model.ProblemURL(c.URL, c.Slug),
			LeetCodeID:    c.LeetCodeID,
			Tags:          tagsOrEmpty(tagsMap, c.QuestionID),
			SourceType:    model.SourcePath,
			PathID:        &pathID,
			PathTitle:     c.PathTitle,
			PriorityScore: priorityPath,
		})
	}
	for _, c := range reviews {
		feed.Questions = append(feed.Questions, TodayQuestion{
			ID:             c.QuestionID,
			Title:          c.Title,
			Slug:           c.Slug,
			Difficulty:     c.Difficulty,
			URL:            model.ProblemURL(c.URL, c.Slug),
			LeetCodeID:     c.LeetCodeID,
			Tags:           tagsOrEmpty(tagsMap, c.QuestionID),
			SourceType:     model.SourceReview,
			PathID:         c.PathID,
			PriorityScore:  priorityReview,
			NextReviewDate: c.NextReviewDate,
			ReviewCount:    c.ReviewCount,
		})
	}
	for _, p := range picks {
		feed.Questions = append(feed.Questions, TodayQuestion{
			ID:               p.QuestionID,
			RecommendationID: p.RecommendationID,
			Title:            p.Title,
			Slug:             p.Slug,
			Difficulty:       p.Difficulty,
			URL:              model.ProblemURL(p.URL, p.Slug),
			LeetCodeID:       p.LeetCodeID,
			Tags:             tagsOrEmpty(tagsMap, p.QuestionID),
			SourceType:       model.SourceDaily,
			PriorityScore:    p.PriorityScore,
		})
	}

	feed.Total = len(feed.Questions)
	feed.Breakdown = FeedBreakdown{
		Path:   len(pathCands),
		Review: len(reviews),
		Daily:  len(picks),
	}

	monitoring.DailyFeedGenerated.WithLabelValues("path").Add(float64(len(pathCands)))
	monitoring.DailyFeedGenerated.WithLabelValues("review").Add(float64(len(reviews)))
	monitoring.DailyFeedGenerated.WithLabelValues("daily").Add(float64(len(picks)))

	return feed, nil
}

// GetMorePathQuestions serves one extra path question beyond what the feed
// already showed today. Returns nil when every active enrollment is exhausted.
func (s *DailyService) GetMorePathQuestions(userID string) (*TodayQuestion, error) {
	today := srs.Truncate(s.now())

	cand, err := s.store.NextPathCandidate(userID, today)
	if err != nil {
		return nil, err
	}
	if cand == nil {
		return nil, nil
	}

	pathID := cand.PathID
	err = s.store.InsertIgnore(&model.DailyRecommendation{
		UserID:             userID,
		Date:               today,
		QuestionID:         cand.QuestionID,
		RecommendationType: model.RecommendationTypeNew,
		PathID:             &pathID,
		PriorityScore:      priorityPath,
	})
	if err != nil {
		return nil, err
	}

	tagsMap, err := s.questions.TagsForQuestions([]string{cand.QuestionID})
	if err != nil {
		return nil, err
	}

	return &TodayQuestion{
		ID:            cand.QuestionID,
		Title:         cand.Title,
		Slug:          cand.Slug,
		Difficulty:    cand.Difficulty,
		URL:           model.ProblemURL(cand.URL, cand.Slug),
		LeetCodeID:    cand.LeetCodeID,
		Tags:          tagsOrEmpty(tagsMap, cand.QuestionID),
		SourceType:    model.SourcePath,
		PathID:        &pathID,
		PathTitle:     cand.PathTitle,
		PriorityScore: priorityPath,
	}, nil
}

// EnrollDaily queues an existing question into today's ad-hoc group.
func (s *DailyService) EnrollDaily(userID, questionID string) error {
	exists, err := s.questions.Exists(questionID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrQuestionNotFound
	}

	today := srs.Truncate(s.now())
	existing, err := s.store.FindForDate(userID, questionID, today)
	if err != nil {
		return err
	}
	if existing != nil {
		return util.ErrAlreadyQueued
	}

	return s.store.InsertIgnore(&model.DailyRecommendation{
		UserID:             userID,
		Date:               today,
		QuestionID:         questionID,
		RecommendationType: model.RecommendationTypeNew,
		PriorityScore:      priorityAdHoc,
	})
}

// SyncDailyChallenge imports LeetCode's official question of today into the
// question bank and queues it into the caller's ad-hoc group at top priority.
func (s *DailyService) SyncDailyChallenge(ctx context.Context, userID string) (*model.Question, error) {
	challenge, err := s.challenge.GetDailyChallenge(ctx)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		LeetCodeID: challenge.Question.FrontendID,
		Title:      challenge.Question.Title,
		Slug:       challenge.Question.TitleSlug,
		Difficulty: model.Difficulty(challenge.Question.Difficulty),
		URL:        "https://leetcode.com" + challenge.Link,
		IsCustom:   false,
	}
	if err := s.questions.UpsertBySlug(question); err != nil {
		return nil, err
	}

	tags := make([]string, len(challenge.Question.TopicTags))
	for i, t := range challenge.Question.TopicTags {
		tags[i] = t.Name
	}
	if err := s.questions.ReplaceTags(question.ID, tags); err != nil {
		return nil, err
	}
	question.Tags = tags

	today := srs.Truncate(s.now())
	err = s.store.InsertIgnore(&model.DailyRecommendation{
		UserID:             userID,
		Date:               today,
		QuestionID:         question.ID,
		RecommendationType: model.RecommendationTypeNew,
		PriorityScore:      prioritySync,
	})
	if err != nil {
		return nil, err
	}

	return question, nil
}

func tagsOrEmpty(tagsMap map[string][]string, questionID string) []string {
	tags := tagsMap[questionID]
	if tags == nil {
		return []string{}
	}
	return tags
}
