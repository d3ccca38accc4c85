package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"leettrack_backend/internal/model"
	"leettrack_backend/internal/repository"
	"leettrack_backend/internal/util"
	"leettrack_backend/pkg/leetcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

type fakeDailyStore struct {
	pathCands []repository.PathCandidate
	reviews   []repository.ReviewCandidate
	questions map[string]model.Question
	recs      []*model.DailyRecommendation
}

func newFakeDailyStore() *fakeDailyStore {
	return &fakeDailyStore{questions: make(map[string]model.Question)}
}

func (f *fakeDailyStore) PathCandidates(userID string, limit int) ([]repository.PathCandidate, error) {
	if len(f.pathCands) > limit {
		return f.pathCands[:limit], nil
	}
	return f.pathCands, nil
}

func (f *fakeDailyStore) NextPathCandidate(userID string, date time.Time) (*repository.PathCandidate, error) {
	for i := range f.pathCands {
		cand := f.pathCands[i]
		shown := false
		for _, rec := range f.recs {
			if rec.UserID == userID && rec.Date.Equal(date) &&
				rec.QuestionID == cand.QuestionID && rec.PathID != nil {
				shown = true
				break
			}
		}
		if !shown {
			return &cand, nil
		}
	}
	return nil, nil
}

func (f *fakeDailyStore) DueReviews(userID string, today time.Time, limit int) ([]repository.ReviewCandidate, error) {
	due := make([]repository.ReviewCandidate, 0)
	for _, r := range f.reviews {
		if r.NextReviewDate != nil && !r.NextReviewDate.After(today) {
			due = append(due, r)
		}
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (f *fakeDailyStore) InsertIgnore(rec *model.DailyRecommendation) error {
	for _, existing := range f.recs {
		if existing.UserID == rec.UserID && existing.Date.Equal(rec.Date) &&
			existing.QuestionID == rec.QuestionID &&
			existing.RecommendationType == rec.RecommendationType {
			return nil
		}
	}
	cp := *rec
	cp.ID = model.GenerateUUID()
	f.recs = append(f.recs, &cp)
	return nil
}

func (f *fakeDailyStore) CountGenerated(userID string, date time.Time) (int64, error) {
	var count int64
	for _, rec := range f.recs {
		if rec.UserID == userID && rec.Date.Equal(date) &&
			rec.RecommendationType == model.RecommendationTypeNew && rec.PathID == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeDailyStore) DailyPicks(userID string, date time.Time, limit int) ([]repository.DailyPick, error) {
	picks := make([]repository.DailyPick, 0)
	// Recommendations are appended in priority order in these tests, so the
	// stored order stands in for ORDER BY priority_score DESC.
	for _, rec := range f.recs {
		if rec.UserID != userID || !rec.Date.Equal(date) || rec.PathID != nil || rec.IsCompleted {
			continue
		}
		q := f.questions[rec.QuestionID]
		picks = append(picks, repository.DailyPick{
			RecommendationID: rec.ID,
			QuestionID:       rec.QuestionID,
			Title:            q.Title,
			Slug:             q.Slug,
			Difficulty:       string(q.Difficulty),
			URL:              q.URL,
			LeetCodeID:       q.LeetCodeID,
			PriorityScore:    rec.PriorityScore,
		})
		if len(picks) == limit {
			break
		}
	}
	return picks, nil
}

func (f *fakeDailyStore) CompleteForDate(userID, questionID string, date, now time.Time) error {
	for _, rec := range f.recs {
		if rec.UserID == userID && rec.QuestionID == questionID && rec.Date.Equal(date) && !rec.IsCompleted {
			rec.IsCompleted = true
			completedAt := now
			rec.CompletedAt = &completedAt
		}
	}
	return nil
}

func (f *fakeDailyStore) FindForDate(userID, questionID string, date time.Time) (*model.DailyRecommendation, error) {
	for _, rec := range f.recs {
		if rec.UserID == userID && rec.QuestionID == questionID && rec.Date.Equal(date) {
			return rec, nil
		}
	}
	return nil, nil
}

type fakeQuestionSource struct {
	questions   map[string]model.Question
	tags        map[string][]string
	unattempted []model.Question
	replaced    map[string][]string
}

func newFakeQuestionSource() *fakeQuestionSource {
	return &fakeQuestionSource{
		questions: make(map[string]model.Question),
		tags:      make(map[string][]string),
		replaced:  make(map[string][]string),
	}
}

func (f *fakeQuestionSource) Exists(id string) (bool, error) {
	_, ok := f.questions[id]
	return ok, nil
}

func (f *fakeQuestionSource) TagsForQuestions(questionIDs []string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, id := range questionIDs {
		if tags, ok := f.tags[id]; ok {
			out[id] = tags
		}
	}
	return out, nil
}

func (f *fakeQuestionSource) UnattemptedQuestions(userID string, limit int) ([]model.Question, error) {
	if len(f.unattempted) > limit {
		return f.unattempted[:limit], nil
	}
	return f.unattempted, nil
}

func (f *fakeQuestionSource) UpsertBySlug(question *model.Question) error {
	for id, q := range f.questions {
		if q.Slug == question.Slug {
			question.ID = id
			q.Title = question.Title
			f.questions[id] = q
			return nil
		}
	}
	question.ID = model.GenerateUUID()
	f.questions[question.ID] = *question
	return nil
}

func (f *fakeQuestionSource) ReplaceTags(questionID string, tags []string) error {
	f.replaced[questionID] = tags
	return nil
}

type fakeChallengeSource struct {
	challenge *leetcode.DailyChallenge
	err       error
}

func (f *fakeChallengeSource) GetDailyChallenge(ctx context.Context) (*leetcode.DailyChallenge, error) {
	return f.challenge, f.err
}

func newTestDailyService(store *fakeDailyStore, questions *fakeQuestionSource, challenge ChallengeSource) *DailyService {
	svc := NewDailyService(store, questions, challenge, FeedCaps{Path: 3, Review: 3, Daily: 2})
	svc.now = func() time.Time { return testNow }
	return svc
}

func addQuestion(store *fakeDailyStore, questions *fakeQuestionSource, id, title, slug string) {
	q := model.Question{Title: title, Slug: slug, Difficulty: model.DifficultyEasy}
	q.ID = id
	store.questions[id] = q
	questions.questions[id] = q
}

func TestGetTodayComposesThreeGroups(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()

	store.pathCands = []repository.PathCandidate{
		{QuestionID: "q1", Title: "Two Sum", Slug: "two-sum", Difficulty: "Easy", PathID: "p1", PathTitle: "Arrays 101", OrderIndex: 0},
		{QuestionID: "q2", Title: "3Sum", Slug: "3sum", Difficulty: "Medium", PathID: "p1", PathTitle: "Arrays 101", OrderIndex: 1},
	}
	due := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	store.reviews = []repository.ReviewCandidate{
		{QuestionID: "q3", Title: "Valid Anagram", Slug: "valid-anagram", Difficulty: "Easy", NextReviewDate: &due, ReviewCount: 1},
	}
	addQuestion(store, questions, "q4", "Climbing Stairs", "climbing-stairs")
	addQuestion(store, questions, "q5", "House Robber", "house-robber")
	questions.unattempted = []model.Question{store.questions["q4"], store.questions["q5"]}
	questions.tags["q1"] = []string{"array", "hash-table"}

	svc := newTestDailyService(store, questions, nil)

	feed, err := svc.GetToday("u1")
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01", feed.Date)
	assert.Equal(t, FeedBreakdown{Path: 2, Review: 1, Daily: 2}, feed.Breakdown)
	assert.Equal(t, 5, feed.Total)
	require.Len(t, feed.Questions, 5)

	assert.Equal(t, model.SourcePath, feed.Questions[0].SourceType)
	assert.Equal(t, model.SourcePath, feed.Questions[1].SourceType)
	assert.Equal(t, model.SourceReview, feed.Questions[2].SourceType)
	assert.Equal(t, model.SourceDaily, feed.Questions[3].SourceType)
	assert.Equal(t, model.SourceDaily, feed.Questions[4].SourceType)

	assert.Equal(t, []string{"array", "hash-table"}, feed.Questions[0].Tags)
	assert.Equal(t, []string{}, feed.Questions[1].Tags)
	require.NotNil(t, feed.Questions[0].PathID)
	assert.Equal(t, "p1", *feed.Questions[0].PathID)
	assert.Equal(t, "Arrays 101", feed.Questions[0].PathTitle)
}

func TestGetTodayIsIdempotent(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()

	store.pathCands = []repository.PathCandidate{
		{QuestionID: "q1", Title: "Two Sum", Slug: "two-sum", Difficulty: "Easy", PathID: "p1", PathTitle: "Arrays 101"},
	}
	addQuestion(store, questions, "q2", "3Sum", "3sum")
	questions.unattempted = []model.Question{store.questions["q2"]}

	svc := newTestDailyService(store, questions, nil)

	first, err := svc.GetToday("u1")
	require.NoError(t, err)
	recsAfterFirst := len(store.recs)

	// An emptied candidate pool must not change the stored picks: the second
	// call reads what the first one persisted.
	questions.unattempted = nil

	second, err := svc.GetToday("u1")
	require.NoError(t, err)

	assert.Equal(t, recsAfterFirst, len(store.recs))
	assert.Equal(t, first.Breakdown, second.Breakdown)
	assert.Equal(t, len(first.Questions), len(second.Questions))
}

func TestGetTodayCapsEachGroup(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()

	for _, id := range []string{"q1", "q2", "q3", "q4", "q5"} {
		store.pathCands = append(store.pathCands, repository.PathCandidate{
			QuestionID: id, Title: id, Slug: id, Difficulty: "Easy", PathID: "p1", PathTitle: "Arrays 101",
		})
	}
	due := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"r1", "r2", "r3", "r4"} {
		store.reviews = append(store.reviews, repository.ReviewCandidate{
			QuestionID: id, Title: id, Slug: id, Difficulty: "Easy", NextReviewDate: &due,
		})
	}
	for _, id := range []string{"d1", "d2", "d3"} {
		addQuestion(store, questions, id, id, id)
		questions.unattempted = append(questions.unattempted, store.questions[id])
	}

	svc := newTestDailyService(store, questions, nil)

	feed, err := svc.GetToday("u1")
	require.NoError(t, err)

	assert.Equal(t, FeedBreakdown{Path: 3, Review: 3, Daily: 2}, feed.Breakdown)
	assert.Equal(t, 8, feed.Total)
	assert.Len(t, feed.Questions, 8)
}

func TestGetTodayFillsMissingQuestionURLs(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()

	store.pathCands = []repository.PathCandidate{
		{QuestionID: "q1", Title: "Two Sum", Slug: "two-sum", Difficulty: "Easy", PathID: "p1", PathTitle: "Arrays 101"},
	}
	due := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	store.reviews = []repository.ReviewCandidate{
		{QuestionID: "q2", Title: "3Sum", Slug: "3sum", Difficulty: "Medium", URL: "https://example.com/3sum", NextReviewDate: &due},
	}
	addQuestion(store, questions, "q3", "Valid Anagram", "valid-anagram")
	questions.unattempted = []model.Question{store.questions["q3"]}

	svc := newTestDailyService(store, questions, nil)

	feed, err := svc.GetToday("u1")
	require.NoError(t, err)
	require.Len(t, feed.Questions, 3)

	assert.Equal(t, "https://leetcode.com/problems/two-sum/", feed.Questions[0].URL)
	// A stored URL is passed through untouched.
	assert.Equal(t, "https://example.com/3sum", feed.Questions[1].URL)
	assert.Equal(t, "https://leetcode.com/problems/valid-anagram/", feed.Questions[2].URL)
}

func TestGetMorePathQuestionsFillsMissingURL(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()

	store.pathCands = []repository.PathCandidate{
		{QuestionID: "q1", Title: "Two Sum", Slug: "two-sum", Difficulty: "Easy", PathID: "p1", PathTitle: "Arrays 101"},
	}

	svc := newTestDailyService(store, questions, nil)

	question, err := svc.GetMorePathQuestions("u1")
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", question.URL)
}

func TestGetTodayExcludesFutureReviews(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()

	tomorrow := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	store.reviews = []repository.ReviewCandidate{
		{QuestionID: "r1", Title: "Due today", Slug: "due-today", NextReviewDate: &today},
		{QuestionID: "r2", Title: "Due tomorrow", Slug: "due-tomorrow", NextReviewDate: &tomorrow},
	}

	svc := newTestDailyService(store, questions, nil)

	feed, err := svc.GetToday("u1")
	require.NoError(t, err)

	assert.Equal(t, 1, feed.Breakdown.Review)
	require.Len(t, feed.Questions, 1)
	assert.Equal(t, "r1", feed.Questions[0].ID)
}

func TestGetTodayDropsCompletedDailyPicks(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()

	addQuestion(store, questions, "q1", "Two Sum", "two-sum")
	addQuestion(store, questions, "q2", "3Sum", "3sum")
	questions.unattempted = []model.Question{store.questions["q1"], store.questions["q2"]}

	svc := newTestDailyService(store, questions, nil)

	feed, err := svc.GetToday("u1")
	require.NoError(t, err)
	require.Equal(t, 2, feed.Breakdown.Daily)

	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.CompleteForDate("u1", "q1", today, testNow))

	feed, err = svc.GetToday("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Breakdown.Daily)
	require.Len(t, feed.Questions, 1)
	assert.Equal(t, "q2", feed.Questions[0].ID)
}

func TestCompleteForDateKeepsFirstCompletionTime(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()
	addQuestion(store, questions, "q1", "Two Sum", "two-sum")

	svc := newTestDailyService(store, questions, nil)
	require.NoError(t, svc.EnrollDaily("u1", "q1"))

	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.CompleteForDate("u1", "q1", today, testNow))
	require.NoError(t, store.CompleteForDate("u1", "q1", today, testNow.Add(2*time.Hour)))

	require.Len(t, store.recs, 1)
	require.NotNil(t, store.recs[0].CompletedAt)
	assert.Equal(t, testNow, *store.recs[0].CompletedAt)
}

func TestGetMorePathQuestionsSkipsAlreadyShown(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()

	store.pathCands = []repository.PathCandidate{
		{QuestionID: "q1", Title: "Two Sum", Slug: "two-sum", Difficulty: "Easy", PathID: "p1", PathTitle: "Arrays 101", OrderIndex: 0},
		{QuestionID: "q2", Title: "3Sum", Slug: "3sum", Difficulty: "Medium", PathID: "p1", PathTitle: "Arrays 101", OrderIndex: 1},
	}

	svc := newTestDailyService(store, questions, nil)

	first, err := svc.GetMorePathQuestions("u1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "q1", first.ID)

	second, err := svc.GetMorePathQuestions("u1")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "q2", second.ID)

	third, err := svc.GetMorePathQuestions("u1")
	require.NoError(t, err)
	assert.Nil(t, third)
}

func TestEnrollDaily(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()
	addQuestion(store, questions, "q1", "Two Sum", "two-sum")

	svc := newTestDailyService(store, questions, nil)

	err := svc.EnrollDaily("u1", "missing")
	assert.True(t, errors.Is(err, util.ErrQuestionNotFound))

	require.NoError(t, svc.EnrollDaily("u1", "q1"))
	require.Len(t, store.recs, 1)
	assert.Equal(t, priorityAdHoc, store.recs[0].PriorityScore)
	assert.Nil(t, store.recs[0].PathID)

	err = svc.EnrollDaily("u1", "q1")
	assert.True(t, errors.Is(err, util.ErrAlreadyQueued))
}

func TestSyncDailyChallenge(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()
	challenge := &fakeChallengeSource{
		challenge: &leetcode.DailyChallenge{
			Date: "2026-09-01",
			Link: "/problems/two-sum/",
			Question: leetcode.ProblemSummary{
				FrontendID: "1",
				Title:      "Two Sum",
				TitleSlug:  "two-sum",
				Difficulty: "Easy",
				TopicTags:  []leetcode.TopicTag{{Name: "Array"}, {Name: "Hash Table"}},
			},
		},
	}

	svc := newTestDailyService(store, questions, challenge)

	question, err := svc.SyncDailyChallenge(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "two-sum", question.Slug)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", question.URL)
	assert.False(t, question.IsCustom)
	assert.Equal(t, []string{"Array", "Hash Table"}, question.Tags)
	assert.Equal(t, []string{"Array", "Hash Table"}, questions.replaced[question.ID])

	require.Len(t, store.recs, 1)
	assert.Equal(t, prioritySync, store.recs[0].PriorityScore)
	assert.Equal(t, question.ID, store.recs[0].QuestionID)

	// A second sync on the same day reuses the stored question and row.
	_, err = svc.SyncDailyChallenge(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, store.recs, 1)
	assert.Len(t, questions.questions, 1)
}

func TestSyncDailyChallengeUpstreamError(t *testing.T) {
	store := newFakeDailyStore()
	questions := newFakeQuestionSource()
	challenge := &fakeChallengeSource{err: errors.New("rate limited")}

	svc := newTestDailyService(store, questions, challenge)

	_, err := svc.SyncDailyChallenge(context.Background(), "u1")
	assert.Error(t, err)
	assert.Empty(t, store.recs)
}
