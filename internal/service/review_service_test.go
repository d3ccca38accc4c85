package service

import (
	"errors"
	"testing"
	"time"

	"leettrack_backend/internal/model"
	"leettrack_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressKey struct {
	userID     string
	questionID string
	pathID     string
}

func keyFor(userID, questionID string, pathID *string) progressKey {
	k := progressKey{userID: userID, questionID: questionID}
	if pathID != nil {
		k.pathID = *pathID
	}
	return k
}

type fakeProgressStore struct {
	rows       map[progressKey]*model.QuestionProgress
	pathTotals map[string]int64
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{
		rows:       make(map[progressKey]*model.QuestionProgress),
		pathTotals: make(map[string]int64),
	}
}

func (f *fakeProgressStore) Find(userID, questionID string, pathID *string) (*model.QuestionProgress, error) {
	row, ok := f.rows[keyFor(userID, questionID, pathID)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeProgressStore) ScheduleReview(userID, questionID string, pathID *string, nextReviewDate time.Time, reviewCount int, now time.Time) error {
	k := keyFor(userID, questionID, pathID)
	row, ok := f.rows[k]
	if !ok {
		row = &model.QuestionProgress{
			UserID:           userID,
			QuestionID:       questionID,
			PathID:           pathID,
			FirstAttemptedAt: &now,
		}
		f.rows[k] = row
	}
	row.Status = model.StatusNeedsReview
	row.WantsReview = true
	next := nextReviewDate
	row.NextReviewDate = &next
	row.ReviewCount = reviewCount
	last := now
	row.LastAttemptedAt = &last
	return nil
}

func (f *fakeProgressStore) MarkCompleted(userID, questionID string, pathID *string, now time.Time) error {
	k := keyFor(userID, questionID, pathID)
	row, ok := f.rows[k]
	if !ok {
		row = &model.QuestionProgress{
			UserID:           userID,
			QuestionID:       questionID,
			PathID:           pathID,
			FirstAttemptedAt: &now,
		}
		f.rows[k] = row
	}
	row.Status = model.StatusCompleted
	last := now
	row.LastAttemptedAt = &last
	completed := now
	row.CompletedAt = &completed
	return nil
}

func (f *fakeProgressStore) ClearReviewFlag(userID, questionID string) error {
	for k, row := range f.rows {
		if k.userID == userID && k.questionID == questionID {
			row.WantsReview = false
			row.NextReviewDate = nil
		}
	}
	return nil
}

func (f *fakeProgressStore) PathCompletionStats(userID, pathID string) (int64, int64, error) {
	var completed int64
	for k, row := range f.rows {
		if k.userID == userID && k.pathID == pathID && row.Status == model.StatusCompleted {
			completed++
		}
	}
	return f.pathTotals[pathID], completed, nil
}

type fakeEnrollmentStore struct {
	percentages map[string]float64
}

func (f *fakeEnrollmentStore) UpdateCompletionPercentage(userID, pathID string, percentage float64) error {
	if f.percentages == nil {
		f.percentages = make(map[string]float64)
	}
	f.percentages[userID+"/"+pathID] = percentage
	return nil
}

type fakeCompleter struct {
	completed []string
}

func (f *fakeCompleter) CompleteForDate(userID, questionID string, date, now time.Time) error {
	f.completed = append(f.completed, questionID)
	return nil
}

type fakeChecker struct {
	known map[string]bool
}

func (f *fakeChecker) Exists(id string) (bool, error) {
	return f.known[id], nil
}

func newTestReviewService(progress *fakeProgressStore, enrollments *fakeEnrollmentStore, daily *fakeCompleter, known ...string) *ReviewService {
	checker := &fakeChecker{known: make(map[string]bool)}
	for _, id := range known {
		checker.known[id] = true
	}
	svc := NewReviewService(progress, enrollments, daily, checker)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestScheduleReviewFirstPass(t *testing.T) {
	progress := newFakeProgressStore()
	svc := newTestReviewService(progress, &fakeEnrollmentStore{}, &fakeCompleter{}, "q1")

	next, count, err := svc.ScheduleReview("u1", "q1", nil, model.SourceReview)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), next)
	assert.Equal(t, 1, count)

	row := progress.rows[keyFor("u1", "q1", nil)]
	require.NotNil(t, row)
	assert.Equal(t, model.StatusNeedsReview, row.Status)
	assert.True(t, row.WantsReview)
	assert.Equal(t, 1, row.ReviewCount)
	require.NotNil(t, row.NextReviewDate)
	assert.Equal(t, next, *row.NextReviewDate)
	assert.Equal(t, testNow, *row.FirstAttemptedAt)
}

func TestScheduleReviewWalksTheLadder(t *testing.T) {
	cases := []struct {
		reviewCount int
		wantDays    int
	}{
		{0, 1},
		{1, 3},
		{2, 7},
		{3, 14},
		{4, 30},
		{5, 60},
		{6, 90},
		{7, 90},
		{25, 90},
	}

	for _, tc := range cases {
		progress := newFakeProgressStore()
		if tc.reviewCount > 0 {
			progress.rows[keyFor("u1", "q1", nil)] = &model.QuestionProgress{
				UserID:      "u1",
				QuestionID:  "q1",
				ReviewCount: tc.reviewCount,
			}
		}
		svc := newTestReviewService(progress, &fakeEnrollmentStore{}, &fakeCompleter{}, "q1")

		next, count, err := svc.ScheduleReview("u1", "q1", nil, model.SourceReview)
		require.NoError(t, err)

		want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, tc.wantDays)
		assert.Equal(t, want, next, "reviewCount=%d", tc.reviewCount)
		assert.Equal(t, tc.reviewCount+1, count, "reviewCount=%d", tc.reviewCount)
		assert.Equal(t, tc.reviewCount+1, progress.rows[keyFor("u1", "q1", nil)].ReviewCount)
	}
}

func TestScheduleReviewKeepsFirstAttemptedAt(t *testing.T) {
	progress := newFakeProgressStore()
	earlier := testNow.AddDate(0, 0, -10)
	progress.rows[keyFor("u1", "q1", nil)] = &model.QuestionProgress{
		UserID:           "u1",
		QuestionID:       "q1",
		ReviewCount:      1,
		FirstAttemptedAt: &earlier,
	}
	svc := newTestReviewService(progress, &fakeEnrollmentStore{}, &fakeCompleter{}, "q1")

	_, _, err := svc.ScheduleReview("u1", "q1", nil, model.SourceReview)
	require.NoError(t, err)

	row := progress.rows[keyFor("u1", "q1", nil)]
	assert.Equal(t, earlier, *row.FirstAttemptedAt)
	assert.Equal(t, testNow, *row.LastAttemptedAt)
}

func TestScheduleReviewUnknownQuestion(t *testing.T) {
	svc := newTestReviewService(newFakeProgressStore(), &fakeEnrollmentStore{}, &fakeCompleter{})

	_, _, err := svc.ScheduleReview("u1", "missing", nil, model.SourceReview)
	assert.True(t, errors.Is(err, util.ErrQuestionNotFound))
}

func TestScheduleReviewFromDailyClosesRecommendation(t *testing.T) {
	daily := &fakeCompleter{}
	svc := newTestReviewService(newFakeProgressStore(), &fakeEnrollmentStore{}, daily, "q1")

	_, _, err := svc.ScheduleReview("u1", "q1", nil, model.SourceDaily)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, daily.completed)

	daily.completed = nil
	_, _, err = svc.ScheduleReview("u1", "q1", nil, model.SourceReview)
	require.NoError(t, err)
	assert.Empty(t, daily.completed)
}

func TestCompleteDailySource(t *testing.T) {
	progress := newFakeProgressStore()
	daily := &fakeCompleter{}
	svc := newTestReviewService(progress, &fakeEnrollmentStore{}, daily, "q1")

	require.NoError(t, svc.Complete("u1", "q1", nil, model.SourceDaily))

	row := progress.rows[keyFor("u1", "q1", nil)]
	require.NotNil(t, row)
	assert.Equal(t, model.StatusCompleted, row.Status)
	assert.False(t, row.WantsReview)
	assert.Equal(t, []string{"q1"}, daily.completed)
}

func TestCompleteNonDailyLeavesRecommendations(t *testing.T) {
	daily := &fakeCompleter{}
	svc := newTestReviewService(newFakeProgressStore(), &fakeEnrollmentStore{}, daily, "q1")

	require.NoError(t, svc.Complete("u1", "q1", nil, model.SourceReview))
	assert.Empty(t, daily.completed)
}

func TestCompleteClearsReviewFlagEverywhere(t *testing.T) {
	progress := newFakeProgressStore()
	pathID := "p1"
	due := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	progress.rows[keyFor("u1", "q1", &pathID)] = &model.QuestionProgress{
		UserID:         "u1",
		QuestionID:     "q1",
		PathID:         &pathID,
		WantsReview:    true,
		NextReviewDate: &due,
		Status:         model.StatusNeedsReview,
	}
	svc := newTestReviewService(progress, &fakeEnrollmentStore{}, &fakeCompleter{}, "q1")

	// Completing outside the path still drops the path-scoped review flag.
	require.NoError(t, svc.Complete("u1", "q1", nil, model.SourceDaily))

	pathRow := progress.rows[keyFor("u1", "q1", &pathID)]
	assert.False(t, pathRow.WantsReview)
	assert.Nil(t, pathRow.NextReviewDate)
}

func TestCompletePathUpdatesEnrollmentPercentage(t *testing.T) {
	progress := newFakeProgressStore()
	progress.pathTotals["p1"] = 4
	pathID := "p1"
	otherID := "q0"
	progress.rows[keyFor("u1", otherID, &pathID)] = &model.QuestionProgress{
		UserID:     "u1",
		QuestionID: otherID,
		PathID:     &pathID,
		Status:     model.StatusCompleted,
	}
	enrollments := &fakeEnrollmentStore{}
	svc := newTestReviewService(progress, enrollments, &fakeCompleter{}, "q1")

	require.NoError(t, svc.Complete("u1", "q1", &pathID, model.SourcePath))

	assert.Equal(t, 50.0, enrollments.percentages["u1/p1"])
}
