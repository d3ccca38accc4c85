package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leettrack_backend/internal/model"
	"leettrack_backend/internal/repository"
	"leettrack_backend/internal/service"
	"leettrack_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDailyStore struct{}

func (stubDailyStore) PathCandidates(string, int) ([]repository.PathCandidate, error) {
	return nil, nil
}

func (stubDailyStore) NextPathCandidate(string, time.Time) (*repository.PathCandidate, error) {
	return nil, nil
}

func (stubDailyStore) DueReviews(string, time.Time, int) ([]repository.ReviewCandidate, error) {
	return nil, nil
}

func (stubDailyStore) InsertIgnore(*model.DailyRecommendation) error { return nil }

func (stubDailyStore) CountGenerated(string, time.Time) (int64, error) { return 0, nil }

func (stubDailyStore) DailyPicks(string, time.Time, int) ([]repository.DailyPick, error) {
	return nil, nil
}

func (stubDailyStore) CompleteForDate(userID, questionID string, date, now time.Time) error {
	return nil
}

func (stubDailyStore) FindForDate(string, string, time.Time) (*model.DailyRecommendation, error) {
	return nil, nil
}

type stubQuestionSource struct{}

func (stubQuestionSource) Exists(string) (bool, error) { return true, nil }

func (stubQuestionSource) TagsForQuestions([]string) (map[string][]string, error) {
	return map[string][]string{}, nil
}

func (stubQuestionSource) UnattemptedQuestions(string, int) ([]model.Question, error) {
	return nil, nil
}

func (stubQuestionSource) UpsertBySlug(*model.Question) error { return nil }

func (stubQuestionSource) ReplaceTags(string, []string) error { return nil }

type stubProgressStore struct{}

func (stubProgressStore) Find(string, string, *string) (*model.QuestionProgress, error) {
	return nil, nil
}

func (stubProgressStore) ScheduleReview(string, string, *string, time.Time, int, time.Time) error {
	return nil
}

func (stubProgressStore) MarkCompleted(string, string, *string, time.Time) error { return nil }

func (stubProgressStore) ClearReviewFlag(string, string) error { return nil }

func (stubProgressStore) PathCompletionStats(string, string) (int64, int64, error) {
	return 0, 0, nil
}

type stubEnrollmentStore struct{}

func (stubEnrollmentStore) UpdateCompletionPercentage(string, string, float64) error { return nil }

func feedTestContext(t *testing.T, method, body string, authed bool) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if authed {
		c.Set("user", &util.Claims{UserID: "u1", Email: "alex@example.com"})
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetTodayResponseShape(t *testing.T) {
	dailySvc := service.NewDailyService(stubDailyStore{}, stubQuestionSource{}, nil, service.FeedCaps{Path: 3, Review: 3, Daily: 2})
	ctrl := NewDailyController(dailySvc, nil)
	c, w := feedTestContext(t, http.MethodGet, "", true)

	ctrl.GetToday(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "date")
	assert.Contains(t, body, "questions")
	assert.Contains(t, body, "breakdown")
	assert.Equal(t, float64(0), body["total"])
}

func TestScheduleReviewRespondsWithCount(t *testing.T) {
	reviewSvc := service.NewReviewService(stubProgressStore{}, stubEnrollmentStore{}, stubDailyStore{}, stubQuestionSource{})
	ctrl := NewDailyController(nil, reviewSvc)
	c, w := feedTestContext(t, http.MethodPost, `{"question_id":"q1","source_type":"review"}`, true)

	ctrl.ScheduleReview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["review_count"])
	assert.Contains(t, body, "next_review_date")
	assert.Contains(t, body["message"], "scheduled for review")
}

func TestCompleteRequiresAuth(t *testing.T) {
	ctrl := NewDailyController(nil, nil)
	c, w := feedTestContext(t, http.MethodPost, `{"question_id":"q1"}`, false)

	ctrl.Complete(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Authentication required", body["message"])
}

func TestCompleteRequiresQuestionID(t *testing.T) {
	ctrl := NewDailyController(nil, &service.ReviewService{})
	c, w := feedTestContext(t, http.MethodPost, `{}`, true)

	ctrl.Complete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "question_id is required", body["message"])
}

func TestCompleteRejectsUnknownSourceType(t *testing.T) {
	ctrl := NewDailyController(nil, &service.ReviewService{})
	c, w := feedTestContext(t, http.MethodPost, `{"question_id":"q1","source_type":"bogus"}`, true)

	ctrl.Complete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestScheduleReviewRequiresQuestionID(t *testing.T) {
	ctrl := NewDailyController(nil, &service.ReviewService{})
	c, w := feedTestContext(t, http.MethodPost, `{"path_id":"p1"}`, true)

	ctrl.ScheduleReview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "question_id is required", body["message"])
}

func TestEnrollDailyRequiresQuestionID(t *testing.T) {
	ctrl := NewDailyController(&service.DailyService{}, nil)
	c, w := feedTestContext(t, http.MethodPost, `not-json`, true)

	ctrl.EnrollDaily(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}
