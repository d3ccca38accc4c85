package leetcode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, data string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Query)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":` + data + `}`))
	}))
}

func TestGetDailyChallenge(t *testing.T) {
	srv := newTestServer(t, `{
		"activeDailyCodingChallengeQuestion": {
			"date": "2025-03-10",
			"link": "/problems/two-sum/",
			"question": {
				"difficulty": "Easy",
				"frontendQuestionId": "1",
				"title": "Two Sum",
				"titleSlug": "two-sum",
				"topicTags": [{"name": "Array", "slug": "array"}]
			}
		}
	}`)
	defer srv.Close()

	c := NewClient(srv.URL)
	daily, err := c.GetDailyChallenge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", daily.Date)
	assert.Equal(t, "two-sum", daily.Question.TitleSlug)
	assert.Equal(t, "Easy", daily.Question.Difficulty)
	assert.Len(t, daily.Question.TopicTags, 1)
}

func TestGetDailyChallengeEmptyPayload(t *testing.T) {
	srv := newTestServer(t, `{"activeDailyCodingChallengeQuestion": null}`)
	defer srv.Close()

	_, err := NewClient(srv.URL).GetDailyChallenge(context.Background())
	assert.Error(t, err)
}

func TestGetQuestionBySlug(t *testing.T) {
	srv := newTestServer(t, `{
		"question": {
			"questionId": "1",
			"title": "Two Sum",
			"titleSlug": "two-sum",
			"difficulty": "Easy",
			"likes": 100,
			"hints": ["try a hash map"]
		}
	}`)
	defer srv.Close()

	q, err := NewClient(srv.URL).GetQuestionBySlug(context.Background(), "two-sum")
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", q.Title)
	assert.Equal(t, 100, q.Likes)
	assert.Equal(t, []string{"try a hash map"}, q.Hints)
}

func TestGetProblemList(t *testing.T) {
	srv := newTestServer(t, `{
		"problemsetQuestionList": {
			"total": 2,
			"questions": [
				{"title": "Two Sum", "titleSlug": "two-sum", "difficulty": "Easy"},
				{"title": "3Sum", "titleSlug": "3sum", "difficulty": "Medium"}
			]
		}
	}`)
	defer srv.Close()

	list, err := NewClient(srv.URL).GetProblemList(context.Background(), []string{"array"}, "Easy", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Questions, 2)
}

func TestGetUserProfileNotFound(t *testing.T) {
	srv := newTestServer(t, `{"allQuestionsCount": [], "matchedUser": null}`)
	defer srv.Close()

	_, err := NewClient(srv.URL).GetUserProfile(context.Background(), "nobody")
	assert.Error(t, err)
}

func TestGraphQLErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"rate limited"}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetDailyChallenge(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetDailyChallenge(context.Background())
	assert.Error(t, err)
}
