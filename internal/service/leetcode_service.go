package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"leettrack_backend/pkg/leetcode"
	"leettrack_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// LeetCodeService proxies the public GraphQL API behind a redis read-through
// cache, keeping upstream traffic low and responses fast. A cache outage
// degrades to direct fetches.
type LeetCodeService struct {
	client   *leetcode.Client
	redis    *redis.Client
	dailyTTL time.Duration
	queryTTL time.Duration
}

func NewLeetCodeService(client *leetcode.Client, rdb *redis.Client, dailyTTL, queryTTL time.Duration) *LeetCodeService {
	return &LeetCodeService{
		client:   client,
		redis:    rdb,
		dailyTTL: dailyTTL,
		queryTTL: queryTTL,
	}
}

// GetDailyChallenge also serves as the ChallengeSource used when syncing the
// official question into the feed, so sync hits the same cache.
func (s *LeetCodeService) GetDailyChallenge(ctx context.Context) (*leetcode.DailyChallenge, error) {
	var out leetcode.DailyChallenge
	err := s.cached(ctx, "leetcode:daily", s.dailyTTL, &out, func() (any, error) {
		return s.client.GetDailyChallenge(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LeetCodeService) Question(ctx context.Context, slug string) (*leetcode.QuestionDetail, error) {
	var out leetcode.QuestionDetail
	key := "leetcode:question:" + slug
	err := s.cached(ctx, key, s.queryTTL, &out, func() (any, error) {
		return s.client.GetQuestionBySlug(ctx, slug)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LeetCodeService) Problems(ctx context.Context, tags []string, difficulty string, limit, skip int) (*leetcode.ProblemList, error) {
	var out leetcode.ProblemList
	key := fmt.Sprintf("leetcode:problems:%s:%s:%d:%d", strings.Join(tags, ","), difficulty, limit, skip)
	err := s.cached(ctx, key, s.queryTTL, &out, func() (any, error) {
		return s.client.GetProblemList(ctx, tags, difficulty, limit, skip)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LeetCodeService) UserProfile(ctx context.Context, username string) (*leetcode.UserProfile, error) {
	var out leetcode.UserProfile
	key := "leetcode:profile:" + username
	err := s.cached(ctx, key, s.queryTTL, &out, func() (any, error) {
		return s.client.GetUserProfile(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// cached fills out from redis when the key is warm, otherwise calls fetch and
// stores the result. Redis errors are logged and bypassed.
func (s *LeetCodeService) cached(ctx context.Context, key string, ttl time.Duration, out any, fetch func() (any, error)) error {
	if s.redis != nil {
		data, err := s.redis.Get(ctx, key).Bytes()
		if err == nil {
			if jsonErr := json.Unmarshal(data, out); jsonErr == nil {
				return nil
			}
			// A corrupt entry falls through to a fresh fetch.
		} else if err != redis.Nil {
			logger.Log.Warn("leetcode cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	fresh, err := fetch()
	if err != nil {
		return err
	}

	data, err := json.Marshal(fresh)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
			logger.Log.Warn("leetcode cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}
