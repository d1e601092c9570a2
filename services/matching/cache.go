package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gigmatch/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const recommendedKeyPrefix = "match:recommended:"

// RecommendationCache stores ranked recommendations per event.
type RecommendationCache interface {
	Get(ctx context.Context, eventID string) ([]models.MatchResult, bool, error)
	Set(ctx context.Context, eventID string, results []models.MatchResult) error
	Delete(ctx context.Context, eventID string) error
}

// RedisRecommendationCache implements RecommendationCache on Redis.
type RedisRecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRecommendationCache creates a cache whose entries expire after ttl.
func NewRedisRecommendationCache(client *redis.Client, ttl time.Duration) *RedisRecommendationCache {
	return &RedisRecommendationCache{client: client, ttl: ttl}
}

func recommendedKey(eventID string) string {
	return recommendedKeyPrefix + eventID
}

func (c *RedisRecommendationCache) Get(ctx context.Context, eventID string) ([]models.MatchResult, bool, error) {
	val, err := c.client.Get(ctx, recommendedKey(eventID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", eventID, err)
	}
	var results []models.MatchResult
	if err := json.Unmarshal(val, &results); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", eventID, err)
	}
	return results, true, nil
}

func (c *RedisRecommendationCache) Set(ctx context.Context, eventID string, results []models.MatchResult) error {
	if results == nil {
		results = []models.MatchResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", eventID, err)
	}
	return c.client.Set(ctx, recommendedKey(eventID), data, c.ttl).Err()
}

func (c *RedisRecommendationCache) Delete(ctx context.Context, eventID string) error {
	return c.client.Del(ctx, recommendedKey(eventID)).Err()
}

// CachedRecommender serves recommendations from the cache when it can.
// Cache failures are logged and bypassed; service errors always propagate.
type CachedRecommender struct {
	MatchingService
	Cache  RecommendationCache
	Logger *zap.Logger
}

// NewCachedRecommender wraps svc with cache.
func NewCachedRecommender(svc MatchingService, cache RecommendationCache, logger *zap.Logger) *CachedRecommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRecommender{MatchingService: svc, Cache: cache, Logger: logger}
}

// GetRecommendedMusicians returns the cached ranking, computing it on a miss.
func (c *CachedRecommender) GetRecommendedMusicians(ctx context.Context, eventID string) ([]models.MatchResult, error) {
	cached, ok, err := c.Cache.Get(ctx, eventID)
	if err != nil {
		c.Logger.Warn("recommendation cache read failed", zap.String("eventId", eventID), zap.Error(err))
	}
	if ok {
		return cached, nil
	}
	return c.Refresh(ctx, eventID)
}

// Refresh recomputes the recommendations for an event and stores them.
func (c *CachedRecommender) Refresh(ctx context.Context, eventID string) ([]models.MatchResult, error) {
	results, err := c.MatchingService.GetRecommendedMusicians(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := c.Cache.Set(ctx, eventID, results); err != nil {
		c.Logger.Warn("recommendation cache write failed", zap.String("eventId", eventID), zap.Error(err))
	}
	return results, nil
}

// Invalidate drops the cached recommendations of an event.
func (c *CachedRecommender) Invalidate(ctx context.Context, eventID string) error {
	return c.Cache.Delete(ctx, eventID)
}
