package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/database"
)

// RecommendationCache stores serialized team-recommendation payloads in Redis.
// Matching itself stays pure; the cache only short-circuits repeated identical
// requests and is warmed by the batch worker.
type RecommendationCache struct {
	rdb    *database.Redis
	ttl    time.Duration
	logger *zap.Logger
}

func NewRecommendationCache(rdb *database.Redis, ttl time.Duration, logger *zap.Logger) *RecommendationCache {
	return &RecommendationCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Key builds the cache key for a recommendation request.
func Key(projectID uuid.UUID, teamSize, limit int) string {
	return fmt.Sprintf("match:reco:%s:%d:%d", projectID, teamSize, limit)
}

// Get returns the cached payload for key, or found=false on miss. Redis
// failures degrade to a miss; matching must not depend on the cache.
func (c *RecommendationCache) Get(ctx context.Context, key string, out interface{}) bool {
	data, err := c.rdb.Client().Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("recommendation cache read failed", zap.Error(err), zap.String("key", key))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("recommendation cache payload corrupt", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

// Set stores a payload under key with the configured TTL.
func (c *RecommendationCache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("recommendation cache marshal failed", zap.Error(err), zap.String("key", key))
		return
	}
	if err := c.rdb.Client().Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("recommendation cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// Invalidate drops every cached recommendation for a project, e.g. after its
// requirement changes.
func (c *RecommendationCache) Invalidate(ctx context.Context, projectID uuid.UUID) {
	pattern := fmt.Sprintf("match:reco:%s:*", projectID)
	iter := c.rdb.Client().Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Client().Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("recommendation cache invalidate failed", zap.Error(err))
			return
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("recommendation cache scan failed", zap.Error(err))
	}
}
