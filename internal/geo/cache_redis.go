package geo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitlyapps/fitly-api/internal/models"
)

const redisKeyPrefix = "geo:cities:"

// RedisCache is a SuggestionCache backed by Redis, for deployments running
// more than one API instance. Cache failures are treated as misses; a lookup
// never fails because Redis is down.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, text string) ([]models.CitySuggestion, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+CacheKey(text)).Bytes()
	if err != nil {
		return nil, false
	}

	var suggestions []models.CitySuggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, false
	}
	return suggestions, true
}

func (c *RedisCache) Set(ctx context.Context, text string, suggestions []models.CitySuggestion) {
	key := CacheKey(text)
	if key == "" {
		return
	}

	raw, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl)
}
