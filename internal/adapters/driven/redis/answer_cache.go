package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AnswerCache = (*AnswerCache)(nil)

// AnswerCache implements driven.AnswerCache with JSON values and Redis TTL
type AnswerCache struct {
	client redis.UniversalClient
}

// NewAnswerCache creates a new Redis-backed AnswerCache
func NewAnswerCache(client redis.UniversalClient) *AnswerCache {
	return &AnswerCache{client: client}
}

// Get returns the stored answer or domain.ErrCacheMiss
func (c *AnswerCache) Get(ctx context.Context, key string) (*domain.Answer, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get cached answer: %w", err)
	}

	var answer domain.Answer
	if err := json.Unmarshal(data, &answer); err != nil {
		return nil, fmt.Errorf("unmarshal cached answer: %w", err)
	}
	return &answer, nil
}

// Set stores answer under key. A zero ttl keeps it until evicted.
func (c *AnswerCache) Set(ctx context.Context, key string, answer *domain.Answer, ttl time.Duration) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache answer: %w", err)
	}
	return nil
}

// Ping checks if the Redis backend is healthy
func (c *AnswerCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
