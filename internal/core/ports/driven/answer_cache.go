package driven

import (
	"context"
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

// AnswerCache stores generated answers keyed by a canonical question digest
type AnswerCache interface {
	// Get returns domain.ErrCacheMiss when nothing is stored under key
	Get(ctx context.Context, key string) (*domain.Answer, error)

	// Set stores an answer. A zero ttl means no expiry.
	Set(ctx context.Context, key string, answer *domain.Answer, ttl time.Duration) error

	// Ping checks if the cache backend is healthy
	Ping(ctx context.Context) error
}
