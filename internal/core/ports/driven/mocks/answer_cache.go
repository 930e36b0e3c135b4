package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var _ driven.AnswerCache = (*MockAnswerCache)(nil)

// MockAnswerCache is an in-memory AnswerCache for testing
type MockAnswerCache struct {
	mu      sync.Mutex
	answers map[string]domain.Answer
	ttls    map[string]time.Duration

	GetErr  error
	SetErr  error
	PingErr error
}

// NewMockAnswerCache creates a new MockAnswerCache
func NewMockAnswerCache() *MockAnswerCache {
	return &MockAnswerCache{
		answers: make(map[string]domain.Answer),
		ttls:    make(map[string]time.Duration),
	}
}

func (m *MockAnswerCache) Get(ctx context.Context, key string) (*domain.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	a, ok := m.answers[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return &a, nil
}

func (m *MockAnswerCache) Set(ctx context.Context, key string, answer *domain.Answer, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.answers[key] = *answer
	m.ttls[key] = ttl
	return nil
}

func (m *MockAnswerCache) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PingErr
}

// Len returns the number of stored answers
func (m *MockAnswerCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.answers)
}
