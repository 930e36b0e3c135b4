package mocks

import (
	"context"
	"sync"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var _ driven.Generator = (*MockGenerator)(nil)

// MockGenerator is a scripted Generator for testing.
// By default it returns Text successfully.
type MockGenerator struct {
	mu       sync.Mutex
	requests []domain.GenerationRequest

	Text       string
	GenerateFn func(req domain.GenerationRequest) domain.GenerationResult
}

// NewMockGenerator creates a generator that always answers text
func NewMockGenerator(text string) *MockGenerator {
	return &MockGenerator{Text: text}
}

// NewFailingGenerator creates a generator that always fails with kind
func NewFailingGenerator(kind domain.FailureKind, detail string) *MockGenerator {
	return &MockGenerator{
		GenerateFn: func(domain.GenerationRequest) domain.GenerationResult {
			return domain.GenerationFailed(kind, detail, 0)
		},
	}
}

func (m *MockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	fn := m.GenerateFn
	text := m.Text
	m.mu.Unlock()

	if fn != nil {
		return fn(req)
	}
	return domain.GenerationSucceeded(text, 0)
}

func (m *MockGenerator) Name() string {
	return "mock"
}

// Requests returns a copy of all received requests
func (m *MockGenerator) Requests() []domain.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.GenerationRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls returns the number of Generate calls
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
