package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var (
	_ driven.TranslationModelLoader = (*MockTranslationLoader)(nil)
	_ driven.TranslationModel       = (*MockTranslationModel)(nil)
)

// ErrMockTranslation is returned by failing mock models
var ErrMockTranslation = errors.New("mock translation failure")

// MockTranslationLoader loads MockTranslationModels and counts loads per model
type MockTranslationLoader struct {
	mu    sync.Mutex
	loads map[string]int

	Delay     time.Duration
	LoadErr   error
	FailTexts bool
}

// NewMockTranslationLoader creates a new MockTranslationLoader
func NewMockTranslationLoader() *MockTranslationLoader {
	return &MockTranslationLoader{loads: make(map[string]int)}
}

func (m *MockTranslationLoader) Load(ctx context.Context, model string) (driven.TranslationModel, error) {
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads[model]++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return &MockTranslationModel{model: model, fail: m.FailTexts}, nil
}

// Loads returns how many times model was loaded
func (m *MockTranslationLoader) Loads(model string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads[model]
}

// MockTranslationModel prefixes text with its model name
type MockTranslationModel struct {
	model string
	fail  bool
}

func (m *MockTranslationModel) Translate(ctx context.Context, text string) (string, error) {
	if m.fail {
		return "", ErrMockTranslation
	}
	return fmt.Sprintf("[%s] %s", m.model, text), nil
}

func (m *MockTranslationModel) Name() string {
	return m.model
}
