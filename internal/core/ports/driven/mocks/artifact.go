package mocks

import (
	"context"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var _ driven.IndexArtifactSource = (*MockArtifactSource)(nil)

// MockArtifactSource returns a fixed artifact
type MockArtifactSource struct {
	Artifact *domain.IndexArtifact
	Err      error
}

func (m *MockArtifactSource) Load(ctx context.Context) (*domain.IndexArtifact, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Artifact, nil
}

func (m *MockArtifactSource) Describe() string {
	return "mock"
}
