package driven

import (
	"context"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

// IndexArtifactSource loads the prebuilt corpus artifact.
// The artifact is produced offline; sources only read it.
type IndexArtifactSource interface {
	Load(ctx context.Context) (*domain.IndexArtifact, error)

	// Describe returns a human-readable location for logs
	Describe() string
}
