package driving

import (
	"context"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

// RationingService allocates and explains scarce resources
type RationingService interface {
	// Allocate computes per-person-per-day allocations.
	// Returns domain.ErrInvalidInput when preconditions are violated.
	Allocate(ctx context.Context, req domain.RationRequest) ([]domain.RationResult, error)

	// Explain allocates and asks the generator for a friendly explanation.
	// A generation failure yields a fixed fallback explanation, not an error.
	Explain(ctx context.Context, req domain.ExplainRequest) (*domain.RationExplanation, error)
}
