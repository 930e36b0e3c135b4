package driven

import (
	"context"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

// Generator invokes a language model with a bounded wall-clock budget.
// Failures are reported in the result, never as a panic or error.
// Implementations never retry.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult

	// Name identifies the backend for logs and readiness output
	Name() string
}
