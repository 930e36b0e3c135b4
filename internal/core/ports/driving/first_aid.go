package driving

import (
	"context"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

// FirstAidService answers first-aid questions from the manual corpus
type FirstAidService interface {
	// Ask runs the question pipeline. Recoverable failures are reported in
	// the answer text; only integrity faults are returned as errors.
	Ask(ctx context.Context, q domain.Question) (*domain.Answer, error)
}
