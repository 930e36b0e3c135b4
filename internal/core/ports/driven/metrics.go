package driven

import (
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

// Metrics records pipeline observations
type Metrics interface {
	ObserveQuestion(outcome domain.AnswerOutcome, took time.Duration)
	ObserveGeneration(failure domain.FailureKind, took time.Duration)
	ObserveRetrieval(took time.Duration)
	IncSafetyBlocked()
	IncTranslation(lang string, ok bool)
	IncCache(hit bool)
	IncRation(status domain.RationStatus)
}
