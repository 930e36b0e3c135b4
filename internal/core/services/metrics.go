package services

import (
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

// nopMetrics discards observations when no recorder is configured
type nopMetrics struct{}

var _ driven.Metrics = nopMetrics{}

func (nopMetrics) ObserveQuestion(domain.AnswerOutcome, time.Duration)  {}
func (nopMetrics) ObserveGeneration(domain.FailureKind, time.Duration) {}
func (nopMetrics) ObserveRetrieval(time.Duration)                      {}
func (nopMetrics) IncSafetyBlocked()                                   {}
func (nopMetrics) IncTranslation(string, bool)                         {}
func (nopMetrics) IncCache(bool)                                       {}
func (nopMetrics) IncRation(domain.RationStatus)                       {}

func metricsOrNop(m driven.Metrics) driven.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
