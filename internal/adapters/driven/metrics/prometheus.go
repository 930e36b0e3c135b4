// Package metrics exposes pipeline observations to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var _ driven.Metrics = (*Prometheus)(nil)

const namespace = "firstresponse"

// generationBuckets span a warm answer (seconds) to the 600s hard limit
var generationBuckets = []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// Prometheus implements driven.Metrics on its own registry
type Prometheus struct {
	registry *prometheus.Registry

	questions     *prometheus.CounterVec
	questionTime  *prometheus.HistogramVec
	generations   *prometheus.CounterVec
	generateTime  prometheus.Histogram
	retrievalTime prometheus.Histogram
	blocked       prometheus.Counter
	translations  *prometheus.CounterVec
	cache         *prometheus.CounterVec
	rations       *prometheus.CounterVec
}

// NewPrometheus registers all collectors, plus Go and process collectors,
// on a fresh registry.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		questions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_total",
			Help:      "First-aid questions by outcome.",
		}, []string{"outcome"}),
		questionTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "question_duration_seconds",
			Help:      "End-to-end first-aid question latency.",
			Buckets:   generationBuckets,
		}, []string{"outcome"}),
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Model generations by result.",
		}, []string{"result"}),
		generateTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Model generation latency.",
			Buckets:   generationBuckets,
		}),
		retrievalTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retrieval_duration_seconds",
			Help:      "Passage retrieval latency including query embedding.",
			Buckets:   prometheus.DefBuckets,
		}),
		blocked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "safety_blocked_total",
			Help:      "Questions rejected by the safety gate.",
		}),
		translations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_total",
			Help:      "Translations by language and success.",
		}, []string{"lang", "ok"}),
		cache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answer_cache_lookups_total",
			Help:      "Answer cache lookups by result.",
		}, []string{"result"}),
		rations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ration_allocations_total",
			Help:      "Per-resource allocations by status.",
		}, []string{"status"}),
	}
}

// Handler serves the registry in the exposition format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry returns the underlying registry
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) ObserveQuestion(outcome domain.AnswerOutcome, took time.Duration) {
	p.questions.WithLabelValues(string(outcome)).Inc()
	p.questionTime.WithLabelValues(string(outcome)).Observe(took.Seconds())
}

func (p *Prometheus) ObserveGeneration(failure domain.FailureKind, took time.Duration) {
	result := string(failure)
	if failure == domain.FailureNone {
		result = "ok"
	}
	p.generations.WithLabelValues(result).Inc()
	p.generateTime.Observe(took.Seconds())
}

func (p *Prometheus) ObserveRetrieval(took time.Duration) {
	p.retrievalTime.Observe(took.Seconds())
}

func (p *Prometheus) IncSafetyBlocked() {
	p.blocked.Inc()
}

func (p *Prometheus) IncTranslation(lang string, ok bool) {
	p.translations.WithLabelValues(lang, strconv.FormatBool(ok)).Inc()
}

func (p *Prometheus) IncCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cache.WithLabelValues(result).Inc()
}

func (p *Prometheus) IncRation(status domain.RationStatus) {
	p.rations.WithLabelValues(string(status)).Inc()
}
