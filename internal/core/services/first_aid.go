package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driving"
	"github.com/firstresponse-ai/firstresponse-core/internal/postprocessors"
	"github.com/firstresponse-ai/firstresponse-core/internal/rules"
)

// Generation budgets
const (
	DefaultGenerationTimeout = 600 * time.Second
	DefaultWarmupTimeout     = 120 * time.Second
)

// Ensure firstAidService implements FirstAidService
var _ driving.FirstAidService = (*firstAidService)(nil)

// Retriever returns the passages nearest to a query
type Retriever interface {
	Retrieve(ctx context.Context, text string, k int) ([]domain.Chunk, error)
}

// FirstAidConfig wires the question pipeline
type FirstAidConfig struct {
	Safety     *SafetyGate
	Index      Retriever
	Translator *Translator
	Generator  driven.Generator
	Sanitizer  driven.LineProcessorPipeline // nil uses the embedded sanitizer
	Checklist  *ChecklistExtractor          // nil uses the embedded checklist table

	// Optional answer cache
	Cache    driven.AnswerCache
	CacheTTL time.Duration

	Model        string
	Timeout      time.Duration
	TopK         int
	ContextChars int

	Logger  *slog.Logger
	Metrics driven.Metrics
}

type firstAidService struct {
	safety       *SafetyGate
	index        Retriever
	translator   *Translator
	generator    driven.Generator
	sanitizer    driven.LineProcessorPipeline
	checklist    *ChecklistExtractor
	cache        driven.AnswerCache
	cacheTTL     time.Duration
	model        string
	timeout      time.Duration
	topK         int
	contextChars int
	logger       *slog.Logger
	metrics      driven.Metrics
}

// NewFirstAidService creates a new FirstAidService
func NewFirstAidService(cfg FirstAidConfig) driving.FirstAidService {
	s := &firstAidService{
		safety:       cfg.Safety,
		index:        cfg.Index,
		translator:   cfg.Translator,
		generator:    cfg.Generator,
		sanitizer:    cfg.Sanitizer,
		checklist:    cfg.Checklist,
		cache:        cfg.Cache,
		cacheTTL:     cfg.CacheTTL,
		model:        cfg.Model,
		timeout:      cfg.Timeout,
		topK:         cfg.TopK,
		contextChars: cfg.ContextChars,
		logger:       cfg.Logger,
		metrics:      metricsOrNop(cfg.Metrics),
	}

	if s.safety == nil || s.sanitizer == nil || s.checklist == nil {
		set := rules.MustDefault()
		if s.safety == nil {
			s.safety = NewSafetyGate(set.Safety)
		}
		if s.sanitizer == nil {
			s.sanitizer = postprocessors.NewSanitizer(set.Reasoning)
		}
		if s.checklist == nil {
			s.checklist = NewChecklistExtractor(set.Checklist)
		}
	}
	if s.timeout <= 0 {
		s.timeout = DefaultGenerationTimeout
	}
	if s.topK <= 0 {
		s.topK = DefaultTopK
	}
	if s.contextChars <= 0 {
		s.contextChars = DefaultContextChars
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Ask runs safety gate, translation, retrieval, generation, sanitizing,
// back-translation and checklist extraction in sequence.
func (s *firstAidService) Ask(ctx context.Context, q domain.Question) (*domain.Answer, error) {
	start := time.Now()
	answer, err := s.ask(ctx, q)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveQuestion(answer.Outcome, time.Since(start))
	return answer, nil
}

func (s *firstAidService) ask(ctx context.Context, q domain.Question) (*domain.Answer, error) {
	lang := domain.ResolveLanguage(q.Language)
	answer := &domain.Answer{
		Question:  q.Text,
		Language:  q.Language,
		Checklist: []domain.ChecklistRow{},
	}

	verdict := s.safety.Check(q.Text)
	if !verdict.Safe {
		s.metrics.IncSafetyBlocked()
		s.logger.Info("question blocked by safety gate", "term", verdict.Term)
		answer.Blocked = true
		answer.Text = verdict.Message
		answer.Outcome = domain.OutcomeBlocked
		return answer, nil
	}

	key := s.cacheKey(q.Text, lang)
	if cached := s.lookup(ctx, key); cached != nil {
		cached.Question = q.Text
		cached.Language = q.Language
		cached.Cached = true
		return cached, nil
	}

	question := q.Text
	if s.translator != nil {
		translated, err := s.translator.Translate(ctx, q.Text, lang, domain.WorkingLanguage)
		if err != nil {
			s.logger.Warn("question translation failed, using original text", "lang", lang, "error", err)
		} else {
			question = translated
		}
	}

	retrievalStart := time.Now()
	chunks, err := s.index.Retrieve(ctx, question, s.topK)
	s.metrics.ObserveRetrieval(time.Since(retrievalStart))
	if err != nil {
		if errors.Is(err, domain.ErrIntegrity) {
			s.logger.Error("passage index integrity fault", "error", err)
			return nil, err
		}
		s.logger.Warn("passage retrieval failed", "error", err)
		answer.Text = domain.MessageRetrievalUnavailable
		answer.Outcome = domain.OutcomeRetrievalFailed
		return answer, nil
	}

	excerpt := BuildContext(chunks, s.contextChars)
	if excerpt == "" {
		answer.Text = domain.MessageNoRelevantInfo
		answer.Outcome = domain.OutcomeNoContext
		return answer, nil
	}

	result := s.generator.Generate(ctx, domain.GenerationRequest{
		Prompt:  BuildAnswerPrompt(excerpt, question),
		Model:   s.model,
		Timeout: s.timeout,
	})
	s.metrics.ObserveGeneration(result.Failure, result.Duration)
	if !result.OK() {
		s.logger.Warn("answer generation failed",
			"failure", result.Failure,
			"detail", result.Detail,
			"duration", result.Duration,
		)
		answer.Text = domain.MessageGenerationFailed
		answer.Outcome = domain.OutcomeGenerationFailed
		return answer, nil
	}

	cleaned := s.sanitizer.Process(result.Text)
	if cleaned == "" {
		s.logger.Warn("generated answer empty after sanitizing")
		answer.Text = domain.MessageGenerationFailed
		answer.Outcome = domain.OutcomeGenerationFailed
		return answer, nil
	}

	final := cleaned
	if s.translator != nil && s.translator.Supported(lang) {
		translated, err := s.translator.Translate(ctx, cleaned, domain.WorkingLanguage, lang)
		if err != nil {
			s.logger.Warn("answer translation failed, returning working language", "lang", lang, "error", err)
		} else {
			final = translated
			answer.Translated = true
		}
	}

	answer.Text = final
	answer.Checklist = s.checklist.Extract(final)
	answer.Outcome = domain.OutcomeAnswered

	s.store(ctx, key, answer)
	return answer, nil
}

func (s *firstAidService) cacheKey(question, lang string) string {
	if s.cache == nil {
		return ""
	}
	key, err := CacheKey(question, lang, s.model)
	if err != nil {
		s.logger.Warn("cache key failed", "error", err)
		return ""
	}
	return key
}

func (s *firstAidService) lookup(ctx context.Context, key string) *domain.Answer {
	if key == "" {
		return nil
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("answer cache read failed", "error", err)
		}
		s.metrics.IncCache(false)
		return nil
	}
	s.metrics.IncCache(true)
	return cached
}

func (s *firstAidService) store(ctx context.Context, key string, answer *domain.Answer) {
	if key == "" || !answer.Cacheable() {
		return
	}
	if err := s.cache.Set(ctx, key, answer, s.cacheTTL); err != nil {
		s.logger.Warn("answer cache write failed", "error", err)
	}
}
