package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driving"
	"github.com/firstresponse-ai/firstresponse-core/internal/postprocessors"
	"github.com/firstresponse-ai/firstresponse-core/internal/rules"
)

// Ensure rationingService implements RationingService
var _ driving.RationingService = (*rationingService)(nil)

// RationingConfig configures the rationing service
type RationingConfig struct {
	Generator driven.Generator
	Cleaner   driven.LineProcessorPipeline // nil uses the embedded explanation cleaner
	Model     string
	Timeout   time.Duration
	Logger    *slog.Logger
	Metrics   driven.Metrics
}

type rationingService struct {
	generator driven.Generator
	cleaner   driven.LineProcessorPipeline
	model     string
	timeout   time.Duration
	logger    *slog.Logger
	metrics   driven.Metrics
}

// NewRationingService creates a new RationingService
func NewRationingService(cfg RationingConfig) driving.RationingService {
	cleaner := cfg.Cleaner
	if cleaner == nil {
		cleaner = postprocessors.NewExplanationCleaner(rules.MustDefault().Reasoning)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &rationingService{
		generator: cfg.Generator,
		cleaner:   cleaner,
		model:     cfg.Model,
		timeout:   timeout,
		logger:    logger,
		metrics:   metricsOrNop(cfg.Metrics),
	}
}

// Allocate computes the allocation table
func (s *rationingService) Allocate(_ context.Context, req domain.RationRequest) ([]domain.RationResult, error) {
	results, err := Allocate(req.Resources, req.People, req.Days)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		s.metrics.IncRation(r.Status)
	}
	return results, nil
}

// Explain allocates, then asks the generator to explain the allocation
func (s *rationingService) Explain(ctx context.Context, req domain.ExplainRequest) (*domain.RationExplanation, error) {
	allocation, err := s.Allocate(ctx, req.RationRequest)
	if err != nil {
		return nil, err
	}

	explanation := &domain.RationExplanation{
		ResourceStatus: ResourceStatuses(allocation),
		Allocation:     allocation,
	}

	language := domain.LanguageDisplayName(domain.ResolveLanguage(req.Language))
	prompt := BuildRationPrompt(req.Resources, req.People, req.Days, language)

	var text string
	if s.generator != nil {
		result := s.generator.Generate(ctx, domain.GenerationRequest{
			Prompt:  prompt,
			Model:   s.model,
			Timeout: s.timeout,
		})
		s.metrics.ObserveGeneration(result.Failure, result.Duration)
		if result.OK() {
			text = s.cleaner.Process(result.Text)
		} else {
			s.logger.Warn("ration explanation generation failed",
				"failure", result.Failure,
				"detail", result.Detail,
			)
		}
	}

	if text == "" {
		explanation.Lines = []string{domain.MessageExplanationFailed}
		return explanation, nil
	}

	explanation.Lines = strings.Split(text, "\n")
	explanation.Generated = true
	return explanation, nil
}
