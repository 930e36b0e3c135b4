// Package runtime holds the long-lived service handles and their health flags.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

// DefaultProbeInterval is how often the embedding service is re-checked
const DefaultProbeInterval = 30 * time.Second

// Services holds references to the shared backends and keeps the
// RuntimeConfig flags in step with their health.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	config *domain.RuntimeConfig
	logger *slog.Logger

	embedding driven.EmbeddingService
	cache     driven.AnswerCache // nil when caching is off
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig, embedding driven.EmbeddingService, cache driven.AnswerCache, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	return &Services{
		config:    config,
		logger:    logger,
		embedding: embedding,
		cache:     cache,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// EmbeddingService returns the embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embedding
}

// ProbeEmbedding health-checks the embedding service and records the result
func (s *Services) ProbeEmbedding(ctx context.Context) error {
	svc := s.EmbeddingService()
	if svc == nil {
		s.config.SetEmbeddingOnline(false)
		return fmt.Errorf("embedding service not configured: %w", domain.ErrServiceUnavailable)
	}

	err := svc.HealthCheck(ctx)
	s.config.SetEmbeddingOnline(err == nil)
	return err
}

// StartProbe re-checks the embedding service every interval until ctx ends.
// Only transitions are logged.
func (s *Services) StartProbe(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		online := s.config.EmbeddingOnline()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			err := s.ProbeEmbedding(ctx)
			if now := err == nil; now != online {
				online = now
				if online {
					s.logger.Info("embedding service back online")
				} else {
					s.logger.Warn("embedding service offline", "error", err)
				}
			}
		}
	}()
}

// CheckReady reports whether questions can be served: the index must be
// loaded and a configured cache must answer a ping.
func (s *Services) CheckReady(ctx context.Context) error {
	if !s.config.Ready() {
		return fmt.Errorf("passage index not loaded: %w", domain.ErrServiceUnavailable)
	}

	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()
	if cache != nil {
		if err := cache.Ping(ctx); err != nil {
			return fmt.Errorf("answer cache unreachable: %v: %w", err, domain.ErrServiceUnavailable)
		}
	}
	return nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.embedding != nil {
		err = s.embedding.Close()
		s.embedding = nil
	}
	s.config.SetEmbeddingOnline(false)
	return err
}
