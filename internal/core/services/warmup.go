package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

// WarmupLockName is the distributed lock guarding the shared model host warmup
const WarmupLockName = "firstresponse:warmup"

// WarmupPrompt is the throwaway prompt that loads the model
const WarmupPrompt = "Hello"

// WarmupConfig configures the startup warmup
type WarmupConfig struct {
	Generator driven.Generator
	Model     string
	Timeout   time.Duration // 0 uses DefaultWarmupTimeout

	// Optional: only the instance holding the lock warms the model host
	Lock    driven.DistributedLock
	LockTTL time.Duration

	Runtime *domain.RuntimeConfig
	Logger  *slog.Logger
}

// Warmup runs one best-effort generation to pre-load the model.
// Failures are logged and never returned.
func Warmup(ctx context.Context, cfg WarmupConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultWarmupTimeout
	}

	if cfg.Lock != nil {
		ttl := cfg.LockTTL
		if ttl <= 0 {
			ttl = timeout
		}
		acquired, err := cfg.Lock.Acquire(ctx, WarmupLockName, ttl)
		if err != nil {
			logger.Warn("warmup lock unavailable, warming anyway", "error", err)
		} else if !acquired {
			logger.Info("warmup skipped, another instance holds the lock")
			return
		} else {
			defer func() {
				_ = cfg.Lock.Release(context.Background(), WarmupLockName)
			}()
		}
	}

	logger.Info("warming up model", "model", cfg.Model, "generator", cfg.Generator.Name())
	result := cfg.Generator.Generate(ctx, domain.GenerationRequest{
		Prompt:  WarmupPrompt,
		Model:   cfg.Model,
		Timeout: timeout,
	})
	if !result.OK() {
		logger.Warn("model warmup failed",
			"failure", result.Failure,
			"detail", result.Detail,
			"duration", result.Duration,
		)
		return
	}

	if cfg.Runtime != nil {
		cfg.Runtime.SetGeneratorWarm(true)
	}
	logger.Info("model warmed up", "duration", result.Duration)
}

// StartWarmup runs Warmup in a goroutine. Startup never waits for it; the
// returned channel closes when the warmup finishes.
func StartWarmup(ctx context.Context, cfg WarmupConfig) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Warmup(ctx, cfg)
	}()
	return done
}
