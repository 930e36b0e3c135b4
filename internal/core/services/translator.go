package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

// DefaultTranslationModels maps a destination language to its model.
// English is the working language and has no model.
var DefaultTranslationModels = map[string]string{
	"hi": "Helsinki-NLP/opus-mt-en-hi",
	"ar": "Helsinki-NLP/opus-mt-en-ar",
	"es": "Helsinki-NLP/opus-mt-en-es",
}

// ModelCache loads translation models on first use and keeps them for the
// process lifetime. There is no eviction. Concurrent first loads of the same
// model are collapsed into one.
type ModelCache struct {
	mu     sync.RWMutex
	models map[string]driven.TranslationModel
	group  singleflight.Group
	loader driven.TranslationModelLoader
}

// NewModelCache creates an empty cache backed by loader
func NewModelCache(loader driven.TranslationModelLoader) *ModelCache {
	return &ModelCache{
		models: make(map[string]driven.TranslationModel),
		loader: loader,
	}
}

// Get returns the cached model or loads it
func (c *ModelCache) Get(ctx context.Context, name string) (driven.TranslationModel, error) {
	c.mu.RLock()
	m, ok := c.models[name]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		c.mu.RLock()
		m, ok := c.models[name]
		c.mu.RUnlock()
		if ok {
			return m, nil
		}

		loaded, err := c.loader.Load(ctx, name)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.models[name] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(driven.TranslationModel), nil
}

// Len returns the number of loaded models
func (c *ModelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// TranslatorConfig configures a Translator
type TranslatorConfig struct {
	Models  map[string]string // destination language -> model; nil uses DefaultTranslationModels
	Logger  *slog.Logger
	Metrics driven.Metrics
}

// Translator translates between the working language and a target language.
// Directions outside the model table are an identity, not an error.
type Translator struct {
	cache   *ModelCache
	models  map[string]string
	logger  *slog.Logger
	metrics driven.Metrics
}

// NewTranslator creates a Translator with a fresh ModelCache
func NewTranslator(loader driven.TranslationModelLoader, cfg TranslatorConfig) *Translator {
	models := cfg.Models
	if models == nil {
		models = DefaultTranslationModels
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{
		cache:   NewModelCache(loader),
		models:  models,
		logger:  logger,
		metrics: metricsOrNop(cfg.Metrics),
	}
}

// Supported reports whether dest has a configured model
func (t *Translator) Supported(dest string) bool {
	return t.models[dest] != ""
}

// Cache exposes the model cache for readiness reporting
func (t *Translator) Cache() *ModelCache {
	return t.cache
}

// Translate returns text unchanged when src == dest or dest has no model.
// Otherwise the model for dest is loaded (once) and applied. Errors wrap
// domain.ErrTranslationFailed.
func (t *Translator) Translate(ctx context.Context, text, src, dest string) (string, error) {
	if src == dest {
		return text, nil
	}
	name := t.models[dest]
	if name == "" {
		return text, nil
	}

	model, err := t.cache.Get(ctx, name)
	if err != nil {
		t.metrics.IncTranslation(dest, false)
		return "", fmt.Errorf("%w: load %s: %v", domain.ErrTranslationFailed, name, err)
	}

	out, err := model.Translate(ctx, text)
	if err != nil {
		t.metrics.IncTranslation(dest, false)
		return "", fmt.Errorf("%w: %s: %v", domain.ErrTranslationFailed, name, err)
	}

	t.metrics.IncTranslation(dest, true)
	t.logger.Debug("translated text", "src", src, "dest", dest, "model", name)
	return out, nil
}
