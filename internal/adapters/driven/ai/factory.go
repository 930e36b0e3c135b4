package ai

import (
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var _ driven.AIServiceFactory = (*Factory)(nil)

// ClientConfig selects the OpenAI-compatible servers for embeddings and
// translation. Translation falls back to the embedding server when unset.
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	EmbeddingModel string

	TranslationBaseURL string
	TranslationAPIKey  string
}

// Factory creates AI services based on configuration
type Factory struct {
	cfg ClientConfig
}

// NewFactory creates a new AI service factory
func NewFactory(cfg ClientConfig) *Factory {
	return &Factory{cfg: cfg}
}

// CreateEmbeddingService creates the query embedding client
func (f *Factory) CreateEmbeddingService() (driven.EmbeddingService, error) {
	return NewOpenAIEmbedding(f.cfg.APIKey, f.cfg.EmbeddingModel, f.cfg.BaseURL)
}

// CreateTranslationLoader creates the translation model loader
func (f *Factory) CreateTranslationLoader() (driven.TranslationModelLoader, error) {
	baseURL, apiKey := f.cfg.TranslationBaseURL, f.cfg.TranslationAPIKey
	if baseURL == "" {
		baseURL = f.cfg.BaseURL
	}
	if apiKey == "" {
		apiKey = f.cfg.APIKey
	}
	return NewTranslationLoader(apiKey, baseURL)
}
