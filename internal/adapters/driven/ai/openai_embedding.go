package ai

import (
	"context"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

// Ensure OpenAIEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*OpenAIEmbedding)(nil)

const (
	// DefaultBaseURL is the public OpenAI API
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultEmbeddingModel is the multilingual sentence-transformers model
	// the manuals corpus was embedded with, served behind an
	// OpenAI-compatible endpoint.
	DefaultEmbeddingModel = "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2"
)

// Known model dimensions. Unknown models learn theirs from the first response.
var embeddingModelDimensions = map[string]int{
	"sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2": 384,
	"paraphrase-multilingual-MiniLM-L12-v2":                       384,
	"text-embedding-3-small":                                      1536,
	"text-embedding-3-large":                                      3072,
	"text-embedding-ada-002":                                      1536,
}

// OpenAIEmbedding implements EmbeddingService against any OpenAI-compatible
// embeddings endpoint.
type OpenAIEmbedding struct {
	client  *openai.Client
	model   string
	baseURL string

	mu         sync.RWMutex
	dimensions int
}

// NewOpenAIEmbedding creates a new embedding service. The API key may be empty
// for self-hosted endpoints but is required for the public API.
func NewOpenAIEmbedding(apiKey, model, baseURL string) (*OpenAIEmbedding, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" && baseURL == DefaultBaseURL {
		return nil, fmt.Errorf("API key is required for %s", DefaultBaseURL)
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &OpenAIEmbedding{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		baseURL:    baseURL,
		dimensions: embeddingModelDimensions[model],
	}, nil
}

// Embed generates embeddings for multiple texts, in input order
func (e *OpenAIEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          texts,
		Model:          openai.EmbeddingModel(e.model),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: embedding request failed: %v", domain.ErrServiceUnavailable, err)
	}

	embeddings := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(embeddings) {
			continue
		}
		v := make([]float32, len(d.Embedding))
		copy(v, d.Embedding)
		embeddings[d.Index] = v
	}
	for i, v := range embeddings {
		if v == nil {
			return nil, fmt.Errorf("%w: no embedding returned for input %d", domain.ErrServiceUnavailable, i)
		}
	}

	e.learnDimensions(len(embeddings[0]))
	return embeddings, nil
}

// EmbedQuery generates an embedding for a single query
func (e *OpenAIEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	embeddings, err := e.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// Dimensions returns the embedding dimension size
func (e *OpenAIEmbedding) Dimensions() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dimensions
}

// Model returns the model name being used
func (e *OpenAIEmbedding) Model() string {
	return e.model
}

// HealthCheck verifies the embedding service is available
func (e *OpenAIEmbedding) HealthCheck(ctx context.Context) error {
	_, err := e.EmbedQuery(ctx, "health check")
	return err
}

// Close releases resources held by the embedding service
func (e *OpenAIEmbedding) Close() error {
	return nil
}

func (e *OpenAIEmbedding) learnDimensions(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dimensions == 0 {
		e.dimensions = n
	}
}
