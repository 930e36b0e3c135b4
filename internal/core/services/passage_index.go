package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

// DefaultTopK is the number of passages retrieved per question
const DefaultTopK = 1

// PassageIndex answers exact L2 nearest-neighbour queries over the corpus.
// It owns its arrays read-only for the process lifetime and is safe for
// concurrent use.
type PassageIndex struct {
	chunks     []string
	embeddings [][]float32
	dimension  int
	model      string
	embedder   driven.EmbeddingService
}

// NewPassageIndex validates the artifact and wraps it.
// Violations of the length or dimension contract return domain.ErrIntegrity.
func NewPassageIndex(artifact *domain.IndexArtifact, embedder driven.EmbeddingService) (*PassageIndex, error) {
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, fmt.Errorf("passage index requires an embedding service: %w", domain.ErrInvalidInput)
	}

	dim := artifact.Dimension
	if dim == 0 && len(artifact.Embeddings) > 0 {
		dim = len(artifact.Embeddings[0])
	}

	return &PassageIndex{
		chunks:     artifact.Chunks,
		embeddings: artifact.Embeddings,
		dimension:  dim,
		model:      artifact.Model,
		embedder:   embedder,
	}, nil
}

// LoadPassageIndex loads the artifact from source and wraps it
func LoadPassageIndex(ctx context.Context, source driven.IndexArtifactSource, embedder driven.EmbeddingService) (*PassageIndex, error) {
	artifact, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load passage index from %s: %w", source.Describe(), err)
	}
	return NewPassageIndex(artifact, embedder)
}

// Len returns the number of indexed chunks
func (p *PassageIndex) Len() int {
	return len(p.chunks)
}

// Dimension returns the embedding dimension of the index
func (p *PassageIndex) Dimension() int {
	return p.dimension
}

// Model returns the embedding model recorded in the artifact
func (p *PassageIndex) Model() string {
	return p.model
}

type scored struct {
	position int
	distance float64
}

// Retrieve embeds text once and returns at most k chunks by ascending L2
// distance, ties broken by ascending position. An empty index returns an
// empty result without calling the embedding service.
func (p *PassageIndex) Retrieve(ctx context.Context, text string, k int) ([]domain.Chunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d: %w", k, domain.ErrInvalidInput)
	}
	if len(p.chunks) == 0 {
		return []domain.Chunk{}, nil
	}

	query, err := p.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(query) != p.dimension {
		return nil, fmt.Errorf("query embedding has dimension %d, index has %d: %w",
			len(query), p.dimension, domain.ErrIntegrity)
	}

	results := make([]scored, len(p.embeddings))
	for i, e := range p.embeddings {
		results[i] = scored{position: i, distance: squaredL2(query, e)}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].distance != results[j].distance {
			return results[i].distance < results[j].distance
		}
		return results[i].position < results[j].position
	})

	if k > len(results) {
		k = len(results)
	}
	chunks := make([]domain.Chunk, k)
	for i := 0; i < k; i++ {
		pos := results[i].position
		chunks[i] = domain.Chunk{Position: pos, Text: p.chunks[pos]}
	}
	return chunks, nil
}

// squaredL2 preserves the ordering of L2 distance without the square root
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
