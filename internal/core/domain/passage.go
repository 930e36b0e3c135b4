package domain

import "fmt"

// Chunk is an immutable slice of manual text, the unit of retrieval.
// Position is its index in the corpus and doubles as the stable identifier.
type Chunk struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// IndexArtifact is the prebuilt corpus index consumed at startup.
// Chunks[i] is described by Embeddings[i].
type IndexArtifact struct {
	Chunks     []string    // Chunk texts in corpus order
	Embeddings [][]float32 // Embeddings in the same order as Chunks
	Model      string      // Embedding model that produced the vectors
	Dimension  int         // Embedding vector dimension
}

// Validate checks the length-matched, constant-dimension contract of the
// artifact. Violations wrap ErrIntegrity.
func (a *IndexArtifact) Validate() error {
	if a == nil {
		return fmt.Errorf("nil artifact: %w", ErrIntegrity)
	}
	if len(a.Chunks) != len(a.Embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d != %d: %w",
			len(a.Chunks), len(a.Embeddings), ErrIntegrity)
	}
	if len(a.Embeddings) == 0 {
		return nil
	}

	dim := a.Dimension
	if dim == 0 {
		dim = len(a.Embeddings[0])
	}
	if dim == 0 {
		return fmt.Errorf("zero embedding dimension: %w", ErrIntegrity)
	}
	for i, e := range a.Embeddings {
		if len(e) != dim {
			return fmt.Errorf("embedding %d has dimension %d, want %d: %w", i, len(e), dim, ErrIntegrity)
		}
	}
	return nil
}

// Len returns the number of chunks in the artifact
func (a *IndexArtifact) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Chunks)
}
