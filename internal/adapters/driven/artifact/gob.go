// Package artifact reads and writes the prebuilt passage index file.
package artifact

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var _ driven.IndexArtifactSource = (*GobSource)(nil)

// indexFile is the on-disk layout. Chunks[i] is described by Embeddings[i].
type indexFile struct {
	Chunks     []string
	Embeddings [][]float32
	ModelInfo  string
	Dimension  int
}

// GobSource loads the index artifact from a gob file
type GobSource struct {
	path string
}

// NewGobSource creates a source reading path
func NewGobSource(path string) *GobSource {
	return &GobSource{path: path}
}

// Load decodes and validates the artifact. A file that cannot be decoded or
// breaks the alignment contract is an integrity fault.
func (s *GobSource) Load(ctx context.Context) (*domain.IndexArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open index artifact: %w", err)
	}
	defer file.Close()

	var f indexFile
	if err := gob.NewDecoder(file).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode index artifact %s: %v: %w", s.path, err, domain.ErrIntegrity)
	}

	a := &domain.IndexArtifact{
		Chunks:     f.Chunks,
		Embeddings: f.Embeddings,
		Model:      f.ModelInfo,
		Dimension:  f.Dimension,
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("index artifact %s: %w", s.path, err)
	}
	return a, nil
}

// Describe names the source for logs and status
func (s *GobSource) Describe() string {
	return "gob:" + s.path
}

// WriteGob writes a to path atomically via a temporary file
func WriteGob(path string, a *domain.IndexArtifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	f := indexFile{
		Chunks:     a.Chunks,
		Embeddings: a.Embeddings,
		ModelInfo:  a.Model,
		Dimension:  a.Dimension,
	}
	if err := gob.NewEncoder(file).Encode(f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
