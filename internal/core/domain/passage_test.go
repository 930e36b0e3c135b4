package domain

import (
	"errors"
	"testing"
)

func TestIndexArtifact_Validate(t *testing.T) {
	tests := []struct {
		name    string
		art     *IndexArtifact
		wantErr bool
	}{
		{"nil", nil, true},
		{"empty", &IndexArtifact{}, false},
		{"aligned", &IndexArtifact{
			Chunks:     []string{"a", "b"},
			Embeddings: [][]float32{{1, 0}, {0, 1}},
			Dimension:  2,
		}, false},
		{"dimension inferred", &IndexArtifact{
			Chunks:     []string{"a"},
			Embeddings: [][]float32{{1, 0, 0}},
		}, false},
		{"length mismatch", &IndexArtifact{
			Chunks:     []string{"a", "b"},
			Embeddings: [][]float32{{1, 0}},
		}, true},
		{"ragged", &IndexArtifact{
			Chunks:     []string{"a", "b"},
			Embeddings: [][]float32{{1, 0}, {0, 1, 2}},
		}, true},
		{"declared dimension differs", &IndexArtifact{
			Chunks:     []string{"a"},
			Embeddings: [][]float32{{1, 0}},
			Dimension:  3,
		}, true},
		{"zero dimension", &IndexArtifact{
			Chunks:     []string{"a"},
			Embeddings: [][]float32{{}},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.art.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrIntegrity) {
					t.Errorf("expected ErrIntegrity, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIndexArtifact_Len(t *testing.T) {
	var nilArt *IndexArtifact
	if nilArt.Len() != 0 {
		t.Errorf("expected 0 for nil artifact, got %d", nilArt.Len())
	}
	art := &IndexArtifact{Chunks: []string{"a", "b", "c"}}
	if art.Len() != 3 {
		t.Errorf("expected 3, got %d", art.Len())
	}
}
