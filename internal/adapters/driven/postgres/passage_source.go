package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.IndexArtifactSource = (*PassageSource)(nil)

// PassageSource loads the passage index from the passages table
type PassageSource struct {
	db *DB
}

// NewPassageSource creates a new PassageSource
func NewPassageSource(db *DB) *PassageSource {
	return &PassageSource{db: db}
}

// Load reads every passage in position order. Positions must run 0..n-1
// without gaps; anything else is an integrity fault.
func (s *PassageSource) Load(ctx context.Context) (*domain.IndexArtifact, error) {
	a := &domain.IndexArtifact{}

	err := s.db.QueryRowContext(ctx, `SELECT model, dimension FROM passage_meta WHERE id`).
		Scan(&a.Model, &a.Dimension)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load passage meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT position, content, embedding
		FROM passages
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("load passages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			position  int
			content   string
			embedding pq.Float64Array
		)
		if err := rows.Scan(&position, &content, &embedding); err != nil {
			return nil, fmt.Errorf("scan passage: %w", err)
		}
		if position != len(a.Chunks) {
			return nil, fmt.Errorf("passage position %d, want %d: %w", position, len(a.Chunks), domain.ErrIntegrity)
		}

		v := make([]float32, len(embedding))
		for i, x := range embedding {
			v[i] = float32(x)
		}
		a.Chunks = append(a.Chunks, content)
		a.Embeddings = append(a.Embeddings, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passages: %w", err)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Describe names the source for logs and status
func (s *PassageSource) Describe() string {
	return "postgres:passages"
}

// Replace swaps the stored index for a in one transaction
func (s *PassageSource) Replace(ctx context.Context, a *domain.IndexArtifact) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dim := a.Dimension
	if dim == 0 && len(a.Embeddings) > 0 {
		dim = len(a.Embeddings[0])
	}

	return s.db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM passages`); err != nil {
			return fmt.Errorf("clear passages: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO passages (position, content, embedding) VALUES ($1, $2, $3)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, content := range a.Chunks {
			v := make(pq.Float64Array, len(a.Embeddings[i]))
			for j, x := range a.Embeddings[i] {
				v[j] = float64(x)
			}
			if _, err := stmt.ExecContext(ctx, i, content, v); err != nil {
				return fmt.Errorf("insert passage %d: %w", i, err)
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO passage_meta (id, model, dimension) VALUES (TRUE, $1, $2)
			ON CONFLICT (id) DO UPDATE SET model = EXCLUDED.model, dimension = EXCLUDED.dimension
		`, a.Model, dim)
		if err != nil {
			return fmt.Errorf("save passage meta: %w", err)
		}
		return nil
	})
}
