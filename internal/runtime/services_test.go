package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven/mocks"
)

func TestServices_ProbeEmbedding(t *testing.T) {
	cfg := domain.NewRuntimeConfig("none", "gob")
	emb := mocks.NewMockEmbeddingService()
	s := NewServices(cfg, emb, nil, nil)

	require.NoError(t, s.ProbeEmbedding(context.Background()))
	assert.True(t, cfg.EmbeddingOnline())

	emb.SetFailNext(errors.New("connection refused"))
	assert.Error(t, s.ProbeEmbedding(context.Background()))
	assert.False(t, cfg.EmbeddingOnline())
}

func TestServices_ProbeWithoutEmbedding(t *testing.T) {
	cfg := domain.NewRuntimeConfig("none", "gob")
	s := NewServices(cfg, nil, nil, nil)

	err := s.ProbeEmbedding(context.Background())
	assert.True(t, errors.Is(err, domain.ErrServiceUnavailable))
	assert.False(t, cfg.EmbeddingOnline())
}

func TestServices_StartProbe(t *testing.T) {
	cfg := domain.NewRuntimeConfig("none", "gob")
	s := NewServices(cfg, mocks.NewMockEmbeddingService(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartProbe(ctx, 10*time.Millisecond)

	assert.Eventually(t, cfg.EmbeddingOnline, time.Second, 5*time.Millisecond)
}

func TestServices_CheckReady(t *testing.T) {
	cfg := domain.NewRuntimeConfig("redis", "gob")
	cache := mocks.NewMockAnswerCache()
	s := NewServices(cfg, nil, cache, nil)
	ctx := context.Background()

	err := s.CheckReady(ctx)
	assert.True(t, errors.Is(err, domain.ErrServiceUnavailable), "index not loaded yet")

	cfg.SetIndexLoaded(10)
	assert.NoError(t, s.CheckReady(ctx))

	cache.PingErr = errors.New("redis down")
	err = s.CheckReady(ctx)
	assert.True(t, errors.Is(err, domain.ErrServiceUnavailable))
}

func TestServices_CheckReadyWithoutCache(t *testing.T) {
	cfg := domain.NewRuntimeConfig("none", "gob")
	cfg.SetIndexLoaded(0)

	assert.NoError(t, NewServices(cfg, nil, nil, nil).CheckReady(context.Background()))
}

func TestServices_Close(t *testing.T) {
	cfg := domain.NewRuntimeConfig("none", "gob")
	s := NewServices(cfg, mocks.NewMockEmbeddingService(), nil, nil)
	require.NoError(t, s.ProbeEmbedding(context.Background()))

	require.NoError(t, s.Close())
	assert.Nil(t, s.EmbeddingService())
	assert.False(t, cfg.EmbeddingOnline())
	assert.NoError(t, s.Close())
}
