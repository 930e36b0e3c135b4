package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

type embeddingData struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

func embeddingServer(t *testing.T, data []embeddingData) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/embeddings" {
			t.Errorf("expected /embeddings, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  "test",
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewOpenAIEmbedding_RequiresAPIKeyForPublicAPI(t *testing.T) {
	_, err := NewOpenAIEmbedding("", "text-embedding-3-small", "")
	assert.Error(t, err)
}

func TestNewOpenAIEmbedding_SelfHostedWithoutKey(t *testing.T) {
	svc, err := NewOpenAIEmbedding("", "", "http://localhost:8081/v1")
	require.NoError(t, err)
	assert.Equal(t, DefaultEmbeddingModel, svc.Model())
	assert.Equal(t, 384, svc.Dimensions())
	assert.NoError(t, svc.Close())
}

func TestOpenAIEmbedding_Dimensions(t *testing.T) {
	testCases := []struct {
		model      string
		dimensions int
	}{
		{"paraphrase-multilingual-MiniLM-L12-v2", 384},
		{"text-embedding-3-small", 1536},
		{"text-embedding-3-large", 3072},
		{"unknown-model", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.model, func(t *testing.T) {
			svc, err := NewOpenAIEmbedding("sk-test", tc.model, "")
			require.NoError(t, err)
			assert.Equal(t, tc.dimensions, svc.Dimensions())
		})
	}
}

func TestOpenAIEmbedding_Embed_EmptyInput(t *testing.T) {
	svc, err := NewOpenAIEmbedding("sk-test", "", "")
	require.NoError(t, err)

	result, err := svc.Embed(context.Background(), []string{})
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestOpenAIEmbedding_Embed_OrdersByIndex(t *testing.T) {
	server := embeddingServer(t, []embeddingData{
		{Object: "embedding", Index: 1, Embedding: []float32{0.4, 0.5, 0.6}},
		{Object: "embedding", Index: 0, Embedding: []float32{0.1, 0.2, 0.3}},
	})

	svc, err := NewOpenAIEmbedding("", "unknown-model", server.URL)
	require.NoError(t, err)

	result, err := svc.Embed(context.Background(), []string{"hello", "world"})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, result[0])
	assert.Equal(t, []float32{0.4, 0.5, 0.6}, result[1])
	assert.Equal(t, 3, svc.Dimensions(), "dimensions learned from first response")
}

func TestOpenAIEmbedding_EmbedQuery(t *testing.T) {
	server := embeddingServer(t, []embeddingData{
		{Object: "embedding", Index: 0, Embedding: []float32{1, 0}},
	})

	svc, err := NewOpenAIEmbedding("", "", server.URL)
	require.NoError(t, err)

	v, err := svc.EmbedQuery(context.Background(), "bleeding")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, v)
	assert.NoError(t, svc.HealthCheck(context.Background()))
}

func TestOpenAIEmbedding_MissingVector(t *testing.T) {
	server := embeddingServer(t, []embeddingData{
		{Object: "embedding", Index: 0, Embedding: []float32{1, 0}},
	})

	svc, err := NewOpenAIEmbedding("", "", server.URL)
	require.NoError(t, err)

	_, err = svc.Embed(context.Background(), []string{"a", "b"})
	assert.True(t, errors.Is(err, domain.ErrServiceUnavailable))
}

func TestOpenAIEmbedding_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"model not loaded","type":"server_error"}}`))
	}))
	defer server.Close()

	svc, err := NewOpenAIEmbedding("", "", server.URL)
	require.NoError(t, err)

	_, err = svc.EmbedQuery(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrServiceUnavailable))
	assert.Error(t, svc.HealthCheck(context.Background()))
}
