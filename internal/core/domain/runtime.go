package domain

import "sync"

// RuntimeConfig tracks which services are available at runtime.
// Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	CacheBackend  string // "redis" or "none"
	IndexSource   string // "gob" or "postgres"
	GeneratorName string

	indexLoaded     bool
	passageCount    int
	generatorWarm   bool
	embeddingOnline bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(cacheBackend, indexSource string) *RuntimeConfig {
	return &RuntimeConfig{
		CacheBackend: cacheBackend,
		IndexSource:  indexSource,
	}
}

// SetIndexLoaded records the passage index as loaded with count passages
func (c *RuntimeConfig) SetIndexLoaded(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexLoaded = true
	c.passageCount = count
}

// IndexLoaded returns whether the passage index is loaded
func (c *RuntimeConfig) IndexLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexLoaded
}

// PassageCount returns the number of loaded passages
func (c *RuntimeConfig) PassageCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.passageCount
}

// SetGeneratorWarm updates the warmup flag
func (c *RuntimeConfig) SetGeneratorWarm(warm bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generatorWarm = warm
}

// GeneratorWarm returns whether the warmup generation succeeded
func (c *RuntimeConfig) GeneratorWarm() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generatorWarm
}

// SetEmbeddingOnline updates the embedding service flag
func (c *RuntimeConfig) SetEmbeddingOnline(online bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingOnline = online
}

// EmbeddingOnline returns whether the embedding service answered its last probe
func (c *RuntimeConfig) EmbeddingOnline() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingOnline
}

// Ready returns true once the service can answer questions
func (c *RuntimeConfig) Ready() bool {
	return c.IndexLoaded()
}

// Snapshot returns a point-in-time copy of the flags
func (c *RuntimeConfig) Snapshot() RuntimeStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return RuntimeStatus{
		CacheBackend:    c.CacheBackend,
		IndexSource:     c.IndexSource,
		Generator:       c.GeneratorName,
		IndexLoaded:     c.indexLoaded,
		PassageCount:    c.passageCount,
		GeneratorWarm:   c.generatorWarm,
		EmbeddingOnline: c.embeddingOnline,
	}
}

// RuntimeStatus is a serialisable view of RuntimeConfig
type RuntimeStatus struct {
	CacheBackend    string `json:"cache_backend"`
	IndexSource     string `json:"index_source"`
	Generator       string `json:"generator"`
	IndexLoaded     bool   `json:"index_loaded"`
	PassageCount    int    `json:"passage_count"`
	GeneratorWarm   bool   `json:"generator_warm"`
	EmbeddingOnline bool   `json:"embedding_online"`
}
