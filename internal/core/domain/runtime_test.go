package domain

import (
	"sync"
	"testing"
)

func TestNewRuntimeConfig(t *testing.T) {
	config := NewRuntimeConfig("redis", "gob")

	if config == nil {
		t.Fatal("expected non-nil config")
	}
	if config.CacheBackend != "redis" {
		t.Errorf("expected redis, got %s", config.CacheBackend)
	}
	if config.IndexLoaded() {
		t.Error("expected index to be unloaded initially")
	}
	if config.Ready() {
		t.Error("expected not ready initially")
	}
	if config.GeneratorWarm() {
		t.Error("expected generator to be cold initially")
	}
}

func TestRuntimeConfig_IndexLoaded(t *testing.T) {
	config := NewRuntimeConfig("none", "postgres")

	config.SetIndexLoaded(42)
	if !config.IndexLoaded() {
		t.Error("expected index to be loaded")
	}
	if config.PassageCount() != 42 {
		t.Errorf("expected 42 passages, got %d", config.PassageCount())
	}
	if !config.Ready() {
		t.Error("expected ready after index load")
	}
}

func TestRuntimeConfig_Snapshot(t *testing.T) {
	config := NewRuntimeConfig("redis", "gob")
	config.GeneratorName = "ollama"
	config.SetIndexLoaded(3)
	config.SetGeneratorWarm(true)
	config.SetEmbeddingOnline(true)

	s := config.Snapshot()
	if !s.IndexLoaded || s.PassageCount != 3 || !s.GeneratorWarm || !s.EmbeddingOnline {
		t.Errorf("unexpected snapshot: %+v", s)
	}
	if s.Generator != "ollama" || s.IndexSource != "gob" {
		t.Errorf("unexpected static fields: %+v", s)
	}
}

func TestRuntimeConfig_Concurrent(t *testing.T) {
	config := NewRuntimeConfig("none", "gob")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			config.SetGeneratorWarm(n%2 == 0)
			config.SetIndexLoaded(n)
		}(i)
		go func() {
			defer wg.Done()
			_ = config.Snapshot()
			_ = config.Ready()
		}()
	}
	wg.Wait()

	if !config.IndexLoaded() {
		t.Error("expected index to be loaded")
	}
}
