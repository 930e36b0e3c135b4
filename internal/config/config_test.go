package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks variables a developer shell might carry into the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "SERVER_PORT", "INDEX_SOURCE", "INDEX_PATH", "INDEX_IMPORT",
		"DATABASE_URL", "CACHE_REDIS_URL", "GENERATOR_MODEL", "OLLAMA_MODEL",
		"AUTH_REQUIRED", "LOG_LEVEL", "SERVER_CORS_ORIGINS", "GENERATOR_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Server.Address())
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.Server.CORSOrigins)
	assert.Equal(t, IndexSourceGob, cfg.Index.Source)
	assert.Equal(t, "ollama", cfg.Generator.Command)
	assert.Equal(t, []string{"run"}, cfg.Generator.Args)
	assert.Equal(t, "gpt-oss:20b", cfg.Generator.Model)
	assert.Equal(t, 600*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, 120*time.Second, cfg.Generator.WarmupTimeout)
	assert.Equal(t, 1, cfg.Retrieval.TopK)
	assert.Equal(t, 600, cfg.Retrieval.ContextChars)
	assert.Equal(t, "123456", cfg.Auth.OTP)
	assert.Equal(t, "Demo User", cfg.Auth.DisplayName)
	assert.False(t, cfg.Auth.Required)
	assert.Equal(t, 4, cfg.Worker.Count)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("CACHE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("GENERATOR_TIMEOUT", "90s")
	t.Setenv("SERVER_CORS_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Auth.Required)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 90*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_OllamaModelVariable(t *testing.T) {
	clearEnv(t)
	t.Setenv("OLLAMA_MODEL", "llama3:8b")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "llama3:8b", cfg.Generator.Model)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "firstresponse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
index:
  source: postgres
database:
  url: postgres://fr:fr@localhost:5432/fr?sslmode=disable
worker:
  count: 8
`), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, IndexSourcePostgres, cfg.Index.Source)
	assert.Equal(t, 8, cfg.Worker.Count)
	assert.Equal(t, 7000, cfg.Server.Port, "environment wins over the file")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"INDEX_SOURCE": "postgres"}},
		{"unknown source", map[string]string{"INDEX_SOURCE": "faiss"}},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}},
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"import into gob", map[string]string{"INDEX_IMPORT": "true"}},
		{"empty index path", map[string]string{"INDEX_PATH": " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLogConfig_Logger(t *testing.T) {
	assert.NotNil(t, LogConfig{Level: "debug", Format: "json"}.Logger())
	assert.NotNil(t, LogConfig{Level: "info", Format: "text"}.Logger())
}
