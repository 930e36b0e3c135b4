// Package config loads service configuration from defaults, environment
// variables and an optional file named by CONFIG_FILE.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Index sources
const (
	IndexSourceGob      = "gob"
	IndexSourcePostgres = "postgres"
)

// Config is the full service configuration. Environment variables use the
// upper-cased key with dots replaced by underscores (server.port -> SERVER_PORT).
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Index       IndexConfig       `mapstructure:"index"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Embedding   EmbeddingConfig   `mapstructure:"embedding"`
	Translation TranslationConfig `mapstructure:"translation"`
	Generator   GeneratorConfig   `mapstructure:"generator"`
	Retrieval   RetrievalConfig   `mapstructure:"retrieval"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Rules       RulesConfig       `mapstructure:"rules"`
	Worker      WorkerConfig      `mapstructure:"worker"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// IndexConfig selects where the passage index comes from
type IndexConfig struct {
	Source string `mapstructure:"source" validate:"oneof=gob postgres"`
	Path   string `mapstructure:"path"`

	// Import copies the gob file at Path into Postgres before loading
	Import bool `mapstructure:"import"`
}

// DatabaseConfig configures Postgres
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// EmbeddingConfig configures the query embedding endpoint
type EmbeddingConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model" validate:"required"`
}

// TranslationConfig configures the translation endpoint. An empty BaseURL
// reuses the embedding endpoint.
type TranslationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey  string `mapstructure:"api_key"`
}

// GeneratorConfig configures the model process
type GeneratorConfig struct {
	Command       string        `mapstructure:"command" validate:"required"`
	Args          []string      `mapstructure:"args"`
	Model         string        `mapstructure:"model" validate:"required"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Warmup        bool          `mapstructure:"warmup"`
	WarmupTimeout time.Duration `mapstructure:"warmup_timeout" validate:"gt=0"`
}

// RetrievalConfig tunes the context handed to the model
type RetrievalConfig struct {
	TopK         int `mapstructure:"top_k" validate:"min=1"`
	ContextChars int `mapstructure:"context_chars" validate:"min=1"`
}

// CacheConfig configures Redis. An empty URL disables the answer cache and
// the warmup lock.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// AuthConfig configures the login stub
type AuthConfig struct {
	Required    bool   `mapstructure:"required"`
	JWTSecret   string `mapstructure:"jwt_secret" validate:"required,min=16"`
	OTP         string `mapstructure:"otp" validate:"required,numeric"`
	DisplayName string `mapstructure:"display_name" validate:"required"`
}

// RulesConfig points at a directory of rule table overrides
type RulesConfig struct {
	Dir string `mapstructure:"dir"`
}

// WorkerConfig sizes the pipeline worker pool
type WorkerConfig struct {
	Count int `mapstructure:"count" validate:"min=1,max=64"`
}

// LogConfig configures slog
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Address returns the listen address
func (c ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CacheEnabled reports whether Redis is configured
func (c *Config) CacheEnabled() bool {
	return c.Cache.RedisURL != ""
}

// setDefaults registers every key so AutomaticEnv can see it
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.cors_origins", []string{"http://localhost:8080"})
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 660*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("index.source", IndexSourceGob)
	v.SetDefault("index.path", "data/first_aid/index.gob")
	v.SetDefault("index.import", false)

	v.SetDefault("database.url", "")

	v.SetDefault("embedding.base_url", "http://localhost:8081/v1")
	v.SetDefault("embedding.api_key", "")
	v.SetDefault("embedding.model", "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2")

	v.SetDefault("translation.enabled", true)
	v.SetDefault("translation.base_url", "")
	v.SetDefault("translation.api_key", "")

	v.SetDefault("generator.command", "ollama")
	v.SetDefault("generator.args", []string{"run"})
	v.SetDefault("generator.model", "gpt-oss:20b")
	v.SetDefault("generator.timeout", 600*time.Second)
	v.SetDefault("generator.warmup", true)
	v.SetDefault("generator.warmup_timeout", 120*time.Second)

	v.SetDefault("retrieval.top_k", 1)
	v.SetDefault("retrieval.context_chars", 600)

	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault("auth.required", false)
	v.SetDefault("auth.jwt_secret", "development-secret-change-in-production")
	v.SetDefault("auth.otp", "123456")
	v.SetDefault("auth.display_name", "Demo User")

	v.SetDefault("rules.dir", "")
	v.SetDefault("worker.count", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from defaults, the environment and, when
// CONFIG_FILE is set, that file. Environment wins over the file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The generator model keeps its historical variable name
	_ = v.BindEnv("generator.model", "GENERATOR_MODEL", "OLLAMA_MODEL")

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		cfg := sl.Current().Interface().(Config)
		if cfg.Index.Source == IndexSourcePostgres && cfg.Database.URL == "" {
			sl.ReportError(cfg.Database.URL, "Database.URL", "URL", "required_for_postgres", "")
		}
		if (cfg.Index.Source == IndexSourceGob || cfg.Index.Import) && strings.TrimSpace(cfg.Index.Path) == "" {
			sl.ReportError(cfg.Index.Path, "Index.Path", "Path", "required_for_gob", "")
		}
		if cfg.Index.Import && cfg.Index.Source != IndexSourcePostgres {
			sl.ReportError(cfg.Index.Import, "Index.Import", "Import", "import_needs_postgres", "")
		}
	}, Config{})
	return v
}

// Validate checks field constraints and cross-field rules
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Logger builds the slog logger described by c
func (c LogConfig) Logger() *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
