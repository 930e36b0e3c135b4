package main

// @title           FirstResponse Core API
// @version         1.0
// @description     Offline-first emergency assistant: first-aid answers grounded in manuals and resource rationing.

// @host      localhost:8000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/firstresponse-ai/firstresponse-core/internal/adapters/driven/ai"
	"github.com/firstresponse-ai/firstresponse-core/internal/adapters/driven/artifact"
	"github.com/firstresponse-ai/firstresponse-core/internal/adapters/driven/auth"
	"github.com/firstresponse-ai/firstresponse-core/internal/adapters/driven/generator"
	"github.com/firstresponse-ai/firstresponse-core/internal/adapters/driven/metrics"
	"github.com/firstresponse-ai/firstresponse-core/internal/adapters/driven/postgres"
	redisadapter "github.com/firstresponse-ai/firstresponse-core/internal/adapters/driven/redis"
	"github.com/firstresponse-ai/firstresponse-core/internal/adapters/driving/http"
	"github.com/firstresponse-ai/firstresponse-core/internal/config"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/services"
	"github.com/firstresponse-ai/firstresponse-core/internal/postprocessors"
	"github.com/firstresponse-ai/firstresponse-core/internal/rules"
	"github.com/firstresponse-ai/firstresponse-core/internal/runtime"
	"github.com/firstresponse-ai/firstresponse-core/internal/worker"
)

var version = "dev"

func main() {
	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.Log.Logger()
	slog.SetDefault(logger)
	log.Printf("firstresponse-core %s starting", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatalf("%v", err)
	}
	log.Println("Shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// ===== Rule tables =====
	ruleSet, err := rules.Load(cfg.Rules.Dir)
	if err != nil {
		return fmt.Errorf("failed to load rule tables: %w", err)
	}
	logger.Info("rule tables loaded", "sources", ruleSet.Sources)

	// ===== PostgreSQL (optional) =====
	var db *postgres.DB
	if cfg.Database.URL != "" {
		log.Println("Connecting to PostgreSQL...")
		db, err = postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.InitSchema(ctx); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		log.Println("PostgreSQL connected and schema initialized")
	}

	// ===== Redis (optional) =====
	var (
		cache driven.AnswerCache
		lock  driven.DistributedLock
	)
	cacheBackend := "none"
	if cfg.CacheEnabled() {
		log.Println("Connecting to Redis...")
		redisClient, err := redisadapter.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()

		cache = redisadapter.NewAnswerCache(redisClient)
		lock = redisadapter.NewLock(redisClient)
		cacheBackend = "redis"
		log.Println("Redis connected, answer cache and warmup lock enabled")
	} else if db != nil {
		lock = postgres.NewAdvisoryLock(db)
		log.Println("Using PostgreSQL advisory lock for warmup")
	}

	// ===== Passage index =====
	source, err := indexSource(ctx, cfg, db)
	if err != nil {
		return err
	}
	aiFactory := ai.NewFactory(ai.ClientConfig{
		BaseURL:            cfg.Embedding.BaseURL,
		APIKey:             cfg.Embedding.APIKey,
		EmbeddingModel:     cfg.Embedding.Model,
		TranslationBaseURL: cfg.Translation.BaseURL,
		TranslationAPIKey:  cfg.Translation.APIKey,
	})
	embedder, err := aiFactory.CreateEmbeddingService()
	if err != nil {
		return fmt.Errorf("failed to create embedding client: %w", err)
	}

	passages, err := services.LoadPassageIndex(ctx, source, embedder)
	if err != nil {
		return fmt.Errorf("failed to load passage index: %w", err)
	}

	runtimeConfig := domain.NewRuntimeConfig(cacheBackend, cfg.Index.Source)
	runtimeConfig.SetIndexLoaded(passages.Len())
	logger.Info("passage index loaded",
		"source", source.Describe(),
		"passages", passages.Len(),
		"dimension", passages.Dimension(),
		"model", passages.Model())

	// ===== Model services =====
	promMetrics := metrics.NewPrometheus()

	var translator *services.Translator
	if cfg.Translation.Enabled {
		loader, err := aiFactory.CreateTranslationLoader()
		if err != nil {
			return fmt.Errorf("failed to create translation client: %w", err)
		}
		translator = services.NewTranslator(loader, services.TranslatorConfig{
			Logger:  logger,
			Metrics: promMetrics,
		})
	}

	gen := generator.NewProcess(generator.ProcessConfig{
		Command: cfg.Generator.Command,
		Args:    cfg.Generator.Args,
		Logger:  logger,
	})
	runtimeConfig.GeneratorName = gen.Name()

	runtimeServices := runtime.NewServices(runtimeConfig, embedder, cache, logger)
	defer runtimeServices.Close()
	runtimeServices.StartProbe(ctx, runtime.DefaultProbeInterval)

	// ===== Core services =====
	firstAidService := services.NewFirstAidService(services.FirstAidConfig{
		Safety:       services.NewSafetyGate(ruleSet.Safety),
		Index:        passages,
		Translator:   translator,
		Generator:    gen,
		Sanitizer:    postprocessors.NewSanitizer(ruleSet.Reasoning),
		Checklist:    services.NewChecklistExtractor(ruleSet.Checklist),
		Cache:        cache,
		CacheTTL:     cfg.Cache.TTL,
		Model:        cfg.Generator.Model,
		Timeout:      cfg.Generator.Timeout,
		TopK:         cfg.Retrieval.TopK,
		ContextChars: cfg.Retrieval.ContextChars,
		Logger:       logger,
		Metrics:      promMetrics,
	})

	rationingService := services.NewRationingService(services.RationingConfig{
		Generator: gen,
		Cleaner:   postprocessors.NewExplanationCleaner(ruleSet.Reasoning),
		Model:     cfg.Generator.Model,
		Timeout:   cfg.Generator.Timeout,
		Logger:    logger,
		Metrics:   promMetrics,
	})

	authAdapter := auth.NewAdapter(cfg.Auth.JWTSecret)
	otpHash, err := authAdapter.HashSecret(cfg.Auth.OTP)
	if err != nil {
		return fmt.Errorf("failed to hash otp: %w", err)
	}
	authService := services.NewAuthService(authAdapter, services.AuthConfig{
		OTPHash:     otpHash,
		DisplayName: cfg.Auth.DisplayName,
	})

	// ===== Warmup =====
	if cfg.Generator.Warmup {
		services.StartWarmup(ctx, services.WarmupConfig{
			Generator: gen,
			Model:     cfg.Generator.Model,
			Timeout:   cfg.Generator.WarmupTimeout,
			Lock:      lock,
			Runtime:   runtimeConfig,
			Logger:    logger,
		})
	}

	// ===== Worker pool =====
	pool := worker.NewPool(worker.PoolConfig{
		Workers: cfg.Worker.Count,
		Logger:  logger,
	})
	if err := pool.Start(ctx); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}
	defer pool.Stop()

	log.Printf("Runtime config: cache=%s, index=%s, passages=%d, generator=%s, translation=%t, workers=%d",
		runtimeConfig.CacheBackend,
		runtimeConfig.IndexSource,
		runtimeConfig.PassageCount(),
		runtimeConfig.GeneratorName,
		translator != nil,
		pool.Workers())

	// ===== HTTP =====
	server := http.NewServer(http.Config{
		Host:            "0.0.0.0",
		Port:            cfg.Server.Port,
		Version:         version,
		CORSOrigins:     cfg.Server.CORSOrigins,
		AuthRequired:    cfg.Auth.Required,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Logger:          logger,
	}, http.Dependencies{
		FirstAid:  firstAidService,
		Rationing: rationingService,
		Auth:      authService,
		Readiness: runtimeServices,
		Pool:      pool,
		Metrics:   promMetrics.Handler(),
	})

	return server.Start(ctx)
}

// indexSource picks the artifact source, importing the gob file into
// Postgres first when asked to
func indexSource(ctx context.Context, cfg *config.Config, db *postgres.DB) (driven.IndexArtifactSource, error) {
	gob := artifact.NewGobSource(cfg.Index.Path)
	if cfg.Index.Source == config.IndexSourceGob {
		return gob, nil
	}

	pg := postgres.NewPassageSource(db)
	if cfg.Index.Import {
		a, err := gob.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s for import: %w", gob.Describe(), err)
		}
		if err := pg.Replace(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to import passages: %w", err)
		}
		log.Printf("Imported %d passages from %s", len(a.Chunks), gob.Describe())
	}
	return pg, nil
}
