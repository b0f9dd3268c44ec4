package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dreamreel/internal/adapter/repo"
	"dreamreel/internal/domain"
	"dreamreel/internal/http/handlers"
	"dreamreel/internal/http/httpapi"
	"dreamreel/internal/infra"
	"dreamreel/internal/infra/credentials"
	"dreamreel/internal/infra/geoip"
	"dreamreel/internal/pipeline"
	"dreamreel/internal/providers/genai"
	"dreamreel/internal/providers/prompt"
	"dreamreel/internal/providers/video"
	"dreamreel/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	dreams := repo.NewDreamRepository(runner)

	blobs, staticDir, err := newBlobStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure blob storage")
	}

	generator, err := newGenerator(ctx, cfg, runner, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure video provider")
	}

	countries, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}

	orchestrator := pipeline.New(pipeline.Options{
		Repo:              dreams,
		Blobs:             blobs,
		Enricher:          prompt.NewEnricher(),
		Generator:         generator,
		Logger:            logger,
		Workers:           cfg.GenerationWorkers,
		GenerationTimeout: cfg.GenerationTimeout,
	})

	app := handlers.NewApp(logger, orchestrator)
	router := httpapi.NewRouter(app, httpapi.Options{
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Countries:       countries,
		StaticDir:       staticDir,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	orchestrator.Close()
	if err := orchestrator.Drain(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("generation attempts still in flight at shutdown")
	}
	logger.Info().Msg("server stopped")
}

// newBlobStore selects the configured blob store. The second return value is
// the local directory to expose under /static, empty for remote stores.
func newBlobStore(cfg *infra.Config) (domain.BlobStore, string, error) {
	switch cfg.StorageDriver {
	case "minio":
		store, err := storage.NewMinioStore(storage.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			BaseURL:   cfg.MinioBaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		store, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
		if err != nil {
			return nil, "", err
		}
		return store, store.BasePath(), nil
	}
}

func newGenerator(ctx context.Context, cfg *infra.Config, runner *infra.SQLRunner, logger *infra.Logger) (video.Generator, error) {
	switch cfg.VideoProvider {
	case "gemini":
		apiKey := strings.TrimSpace(cfg.GeminiAPIKey)
		if apiKey == "" {
			keyFromStore, err := credentials.NewStore(runner).GeminiAPIKey(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to load gemini api key from store")
			} else {
				apiKey = keyFromStore
			}
		}
		if apiKey == "" {
			logger.Warn().Str("model", cfg.GeminiModel).Msg("gemini api key missing, using synthetic video generation")
		}
		client, err := genai.NewClient(genai.Options{
			APIKey:  apiKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
		return video.NewGeminiGenerator(client), nil
	default:
		return video.NewMock(3 * time.Second), nil
	}
}
