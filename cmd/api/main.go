package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"promptgate/internal/adapter/repo"
	"promptgate/internal/http/handlers"
	httpapi "promptgate/internal/http/httpapi"
	"promptgate/internal/infra"
	"promptgate/internal/infra/credentials"
	"promptgate/internal/providers/genai"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := handlers.NewApp(logger)
	app.MaxUploadBytes = cfg.MaxUploadBytes

	var store *credentials.Store
	if cfg.LibraryEnabled() {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()

		runner := infra.NewSQLRunner(dbpool, logger.With().Str("component", "sql").Logger())
		app.Library = repo.NewLibraryRepository(runner)
		store = credentials.NewStore(runner)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, prompt library disabled")
	}

	if key := geminiKey(ctx, cfg, store, logger); key != "" {
		client, err := genai.NewClient(ctx, genai.Options{
			APIKey:  key,
			BaseURL: cfg.GeminiBaseURL,
			Logger:  &logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create gemini client")
		}
		app.Structurer = genai.NewStructurer(client, genai.StructurerOptions{
			TextModel:   cfg.GeminiModel,
			VisionModel: cfg.GeminiVisionModel,
			Timeout:     cfg.GeminiTimeout,
			Logger:      &logger,
		})
	} else {
		logger.Warn().Msg("no gemini api key, text-to-base and image-to-base disabled")
	}

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}

// geminiKey prefers GEMINI_API_KEY and falls back to the key saved by
// cmd/geminikey.
func geminiKey(ctx context.Context, cfg *infra.Config, store *credentials.Store, logger zerolog.Logger) string {
	if cfg.GeminiAPIKey != "" || store == nil {
		return cfg.GeminiAPIKey
	}
	lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	key, err := store.GeminiAPIKey(lookupCtx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load stored gemini api key")
		return ""
	}
	return key
}
