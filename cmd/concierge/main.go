package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skytrail/concierge/internal/api"
	"github.com/skytrail/concierge/internal/chat"
	"github.com/skytrail/concierge/internal/config"
	"github.com/skytrail/concierge/internal/events"
	"github.com/skytrail/concierge/internal/extract"
	"github.com/skytrail/concierge/internal/flights"
	"github.com/skytrail/concierge/internal/llm"
	"github.com/skytrail/concierge/internal/session"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("concierge starting", "port", cfg.Port)

	ctx := context.Background()
	ttl := time.Duration(cfg.SessionTTLMin) * time.Minute

	// Session store: Postgres when configured, in-memory otherwise.
	var store session.Store
	if cfg.DatabaseURL != "" {
		pg, err := session.NewPGStore(ctx, cfg.DatabaseURL, ttl, slog.Default())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		store = pg
		slog.Info("database session store ready", "ttl", ttl)
	} else {
		mem := session.NewMemoryStore(ttl, slog.Default())
		defer mem.Close()
		store = mem
		slog.Info("in-memory session store ready", "ttl", ttl)
	}

	// Flight provider. A missing key is a warning, not a startup failure;
	// searches will fail at call time instead.
	var provider flights.Provider
	switch cfg.FlightProvider {
	case "flyscraper":
		if cfg.FlyScraperKey == "" {
			slog.Warn("FLYSCRAPER_API_KEY is not set, searches will fail")
		}
		provider = flights.NewFlyScraper(cfg.FlyScraperKey, "", slog.Default())
	default:
		if cfg.KiwiAPIKey == "" {
			slog.Warn("KIWI_API_KEY is not set, searches will fail")
		}
		provider = flights.NewKiwi(cfg.KiwiAPIKey, "", slog.Default())
	}
	slog.Info("flight provider ready", "provider", cfg.FlightProvider)

	// Language model (optional, canned questions go out without it).
	var model chat.LLM
	if cfg.OpenAIAPIKey != "" {
		model = llm.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMBaseURL)
		slog.Info("language model ready", "model", cfg.LLMModel)
	} else {
		slog.Warn("OPENAI_API_KEY is not set, replies will use canned questions")
	}

	// Event publisher (optional).
	var pub *events.Publisher
	if cfg.NatsURL != "" {
		p, err := events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		pub = p
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, running without search events")
	}

	handler := chat.New(store, extract.New(), provider, model, pub, slog.Default())

	srv := api.NewServer(cfg.Port, cfg.CORSOrigins, handler)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("concierge ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown error", "error", err)
	}
	slog.Info("concierge stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
