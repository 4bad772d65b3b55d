package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/estatehub/internal/api/ws"
	"github.com/gosuda/estatehub/internal/config"
	"github.com/gosuda/estatehub/internal/metrics"
	"github.com/gosuda/estatehub/internal/router"
	"github.com/gosuda/estatehub/internal/server"
	"github.com/gosuda/estatehub/internal/store/memory"
	redisstore "github.com/gosuda/estatehub/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize structured logging. Level and format were validated by Load.
	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)
	if cfg.Log.Format == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := memory.NewEmpty()
	if cfg.SeedOnStart {
		store = memory.New()
		log.Info().Str("estate_id", memory.DefaultEstateID.String()).Msg("demo estate loaded")
	}

	m := metrics.New()
	opts := []router.Option{router.WithMetrics(m)}

	// Redis is optional: without it commands publish nothing and no
	// WebSocket routes are served.
	var hub *ws.Hub
	if cfg.Redis.Enabled() {
		pubsub, redisErr := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if redisErr != nil {
			return redisErr
		}
		defer pubsub.Close()

		hub = ws.NewHub(pubsub)
		opts = append(opts, router.WithPublisher(hub))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis event publishing enabled")
	}

	r := router.New(store, opts...)

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, r, m, hub)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
			cancel()
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
