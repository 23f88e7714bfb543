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

	"tinylink/internal/adapters/handler"
	"tinylink/internal/adapters/repository/memory"
	"tinylink/internal/adapters/repository/postgres"
	"tinylink/internal/adapters/repository/sqlite"
	"tinylink/internal/config"
	"tinylink/internal/core/services"
	"tinylink/internal/logging"
	"tinylink/internal/ports"
)

func main() {
	startedAt := time.Now()

	cfg := config.Load()
	log := logging.New(cfg.AppEnv, cfg.LogLevel)

	repo, err := newRepository(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	service := services.NewLinkService(repo)
	router := handler.NewRouter(cfg, service, repo, log, startedAt)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// newRepository picks the store adapter from the DSN: postgres:// for
// PostgreSQL, "memory" for the in-process store, anything else goes to the
// SQLite driver (file: or libsql://).
func newRepository(ctx context.Context, cfg *config.Config) (ports.LinkRepository, error) {
	switch {
	case strings.HasPrefix(cfg.DatabaseURL, "postgres://"),
		strings.HasPrefix(cfg.DatabaseURL, "postgresql://"):
		return postgres.NewRepository(ctx, cfg.DatabaseURL)
	case cfg.DatabaseURL == "memory":
		return memory.NewRepository(), nil
	default:
		return sqlite.NewRepository(cfg.DatabaseURL)
	}
}
