// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/holidayagent/internal/app"
	"github.com/briangreenhill/holidayagent/internal/config"
	"github.com/briangreenhill/holidayagent/internal/http/routes"
	"github.com/briangreenhill/holidayagent/internal/logx"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		bootLogger().Fatal().Err(err).Msg("load .env")
	}
	cfg, err := config.Load()
	if err != nil {
		bootLogger().Fatal().Err(err).Msg("invalid configuration")
	}

	logger := logx.New(cfg.Log.Level, cfg.Log.Pretty)
	if !cfg.HasCalendarific() {
		logger.Warn().Msg("CALENDARIFIC_API_KEY is not set; holiday lookups will fail")
	}
	if !cfg.HasOpenAI() {
		logger.Warn().Msg("OPENAI_API_KEY is not set; the agent will only greet")
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build app")
	}

	s := routes.New(routes.ServerOptions{
		Agent:   a.Agent,
		Greeter: a.Greeter,
		Tools:   a.Tools,
		Metrics: a.Metrics,
		Cfg:     *cfg,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("base_url", cfg.BaseURL).Msg("starting holiday agent")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

func bootLogger() *zerolog.Logger {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return &l
}
