package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Randidu/event-management-system/internal/app"
	"github.com/Randidu/event-management-system/internal/chat"
	"github.com/Randidu/event-management-system/internal/dashboard"
	"github.com/Randidu/event-management-system/internal/logging"
	"github.com/Randidu/event-management-system/internal/web"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, baseLogger, closer, err := app.LoadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logger := logging.Component(baseLogger, "console-main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core, err := app.New(ctx, cfg, baseLogger)
	if err != nil {
		logger.Error().Err(err).Msg("init core")
		return err
	}
	defer func() {
		if err := core.Close(); err != nil {
			logger.Warn().Err(err).Msg("close")
		}
	}()

	server, err := web.NewServer(web.Deps{
		Config:    cfg,
		Backend:   core.Backend,
		Sessions:  core.Sessions,
		Activity:  core.Activity,
		Chat:      chat.NewService(core.Backend, core.Bundle, baseLogger),
		Dashboard: dashboard.NewService(core.Backend, core.Resolver, core.Location, baseLogger),
		Bundle:    core.Bundle,
		Resolver:  core.Resolver,
		Renderer:  core.Renderer,
		Publisher: core.Bus,
		Location:  core.Location,
		Ready:     core.Ready,
		Logger:    baseLogger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("create http server")
		return err
	}

	app.StartMetrics(ctx, cfg, baseLogger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()
	logger.Info().Int("http_port", cfg.HTTP.Port).Str("backend", cfg.Backend.BaseURL).Msg("console started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	logger.Info().Msg("console stopped")
	return nil
}
