package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Randidu/event-management-system/internal/app"
	"github.com/Randidu/event-management-system/internal/bot"
	"github.com/Randidu/event-management-system/internal/logging"
	"github.com/Randidu/event-management-system/internal/service"

	"github.com/prometheus/client_golang/prometheus"
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
	logger := logging.Component(baseLogger, "bot-main")

	if cfg.Telegram.BotToken == "" {
		logger.Error().Msg("telegram.bot_token is not set")
		return errors.New("telegram bot token is required")
	}
	if len(cfg.Telegram.Operators) == 0 {
		logger.Warn().Msg("telegram.operators is empty, every update will be rejected")
	}

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

	sender, err := bot.NewSender(cfg.Telegram.BotToken, cfg.Telegram.Debug)
	if err != nil {
		logger.Error().Err(err).Msg("create bot api")
		return err
	}

	telegramBot, err := bot.NewBot(cfg.Telegram, bot.Deps{
		Telegram:  service.NewTelegramService(sender),
		Backend:   core.Backend,
		Sessions:  core.Sessions,
		Renderer:  core.Renderer,
		Publisher: core.Bus,
		Bundle:    core.Bundle,
		Location:  core.Location,
		Metrics:   bot.NewMetrics(prometheus.DefaultRegisterer),
		Logger:    baseLogger,
		ExportDir: cfg.Exports.Path,
	})
	if err != nil {
		logger.Error().Err(err).Msg("create bot")
		return err
	}

	app.StartMetrics(ctx, cfg, baseLogger)

	logger.Info().Msg("bot started")
	telegramBot.Start(ctx)
	telegramBot.Stop()

	logger.Info().Msg("Shutdown complete.")
	return nil
}
