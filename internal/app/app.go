// Package app wires the pieces both the console and the bot run on.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Randidu/event-management-system/internal/backend"
	"github.com/Randidu/event-management-system/internal/config"
	"github.com/Randidu/event-management-system/internal/database"
	"github.com/Randidu/event-management-system/internal/domain"
	"github.com/Randidu/event-management-system/internal/events"
	"github.com/Randidu/event-management-system/internal/google"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/logging"
	"github.com/Randidu/event-management-system/internal/metrics"
	"github.com/Randidu/event-management-system/internal/profile"
	"github.com/Randidu/event-management-system/internal/repository"
	"github.com/Randidu/event-management-system/internal/service"
	"github.com/Randidu/event-management-system/internal/tickets"
	"github.com/Randidu/event-management-system/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const sheetsCacheRefresh = 10 * time.Minute

// Core holds the shared services of one process.
type Core struct {
	Config   *config.Config
	Logger   *zerolog.Logger
	Location *time.Location

	DB       *database.DB
	Redis    *redis.Client
	Sessions *service.SessionService
	Backend  *backend.Client
	Bus      *events.EventBus
	Activity *service.ActivityService
	Sheets   *worker.SheetsWorker

	Bundle   *i18n.Bundle
	Resolver *profile.Resolver
	Renderer *tickets.Renderer

	closers []io.Closer
}

// LoadConfigAndLogger reads CONFIG_PATH (configs/config.yaml by default) and
// builds the process logger.
func LoadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, closer, nil
}

// New opens the database, connects redis and the Sheets mirror when
// configured, and subscribes the activity log to the event bus. Background
// loops start when ctx is live and stop with it.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Core, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	bundle, err := i18n.NewBundle(cfg.I18n.DefaultLanguage, cfg.I18n.Supported)
	if err != nil {
		return nil, err
	}

	c := &Core{Config: cfg, Logger: logger, Location: loc, Bundle: bundle}

	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}

	c.DB, err = database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, c.DB)

	c.initRedis(ctx)
	c.initSessions()

	c.Backend = backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout,
		backend.WithLogger(logging.Component(logger, "backend")),
		backend.WithEventsLimit(cfg.Backend.EventsLimit),
	)
	if c.Redis != nil {
		c.Backend.UseRedisCache(c.Redis, cfg.Backend.EventsCacheTTL)
	}
	c.Resolver = profile.NewResolver(cfg.Backend.BaseURL)
	c.Renderer = tickets.NewRenderer(c.Resolver, loc)

	c.initSheets(ctx)

	var sink domain.SyncWorker
	if c.Sheets != nil {
		sink = c.Sheets
	}
	c.Bus = events.NewEventBus()
	c.Activity = service.NewActivityService(c.DB, sink, logger)
	c.Activity.Subscribe(c.Bus)

	if cfg.Database.Backup.Enabled {
		go database.NewBackupService(c.DB, cfg.Database.Backup, logger).Start(ctx)
	}
	return c, nil
}

func (c *Core) initRedis(ctx context.Context) {
	if c.Config.Redis.Address == "" {
		c.Logger.Warn().Msg("redis not configured, sessions live in memory")
		return
	}
	c.Redis = repository.NewRedisClient(c.Config.Redis)
	if err := repository.Ping(ctx, c.Redis); err != nil {
		c.Logger.Warn().Err(err).Msg("Redis unavailable")
	} else {
		c.Logger.Info().Str("addr", c.Config.Redis.Address).Msg("redis connected")
	}
}

func (c *Core) initSessions() {
	ttl := c.Config.Session.TTL
	primary := repository.NewRedisSessionRepository(c.Redis, ttl)
	fallback := repository.NewMemorySessionRepository(ttl)
	repo := repository.NewFailoverSessionRepository(primary, fallback, c.Logger)
	c.Sessions = service.NewSessionService(repo, c.Config.I18n.DefaultLanguage, c.Logger)
}

// initSheets starts the Sheets mirror. A mirror that cannot connect is
// logged and skipped; the console works without it.
func (c *Core) initSheets(ctx context.Context) {
	g := c.Config.Google
	if !g.Enabled() {
		return
	}

	sheetsSvc, err := google.NewSheetsService(ctx, g.GoogleCredentialsFile, g.TicketsSpreadSheetID, c.Location, c.Logger)
	if err != nil {
		c.Logger.Warn().Err(err).Msg("Failed to initialize Google Sheets service")
		return
	}
	if err := sheetsSvc.TestConnection(ctx); err != nil {
		email, _ := google.ServiceAccountEmail(g.GoogleCredentialsFile)
		c.Logger.Error().Err(err).Str("service_account", email).Msg("Google Sheets connection test failed; share the spreadsheet with the service account")
		return
	}
	if err := sheetsSvc.FormatHeader(ctx); err != nil {
		c.Logger.Warn().Err(err).Msg("format Tickets header")
	}
	sheetsSvc.StartCacheRefresh(ctx, sheetsCacheRefresh)

	c.Sheets = worker.NewSheetsWorker(c.DB, sheetsSvc, c.Redis, worker.DefaultRetryPolicy(), c.Logger)
	go c.Sheets.Start(ctx)

	c.Logger.Info().Msg("Google Sheets service initialized successfully")
}

// Ready reports whether the session store answers.
func (c *Core) Ready(ctx context.Context) error {
	if c.Redis == nil {
		return nil
	}
	return repository.Ping(ctx, c.Redis)
}

func (c *Core) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	errs = append(errs, repository.Close(c.Redis))
	return errors.Join(errs...)
}

// StartMetrics serves /metrics on the monitoring port until ctx ends.
func StartMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}
	metrics.Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
}
