package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dartlinks/dart/internal/config"
	"github.com/dartlinks/dart/internal/domain"
	"github.com/dartlinks/dart/internal/httpserver"
	"github.com/dartlinks/dart/internal/httpserver/deps"
	"github.com/dartlinks/dart/internal/httpserver/mw"
	"github.com/dartlinks/dart/internal/logger"
	"github.com/dartlinks/dart/internal/namespace"
	"github.com/dartlinks/dart/internal/redis"
	"github.com/dartlinks/dart/internal/scheduler"
	"github.com/dartlinks/dart/internal/search"
	"github.com/dartlinks/dart/internal/sources/seedfile"
	"github.com/dartlinks/dart/internal/store"
	redisstore "github.com/dartlinks/dart/internal/store/redis"
	"github.com/dartlinks/dart/internal/tracker"
	"github.com/dartlinks/dart/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	janitor     *scheduler.FolderJanitor
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Record store: memory by default, Redis when configured.
	var recordStore store.Store
	var redisClient *goredis.Client
	switch cfg.StoreBackend {
	case config.BackendRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		recordStore = redisstore.NewStore(client)
	default:
		recordStore = store.NewMemoryStore()
	}

	manager := namespace.New(recordStore, loggerClient)
	if err := manager.Rebuild(context.Background()); err != nil {
		loggerClient.Errorf("Failed to rebuild namespace index: %v", err)
		os.Exit(1)
	}

	trk := tracker.New(recordStore, manager, loggerClient)

	snapshot := func(ctx context.Context) ([]*domain.Shortcut, error) {
		return recordStore.GetAllShortcuts(ctx)
	}
	controller := search.NewController(snapshot, loggerClient, cfg.DebounceWindow, cfg.QueryCacheSize)

	// Cached rankings are a function of the candidate snapshot; any
	// namespace mutation makes them stale.
	manager.OnMutation(controller.Invalidate)

	// Apply the seed file, if configured.
	if cfg.SeedFile != "" {
		seeder := seedfile.NewSeeder(cfg.SeedFile, manager, loggerClient)
		if _, err := seeder.Apply(context.Background()); err != nil {
			loggerClient.Warn("seed file could not be applied", logger.Error(err))
		}
	}

	janitor := scheduler.NewFolderJanitor(manager, loggerClient, cfg.FolderGCInterval)

	d := deps.Deps{
		Logger:     loggerClient,
		StartTime:  time.Now(),
		Version:    version.Version,
		Commit:     version.Commit,
		BuildDate:  version.BuildDate,
		GoVersion:  version.GoVersion,
		Store:      recordStore,
		Manager:    manager,
		Tracker:    trk,
		Controller: controller,
		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateLimitBurst,
			RefillPerIPPerMin: cfg.RateLimitPerMin,
			TrustProxy:        cfg.TrustProxy,
		},
		FrequentSize: cfg.FrequentSize,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		janitor:     janitor,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting dart %s on %s (commit=%s, built=%s, go=%s)",
		version.Version, a.cfg.ListenPort, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.janitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start folder janitor: %w", err)
	}
	a.logger.Info("folder janitor started",
		logger.Duration("interval", a.cfg.FolderGCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.janitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("dart stopped cleanly")
	return nil
}
