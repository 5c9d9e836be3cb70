package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/banho/internal/admin"
	"github.com/MrSnakeDoc/banho/internal/config"
	"github.com/MrSnakeDoc/banho/internal/gateway"
	"github.com/MrSnakeDoc/banho/internal/httpserver"
	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
	"github.com/MrSnakeDoc/banho/internal/index"
	"github.com/MrSnakeDoc/banho/internal/localstore"
	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/metrics"
	"github.com/MrSnakeDoc/banho/internal/probe"
	"github.com/MrSnakeDoc/banho/internal/scheduler"
	"github.com/MrSnakeDoc/banho/internal/static"
	"github.com/MrSnakeDoc/banho/internal/upstream"
	"github.com/MrSnakeDoc/banho/internal/version"
)

type App struct {
	cfg       *config.Config
	logger    logger.Logger
	server    *httpserver.Server
	store     localstore.Store
	reloader  *scheduler.DatasetReloader
	refresher *scheduler.ProbeRefresher
	seeder    *scheduler.AdminSeeder
}

// New wires every component from cfg. Only the local store can fail here:
// a missing upstream API is a normal way to run the site.
func New(cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	loggerClient.Debugf("configuration: %+v", cfg.Redacted())

	store, err := openStore(cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	loader := static.NewLoader(cfg.SeedDir)
	memIndex := index.NewMemoryIndex()

	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewDatasetReloader(loader, memIndex, loggerClient, cfg.ReloadSchedule, reloadTrigger)

	prb := probe.New(cfg.APIURL, probe.Options{
		Path:     cfg.ProbePath,
		TTL:      cfg.ProbeTTL,
		Timeout:  cfg.ProbeTimeout,
		OnResult: metrics.ObserveProbe,
	}, loggerClient)

	mode := gateway.ModeProduction
	if cfg.DevMode() {
		mode = gateway.ModeDevelopment
	}
	opts := gateway.Options{
		Mode:     mode,
		Prober:   prb,
		Store:    store,
		Static:   memIndex,
		Logger:   loggerClient,
		Recorder: metrics.Recorder{},
	}
	if cfg.APIURL != "" {
		client, err := upstream.New(cfg.APIURL, cfg.APITimeout)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		opts.Remote = client
		loggerClient.Info("upstream API configured", logger.String("url", cfg.Redacted().APIURL))
	} else {
		loggerClient.Warn("no upstream API configured, serving local and static content only")
	}
	gw := gateway.New(opts)

	users := admin.NewService(store, loggerClient)

	if len(cfg.AdminCIDRs) == 0 {
		if cfg.DevMode() {
			loggerClient.Warn("BANHO_ADMIN_CIDRS is empty, admin routes are open to every client")
		} else {
			loggerClient.Warn("BANHO_ADMIN_CIDRS is empty, admin routes are disabled in production")
		}
	}

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AdminCIDRs:    cfg.AdminCIDRs,
		TrustProxy:    cfg.TrustProxy,
		LockAdmin:     !cfg.DevMode(),
		CORSOrigins:   cfg.CORSOrigins,
		SubmitRPS:     cfg.SubmitRPS,
		SubmitBurst:   cfg.SubmitBurst,
		Gateway:       gw,
		Probe:         prb,
		Store:         store,
		StoreBackend:  cfg.StoreBackend,
		MemoryIndex:   memIndex,
		Users:         users,
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:       cfg,
		logger:    loggerClient,
		server:    httpserver.New(cfg, loggerClient, d),
		store:     store,
		reloader:  reloader,
		refresher: scheduler.NewProbeRefresher(prb, loggerClient, cfg.ProbeInterval),
		seeder:    scheduler.NewAdminSeeder(users, loader, loggerClient),
	}, nil
}

func openStore(cfg *config.Config, log logger.Logger) (localstore.Store, error) {
	switch cfg.StoreBackend {
	case localstore.BackendRedis:
		log.Info("connecting to redis local store")
		client, err := localstore.ConnectRedis(context.Background(), localstore.RedisOptions{
			URL:            cfg.RedisURL,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return localstore.NewRedisStore(client, cfg.RedisPrefix), nil
	case localstore.BackendSQLite:
		log.Info("opening sqlite local store", logger.String("path", cfg.SQLitePath))
		s, err := localstore.OpenSQLite(context.Background(), cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		log.Info("using in-memory local store, saved content is lost on restart")
		return localstore.NewMemoryStore(), nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting Banho de São João v%s on %s (%s mode)", version.Version, a.cfg.ListenAddr, a.cfg.Env)
	a.logger.Infof("banho %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start dataset reloader: %w", err)
	}
	a.logger.Info("dataset reloader started", logger.String("schedule", a.cfg.ReloadSchedule))

	if err := a.seeder.Sync(ctx); err != nil {
		a.logger.Warn("failed to seed admin users", logger.Error(err))
	}

	a.refresher.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.refresher.Stop()
	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close local store: %v", err)
	} else {
		a.logger.Info("local store closed cleanly", logger.String("backend", a.cfg.StoreBackend))
	}

	_ = a.logger.Sync()
	if runErr == nil {
		a.logger.Info("banho stopped cleanly")
	}
	return runErr
}
