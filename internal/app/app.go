package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"creativemastery/internal/cache"
	"creativemastery/internal/catalog"
	"creativemastery/internal/config"
	"creativemastery/internal/engine"
	"creativemastery/internal/metrics"
	"creativemastery/internal/service"
	"creativemastery/internal/transport/rest"
	"creativemastery/internal/transport/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// App wires the server's components together
type App struct {
	Config         *config.Config
	Logger         *zap.Logger
	Redis          *redis.Client
	Metrics        *metrics.Metrics
	QuizService    *service.QuizService
	SessionService *service.SessionService
	WSHub          *ws.Hub
	Server         *http.Server
}

// New connects to redis and builds the services, hub and router
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))

	var gatherer prometheus.Gatherer
	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		gatherer = reg
	}
	m := metrics.MustNewMetrics(reg)

	quizSvc, err := service.NewQuizService(engine.New(catalog.Default()), cfg.Cache.Size, m, logger)
	if err != nil {
		rdb.Close()
		return nil, err
	}
	sessionSvc := service.NewSessionService(quizSvc, cache.NewQuizSessionCache(rdb, cfg.Session.TTL), m, logger)
	sessionSvc.SetProfileStats(cache.NewProfileStatsCache(rdb))

	// Inject broadcaster (hub implements service.Broadcaster)
	hub := ws.NewHub(m, logger)
	sessionSvc.SetBroadcaster(hub)

	router := rest.NewRouter(&rest.Container{
		QuizService:    quizSvc,
		SessionService: sessionSvc,
		WSHub:          hub,
		CORS:           cfg.CORS,
		Metrics:        m,
		Gatherer:       gatherer,
		Ping:           func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		Logger:         logger,
	})

	return &App{
		Config:         cfg,
		Logger:         logger,
		Redis:          rdb,
		Metrics:        m,
		QuizService:    quizSvc,
		SessionService: sessionSvc,
		WSHub:          hub,
		Server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server starting", zap.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down server")

		timeout := a.Config.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close releases the hub and the redis client
func (a *App) Close() error {
	a.WSHub.Close()
	return a.Redis.Close()
}
