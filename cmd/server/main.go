package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"creativemastery/internal/app"
	"creativemastery/internal/config"
	"creativemastery/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Creative Mastery API
// @version 1.0
// @description Personality quiz scoring, profile resolution and mastery insights
// @host localhost:8080
// @BasePath /v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Run the creative mastery quiz API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_FILE"), "Path to a YAML config file")
	return cmd
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.Int("port", cfg.HTTP.Port),
		zap.String("redis", cfg.Redis.Addr),
		zap.Duration("sessionTTL", cfg.Session.TTL),
		zap.Int("cacheSize", cfg.Cache.Size),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.String("corsOrigins", strings.Join(cfg.CORS.AllowedOrigins, ",")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.Close()

	logger.Info("endpoints",
		zap.Strings("rest", []string{
			"GET  /v1/dimensions",
			"GET  /v1/questions",
			"GET  /v1/mastery/options",
			"POST /v1/results",
			"POST /v1/insights",
			"POST /v1/sessions",
			"*    /v1/sessions/{id}/...",
		}),
		zap.String("ws", "/v1/ws/sessions/{id}"),
	)

	if err := a.Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("server exited")
	return nil
}
