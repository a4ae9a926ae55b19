package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/futurologia/internal/api"
	"github.com/yourusername/futurologia/internal/health"
	"github.com/yourusername/futurologia/internal/metrics"
	"github.com/yourusername/futurologia/internal/scheduler"
	"github.com/yourusername/futurologia/internal/service"
	"github.com/yourusername/futurologia/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	app, err := buildApplication(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer app.Close()

	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"upstream":    app.upstream.IsEnabled(),
	}).Info("FuturoLogia starting")

	tracingCfg := tracing.Config{
		ServiceName:  cfg.App.Name,
		Enabled:      cfg.Tracing.Enabled,
		SamplingRate: cfg.Tracing.SamplingRate,
		DaemonAddr:   cfg.Tracing.DaemonAddr,
	}
	if err := tracing.Initialize(tracingCfg, appLog); err != nil {
		return err
	}

	if !cfg.HasFootballAPIKey() {
		appLog.Warn("Football API key not configured, analysis requests will fail")
	}

	var healthServer *health.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		healthCfg := health.Config{
			ServiceName:    cfg.App.Name,
			Version:        Version,
			Port:           strconv.Itoa(cfg.Metrics.Port),
			MetricsPath:    cfg.Metrics.Path,
			MetricsHandler: metrics.Handler(),
			Logger:         appLog,
			Checks: map[string]health.Check{
				"football_api_key": func(ctx context.Context) error {
					if !app.service.Ready() {
						return service.ErrAPIKeyMissing
					}
					return nil
				},
			},
		}
		if app.db != nil {
			healthCfg.DB = app.db
		}

		healthServer = health.NewServer(healthCfg)
		if err := healthServer.Start(ctx); err != nil {
			return err
		}
	}

	if cfg.Scheduler.Enabled && app.upstream.IsEnabled() {
		jobs := scheduler.NewScheduler(app.upstream, appLog)
		if err := jobs.ScheduleCacheWarm(cfg.Scheduler.CacheWarmSchedule, app.catalog.Leagues()); err != nil {
			return err
		}
		if err := jobs.Start(); err != nil {
			return err
		}
		defer func() {
			if err := jobs.Stop(); err != nil {
				appLog.WithError(err).Warn("Scheduler did not stop cleanly")
			}
		}()
	}

	server := api.NewServer(app.service, api.Config{
		Address:         cfg.GetServerAddress(),
		AllowedOrigin:   cfg.Server.AllowedOrigin,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		ReadTimeout:     time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:    time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second,
		Tracing:         tracingCfg,
	}, appLog)

	if healthServer != nil {
		healthServer.SetReady(true)
	}

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	appLog.Info("FuturoLogia stopped")
	return nil
}
