package main

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/futurologia/internal/config"
	"github.com/yourusername/futurologia/internal/database"
	"github.com/yourusername/futurologia/internal/datasource"
	"github.com/yourusername/futurologia/internal/logger"
	"github.com/yourusername/futurologia/internal/repository"
	"github.com/yourusername/futurologia/internal/scoring"
	"github.com/yourusername/futurologia/internal/service"
)

// application holds the wired components shared by the commands
type application struct {
	catalog    *datasource.Catalog
	httpClient *datasource.RateLimitedHTTPClient
	upstream   *datasource.APIFootballClient
	service    *service.AnalysisService
	db         *database.DB
}

func buildApplication(ctx context.Context, cfg *config.Config, withHistory bool) (*application, error) {
	catalog, err := datasource.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load league catalog: %w", err)
	}

	scorer, err := scoring.NewScorer(cfg.Scoring)
	if err != nil {
		return nil, err
	}

	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           time.Duration(cfg.FootballAPI.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.FootballAPI.MaxRetries,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      2 * time.Second,
		RateLimit:         cfg.FootballAPI.RateLimit,
		CircuitBreakerMax: cfg.FootballAPI.CircuitBreakerMax,
		CircuitCooldown:   time.Duration(cfg.FootballAPI.CircuitCooldownSeconds) * time.Second,
	}, appLog.WithField("component", "http_client"))

	upstream := datasource.NewAPIFootballClient(
		httpClient,
		datasource.APIFootballConfig{
			BaseURL: cfg.FootballAPI.BaseURL,
			APIKey:  cfg.FootballAPI.APIKey,
			Season:  cfg.FootballAPI.Season,
			Enabled: cfg.FootballAPI.Enabled,
		},
		catalog,
		datasource.NewStandingsCache(cfg.GetStandingsTTL()),
		appLog.WithField("component", "api_football"),
	)

	app := &application{
		catalog:    catalog,
		httpClient: httpClient,
		upstream:   upstream,
	}

	var history repository.AnalysisRepository
	if withHistory && cfg.History.Enabled {
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize history database: %w", err)
		}
		app.db = db
		history = repository.NewPostgresAnalysisRepository(db)
		appLog.Info("Analysis history enabled")
	}

	synth := datasource.NewSynthesizer(nil)
	analysisLog := logger.NewAnalysisLogger(appLog)
	app.service = service.NewAnalysisService(
		datasource.NewResolver(upstream, catalog, synth, analysisLog),
		scorer,
		catalog,
		synth,
		history,
		service.AnalysisServiceConfig{
			APIKeyPresent: cfg.HasFootballAPIKey(),
			RecentLimit:   cfg.History.RecentLimit,
		},
		analysisLog,
		auditLog,
	)

	return app, nil
}

func (a *application) Close() {
	if err := a.httpClient.Close(); err != nil {
		appLog.WithError(err).Warn("Failed to close HTTP client")
	}
	if a.db != nil {
		a.db.Close()
	}
}
