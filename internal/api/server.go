// Package api exposes the match analysis service over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/futurologia/internal/models"
	"github.com/yourusername/futurologia/internal/service"
	"github.com/yourusername/futurologia/internal/tracing"
)

// AnalysisService is the part of the service layer the API depends on
type AnalysisService interface {
	Analyze(ctx context.Context, req service.AnalyzeRequest) (*models.Analysis, error)
	RecentAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error)
	Leagues() []models.League
	League(name string) (*models.League, error)
	Plans() []models.Plan
}

// Config holds the listener settings of the API server
type Config struct {
	Address         string
	AllowedOrigin   string
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Tracing         tracing.Config
}

// Server serves the public API
type Server struct {
	svc    AnalysisService
	cfg    Config
	logger *logrus.Logger
}

// NewServer creates a new API server
func NewServer(svc AnalysisService, cfg Config, logger *logrus.Logger) *Server {
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 64 << 10
	}
	return &Server{svc: svc, cfg: cfg, logger: logger}
}

// Handler returns the router wrapped in CORS, request logging and tracing.
// CORS sits outside the router so preflight requests never reach method
// matching.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(metricsMiddleware)

	router.HandleFunc("/match-analysis", s.handleAnalyze).Methods(http.MethodPost)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/analysis", s.handleAnalyze).Methods(http.MethodPost)
	v1.HandleFunc("/analyses/recent", s.handleRecentAnalyses).Methods(http.MethodGet)
	v1.HandleFunc("/analyses/{id}", s.handleGetAnalysis).Methods(http.MethodGet)
	v1.HandleFunc("/leagues", s.handleLeagues).Methods(http.MethodGet)
	v1.HandleFunc("/leagues/{league}/teams", s.handleLeagueTeams).Methods(http.MethodGet)
	v1.HandleFunc("/plans", s.handlePlans).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", r.URL.Path)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", r.Method)
	})

	traced := tracing.Middleware(s.cfg.Tracing, router)
	return corsMiddleware(s.cfg.AllowedOrigin)(loggingMiddleware(s.logger)(traced))
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("address", s.cfg.Address).Info("API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("API server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("API server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown failed: %w", err)
	}
	return nil
}
