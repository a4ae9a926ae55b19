// Package service orchestrates a match analysis: it resolves both teams'
// statistics, scores the fixture and assembles the response.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yourusername/futurologia/internal/datasource"
	"github.com/yourusername/futurologia/internal/logger"
	"github.com/yourusername/futurologia/internal/metrics"
	"github.com/yourusername/futurologia/internal/models"
	"github.com/yourusername/futurologia/internal/repository"
	"github.com/yourusername/futurologia/internal/scoring"
	"github.com/yourusername/futurologia/internal/tracing"
)

var (
	// ErrAPIKeyMissing is returned when no football API key is configured
	ErrAPIKeyMissing = errors.New("Football API key not configured")
	// ErrInvalidRequest wraps every request validation failure
	ErrInvalidRequest = errors.New("invalid analysis request")
	// ErrHistoryDisabled is returned by history queries when no store is configured
	ErrHistoryDisabled = errors.New("analysis history is disabled")
)

const (
	historyWriteTimeout = 2 * time.Second
	otherLeagueLabel    = "other"
	defaultRecentLimit  = 20
)

// AnalyzeRequest is the body of a match analysis call
type AnalyzeRequest struct {
	League   string `json:"league" validate:"required,max=100"`
	HomeTeam string `json:"homeTeam" validate:"required,max=100"`
	AwayTeam string `json:"awayTeam" validate:"required,max=100"`
}

func (r AnalyzeRequest) trimmed() AnalyzeRequest {
	return AnalyzeRequest{
		League:   strings.TrimSpace(r.League),
		HomeTeam: strings.TrimSpace(r.HomeTeam),
		AwayTeam: strings.TrimSpace(r.AwayTeam),
	}
}

// StatResolver produces the statistics of a team; it never fails
type StatResolver interface {
	Resolve(ctx context.Context, league, team string) *models.TeamStat
}

// AnalysisServiceConfig carries the settings the service needs from config
type AnalysisServiceConfig struct {
	APIKeyPresent bool
	RecentLimit   int
}

// AnalysisService builds match analyses
type AnalysisService struct {
	resolver StatResolver
	scorer   *scoring.Scorer
	catalog  *datasource.Catalog
	rng      Randomizer
	history  repository.AnalysisRepository
	cfg      AnalysisServiceConfig
	validate *validator.Validate
	log      *logger.AnalysisLogger
	audit    *logger.AuditLogger
	now      func() time.Time
}

// NewAnalysisService creates a new analysis service. history may be nil when
// the analysis history is disabled.
func NewAnalysisService(
	resolver StatResolver,
	scorer *scoring.Scorer,
	catalog *datasource.Catalog,
	rng Randomizer,
	history repository.AnalysisRepository,
	cfg AnalysisServiceConfig,
	log *logger.AnalysisLogger,
	audit *logger.AuditLogger,
) *AnalysisService {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = defaultRecentLimit
	}
	return &AnalysisService{
		resolver: resolver,
		scorer:   scorer,
		catalog:  catalog,
		rng:      rng,
		history:  history,
		cfg:      cfg,
		validate: validator.New(),
		log:      log,
		audit:    audit,
		now:      time.Now,
	}
}

// Ready reports whether the service can answer analysis requests
func (s *AnalysisService) Ready() bool {
	return s.cfg.APIKeyPresent
}

// HistoryEnabled reports whether analyses are being stored
func (s *AnalysisService) HistoryEnabled() bool {
	return s.history != nil
}

// Analyze scores a fixture and assembles the full analysis
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*models.Analysis, error) {
	start := s.now()

	if !s.cfg.APIKeyPresent {
		s.fail(req, "api_key_missing", ErrAPIKeyMissing)
		return nil, ErrAPIKeyMissing
	}

	req = req.trimmed()
	if err := s.validateRequest(req); err != nil {
		s.fail(req, "invalid_request", err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		s.fail(req, "cancelled", err)
		return nil, err
	}

	var home, away *models.TeamStat
	_ = tracing.Trace(ctx, "resolve_teams", func(ctx context.Context) error {
		home = s.resolver.Resolve(ctx, req.League, req.HomeTeam)
		away = s.resolver.Resolve(ctx, req.League, req.AwayTeam)
		return nil
	})

	result := s.scorer.Score(home, away)
	dist := result.Distribution

	analysis := &models.Analysis{
		ID:         uuid.New(),
		League:     req.League,
		HomeTeam:   homeSummary(home),
		AwayTeam:   awaySummary(away),
		HeadToHead: GenerateHeadToHead(s.rng, home.Name, away.Name, start),
		Recommendation: models.Recommendation{
			OutcomeDistribution: dist,
			Reasons:             result.Reasons,
			BetRecommendation:   fmt.Sprintf("Back %s to win - probability %d%%", dist.Winner, dist.WinnerProb()),
		},
		DetailedStats: detailedStats(home, away),
		Suggestions:   BuildSuggestions(home, away, dist),
		GeneratedAt:   start.UTC(),
	}

	tracing.AddAnnotation(ctx, "league", req.League)
	tracing.AddAnnotation(ctx, "winner", dist.Winner)
	tracing.AddAnnotation(ctx, "confidence", dist.Confidence)

	elapsed := s.now().Sub(start)
	metrics.RecordAnalysis(s.leagueLabel(req.League), string(dist.WinnerSide), dist.Confidence, dist.TieBreak, elapsed.Seconds())
	s.log.LogAnalysisCompleted(
		analysis.ID.String(), req.League, home.Name, away.Name,
		dist.Winner, dist.Confidence, dist.TieBreak, float64(elapsed.Microseconds())/1000,
	)

	s.saveHistory(ctx, analysis)

	return analysis, nil
}

// RecentAnalyses lists stored analyses, newest first. A non-positive limit
// uses the configured default.
func (s *AnalysisService) RecentAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = s.cfg.RecentLimit
	}

	records, err := s.history.ListRecent(ctx, repository.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent analyses: %w", err)
	}
	if records == nil {
		records = []*models.AnalysisRecord{}
	}
	return records, nil
}

// GetAnalysis returns one stored analysis summary, wrapping
// models.ErrNotFound when the id is unknown
func (s *AnalysisService) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}

	record, err := s.history.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return record, nil
}

// LeagueAnalysisCounts returns how many stored analyses each catalog league has
func (s *AnalysisService) LeagueAnalysisCounts(ctx context.Context) (map[string]int, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}

	leagues := s.catalog.Leagues()
	counts := make(map[string]int, len(leagues))
	for i := range leagues {
		n, err := s.history.CountByLeague(ctx, leagues[i].Name)
		if err != nil {
			return nil, fmt.Errorf("failed to count analyses for %s: %w", leagues[i].Name, err)
		}
		counts[leagues[i].Name] = n
	}
	return counts, nil
}

// Leagues returns the league catalog
func (s *AnalysisService) Leagues() []models.League {
	return s.catalog.Leagues()
}

// League returns one catalog league, wrapping models.ErrNotFound when unknown
func (s *AnalysisService) League(name string) (*models.League, error) {
	return s.catalog.League(name)
}

// Plans returns the subscription tiers
func (s *AnalysisService) Plans() []models.Plan {
	return DefaultPlans()
}

func (s *AnalysisService) validateRequest(req AnalyzeRequest) error {
	if err := s.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, formatFieldErrors(validationErrs))
		}
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if s.catalog.SameTeam(req.HomeTeam, req.AwayTeam) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, models.ErrSameTeam)
	}

	return nil
}

func (s *AnalysisService) saveHistory(ctx context.Context, analysis *models.Analysis) {
	if s.history == nil {
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()

	if err := s.history.Save(writeCtx, models.NewAnalysisRecord(analysis)); err != nil {
		metrics.RecordHistoryWrite(false)
		s.audit.LogHistoryWriteFailure(analysis.ID.String(), err)
		return
	}
	metrics.RecordHistoryWrite(true)
}

func (s *AnalysisService) fail(req AnalyzeRequest, reason string, err error) {
	metrics.RecordAnalysisError(reason)
	s.log.LogAnalysisError(req.League, req.HomeTeam, req.AwayTeam, reason, err)
}

// leagueLabel bounds the metric label set to catalog leagues
func (s *AnalysisService) leagueLabel(name string) string {
	league, err := s.catalog.League(name)
	if err != nil {
		return otherLeagueLabel
	}
	return league.Name
}

func formatFieldErrors(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", jsonFieldName(e.Field())))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", jsonFieldName(e.Field()), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", jsonFieldName(e.Field()), e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func homeSummary(t *models.TeamStat) models.HomeTeamSummary {
	return models.HomeTeamSummary{
		Name:        t.Name,
		Position:    t.Position,
		HomeWins:    t.HomeWins,
		HomeGoals:   t.HomeGoals,
		Corners:     t.Corners,
		YellowCards: t.YellowCards,
		RedCards:    t.RedCards,
	}
}

func awaySummary(t *models.TeamStat) models.AwayTeamSummary {
	return models.AwayTeamSummary{
		Name:        t.Name,
		Position:    t.Position,
		AwayWins:    t.AwayWins,
		AwayGoals:   t.AwayGoals,
		Corners:     t.Corners,
		YellowCards: t.YellowCards,
		RedCards:    t.RedCards,
	}
}

func detailedStats(home, away *models.TeamStat) models.DetailedStats {
	return models.DetailedStats{
		HomeWins:    home.HomeWins,
		AwayWins:    away.AwayWins,
		HomeGoals:   home.HomeGoals,
		AwayGoals:   away.AwayGoals,
		Corners:     average(home.Corners, away.Corners),
		YellowCards: average(home.YellowCards, away.YellowCards),
		RedCards:    average(home.RedCards, away.RedCards),
		TablePosition: models.TablePosition{
			Home: home.Position,
			Away: away.Position,
		},
	}
}

// average returns the mean of two counts rounded to one decimal
func average(a, b int) float64 {
	return math.Round(float64(a+b)/2*10) / 10
}
