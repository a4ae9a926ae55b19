package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/futurologia/internal/metrics"
	"github.com/yourusername/futurologia/internal/models"
)

const apiFootballSource = "api_football"

// DefaultAPIFootballURL is the public API-Football v3 endpoint
const DefaultAPIFootballURL = "https://v3.football.api-sports.io"

// APIFootballConfig holds the settings of the API-Football client
type APIFootballConfig struct {
	BaseURL string
	APIKey  string
	Season  int // 0 means the current calendar year
	Enabled bool
}

// APIFootballClient implements TeamDataSource over the API-Football standings endpoint
type APIFootballClient struct {
	httpClient *RateLimitedHTTPClient
	cfg        APIFootballConfig
	host       string
	catalog    *Catalog
	cache      *StandingsCache
	logger     logrus.FieldLogger
	now        func() time.Time
}

// Standing is one row of an API-Football league table
type Standing struct {
	Rank      int            `json:"rank"`
	Team      StandingTeam   `json:"team"`
	Points    int            `json:"points"`
	GoalsDiff int            `json:"goalsDiff"`
	All       StandingRecord `json:"all"`
	Home      StandingRecord `json:"home"`
	Away      StandingRecord `json:"away"`
}

// StandingTeam identifies the team of a standings row
type StandingTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StandingRecord holds the results of a team at one venue
type StandingRecord struct {
	Played int `json:"played"`
	Win    int `json:"win"`
	Draw   int `json:"draw"`
	Lose   int `json:"lose"`
	Goals  struct {
		For     int `json:"for"`
		Against int `json:"against"`
	} `json:"goals"`
}

type standingsResponse struct {
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response []struct {
		League struct {
			ID        int          `json:"id"`
			Name      string       `json:"name"`
			Season    int          `json:"season"`
			Standings [][]Standing `json:"standings"`
		} `json:"league"`
	} `json:"response"`
}

// NewAPIFootballClient creates a new API-Football client
func NewAPIFootballClient(httpClient *RateLimitedHTTPClient, cfg APIFootballConfig, catalog *Catalog, standingsCache *StandingsCache, logger logrus.FieldLogger) *APIFootballClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIFootballURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	host := cfg.BaseURL
	if u, err := url.Parse(cfg.BaseURL); err == nil && u.Host != "" {
		host = u.Host
	}

	return &APIFootballClient{
		httpClient: httpClient,
		cfg:        cfg,
		host:       host,
		catalog:    catalog,
		cache:      standingsCache,
		logger:     logger,
		now:        time.Now,
	}
}

// Name returns the data source name
func (c *APIFootballClient) Name() string {
	return apiFootballSource
}

// IsEnabled returns whether this data source is enabled
func (c *APIFootballClient) IsEnabled() bool {
	return c.cfg.Enabled && c.cfg.APIKey != ""
}

// Season returns the season requested from the upstream
func (c *APIFootballClient) Season() int {
	if c.cfg.Season > 0 {
		return c.cfg.Season
	}
	return c.now().Year()
}

// FetchTeamStats retrieves a team's row of the league table. Corners and
// cards are not published in standings and are left at zero.
func (c *APIFootballClient) FetchTeamStats(ctx context.Context, league, team string) (*models.TeamStat, error) {
	if !c.IsEnabled() {
		return nil, NewDataSourceError(apiFootballSource, ErrCodeDisabled, "data source is disabled", nil)
	}

	catalogLeague, err := c.catalog.League(league)
	if err != nil {
		return nil, NewDataSourceError(apiFootballSource, ErrCodeNotFound, "league has no upstream mapping", err)
	}

	standings, err := c.FetchStandings(ctx, catalogLeague.UpstreamID, c.Season())
	if err != nil {
		return nil, err
	}

	for _, row := range standings {
		if !c.catalog.SameTeam(row.Team.Name, team) {
			continue
		}
		points := row.Points
		return &models.TeamStat{
			Name:      team,
			Position:  row.Rank,
			HomeWins:  row.Home.Win,
			AwayWins:  row.Away.Win,
			HomeGoals: row.Home.Goals.For,
			AwayGoals: row.Away.Goals.For,
			Points:    &points,
			Source:    models.SourceUpstream,
		}, nil
	}

	return nil, NewDataSourceError(apiFootballSource, ErrCodeNotFound, fmt.Sprintf("team %q not in standings", team), nil)
}

// FetchStandings returns a league table, served from cache when fresh
func (c *APIFootballClient) FetchStandings(ctx context.Context, leagueID, season int) ([]Standing, error) {
	key := StandingsKey{LeagueID: leagueID, Season: season}
	if c.cache != nil {
		if standings, ok := c.cache.Get(key); ok {
			return standings, nil
		}
	}
	return c.RefreshStandings(ctx, leagueID, season)
}

// RefreshStandings fetches a league table from the upstream and stores it in the cache
func (c *APIFootballClient) RefreshStandings(ctx context.Context, leagueID, season int) ([]Standing, error) {
	start := time.Now()
	standings, err := c.requestStandings(ctx, leagueID, season)

	outcome := "success"
	if err != nil {
		outcome = ErrorCode(err)
	}
	metrics.RecordUpstreamRequest(apiFootballSource, outcome, time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{
		"league_id": leagueID,
		"season":    season,
		"rows":      len(standings),
	}).Debug("Fetched standings")
	if c.cache != nil {
		c.cache.Set(StandingsKey{LeagueID: leagueID, Season: season}, standings)
	}
	return standings, nil
}

func (c *APIFootballClient) requestStandings(ctx context.Context, leagueID, season int) ([]Standing, error) {
	endpoint := fmt.Sprintf("%s/standings?league=%d&season=%d", c.cfg.BaseURL, leagueID, season)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError(apiFootballSource, ErrCodeNetworkError, "failed to create request", err)
	}

	// Add authentication headers
	req.Header.Set("x-apisports-key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(apiFootballSource, ErrCodeNetworkError, "failed to fetch standings", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewDataSourceError(apiFootballSource, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(apiFootballSource, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewDataSourceError(apiFootballSource, ErrCodeNotFound, "standings not found", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewDataSourceError(apiFootballSource, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var payload standingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewDataSourceError(apiFootballSource, ErrCodeInvalidData, "failed to parse response", err)
	}

	if err := payloadError(payload.Errors); err != nil {
		return nil, err
	}

	var standings []Standing
	for _, entry := range payload.Response {
		for _, group := range entry.League.Standings {
			standings = append(standings, group...)
		}
	}
	if len(standings) == 0 {
		return nil, NewDataSourceError(apiFootballSource, ErrCodeNotFound,
			fmt.Sprintf("no standings for league %d season %d", leagueID, season), nil)
	}

	return standings, nil
}

// payloadError maps the "errors" member of an API-Football response. The API
// answers 200 with an empty array on success and an object keyed by the
// failing concern otherwise.
func payloadError(raw json.RawMessage) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == "[]" || trimmed == "{}" {
		return nil
	}

	var byField map[string]string
	if err := json.Unmarshal(raw, &byField); err != nil {
		return NewDataSourceError(apiFootballSource, ErrCodeInvalidData, "upstream reported errors: "+trimmed, nil)
	}

	for field, msg := range byField {
		switch strings.ToLower(field) {
		case "token":
			return NewDataSourceError(apiFootballSource, ErrCodeAuthenticationFailed, msg, nil)
		case "requests", "ratelimit":
			return NewDataSourceError(apiFootballSource, ErrCodeRateLimitExceeded, msg, nil)
		}
	}
	return NewDataSourceError(apiFootballSource, ErrCodeInvalidData, "upstream reported errors: "+trimmed, nil)
}
