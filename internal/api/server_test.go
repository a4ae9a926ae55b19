package api

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/futurologia/internal/datasource"
	"github.com/yourusername/futurologia/internal/logger"
	"github.com/yourusername/futurologia/internal/models"
	"github.com/yourusername/futurologia/internal/repository"
	"github.com/yourusername/futurologia/internal/scoring"
	"github.com/yourusername/futurologia/internal/service"
)

type testEnv struct {
	handler       http.Handler
	upstreamCalls *int32
}

func newTestEnv(t *testing.T, apiKey string, maxBody int64, upstream http.HandlerFunc) *testEnv {
	t.Helper()
	return newTestEnvWithHistory(t, apiKey, maxBody, upstream, nil)
}

func newTestEnvWithHistory(t *testing.T, apiKey string, maxBody int64, upstream http.HandlerFunc, history repository.AnalysisRepository) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	catalog, err := datasource.DefaultCatalog()
	require.NoError(t, err)

	var calls int32
	var source datasource.TeamDataSource
	if upstream != nil {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			upstream(w, r)
		}))
		t.Cleanup(server.Close)

		source = datasource.NewAPIFootballClient(
			datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
				Timeout:           time.Second,
				RetryWaitMin:      time.Millisecond,
				RetryWaitMax:      time.Millisecond,
				CircuitBreakerMax: 10,
				CircuitCooldown:   time.Minute,
			}, log),
			datasource.APIFootballConfig{BaseURL: server.URL, APIKey: apiKey, Season: 2024, Enabled: true},
			catalog,
			datasource.NewStandingsCache(time.Minute),
			log,
		)
	}

	synth := datasource.NewSynthesizer(rand.NewSource(3))
	analysisLog := logger.NewAnalysisLogger(log)
	svc := service.NewAnalysisService(
		datasource.NewResolver(source, catalog, synth, analysisLog),
		scoring.NewDefaultScorer(),
		catalog,
		synth,
		history,
		service.AnalysisServiceConfig{APIKeyPresent: apiKey != ""},
		analysisLog,
		logger.NewAuditLogger(log),
	)

	srv := NewServer(svc, Config{AllowedOrigin: "*", MaxBodyBytes: maxBody}, log)
	return &testEnv{handler: srv.Handler(), upstreamCalls: &calls}
}

// memoryHistory is an in-memory repository.AnalysisRepository
type memoryHistory struct {
	mu      sync.Mutex
	records []*models.AnalysisRecord
}

func (m *memoryHistory) Save(_ context.Context, record *models.AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memoryHistory) GetByID(_ context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memoryHistory) ListRecent(_ context.Context, limit int) ([]*models.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.AnalysisRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *memoryHistory) CountByLeague(_ context.Context, league string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.records {
		if r.League == league {
			n++
		}
	}
	return n, nil
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const validBody = `{"league":"Brasileirão Série A","homeTeam":"Flamengo","awayTeam":"Botafogo"}`

func TestAnalyzeEndpoints(t *testing.T) {
	env := newTestEnv(t, "test-key", 0, nil)

	for _, path := range []string{"/match-analysis", "/api/v1/analysis"} {
		t.Run(path, func(t *testing.T) {
			rec := env.do(http.MethodPost, path, validBody)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

			var analysis models.Analysis
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))

			rec2 := analysis.Recommendation
			assert.Equal(t, 100, rec2.HomeWinProb+rec2.DrawProb+rec2.AwayWinProb)
			assert.GreaterOrEqual(t, rec2.DrawProb, 18)
			assert.LessOrEqual(t, rec2.DrawProb, 32)
			assert.Contains(t, []string{"Flamengo", "Botafogo"}, rec2.Winner)
			assert.GreaterOrEqual(t, len(rec2.Reasons), 2)
			assert.LessOrEqual(t, len(rec2.Reasons), 4)
			assert.Equal(t, "Flamengo", analysis.HomeTeam.Name)
			assert.Equal(t, "Botafogo", analysis.AwayTeam.Name)
			assert.Len(t, analysis.HeadToHead.LastFiveResults, 5)
			assert.Len(t, analysis.Suggestions, 3)
		})
	}
}

func TestAnalyzeJSONShape(t *testing.T) {
	env := newTestEnv(t, "test-key", 0, nil)

	rec := env.do(http.MethodPost, "/match-analysis", validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"homeTeam", "awayTeam", "headToHead", "recommendation", "detailedStats"} {
		assert.Contains(t, raw, key)
	}
	recommendation := raw["recommendation"].(map[string]interface{})
	for _, key := range []string{"homeWinProb", "drawProb", "awayWinProb", "winner", "confidence", "reasons", "betRecommendation"} {
		assert.Contains(t, recommendation, key)
	}
	assert.NotContains(t, raw["homeTeam"], "source")
}

func TestAnalyzeMissingAPIKey(t *testing.T) {
	env := newTestEnv(t, "", 0, nil)

	rec := env.do(http.MethodPost, "/match-analysis", validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Football API key not configured", body.Error)
	assert.Equal(t, apiKeyHint, body.Details)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalyzeBadRequests(t *testing.T) {
	env := newTestEnv(t, "test-key", 0, nil)

	tests := []struct {
		name        string
		body        string
		wantError   string
		wantDetails string
	}{
		{"malformed json", `{"league":`, "invalid JSON body", ""},
		{"missing league", `{"homeTeam":"Flamengo","awayTeam":"Botafogo"}`, "invalid analysis request", "league is required"},
		{"same team", `{"league":"Brasileirão Série A","homeTeam":"Gremio","awayTeam":"Grêmio"}`, "invalid analysis request", models.ErrSameTeam.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/match-analysis", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Contains(t, body.Details, tt.wantDetails)
		})
	}
}

func TestAnalyzeBodyTooLarge(t *testing.T) {
	env := newTestEnv(t, "test-key", 16, nil)

	rec := env.do(http.MethodPost, "/match-analysis", validBody)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUpstreamFailureFallsBack(t *testing.T) {
	env := newTestEnv(t, "test-key", 0, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	rec := env.do(http.MethodPost, "/match-analysis", validBody)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Positive(t, atomic.LoadInt32(env.upstreamCalls))

	var analysis models.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.GreaterOrEqual(t, analysis.HomeTeam.Position, 1)
}

func TestPreflight(t *testing.T) {
	env := newTestEnv(t, "test-key", 0, nil)

	for _, path := range []string{"/match-analysis", "/api/v1/leagues", "/anything"} {
		rec := env.do(http.MethodOptions, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Empty(t, rec.Body.String(), path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, corsAllowHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestLeagueEndpoints(t *testing.T) {
	env := newTestEnv(t, "test-key", 0, nil)

	rec := env.do(http.MethodGet, "/api/v1/leagues", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var leagues []LeagueSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leagues))
	require.NotEmpty(t, leagues)

	names := make([]string, 0, len(leagues))
	for _, l := range leagues {
		names = append(names, l.Name)
	}
	assert.Contains(t, names, "Premier League")

	rec = env.do(http.MethodGet, "/api/v1/leagues/Premier%20League/teams", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var league LeagueSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &league))
	assert.Equal(t, "Premier League", league.Name)
	assert.Contains(t, league.Teams, "Arsenal")

	rec = env.do(http.MethodGet, "/api/v1/leagues/Eredivisie/teams", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "Eredivisie")
}

func TestPlansEndpoint(t *testing.T) {
	env := newTestEnv(t, "test-key", 0, nil)

	rec := env.do(http.MethodGet, "/api/v1/plans", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var plans []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 3)
	assert.Equal(t, "Premium", plans[1]["name"])
	assert.Equal(t, "29.9", plans[1]["price"])
	assert.Equal(t, "BRL", plans[1]["currency"])
}

func TestRecentAnalyses(t *testing.T) {
	env := newTestEnv(t, "test-key", 0, nil)

	rec := env.do(http.MethodGet, "/api/v1/analyses/recent", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrHistoryDisabled.Error(), decodeError(t, rec).Error)

	rec = env.do(http.MethodGet, "/api/v1/analyses/recent?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAnalysis(t *testing.T) {
	t.Run("history disabled", func(t *testing.T) {
		env := newTestEnv(t, "test-key", 0, nil)
		rec := env.do(http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, service.ErrHistoryDisabled.Error(), decodeError(t, rec).Error)
	})

	env := newTestEnvWithHistory(t, "test-key", 0, nil, &memoryHistory{})

	rec := env.do(http.MethodPost, "/api/v1/analysis", validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	var analysis models.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))

	t.Run("stored analysis", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/analyses/"+analysis.ID.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)

		var record models.AnalysisRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
		assert.Equal(t, analysis.ID, record.ID)
		assert.Equal(t, "Flamengo", record.HomeTeam)
		assert.Equal(t, analysis.Recommendation.Winner, record.Winner)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, models.ErrNotFound.Error(), decodeError(t, rec).Error)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/analyses/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid analysis id", decodeError(t, rec).Error)
	})

	t.Run("recent still routes", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/analyses/recent", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var records []models.AnalysisRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		assert.Len(t, records, 1)
	})
}

func TestRoutingErrors(t *testing.T) {
	env := newTestEnv(t, "test-key", 0, nil)

	rec := env.do(http.MethodGet, "/match-analysis", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decodeError(t, rec).Error)

	rec = env.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
