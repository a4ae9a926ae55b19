package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/futurologia/internal/datasource"
	"github.com/yourusername/futurologia/internal/models"
)

// MockRefresher is a mock implementation of StandingsRefresher
type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) RefreshStandings(ctx context.Context, leagueID, season int) ([]datasource.Standing, error) {
	args := m.Called(ctx, leagueID, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datasource.Standing), args.Error(1)
}

func (m *MockRefresher) Season() int {
	return 2024
}

func (m *MockRefresher) IsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func testLeagues() []models.League {
	return []models.League{
		{Name: "Brasileirão Série A", UpstreamID: 71},
		{Name: "Premier League", UpstreamID: 39},
		{Name: "Friendlies"},
	}
}

func TestWarmCache(t *testing.T) {
	logger, hook := test.NewNullLogger()
	refresher := &MockRefresher{}
	refresher.On("IsEnabled").Return(true)
	refresher.On("RefreshStandings", mock.Anything, 71, 2024).Return([]datasource.Standing{}, nil)
	refresher.On("RefreshStandings", mock.Anything, 39, 2024).Return(nil,
		datasource.NewDataSourceError("api_football", datasource.ErrCodeRateLimitExceeded, "too many requests", nil))

	s := NewScheduler(refresher, logger)
	warmed, failed := s.WarmCache(context.Background(), testLeagues())

	assert.Equal(t, 1, warmed)
	assert.Equal(t, 1, failed)
	refresher.AssertNumberOfCalls(t, "RefreshStandings", 2)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Premier League", hook.LastEntry().Data["league"])
}

func TestWarmCache_UpstreamDisabled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	refresher := &MockRefresher{}
	refresher.On("IsEnabled").Return(false)

	s := NewScheduler(refresher, logger)
	warmed, failed := s.WarmCache(context.Background(), testLeagues())

	assert.Zero(t, warmed)
	assert.Zero(t, failed)
	refresher.AssertNotCalled(t, "RefreshStandings", mock.Anything, mock.Anything, mock.Anything)
}

func TestWarmCache_StopsOnCancelledContext(t *testing.T) {
	logger, _ := test.NewNullLogger()
	refresher := &MockRefresher{}
	refresher.On("IsEnabled").Return(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	warmed, failed := NewScheduler(refresher, logger).WarmCache(ctx, testLeagues())
	assert.Zero(t, warmed+failed)
	refresher.AssertNotCalled(t, "RefreshStandings", mock.Anything, mock.Anything, mock.Anything)
}

func TestSchedulerLifecycle(t *testing.T) {
	logger, _ := test.NewNullLogger()
	refresher := &MockRefresher{}
	refresher.On("IsEnabled").Return(false)

	s := NewScheduler(refresher, logger)
	assert.Error(t, s.Start(), "no jobs scheduled")

	assert.Error(t, s.ScheduleCacheWarm("not a schedule", testLeagues()))
	require.NoError(t, s.ScheduleCacheWarm("@every 30m", testLeagues()))
	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleCacheWarm("@every 1h", testLeagues()))

	assert.Eventually(t, func() bool { return !s.GetNextRun().IsZero() }, time.Second, 10*time.Millisecond)
	next := s.GetNextRun()
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), next, time.Minute)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.True(t, s.GetNextRun().IsZero())
	require.NoError(t, s.Stop())
}

func TestWarmCache_ErrorCodeLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	refresher := &MockRefresher{}
	refresher.On("IsEnabled").Return(true)
	refresher.On("RefreshStandings", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: refused"))

	NewScheduler(refresher, logger).WarmCache(context.Background(), testLeagues()[:1])

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, datasource.ErrCodeUnknown, hook.LastEntry().Data["error_code"])
}
