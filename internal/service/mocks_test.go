package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/futurologia/internal/models"
)

// MockStatResolver is a mock implementation of StatResolver
type MockStatResolver struct {
	mock.Mock
}

func (m *MockStatResolver) Resolve(ctx context.Context, league, team string) *models.TeamStat {
	args := m.Called(ctx, league, team)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.TeamStat)
}

// MockAnalysisRepository is a mock implementation of repository.AnalysisRepository
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Save(ctx context.Context, record *models.AnalysisRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisRepository) ListRecent(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisRepository) CountByLeague(ctx context.Context, league string) (int, error) {
	args := m.Called(ctx, league)
	return args.Int(0), args.Error(1)
}

// sequenceRandomizer replays fixed values, clamped into [0, n)
type sequenceRandomizer struct {
	values []int
	pos    int
}

func (s *sequenceRandomizer) Intn(n int) int {
	if n <= 0 || len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	if v >= n {
		v = n - 1
	}
	return v
}
