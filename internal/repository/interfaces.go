package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/futurologia/internal/models"
)

// AnalysisRepository defines the interface for analysis history access
type AnalysisRepository interface {
	Save(ctx context.Context, record *models.AnalysisRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*models.AnalysisRecord, error)
	CountByLeague(ctx context.Context, league string) (int, error)
}
