package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/futurologia/internal/database"
	"github.com/yourusername/futurologia/internal/models"
)

// MaxListLimit caps how many rows ListRecent returns
const MaxListLimit = 100

const analysisColumns = `id, league, home_team, away_team, home_win_prob, draw_prob,
	away_win_prob, winner, confidence, created_at`

// PostgresAnalysisRepository implements AnalysisRepository for PostgreSQL
type PostgresAnalysisRepository struct {
	db *database.DB
}

// NewPostgresAnalysisRepository creates a new analysis repository
func NewPostgresAnalysisRepository(db *database.DB) AnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

// Save inserts an analysis summary
func (r *PostgresAnalysisRepository) Save(ctx context.Context, record *models.AnalysisRecord) error {
	query := `
		INSERT INTO analyses (` + analysisColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if record.HomeTeam == "" || record.AwayTeam == "" {
		return models.ErrTeamNameRequired
	}

	_, err := r.db.GetPool().Exec(ctx, query,
		record.ID, record.League, record.HomeTeam, record.AwayTeam,
		record.HomeWinProb, record.DrawProb, record.AwayWinProb,
		record.Winner, record.Confidence, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// GetByID retrieves an analysis summary by ID
func (r *PostgresAnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = $1`

	record, err := scanRecord(r.db.GetPool().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return record, nil
}

// ListRecent returns the newest summaries first
func (r *PostgresAnalysisRepository) ListRecent(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	query := `
		SELECT ` + analysisColumns + `
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []*models.AnalysisRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}

	return records, nil
}

// CountByLeague returns how many analyses were stored for a league
func (r *PostgresAnalysisRepository) CountByLeague(ctx context.Context, league string) (int, error) {
	var count int
	err := r.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM analyses WHERE league = $1`, league).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

// ClampLimit maps a requested page size into [1, MaxListLimit]
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func scanRecord(row pgx.Row) (*models.AnalysisRecord, error) {
	record := &models.AnalysisRecord{}
	err := row.Scan(
		&record.ID, &record.League, &record.HomeTeam, &record.AwayTeam,
		&record.HomeWinProb, &record.DrawProb, &record.AwayWinProb,
		&record.Winner, &record.Confidence, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}
