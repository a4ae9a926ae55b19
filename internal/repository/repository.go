package repository

import (
	"fmt"

	"github.com/yourusername/futurologia/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Analysis AnalysisRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Analysis: NewPostgresAnalysisRepository(db),
	}, nil
}
