package models

import "errors"

// Custom errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrTeamNameRequired  = errors.New("team name is required")
	ErrSameTeam          = errors.New("home and away teams must differ")
	ErrInvalidPosition   = errors.New("table position must be at least 1")
	ErrNegativeStatistic = errors.New("statistics cannot be negative")
	ErrInvalidStrength   = errors.New("strength must be within [0, 1]")
)
