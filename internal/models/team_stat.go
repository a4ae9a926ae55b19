package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StatSource records where a TeamStat came from. It is never sent to clients.
type StatSource string

const (
	// SourceUpstream means the figures came from the team-data API
	SourceUpstream StatSource = "upstream"
	// SourceStatic means the team was found in the embedded catalog
	SourceStatic StatSource = "static"
	// SourceSynthetic means the team was unknown and its figures were generated
	SourceSynthetic StatSource = "synthetic"
)

// TeamStat holds the per-team inputs of the outcome scorer
type TeamStat struct {
	Name        string     `json:"name" validate:"required"`
	Position    int        `json:"position" validate:"gte=1"`
	HomeWins    int        `json:"homeWins" validate:"gte=0"`
	AwayWins    int        `json:"awayWins" validate:"gte=0"`
	HomeGoals   int        `json:"homeGoals" validate:"gte=0"`
	AwayGoals   int        `json:"awayGoals" validate:"gte=0"`
	Corners     int        `json:"corners" validate:"gte=0"`
	YellowCards int        `json:"yellowCards" validate:"gte=0"`
	RedCards    int        `json:"redCards" validate:"gte=0"`
	Strength    *float64   `json:"strength,omitempty" validate:"omitempty,gte=0,lte=1"`
	Points      *int       `json:"points,omitempty" validate:"omitempty,gte=0"`
	Source      StatSource `json:"-"`
}

var statValidator = validator.New()

// Validate runs the struct rules and reports the first failure as one of the
// package sentinel errors
func (t *TeamStat) Validate() error {
	err := statValidator.Struct(t)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid team stat: %w", err)
	}

	fe := fieldErrs[0]
	var sentinel error
	switch fe.Field() {
	case "Name":
		sentinel = ErrTeamNameRequired
	case "Position":
		sentinel = ErrInvalidPosition
	case "Strength":
		sentinel = ErrInvalidStrength
	default:
		sentinel = ErrNegativeStatistic
	}
	return fmt.Errorf("%w: %s failed %s", sentinel, fe.Field(), fe.Tag())
}

// StrengthOrZero returns the derived strength score, or 0 when unknown
func (t *TeamStat) StrengthOrZero() float64 {
	if t.Strength == nil {
		return 0
	}
	return *t.Strength
}

// PointsOrZero returns the league points, or 0 when unknown
func (t *TeamStat) PointsOrZero() int {
	if t.Points == nil {
		return 0
	}
	return *t.Points
}
