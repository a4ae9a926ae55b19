package scoring

import (
	"errors"
	"fmt"
)

// SideWeights are the linear coefficients applied to one side's statistics
type SideWeights struct {
	Wins        float64 `mapstructure:"wins" validate:"gte=0"`
	Goals       float64 `mapstructure:"goals" validate:"gte=0"`
	Position    float64 `mapstructure:"position" validate:"gte=0"`
	Corners     float64 `mapstructure:"corners" validate:"gte=0"`
	YellowCards float64 `mapstructure:"yellow_cards" validate:"gte=0"`
	RedCards    float64 `mapstructure:"red_cards" validate:"gte=0"`
	Strength    float64 `mapstructure:"strength" validate:"gte=0"`
	Points      float64 `mapstructure:"points" validate:"gte=0"`
}

// Weights holds every constant of the outcome scorer
type Weights struct {
	Home SideWeights `mapstructure:"home"`
	Away SideWeights `mapstructure:"away"`

	// Inverse terms are max(0, base - value)
	PositionBase  int `mapstructure:"position_base" validate:"gte=1"`
	YellowCeiling int `mapstructure:"yellow_ceiling" validate:"gte=0"`
	RedCeiling    int `mapstructure:"red_ceiling" validate:"gte=0"`

	HomeAdvantage float64 `mapstructure:"home_advantage" validate:"gte=0"`

	DrawMin    int     `mapstructure:"draw_min" validate:"gte=0,lte=100"`
	DrawMax    int     `mapstructure:"draw_max" validate:"gte=0,lte=100"`
	DrawSpread float64 `mapstructure:"draw_spread" validate:"gte=0"`

	MaxConfidence      int `mapstructure:"max_confidence" validate:"gte=0,lte=100"`
	FallbackConfidence int `mapstructure:"fallback_confidence" validate:"gte=0,lte=100"`
	MaxReasons         int `mapstructure:"max_reasons" validate:"gte=2"`
}

// DefaultWeights returns the stock scorer constants. Away factors are weighted
// slightly higher to offset the flat home advantage.
func DefaultWeights() Weights {
	return Weights{
		Home: SideWeights{
			Wins:        4,
			Goals:       2,
			Position:    3,
			Corners:     0.5,
			YellowCards: 1,
			RedCards:    2,
			Strength:    20,
			Points:      0.5,
		},
		Away: SideWeights{
			Wins:        5,
			Goals:       2.5,
			Position:    3,
			Corners:     0.5,
			YellowCards: 1,
			RedCards:    2,
			Strength:    20,
			Points:      0.5,
		},
		PositionBase:       20,
		YellowCeiling:      25,
		RedCeiling:         8,
		HomeAdvantage:      0.12,
		DrawMin:            18,
		DrawMax:            32,
		DrawSpread:         0.5,
		MaxConfidence:      95,
		FallbackConfidence: 75,
		MaxReasons:         4,
	}
}

var errNegativeWeight = errors.New("weights cannot be negative")

// Validate rejects weight sets the scorer cannot work with
func (w Weights) Validate() error {
	if w.Home.hasNegative() {
		return fmt.Errorf("home: %w", errNegativeWeight)
	}
	if w.Away.hasNegative() {
		return fmt.Errorf("away: %w", errNegativeWeight)
	}
	if w.HomeAdvantage < 0 || w.DrawSpread < 0 {
		return errNegativeWeight
	}
	if w.PositionBase < 1 {
		return fmt.Errorf("position base must be at least 1, got %d", w.PositionBase)
	}
	if w.YellowCeiling < 0 || w.RedCeiling < 0 {
		return fmt.Errorf("card ceilings cannot be negative")
	}
	if w.DrawMin < 0 || w.DrawMax > 100 || w.DrawMin > w.DrawMax {
		return fmt.Errorf("invalid draw range [%d, %d]", w.DrawMin, w.DrawMax)
	}
	if w.MaxConfidence < 0 || w.MaxConfidence > 100 || w.FallbackConfidence < 0 || w.FallbackConfidence > 100 {
		return fmt.Errorf("confidence caps must be within [0, 100]")
	}
	if w.MaxReasons < 2 {
		return fmt.Errorf("max reasons must be at least 2, got %d", w.MaxReasons)
	}
	return nil
}

func (s SideWeights) hasNegative() bool {
	return s.Wins < 0 || s.Goals < 0 || s.Position < 0 || s.Corners < 0 ||
		s.YellowCards < 0 || s.RedCards < 0 || s.Strength < 0 || s.Points < 0
}
