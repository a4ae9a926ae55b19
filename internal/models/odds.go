package models

import (
	"github.com/shopspring/decimal"
)

// Market names used by bet suggestions
const (
	MarketMatchResult = "MATCH_RESULT"
	MarketTotalGoals  = "TOTAL_GOALS"
	MarketCorners     = "TOTAL_CORNERS"
)

// BetSuggestion is a canned betting tip derived from an analysis
type BetSuggestion struct {
	Market      string          `json:"market"`
	Selection   string          `json:"selection"`
	Probability int             `json:"probability"`
	FairOdds    decimal.Decimal `json:"fairOdds"`
	Rationale   string          `json:"rationale"`
}

// FairOdds converts a percentage probability into margin-free decimal odds,
// rounded to two places. A non-positive probability yields zero.
func FairOdds(probability int) decimal.Decimal {
	if probability <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(100).DivRound(decimal.NewFromInt(int64(probability)), 2)
}
