package service

import (
	"fmt"
	"math"

	"github.com/yourusername/futurologia/internal/models"
)

const (
	// season figures are counted over the matches a side plays at its venue
	matchesPerVenue = 19

	goalsLine       = 2.5
	goalsLineScale  = 20.0
	cornersLine     = 9.5
	cornersScale    = 6.0
	maxLineProb     = 85
	matchResultNote = "Most likely result on current form"
	tieBreakNote    = "Chosen on table position, the probabilities are level"
)

// BuildSuggestions derives canned market tips from the scorer output and the
// two teams' figures
func BuildSuggestions(home, away *models.TeamStat, dist models.OutcomeDistribution) []models.BetSuggestion {
	matchNote := matchResultNote
	if dist.TieBreak {
		matchNote = tieBreakNote
	}

	winnerProb := dist.WinnerProb()
	suggestions := []models.BetSuggestion{
		{
			Market:      models.MarketMatchResult,
			Selection:   dist.Winner,
			Probability: winnerProb,
			FairOdds:    models.FairOdds(winnerProb),
			Rationale:   matchNote,
		},
	}

	expectedGoals := perMatch(home.HomeGoals) + perMatch(away.AwayGoals)
	suggestions = append(suggestions, lineSuggestion(
		models.MarketTotalGoals, "goals", expectedGoals, goalsLine, goalsLineScale,
	))

	expectedCorners := perMatch(home.Corners) + perMatch(away.Corners)
	suggestions = append(suggestions, lineSuggestion(
		models.MarketCorners, "corners", expectedCorners, cornersLine, cornersScale,
	))

	return suggestions
}

func lineSuggestion(market, unit string, expected, line, scale float64) models.BetSuggestion {
	side := "Over"
	if expected < line {
		side = "Under"
	}

	prob := 50 + int(math.Round(math.Abs(expected-line)*scale))
	if prob > maxLineProb {
		prob = maxLineProb
	}

	return models.BetSuggestion{
		Market:      market,
		Selection:   fmt.Sprintf("%s %.1f", side, line),
		Probability: prob,
		FairOdds:    models.FairOdds(prob),
		Rationale:   fmt.Sprintf("Expected %.1f %s per match from season rates", expected, unit),
	}
}

func perMatch(total int) float64 {
	return float64(total) / matchesPerVenue
}
