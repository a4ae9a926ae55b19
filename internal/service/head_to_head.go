package service

import (
	"time"

	"github.com/yourusername/futurologia/internal/models"
)

const (
	headToHeadMeetings = 5
	headToHeadGapDays  = 90
	headToHeadDate     = "2006-01-02"
)

// Randomizer yields uniform ints in [0, n)
type Randomizer interface {
	Intn(n int) int
}

// GenerateHeadToHead fabricates the last meetings between two teams. Home
// wins come first, then away wins, then draws; each meeting is dated 90 days
// before the previous one.
func GenerateHeadToHead(rng Randomizer, homeTeam, awayTeam string, now time.Time) models.HeadToHead {
	homeWins := rng.Intn(3) + 1
	awayWins := rng.Intn(3) + 1
	if homeWins+awayWins > headToHeadMeetings {
		awayWins = headToHeadMeetings - homeWins
	}
	draws := headToHeadMeetings - homeWins - awayWins

	results := make([]models.HeadToHeadResult, 0, headToHeadMeetings)
	for i := 0; i < headToHeadMeetings; i++ {
		result := models.HeadToHeadResult{
			Date: now.UTC().AddDate(0, 0, -headToHeadGapDays*i).Format(headToHeadDate),
		}

		switch {
		case i < homeWins:
			result.Winner = homeTeam
			result.HomeGoals, result.AwayGoals = winningScore(rng)
		case i < homeWins+awayWins:
			result.Winner = awayTeam
			result.AwayGoals, result.HomeGoals = winningScore(rng)
		default:
			result.Winner = models.DrawLabel
			goals := rng.Intn(2)
			result.HomeGoals, result.AwayGoals = goals, goals
		}

		results = append(results, result)
	}

	return models.HeadToHead{
		HomeWins:        homeWins,
		AwayWins:        awayWins,
		Draws:           draws,
		LastFiveResults: results,
	}
}

// winningScore returns winner goals in [1,3] and loser goals in [0,1],
// always strictly fewer than the winner's
func winningScore(rng Randomizer) (winner, loser int) {
	winner = rng.Intn(3) + 1
	loser = rng.Intn(winner)
	if loser > 1 {
		loser = 1
	}
	return winner, loser
}
