package scoring

import (
	"fmt"
	"sort"

	"github.com/yourusername/futurologia/internal/models"
)

// reason is a candidate justification with its relative magnitude
type reason struct {
	text      string
	magnitude float64
}

// buildReasons cites the largest differentials in the winner's favour,
// ranked by relative size and capped at limit. The list is padded with
// generic lines so it always has at least two entries.
func buildReasons(home, away *models.TeamStat, winnerSide models.Side, limit int) []string {
	winner, loser := home, away
	winnerGoals, loserGoals := home.HomeGoals, away.AwayGoals
	winnerVenue, loserVenue := "at home", "away"
	if winnerSide == models.SideAway {
		winner, loser = away, home
		winnerGoals, loserGoals = away.AwayGoals, home.HomeGoals
		winnerVenue, loserVenue = "away", "at home"
	}

	var candidates []reason

	if winner.Position < loser.Position {
		gap := loser.Position - winner.Position
		candidates = append(candidates, reason{
			text: fmt.Sprintf("%s sits %s in the table, %d %s above %s (%s)",
				winner.Name, ordinal(winner.Position), gap, plural(gap, "place", "places"),
				loser.Name, ordinal(loser.Position)),
			magnitude: relative(loser.Position, winner.Position),
		})
	}

	if winnerGoals > loserGoals {
		candidates = append(candidates, reason{
			text: fmt.Sprintf("%s scored %d goals %s against %d %s for %s",
				winner.Name, winnerGoals, winnerVenue, loserGoals, loserVenue, loser.Name),
			magnitude: relative(winnerGoals, loserGoals),
		})
	}

	winnerCards := disciplineScore(winner)
	loserCards := disciplineScore(loser)
	if winnerCards < loserCards {
		candidates = append(candidates, reason{
			text: fmt.Sprintf("%s is more disciplined: %d yellow and %d red cards against %d yellow and %d red for %s",
				winner.Name, winner.YellowCards, winner.RedCards, loser.YellowCards, loser.RedCards, loser.Name),
			magnitude: relative(loserCards, winnerCards),
		})
	}

	if winner.Corners > loser.Corners {
		candidates = append(candidates, reason{
			text: fmt.Sprintf("%s earned %d corners against %d for %s",
				winner.Name, winner.Corners, loser.Corners, loser.Name),
			magnitude: relative(winner.Corners, loser.Corners),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].magnitude > candidates[j].magnitude
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	reasons := make([]string, 0, limit)
	for _, c := range candidates {
		reasons = append(reasons, c.text)
	}

	fallbacks := []string{
		venueRecord(winner, winnerSide),
		fmt.Sprintf("%s and %s look evenly matched, expect a tight contest", home.Name, away.Name),
	}
	for _, f := range fallbacks {
		if len(reasons) >= 2 {
			break
		}
		reasons = append(reasons, f)
	}

	return reasons
}

func venueRecord(winner *models.TeamStat, side models.Side) string {
	if side == models.SideAway {
		return fmt.Sprintf("%s has %d wins away from home", winner.Name, winner.AwayWins)
	}
	return fmt.Sprintf("%s has %d wins at home", winner.Name, winner.HomeWins)
}

// disciplineScore weighs a red card as three yellows
func disciplineScore(t *models.TeamStat) int {
	return t.YellowCards + 3*t.RedCards
}

// relative returns (larger - smaller) / larger, or 0 when larger is not positive
func relative(larger, smaller int) float64 {
	if larger <= 0 {
		return 0
	}
	return float64(larger-smaller) / float64(larger)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
