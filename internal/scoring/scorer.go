// Package scoring turns a pair of team statistics into a three-way outcome
// distribution and the reasons behind it.
package scoring

import (
	"fmt"
	"math"

	"github.com/yourusername/futurologia/internal/models"
)

// Result is the output of a single scoring run
type Result struct {
	Distribution models.OutcomeDistribution
	Reasons      []string
}

// Scorer computes outcome distributions. It holds no mutable state and is
// safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with validated weights
func NewScorer(weights Weights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring weights: %w", err)
	}
	return &Scorer{weights: weights}, nil
}

// NewDefaultScorer creates a scorer with DefaultWeights
func NewDefaultScorer() *Scorer {
	return &Scorer{weights: DefaultWeights()}
}

// Score computes the outcome distribution and justification for a fixture.
// Identical inputs always yield identical output.
func (s *Scorer) Score(home, away *models.TeamStat) Result {
	homeScore := s.HomeScore(home)
	awayScore := s.AwayScore(away)

	dist := s.distribute(homeScore, awayScore)
	s.pickWinner(&dist, home, away)

	return Result{
		Distribution: dist,
		Reasons:      buildReasons(home, away, dist.WinnerSide, s.weights.MaxReasons),
	}
}

// HomeScore returns the weighted score of the home side, home advantage included
func (s *Scorer) HomeScore(t *models.TeamStat) float64 {
	raw := s.linear(s.weights.Home, t.HomeWins, t.HomeGoals, t)
	return raw * (1 + s.weights.HomeAdvantage)
}

// AwayScore returns the weighted score of the away side
func (s *Scorer) AwayScore(t *models.TeamStat) float64 {
	return s.linear(s.weights.Away, t.AwayWins, t.AwayGoals, t)
}

func (s *Scorer) linear(w SideWeights, wins, goals int, t *models.TeamStat) float64 {
	return w.Wins*float64(wins) +
		w.Goals*float64(goals) +
		w.Position*float64(inverse(s.weights.PositionBase, t.Position)) +
		w.Corners*float64(t.Corners) +
		w.YellowCards*float64(inverse(s.weights.YellowCeiling, t.YellowCards)) +
		w.RedCards*float64(inverse(s.weights.RedCeiling, t.RedCards)) +
		w.Strength*t.StrengthOrZero() +
		w.Points*float64(t.PointsOrZero())
}

func inverse(base, value int) int {
	if value >= base {
		return 0
	}
	return base - value
}

// distribute turns two raw scores into percentages summing to exactly 100
func (s *Scorer) distribute(homeScore, awayScore float64) models.OutcomeDistribution {
	homeScore = math.Max(0, homeScore)
	awayScore = math.Max(0, awayScore)

	homeShare, awayShare := 50.0, 50.0
	total := homeScore + awayScore
	if total > 0 && !math.IsInf(total, 0) && !math.IsNaN(total) {
		homeShare = homeScore / total * 100
		awayShare = 100 - homeShare
	}

	draw := int(math.Round(float64(s.weights.DrawMax) - math.Abs(homeShare-awayShare)*s.weights.DrawSpread))
	if draw < s.weights.DrawMin {
		draw = s.weights.DrawMin
	}
	if draw > s.weights.DrawMax {
		draw = s.weights.DrawMax
	}

	remaining := 100 - draw
	homeProb := int(math.Floor(homeShare * float64(remaining) / 100))
	awayProb := int(math.Floor(awayShare * float64(remaining) / 100))
	leftover := remaining - homeProb - awayProb
	if homeProb >= awayProb {
		homeProb += leftover
	} else {
		awayProb += leftover
	}

	return models.OutcomeDistribution{
		HomeWinProb: homeProb,
		DrawProb:    draw,
		AwayWinProb: awayProb,
	}
}

func (s *Scorer) pickWinner(dist *models.OutcomeDistribution, home, away *models.TeamStat) {
	h, d, a := dist.HomeWinProb, dist.DrawProb, dist.AwayWinProb

	switch {
	case h > d && h > a:
		dist.WinnerSide = models.SideHome
		dist.Confidence = minInt(s.weights.MaxConfidence, h+(h-maxInt(d, a)))
	case a > d && a > h:
		dist.WinnerSide = models.SideAway
		dist.Confidence = minInt(s.weights.MaxConfidence, a+(a-maxInt(d, h)))
	default:
		// Draw is the most likely outcome or home and away are level
		dist.TieBreak = true
		if away.Position < home.Position {
			dist.WinnerSide = models.SideAway
		} else {
			dist.WinnerSide = models.SideHome
		}
		dist.Confidence = minInt(s.weights.FallbackConfidence, absInt(h-a)+50)
	}

	if dist.WinnerSide == models.SideAway {
		dist.Winner = away.Name
	} else {
		dist.Winner = home.Name
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
