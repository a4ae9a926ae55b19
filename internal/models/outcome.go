package models

// Side identifies one of the two teams in a fixture
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// OutcomeDistribution is the three-way result of the outcome scorer.
// HomeWinProb + DrawProb + AwayWinProb is always exactly 100.
type OutcomeDistribution struct {
	HomeWinProb int    `json:"homeWinProb"`
	DrawProb    int    `json:"drawProb"`
	AwayWinProb int    `json:"awayWinProb"`
	Winner      string `json:"winner"`
	WinnerSide  Side   `json:"winnerSide"`
	Confidence  int    `json:"confidence"`
	// TieBreak is set when the winner was chosen by table position or home
	// advantage instead of being the strictly most likely outcome
	TieBreak bool `json:"tieBreak"`
}

// Total returns the sum of the three probabilities
func (o *OutcomeDistribution) Total() int {
	return o.HomeWinProb + o.DrawProb + o.AwayWinProb
}

// WinnerProb returns the probability of the designated winner's side
func (o *OutcomeDistribution) WinnerProb() int {
	if o.WinnerSide == SideAway {
		return o.AwayWinProb
	}
	return o.HomeWinProb
}
