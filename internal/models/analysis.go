package models

import (
	"time"

	"github.com/google/uuid"
)

// HomeTeamSummary is the home side as shown to clients
type HomeTeamSummary struct {
	Name        string `json:"name"`
	Position    int    `json:"position"`
	HomeWins    int    `json:"homeWins"`
	HomeGoals   int    `json:"homeGoals"`
	Corners     int    `json:"corners"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
}

// AwayTeamSummary is the away side as shown to clients
type AwayTeamSummary struct {
	Name        string `json:"name"`
	Position    int    `json:"position"`
	AwayWins    int    `json:"awayWins"`
	AwayGoals   int    `json:"awayGoals"`
	Corners     int    `json:"corners"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
}

// HeadToHeadResult is one fabricated past meeting
type HeadToHeadResult struct {
	Date      string `json:"date"`
	HomeGoals int    `json:"homeGoals"`
	AwayGoals int    `json:"awayGoals"`
	Winner    string `json:"winner"`
}

// DrawLabel is the winner value of a drawn head-to-head result
const DrawLabel = "Draw"

// HeadToHead summarises the fabricated meetings between two teams
type HeadToHead struct {
	HomeWins        int                `json:"homeWins"`
	AwayWins        int                `json:"awayWins"`
	Draws           int                `json:"draws"`
	LastFiveResults []HeadToHeadResult `json:"lastFiveResults"`
}

// Recommendation is the scorer output plus its narrative
type Recommendation struct {
	OutcomeDistribution
	Reasons           []string `json:"reasons"`
	BetRecommendation string   `json:"betRecommendation"`
}

// TablePosition pairs the two league positions
type TablePosition struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// DetailedStats is the combined statistics block
type DetailedStats struct {
	HomeWins      int           `json:"homeWins"`
	AwayWins      int           `json:"awayWins"`
	HomeGoals     int           `json:"homeGoals"`
	AwayGoals     int           `json:"awayGoals"`
	Corners       float64       `json:"corners"`
	YellowCards   float64       `json:"yellowCards"`
	RedCards      float64       `json:"redCards"`
	TablePosition TablePosition `json:"tablePosition"`
}

// Analysis is the full response of a match analysis
type Analysis struct {
	ID             uuid.UUID       `json:"id"`
	League         string          `json:"league"`
	HomeTeam       HomeTeamSummary `json:"homeTeam"`
	AwayTeam       AwayTeamSummary `json:"awayTeam"`
	HeadToHead     HeadToHead      `json:"headToHead"`
	Recommendation Recommendation  `json:"recommendation"`
	DetailedStats  DetailedStats   `json:"detailedStats"`
	Suggestions    []BetSuggestion `json:"suggestions"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// AnalysisRecord is the persisted summary of an analysis
type AnalysisRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	League      string    `db:"league" json:"league"`
	HomeTeam    string    `db:"home_team" json:"homeTeam"`
	AwayTeam    string    `db:"away_team" json:"awayTeam"`
	HomeWinProb int       `db:"home_win_prob" json:"homeWinProb"`
	DrawProb    int       `db:"draw_prob" json:"drawProb"`
	AwayWinProb int       `db:"away_win_prob" json:"awayWinProb"`
	Winner      string    `db:"winner" json:"winner"`
	Confidence  int       `db:"confidence" json:"confidence"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// NewAnalysisRecord builds the persisted summary of an analysis
func NewAnalysisRecord(a *Analysis) *AnalysisRecord {
	rec := a.Recommendation
	return &AnalysisRecord{
		ID:          a.ID,
		League:      a.League,
		HomeTeam:    a.HomeTeam.Name,
		AwayTeam:    a.AwayTeam.Name,
		HomeWinProb: rec.HomeWinProb,
		DrawProb:    rec.DrawProb,
		AwayWinProb: rec.AwayWinProb,
		Winner:      rec.Winner,
		Confidence:  rec.Confidence,
		CreatedAt:   a.GeneratedAt,
	}
}
