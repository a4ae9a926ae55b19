// Package logger provides analysis-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for match analyses.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogAnalysisCompleted logs a finished analysis.
func (al *AnalysisLogger) LogAnalysisCompleted(analysisID, league, homeTeam, awayTeam, winner string, confidence int, tieBreak bool, latencyMs float64) {
	al.WithFields(logrus.Fields{
		"analysis_id": analysisID,
		"league":      league,
		"home_team":   homeTeam,
		"away_team":   awayTeam,
		"winner":      winner,
		"confidence":  confidence,
		"tie_break":   tieBreak,
		"latency_ms":  latencyMs,
	}).Info("Match analysis completed")
}

// LogStatResolved logs where a team's statistics came from.
func (al *AnalysisLogger) LogStatResolved(league, team, source string) {
	al.WithFields(logrus.Fields{
		"league": league,
		"team":   team,
		"source": source,
	}).Debug("Team statistics resolved")
}

// LogUpstreamFailure logs an upstream error that was absorbed by a fallback.
func (al *AnalysisLogger) LogUpstreamFailure(source, league, team, errorCode string, err error) {
	al.WithFields(logrus.Fields{
		"source":     source,
		"league":     league,
		"team":       team,
		"error_code": errorCode,
	}).WithError(err).Warn("Upstream team data unavailable, using fallback")
}

// LogAnalysisError logs an analysis that could not be produced.
func (al *AnalysisLogger) LogAnalysisError(league, homeTeam, awayTeam, reason string, err error) {
	al.WithFields(logrus.Fields{
		"league":    league,
		"home_team": homeTeam,
		"away_team": awayTeam,
		"reason":    reason,
	}).WithError(err).Error("Match analysis failed")
}
