// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogConfigLoaded logs the effective configuration at startup. Secrets are
// reported only as present or absent.
func (al *AuditLogger) LogConfigLoaded(environment string, upstreamEnabled, apiKeyPresent, historyEnabled bool) {
	al.WithFields(logrus.Fields{
		"environment":      environment,
		"upstream_enabled": upstreamEnabled,
		"api_key_present":  apiKeyPresent,
		"history_enabled":  historyEnabled,
	}).Info("Configuration loaded")
}

// LogSecretsOverlay logs which configuration keys were overridden by the secrets store.
func (al *AuditLogger) LogSecretsOverlay(secretName string, keys []string) {
	al.WithFields(logrus.Fields{
		"secret_name": secretName,
		"keys":        keys,
	}).Info("Secrets overlaid on configuration")
}

// LogHistoryWriteFailure logs an analysis that could not be stored.
func (al *AuditLogger) LogHistoryWriteFailure(analysisID string, err error) {
	al.WithFields(logrus.Fields{
		"analysis_id": analysisID,
	}).WithError(err).Error("Failed to record analysis history")
}

// LogCircuitBreakerEvent logs circuit breaker events.
func (al *AuditLogger) LogCircuitBreakerEvent(eventType, source, reason string) {
	al.WithFields(logrus.Fields{
		"event_type": eventType,
		"source":     source,
		"reason":     reason,
	}).Warn("Circuit breaker event")
}
