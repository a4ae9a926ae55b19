// Package tracing provides AWS X-Ray distributed tracing integration.
package tracing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-xray-sdk-go/strategy/sampling"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/aws/aws-xray-sdk-go/xraylog"
	"github.com/sirupsen/logrus"
)

// Config contains X-Ray configuration.
type Config struct {
	ServiceName  string
	Enabled      bool
	SamplingRate float64
	DaemonAddr   string
}

// Logger adapter for X-Ray SDK.
type xrayLoggerAdapter struct {
	logger logrus.FieldLogger
}

func (l *xrayLoggerAdapter) Log(level xraylog.LogLevel, msg fmt.Stringer) {
	switch level {
	case xraylog.LogLevelDebug:
		l.logger.Debug(msg.String())
	case xraylog.LogLevelInfo:
		l.logger.Info(msg.String())
	case xraylog.LogLevelWarn:
		l.logger.Warn(msg.String())
	case xraylog.LogLevelError:
		l.logger.Error(msg.String())
	}
}

// samplingRules builds a local rule set sampling the first request each
// second plus the given fraction of the rest
func samplingRules(rate float64) []byte {
	return []byte(fmt.Sprintf(`{"version": 2, "default": {"fixed_target": 1, "rate": %g}, "rules": []}`, rate))
}

// Initialize configures AWS X-Ray. It is a no-op when tracing is disabled.
func Initialize(cfg Config, logger logrus.FieldLogger) error {
	if !cfg.Enabled {
		return nil
	}

	strategy, err := sampling.NewLocalizedStrategyFromJSONBytes(samplingRules(cfg.SamplingRate))
	if err != nil {
		return fmt.Errorf("invalid X-Ray sampling rate %v: %w", cfg.SamplingRate, err)
	}

	xray.SetLogger(&xrayLoggerAdapter{logger: logger.WithField("component", "xray")})

	if err := xray.Configure(xray.Config{
		DaemonAddr:       cfg.DaemonAddr,
		SamplingStrategy: strategy,
	}); err != nil {
		return fmt.Errorf("failed to configure X-Ray: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"daemon_addr":   cfg.DaemonAddr,
		"sampling_rate": cfg.SamplingRate,
		"service_name":  cfg.ServiceName,
	}).Info("AWS X-Ray initialized")

	return nil
}

// Middleware opens a segment per request when tracing is enabled
func Middleware(cfg Config, next http.Handler) http.Handler {
	if !cfg.Enabled {
		return next
	}
	return xray.Handler(xray.NewFixedSegmentNamer(cfg.ServiceName), next)
}

// Trace runs fn inside a subsegment. Without a segment in ctx, fn runs
// untraced.
func Trace(ctx context.Context, name string, fn func(context.Context) error) error {
	if xray.GetSegment(ctx) == nil {
		return fn(ctx)
	}
	return xray.Capture(ctx, name, fn)
}

// AddAnnotation adds an indexed annotation to the current segment.
func AddAnnotation(ctx context.Context, key string, value interface{}) {
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddAnnotation(key, value)
	}
}

// AddError records an error on the current segment.
func AddError(ctx context.Context, err error) {
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddError(err)
	}
}
