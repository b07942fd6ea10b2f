// Package errreport forwards unexpected failures to Sentry. With an empty
// DSN every call is a no-op, so callers never need to check configuration.
package errreport

import (
	"context"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/config"
	"github.com/getsentry/sentry-go"
)

func Init(app config.AppConfig, cfg config.SentryConfig) error {
	if cfg.DSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      app.Environment,
		Release:          app.Name + "@" + app.Version,
		EnableTracing:    cfg.TracesSampleRate > 0,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return fmt.Errorf("initialising sentry: %w", err)
	}
	return nil
}

// Capture reports err with the request id attached when one is known.
func Capture(ctx context.Context, err error, requestID string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if requestID != "" {
			scope.SetTag("request_id", requestID)
		}
		hub.CaptureException(err)
	})
}

// Recover reports a recovered panic value.
func Recover(ctx context.Context, v any, requestID string) {
	hub := sentry.CurrentHub().Clone()
	if requestID != "" {
		hub.Scope().SetTag("request_id", requestID)
	}
	hub.RecoverWithContext(ctx, v)
}

func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
