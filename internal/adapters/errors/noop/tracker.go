package noop

import (
	"context"

	"marketdata/pkg/errors"
)

// Tracker drops every event. main falls back to it when ERROR_TRACKING_ENABLED
// is false or SENTRY_DSN is empty, and the CLI runner uses it when given no tracker.
type Tracker struct{}

func New() *Tracker {
	return &Tracker{}
}

func (t *Tracker) CaptureError(ctx context.Context, err error, tags map[string]string) error {
	return nil
}

func (t *Tracker) CaptureMessage(ctx context.Context, message string, level errors.Level, tags map[string]string) error {
	return nil
}

func (t *Tracker) AddBreadcrumb(ctx context.Context, message string, category string, level errors.Level, data map[string]interface{}) {
}

func (t *Tracker) Flush(ctx context.Context) error {
	return nil
}
