package errors

import (
	"context"
)

// Tracker receives failed market data commands and the steps that led to them.
// The Sentry adapter is the real implementation; noop stands in when tracking is off.
type Tracker interface {
	// CaptureError reports a failed request, tagged with command and host
	CaptureError(ctx context.Context, err error, tags map[string]string) error

	// CaptureMessage reports a non-fatal event, such as a non-2xx exchange status
	CaptureMessage(ctx context.Context, message string, level Level, tags map[string]string) error

	// AddBreadcrumb records the command about to be sent
	AddBreadcrumb(ctx context.Context, message string, category string, level Level, data map[string]interface{})

	// Flush blocks until queued events are delivered or ctx ends
	Flush(ctx context.Context) error
}

// Level is the severity attached to a tracked event
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

func (l Level) String() string {
	return string(l)
}
