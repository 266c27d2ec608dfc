package notifier

import (
	"context"
)

// Notifier represents a channel alerts are delivered to
type Notifier interface {
	// Notify delivers an HTML-formatted alert message
	Notify(ctx context.Context, text string) error

	// Name returns the channel name for logging and metrics
	Name() string
}

// Closer is implemented by notifiers holding connections
type Closer interface {
	Close() error
}

// Configurable is implemented by notifiers that may lack credentials.
// An unconfigured notifier accepts messages without delivering them.
type Configurable interface {
	Configured() bool
}
