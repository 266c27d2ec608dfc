package crawler

import (
	"context"
	"time"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/internal/jackpot"
)

// Jackpot is the outcome of fetching one target
type Jackpot struct {
	Target   config.Target
	Amount   int64
	Found    bool
	Tier     jackpot.Tier
	Err      error
	Duration time.Duration
}

// Launcher starts a browser engine
type Launcher interface {
	// Launch starts a browser for one cycle
	Launch(ctx context.Context) (Browser, error)

	// Name returns the engine name for logging and metrics
	Name() string
}

// Browser is a running engine instance shared by all targets of a cycle
type Browser interface {
	// NewPage opens a page in a fresh isolated context
	NewPage(ctx context.Context) (Page, error)

	// Close shuts the browser down
	Close() error
}

// Page is a single tab. It can be queried once Navigate succeeds.
type Page interface {
	jackpot.Document

	// Navigate loads url and waits for the network to go idle
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// Scroll moves the viewport down to trigger lazily loaded content
	Scroll(ctx context.Context) error

	// Close releases the page and its context
	Close() error
}

// scrollScript scrolls to one third of the document height
const scrollScript = `() => window.scrollTo(0, Math.floor(document.body.scrollHeight / 3))`
