package crawler

import (
	"context"
	"fmt"
	"time"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/internal/jackpot"
	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/pkg/errors"
)

// Options tune page loading
type Options struct {
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
}

// Fetcher loads targets one after another in a browser launched per call
type Fetcher struct {
	launcher Launcher
	opts     Options
	log      *logger.Logger
}

// NewFetcher creates a fetcher over the given engine
func NewFetcher(launcher Launcher, opts Options, log *logger.Logger) *Fetcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Fetcher{launcher: launcher, opts: opts, log: log.WithStr("engine", launcher.Name())}
}

// Engine returns the engine name
func (f *Fetcher) Engine() string {
	return f.launcher.Name()
}

// FetchAll returns one Jackpot per target, in target order. Failures never
// abort the cycle; they show up as jackpots without an amount.
func (f *Fetcher) FetchAll(ctx context.Context, targets []config.Target) []Jackpot {
	results := make([]Jackpot, 0, len(targets))
	if len(targets) == 0 {
		return results
	}

	browser, err := f.launch(ctx)
	if err != nil {
		f.log.Error().Err(err).Msg("Failed to launch browser")
		for _, t := range targets {
			results = append(results, Jackpot{Target: t, Err: errors.NewBrowser(t.Name, "launch failed", err)})
		}
		return results
	}
	defer func() {
		if err := browser.Close(); err != nil {
			f.log.Warn().Err(err).Msg("Failed to close browser")
		}
	}()

	for _, t := range targets {
		results = append(results, f.fetchOne(ctx, browser, t))
	}
	return results
}

func (f *Fetcher) launch(ctx context.Context) (b Browser, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during launch: %v", r)
		}
	}()
	return f.launcher.Launch(ctx)
}

func (f *Fetcher) fetchOne(ctx context.Context, browser Browser, t config.Target) (result Jackpot) {
	log := f.log.ForTarget(t.Name)
	start := time.Now()
	result = Jackpot{Target: t}

	defer func() {
		if r := recover(); r != nil {
			result = Jackpot{Target: t, Err: errors.NewBrowser(t.Name, fmt.Sprintf("panic: %v", r), nil)}
		}
		result.Duration = time.Since(start)
		if result.Err != nil {
			log.Warn().Err(result.Err).Dur("duration", result.Duration).Msg("Fetch failed")
		}
	}()

	if err := ctx.Err(); err != nil {
		result.Err = errors.NewTimeout(t.Name, 0, err)
		return result
	}

	page, err := browser.NewPage(ctx)
	if err != nil {
		result.Err = errors.NewBrowser(t.Name, "failed to open page", err)
		return result
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close page")
		}
	}()

	log.Debug().Str("url", t.URL).Msg("Navigating")
	if err := page.Navigate(ctx, t.URL, f.opts.NavigationTimeout); err != nil {
		result.Err = navigationError(t.Name, f.opts.NavigationTimeout, err)
		return result
	}

	if err := page.Scroll(ctx); err != nil {
		// the markup is still usable
		log.Debug().Err(err).Msg("Scroll failed")
	}

	if err := sleep(ctx, f.opts.SettleDelay); err != nil {
		result.Err = errors.NewTimeout(t.Name, f.opts.SettleDelay, err)
		return result
	}

	extraction, err := jackpot.Extract(page, jackpot.Hints{Keywords: t.Keywords, Selectors: t.Selectors})
	if err != nil {
		result.Err = errors.NewParsing(t.Name, "extraction failed", err)
		return result
	}

	result.Amount = extraction.Amount
	result.Found = extraction.Found
	result.Tier = extraction.Tier

	log.Debug().
		Bool("found", result.Found).
		Int64("amount", result.Amount).
		Str("tier", string(result.Tier)).
		Msg("Extracted jackpot")
	return result
}

// navigationError keeps typed errors from the engines and classifies the rest
func navigationError(target string, limit time.Duration, err error) error {
	var checkErr *errors.CheckError
	if errors.As(err, &checkErr) {
		return checkErr
	}
	if errors.IsDeadline(err) {
		return errors.NewTimeout(target, limit, err)
	}
	return errors.NewNetwork(target, "navigation failed", err)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
