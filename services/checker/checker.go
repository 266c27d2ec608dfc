package checker

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/internal/crawler"
	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/pkg/errors"
	"sjsage522/jackpotworker/services/metrics"
	"sjsage522/jackpotworker/services/notifier"
)

// State is the phase of the cycle currently running
type State string

const (
	StateIdle        State = "IDLE"
	StateFetching    State = "FETCHING"
	StateAggregating State = "AGGREGATING"
	StateReporting   State = "REPORTING"
	StateAlerting    State = "ALERTING"
)

// Fetcher loads jackpots for a list of targets
type Fetcher interface {
	FetchAll(ctx context.Context, targets []config.Target) []crawler.Jackpot
}

// Options wires a Checker
type Options struct {
	Targets  []config.Target
	Fetcher  Fetcher
	Notifier notifier.Notifier
	Location *time.Location
	// Output receives the console report, stdout when nil
	Output  io.Writer
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Checker runs check cycles: fetch every target, classify, report, alert
type Checker struct {
	targets  []config.Target
	fetcher  Fetcher
	notifier notifier.Notifier
	loc      *time.Location
	out      io.Writer
	metrics  *metrics.Metrics
	now      func() time.Time
	log      *logger.Logger

	mu    sync.Mutex
	state State
}

// New creates a checker
func New(opts Options) *Checker {
	c := &Checker{
		targets:  opts.Targets,
		fetcher:  opts.Fetcher,
		notifier: opts.Notifier,
		loc:      opts.Location,
		out:      opts.Output,
		metrics:  opts.Metrics,
		now:      opts.Now,
		log:      logger.ForComponent("checker"),
		state:    StateIdle,
	}
	if c.loc == nil {
		c.loc = time.Local
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// State returns the current phase
func (c *Checker) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Checker) setState(log *logger.Logger, s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	log.Debug().Str("state", string(s)).Msg("Cycle state")
}

// Run performs one cycle over the targets named in games, or all targets
// when games is empty. Unknown names are logged and ignored.
func (c *Checker) Run(ctx context.Context, games []string) *Report {
	start := c.now()
	report := &Report{CycleID: uuid.NewString(), CheckedAt: start.In(c.loc)}
	log := c.log.WithStr("cycle_id", report.CycleID)

	targets, unknown := config.FilterTargets(c.targets, games)
	for _, name := range unknown {
		log.ForTarget(name).Warn().Msg("Unknown game requested; ignoring")
	}
	log.Info().Int("targets", len(targets)).Strs("games", games).Msg("Starting jackpot check")

	c.setState(log, StateFetching)
	jackpots := c.fetcher.FetchAll(ctx, targets)

	c.setState(log, StateAggregating)
	for _, j := range jackpots {
		res := Result{
			Game:   j.Target.Name,
			Amount: j.Amount,
			Found:  j.Found && j.Err == nil,
			Limit:  j.Target.Limit,
			URL:    j.Target.URL,
			Err:    j.Err,
		}
		res.Status = Classify(res.Amount, res.Found, res.Limit)
		report.Results = append(report.Results, res)

		if res.Status == StatusAlert {
			report.Alerts = append(report.Alerts, Alert{Game: res.Game, Amount: res.Amount, Limit: res.Limit, URL: res.URL})
		}
		if errors.TypeOf(j.Err) == errors.ErrorTypeRateLimit {
			c.metrics.ObserveRateLimit()
		}
		c.metrics.ObserveResult(res.Game, string(res.Status), res.Amount, res.Limit, res.Found, j.Duration)

		log.ForTarget(res.Game).Info().
			Str("status", string(res.Status)).
			Int64("amount", res.Amount).
			Int64("limit", res.Limit).
			Str("tier", string(j.Tier)).
			Msg("Target checked")
	}

	c.setState(log, StateReporting)
	if _, err := fmt.Fprintln(c.out, report.Text()); err != nil {
		log.Warn().Err(err).Msg("Failed to write report")
	}

	if report.HasAlerts() && c.notifier != nil {
		c.setState(log, StateAlerting)
		if err := c.notifier.Notify(ctx, report.AlertMessage()); err != nil {
			log.Warn().Err(err).Msg("Alert notification failed")
		} else {
			log.Info().Int("alerts", len(report.Alerts)).Msg("Alert notification sent")
		}
	}

	finished := c.now()
	c.metrics.ObserveCycle(finished.Sub(start), finished)
	c.setState(log, StateIdle)

	log.Info().
		Int("ok", report.Count(StatusOK)).
		Int("alert", report.Count(StatusAlert)).
		Int("unknown", report.Count(StatusUnknown)).
		Dur("duration", finished.Sub(start)).
		Msg("Jackpot check finished")
	return report
}
