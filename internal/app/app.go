package app

import (
	"context"
	"fmt"
	"io"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/internal/crawler"
	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/services/checker"
	"sjsage522/jackpotworker/services/metrics"
	"sjsage522/jackpotworker/services/scheduler"
)

// Mode is how the process runs
type Mode string

const (
	ModeSchedule Mode = "schedule"
	ModeOnce     Mode = "once"
	ModeGames    Mode = "games"
)

// ResolveMode picks the run mode; a game list beats a single full run
func ResolveMode(cfg *config.Config) Mode {
	switch {
	case len(cfg.TestGames) > 0:
		return ModeGames
	case cfg.RunOnce:
		return ModeOnce
	}
	return ModeSchedule
}

// App is the assembled worker
type App struct {
	cfg      *config.Config
	mode     Mode
	services *Services
	checker  *checker.Checker
	log      *logger.Logger
}

// New wires every service. cfg must already be validated.
func New(cfg *config.Config, out io.Writer) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	targets, err := cfg.Targets()
	if err != nil {
		return nil, fmt.Errorf("load targets: %w", err)
	}

	services := initializeServices(cfg)

	fetcher, err := crawler.NewFetcherFromConfig(cfg, services.Cache)
	if err != nil {
		services.Cleanup()
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		mode:     ResolveMode(cfg),
		services: services,
		log:      logger.ForComponent("app"),
		checker: checker.New(checker.Options{
			Targets:  targets,
			Fetcher:  fetcher,
			Notifier: services.Notifier,
			Location: loc,
			Output:   out,
			Metrics:  services.Metrics,
		}),
	}

	a.log.Info().
		Str("mode", string(a.mode)).
		Str("engine", fetcher.Engine()).
		Int("targets", len(targets)).
		Str("timezone", loc.String()).
		Msg("Application configured")
	return a, nil
}

// Mode returns the resolved run mode
func (a *App) Mode() Mode {
	return a.mode
}

// Checker exposes the cycle runner
func (a *App) Checker() *checker.Checker {
	return a.checker
}

// Run executes the resolved mode. Single-shot modes return after one cycle;
// schedule mode returns when ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	switch a.mode {
	case ModeGames:
		a.checker.Run(ctx, a.cfg.TestGames)
		return nil
	case ModeOnce:
		a.checker.Run(ctx, nil)
		return nil
	}
	return a.runScheduled(ctx)
}

func (a *App) runScheduled(ctx context.Context) error {
	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}

	if a.cfg.MetricsPort > 0 {
		a.services.Server = metrics.NewServer(a.cfg.MetricsPort, a.services.Metrics)
		if err := a.services.Server.Start(); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
	}

	runner := scheduler.RunnerFunc(func(ctx context.Context, games []string) {
		a.checker.Run(ctx, games)
	})
	s, err := scheduler.New(runner, scheduler.Jobs(a.cfg), scheduler.Options{
		Location:        loc,
		InitialRun:      a.cfg.InitialRun,
		InitialRunDelay: a.cfg.InitialRunDelay,
	})
	if err != nil {
		return err
	}

	a.log.Info().Msg("Starting scheduler")
	s.Run(ctx)
	return nil
}

// Close releases services
func (a *App) Close() {
	a.services.Cleanup()
}
