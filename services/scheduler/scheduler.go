package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/logger"
)

// Runner performs one check cycle for the given games
type Runner interface {
	RunCycle(ctx context.Context, games []string)
}

// RunnerFunc adapts a function to Runner
type RunnerFunc func(ctx context.Context, games []string)

// RunCycle implements Runner
func (f RunnerFunc) RunCycle(ctx context.Context, games []string) {
	f(ctx, games)
}

// Job is one weekly trigger
type Job struct {
	Name  string
	Spec  string
	Games []string
}

// Jobs returns the weekly draw triggers: LOTTO on Sunday, EUROJACKPOT on
// Wednesday and Saturday, VIKINGLOTTO on Thursday
func Jobs(cfg *config.Config) []Job {
	return []Job{
		{Name: "lotto-sunday", Spec: weekly(cfg.SundayHour, time.Sunday), Games: []string{config.GameLotto}},
		{Name: "eurojackpot-wednesday", Spec: weekly(cfg.WednesdayHour, time.Wednesday), Games: []string{config.GameEurojackpot}},
		{Name: "eurojackpot-saturday", Spec: weekly(cfg.WednesdayHour, time.Saturday), Games: []string{config.GameEurojackpot}},
		{Name: "vikinglotto-thursday", Spec: weekly(cfg.ThursdayHour, time.Thursday), Games: []string{config.GameVikinglotto}},
	}
}

func weekly(hour int, day time.Weekday) string {
	return fmt.Sprintf("0 %d * * %d", hour, int(day))
}

// Options tune the scheduler
type Options struct {
	Location        *time.Location
	InitialRun      bool
	InitialRunDelay time.Duration
}

// Scheduler triggers cycles on a weekly calendar. Cycles never overlap.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	opts   Options
	log    *logger.Logger

	// serializes cycles across jobs
	cycleMu sync.Mutex
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a scheduler with the given jobs registered
func New(runner Runner, jobs []Job, opts Options) (*Scheduler, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	log := logger.ForComponent("scheduler")

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(opts.Location),
			cron.WithLogger(cronLogger{log: log}),
			cron.WithChain(cron.Recover(cronLogger{log: log})),
		),
		runner: runner,
		opts:   opts,
		log:    log,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.Spec, func() { s.trigger(job.Name, job.Games) }); err != nil {
			return nil, fmt.Errorf("invalid schedule %q for %s: %w", job.Spec, job.Name, err)
		}
	}
	return s, nil
}

// Start begins scheduling. Cycles inherit ctx; cancelling it aborts their waits.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()

	for _, e := range s.cron.Entries() {
		s.log.Info().Time("next", e.Next).Msg("Scheduled check")
	}

	if s.opts.InitialRun {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(s.opts.InitialRunDelay):
			}
			s.trigger("initial", nil)
		}()
	}
}

// Stop halts the calendar and waits for the running cycle to finish
func (s *Scheduler) Stop() {
	cronDone := s.cron.Stop()
	s.cancel()
	<-cronDone.Done()
	s.wg.Wait()
	s.log.Info().Msg("Scheduler stopped")
}

// Run starts the scheduler and blocks until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) {
	s.Start(ctx)
	<-ctx.Done()
	s.Stop()
}

// Next returns the upcoming trigger times in schedule order
func (s *Scheduler) Next() []time.Time {
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		next = append(next, e.Next)
	}
	return next
}

func (s *Scheduler) trigger(name string, games []string) {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	if s.ctx.Err() != nil {
		return
	}
	s.log.Info().Str("job", name).Strs("games", games).Msg("Triggering check")
	s.runner.RunCycle(s.ctx, games)
}

// cronLogger adapts the zerolog wrapper to cron.Logger
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
