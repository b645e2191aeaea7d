package alert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

// Options configures the alert job.
type Options struct {
	// Spec is a standard 5-field cron expression or descriptor such as
	// "@hourly". Empty disables the job.
	Spec string
	To   string
	Lang locale.Lang
}

// Scheduler periodically recomputes low stock over the full row set and
// keeps the latest notification.
type Scheduler struct {
	source inventory.Source
	opts   Options
	log    zerolog.Logger

	cron    *cron.Cron
	timeout time.Duration
	wg      sync.WaitGroup // startup run

	mu      sync.RWMutex
	latest  *Notification
	lastRun time.Time
}

// NewScheduler creates a scheduler reading from source.
func NewScheduler(source inventory.Source, opts Options, log zerolog.Logger) *Scheduler {
	cronLog := cron.PrintfLogger(&log)
	return &Scheduler{
		source: source,
		opts:   opts,
		log:    log.With().Str("component", "alert").Logger(),
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLog),
			cron.SkipIfStillRunning(cronLog),
		)),
		timeout: time.Minute,
	}
}

// Enabled reports whether Start will schedule anything.
func (s *Scheduler) Enabled() bool {
	return s.opts.Spec != ""
}

// Start schedules the job and runs it once immediately in the background.
// Stop waits for that first run as well.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.log.Info().Msg("alert scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.opts.Spec, s.tick); err != nil {
		return fmt.Errorf("failed to schedule alert job %q: %w", s.opts.Spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.opts.Spec).Msg("alert scheduler started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.tick()
	}()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish, so the
// source can be closed afterwards.
func (s *Scheduler) Stop() {
	if !s.Enabled() {
		return
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info().Msg("alert scheduler stopped")
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error().Err(err).Msg("alert run failed")
	}
}

// RunOnce loads all rows in the alert language, composes the alert and
// records the result. It returns nil when nothing needs restocking; the
// previous notification is then cleared.
func (s *Scheduler) RunOnce(ctx context.Context) (*Notification, error) {
	rows, err := inventory.LoadLocalized(ctx, s.source, s.opts.Lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows: %w", err)
	}

	entries := inventory.LowStockEntries(rows)
	n, ok := Compose(entries, s.opts.Lang, s.opts.To)

	s.mu.Lock()
	s.lastRun = time.Now().UTC()
	s.latest = n
	s.mu.Unlock()

	if !ok {
		s.log.Debug().Int("rows", len(rows)).Msg("no low stock")
		return nil, nil
	}

	s.log.Warn().
		Str("to", n.To).
		Str("subject", n.Subject).
		Strs("products", n.Products).
		Int("entries", len(entries)).
		Msg("low stock alert")
	return n, nil
}

// Latest returns the most recent notification, or nil.
func (s *Scheduler) Latest() *Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// LastRun returns when the job last completed; zero if never.
func (s *Scheduler) LastRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}
