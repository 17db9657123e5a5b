// Package schedule fires an engine periodically on cron schedules.
//
// The engine itself is single-threaded and does no locking; the
// Scheduler is the external synchronization wrapper that serializes
// passes when cron jobs overlap.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/rulefire/rulefire/engine"
)

// Scheduler fires an engine on one or more cron schedules.
type Scheduler struct {
	engine  *engine.Engine
	cron    *cron.Cron
	logger  *slog.Logger
	mu      sync.Mutex
	running bool
}

// New creates a Scheduler for the given engine.
func New(e *engine.Engine) *Scheduler {
	return &Scheduler{
		engine: e,
		cron:   cron.New(),
		logger: slog.Default().With("component", "schedule"),
	}
}

// Add registers a firing schedule in standard cron syntax.
//
// Common expressions:
//   - "* * * * *"   - every minute
//   - "0 3 * * *"   - daily at 3 AM
//   - "0 */6 * * *" - every 6 hours
func (s *Scheduler) Add(ctx context.Context, spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	if _, err := s.cron.AddFunc(spec, func() {
		s.fire(ctx)
	}); err != nil {
		return fmt.Errorf("schedule firing: %w", err)
	}

	return nil
}

// Start begins scheduled firing. Stops automatically when ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("firing scheduler started")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop halts scheduled firing. A pass already in progress runs to
// completion.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.cron.Stop()
	s.logger.Info("firing scheduler stopped")
}

// fire runs one pass under the scheduler's mutex so overlapping cron
// jobs never hit the engine concurrently.
func (s *Scheduler) fire(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Fire(ctx); err != nil {
		s.logger.Error("scheduled firing failed", "error", err)
	}
}
