// Package scheduler drives the reconciliation and invalidation passes.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// PullRequestChecker runs one reconciliation pass.
type PullRequestChecker interface {
	CheckPullRequests(ctx context.Context) error
}

// CacheInvalidator runs one invalidation pass.
type CacheInvalidator interface {
	Run(ctx context.Context) error
}

// Scheduler runs the poll loop and, when enabled, the periodic invalidation.
type Scheduler struct {
	checker              PullRequestChecker
	invalidator          CacheInvalidator
	clock                clockwork.Clock
	logger               ports.Logger
	pollInterval         time.Duration
	invalidationInterval time.Duration
}

// NewScheduler creates a Scheduler. An invalidation interval of zero disables invalidation.
func NewScheduler(
	checker PullRequestChecker,
	invalidator CacheInvalidator,
	clock clockwork.Clock,
	logger ports.Logger,
	pollInterval, invalidationInterval time.Duration,
) *Scheduler {
	return &Scheduler{
		checker:              checker,
		invalidator:          invalidator,
		clock:                clock,
		logger:               logger,
		pollInterval:         pollInterval,
		invalidationInterval: invalidationInterval,
	}
}

// Run blocks until ctx ends. Pass failures are logged and never stop the loops.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.pollLoop(ctx)
	})

	if s.invalidationInterval > 0 {
		g.Go(func() error {
			return s.invalidationLoop(ctx)
		})
	} else {
		s.logger.Info("cache invalidation disabled")
	}

	return g.Wait()
}

// RunOnce runs one invalidation pass, when enabled, followed by one reconciliation pass.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	var errs []error
	if s.invalidationInterval > 0 {
		if err := s.invalidator.Run(ctx); err != nil {
			errs = append(errs, zerr.Wrap(err, "cache invalidation failed"))
		}
	}
	if err := s.checker.CheckPullRequests(ctx); err != nil {
		errs = append(errs, zerr.Wrap(err, "pull request check failed"))
	}
	return errors.Join(errs...)
}

func (s *Scheduler) pollLoop(ctx context.Context) error {
	for {
		if err := s.checker.CheckPullRequests(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error(zerr.Wrap(err, "pull request check failed"))
		} else {
			s.logger.Info(fmt.Sprintf("pull request check complete, next in %s", s.pollInterval))
		}

		timer := s.clock.NewTimer(s.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.Chan():
		}
	}
}

func (s *Scheduler) invalidationLoop(ctx context.Context) error {
	log := cronLogger{logger: s.logger}
	chain := cron.NewChain(cron.Recover(log), cron.SkipIfStillRunning(log))
	job := chain.Then(cron.FuncJob(func() {
		if err := s.invalidator.Run(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error(zerr.Wrap(err, "cache invalidation failed"))
		}
	}))

	job.Run()

	c := cron.New(cron.WithLogger(log))
	c.Schedule(cron.Every(s.invalidationInterval), job)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// cronLogger routes cron's diagnostics into ports.Logger.
type cronLogger struct {
	logger ports.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("invalidation schedule: " + msg + formatKV(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(zerr.Wrap(err, "invalidation schedule: "+msg+formatKV(keysAndValues)))
}

func formatKV(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}
