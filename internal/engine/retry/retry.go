// Package retry implements a bounded retry around a single flaky remote read.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultAttempts is the total number of attempts, the first one included.
	DefaultAttempts = 4

	// DefaultBackoff is the pause between two attempts.
	DefaultBackoff = 30 * time.Second
)

// Fetcher retries an operation a fixed number of times with a fixed pause in between.
type Fetcher struct {
	clock    clockwork.Clock
	logger   ports.Logger
	attempts int
	backoff  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithAttempts overrides the number of attempts. Values below one are ignored.
func WithAttempts(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.attempts = n
		}
	}
}

// WithBackoff overrides the pause between attempts.
func WithBackoff(d time.Duration) Option {
	return func(f *Fetcher) {
		f.backoff = d
	}
}

// New creates a Fetcher waiting on clock.
func New(clock clockwork.Clock, logger ports.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		clock:    clock,
		logger:   logger,
		attempts: DefaultAttempts,
		backoff:  DefaultBackoff,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Do runs op until it succeeds or the attempts are exhausted.
//
// Cancelling ctx cuts the current pause short; the next attempt starts right away.
// Errors matching domain.ErrAuthFailed are returned without retrying. After the last
// attempt the returned error matches domain.ErrRemoteFailed and wraps op's last error.
func (f *Fetcher) Do(ctx context.Context, name string, op func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= f.attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, domain.ErrAuthFailed) {
			return lastErr
		}
		if attempt == f.attempts {
			break
		}
		f.logger.Warn(fmt.Sprintf("%s failed (attempt %d/%d), retrying in %s: %v",
			name, attempt, f.attempts, f.backoff, lastErr))
		f.wait(ctx)
	}

	err := zerr.With(errors.Join(domain.ErrRemoteFailed, lastErr), "operation", name)
	return zerr.With(err, "attempts", f.attempts)
}

func (f *Fetcher) wait(ctx context.Context) {
	timer := f.clock.NewTimer(f.backoff)
	defer timer.Stop()
	select {
	case <-timer.Chan():
	case <-ctx.Done():
	}
}
