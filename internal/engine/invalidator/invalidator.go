// Package invalidator evicts cached ticket components for tickets that changed
// since the last successful pass.
package invalidator

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

// Invalidator runs invalidation passes against the component cache.
type Invalidator struct {
	marker  *Marker
	tracker ports.IssueTracker
	cache   ports.KeyValueStore
	clock   clockwork.Clock
	logger  ports.Logger
}

// New creates an Invalidator.
func New(
	marker *Marker,
	tracker ports.IssueTracker,
	cache ports.KeyValueStore,
	clock clockwork.Clock,
	logger ports.Logger,
) *Invalidator {
	return &Invalidator{
		marker:  marker,
		tracker: tracker,
		cache:   cache,
		clock:   clock,
		logger:  logger,
	}
}

// Run executes one invalidation pass.
//
// Without a marker the pass only creates one and evicts nothing. Otherwise every
// ticket updated since the marker is evicted and the marker moves to the time
// the query started. A failed query leaves the marker untouched.
func (i *Invalidator) Run(ctx context.Context) error {
	since, ok, err := i.marker.Read()
	if err != nil {
		return err
	}
	if !ok {
		return i.bootstrap()
	}

	start := i.clock.Now()
	refs, err := i.tracker.SearchUpdatedSince(ctx, since)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrRemoteQueryFailed, err), "since", since.UTC().Format(time.RFC3339))
	}

	evicted := 0
	for _, ref := range refs {
		if i.cache.Remove(ref.Key) {
			evicted++
			i.logger.Debug(fmt.Sprintf("evicted %s (updated %s)", ref.Key, ref.UpdatedAt.UTC().Format(time.RFC3339)))
		}
	}

	if err := i.marker.Write(start); err != nil {
		return err
	}
	i.logger.Info(fmt.Sprintf("invalidation pass done: %d tickets updated since %s, %d cache entries evicted",
		len(refs), since.UTC().Format(time.RFC3339), evicted))
	return nil
}

func (i *Invalidator) bootstrap() error {
	if err := i.marker.Write(i.clock.Now()); err != nil {
		return err
	}
	i.logger.Warn(fmt.Sprintf(
		"!NOTE! no invalidation marker found at %s, starting the invalidation window now.\n"+
			"!NOTE! This is expected on the first run only. If the marker was lost, ticket changes\n"+
			"!NOTE! made since the previous run stay cached until the component cache is cleaned.",
		i.marker.Path()))
	return nil
}
