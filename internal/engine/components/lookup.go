// Package components resolves the component names of tickets through a
// persistent cache filled from the issue tracker.
package components

import (
	"context"
	"fmt"

	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/labelsync/internal/engine/retry"
)

// Lookup implements ports.ComponentSource.
// Cache hits never reach the tracker; misses go through the retrying fetcher.
type Lookup struct {
	cache   ports.KeyValueStore
	tracker ports.IssueTracker
	fetcher *retry.Fetcher
	logger  ports.Logger
}

var _ ports.ComponentSource = (*Lookup)(nil)

// New creates a Lookup.
func New(cache ports.KeyValueStore, tracker ports.IssueTracker, fetcher *retry.Fetcher, logger ports.Logger) *Lookup {
	return &Lookup{
		cache:   cache,
		tracker: tracker,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Components returns the component names of the ticket identified by key.
// A freshly fetched result that cannot be persisted is reported as an error.
func (l *Lookup) Components(ctx context.Context, key string) ([]string, error) {
	if components, ok := l.cache.Get(key); ok {
		return components, nil
	}

	var issue *domain.Issue
	err := l.fetcher.Do(ctx, "fetch ticket "+key, func(ctx context.Context) error {
		var err error
		issue, err = l.tracker.GetIssue(ctx, key)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := l.cache.Put(key, issue.Components); err != nil {
		return nil, err
	}
	l.logger.Debug(fmt.Sprintf("cached %d components of %s", len(issue.Components), key))
	return issue.Components, nil
}

// Invalidate evicts key and reports whether it was cached.
func (l *Lookup) Invalidate(key string) bool {
	return l.cache.Remove(key)
}
