package ports

import (
	"context"
	"time"
)

// KeyValueStore maps opaque string keys to ordered lists of strings.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type KeyValueStore interface {
	// Get returns the values stored under key.
	// A missing or unreadable record reports false.
	Get(key string) ([]string, bool)

	// Put replaces the record stored under key.
	Put(key string, values []string) error

	// Remove deletes the record stored under key and reports whether one existed.
	Remove(key string) bool
}

// LabelFetcher reads the current labels of an object from the remote.
type LabelFetcher func(ctx context.Context) ([]string, error)

// LabelCache serves object labels as long as the remote object has not changed.
type LabelCache interface {
	// Labels returns the cached labels of objectID when they were captured at or after
	// liveUpdatedAt, and otherwise calls fetch and stores its result.
	Labels(ctx context.Context, objectID string, liveUpdatedAt time.Time, fetch LabelFetcher) ([]string, error)
}
