package cas

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/zerr"
)

type labelEntry struct {
	Version     int       `json:"version"`
	ObjectID    string    `json:"object_id"`
	LastUpdated time.Time `json:"last_updated"`
	Labels      []string  `json:"labels"`
}

// LabelStore implements ports.LabelCache.
// An entry is served as long as it was captured at or after the live object's
// last-modified time.
type LabelStore struct {
	dir    string
	logger ports.Logger
}

var _ ports.LabelCache = (*LabelStore)(nil)

// NewLabelStore creates a LabelStore backed by dir, creating the directory if needed.
func NewLabelStore(dir string, logger ports.Logger) (*LabelStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &LabelStore{dir: dir, logger: logger}, nil
}

// Labels returns the labels of objectID, calling fetch when the cached entry is
// absent, unreadable or older than liveUpdatedAt.
// A failing fetch leaves the stored entry untouched.
func (s *LabelStore) Labels(
	ctx context.Context,
	objectID string,
	liveUpdatedAt time.Time,
	fetch ports.LabelFetcher,
) ([]string, error) {
	if entry, ok := s.load(objectID); ok && !entry.LastUpdated.Before(liveUpdatedAt) {
		s.logger.Debug(fmt.Sprintf("label cache hit for %s", objectID))
		return slices.Clone(entry.Labels), nil
	}

	labels, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	entry := labelEntry{
		Version:     recordVersion,
		ObjectID:    objectID,
		LastUpdated: liveUpdatedAt,
		Labels:      slices.Clone(labels),
	}
	if entry.Labels == nil {
		entry.Labels = []string{}
	}
	if err := writeJSON(s.filename(objectID), objectID, entry); err != nil {
		return nil, err
	}
	return labels, nil
}

func (s *LabelStore) load(objectID string) (labelEntry, bool) {
	var entry labelEntry
	found, err := readJSON(s.filename(objectID), &entry)
	if err == nil && found && (entry.Version != recordVersion || entry.ObjectID != objectID) {
		err = zerr.With(domain.ErrCacheCorrupt, "version", entry.Version)
	}
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring unreadable label cache entry for %s: %v", objectID, err))
		return labelEntry{}, false
	}
	return entry, found
}

func (s *LabelStore) filename(objectID string) string {
	return filepath.Join(s.dir, EncodeKey(objectID))
}
