// Package cas implements the on-disk caches: a generic key-value store and a
// label cache validated against the remote object's last-modified time.
package cas

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/natefinch/atomic"
	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// recordVersion is the schema version written into every record.
const recordVersion = 1

const recordExt = ".json"

type record struct {
	Version int      `json:"version"`
	Key     string   `json:"key"`
	Values  []string `json:"values"`
}

// Store implements ports.KeyValueStore using a file-per-key strategy.
type Store struct {
	dir    string
	logger ports.Logger
}

var _ ports.KeyValueStore = (*Store)(nil)

// NewStore creates a Store backed by dir, creating the directory if needed.
func NewStore(dir string, logger ports.Logger) (*Store, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory holding the records.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the values stored under key.
// Missing and undecodable records are both reported as absent; the latter is logged.
func (s *Store) Get(key string) ([]string, bool) {
	var rec record
	found, err := readJSON(s.filename(key), &rec)
	if err == nil && found && (rec.Version != recordVersion || rec.Key != key) {
		err = zerr.With(zerr.With(domain.ErrCacheCorrupt, "version", rec.Version), "stored_key", rec.Key)
	}
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring unreadable cache record for %q: %v", key, err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	if rec.Values == nil {
		return []string{}, true
	}
	return rec.Values, true
}

// Put replaces the record stored under key.
func (s *Store) Put(key string, values []string) error {
	rec := record{Version: recordVersion, Key: key, Values: slices.Clone(values)}
	if rec.Values == nil {
		rec.Values = []string{}
	}
	return writeJSON(s.filename(key), key, rec)
}

// Remove deletes the record stored under key and reports whether one existed.
func (s *Store) Remove(key string) bool {
	err := os.Remove(s.filename(key))
	if err == nil {
		return true
	}
	if !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn(fmt.Sprintf("failed to remove cache record for %q: %v", key, err))
	}
	return false
}

func (s *Store) filename(key string) string {
	return filepath.Join(s.dir, EncodeKey(key))
}

// EncodeKey maps a cache key to its file name.
// The encoding is injective and only produces lower-case hex digits, so it is
// safe on case-insensitive file systems.
func EncodeKey(key string) string {
	return hex.EncodeToString([]byte(key)) + recordExt
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrCacheCreateFailed, err), "dir", dir)
	}
	return nil
}

// readJSON decodes the file at path into v. A missing file is reported as (false, nil).
func readJSON(path string, v any) (bool, error) {
	//nolint:gosec // Path is constructed from the cache directory and an encoded key
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, errors.Join(domain.ErrCacheCorrupt, err)
	}
	return true, nil
}

// writeJSON atomically replaces the file at path with the JSON encoding of v.
func writeJSON(path, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error()), "key", key)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "key", key)
	}
	return nil
}
