package invalidator

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Marker persists the time up to which ticket changes have been processed.
// The file holds the timestamp as decimal Unix milliseconds.
type Marker struct {
	path string
}

// NewMarker returns a Marker stored at path.
func NewMarker(path string) *Marker {
	return &Marker{path: path}
}

// Path returns the marker file location.
func (m *Marker) Path() string {
	return m.path
}

// Read returns the stored timestamp. A missing file reports false.
func (m *Marker) Read() (time.Time, bool, error) {
	//nolint:gosec // Path comes from the configured cache directory
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, zerr.With(errors.Join(domain.ErrMarkerReadFailed, err), "path", m.path)
	}

	millis, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}, false, zerr.With(errors.Join(domain.ErrMarkerReadFailed, err), "path", m.path)
	}
	return time.UnixMilli(millis).UTC(), true, nil
}

// Write atomically replaces the stored timestamp.
func (m *Marker) Write(t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(m.path), domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrMarkerWriteFailed, err), "path", m.path)
	}
	data := strconv.FormatInt(t.UnixMilli(), 10)
	if err := atomic.WriteFile(m.path, strings.NewReader(data)); err != nil {
		return zerr.With(errors.Join(domain.ErrMarkerWriteFailed, err), "path", m.path)
	}
	return nil
}
