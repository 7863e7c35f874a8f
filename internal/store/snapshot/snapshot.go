// Package snapshot persists the whole store as a single JSON document.
// Saves replace the previous snapshot atomically from the caller's view:
// the document is written to a temp file in the target directory and
// renamed over the old one, so a failed save leaves the prior file intact.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renvik/clipvault/internal/store"
)

// DefaultFileName is the snapshot file name under the data directory.
const DefaultFileName = "clips.json"

// FileStore reads and writes the snapshot at a fixed path.
type FileStore struct {
	path string
}

// New creates a FileStore for the given path.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the snapshot location under the user's profile
// directory.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "clipvault", DefaultFileName), nil
}

// Path returns the snapshot file location.
func (f *FileStore) Path() string {
	return f.path
}

// Save serializes the snapshot and atomically replaces the previous file.
func (f *FileStore) Save(snap *store.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, DefaultFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot. A missing file is not an error: it returns an
// empty snapshot, matching first-run startup. Read or parse failures
// return an error; callers start empty instead of failing startup.
func (f *FileStore) Load() (*store.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return &store.Snapshot{Version: store.SnapshotVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}
