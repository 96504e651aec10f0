package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the leaderboard in a JSON file. Every change rewrites the
// file through a temporary file and a rename.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	entries []Entry
}

// NewFileStore opens or creates the leaderboard file at path.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ranking: create directory: %w", err)
	}

	fs := &FileStore{path: path}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fs, nil
	case err != nil:
		return nil, fmt.Errorf("ranking: read %s: %w", path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &fs.entries); err != nil {
			return nil, fmt.Errorf("ranking: parse %s: %w", path, err)
		}
	}
	return fs, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

// Insert adds an entry and persists the leaderboard.
func (f *FileStore) Insert(_ context.Context, e Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(insertSorted(head(f.entries, 0), e))
}

// Top returns the best entries.
func (f *FileStore) Top(_ context.Context, limit int) ([]Entry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return head(f.entries, limit), nil
}

// Clear empties the leaderboard.
func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save([]Entry{})
}

// Trim keeps the first max entries.
func (f *FileStore) Trim(_ context.Context, max int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if max < 0 || len(f.entries) <= max {
		return nil
	}
	return f.save(head(f.entries, max))
}

// save writes entries and adopts them once the file is in place.
func (f *FileStore) save(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("ranking: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".rankings-*.json")
	if err != nil {
		return fmt.Errorf("ranking: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck // Write error takes precedence
		return fmt.Errorf("ranking: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ranking: write: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("ranking: replace %s: %w", f.path, err)
	}

	f.entries = entries
	return nil
}
