package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists session fields as a single JSON object on disk, the way a
// CLI keeps its credentials file. Writes go through a temp file and rename so a
// crash never leaves a half-written session behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at path. The file is created lazily
// on first Set with 0600 permissions.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get describes the get operation and its observable behavior.
func (f *FileStore) Get(_ context.Context, key Key) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields, err := f.load()
	if err != nil {
		return "", err
	}
	value, ok := fields[key]
	if !ok {
		return "", ErrFieldNotFound
	}
	return value, nil
}

// Set describes the set operation and its observable behavior.
func (f *FileStore) Set(_ context.Context, key Key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields, err := f.load()
	if err != nil {
		return err
	}
	fields[key] = value
	return f.save(fields)
}

// Delete describes the delete operation and its observable behavior.
func (f *FileStore) Delete(_ context.Context, key Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := fields[key]; !ok {
		return nil
	}
	delete(fields, key)
	return f.save(fields)
}

func (f *FileStore) load() (map[Key]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[Key]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	fields := map[Key]string{}
	if len(data) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return fields, nil
}

func (f *FileStore) save(fields map[Key]string) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
