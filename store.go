package tally

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
)

// Store is the persistence port: independently keyed blobs read at startup
// and written after every mutating operation on the owning store. A failed
// read falls back to documented defaults at the caller; a failed write is
// best-effort and never reaches the calculation path.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set writes the blob stored under key, replacing any previous value.
	Set(key string, data []byte) error
}

// FileStore persists each key as a JSON file under a root directory.
type FileStore struct {
	root string
	fs   afero.Fs
	mu   sync.Mutex
	last map[string]uint64 // key -> digest of the last written blob
}

// StoreOption defines a function that configures a FileStore.
type StoreOption func(*FileStore)

// WithStoreFs sets the filesystem implementation for the store.
// This allows using different filesystem implementations like in-memory
// filesystems for testing.
func WithStoreFs(fs afero.Fs) StoreOption {
	return func(s *FileStore) {
		s.fs = fs
	}
}

// NewFileStore creates a store rooted at the given directory.
// The directory will be created if it doesn't exist.
// It uses the OS filesystem by default; override with WithStoreFs.
func NewFileStore(root string, options ...StoreOption) (*FileStore, error) {
	store := &FileStore{
		root: root,
		fs:   afero.NewOsFs(),
		last: make(map[string]uint64),
	}

	for _, option := range options {
		option(store)
	}

	if err := store.fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return store, nil
}

// path returns the file path for a key.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.root, key+".json")
}

// Get returns the blob stored under key.
func (s *FileStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := afero.Exists(s.fs, s.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to check blob %s: %w", key, err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return data, nil
}

// Set writes the blob stored under key. Stores save after every mutation and
// most mutations leave the other blob untouched, so Set hashes the content
// and skips the write when it matches the last one for that key.
func (s *FileStore) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := xxhash.Sum64(data)
	if prev, ok := s.last[key]; ok && prev == sum {
		return nil
	}

	if err := afero.WriteFile(s.fs, s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	s.last[key] = sum
	return nil
}
