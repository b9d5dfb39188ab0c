package tally

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// bucketBlobs holds all persisted blobs, keyed by store key.
var bucketBlobs = []byte("blobs")

// BoltStore persists blobs in a single bucket of a bbolt database file.
// It is the single-file alternative to FileStore's per-key files.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens the database at path, creating it if needed.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBlobs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create blobs bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Get returns the blob stored under key.
func (s *BoltStore) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBlobs).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set writes the blob stored under key.
func (s *BoltStore) Set(key string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlobs).Put([]byte(key), data)
	})
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
