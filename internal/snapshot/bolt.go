package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/harmonic-pos/salonledger/internal/model"
)

var bucketSnapshots = []byte("snapshots")

// BoltStore keeps the snapshot in a bbolt bucket under two keys.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens the database at path and creates the bucket.
func NewBoltStore(path string) (*BoltStore, error) {
	if path == "" {
		path = "salonledger.bolt"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSnapshots); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketSnapshots, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(_ context.Context) (*model.Document, error) {
	return s.get(slotCurrent)
}

func (s *BoltStore) LoadBackup(_ context.Context) (*model.Document, error) {
	return s.get(slotBackup)
}

func (s *BoltStore) get(slot string) (*model.Document, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSnapshots).Get([]byte(slot)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNoSnapshot
	}
	return Decode(data)
}

func (s *BoltStore) Save(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if prev := b.Get([]byte(slotCurrent)); prev != nil {
			if err := b.Put([]byte(slotBackup), append([]byte(nil), prev...)); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
		}
		return b.Put([]byte(slotCurrent), data)
	})
}

// Close closes the database.
func (s *BoltStore) Close() error { return s.db.Close() }
