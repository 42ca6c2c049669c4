// Package store owns the embedded key-value store and applies the
// batched d/, c/, u/ key-family writes described by the index's key
// schema. It never talks to a parser; callers hand it already-parsed
// symbol.Definition values and it is responsible only for the KV
// mechanics: atomic batch apply, prefix iteration, and a single
// cancellable mutex guarding both.
package store

import (
	"context"
	"log"

	"go.etcd.io/bbolt"
	"golang.org/x/sync/semaphore"

	"github.com/altidx/altidx/internal/altidxerr"
)

var bucketName = []byte("altidx")

// Store wraps a bbolt database opened on a single bucket holding all
// three key families. A weighted semaphore of weight 1 stands in for
// the asynchronous mutex of the original design: unlike sync.Mutex, its
// Acquire takes a context and so can be bounded by a caller-supplied
// timeout without leaking a goroutine.
type Store struct {
	db  *bbolt.DB
	sem *semaphore.Weighted
}

// Open opens (creating if necessary) the bbolt file at path and ensures
// the single altidx bucket exists.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, sem: semaphore.NewWeighted(1)}, nil
}

// Close releases the underlying bbolt file handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// acquire blocks until the store's single writer/reader slot is free or
// ctx is done, whichever comes first. A context timeout or cancellation
// surfaces as altidxerr.ErrBusy: no side effect has occurred by then,
// since no transaction has been opened yet.
func (s *Store) acquire(ctx context.Context) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return altidxerr.ErrBusy
	}
	return nil
}

func (s *Store) release() {
	s.sem.Release(1)
}

func logWarning(format string, args ...any) {
	log.Printf("WARNING: "+format, args...)
}

func logError(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}
