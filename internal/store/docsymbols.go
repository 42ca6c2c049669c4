package store

import (
	"bytes"
	"context"

	"go.etcd.io/bbolt"

	"github.com/altidx/altidx/internal/altidxerr"
	"github.com/altidx/altidx/internal/canon"
	"github.com/altidx/altidx/internal/symbol"
)

// DocSymbols returns every definition currently stored for the file at
// cpath, in key order.
func (s *Store) DocSymbols(ctx context.Context, cpath string) ([]symbol.Definition, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	prefix := []byte(dPrefix + canon.FilePrefixString(cpath))
	var out []symbol.Definition

	err := s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(bucketName).Cursor()
		for k, v := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cursor.Next() {
			def, err := symbol.Decode(v)
			if err != nil {
				logWarning("%v", altidxerr.NewDecodeError(string(k), err))
				continue
			}
			out = append(out, def)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Scan prefix-scans the whole store for keys beginning with prefix,
// calling fn for each matching (key, value) pair. It is the shared
// primitive the query engine builds Definitions and Usages on top of.
func (s *Store) Scan(ctx context.Context, prefix string, fn func(key string, value []byte)) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	prefixBytes := []byte(prefix)
	return s.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(bucketName).Cursor()
		for k, v := cursor.Seek(prefixBytes); k != nil && bytes.HasPrefix(k, prefixBytes); k, v = cursor.Next() {
			fn(string(k), v)
		}
		return nil
	})
}

// Get fetches a single d/ record by full official path, decoding it.
// Returns ok=false if the key is absent; a decode failure is logged and
// treated the same as absent.
func (s *Store) Get(ctx context.Context, fullPath string) (def symbol.Definition, ok bool, err error) {
	if err := s.acquire(ctx); err != nil {
		return symbol.Definition{}, false, err
	}
	defer s.release()

	key := dKey(fullPath)
	err = s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get(key)
		if v == nil {
			return nil
		}
		d, decodeErr := symbol.Decode(v)
		if decodeErr != nil {
			logWarning("%v", altidxerr.NewDecodeError(string(key), decodeErr))
			return nil
		}
		def, ok = d, true
		return nil
	})
	return def, ok, err
}
