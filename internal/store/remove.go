package store

import (
	"bytes"
	"context"

	"go.etcd.io/bbolt"

	"github.com/altidx/altidx/internal/altidxerr"
	"github.com/altidx/altidx/internal/canon"
	"github.com/altidx/altidx/internal/symbol"
)

// Remove deletes every key belonging to the file at cpath: every d/
// record whose path begins with the file's canonicalized prefix, and
// every c/ and u/ key that record's contents imply. The auxiliary keys
// are reconstructed from each stored Definition rather than tracked
// separately, so the d/ record remains the single source of truth.
//
// The whole operation is one atomic batch; on failure the store is
// unchanged.
func (s *Store) Remove(ctx context.Context, cpath string) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	prefix := []byte(dPrefix + canon.FilePrefixString(cpath))

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		cursor := bucket.Cursor()

		var dKeysToDelete [][]byte
		var cKeysToDelete, uKeysToDelete [][]byte

		for k, v := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cursor.Next() {
			def, err := symbol.Decode(v)
			if err != nil {
				decodeErr := altidxerr.NewDecodeError(string(k), err)
				logWarning("%v", decodeErr)
				// Still delete the unreadable d/ record; its auxiliary
				// keys cannot be reconstructed and are left as orphans,
				// which is the same situation a corrupt record would
				// leave the original design in.
				dKeysToDelete = append(dKeysToDelete, append([]byte(nil), k...))
				continue
			}
			cKeys, uKeys := definitionKeys(def)
			cKeysToDelete = append(cKeysToDelete, cKeys...)
			uKeysToDelete = append(uKeysToDelete, uKeys...)
			dKeysToDelete = append(dKeysToDelete, append([]byte(nil), k...))
		}

		for _, k := range dKeysToDelete {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		for _, k := range cKeysToDelete {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		for _, k := range uKeysToDelete {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		batchErr := altidxerr.NewBatchError("doc_remove", err)
		logError("%v (file=%s hash=%x)", batchErr, cpath, fingerprint(cpath))
		return batchErr
	}
	return nil
}
