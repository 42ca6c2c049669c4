package store

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/altidx/altidx/internal/altidxerr"
	"github.com/altidx/altidx/internal/symbol"
)

// Add applies one atomic batch inserting the d/, c/, and u/ keys for
// every definition in defs. Definitions sharing an official_path within
// the same call are applied in map iteration order, so the last one
// written wins, per invariant 2. cpath is used only to annotate log
// output; the keys actually written come entirely from each
// Definition's own official_path.
//
// On any failure the transaction is rolled back and the store is left
// exactly as it was; the error is logged at error level and returned.
func (s *Store) Add(ctx context.Context, cpath string, defs map[string]symbol.Definition) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		for _, def := range defs {
			encoded, err := symbol.Encode(def)
			if err != nil {
				return err
			}
			path := def.Path()
			if err := bucket.Put(dKey(path), encoded); err != nil {
				return err
			}
			cKeys, uKeys := definitionKeys(def)
			for _, k := range cKeys {
				if err := bucket.Put(k, sentinel); err != nil {
					return err
				}
			}
			for _, k := range uKeys {
				if err := bucket.Put(k, sentinel); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		batchErr := altidxerr.NewBatchError("doc_add", err)
		logError("%v (file=%s hash=%x)", batchErr, cpath, fingerprint(cpath))
		return batchErr
	}
	return nil
}

var sentinel = []byte("1")
