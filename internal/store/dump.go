package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"go.etcd.io/bbolt"

	"github.com/altidx/altidx/internal/altidxerr"
	"github.com/altidx/altidx/internal/symbol"
)

// DumpDatabase renders every key in the store as diagnostic text: d/
// records print their path and Debug() form, c/ and u/ records print
// their bare key. This mirrors the original index's three-branch
// dump_database, which exists purely to let a developer eyeball the
// index's contents.
func (s *Store) DumpDatabase(ctx context.Context) (string, error) {
	if err := s.acquire(ctx); err != nil {
		return "", err
	}
	defer s.release()

	var b strings.Builder
	var count int

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		count = bucket.Stats().KeyN
		return bucket.ForEach(func(k, v []byte) error {
			key := string(k)
			switch {
			case strings.HasPrefix(key, dPrefix):
				def, err := symbol.Decode(v)
				if err != nil {
					logWarning("%v", altidxerr.NewDecodeError(key, err))
					return nil
				}
				fmt.Fprintf(&b, "%s\n  %s\n", key, def.Debug())
			case strings.HasPrefix(key, cPrefix), strings.HasPrefix(key, uPrefix):
				fmt.Fprintf(&b, "%s\n", key)
			}
			return nil
		})
	})
	if err != nil {
		return "", err
	}

	header := fmt.Sprintf("altidx has %d records\n", count)
	return header + b.String(), nil
}

// fingerprint returns a short diagnostic hash of a canonical file path,
// used only for log/debug output; it is never a store key, so a hash
// collision cannot affect correctness.
func fingerprint(cpath string) uint64 {
	return xxhash.Sum64String(cpath)
}
