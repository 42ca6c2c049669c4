package store

import "go.etcd.io/bbolt"

// InjectRawForTest writes a single key/value pair directly into the
// bucket, bypassing Add's key derivation entirely. It exists so this
// package's own tests and internal/query's tests can construct
// malformed keys to exercise skip-and-log tolerance; production code
// must never call it.
func (s *Store) InjectRawForTest(key string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
}
