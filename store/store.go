// Package store persists records of one schema in a pebble key-value database.
//
// Each value is the 8-byte big-endian schema fingerprint followed by the record image,
// so a store opened with a different layout refuses to read or overwrite foreign
// records instead of misinterpreting them.
//
//	st, err := store.Open("/var/lib/xsdp", schema, store.WithSync(true))
//	defer st.Close()
//	_ = st.Put([]byte("session/1"), rec)
//	rec, err = st.Get([]byte("session/1"))
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/arloliu/structpack/endian"
	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/internal/options"
	"github.com/arloliu/structpack/internal/pool"
	"github.com/arloliu/structpack/record"
)

const fingerprintSize = 8

var engine = endian.GetBigEndianEngine()

// Store is a keyed record store. It is safe for concurrent use.
type Store struct {
	db      *pebble.DB
	schema  *record.Schema
	config  *StoreConfig
	metrics *metrics
}

// Open opens or creates the store in dir for records of schema.
func Open(dir string, schema *record.Schema, opts ...StoreOption) (*Store, error) {
	config := newStoreConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	po := config.pebbleOptions()
	if po.Cache != nil {
		defer po.Cache.Unref()
	}

	db, err := pebble.Open(dir, po)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %q: %w", dir, err)
	}

	return &Store{
		db:      db,
		schema:  schema,
		config:  config,
		metrics: newMetrics(config.registry),
	}, nil
}

// Schema returns the schema of the stored records.
func (s *Store) Schema() *record.Schema {
	return s.schema
}

// Put stores the record image under key, replacing any previous value.
//
// Returns errs.ErrSchemaMismatch for a record of another layout.
func (s *Store) Put(key []byte, r *record.Record) (err error) {
	defer s.observe("put", time.Now(), &err)

	if r.Schema().Fingerprint() != s.schema.Fingerprint() {
		return fmt.Errorf("%w: record of schema %q put into store of %q",
			errs.ErrSchemaMismatch, r.Schema().Name(), s.schema.Name())
	}

	buf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(buf)

	buf.ExtendOrGrow(fingerprintSize)
	engine.PutUint64(buf.Bytes(), s.schema.Fingerprint())
	buf.MustWrite(r.Raw())

	return s.db.Set(key, buf.Bytes(), s.config.writeOptions())
}

// Get returns a copy of the record stored under key.
//
// Returns errs.ErrRecordNotFound for a missing key and errs.ErrSchemaMismatch for a
// value written with another layout.
func (s *Store) Get(key []byte) (_ *record.Record, err error) {
	defer s.observe("get", time.Now(), &err)

	value, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: key %q", errs.ErrRecordNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return s.decode(key, value)
}

// Has reports whether key is present.
func (s *Store) Has(key []byte) (bool, error) {
	_, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, closer.Close()
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key []byte) (err error) {
	defer s.observe("delete", time.Now(), &err)

	return s.db.Delete(key, s.config.writeOptions())
}

// Scan calls fn for every record whose key starts with prefix, in key order. An
// empty prefix visits the whole store. Scanning stops at the first error from fn or
// from decoding.
func (s *Store) Scan(prefix []byte, fn func(key []byte, r *record.Record) error) (err error) {
	defer s.observe("scan", time.Now(), &err)

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return err
	}

	for iter.First(); iter.Valid(); iter.Next() {
		key := iter.Key()
		r, err := s.decode(key, iter.Value())
		if err != nil {
			_ = iter.Close()
			return err
		}
		if err := fn(append([]byte(nil), key...), r); err != nil {
			_ = iter.Close()
			return err
		}
	}

	return iter.Close()
}

// Flush writes the memtable to disk.
func (s *Store) Flush() error {
	return s.db.Flush()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) observe(op string, start time.Time, err *error) {
	s.metrics.observe(s.schema.Name(), op, start, *err)
}

func (s *Store) decode(key, value []byte) (*record.Record, error) {
	if len(value) != fingerprintSize+s.schema.Size() {
		return nil, fmt.Errorf("%w: key %q holds %d bytes, schema %q needs %d",
			errs.ErrSchemaMismatch, key, len(value), s.schema.Name(), fingerprintSize+s.schema.Size())
	}
	if fp := engine.Uint64(value); fp != s.schema.Fingerprint() {
		return nil, fmt.Errorf("%w: key %q written with fingerprint %016x, schema %q has %016x",
			errs.ErrSchemaMismatch, key, fp, s.schema.Name(), s.schema.Fingerprint())
	}

	return s.schema.NewFrom(value[fingerprintSize:]), nil
}

// upperBound returns the smallest key greater than every key with prefix, or nil
// when no such key exists.
func upperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}
