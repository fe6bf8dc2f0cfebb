package store

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/structpack/internal/options"
)

// StoreConfig holds the settings of Open.
type StoreConfig struct {
	fs        vfs.FS
	sync      bool
	readOnly  bool
	cacheSize int64
	registry  prometheus.Registerer
}

func newStoreConfig() *StoreConfig {
	return &StoreConfig{}
}

func (c *StoreConfig) pebbleOptions() *pebble.Options {
	opts := &pebble.Options{
		FS:       c.fs,
		ReadOnly: c.readOnly,
	}
	if c.cacheSize > 0 {
		opts.Cache = pebble.NewCache(c.cacheSize)
	}

	return opts
}

func (c *StoreConfig) writeOptions() *pebble.WriteOptions {
	if c.sync {
		return pebble.Sync
	}

	return pebble.NoSync
}

// StoreOption represents a functional option for configuring the StoreConfig.
type StoreOption = options.Option[*StoreConfig]

// WithFS opens the store on fs instead of the OS filesystem.
func WithFS(fs vfs.FS) StoreOption {
	return options.NoError(func(c *StoreConfig) {
		c.fs = fs
	})
}

// WithSync makes every write wait for the WAL to reach stable storage.
func WithSync(sync bool) StoreOption {
	return options.NoError(func(c *StoreConfig) {
		c.sync = sync
	})
}

// WithReadOnly opens an existing store without write access.
func WithReadOnly() StoreOption {
	return options.NoError(func(c *StoreConfig) {
		c.readOnly = true
	})
}

// WithCacheSize sets the block cache size in bytes.
func WithCacheSize(size int64) StoreOption {
	return options.New(func(c *StoreConfig) error {
		if size < 0 {
			return fmt.Errorf("invalid cache size %d", size)
		}
		c.cacheSize = size

		return nil
	})
}

// WithMetrics records operation counts and latencies on reg, labelled by schema name.
// Stores sharing a registry share the collectors.
func WithMetrics(reg prometheus.Registerer) StoreOption {
	return options.NoError(func(c *StoreConfig) {
		c.registry = reg
	})
}
