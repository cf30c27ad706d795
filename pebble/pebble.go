// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/dexfarm/state"
)

var (
	_ state.Database = (*Database)(nil)

	ErrClosed = errors.New("database closed")
)

type Config struct {
	CacheSize                   int64  `json:"cacheSize" yaml:"cacheSize"`
	BytesPerSync                int    `json:"bytesPerSync" yaml:"bytesPerSync"`
	WALBytesPerSync             int    `json:"walBytesPerSync" yaml:"walBytesPerSync"`
	MemTableStopWritesThreshold int    `json:"memTableStopWritesThreshold" yaml:"memTableStopWritesThreshold"`
	MemTableSize                uint64 `json:"memTableSize" yaml:"memTableSize"`
	MaxOpenFiles                int    `json:"maxOpenFiles" yaml:"maxOpenFiles"`
	ConcurrentCompactions       int    `json:"concurrentCompactions" yaml:"concurrentCompactions"`
	Sync                        bool   `json:"sync" yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   256 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * 1024 * 1024,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database persists accepted state in pebble.
type Database struct {
	db      *pebble.DB
	metrics *metrics
	sync    bool

	l       sync.RWMutex
	closed  bool
	closing chan struct{}
}

// New opens (or creates) a database at [file]. The returned registry holds
// its metrics.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		metrics: metrics,
		sync:    cfg.Sync,
		closing: make(chan struct{}),
	}
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(cfg.CacheSize),
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                cfg.MemTableSize,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		Levels:                      make([]pebble.LevelOptions, 7),
	}
	opts.Experimental.ReadSamplingMultiplier = -1
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}
	for i := 0; i < len(opts.Levels); i++ {
		l := &opts.Levels[i]
		l.BlockSize = 32 * 1024
		l.IndexBlockSize = 256 * 1024
		l.FilterPolicy = bloom.FilterPolicy(10)
		l.FilterType = pebble.TableFilter
		if i > 0 {
			l.TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
		}
		l.EnsureDefaults()
	}
	opts.Levels[6].FilterPolicy = nil

	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	go d.collectMetrics()
	return d, registry, nil
}

func (db *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	start := time.Now()
	defer func() {
		db.metrics.getLatency.Observe(float64(time.Since(start)))
	}()
	data, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), data...), nil
}

// Write applies [ops] as a single pebble batch.
func (db *Database) Write(_ context.Context, ops []database.BatchOp) error {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return ErrClosed
	}
	batch := db.db.NewBatch()
	defer batch.Close()
	for _, op := range ops {
		var err error
		if op.Delete {
			err = batch.Delete(op.Key, nil)
		} else {
			err = batch.Set(op.Key, op.Value, nil)
		}
		if err != nil {
			return err
		}
	}
	opts := pebble.NoSync
	if db.sync {
		opts = pebble.Sync
	}
	if err := batch.Commit(opts); err != nil {
		return err
	}
	db.metrics.batches.Inc()
	db.metrics.batchOps.Add(float64(len(ops)))
	return nil
}

func (db *Database) Close() error {
	db.l.Lock()
	defer db.l.Unlock()

	if db.closed {
		return ErrClosed
	}
	db.closed = true
	close(db.closing)
	return db.db.Close()
}
