// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "pebble"
	metricsInterval = 10 * time.Second
)

// sampled is a gauge refreshed from [pebble.Metrics] every [metricsInterval].
type sampled struct {
	gauge  prometheus.Gauge
	sample func(*pebble.Metrics) float64
}

type metrics struct {
	stallStart time.Time
	writeStall metric.Averager
	getLatency metric.Averager

	batches     prometheus.Counter
	batchOps    prometheus.Counter
	compactions *prometheus.CounterVec
	compacting  prometheus.Gauge

	sampled []sampled
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	writeStall, err := metric.NewAverager("", namespace+"_write_stall", "time spent waiting for disk write", r)
	if err != nil {
		return nil, nil, err
	}
	getLatency, err := metric.NewAverager("", namespace+"_read_latency", "time spent waiting for db get", r)
	if err != nil {
		return nil, nil, err
	}

	m := &metrics{
		writeStall: writeStall,
		getLatency: getLatency,
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches",
			Help:      "number of committed write batches",
		}),
		batchOps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_ops",
			Help:      "number of puts and deletes in committed batches",
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "number of compactions started, by input level",
		}, []string{"level"}),
		compacting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_compactions",
			Help:      "number of running compactions",
		}),
	}
	m.sample("tombstone_count", "approximate count of internal tombstones", func(pm *pebble.Metrics) float64 {
		return float64(pm.Keys.TombstoneCount)
	})
	m.sample("obsolete_table_size", "bytes in tables no longer referenced", func(pm *pebble.Metrics) float64 {
		return float64(pm.Table.ObsoleteSize)
	})
	m.sample("zombie_table_size", "bytes in unreferenced tables still held by iterators", func(pm *pebble.Metrics) float64 {
		return float64(pm.Table.ZombieSize)
	})
	m.sample("obsolete_wal_size", "bytes in WAL files no longer needed", func(pm *pebble.Metrics) float64 {
		return float64(pm.WAL.ObsoletePhysicalSize)
	})

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.batches),
		r.Register(m.batchOps),
		r.Register(m.compactions),
		r.Register(m.compacting),
	)
	for _, s := range m.sampled {
		errs.Add(r.Register(s.gauge))
	}
	return r, m, errs.Err
}

func (m *metrics) sample(name, help string, f func(*pebble.Metrics) float64) {
	m.sampled = append(m.sampled, sampled{
		gauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}),
		sample: f,
	})
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.compacting.Inc()
	level := "other"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	db.metrics.compactions.WithLabelValues(level).Inc()
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.compacting.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.stallStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.writeStall.Observe(float64(time.Since(db.metrics.stallStart)))
}

// collectMetrics samples pebble until the database closes.
func (db *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			db.l.RLock()
			if db.closed {
				db.l.RUnlock()
				return
			}
			pm := db.db.Metrics()
			db.l.RUnlock()
			for _, s := range db.metrics.sampled {
				s.gauge.Set(s.sample(pm))
			}
		case <-db.closing:
			return
		}
	}
}
