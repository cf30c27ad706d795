// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	blocksAccepted prometheus.Counter
	callsExecuted  prometheus.Counter
	stateChanges   prometheus.Counter
	lastHeight     prometheus.Gauge
	blockAccept    metric.Averager
	blockProcess   metric.Averager
}

func newMetrics(r prometheus.Registerer) (*Metrics, error) {
	blockAccept, err := metric.NewAverager(
		"",
		"vm_block_accept",
		"time spent writing accepted blocks",
		r,
	)
	if err != nil {
		return nil, err
	}
	blockProcess, err := metric.NewAverager(
		"",
		"vm_block_process",
		"time spent executing block calls",
		r,
	)
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		blocksAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "blocks_accepted",
			Help:      "number of blocks accepted",
		}),
		callsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "calls_executed",
			Help:      "number of calls included in accepted blocks",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "state_changes",
			Help:      "number of keys written by accepted blocks",
		}),
		lastHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vm",
			Name:      "last_accepted_height",
			Help:      "height of the last accepted block",
		}),
		blockAccept:  blockAccept,
		blockProcess: blockProcess,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.blocksAccepted),
		r.Register(m.callsExecuted),
		r.Register(m.stateChanges),
		r.Register(m.lastHeight),
	)
	return m, errs.Err
}
