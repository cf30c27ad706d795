// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	callsSucceeded prometheus.Counter
	callsFailed    prometheus.Counter
	eventsEmitted  prometheus.Counter
	actionCalls    *prometheus.CounterVec

	callLatency metric.Averager
}

// NewMetrics registers the processor metrics with [r].
func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	callLatency, err := metric.NewAverager(
		"",
		"chain_call_latency",
		"time spent executing a call",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &Metrics{
		callLatency: callLatency,
		callsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "calls_succeeded",
			Help:      "number of calls committed",
		}),
		callsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "calls_failed",
			Help:      "number of calls rolled back",
		}),
		eventsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "events_emitted",
			Help:      "number of events published by committed calls",
		}),
		actionCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "action_calls",
			Help:      "number of calls by action and outcome",
		}, []string{"action", "outcome"}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.callsSucceeded),
		r.Register(m.callsFailed),
		r.Register(m.eventsEmitted),
		r.Register(m.actionCalls),
	)
	return m, errs.Err
}
