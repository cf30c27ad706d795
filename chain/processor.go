// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"strconv"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/event"
	"github.com/ava-labs/dexfarm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Processor executes calls with all-or-nothing semantics: a call either
// commits every write and publishes its events, or leaves no trace.
type Processor struct {
	log       logging.Logger
	tracer    trace.Tracer
	metrics   *Metrics
	contracts Contracts
	names     func(uint8) string
	subs      []event.Subscription[*EventRecord]
}

// NewProcessor returns a processor. [names] renders an action type ID for
// logs and metrics and may be nil.
func NewProcessor(
	log logging.Logger,
	tracer trace.Tracer,
	metrics *Metrics,
	contracts Contracts,
	names func(uint8) string,
	subs ...event.Subscription[*EventRecord],
) *Processor {
	if contracts == nil {
		contracts = NewRegistry()
	}
	if names == nil {
		names = func(id uint8) string {
			return strconv.Itoa(int(id))
		}
	}
	return &Processor{
		log:       log,
		tracer:    tracer,
		metrics:   metrics,
		contracts: contracts,
		names:     names,
		subs:      subs,
	}
}

// Execute runs [action] as [actor] against a fresh view of [ts]. Events are
// delivered to subscribers only after the view is committed.
func (p *Processor) Execute(
	ctx context.Context,
	ts *tstate.TState,
	blk Block,
	actor codec.Address,
	action Action,
) (codec.Typed, []*EventRecord, error) {
	if action == nil {
		return nil, nil, ErrNilAction
	}
	name := p.names(action.GetTypeID())
	ctx, span := p.tracer.Start(ctx, "Processor.Execute", oteltrace.WithAttributes(
		attribute.String("action", name),
		attribute.Int64("height", int64(blk.Height)),
	))
	defer span.End()

	start := time.Now()
	view := ts.NewView()
	env := NewEnv(view, blk, actor, p.contracts)
	output, err := action.Execute(ctx, env)
	if p.metrics != nil {
		p.metrics.callLatency.Observe(float64(time.Since(start)))
	}
	if err != nil {
		view.Rollback(ctx, 0)
		if p.metrics != nil {
			p.metrics.callsFailed.Inc()
			p.metrics.actionCalls.WithLabelValues(name, outcomeFailure).Inc()
		}
		p.log.Debug("call failed",
			zap.String("action", name),
			zap.Stringer("actor", actor),
			zap.Uint64("height", blk.Height),
			zap.Error(err),
		)
		span.RecordError(err)
		return nil, nil, err
	}
	view.Commit()

	records := env.Events()
	if p.metrics != nil {
		p.metrics.callsSucceeded.Inc()
		p.metrics.actionCalls.WithLabelValues(name, outcomeSuccess).Inc()
		p.metrics.eventsEmitted.Add(float64(len(records)))
	}
	for _, r := range records {
		if err := event.NotifyAll(ctx, r, p.subs...); err != nil {
			// The call is already committed.
			p.log.Warn("event subscriber failed",
				zap.String("action", name),
				zap.Error(err),
			)
		}
	}
	return output, records, nil
}
