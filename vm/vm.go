// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/dexfarm/actions"
	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/config"
	"github.com/ava-labs/dexfarm/event"
	"github.com/ava-labs/dexfarm/genesis"
	"github.com/ava-labs/dexfarm/pebble"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/tstate"

	dtrace "github.com/ava-labs/dexfarm/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Call is a single action submitted by [Actor].
type Call struct {
	Actor  codec.Address
	Action chain.Action
}

// Result is the outcome of a [Call]. A failed call leaves no state changes
// and emits no events.
type Result struct {
	Action  string
	Success bool
	Output  codec.Typed
	Events  []*chain.EventRecord
	Err     error
}

// VM executes blocks of calls against persistent state. Calls within a block
// run in order and each one commits or rolls back on its own; the block's
// surviving changes are written to the database together.
type VM struct {
	log        logging.Logger
	tracer     trace.Tracer
	ownsTracer bool
	config     *config.Config

	genesis   *genesis.Genesis
	genesisID ids.ID
	resolver  *genesis.Resolver

	db         state.Database
	dbRegistry *prometheus.Registry
	registry   *prometheus.Registry
	metrics    *Metrics

	contracts *chain.Registry
	processor *chain.Processor
	subs      []event.Subscription[*chain.EventRecord]

	l            sync.RWMutex
	closed       bool
	lastAccepted *storage.LastAccepted
}

// New opens the database named by [cfg] and writes [genesisBytes] to it if it
// is empty. Reopening a database requires the same genesis.
func New(
	ctx context.Context,
	log logging.Logger,
	cfg *config.Config,
	genesisBytes []byte,
	opts ...Option,
) (*VM, error) {
	g, err := genesis.Load(genesisBytes)
	if err != nil {
		return nil, fmt.Errorf("unable to load genesis: %w", err)
	}
	resolver, err := g.Resolver()
	if err != nil {
		return nil, err
	}
	vm := &VM{
		log:       log,
		config:    cfg,
		genesis:   g,
		genesisID: hashing.ComputeHash256Array(genesisBytes),
		resolver:  resolver,
		registry:  prometheus.NewRegistry(),
		contracts: chain.NewRegistry(),
	}
	tracer, err := dtrace.New(&cfg.Trace)
	if err != nil {
		return nil, err
	}
	vm.tracer = tracer
	vm.ownsTracer = true
	for _, opt := range opts {
		if err := opt(vm); err != nil {
			return nil, err
		}
	}

	vm.metrics, err = newMetrics(vm.registry)
	if err != nil {
		return nil, err
	}
	chainMetrics, err := chain.NewMetrics(vm.registry)
	if err != nil {
		return nil, err
	}
	vm.processor = chain.NewProcessor(log, vm.tracer, chainMetrics, vm.contracts, actions.Name, vm.subs...)

	if len(cfg.DatabaseDir) > 0 {
		db, registry, err := pebble.New(cfg.DatabaseDir, cfg.Pebble)
		if err != nil {
			return nil, err
		}
		vm.db = db
		vm.dbRegistry = registry
	} else {
		vm.db = state.NewMemory()
	}

	if err := vm.initialize(ctx); err != nil {
		_ = vm.db.Close()
		return nil, err
	}
	vm.log.Info("vm initialized",
		zap.Stringer("genesis", vm.genesisID),
		zap.Uint64("height", vm.lastAccepted.Height),
		zap.Bool("persistent", vm.dbRegistry != nil),
	)
	return vm, nil
}

func (vm *VM) initialize(ctx context.Context) error {
	ctx, span := vm.tracer.Start(ctx, "VM.initialize")
	defer span.End()

	last, exists, err := storage.GetLastAccepted(ctx, vm.db)
	if err != nil {
		return err
	}
	if exists {
		if last.GenesisID != vm.genesisID {
			return fmt.Errorf("%w: found %s", ErrGenesisMismatch, last.GenesisID)
		}
		vm.lastAccepted = last
		return nil
	}

	ts := tstate.New(vm.db, vm.config.StateChangesHint)
	view := ts.NewView()
	if err := vm.genesis.InitializeState(ctx, vm.tracer, view); err != nil {
		return fmt.Errorf("unable to apply genesis: %w", err)
	}
	last = &storage.LastAccepted{GenesisID: vm.genesisID}
	if err := storage.SetLastAccepted(ctx, view, last); err != nil {
		return err
	}
	view.Commit()
	ops := ts.ExportBatch(ctx, vm.tracer)
	if err := vm.db.Write(ctx, ops); err != nil {
		return err
	}
	vm.log.Debug("genesis written", zap.Int("keys", len(ops)))
	vm.lastAccepted = last
	return nil
}

// ExecuteBlock runs [calls] in order at [blk] and accepts the block. A failing
// call is reported in its [Result] and does not fail the block.
func (vm *VM) ExecuteBlock(ctx context.Context, blk chain.Block, calls []*Call) ([]*Result, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.ExecuteBlock", oteltrace.WithAttributes(
		attribute.Int64("height", int64(blk.Height)),
		attribute.Int("calls", len(calls)),
	))
	defer span.End()

	vm.l.Lock()
	defer vm.l.Unlock()

	if vm.closed {
		return nil, ErrClosed
	}
	if blk.Height <= vm.lastAccepted.Height {
		return nil, fmt.Errorf("%w: %d <= %d", ErrInvalidHeight, blk.Height, vm.lastAccepted.Height)
	}
	if blk.Timestamp < vm.lastAccepted.Timestamp {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidTime, blk.Timestamp, vm.lastAccepted.Timestamp)
	}

	start := time.Now()
	ts := tstate.New(vm.db, vm.config.StateChangesHint)
	results := make([]*Result, 0, len(calls))
	for _, c := range calls {
		r := &Result{}
		if c == nil || c.Action == nil {
			r.Err = chain.ErrNilAction
			results = append(results, r)
			continue
		}
		r.Action = actions.Name(c.Action.GetTypeID())
		r.Output, r.Events, r.Err = vm.processor.Execute(ctx, ts, blk, c.Actor, c.Action)
		r.Success = r.Err == nil
		results = append(results, r)
	}
	vm.metrics.blockProcess.Observe(float64(time.Since(start)))

	start = time.Now()
	last := &storage.LastAccepted{
		GenesisID: vm.genesisID,
		Height:    blk.Height,
		Timestamp: blk.Timestamp,
	}
	view := ts.NewView()
	if err := storage.SetLastAccepted(ctx, view, last); err != nil {
		return nil, err
	}
	view.Commit()
	ops := ts.ExportBatch(ctx, vm.tracer)
	if err := vm.db.Write(ctx, ops); err != nil {
		return nil, fmt.Errorf("unable to write block %d: %w", blk.Height, err)
	}
	vm.lastAccepted = last
	vm.metrics.blockAccept.Observe(float64(time.Since(start)))
	vm.metrics.blocksAccepted.Inc()
	vm.metrics.callsExecuted.Add(float64(len(calls)))
	vm.metrics.stateChanges.Add(float64(len(ops)))
	vm.metrics.lastHeight.Set(float64(blk.Height))
	vm.log.Debug("accepted block",
		zap.Uint64("height", blk.Height),
		zap.Int("calls", len(calls)),
		zap.Int("changes", len(ops)),
	)
	return results, nil
}

// LastAccepted returns the height and timestamp of the last accepted block.
// Genesis is height 0.
func (vm *VM) LastAccepted() chain.Block {
	vm.l.RLock()
	defer vm.l.RUnlock()

	return chain.Block{Height: vm.lastAccepted.Height, Timestamp: vm.lastAccepted.Timestamp}
}

func (vm *VM) Genesis() *genesis.Genesis {
	return vm.genesis
}

func (vm *VM) GenesisID() ids.ID {
	return vm.genesisID
}

func (vm *VM) Resolver() *genesis.Resolver {
	return vm.resolver
}

func (vm *VM) Tracer() trace.Tracer {
	return vm.tracer
}

// Gatherer exposes the VM metrics and, when state is persisted, the database
// metrics.
func (vm *VM) Gatherer() prometheus.Gatherer {
	if vm.dbRegistry == nil {
		return vm.registry
	}
	return prometheus.Gatherers{vm.registry, vm.dbRegistry}
}

// Shutdown closes subscriptions, the database and, unless one was supplied,
// the tracer. It is safe to call more than once.
func (vm *VM) Shutdown(context.Context) error {
	vm.l.Lock()
	defer vm.l.Unlock()

	if vm.closed {
		return nil
	}
	vm.closed = true

	errs := wrappers.Errs{}
	errs.Add(
		event.CloseAll(vm.subs...),
		vm.db.Close(),
	)
	if vm.ownsTracer {
		errs.Add(vm.tracer.Close())
	}
	return errs.Err
}
