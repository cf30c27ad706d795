// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/dexfarm/state"
)

// TState defines a struct for storing temporary state on top of a
// persistent base. Calls stage their writes in a [TStateView] and only
// committed views become visible here.
type TState struct {
	l sync.RWMutex

	base        state.Immutable
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState reading through to [base].
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(base state.Immutable, changedSize int) *TState {
	return &TState{
		base:        base,
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// GetValue reads committed changes before falling back to the base.
func (ts *TState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	v, changed, exists := ts.getChangedValue(ctx, string(key))
	if changed {
		if !exists {
			return nil, database.ErrNotFound
		}
		return v, nil
	}
	return ts.base.GetValue(ctx, key)
}

// Insert should only be called if you know what you are doing (updates
// here are not reflected in open views' op logs). It is used to seed
// genesis state.
func (ts *TState) Insert(_ context.Context, key []byte, value []byte) error {
	if len(key) == 0 {
		return ErrInvalidKeyValue
	}
	ts.l.Lock()
	defer ts.l.Unlock()

	ts.changedKeys[string(key)] = maybe.Some(value)
	ts.ops++
	return nil
}

// OpIndex returns the number of committed operations.
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// PendingChanges returns the number of keys changed since creation.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// ExportBatch returns all changes in [TState], ordered by key, as a batch
// that can be written to a [state.Database].
//
// Once [ExportBatch] is called, [TState] should not be used again.
func (ts *TState) ExportBatch(ctx context.Context, t trace.Tracer) []database.BatchOp {
	_, span := t.Start(ctx, "TState.ExportBatch")
	defer span.End()

	ts.l.RLock()
	defer ts.l.RUnlock()

	keys := maps.Keys(ts.changedKeys)
	slices.Sort(keys)
	ops := make([]database.BatchOp, 0, len(keys))
	for _, k := range keys {
		v := ts.changedKeys[k]
		if v.IsNothing() {
			ops = append(ops, database.BatchOp{Key: []byte(k), Delete: true})
			continue
		}
		ops = append(ops, database.BatchOp{Key: []byte(k), Value: v.Value()})
	}
	return ops
}
