// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/event"
)

type Option func(*VM) error

// WithSubscriptions delivers every committed event to [subs].
func WithSubscriptions(subs ...event.Subscription[*chain.EventRecord]) Option {
	return func(vm *VM) error {
		vm.subs = append(vm.subs, subs...)
		return nil
	}
}

// WithContract makes [c] callable at [addr], e.g. as a flash swap callee.
func WithContract(addr codec.Address, c any) Option {
	return func(vm *VM) error {
		return vm.contracts.Register(addr, c)
	}
}

// WithTracer overrides the tracer built from the config. The VM does not
// close it.
func WithTracer(t trace.Tracer) Option {
	return func(vm *VM) error {
		vm.tracer = t
		vm.ownsTracer = false
		return nil
	}
}
