// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"sync"

	"github.com/ava-labs/dexfarm/codec"
)

var _ Contracts = (*Registry)(nil)

// Registry is an in-memory [Contracts].
type Registry struct {
	l sync.RWMutex
	m map[codec.Address]any
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[codec.Address]any)}
}

// Register returns [ErrDuplicateContract] if [addr] is taken.
func (r *Registry) Register(addr codec.Address, c any) error {
	r.l.Lock()
	defer r.l.Unlock()

	if _, ok := r.m[addr]; ok {
		return ErrDuplicateContract
	}
	r.m[addr] = c
	return nil
}

func (r *Registry) Contract(addr codec.Address) (any, bool) {
	r.l.RLock()
	defer r.l.RUnlock()

	c, ok := r.m[addr]
	return c, ok
}
