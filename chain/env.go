// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/state"
)

// Block identifies where a call executes. Height is the only clock the
// reward distributors read; the pool engine reads Timestamp.
type Block struct {
	Height    uint64 `json:"height" yaml:"height"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// Contracts resolves an address to contract code registered off-state, such
// as a flash-swap callee.
type Contracts interface {
	Contract(addr codec.Address) (any, bool)
}

// Event is an observable side effect of a call.
type Event interface {
	codec.Typed
}

// EventRecord is an [Event] together with where it came from.
type EventRecord struct {
	Block   Block         `json:"block"`
	Actor   codec.Address `json:"actor"`
	Emitter codec.Address `json:"emitter"`
	Event   Event         `json:"event"`
}

type eventLog struct {
	records []*EventRecord
}

// Env is everything a call can observe and mutate. It is only valid for the
// duration of a single call.
type Env struct {
	mu        state.Mutable
	block     Block
	actor     codec.Address
	contracts Contracts
	log       *eventLog
}

func NewEnv(mu state.Mutable, block Block, actor codec.Address, contracts Contracts) *Env {
	if contracts == nil {
		contracts = NewRegistry()
	}
	return &Env{
		mu:        mu,
		block:     block,
		actor:     actor,
		contracts: contracts,
		log:       &eventLog{},
	}
}

func (e *Env) State() state.Mutable {
	return e.mu
}

func (e *Env) Block() Block {
	return e.block
}

func (e *Env) Height() uint64 {
	return e.block.Height
}

func (e *Env) Timestamp() int64 {
	return e.block.Timestamp
}

// Actor is the account that initiated the current (sub)call.
func (e *Env) Actor() codec.Address {
	return e.actor
}

// As returns an [Env] acting as [actor] that shares state and the event log
// with e. Contracts use it when calling out on their own behalf.
func (e *Env) As(actor codec.Address) *Env {
	return &Env{
		mu:        e.mu,
		block:     e.block,
		actor:     actor,
		contracts: e.contracts,
		log:       e.log,
	}
}

func (e *Env) Contract(addr codec.Address) (any, bool) {
	return e.contracts.Contract(addr)
}

// Emit records [ev] as emitted by [emitter]. Records are only published if
// the call succeeds.
func (e *Env) Emit(emitter codec.Address, ev Event) {
	e.log.records = append(e.log.records, &EventRecord{
		Block:   e.block,
		Actor:   e.actor,
		Emitter: emitter,
		Event:   ev,
	})
}

// Events returns every event emitted so far, in order.
func (e *Env) Events() []*EventRecord {
	return e.log.records
}
