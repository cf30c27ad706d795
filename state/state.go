// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

// Immutable is a read-only view of state. A missing key returns
// [database.ErrNotFound].
type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Database is the persistent backing store that accepted blocks are
// written to.
type Database interface {
	Immutable

	// Write atomically applies [ops] in order.
	Write(ctx context.Context, ops []database.BatchOp) error
	Close() error
}
