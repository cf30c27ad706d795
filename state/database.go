// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
)

var _ Database = (*AvalancheDatabase)(nil)

// AvalancheDatabase adapts any avalanchego [database.Database] to [Database].
type AvalancheDatabase struct {
	db database.Database
}

func NewAvalancheDatabase(db database.Database) *AvalancheDatabase {
	return &AvalancheDatabase{db: db}
}

// NewMemory returns a [Database] kept entirely in memory.
func NewMemory() *AvalancheDatabase {
	return NewAvalancheDatabase(memdb.New())
}

func (a *AvalancheDatabase) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return a.db.Get(key)
}

func (a *AvalancheDatabase) Write(_ context.Context, ops []database.BatchOp) error {
	batch := a.db.NewBatch()
	for _, op := range ops {
		if op.Delete {
			if err := batch.Delete(op.Key); err != nil {
				return err
			}
			continue
		}
		if err := batch.Put(op.Key, op.Value); err != nil {
			return err
		}
	}
	return batch.Write()
}

func (a *AvalancheDatabase) Close() error {
	return a.db.Close()
}
