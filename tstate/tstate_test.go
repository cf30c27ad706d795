// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/trace"
)

var (
	testKey = []byte("key")
	testVal = []byte("value")

	key1 = []byte("key1")
	key2 = []byte("key2")
	key3 = []byte("key3")
)

func seeded(t *testing.T, kv map[string][]byte) *state.AvalancheDatabase {
	db := state.NewMemory()
	ops := make([]database.BatchOp, 0, len(kv))
	for k, v := range kv {
		ops = append(ops, database.BatchOp{Key: []byte(k), Value: v})
	}
	require.NoError(t, db.Write(context.Background(), ops))
	return db
}

func TestGetValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(seeded(t, map[string][]byte{string(testKey): testVal}), 10)

	tsv := ts.NewView()
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, val)

	_, err = tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestInsertNew(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(state.NewMemory(), 10)
	tsv := ts.NewView()

	require.NoError(tsv.Insert(ctx, testKey, testVal))
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, val)
	require.Equal(1, tsv.OpIndex())

	// Not visible until committed
	_, err = ts.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)

	tsv.Commit()
	val, err = ts.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, val)
	require.Equal(1, ts.OpIndex())
	require.ErrorIs(tsv.Insert(ctx, key1, testVal), ErrViewCommitted)
}

func TestInsertEmptyKey(t *testing.T) {
	require := require.New(t)
	ts := New(state.NewMemory(), 10)
	require.ErrorIs(ts.NewView().Insert(context.TODO(), nil, testVal), ErrInvalidKeyValue)
}

func TestRemove(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(seeded(t, map[string][]byte{string(testKey): testVal}), 10)
	tsv := ts.NewView()

	// Removing a missing key is not an operation
	require.NoError(tsv.Remove(ctx, key1))
	require.Zero(tsv.OpIndex())

	require.NoError(tsv.Remove(ctx, testKey))
	_, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
	require.Equal(1, tsv.OpIndex())

	tsv.Commit()
	_, err = ts.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestRollback(t *testing.T) {
	tests := []struct {
		name        string
		restore     int
		expectKey1  []byte
		expectKey2  []byte
		expectBase  []byte
		expectedOps int
	}{
		{
			name:        "full rollback",
			restore:     0,
			expectBase:  testVal,
			expectedOps: 0,
		},
		{
			name:        "partial rollback",
			restore:     2,
			expectKey1:  []byte("v2"),
			expectBase:  testVal,
			expectedOps: 2,
		},
		{
			name:        "no rollback",
			restore:     4,
			expectKey1:  []byte("v2"),
			expectKey2:  []byte("v3"),
			expectedOps: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.TODO()
			ts := New(seeded(t, map[string][]byte{string(testKey): testVal}), 10)
			tsv := ts.NewView()

			require.NoError(tsv.Insert(ctx, key1, []byte("v1")))
			require.NoError(tsv.Insert(ctx, key1, []byte("v2")))
			require.NoError(tsv.Insert(ctx, key2, []byte("v3")))
			require.NoError(tsv.Remove(ctx, testKey))
			require.Equal(4, tsv.OpIndex())

			tsv.Rollback(ctx, tt.restore)
			require.Equal(tt.expectedOps, tsv.OpIndex())

			for _, c := range []struct {
				k []byte
				v []byte
			}{{key1, tt.expectKey1}, {key2, tt.expectKey2}, {testKey, tt.expectBase}} {
				v, err := tsv.GetValue(ctx, c.k)
				if c.v == nil {
					require.ErrorIs(err, database.ErrNotFound)
					continue
				}
				require.NoError(err)
				require.Equal(c.v, v)
			}
		})
	}
}

func TestRollbackRestoresCommittedValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(state.NewMemory(), 10)

	first := ts.NewView()
	require.NoError(first.Insert(ctx, key3, []byte("committed")))
	first.Commit()

	second := ts.NewView()
	require.NoError(second.Insert(ctx, key3, []byte("dirty")))
	require.NoError(second.Remove(ctx, key3))
	second.Rollback(ctx, 0)
	require.Zero(second.PendingChanges())

	v, err := second.GetValue(ctx, key3)
	require.NoError(err)
	require.Equal([]byte("committed"), v)
}

func TestExportBatch(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	db := seeded(t, map[string][]byte{string(testKey): testVal})
	ts := New(db, 10)

	tsv := ts.NewView()
	require.NoError(tsv.Insert(ctx, key2, []byte("b")))
	require.NoError(tsv.Insert(ctx, key1, []byte("a")))
	require.NoError(tsv.Remove(ctx, testKey))
	tsv.Commit()
	require.Equal(3, ts.PendingChanges())

	ops := ts.ExportBatch(ctx, trace.Noop("test"))
	require.Equal([]database.BatchOp{
		{Key: testKey, Delete: true},
		{Key: key1, Value: []byte("a")},
		{Key: key2, Value: []byte("b")},
	}, ops)

	require.NoError(db.Write(ctx, ops))
	v, err := db.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("a"), v)
	_, err = db.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
}
