// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/state"
)

// ToID hashes [b] into an [ids.ID].
func ToID(b []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(b))
}

// key builds prefix || parts... || chunks.
func key(prefix byte, chunks uint16, parts ...[]byte) []byte {
	l := 1 + consts.Uint16Len
	for _, p := range parts {
		l += len(p)
	}
	k := make([]byte, l)
	k[0] = prefix
	offset := 1
	for _, p := range parts {
		copy(k[offset:], p)
		offset += len(p)
	}
	binary.BigEndian.PutUint16(k[offset:], chunks)
	return k
}

func uint64Bytes(v uint64) []byte {
	b := make([]byte, consts.Uint64Len)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// getValue returns (nil, false, nil) if [k] is missing.
func getValue(ctx context.Context, im state.Immutable, k []byte) ([]byte, bool, error) {
	v, err := im.GetValue(ctx, k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// getUint256 treats a missing key as zero.
func getUint256(ctx context.Context, im state.Immutable, k []byte) (*uint256.Int, error) {
	v, exists, err := getValue(ctx, im, k)
	if err != nil {
		return nil, err
	}
	if !exists {
		return new(uint256.Int), nil
	}
	if len(v) != consts.Uint256Len {
		return nil, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidRecord, consts.Uint256Len, len(v))
	}
	return new(uint256.Int).SetBytes32(v), nil
}

// setUint256 removes [k] when [v] is zero.
func setUint256(ctx context.Context, mu state.Mutable, k []byte, v *uint256.Int) error {
	if v.IsZero() {
		return mu.Remove(ctx, k)
	}
	b := v.Bytes32()
	return mu.Insert(ctx, k, b[:])
}

func getUint64(ctx context.Context, im state.Immutable, k []byte) (uint64, error) {
	v, exists, err := getValue(ctx, im, k)
	if err != nil || !exists {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidRecord, consts.Uint64Len, len(v))
	}
	return binary.BigEndian.Uint64(v), nil
}

func setUint64(ctx context.Context, mu state.Mutable, k []byte, v uint64) error {
	return mu.Insert(ctx, k, uint64Bytes(v))
}

// record is a value stored through a [codec.Packer].
type record interface {
	Marshal(p *codec.Packer)
	Size() int
}

func putRecord(ctx context.Context, mu state.Mutable, k []byte, r record) error {
	p := codec.NewWriter(r.Size(), r.Size())
	r.Marshal(p)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, k, p.Bytes())
}

// getRecord unpacks the value at [k] with [unmarshal]. The bool is false if
// the key is missing.
func getRecord(
	ctx context.Context,
	im state.Immutable,
	k []byte,
	unmarshal func(p *codec.Packer),
) (bool, error) {
	v, exists, err := getValue(ctx, im, k)
	if err != nil || !exists {
		return false, err
	}
	p := codec.NewReader(v, len(v))
	unmarshal(p)
	if err := p.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if !p.Empty() {
		return false, fmt.Errorf("%w: %d trailing bytes", ErrInvalidRecord, len(v)-p.Offset())
	}
	return true, nil
}
