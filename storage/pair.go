// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"bytes"
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/state"
)

// Factory is the singleton configuration of the pool engine.
type Factory struct {
	FeeTo       codec.Address
	FeeToSetter codec.Address
	PairCount   uint64
	// SwapFee is charged on every detected input, in parts per thousand.
	SwapFee uint64
}

func (*Factory) Size() int {
	return codec.AddressLen*2 + consts.Uint64Len*2
}

func (f *Factory) Marshal(p *codec.Packer) {
	p.PackAddress(f.FeeTo)
	p.PackAddress(f.FeeToSetter)
	p.PackUint64(f.PairCount)
	p.PackUint64(f.SwapFee)
}

func (f *Factory) unmarshal(p *codec.Packer) {
	p.UnpackOptionalAddress(&f.FeeTo)
	p.UnpackOptionalAddress(&f.FeeToSetter)
	f.PairCount = p.UnpackUint64(false)
	f.SwapFee = p.UnpackUint64(false)
}

// Pair is the reserve and oracle record of one pool. The pair address is
// also the address of its liquidity share token.
type Pair struct {
	Token0 codec.Address
	Token1 codec.Address

	Reserve0           *uint256.Int
	Reserve1           *uint256.Int
	BlockTimestampLast uint32

	Price0CumulativeLast *uint256.Int
	Price1CumulativeLast *uint256.Int

	// KLast is reserve0 * reserve1 as of the last liquidity event, kept
	// only while the protocol fee is on.
	KLast *uint256.Int

	// Fee in parts per thousand
	Fee uint64
}

func (*Pair) Size() int {
	return codec.AddressLen*2 + consts.Uint256Len*5 + consts.Uint32Len + consts.Uint64Len
}

func (pr *Pair) Marshal(p *codec.Packer) {
	p.PackAddress(pr.Token0)
	p.PackAddress(pr.Token1)
	p.PackUint256(pr.Reserve0)
	p.PackUint256(pr.Reserve1)
	p.PackUint32(pr.BlockTimestampLast)
	p.PackUint256(pr.Price0CumulativeLast)
	p.PackUint256(pr.Price1CumulativeLast)
	p.PackUint256(pr.KLast)
	p.PackUint64(pr.Fee)
}

func (pr *Pair) unmarshal(p *codec.Packer) {
	p.UnpackAddress(&pr.Token0)
	p.UnpackAddress(&pr.Token1)
	pr.Reserve0 = p.UnpackUint256(false)
	pr.Reserve1 = p.UnpackUint256(false)
	pr.BlockTimestampLast = p.UnpackUint32()
	pr.Price0CumulativeLast = p.UnpackUint256(false)
	pr.Price1CumulativeLast = p.UnpackUint256(false)
	pr.KLast = p.UnpackUint256(false)
	pr.Fee = p.UnpackUint64(false)
}

// SortTokens orders two token addresses bytewise.
func SortTokens(tokenA codec.Address, tokenB codec.Address) (codec.Address, codec.Address) {
	if bytes.Compare(tokenA[:], tokenB[:]) < 0 {
		return tokenA, tokenB
	}
	return tokenB, tokenA
}

// PairAddress is independent of argument order.
func PairAddress(tokenA codec.Address, tokenB codec.Address) codec.Address {
	token0, token1 := SortTokens(tokenA, tokenB)
	v := make([]byte, codec.AddressLen*2)
	copy(v, token0[:])
	copy(v[codec.AddressLen:], token1[:])
	return codec.CreateAddress(consts.PairID, ToID(v))
}

func FactoryKey() []byte {
	return key(factoryPrefix, FactoryChunks)
}

// GetFactory returns the zero configuration before genesis sets one.
func GetFactory(ctx context.Context, im state.Immutable) (*Factory, error) {
	var f Factory
	if _, err := getRecord(ctx, im, FactoryKey(), f.unmarshal); err != nil {
		return nil, err
	}
	return &f, nil
}

func SetFactory(ctx context.Context, mu state.Mutable, f *Factory) error {
	return putRecord(ctx, mu, FactoryKey(), f)
}

func PairKey(pair codec.Address) []byte {
	return key(pairPrefix, PairChunks, pair[:])
}

func GetPair(ctx context.Context, im state.Immutable, pair codec.Address) (*Pair, bool, error) {
	var pr Pair
	exists, err := getRecord(ctx, im, PairKey(pair), pr.unmarshal)
	if err != nil || !exists {
		return nil, false, err
	}
	return &pr, true, nil
}

func SetPair(ctx context.Context, mu state.Mutable, pair codec.Address, pr *Pair) error {
	return putRecord(ctx, mu, PairKey(pair), pr)
}

// PairIndexKey maps the creation index of a pair to its address.
func PairIndexKey(index uint64) []byte {
	return key(pairIndexPrefix, PairIndexChunks, uint64Bytes(index))
}

func GetPairAt(ctx context.Context, im state.Immutable, index uint64) (codec.Address, bool, error) {
	v, exists, err := getValue(ctx, im, PairIndexKey(index))
	if err != nil || !exists {
		return codec.EmptyAddress, false, err
	}
	if len(v) != codec.AddressLen {
		return codec.EmptyAddress, false, ErrInvalidRecord
	}
	return codec.Address(v), true, nil
}

func SetPairAt(ctx context.Context, mu state.Mutable, index uint64, pair codec.Address) error {
	return mu.Insert(ctx, PairIndexKey(index), pair[:])
}

func PairLockKey(pair codec.Address) []byte {
	return key(pairLockPrefix, PairLockChunks, pair[:])
}

func IsPairLocked(ctx context.Context, im state.Immutable, pair codec.Address) (bool, error) {
	_, exists, err := getValue(ctx, im, PairLockKey(pair))
	return exists, err
}

func SetPairLock(ctx context.Context, mu state.Mutable, pair codec.Address, locked bool) error {
	if !locked {
		return mu.Remove(ctx, PairLockKey(pair))
	}
	return mu.Insert(ctx, PairLockKey(pair), []byte{1})
}
