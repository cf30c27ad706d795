// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package amm is the constant-product pool engine. Every pair holds two
// token balances, caches them as reserves, prices swaps against the
// fee-adjusted product of those reserves and accrues a time-weighted price
// oracle before each reserve update.
package amm

import (
	"context"
	"fmt"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/token"
)

const (
	// FeeDenominator is the scale of [storage.Factory.SwapFee].
	FeeDenominator = 1_000
	DefaultSwapFee = 3
)

// InitFactory writes the factory configuration. It is only called from
// genesis.
func InitFactory(ctx context.Context, mu state.Mutable, feeToSetter codec.Address, swapFee uint64) error {
	if swapFee >= FeeDenominator {
		return fmt.Errorf("%w: %d", ErrInvalidFee, swapFee)
	}
	f, err := storage.GetFactory(ctx, mu)
	if err != nil {
		return err
	}
	f.FeeToSetter = feeToSetter
	f.SwapFee = swapFee
	return storage.SetFactory(ctx, mu, f)
}

// CreatePair deploys the pair for two existing tokens. The pair's address
// is also the address of its liquidity share token.
func CreatePair(ctx context.Context, env *chain.Env, tokenA codec.Address, tokenB codec.Address) (codec.Address, error) {
	if tokenA == tokenB {
		return codec.EmptyAddress, ErrIdenticalAddresses
	}
	token0, token1 := storage.SortTokens(tokenA, tokenB)
	if token0 == codec.EmptyAddress {
		return codec.EmptyAddress, ErrZeroAddress
	}
	mu := env.State()
	for _, t := range []codec.Address{token0, token1} {
		if _, err := token.Info(ctx, mu, t); err != nil {
			return codec.EmptyAddress, err
		}
	}
	pair := storage.PairAddress(token0, token1)
	_, exists, err := storage.GetPair(ctx, mu, pair)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if exists {
		return codec.EmptyAddress, fmt.Errorf("%w: %s", ErrPairExists, pair)
	}
	f, err := storage.GetFactory(ctx, mu)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if err := token.Create(
		ctx,
		mu,
		pair,
		storage.LiquidityTokenName,
		storage.LiquidityTokenSymbol,
		storage.LiquidityTokenDecimals,
		pair,
	); err != nil {
		return codec.EmptyAddress, err
	}
	if err := storage.SetPair(ctx, mu, pair, &storage.Pair{
		Token0:               token0,
		Token1:               token1,
		Reserve0:             fixedpoint.Zero(),
		Reserve1:             fixedpoint.Zero(),
		Price0CumulativeLast: fixedpoint.Zero(),
		Price1CumulativeLast: fixedpoint.Zero(),
		KLast:                fixedpoint.Zero(),
		Fee:                  f.SwapFee,
	}); err != nil {
		return codec.EmptyAddress, err
	}
	index := f.PairCount
	if err := storage.SetPairAt(ctx, mu, index, pair); err != nil {
		return codec.EmptyAddress, err
	}
	f.PairCount++
	if err := storage.SetFactory(ctx, mu, f); err != nil {
		return codec.EmptyAddress, err
	}
	env.Emit(pair, &PairCreatedEvent{Token0: token0, Token1: token1, Pair: pair, Index: index})
	return pair, nil
}

// SetFeeTo turns the protocol fee on (non-empty [feeTo]) or off.
func SetFeeTo(ctx context.Context, env *chain.Env, feeTo codec.Address) error {
	mu := env.State()
	f, err := storage.GetFactory(ctx, mu)
	if err != nil {
		return err
	}
	if env.Actor() != f.FeeToSetter {
		return ErrForbidden
	}
	f.FeeTo = feeTo
	return storage.SetFactory(ctx, mu, f)
}

func SetFeeToSetter(ctx context.Context, env *chain.Env, feeToSetter codec.Address) error {
	mu := env.State()
	f, err := storage.GetFactory(ctx, mu)
	if err != nil {
		return err
	}
	if env.Actor() != f.FeeToSetter {
		return ErrForbidden
	}
	f.FeeToSetter = feeToSetter
	return storage.SetFactory(ctx, mu, f)
}

// GetPair returns the pair of two tokens, in either order.
func GetPair(ctx context.Context, im state.Immutable, tokenA codec.Address, tokenB codec.Address) (codec.Address, bool, error) {
	pair := storage.PairAddress(tokenA, tokenB)
	_, exists, err := storage.GetPair(ctx, im, pair)
	if err != nil || !exists {
		return codec.EmptyAddress, false, err
	}
	return pair, true, nil
}

func AllPairsLength(ctx context.Context, im state.Immutable) (uint64, error) {
	f, err := storage.GetFactory(ctx, im)
	if err != nil {
		return 0, err
	}
	return f.PairCount, nil
}

func PairAt(ctx context.Context, im state.Immutable, index uint64) (codec.Address, bool, error) {
	return storage.GetPairAt(ctx, im, index)
}
