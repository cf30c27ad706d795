// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/amm"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/farm"
	"github.com/ava-labs/dexfarm/staking"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/token"
)

// ReadState returns the accepted value of each key. A missing key yields
// database.ErrNotFound at its index.
func (vm *VM) ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error) {
	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))
	err := vm.view(func(im state.Immutable) error {
		for i, k := range keys {
			values[i], errs[i] = im.GetValue(ctx, k)
		}
		return nil
	})
	if err != nil {
		for i := range errs {
			errs[i] = err
		}
	}
	return values, errs
}

// view runs [f] against accepted state. Blocks are not accepted while [f]
// runs.
func (vm *VM) view(f func(im state.Immutable) error) error {
	vm.l.RLock()
	defer vm.l.RUnlock()

	if vm.closed {
		return ErrClosed
	}
	return f(vm.db)
}

func (vm *VM) TokenInfo(ctx context.Context, tok codec.Address) (info *storage.TokenInfo, err error) {
	err = vm.view(func(im state.Immutable) error {
		info, err = token.Info(ctx, im, tok)
		return err
	})
	return info, err
}

func (vm *VM) BalanceOf(ctx context.Context, tok codec.Address, owner codec.Address) (balance *uint256.Int, err error) {
	err = vm.view(func(im state.Immutable) error {
		balance, err = token.BalanceOf(ctx, im, tok, owner)
		return err
	})
	return balance, err
}

func (vm *VM) Allowance(ctx context.Context, tok, owner, spender codec.Address) (allowance *uint256.Int, err error) {
	err = vm.view(func(im state.Immutable) error {
		allowance, err = token.Allowance(ctx, im, tok, owner, spender)
		return err
	})
	return allowance, err
}

// GetPair returns the pair for the unordered token couple, if it exists.
func (vm *VM) GetPair(ctx context.Context, tokenA, tokenB codec.Address) (pair codec.Address, exists bool, err error) {
	err = vm.view(func(im state.Immutable) error {
		pair, exists, err = amm.GetPair(ctx, im, tokenA, tokenB)
		return err
	})
	return pair, exists, err
}

func (vm *VM) Reserves(ctx context.Context, pair codec.Address) (reserve0, reserve1 *uint256.Int, timestamp uint32, err error) {
	err = vm.view(func(im state.Immutable) error {
		reserve0, reserve1, timestamp, err = amm.Reserves(ctx, im, pair)
		return err
	})
	return reserve0, reserve1, timestamp, err
}

func (vm *VM) GetAmountsOut(ctx context.Context, amountIn *uint256.Int, path []codec.Address) (amounts []*uint256.Int, err error) {
	err = vm.view(func(im state.Immutable) error {
		amounts, err = amm.GetAmountsOut(ctx, im, amountIn, path)
		return err
	})
	return amounts, err
}

func (vm *VM) GetAmountsIn(ctx context.Context, amountOut *uint256.Int, path []codec.Address) (amounts []*uint256.Int, err error) {
	err = vm.view(func(im state.Immutable) error {
		amounts, err = amm.GetAmountsIn(ctx, im, amountOut, path)
		return err
	})
	return amounts, err
}

// PendingFarmReward projects the reward [user] could harvest from [pid] at
// [height]. A zero height means the next block.
func (vm *VM) PendingFarmReward(
	ctx context.Context,
	f codec.Address,
	pid uint64,
	user codec.Address,
	height uint64,
) (reward *uint256.Int, err error) {
	err = vm.view(func(im state.Immutable) error {
		reward, err = farm.PendingReward(ctx, im, f, pid, user, vm.atHeight(height))
		return err
	})
	return reward, err
}

// PendingStakingReward projects the reward [user] could harvest from [pool]
// at [height]. A zero height means the next block.
func (vm *VM) PendingStakingReward(
	ctx context.Context,
	pool codec.Address,
	user codec.Address,
	height uint64,
) (reward *uint256.Int, err error) {
	err = vm.view(func(im state.Immutable) error {
		reward, err = staking.PendingReward(ctx, im, pool, user, vm.atHeight(height))
		return err
	})
	return reward, err
}

// atHeight must be called with the lock held.
func (vm *VM) atHeight(height uint64) uint64 {
	if height == 0 {
		return vm.lastAccepted.Height + 1
	}
	return height
}
