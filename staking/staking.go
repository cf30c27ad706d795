// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package staking is a single-pool reward distributor. Stakers deposit one
// token and earn a different, pre-funded token at a fixed rate per block
// between a start and an end block.
package staking

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/token"
)

// precisionDigits fixes the accumulator scale at 10^(precisionDigits -
// reward decimals).
const precisionDigits = 30

type Params struct {
	StakedToken    codec.Address
	RewardToken    codec.Address
	RewardPerBlock *uint256.Int
	StartBlock     uint64
	EndBlock       uint64

	// A zero PoolLimitPerUser creates the pool without a user limit.
	PoolLimitPerUser *uint256.Int
	LimitBlocks      uint64
}

// Create deploys a staking pool owned by the caller. The pool pays nothing
// until the owner transfers reward tokens to its address.
func Create(ctx context.Context, env *chain.Env, params *Params) (codec.Address, error) {
	if params.StakedToken == params.RewardToken {
		return codec.EmptyAddress, ErrSameToken
	}
	mu := env.State()
	if _, err := token.Info(ctx, mu, params.StakedToken); err != nil {
		return codec.EmptyAddress, err
	}
	reward, err := token.Info(ctx, mu, params.RewardToken)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if reward.Decimals >= precisionDigits {
		return codec.EmptyAddress, fmt.Errorf("%w: %d", ErrInvalidDecimals, reward.Decimals)
	}
	count, err := storage.GetStakingCount(ctx, mu)
	if err != nil {
		return codec.EmptyAddress, err
	}
	limit := fixedpoint.Clone(params.PoolLimitPerUser)
	addr := storage.StakingPoolAddress(count)
	if err := storage.SetStakingPool(ctx, mu, addr, &storage.StakingPool{
		Owner:            env.Actor(),
		StakedToken:      params.StakedToken,
		RewardToken:      params.RewardToken,
		RewardPerBlock:   fixedpoint.Clone(params.RewardPerBlock),
		StartBlock:       params.StartBlock,
		EndBlock:         params.EndBlock,
		LastRewardBlock:  params.StartBlock,
		AccTokenPerShare: fixedpoint.Zero(),
		PrecisionFactor:  fixedpoint.Pow10(uint64(precisionDigits - reward.Decimals)),
		TotalStaked:      fixedpoint.Zero(),
		UserLimit:        !limit.IsZero(),
		PoolLimitPerUser: limit,
		LimitBlocks:      params.LimitBlocks,
	}); err != nil {
		return codec.EmptyAddress, err
	}
	if err := storage.SetStakingCount(ctx, mu, count+1); err != nil {
		return codec.EmptyAddress, err
	}
	return addr, nil
}

func Info(ctx context.Context, im state.Immutable, pool codec.Address) (*storage.StakingPool, error) {
	sp, exists, err := storage.GetStakingPool(ctx, im, pool)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, pool)
	}
	return sp, nil
}

func UserInfo(ctx context.Context, im state.Immutable, pool codec.Address, user codec.Address) (*storage.Stake, error) {
	if _, err := Info(ctx, im, pool); err != nil {
		return nil, err
	}
	return storage.GetStakingUser(ctx, im, pool, user)
}

// HasUserLimit reports whether deposits are capped at [height].
func HasUserLimit(sp *storage.StakingPool, height uint64) bool {
	return sp.UserLimit && height < sp.StartBlock+sp.LimitBlocks
}

// Multiplier is the number of rewarded blocks in [from, to), none of which
// may be at or after the end block.
func Multiplier(sp *storage.StakingPool, from, to uint64) uint64 {
	switch {
	case to <= sp.EndBlock:
		return to - from
	case from >= sp.EndBlock:
		return 0
	default:
		return sp.EndBlock - from
	}
}

func accumulatorOf(sp *storage.StakingPool) fixedpoint.Accumulator {
	return fixedpoint.NewAccumulator(sp.PrecisionFactor)
}

// projectedAcc is the accumulator [sp] would hold if updated at [height].
func projectedAcc(sp *storage.StakingPool, height uint64) (*uint256.Int, error) {
	if height <= sp.LastRewardBlock || sp.TotalStaked.IsZero() {
		return sp.AccTokenPerShare, nil
	}
	reward, err := fixedpoint.Mul(uint256.NewInt(Multiplier(sp, sp.LastRewardBlock, height)), sp.RewardPerBlock)
	if err != nil {
		return nil, err
	}
	return accumulatorOf(sp).Increase(sp.AccTokenPerShare, reward, sp.TotalStaked)
}

// update brings [sp] current at [height]. It does not write [sp].
func update(sp *storage.StakingPool, height uint64) error {
	if height <= sp.LastRewardBlock {
		return nil
	}
	acc, err := projectedAcc(sp, height)
	if err != nil {
		return err
	}
	sp.AccTokenPerShare = acc
	sp.LastRewardBlock = height
	return nil
}

// PendingReward projects the reward [user] would harvest at [height].
func PendingReward(ctx context.Context, im state.Immutable, pool codec.Address, user codec.Address, height uint64) (*uint256.Int, error) {
	sp, err := Info(ctx, im, pool)
	if err != nil {
		return nil, err
	}
	u, err := storage.GetStakingUser(ctx, im, pool, user)
	if err != nil {
		return nil, err
	}
	acc, err := projectedAcc(sp, height)
	if err != nil {
		return nil, err
	}
	return accumulatorOf(sp).Pending(u.Amount, acc, u.RewardDebt)
}
