// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package farm is a multi-pool reward distributor. Each pool accrues a
// reward-per-share accumulator lazily, the first time any call touches it
// in a new block, and every stake carries a reward debt so only reward
// accrued since its last checkpoint is paid.
//
// Pool 0 is the self-referential staking pool: its deposit token is the
// reward token. It is reachable only through EnterStaking and LeaveStaking,
// and every other pool only through Deposit and Withdraw.
package farm

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

// StakingPoolID is the pid of the self-referential pool.
const StakingPoolID = 0

const DefaultMultiplier = 1

var accumulator = fixedpoint.NewAccumulator(uint256.NewInt(fixedpoint.RewardPrecision))

// Params configures a new farm.
type Params struct {
	RewardToken    codec.Address
	RewardPerBlock *uint256.Int
	StartBlock     uint64
	Schedule       []storage.Breakpoint

	StakingAllocPoint  uint64
	StakingDivisor     uint64
	OptionalMassUpdate bool
}

// Create deploys a farm owned by the caller. The reward token must already
// name the farm's address as its minter.
func Create(ctx context.Context, env *chain.Env, params *Params) (codec.Address, error) {
	mu := env.State()
	if err := ValidateSchedule(params.Schedule); err != nil {
		return codec.EmptyAddress, err
	}
	count, err := storage.GetFarmCount(ctx, mu)
	if err != nil {
		return codec.EmptyAddress, err
	}
	addr := storage.FarmAddress(count)
	info, err := token.Info(ctx, mu, params.RewardToken)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if info.Minter != addr {
		return codec.EmptyAddress, fmt.Errorf("%w: %s mints %s", ErrRewardNotMintable, info.Minter, params.RewardToken)
	}
	f := &storage.Farm{
		Owner:              env.Actor(),
		RewardToken:        params.RewardToken,
		RewardPerBlock:     fixedpoint.Clone(params.RewardPerBlock),
		StartBlock:         params.StartBlock,
		TotalAllocPoint:    params.StakingAllocPoint,
		PoolCount:          1,
		Schedule:           params.Schedule,
		RewardReserve:      fixedpoint.Zero(),
		StakingDivisor:     params.StakingDivisor,
		OptionalMassUpdate: params.OptionalMassUpdate,
	}
	if err := storage.SetFarm(ctx, mu, addr, f); err != nil {
		return codec.EmptyAddress, err
	}
	if err := storage.SetFarmPool(ctx, mu, addr, StakingPoolID, &storage.FarmPool{
		DepositToken:      params.RewardToken,
		Kind:              storage.SelfReferentialPool,
		AllocPoint:        params.StakingAllocPoint,
		Multiplier:        DefaultMultiplier,
		LastRewardBlock:   max(env.Height(), params.StartBlock),
		AccRewardPerShare: fixedpoint.Zero(),
		TotalStaked:       fixedpoint.Zero(),
	}); err != nil {
		return codec.EmptyAddress, err
	}
	if err := storage.SetFarmPoolByToken(ctx, mu, addr, params.RewardToken, StakingPoolID); err != nil {
		return codec.EmptyAddress, err
	}
	if err := storage.SetFarmCount(ctx, mu, count+1); err != nil {
		return codec.EmptyAddress, err
	}
	env.Emit(addr, &OwnershipTransferredEvent{NewOwner: f.Owner})
	env.Emit(addr, &PoolAddedEvent{Pid: StakingPoolID, DepositToken: params.RewardToken, AllocPoint: params.StakingAllocPoint, Multiplier: DefaultMultiplier})
	return addr, nil
}

func Info(ctx context.Context, im state.Immutable, farm codec.Address) (*storage.Farm, error) {
	f, exists, err := storage.GetFarm(ctx, im, farm)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrFarmNotFound, farm)
	}
	return f, nil
}

func PoolInfo(ctx context.Context, im state.Immutable, farm codec.Address, pid uint64) (*storage.FarmPool, error) {
	p, exists, err := storage.GetFarmPool(ctx, im, farm, pid)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", ErrPoolNotFound, pid)
	}
	return p, nil
}

func PoolLength(ctx context.Context, im state.Immutable, farm codec.Address) (uint64, error) {
	f, err := Info(ctx, im, farm)
	if err != nil {
		return 0, err
	}
	return f.PoolCount, nil
}

// UserInfo returns a zeroed stake for users that never deposited.
func UserInfo(ctx context.Context, im state.Immutable, farm codec.Address, pid uint64, user codec.Address) (*storage.Stake, error) {
	if _, err := PoolInfo(ctx, im, farm, pid); err != nil {
		return nil, err
	}
	return storage.GetFarmUser(ctx, im, farm, pid, user)
}

// PendingReward projects the reward [user] would harvest from [pid] at
// [height] without mutating anything.
func PendingReward(
	ctx context.Context,
	im state.Immutable,
	farm codec.Address,
	pid uint64,
	user codec.Address,
	height uint64,
) (*uint256.Int, error) {
	f, err := Info(ctx, im, farm)
	if err != nil {
		return nil, err
	}
	p, err := PoolInfo(ctx, im, farm, pid)
	if err != nil {
		return nil, err
	}
	u, err := storage.GetFarmUser(ctx, im, farm, pid, user)
	if err != nil {
		return nil, err
	}
	acc := p.AccRewardPerShare
	if height > p.LastRewardBlock && !p.TotalStaked.IsZero() {
		reward, err := poolReward(f, p, p.LastRewardBlock, height)
		if err != nil {
			return nil, err
		}
		if acc, err = accumulator.Increase(acc, reward, p.TotalStaked); err != nil {
			return nil, err
		}
	}
	return accumulator.Pending(u.Amount, acc, u.RewardDebt)
}

func onlyOwner(env *chain.Env, f *storage.Farm) error {
	if env.Actor() != f.Owner {
		return fmt.Errorf("%w: %s", ErrUnauthorized, env.Actor())
	}
	return nil
}
