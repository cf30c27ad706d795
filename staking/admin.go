// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/token"
)

func onlyOwner(ctx context.Context, env *chain.Env, pool codec.Address) (*storage.StakingPool, error) {
	sp, err := Info(ctx, env.State(), pool)
	if err != nil {
		return nil, err
	}
	if sp.Owner != env.Actor() {
		return nil, fmt.Errorf("%w: %s is not the owner", ErrUnauthorized, env.Actor())
	}
	return sp, nil
}

func notStarted(sp *storage.StakingPool, height uint64) error {
	if height >= sp.StartBlock {
		return fmt.Errorf("%w: started at %d", ErrPoolStarted, sp.StartBlock)
	}
	return nil
}

// StopReward ends reward accrual at the current height.
func StopReward(ctx context.Context, env *chain.Env, pool codec.Address) error {
	sp, err := onlyOwner(ctx, env, pool)
	if err != nil {
		return err
	}
	sp.EndBlock = env.Height()
	if err := storage.SetStakingPool(ctx, env.State(), pool, sp); err != nil {
		return err
	}
	env.Emit(pool, &RewardsStopEvent{Block: sp.EndBlock})
	return nil
}

// EmergencyRewardWithdraw sends [amount] of the reward token held by the
// pool back to the owner.
func EmergencyRewardWithdraw(ctx context.Context, env *chain.Env, pool codec.Address, amount *uint256.Int) error {
	sp, err := onlyOwner(ctx, env, pool)
	if err != nil {
		return err
	}
	return token.Transfer(ctx, env, sp.RewardToken, pool, sp.Owner, amount)
}

// RecoverToken sends the pool's whole balance of a token sent to it by
// mistake to the owner.
func RecoverToken(ctx context.Context, env *chain.Env, pool codec.Address, tok codec.Address) error {
	sp, err := onlyOwner(ctx, env, pool)
	if err != nil {
		return err
	}
	switch tok {
	case sp.StakedToken:
		return ErrRecoverStakedToken
	case sp.RewardToken:
		return ErrRecoverRewardToken
	}
	balance, err := token.BalanceOf(ctx, env.State(), tok, pool)
	if err != nil {
		return err
	}
	if balance.IsZero() {
		return ErrRecoverZeroBalance
	}
	if err := token.Transfer(ctx, env, tok, pool, sp.Owner, balance); err != nil {
		return err
	}
	env.Emit(pool, &TokenRecoveryEvent{Token: tok, Amount: balance})
	return nil
}

// UpdatePoolLimitPerUser raises the per-user cap or removes it. A removed
// cap cannot be restored.
func UpdatePoolLimitPerUser(ctx context.Context, env *chain.Env, pool codec.Address, userLimit bool, limit *uint256.Int) error {
	sp, err := onlyOwner(ctx, env, pool)
	if err != nil {
		return err
	}
	if !sp.UserLimit {
		return ErrMustBeSet
	}
	if userLimit {
		if !limit.Gt(sp.PoolLimitPerUser) {
			return fmt.Errorf("%w: %s <= %s", ErrLimitNotHigher, limit, sp.PoolLimitPerUser)
		}
		sp.PoolLimitPerUser = fixedpoint.Clone(limit)
	} else {
		sp.UserLimit = false
		sp.PoolLimitPerUser = fixedpoint.Zero()
	}
	if err := storage.SetStakingPool(ctx, env.State(), pool, sp); err != nil {
		return err
	}
	env.Emit(pool, &NewPoolLimitEvent{PoolLimitPerUser: fixedpoint.Clone(sp.PoolLimitPerUser)})
	return nil
}

// UpdateRewardPerBlock changes the rate before the pool starts.
func UpdateRewardPerBlock(ctx context.Context, env *chain.Env, pool codec.Address, rewardPerBlock *uint256.Int) error {
	sp, err := onlyOwner(ctx, env, pool)
	if err != nil {
		return err
	}
	if err := notStarted(sp, env.Height()); err != nil {
		return err
	}
	sp.RewardPerBlock = fixedpoint.Clone(rewardPerBlock)
	if err := storage.SetStakingPool(ctx, env.State(), pool, sp); err != nil {
		return err
	}
	env.Emit(pool, &RewardRateUpdatedEvent{RewardPerBlock: fixedpoint.Clone(rewardPerBlock)})
	return nil
}

// UpdateStartAndEndBlocks reschedules a pool that has not started.
func UpdateStartAndEndBlocks(ctx context.Context, env *chain.Env, pool codec.Address, start, end uint64) error {
	sp, err := onlyOwner(ctx, env, pool)
	if err != nil {
		return err
	}
	height := env.Height()
	if err := notStarted(sp, height); err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("%w: %d >= %d", ErrStartAfterEnd, start, end)
	}
	if height >= start {
		return fmt.Errorf("%w: %d <= %d", ErrStartInPast, start, height)
	}
	sp.StartBlock = start
	sp.EndBlock = end
	sp.LastRewardBlock = start
	if err := storage.SetStakingPool(ctx, env.State(), pool, sp); err != nil {
		return err
	}
	env.Emit(pool, &NewStartAndEndBlocksEvent{StartBlock: start, EndBlock: end})
	return nil
}
