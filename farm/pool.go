// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package farm

import (
	"context"
	"fmt"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/token"
)

// updatePool brings [pid] current at the env height. Newly emitted reward
// is minted to the farm and added to [f]'s reserve. Both records are
// written back.
func updatePool(ctx context.Context, env *chain.Env, farm codec.Address, f *storage.Farm, pid uint64) (*storage.FarmPool, error) {
	mu := env.State()
	p, err := PoolInfo(ctx, mu, farm, pid)
	if err != nil {
		return nil, err
	}
	height := env.Height()
	if height <= p.LastRewardBlock {
		return p, nil
	}
	if p.TotalStaked.IsZero() {
		// Emission over an empty pool is forfeited.
		p.LastRewardBlock = height
		return p, storage.SetFarmPool(ctx, mu, farm, pid, p)
	}
	reward, err := poolReward(f, p, p.LastRewardBlock, height)
	if err != nil {
		return nil, err
	}
	if !reward.IsZero() {
		if err := token.Mint(ctx, env, f.RewardToken, farm, farm, reward); err != nil {
			return nil, err
		}
		if f.RewardReserve, err = fixedpoint.Add(f.RewardReserve, reward); err != nil {
			return nil, err
		}
		if err := storage.SetFarm(ctx, mu, farm, f); err != nil {
			return nil, err
		}
		if p.AccRewardPerShare, err = accumulator.Increase(p.AccRewardPerShare, reward, p.TotalStaked); err != nil {
			return nil, err
		}
	}
	p.LastRewardBlock = height
	return p, storage.SetFarmPool(ctx, mu, farm, pid, p)
}

func massUpdatePools(ctx context.Context, env *chain.Env, farm codec.Address, f *storage.Farm) error {
	for pid := uint64(0); pid < f.PoolCount; pid++ {
		if _, err := updatePool(ctx, env, farm, f, pid); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePool is a no-op when [pid] was already updated at this height.
func UpdatePool(ctx context.Context, env *chain.Env, farm codec.Address, pid uint64) error {
	f, err := Info(ctx, env.State(), farm)
	if err != nil {
		return err
	}
	_, err = updatePool(ctx, env, farm, f, pid)
	return err
}

func MassUpdatePools(ctx context.Context, env *chain.Env, farm codec.Address) error {
	f, err := Info(ctx, env.State(), farm)
	if err != nil {
		return err
	}
	return massUpdatePools(ctx, env, farm, f)
}

// weightChange runs the mass update that must precede any change to the
// allocation weights. Legacy farms skip it unless asked.
func weightChange(ctx context.Context, env *chain.Env, farm codec.Address, f *storage.Farm, withUpdate bool) error {
	if withUpdate || !f.OptionalMassUpdate {
		return massUpdatePools(ctx, env, farm, f)
	}
	return nil
}

// Add registers a standard pool for [depositToken] and returns its pid.
// [multiplier] scales the pool's emission, see [UpdateMultiplier].
func Add(
	ctx context.Context,
	env *chain.Env,
	farm codec.Address,
	allocPoint uint64,
	depositToken codec.Address,
	withUpdate bool,
	multiplier uint64,
) (uint64, error) {
	mu := env.State()
	f, err := Info(ctx, mu, farm)
	if err != nil {
		return 0, err
	}
	if err := onlyOwner(env, f); err != nil {
		return 0, err
	}
	if _, err := token.Info(ctx, mu, depositToken); err != nil {
		return 0, err
	}
	_, exists, err := storage.GetFarmPoolByToken(ctx, mu, farm, depositToken)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: %s", ErrTokenAlreadyAdded, depositToken)
	}
	totalAllocPoint, err := smath.Add64(f.TotalAllocPoint, allocPoint)
	if err != nil {
		return 0, err
	}
	if err := weightChange(ctx, env, farm, f, withUpdate); err != nil {
		return 0, err
	}
	pid := f.PoolCount
	if err := storage.SetFarmPool(ctx, mu, farm, pid, &storage.FarmPool{
		DepositToken:      depositToken,
		Kind:              storage.StandardPool,
		AllocPoint:        allocPoint,
		Multiplier:        multiplier,
		LastRewardBlock:   max(env.Height(), f.StartBlock),
		AccRewardPerShare: fixedpoint.Zero(),
		TotalStaked:       fixedpoint.Zero(),
	}); err != nil {
		return 0, err
	}
	if err := storage.SetFarmPoolByToken(ctx, mu, farm, depositToken, pid); err != nil {
		return 0, err
	}
	f.PoolCount++
	f.TotalAllocPoint = totalAllocPoint
	if err := reweightStakingPool(ctx, env, farm, f); err != nil {
		return 0, err
	}
	if err := storage.SetFarm(ctx, mu, farm, f); err != nil {
		return 0, err
	}
	env.Emit(farm, &PoolAddedEvent{Pid: pid, DepositToken: depositToken, AllocPoint: allocPoint, Multiplier: multiplier})
	return pid, nil
}

// Set changes the allocation weight of [pid].
func Set(
	ctx context.Context,
	env *chain.Env,
	farm codec.Address,
	pid uint64,
	allocPoint uint64,
	withUpdate bool,
) error {
	mu := env.State()
	f, err := Info(ctx, mu, farm)
	if err != nil {
		return err
	}
	if err := onlyOwner(env, f); err != nil {
		return err
	}
	if _, err := PoolInfo(ctx, mu, farm, pid); err != nil {
		return err
	}
	if err := weightChange(ctx, env, farm, f, withUpdate); err != nil {
		return err
	}
	p, err := PoolInfo(ctx, mu, farm, pid)
	if err != nil {
		return err
	}
	if p.AllocPoint != allocPoint {
		if f.TotalAllocPoint, err = reweigh(f.TotalAllocPoint, p.AllocPoint, allocPoint); err != nil {
			return err
		}
		p.AllocPoint = allocPoint
		if err := storage.SetFarmPool(ctx, mu, farm, pid, p); err != nil {
			return err
		}
		if err := reweightStakingPool(ctx, env, farm, f); err != nil {
			return err
		}
		if err := storage.SetFarm(ctx, mu, farm, f); err != nil {
			return err
		}
		// The staking pool weight may have been recomputed.
		if p, err = PoolInfo(ctx, mu, farm, pid); err != nil {
			return err
		}
	}
	env.Emit(farm, &PoolUpdatedEvent{Pid: pid, AllocPoint: p.AllocPoint, Multiplier: p.Multiplier})
	return nil
}

// UpdateMultiplier scales the emission of [pid]. A zero multiplier stops
// the pool from earning without changing the other pools' shares.
func UpdateMultiplier(ctx context.Context, env *chain.Env, farm codec.Address, pid uint64, multiplier uint64) error {
	mu := env.State()
	f, err := Info(ctx, mu, farm)
	if err != nil {
		return err
	}
	if err := onlyOwner(env, f); err != nil {
		return err
	}
	p, err := updatePool(ctx, env, farm, f, pid)
	if err != nil {
		return err
	}
	p.Multiplier = multiplier
	if err := storage.SetFarmPool(ctx, mu, farm, pid, p); err != nil {
		return err
	}
	env.Emit(farm, &PoolUpdatedEvent{Pid: pid, AllocPoint: p.AllocPoint, Multiplier: multiplier})
	return nil
}

// reweightStakingPool sets the staking pool weight to a fixed fraction of
// every other pool's weight. [f] is updated but not written.
func reweightStakingPool(ctx context.Context, env *chain.Env, farm codec.Address, f *storage.Farm) error {
	if f.StakingDivisor == 0 {
		return nil
	}
	mu := env.State()
	var points uint64
	for pid := uint64(1); pid < f.PoolCount; pid++ {
		p, err := PoolInfo(ctx, mu, farm, pid)
		if err != nil {
			return err
		}
		if points, err = smath.Add64(points, p.AllocPoint); err != nil {
			return err
		}
	}
	staking, err := PoolInfo(ctx, mu, farm, StakingPoolID)
	if err != nil {
		return err
	}
	weight := points / f.StakingDivisor
	if staking.AllocPoint == weight {
		return nil
	}
	if f.TotalAllocPoint, err = reweigh(f.TotalAllocPoint, staking.AllocPoint, weight); err != nil {
		return err
	}
	staking.AllocPoint = weight
	return storage.SetFarmPool(ctx, mu, farm, StakingPoolID, staking)
}

// reweigh replaces [from] with [to] in [total].
func reweigh(total, from, to uint64) (uint64, error) {
	total, err := smath.Sub(total, from)
	if err != nil {
		return 0, err
	}
	return smath.Add64(total, to)
}
