// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package farm

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

// Deposit stakes [amount] of the deposit token of standard pool [pid],
// harvesting any pending reward first.
func Deposit(ctx context.Context, env *chain.Env, farm codec.Address, pid uint64, amount *uint256.Int) error {
	return deposit(ctx, env, farm, pid, storage.StandardPool, amount)
}

// Withdraw unstakes [amount] from standard pool [pid], harvesting any
// pending reward first. A zero amount only harvests.
func Withdraw(ctx context.Context, env *chain.Env, farm codec.Address, pid uint64, amount *uint256.Int) error {
	return withdraw(ctx, env, farm, pid, storage.StandardPool, amount)
}

// EnterStaking stakes the reward token in the staking pool.
func EnterStaking(ctx context.Context, env *chain.Env, farm codec.Address, amount *uint256.Int) error {
	return deposit(ctx, env, farm, StakingPoolID, storage.SelfReferentialPool, amount)
}

func LeaveStaking(ctx context.Context, env *chain.Env, farm codec.Address, amount *uint256.Int) error {
	return withdraw(ctx, env, farm, StakingPoolID, storage.SelfReferentialPool, amount)
}

func checkKind(p *storage.FarmPool, pid uint64, kind storage.PoolKind) error {
	if p.Kind == kind {
		return nil
	}
	if kind == storage.StandardPool {
		return fmt.Errorf("%w: pool %d is %s, use staking", ErrWrongPoolKind, pid, p.Kind)
	}
	return fmt.Errorf("%w: pool %d is %s, use deposit", ErrWrongPoolKind, pid, p.Kind)
}

func deposit(
	ctx context.Context,
	env *chain.Env,
	farm codec.Address,
	pid uint64,
	kind storage.PoolKind,
	amount *uint256.Int,
) error {
	mu := env.State()
	user := env.Actor()
	f, err := Info(ctx, mu, farm)
	if err != nil {
		return err
	}
	p, err := PoolInfo(ctx, mu, farm, pid)
	if err != nil {
		return err
	}
	if err := checkKind(p, pid, kind); err != nil {
		return err
	}
	if p, err = updatePool(ctx, env, farm, f, pid); err != nil {
		return err
	}
	u, err := storage.GetFarmUser(ctx, mu, farm, pid, user)
	if err != nil {
		return err
	}
	if err := harvest(ctx, env, farm, f, p, u, user); err != nil {
		return err
	}
	if !amount.IsZero() {
		if err := token.Transfer(ctx, env, p.DepositToken, user, farm, amount); err != nil {
			return err
		}
		if u.Amount, err = fixedpoint.Add(u.Amount, amount); err != nil {
			return err
		}
		if p.TotalStaked, err = fixedpoint.Add(p.TotalStaked, amount); err != nil {
			return err
		}
	}
	if err := checkpoint(ctx, env, farm, pid, p, u, user); err != nil {
		return err
	}
	env.Emit(farm, &DepositEvent{User: user, Pid: pid, Amount: fixedpoint.Clone(amount)})
	return nil
}

func withdraw(
	ctx context.Context,
	env *chain.Env,
	farm codec.Address,
	pid uint64,
	kind storage.PoolKind,
	amount *uint256.Int,
) error {
	mu := env.State()
	user := env.Actor()
	f, err := Info(ctx, mu, farm)
	if err != nil {
		return err
	}
	p, err := PoolInfo(ctx, mu, farm, pid)
	if err != nil {
		return err
	}
	if err := checkKind(p, pid, kind); err != nil {
		return err
	}
	u, err := storage.GetFarmUser(ctx, mu, farm, pid, user)
	if err != nil {
		return err
	}
	if u.Amount.Lt(amount) {
		return fmt.Errorf("%w: staked %s, requested %s", ErrInsufficientBalance, u.Amount.Dec(), amount.Dec())
	}
	if p, err = updatePool(ctx, env, farm, f, pid); err != nil {
		return err
	}
	if err := harvest(ctx, env, farm, f, p, u, user); err != nil {
		return err
	}
	if !amount.IsZero() {
		u.Amount = new(uint256.Int).Sub(u.Amount, amount)
		if p.TotalStaked, err = fixedpoint.Sub(p.TotalStaked, amount); err != nil {
			return err
		}
		if err := token.Transfer(ctx, env, p.DepositToken, farm, user, amount); err != nil {
			return err
		}
	}
	if err := checkpoint(ctx, env, farm, pid, p, u, user); err != nil {
		return err
	}
	env.Emit(farm, &WithdrawEvent{User: user, Pid: pid, Amount: fixedpoint.Clone(amount)})
	return nil
}

// EmergencyWithdraw returns the caller's whole stake in [pid] and forfeits
// any pending reward.
func EmergencyWithdraw(ctx context.Context, env *chain.Env, farm codec.Address, pid uint64) error {
	mu := env.State()
	user := env.Actor()
	p, err := PoolInfo(ctx, mu, farm, pid)
	if err != nil {
		return err
	}
	u, err := storage.GetFarmUser(ctx, mu, farm, pid, user)
	if err != nil {
		return err
	}
	amount := u.Amount
	if !amount.IsZero() {
		if err := token.Transfer(ctx, env, p.DepositToken, farm, user, amount); err != nil {
			return err
		}
		if p.TotalStaked, err = fixedpoint.Sub(p.TotalStaked, amount); err != nil {
			return err
		}
		if err := storage.SetFarmPool(ctx, mu, farm, pid, p); err != nil {
			return err
		}
	}
	if err := storage.SetFarmUser(ctx, mu, farm, pid, user, storage.NewStake()); err != nil {
		return err
	}
	env.Emit(farm, &EmergencyWithdrawEvent{User: user, Pid: pid, Amount: fixedpoint.Clone(amount)})
	return nil
}

// harvest pays [u]'s pending reward in [p] to [user]. [p] must be current.
func harvest(
	ctx context.Context,
	env *chain.Env,
	farm codec.Address,
	f *storage.Farm,
	p *storage.FarmPool,
	u *storage.Stake,
	user codec.Address,
) error {
	if u.Amount.IsZero() {
		return nil
	}
	pending, err := accumulator.Pending(u.Amount, p.AccRewardPerShare, u.RewardDebt)
	if err != nil {
		return err
	}
	if pending.IsZero() {
		return nil
	}
	return safeRewardTransfer(ctx, env, farm, f, user, pending)
}

// safeRewardTransfer pays at most the farm's reward reserve, so staked
// reward tokens in the staking pool are never paid out as reward.
func safeRewardTransfer(
	ctx context.Context,
	env *chain.Env,
	farm codec.Address,
	f *storage.Farm,
	to codec.Address,
	amount *uint256.Int,
) error {
	paid := fixedpoint.Min(amount, f.RewardReserve)
	if paid.IsZero() {
		return nil
	}
	if err := token.Transfer(ctx, env, f.RewardToken, farm, to, paid); err != nil {
		return err
	}
	f.RewardReserve = new(uint256.Int).Sub(f.RewardReserve, paid)
	return storage.SetFarm(ctx, env.State(), farm, f)
}

// checkpoint resets [u]'s reward debt against the current accumulator and
// writes back the pool and stake.
func checkpoint(
	ctx context.Context,
	env *chain.Env,
	farm codec.Address,
	pid uint64,
	p *storage.FarmPool,
	u *storage.Stake,
	user codec.Address,
) error {
	debt, err := accumulator.Debt(u.Amount, p.AccRewardPerShare)
	if err != nil {
		return err
	}
	u.RewardDebt = debt
	if err := storage.SetFarmPool(ctx, env.State(), farm, pid, p); err != nil {
		return err
	}
	return storage.SetFarmUser(ctx, env.State(), farm, pid, user, u)
}
