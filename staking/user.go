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

// loadCurrent reads [pool] and brings its accumulator up to the current
// height.
func loadCurrent(ctx context.Context, env *chain.Env, pool codec.Address) (*storage.StakingPool, error) {
	sp, err := Info(ctx, env.State(), pool)
	if err != nil {
		return nil, err
	}
	if err := update(sp, env.Height()); err != nil {
		return nil, err
	}
	return sp, nil
}

// payReward sends [amount] of the reward token from [pool] to [user].
// Rewards are pre-funded, so a pool that cannot cover [amount] fails.
func payReward(ctx context.Context, env *chain.Env, pool codec.Address, sp *storage.StakingPool, user codec.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	balance, err := token.BalanceOf(ctx, env.State(), sp.RewardToken, pool)
	if err != nil {
		return err
	}
	if balance.Lt(amount) {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientRewards, amount, balance)
	}
	return token.Transfer(ctx, env, sp.RewardToken, pool, user, amount)
}

func pending(sp *storage.StakingPool, u *storage.Stake) (*uint256.Int, error) {
	if u.Amount.IsZero() {
		return fixedpoint.Zero(), nil
	}
	return accumulatorOf(sp).Pending(u.Amount, sp.AccTokenPerShare, u.RewardDebt)
}

func save(ctx context.Context, env *chain.Env, pool codec.Address, sp *storage.StakingPool, user codec.Address, u *storage.Stake) error {
	debt, err := accumulatorOf(sp).Debt(u.Amount, sp.AccTokenPerShare)
	if err != nil {
		return err
	}
	u.RewardDebt = debt
	mu := env.State()
	if err := storage.SetStakingUser(ctx, mu, pool, user, u); err != nil {
		return err
	}
	return storage.SetStakingPool(ctx, mu, pool, sp)
}

// Deposit stakes [amount] of the staked token and pays out any pending
// reward. A zero amount only harvests.
func Deposit(ctx context.Context, env *chain.Env, pool codec.Address, amount *uint256.Int) error {
	user := env.Actor()
	sp, err := loadCurrent(ctx, env, pool)
	if err != nil {
		return err
	}
	u, err := storage.GetStakingUser(ctx, env.State(), pool, user)
	if err != nil {
		return err
	}
	if HasUserLimit(sp, env.Height()) {
		total, err := fixedpoint.Add(u.Amount, amount)
		if err != nil {
			return err
		}
		if total.Gt(sp.PoolLimitPerUser) {
			return fmt.Errorf("%w: %s > %s", ErrUserLimit, total, sp.PoolLimitPerUser)
		}
	}
	reward, err := pending(sp, u)
	if err != nil {
		return err
	}
	if err := payReward(ctx, env, pool, sp, user, reward); err != nil {
		return err
	}
	if !amount.IsZero() {
		if err := token.Transfer(ctx, env, sp.StakedToken, user, pool, amount); err != nil {
			return err
		}
		if u.Amount, err = fixedpoint.Add(u.Amount, amount); err != nil {
			return err
		}
		if sp.TotalStaked, err = fixedpoint.Add(sp.TotalStaked, amount); err != nil {
			return err
		}
	}
	if err := save(ctx, env, pool, sp, user, u); err != nil {
		return err
	}
	env.Emit(pool, &DepositEvent{User: user, Amount: fixedpoint.Clone(amount)})
	return nil
}

// Withdraw unstakes [amount] and pays out any pending reward.
func Withdraw(ctx context.Context, env *chain.Env, pool codec.Address, amount *uint256.Int) error {
	user := env.Actor()
	sp, err := loadCurrent(ctx, env, pool)
	if err != nil {
		return err
	}
	u, err := storage.GetStakingUser(ctx, env.State(), pool, user)
	if err != nil {
		return err
	}
	if amount.Gt(u.Amount) {
		return fmt.Errorf("%w: %s > %s", ErrWithdrawTooHigh, amount, u.Amount)
	}
	reward, err := pending(sp, u)
	if err != nil {
		return err
	}
	if !amount.IsZero() {
		if u.Amount, err = fixedpoint.Sub(u.Amount, amount); err != nil {
			return err
		}
		if sp.TotalStaked, err = fixedpoint.Sub(sp.TotalStaked, amount); err != nil {
			return err
		}
		if err := token.Transfer(ctx, env, sp.StakedToken, pool, user, amount); err != nil {
			return err
		}
	}
	if err := payReward(ctx, env, pool, sp, user, reward); err != nil {
		return err
	}
	if err := save(ctx, env, pool, sp, user, u); err != nil {
		return err
	}
	env.Emit(pool, &WithdrawEvent{User: user, Amount: fixedpoint.Clone(amount)})
	return nil
}

// EmergencyWithdraw returns the caller's whole stake and forfeits the
// pending reward. The pool accumulator is not touched.
func EmergencyWithdraw(ctx context.Context, env *chain.Env, pool codec.Address) error {
	user := env.Actor()
	mu := env.State()
	sp, err := Info(ctx, mu, pool)
	if err != nil {
		return err
	}
	u, err := storage.GetStakingUser(ctx, mu, pool, user)
	if err != nil {
		return err
	}
	amount := u.Amount
	if !amount.IsZero() {
		if sp.TotalStaked, err = fixedpoint.Sub(sp.TotalStaked, amount); err != nil {
			return err
		}
		if err := token.Transfer(ctx, env, sp.StakedToken, pool, user, amount); err != nil {
			return err
		}
	}
	if err := storage.SetStakingUser(ctx, mu, pool, user, storage.NewStake()); err != nil {
		return err
	}
	if err := storage.SetStakingPool(ctx, mu, pool, sp); err != nil {
		return err
	}
	env.Emit(pool, &EmergencyWithdrawEvent{User: user, Amount: fixedpoint.Clone(amount)})
	return nil
}
