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

// UpdateRewardPerBlock settles every pool at the old rate before switching
// to [rewardPerBlock].
func UpdateRewardPerBlock(ctx context.Context, env *chain.Env, farm codec.Address, rewardPerBlock *uint256.Int) error {
	mu := env.State()
	f, err := Info(ctx, mu, farm)
	if err != nil {
		return err
	}
	if err := onlyOwner(env, f); err != nil {
		return err
	}
	if err := massUpdatePools(ctx, env, farm, f); err != nil {
		return err
	}
	previous := f.RewardPerBlock
	f.RewardPerBlock = fixedpoint.Clone(rewardPerBlock)
	if err := storage.SetFarm(ctx, mu, farm, f); err != nil {
		return err
	}
	env.Emit(farm, &RewardRateUpdatedEvent{Previous: previous, Current: fixedpoint.Clone(rewardPerBlock)})
	return nil
}

// SetSchedule replaces the bonus schedule. Blocks already accrued keep the
// multipliers they were accrued at.
func SetSchedule(ctx context.Context, env *chain.Env, farm codec.Address, schedule []storage.Breakpoint) error {
	if err := ValidateSchedule(schedule); err != nil {
		return err
	}
	mu := env.State()
	f, err := Info(ctx, mu, farm)
	if err != nil {
		return err
	}
	if err := onlyOwner(env, f); err != nil {
		return err
	}
	if err := massUpdatePools(ctx, env, farm, f); err != nil {
		return err
	}
	f.Schedule = schedule
	return storage.SetFarm(ctx, mu, farm, f)
}

func TransferOwnership(ctx context.Context, env *chain.Env, farm codec.Address, newOwner codec.Address) error {
	if newOwner == codec.EmptyAddress {
		return ErrZeroAddress
	}
	mu := env.State()
	f, err := Info(ctx, mu, farm)
	if err != nil {
		return err
	}
	if err := onlyOwner(env, f); err != nil {
		return err
	}
	previous := f.Owner
	f.Owner = newOwner
	if err := storage.SetFarm(ctx, mu, farm, f); err != nil {
		return err
	}
	env.Emit(farm, &OwnershipTransferredEvent{PreviousOwner: previous, NewOwner: newOwner})
	return nil
}

// Sweep sends the farm's whole balance of an unrelated token to the owner.
// Deposit tokens and the reward token can never be swept.
func Sweep(ctx context.Context, env *chain.Env, farm codec.Address, tok codec.Address) error {
	mu := env.State()
	f, err := Info(ctx, mu, farm)
	if err != nil {
		return err
	}
	if err := onlyOwner(env, f); err != nil {
		return err
	}
	if tok == f.RewardToken {
		return fmt.Errorf("%w: %s", ErrCannotSweep, tok)
	}
	_, isDeposit, err := storage.GetFarmPoolByToken(ctx, mu, farm, tok)
	if err != nil {
		return err
	}
	if isDeposit {
		return fmt.Errorf("%w: %s", ErrCannotSweep, tok)
	}
	balance, err := token.BalanceOf(ctx, mu, tok, farm)
	if err != nil {
		return err
	}
	if balance.IsZero() {
		return ErrNothingToSweep
	}
	if err := token.Transfer(ctx, env, tok, farm, f.Owner, balance); err != nil {
		return err
	}
	env.Emit(farm, &TokenRecoveryEvent{Token: tok, Amount: balance})
	return nil
}
