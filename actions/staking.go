// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/staking"
)

var (
	_ chain.Action = (*CreateStakingPool)(nil)
	_ chain.Action = (*StakingDeposit)(nil)
	_ chain.Action = (*StakingWithdraw)(nil)
	_ chain.Action = (*StakingEmergencyWithdraw)(nil)
	_ chain.Action = (*StakingRecoverToken)(nil)
	_ chain.Action = (*StakingStopReward)(nil)
	_ chain.Action = (*StakingUpdateRewardPerBlock)(nil)
	_ chain.Action = (*StakingUpdateStartAndEndBlocks)(nil)
	_ chain.Action = (*StakingUpdatePoolLimit)(nil)
	_ chain.Action = (*StakingEmergencyRewardWithdraw)(nil)
)

type CreateStakingPool struct {
	StakedToken      codec.Address `json:"stakedToken"`
	RewardToken      codec.Address `json:"rewardToken"`
	RewardPerBlock   *uint256.Int  `json:"rewardPerBlock"`
	StartBlock       uint64        `json:"startBlock"`
	EndBlock         uint64        `json:"endBlock"`
	PoolLimitPerUser *uint256.Int  `json:"poolLimitPerUser,omitempty"`
	LimitBlocks      uint64        `json:"limitBlocks,omitempty"`
}

func (*CreateStakingPool) GetTypeID() uint8 {
	return consts.CreateStakingPoolID
}

func (c *CreateStakingPool) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	pool, err := staking.Create(ctx, env, &staking.Params{
		StakedToken:      c.StakedToken,
		RewardToken:      c.RewardToken,
		RewardPerBlock:   amount(c.RewardPerBlock),
		StartBlock:       c.StartBlock,
		EndBlock:         c.EndBlock,
		PoolLimitPerUser: amount(c.PoolLimitPerUser),
		LimitBlocks:      c.LimitBlocks,
	})
	if err != nil {
		return nil, err
	}
	return &CreateStakingPoolResult{Pool: pool}, nil
}

type StakingDeposit struct {
	Pool   codec.Address `json:"pool"`
	Amount *uint256.Int  `json:"amount"`
}

func (*StakingDeposit) GetTypeID() uint8 {
	return consts.StakingDepositID
}

func (s *StakingDeposit) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, staking.Deposit(ctx, env, s.Pool, amount(s.Amount))
}

type StakingWithdraw struct {
	Pool   codec.Address `json:"pool"`
	Amount *uint256.Int  `json:"amount"`
}

func (*StakingWithdraw) GetTypeID() uint8 {
	return consts.StakingWithdrawID
}

func (s *StakingWithdraw) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, staking.Withdraw(ctx, env, s.Pool, amount(s.Amount))
}

type StakingEmergencyWithdraw struct {
	Pool codec.Address `json:"pool"`
}

func (*StakingEmergencyWithdraw) GetTypeID() uint8 {
	return consts.StakingEmergencyWithdrawID
}

func (s *StakingEmergencyWithdraw) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, staking.EmergencyWithdraw(ctx, env, s.Pool)
}

type StakingRecoverToken struct {
	Pool  codec.Address `json:"pool"`
	Token codec.Address `json:"token"`
}

func (*StakingRecoverToken) GetTypeID() uint8 {
	return consts.StakingRecoverTokenID
}

func (s *StakingRecoverToken) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, staking.RecoverToken(ctx, env, s.Pool, s.Token)
}

type StakingStopReward struct {
	Pool codec.Address `json:"pool"`
}

func (*StakingStopReward) GetTypeID() uint8 {
	return consts.StakingStopRewardID
}

func (s *StakingStopReward) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, staking.StopReward(ctx, env, s.Pool)
}

type StakingUpdateRewardPerBlock struct {
	Pool           codec.Address `json:"pool"`
	RewardPerBlock *uint256.Int  `json:"rewardPerBlock"`
}

func (*StakingUpdateRewardPerBlock) GetTypeID() uint8 {
	return consts.StakingUpdateRewardPerBlockID
}

func (s *StakingUpdateRewardPerBlock) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, staking.UpdateRewardPerBlock(ctx, env, s.Pool, amount(s.RewardPerBlock))
}

type StakingUpdateStartAndEndBlocks struct {
	Pool       codec.Address `json:"pool"`
	StartBlock uint64        `json:"startBlock"`
	EndBlock   uint64        `json:"endBlock"`
}

func (*StakingUpdateStartAndEndBlocks) GetTypeID() uint8 {
	return consts.StakingUpdateStartAndEndBlocksID
}

func (s *StakingUpdateStartAndEndBlocks) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, staking.UpdateStartAndEndBlocks(ctx, env, s.Pool, s.StartBlock, s.EndBlock)
}

type StakingUpdatePoolLimit struct {
	Pool             codec.Address `json:"pool"`
	UserLimit        bool          `json:"userLimit"`
	PoolLimitPerUser *uint256.Int  `json:"poolLimitPerUser"`
}

func (*StakingUpdatePoolLimit) GetTypeID() uint8 {
	return consts.StakingUpdatePoolLimitID
}

func (s *StakingUpdatePoolLimit) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, staking.UpdatePoolLimitPerUser(ctx, env, s.Pool, s.UserLimit, amount(s.PoolLimitPerUser))
}

type StakingEmergencyRewardWithdraw struct {
	Pool   codec.Address `json:"pool"`
	Amount *uint256.Int  `json:"amount"`
}

func (*StakingEmergencyRewardWithdraw) GetTypeID() uint8 {
	return consts.StakingEmergencyRewardWithdrawID
}

func (s *StakingEmergencyRewardWithdraw) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, staking.EmergencyRewardWithdraw(ctx, env, s.Pool, amount(s.Amount))
}
