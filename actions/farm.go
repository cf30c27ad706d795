// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/farm"
	"github.com/ava-labs/dexfarm/storage"
)

var (
	_ chain.Action = (*CreateFarm)(nil)
	_ chain.Action = (*AddPool)(nil)
	_ chain.Action = (*SetPool)(nil)
	_ chain.Action = (*UpdateMultiplier)(nil)
	_ chain.Action = (*UpdatePool)(nil)
	_ chain.Action = (*MassUpdatePools)(nil)
	_ chain.Action = (*Deposit)(nil)
	_ chain.Action = (*Withdraw)(nil)
	_ chain.Action = (*EnterStaking)(nil)
	_ chain.Action = (*LeaveStaking)(nil)
	_ chain.Action = (*EmergencyWithdraw)(nil)
	_ chain.Action = (*UpdateRewardPerBlock)(nil)
	_ chain.Action = (*SetSchedule)(nil)
	_ chain.Action = (*Sweep)(nil)
	_ chain.Action = (*TransferOwnership)(nil)
)

type CreateFarm struct {
	RewardToken        codec.Address        `json:"rewardToken"`
	RewardPerBlock     *uint256.Int         `json:"rewardPerBlock"`
	StartBlock         uint64               `json:"startBlock"`
	Schedule           []storage.Breakpoint `json:"schedule,omitempty"`
	StakingAllocPoint  uint64               `json:"stakingAllocPoint"`
	StakingDivisor     uint64               `json:"stakingDivisor"`
	OptionalMassUpdate bool                 `json:"optionalMassUpdate,omitempty"`
}

func (*CreateFarm) GetTypeID() uint8 {
	return consts.CreateFarmID
}

func (c *CreateFarm) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	addr, err := farm.Create(ctx, env, &farm.Params{
		RewardToken:        c.RewardToken,
		RewardPerBlock:     amount(c.RewardPerBlock),
		StartBlock:         c.StartBlock,
		Schedule:           c.Schedule,
		StakingAllocPoint:  c.StakingAllocPoint,
		StakingDivisor:     c.StakingDivisor,
		OptionalMassUpdate: c.OptionalMassUpdate,
	})
	if err != nil {
		return nil, err
	}
	return &CreateFarmResult{Farm: addr}, nil
}

type AddPool struct {
	Farm         codec.Address `json:"farm"`
	AllocPoint   uint64        `json:"allocPoint"`
	DepositToken codec.Address `json:"depositToken"`
	WithUpdate   bool          `json:"withUpdate"`
	// An omitted multiplier means farm.DefaultMultiplier.
	Multiplier *uint64 `json:"multiplier,omitempty"`
}

func (*AddPool) GetTypeID() uint8 {
	return consts.AddPoolID
}

func (a *AddPool) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	multiplier := uint64(farm.DefaultMultiplier)
	if a.Multiplier != nil {
		multiplier = *a.Multiplier
	}
	pid, err := farm.Add(ctx, env, a.Farm, a.AllocPoint, a.DepositToken, a.WithUpdate, multiplier)
	if err != nil {
		return nil, err
	}
	return &AddPoolResult{Pid: pid}, nil
}

type SetPool struct {
	Farm       codec.Address `json:"farm"`
	Pid        uint64        `json:"pid"`
	AllocPoint uint64        `json:"allocPoint"`
	WithUpdate bool          `json:"withUpdate"`
}

func (*SetPool) GetTypeID() uint8 {
	return consts.SetPoolID
}

func (s *SetPool) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.Set(ctx, env, s.Farm, s.Pid, s.AllocPoint, s.WithUpdate)
}

type UpdateMultiplier struct {
	Farm       codec.Address `json:"farm"`
	Pid        uint64        `json:"pid"`
	Multiplier uint64        `json:"multiplier"`
}

func (*UpdateMultiplier) GetTypeID() uint8 {
	return consts.UpdateMultiplierID
}

func (u *UpdateMultiplier) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.UpdateMultiplier(ctx, env, u.Farm, u.Pid, u.Multiplier)
}

type UpdatePool struct {
	Farm codec.Address `json:"farm"`
	Pid  uint64        `json:"pid"`
}

func (*UpdatePool) GetTypeID() uint8 {
	return consts.UpdatePoolID
}

func (u *UpdatePool) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.UpdatePool(ctx, env, u.Farm, u.Pid)
}

type MassUpdatePools struct {
	Farm codec.Address `json:"farm"`
}

func (*MassUpdatePools) GetTypeID() uint8 {
	return consts.MassUpdatePoolsID
}

func (m *MassUpdatePools) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.MassUpdatePools(ctx, env, m.Farm)
}

type Deposit struct {
	Farm   codec.Address `json:"farm"`
	Pid    uint64        `json:"pid"`
	Amount *uint256.Int  `json:"amount"`
}

func (*Deposit) GetTypeID() uint8 {
	return consts.DepositID
}

func (d *Deposit) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.Deposit(ctx, env, d.Farm, d.Pid, amount(d.Amount))
}

// Withdraw with a zero amount harvests.
type Withdraw struct {
	Farm   codec.Address `json:"farm"`
	Pid    uint64        `json:"pid"`
	Amount *uint256.Int  `json:"amount"`
}

func (*Withdraw) GetTypeID() uint8 {
	return consts.WithdrawID
}

func (w *Withdraw) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.Withdraw(ctx, env, w.Farm, w.Pid, amount(w.Amount))
}

type EnterStaking struct {
	Farm   codec.Address `json:"farm"`
	Amount *uint256.Int  `json:"amount"`
}

func (*EnterStaking) GetTypeID() uint8 {
	return consts.EnterStakingID
}

func (e *EnterStaking) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.EnterStaking(ctx, env, e.Farm, amount(e.Amount))
}

type LeaveStaking struct {
	Farm   codec.Address `json:"farm"`
	Amount *uint256.Int  `json:"amount"`
}

func (*LeaveStaking) GetTypeID() uint8 {
	return consts.LeaveStakingID
}

func (l *LeaveStaking) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.LeaveStaking(ctx, env, l.Farm, amount(l.Amount))
}

type EmergencyWithdraw struct {
	Farm codec.Address `json:"farm"`
	Pid  uint64        `json:"pid"`
}

func (*EmergencyWithdraw) GetTypeID() uint8 {
	return consts.EmergencyWithdrawID
}

func (e *EmergencyWithdraw) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.EmergencyWithdraw(ctx, env, e.Farm, e.Pid)
}

type UpdateRewardPerBlock struct {
	Farm           codec.Address `json:"farm"`
	RewardPerBlock *uint256.Int  `json:"rewardPerBlock"`
}

func (*UpdateRewardPerBlock) GetTypeID() uint8 {
	return consts.UpdateRewardPerBlockID
}

func (u *UpdateRewardPerBlock) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.UpdateRewardPerBlock(ctx, env, u.Farm, amount(u.RewardPerBlock))
}

type SetSchedule struct {
	Farm     codec.Address        `json:"farm"`
	Schedule []storage.Breakpoint `json:"schedule"`
}

func (*SetSchedule) GetTypeID() uint8 {
	return consts.SetScheduleID
}

func (s *SetSchedule) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.SetSchedule(ctx, env, s.Farm, s.Schedule)
}

type Sweep struct {
	Farm  codec.Address `json:"farm"`
	Token codec.Address `json:"token"`
}

func (*Sweep) GetTypeID() uint8 {
	return consts.SweepID
}

func (s *Sweep) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.Sweep(ctx, env, s.Farm, s.Token)
}

type TransferOwnership struct {
	Farm     codec.Address `json:"farm"`
	NewOwner codec.Address `json:"newOwner"`
}

func (*TransferOwnership) GetTypeID() uint8 {
	return consts.TransferOwnershipID
}

func (t *TransferOwnership) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, farm.TransferOwnership(ctx, env, t.Farm, t.NewOwner)
}
