// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
)

var (
	_ chain.Event = (*DepositEvent)(nil)
	_ chain.Event = (*WithdrawEvent)(nil)
	_ chain.Event = (*EmergencyWithdrawEvent)(nil)
	_ chain.Event = (*TokenRecoveryEvent)(nil)
	_ chain.Event = (*RewardRateUpdatedEvent)(nil)
	_ chain.Event = (*RewardsStopEvent)(nil)
	_ chain.Event = (*NewStartAndEndBlocksEvent)(nil)
	_ chain.Event = (*NewPoolLimitEvent)(nil)
)

type DepositEvent struct {
	User   codec.Address `json:"user"`
	Amount *uint256.Int  `json:"amount"`
}

func (*DepositEvent) GetTypeID() uint8 {
	return consts.StakingDepositEventID
}

type WithdrawEvent struct {
	User   codec.Address `json:"user"`
	Amount *uint256.Int  `json:"amount"`
}

func (*WithdrawEvent) GetTypeID() uint8 {
	return consts.StakingWithdrawEventID
}

type EmergencyWithdrawEvent struct {
	User   codec.Address `json:"user"`
	Amount *uint256.Int  `json:"amount"`
}

func (*EmergencyWithdrawEvent) GetTypeID() uint8 {
	return consts.StakingEmergencyWithdrawEventID
}

type TokenRecoveryEvent struct {
	Token  codec.Address `json:"token"`
	Amount *uint256.Int  `json:"amount"`
}

func (*TokenRecoveryEvent) GetTypeID() uint8 {
	return consts.StakingTokenRecoveryEventID
}

type RewardRateUpdatedEvent struct {
	RewardPerBlock *uint256.Int `json:"rewardPerBlock"`
}

func (*RewardRateUpdatedEvent) GetTypeID() uint8 {
	return consts.StakingRewardRateUpdatedEventID
}

type RewardsStopEvent struct {
	Block uint64 `json:"block"`
}

func (*RewardsStopEvent) GetTypeID() uint8 {
	return consts.RewardsStopEventID
}

type NewStartAndEndBlocksEvent struct {
	StartBlock uint64 `json:"startBlock"`
	EndBlock   uint64 `json:"endBlock"`
}

func (*NewStartAndEndBlocksEvent) GetTypeID() uint8 {
	return consts.NewStartAndEndBlocksEventID
}

type NewPoolLimitEvent struct {
	PoolLimitPerUser *uint256.Int `json:"poolLimitPerUser"`
}

func (*NewPoolLimitEvent) GetTypeID() uint8 {
	return consts.NewPoolLimitEventID
}
