// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package farm

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
	_ chain.Event = (*PoolAddedEvent)(nil)
	_ chain.Event = (*PoolUpdatedEvent)(nil)
	_ chain.Event = (*OwnershipTransferredEvent)(nil)
	_ chain.Event = (*RewardRateUpdatedEvent)(nil)
	_ chain.Event = (*TokenRecoveryEvent)(nil)
)

type DepositEvent struct {
	User   codec.Address `json:"user"`
	Pid    uint64        `json:"pid"`
	Amount *uint256.Int  `json:"amount"`
}

func (*DepositEvent) GetTypeID() uint8 {
	return consts.DepositEventID
}

type WithdrawEvent struct {
	User   codec.Address `json:"user"`
	Pid    uint64        `json:"pid"`
	Amount *uint256.Int  `json:"amount"`
}

func (*WithdrawEvent) GetTypeID() uint8 {
	return consts.WithdrawEventID
}

type EmergencyWithdrawEvent struct {
	User   codec.Address `json:"user"`
	Pid    uint64        `json:"pid"`
	Amount *uint256.Int  `json:"amount"`
}

func (*EmergencyWithdrawEvent) GetTypeID() uint8 {
	return consts.EmergencyWithdrawEventID
}

type PoolAddedEvent struct {
	Pid          uint64        `json:"pid"`
	DepositToken codec.Address `json:"depositToken"`
	AllocPoint   uint64        `json:"allocPoint"`
	Multiplier   uint64        `json:"multiplier"`
}

func (*PoolAddedEvent) GetTypeID() uint8 {
	return consts.PoolAddedEventID
}

type PoolUpdatedEvent struct {
	Pid        uint64 `json:"pid"`
	AllocPoint uint64 `json:"allocPoint"`
	Multiplier uint64 `json:"multiplier"`
}

func (*PoolUpdatedEvent) GetTypeID() uint8 {
	return consts.PoolUpdatedEventID
}

type OwnershipTransferredEvent struct {
	PreviousOwner codec.Address `json:"previousOwner"`
	NewOwner      codec.Address `json:"newOwner"`
}

func (*OwnershipTransferredEvent) GetTypeID() uint8 {
	return consts.OwnershipTransferredEventID
}

type RewardRateUpdatedEvent struct {
	Previous *uint256.Int `json:"previous"`
	Current  *uint256.Int `json:"current"`
}

func (*RewardRateUpdatedEvent) GetTypeID() uint8 {
	return consts.RewardRateUpdatedEventID
}

type TokenRecoveryEvent struct {
	Token  codec.Address `json:"token"`
	Amount *uint256.Int  `json:"amount"`
}

func (*TokenRecoveryEvent) GetTypeID() uint8 {
	return consts.TokenRecoveryEventID
}
