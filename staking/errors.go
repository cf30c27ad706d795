// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import "errors"

var (
	ErrPoolNotFound        = errors.New("staking pool not found")
	ErrUnauthorized        = errors.New("caller is not the owner")
	ErrSameToken           = errors.New("tokens must be different")
	ErrInvalidDecimals     = errors.New("reward decimals must be less than 30")
	ErrUserLimit           = errors.New("user amount above limit")
	ErrWithdrawTooHigh     = errors.New("amount to withdraw too high")
	ErrMustBeSet           = errors.New("must be set")
	ErrLimitNotHigher      = errors.New("new limit must be higher")
	ErrPoolStarted         = errors.New("pool has started")
	ErrStartAfterEnd       = errors.New("new start block must be lower than new end block")
	ErrStartInPast         = errors.New("new start block must be higher than current block")
	ErrRecoverStakedToken  = errors.New("cannot recover staked token")
	ErrRecoverRewardToken  = errors.New("cannot recover reward token")
	ErrRecoverZeroBalance  = errors.New("cannot recover zero balance")
	ErrInsufficientRewards = errors.New("insufficient reward balance")
)
