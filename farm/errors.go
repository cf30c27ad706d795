// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package farm

import "errors"

var (
	ErrFarmNotFound        = errors.New("farm not found")
	ErrPoolNotFound        = errors.New("pool not found")
	ErrUnauthorized        = errors.New("caller is not the owner")
	ErrTokenAlreadyAdded   = errors.New("token already added")
	ErrWrongPoolKind       = errors.New("wrong pool kind")
	ErrInsufficientBalance = errors.New("withdraw: not good")
	ErrInvalidSchedule     = errors.New("invalid emission schedule")
	ErrRewardNotMintable   = errors.New("farm is not the reward token minter")
	ErrZeroAddress         = errors.New("zero address")
	ErrCannotSweep         = errors.New("cannot sweep deposit or reward token")
	ErrNothingToSweep      = errors.New("nothing to sweep")
)
