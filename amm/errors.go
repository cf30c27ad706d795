// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import "errors"

var (
	ErrIdenticalAddresses = errors.New("identical addresses")
	ErrZeroAddress        = errors.New("zero address")
	ErrPairExists         = errors.New("pair exists")
	ErrPairNotFound       = errors.New("pair not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidFee         = errors.New("invalid swap fee")

	ErrLocked   = errors.New("locked")
	ErrOverflow = errors.New("reserve overflow")

	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.New("insufficient liquidity burned")
	ErrInsufficientOutputAmount    = errors.New("insufficient output amount")
	ErrInsufficientInputAmount     = errors.New("insufficient input amount")
	ErrInsufficientLiquidity       = errors.New("insufficient liquidity")
	ErrInsufficientAmount          = errors.New("insufficient amount")
	ErrInvalidTo                   = errors.New("invalid to")
	ErrInvalidK                    = errors.New("k")
	ErrInvalidPath                 = errors.New("invalid path")
	ErrCalleeNotFound              = errors.New("flash swap callee not registered")
)
