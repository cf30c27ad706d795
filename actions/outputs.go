// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
)

var (
	_ codec.Typed = (*CreatePairResult)(nil)
	_ codec.Typed = (*MintLiquidityResult)(nil)
	_ codec.Typed = (*BurnLiquidityResult)(nil)
	_ codec.Typed = (*CreateFarmResult)(nil)
	_ codec.Typed = (*AddPoolResult)(nil)
	_ codec.Typed = (*CreateStakingPoolResult)(nil)
)

type CreatePairResult struct {
	Pair codec.Address `json:"pair"`
}

func (*CreatePairResult) GetTypeID() uint8 {
	return consts.CreatePairResultID
}

type MintLiquidityResult struct {
	Liquidity *uint256.Int `json:"liquidity"`
}

func (*MintLiquidityResult) GetTypeID() uint8 {
	return consts.MintLiquidityResultID
}

type BurnLiquidityResult struct {
	Amount0 *uint256.Int `json:"amount0"`
	Amount1 *uint256.Int `json:"amount1"`
}

func (*BurnLiquidityResult) GetTypeID() uint8 {
	return consts.BurnLiquidityResultID
}

type CreateFarmResult struct {
	Farm codec.Address `json:"farm"`
}

func (*CreateFarmResult) GetTypeID() uint8 {
	return consts.CreateFarmResultID
}

type AddPoolResult struct {
	Pid uint64 `json:"pid"`
}

func (*AddPoolResult) GetTypeID() uint8 {
	return consts.AddPoolResultID
}

type CreateStakingPoolResult struct {
	Pool codec.Address `json:"pool"`
}

func (*CreateStakingPoolResult) GetTypeID() uint8 {
	return consts.CreateStakingPoolResultID
}
