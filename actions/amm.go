// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/amm"
	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
)

const MaxSwapDataSize = 1024

var (
	_ chain.Action = (*CreatePair)(nil)
	_ chain.Action = (*SetFeeTo)(nil)
	_ chain.Action = (*SetFeeToSetter)(nil)
	_ chain.Action = (*MintLiquidity)(nil)
	_ chain.Action = (*BurnLiquidity)(nil)
	_ chain.Action = (*Swap)(nil)
	_ chain.Action = (*Skim)(nil)
	_ chain.Action = (*Sync)(nil)
)

type CreatePair struct {
	TokenA codec.Address `json:"tokenA"`
	TokenB codec.Address `json:"tokenB"`
}

func (*CreatePair) GetTypeID() uint8 {
	return consts.CreatePairID
}

func (c *CreatePair) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	pair, err := amm.CreatePair(ctx, env, c.TokenA, c.TokenB)
	if err != nil {
		return nil, err
	}
	return &CreatePairResult{Pair: pair}, nil
}

type SetFeeTo struct {
	FeeTo codec.Address `json:"feeTo"`
}

func (*SetFeeTo) GetTypeID() uint8 {
	return consts.SetFeeToID
}

func (s *SetFeeTo) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, amm.SetFeeTo(ctx, env, s.FeeTo)
}

type SetFeeToSetter struct {
	FeeToSetter codec.Address `json:"feeToSetter"`
}

func (*SetFeeToSetter) GetTypeID() uint8 {
	return consts.SetFeeToSetterID
}

func (s *SetFeeToSetter) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, amm.SetFeeToSetter(ctx, env, s.FeeToSetter)
}

// MintLiquidity credits [To] with shares for whatever the pair holds above
// its reserves. Deposits should be sent to the pair first.
type MintLiquidity struct {
	Pair codec.Address `json:"pair"`
	To   codec.Address `json:"to"`
}

func (*MintLiquidity) GetTypeID() uint8 {
	return consts.MintLiquidityID
}

func (m *MintLiquidity) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	liquidity, err := amm.Mint(ctx, env, m.Pair, m.To)
	if err != nil {
		return nil, err
	}
	return &MintLiquidityResult{Liquidity: liquidity}, nil
}

// BurnLiquidity redeems the shares held by the pair itself.
type BurnLiquidity struct {
	Pair codec.Address `json:"pair"`
	To   codec.Address `json:"to"`
}

func (*BurnLiquidity) GetTypeID() uint8 {
	return consts.BurnLiquidityID
}

func (b *BurnLiquidity) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	amount0, amount1, err := amm.Burn(ctx, env, b.Pair, b.To)
	if err != nil {
		return nil, err
	}
	return &BurnLiquidityResult{Amount0: amount0, Amount1: amount1}, nil
}

type Swap struct {
	Pair       codec.Address `json:"pair"`
	Amount0Out *uint256.Int  `json:"amount0Out"`
	Amount1Out *uint256.Int  `json:"amount1Out"`
	To         codec.Address `json:"to"`

	// Non-empty data makes this a flash swap.
	Data []byte `json:"data,omitempty"`
}

func (*Swap) GetTypeID() uint8 {
	return consts.SwapID
}

func (s *Swap) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	if len(s.Data) > MaxSwapDataSize {
		return nil, ErrDataTooLarge
	}
	return nil, amm.Swap(ctx, env, s.Pair, amount(s.Amount0Out), amount(s.Amount1Out), s.To, s.Data)
}

type Skim struct {
	Pair codec.Address `json:"pair"`
	To   codec.Address `json:"to"`
}

func (*Skim) GetTypeID() uint8 {
	return consts.SkimID
}

func (s *Skim) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, amm.Skim(ctx, env, s.Pair, s.To)
}

type Sync struct {
	Pair codec.Address `json:"pair"`
}

func (*Sync) GetTypeID() uint8 {
	return consts.SyncID
}

func (s *Sync) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, amm.Sync(ctx, env, s.Pair)
}
