// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/state"
)

// Quote returns the amount of B worth [amountA] at the current reserve
// ratio, ignoring fees.
func Quote(amountA, reserveA, reserveB *uint256.Int) (*uint256.Int, error) {
	if amountA.IsZero() {
		return nil, ErrInsufficientAmount
	}
	if reserveA.IsZero() || reserveB.IsZero() {
		return nil, ErrInsufficientLiquidity
	}
	return fixedpoint.MulDiv(amountA, reserveB, reserveA)
}

// GetAmountOut returns the maximum output for [amountIn] given the
// reserves and a fee in parts per thousand.
func GetAmountOut(amountIn, reserveIn, reserveOut *uint256.Int, fee uint64) (*uint256.Int, error) {
	if amountIn.IsZero() {
		return nil, ErrInsufficientInputAmount
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return nil, ErrInsufficientLiquidity
	}
	amountInWithFee, err := fixedpoint.Mul(amountIn, uint256.NewInt(FeeDenominator-fee))
	if err != nil {
		return nil, err
	}
	numerator, err := fixedpoint.Mul(amountInWithFee, reserveOut)
	if err != nil {
		return nil, err
	}
	denominator, err := fixedpoint.Mul(reserveIn, feeDenominator)
	if err != nil {
		return nil, err
	}
	denominator, err = fixedpoint.Add(denominator, amountInWithFee)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Div(numerator, denominator)
}

// GetAmountIn returns the minimum input needed to receive [amountOut].
func GetAmountIn(amountOut, reserveIn, reserveOut *uint256.Int, fee uint64) (*uint256.Int, error) {
	if amountOut.IsZero() {
		return nil, ErrInsufficientOutputAmount
	}
	if reserveIn.IsZero() || !amountOut.Lt(reserveOut) {
		return nil, ErrInsufficientLiquidity
	}
	numerator, err := fixedpoint.Mul(reserveIn, amountOut)
	if err != nil {
		return nil, err
	}
	numerator, err = fixedpoint.Mul(numerator, feeDenominator)
	if err != nil {
		return nil, err
	}
	denominator, err := fixedpoint.Mul(new(uint256.Int).Sub(reserveOut, amountOut), uint256.NewInt(FeeDenominator-fee))
	if err != nil {
		return nil, err
	}
	amountIn, err := fixedpoint.Div(numerator, denominator)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Add(amountIn, uint256.NewInt(1))
}

// GetAmountsOut chains [GetAmountOut] along [path] using current reserves.
func GetAmountsOut(ctx context.Context, im state.Immutable, amountIn *uint256.Int, path []codec.Address) ([]*uint256.Int, error) {
	if len(path) < 2 {
		return nil, ErrInvalidPath
	}
	amounts := make([]*uint256.Int, len(path))
	amounts[0] = fixedpoint.Clone(amountIn)
	for i := 0; i < len(path)-1; i++ {
		reserveIn, reserveOut, fee, err := orderedReserves(ctx, im, path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		if amounts[i+1], err = GetAmountOut(amounts[i], reserveIn, reserveOut, fee); err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

// GetAmountsIn walks [path] backwards with [GetAmountIn].
func GetAmountsIn(ctx context.Context, im state.Immutable, amountOut *uint256.Int, path []codec.Address) ([]*uint256.Int, error) {
	if len(path) < 2 {
		return nil, ErrInvalidPath
	}
	amounts := make([]*uint256.Int, len(path))
	amounts[len(path)-1] = fixedpoint.Clone(amountOut)
	for i := len(path) - 1; i > 0; i-- {
		reserveIn, reserveOut, fee, err := orderedReserves(ctx, im, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		if amounts[i-1], err = GetAmountIn(amounts[i], reserveIn, reserveOut, fee); err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

func orderedReserves(ctx context.Context, im state.Immutable, tokenIn, tokenOut codec.Address) (*uint256.Int, *uint256.Int, uint64, error) {
	if tokenIn == tokenOut {
		return nil, nil, 0, ErrInvalidPath
	}
	pair, exists, err := GetPair(ctx, im, tokenIn, tokenOut)
	if err != nil {
		return nil, nil, 0, err
	}
	if !exists {
		return nil, nil, 0, ErrPairNotFound
	}
	pr, err := Info(ctx, im, pair)
	if err != nil {
		return nil, nil, 0, err
	}
	if pr.Token0 == tokenIn {
		return pr.Reserve0, pr.Reserve1, pr.Fee, nil
	}
	return pr.Reserve1, pr.Reserve0, pr.Fee, nil
}
