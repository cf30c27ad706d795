// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token is the fungible-token ledger every deposit, reward and
// liquidity share asset lives in. Transfers either succeed fully or fail
// without touching state.
package token

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
)

// MaxAllowance is never decremented by [TransferFrom].
var MaxAllowance = new(uint256.Int).SetAllOne()

// Create registers a token with zero supply.
func Create(
	ctx context.Context,
	mu state.Mutable,
	token codec.Address,
	name string,
	symbol string,
	decimals uint8,
	minter codec.Address,
) error {
	switch {
	case len(name) == 0 || len(name) > storage.MaxTokenNameSize:
		return fmt.Errorf("%w: name length %d", ErrInvalidMetadata, len(name))
	case len(symbol) == 0 || len(symbol) > storage.MaxTokenSymbolSize:
		return fmt.Errorf("%w: symbol length %d", ErrInvalidMetadata, len(symbol))
	case decimals > storage.MaxTokenDecimals:
		return fmt.Errorf("%w: %d decimals", ErrInvalidMetadata, decimals)
	}
	_, exists, err := storage.GetTokenInfo(ctx, mu, token)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrTokenExists, token)
	}
	return storage.SetTokenInfo(ctx, mu, token, &storage.TokenInfo{
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: new(uint256.Int),
		Minter:      minter,
	})
}

// Info returns [ErrTokenNotFound] for unknown tokens.
func Info(ctx context.Context, im state.Immutable, token codec.Address) (*storage.TokenInfo, error) {
	info, exists, err := storage.GetTokenInfo(ctx, im, token)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTokenNotFound, token)
	}
	return info, nil
}

func TotalSupply(ctx context.Context, im state.Immutable, token codec.Address) (*uint256.Int, error) {
	info, err := Info(ctx, im, token)
	if err != nil {
		return nil, err
	}
	return info.TotalSupply, nil
}

func BalanceOf(ctx context.Context, im state.Immutable, token codec.Address, owner codec.Address) (*uint256.Int, error) {
	return storage.GetBalance(ctx, im, token, owner)
}

func Allowance(
	ctx context.Context,
	im state.Immutable,
	token codec.Address,
	owner codec.Address,
	spender codec.Address,
) (*uint256.Int, error) {
	return storage.GetAllowance(ctx, im, token, owner, spender)
}

func Nonce(ctx context.Context, im state.Immutable, token codec.Address, owner codec.Address) (uint64, error) {
	return storage.GetNonce(ctx, im, token, owner)
}

// Transfer moves [amount] of [token] from [from] to [to].
func Transfer(
	ctx context.Context,
	env *chain.Env,
	token codec.Address,
	from codec.Address,
	to codec.Address,
	amount *uint256.Int,
) error {
	if from == codec.EmptyAddress {
		return ErrTransferFromEmpty
	}
	if to == codec.EmptyAddress {
		return ErrTransferToEmpty
	}
	mu := env.State()
	if _, err := Info(ctx, mu, token); err != nil {
		return err
	}
	if err := move(ctx, mu, token, from, to, amount); err != nil {
		return err
	}
	env.Emit(token, &TransferEvent{From: from, To: to, Value: fixedpoint.Clone(amount)})
	return nil
}

func move(
	ctx context.Context,
	mu state.Mutable,
	token codec.Address,
	from codec.Address,
	to codec.Address,
	amount *uint256.Int,
) error {
	fromBal, err := storage.GetBalance(ctx, mu, token, from)
	if err != nil {
		return err
	}
	newFromBal, err := fixedpoint.Sub(fromBal, amount)
	if err != nil {
		return fmt.Errorf("%w: %s has %s but needs %s", ErrInsufficientBalance, from, fromBal.Dec(), amount.Dec())
	}
	if err := storage.SetBalance(ctx, mu, token, from, newFromBal); err != nil {
		return err
	}
	toBal, err := storage.GetBalance(ctx, mu, token, to)
	if err != nil {
		return err
	}
	newToBal, err := fixedpoint.Add(toBal, amount)
	if err != nil {
		return err
	}
	return storage.SetBalance(ctx, mu, token, to, newToBal)
}

// Approve sets the allowance of [spender] over [owner]'s tokens.
func Approve(
	ctx context.Context,
	env *chain.Env,
	token codec.Address,
	owner codec.Address,
	spender codec.Address,
	amount *uint256.Int,
) error {
	if spender == codec.EmptyAddress {
		return ErrApproveToEmpty
	}
	mu := env.State()
	if _, err := Info(ctx, mu, token); err != nil {
		return err
	}
	if err := storage.SetAllowance(ctx, mu, token, owner, spender, amount); err != nil {
		return err
	}
	env.Emit(token, &ApprovalEvent{Owner: owner, Spender: spender, Value: fixedpoint.Clone(amount)})
	return nil
}

// TransferFrom moves tokens from [from] on behalf of [spender], spending
// allowance unless it is [MaxAllowance].
func TransferFrom(
	ctx context.Context,
	env *chain.Env,
	token codec.Address,
	spender codec.Address,
	from codec.Address,
	to codec.Address,
	amount *uint256.Int,
) error {
	mu := env.State()
	allowance, err := storage.GetAllowance(ctx, mu, token, from, spender)
	if err != nil {
		return err
	}
	if !allowance.Eq(MaxAllowance) {
		remaining, err := fixedpoint.Sub(allowance, amount)
		if err != nil {
			return fmt.Errorf("%w: %s allowed %s but needs %s", ErrInsufficientAllowance, spender, allowance.Dec(), amount.Dec())
		}
		if err := storage.SetAllowance(ctx, mu, token, from, spender, remaining); err != nil {
			return err
		}
	}
	return Transfer(ctx, env, token, from, to, amount)
}

// Mint creates [amount] new tokens for [to]. Only the token's minter may
// call it. Minting to the empty address is allowed and permanently locks
// the tokens.
func Mint(
	ctx context.Context,
	env *chain.Env,
	token codec.Address,
	minter codec.Address,
	to codec.Address,
	amount *uint256.Int,
) error {
	mu := env.State()
	info, err := Info(ctx, mu, token)
	if err != nil {
		return err
	}
	if info.Minter != minter || minter == codec.EmptyAddress {
		return fmt.Errorf("%w: %s", ErrUnauthorized, minter)
	}
	supply, err := fixedpoint.Add(info.TotalSupply, amount)
	if err != nil {
		return err
	}
	bal, err := storage.GetBalance(ctx, mu, token, to)
	if err != nil {
		return err
	}
	newBal, err := fixedpoint.Add(bal, amount)
	if err != nil {
		return err
	}
	info.TotalSupply = supply
	if err := storage.SetTokenInfo(ctx, mu, token, info); err != nil {
		return err
	}
	if err := storage.SetBalance(ctx, mu, token, to, newBal); err != nil {
		return err
	}
	env.Emit(token, &TransferEvent{From: codec.EmptyAddress, To: to, Value: fixedpoint.Clone(amount)})
	return nil
}

// Burn destroys [amount] of [from]'s tokens. Callers are responsible for
// authorizing [from].
func Burn(
	ctx context.Context,
	env *chain.Env,
	token codec.Address,
	from codec.Address,
	amount *uint256.Int,
) error {
	mu := env.State()
	info, err := Info(ctx, mu, token)
	if err != nil {
		return err
	}
	bal, err := storage.GetBalance(ctx, mu, token, from)
	if err != nil {
		return err
	}
	newBal, err := fixedpoint.Sub(bal, amount)
	if err != nil {
		return fmt.Errorf("%w: %s has %s but burns %s", ErrInsufficientBalance, from, bal.Dec(), amount.Dec())
	}
	supply, err := fixedpoint.Sub(info.TotalSupply, amount)
	if err != nil {
		return err
	}
	info.TotalSupply = supply
	if err := storage.SetTokenInfo(ctx, mu, token, info); err != nil {
		return err
	}
	if err := storage.SetBalance(ctx, mu, token, from, newBal); err != nil {
		return err
	}
	env.Emit(token, &TransferEvent{From: from, To: codec.EmptyAddress, Value: fixedpoint.Clone(amount)})
	return nil
}
