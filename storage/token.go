// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/state"
)

// TokenInfo is the metadata of a fungible token. Only [TokenInfo.Minter]
// may mint new supply.
type TokenInfo struct {
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply *uint256.Int
	Minter      codec.Address
}

func (t *TokenInfo) Size() int {
	return codec.StringLen(t.Name) + codec.StringLen(t.Symbol) + consts.ByteLen + consts.Uint256Len + codec.AddressLen
}

func (t *TokenInfo) Marshal(p *codec.Packer) {
	p.PackString(t.Name)
	p.PackString(t.Symbol)
	p.PackByte(t.Decimals)
	p.PackUint256(t.TotalSupply)
	p.PackAddress(t.Minter)
}

func (t *TokenInfo) unmarshal(p *codec.Packer) {
	t.Name = p.UnpackString(true)
	t.Symbol = p.UnpackString(true)
	t.Decimals = p.UnpackByte()
	t.TotalSupply = p.UnpackUint256(false)
	p.UnpackOptionalAddress(&t.Minter)
}

// TokenAddress derives the address of a genesis token from its symbol.
func TokenAddress(symbol string) codec.Address {
	return codec.CreateAddress(consts.TokenID, ToID([]byte(consts.Name+"/"+symbol)))
}

func TokenInfoKey(token codec.Address) []byte {
	return key(tokenInfoPrefix, TokenInfoChunks, token[:])
}

func GetTokenInfo(ctx context.Context, im state.Immutable, token codec.Address) (*TokenInfo, bool, error) {
	var t TokenInfo
	exists, err := getRecord(ctx, im, TokenInfoKey(token), t.unmarshal)
	if err != nil || !exists {
		return nil, false, err
	}
	return &t, true, nil
}

func SetTokenInfo(ctx context.Context, mu state.Mutable, token codec.Address, t *TokenInfo) error {
	return putRecord(ctx, mu, TokenInfoKey(token), t)
}

func BalanceKey(token codec.Address, owner codec.Address) []byte {
	return key(balancePrefix, BalanceChunks, token[:], owner[:])
}

// GetBalance returns zero for accounts that never held [token].
func GetBalance(ctx context.Context, im state.Immutable, token codec.Address, owner codec.Address) (*uint256.Int, error) {
	return getUint256(ctx, im, BalanceKey(token, owner))
}

func SetBalance(ctx context.Context, mu state.Mutable, token codec.Address, owner codec.Address, v *uint256.Int) error {
	return setUint256(ctx, mu, BalanceKey(token, owner), v)
}

func AllowanceKey(token codec.Address, owner codec.Address, spender codec.Address) []byte {
	return key(allowancePrefix, AllowanceChunks, token[:], owner[:], spender[:])
}

func GetAllowance(
	ctx context.Context,
	im state.Immutable,
	token codec.Address,
	owner codec.Address,
	spender codec.Address,
) (*uint256.Int, error) {
	return getUint256(ctx, im, AllowanceKey(token, owner, spender))
}

func SetAllowance(
	ctx context.Context,
	mu state.Mutable,
	token codec.Address,
	owner codec.Address,
	spender codec.Address,
	v *uint256.Int,
) error {
	return setUint256(ctx, mu, AllowanceKey(token, owner, spender), v)
}

func NonceKey(token codec.Address, owner codec.Address) []byte {
	return key(noncePrefix, NonceChunks, token[:], owner[:])
}

func GetNonce(ctx context.Context, im state.Immutable, token codec.Address, owner codec.Address) (uint64, error) {
	return getUint64(ctx, im, NonceKey(token, owner))
}

func SetNonce(ctx context.Context, mu state.Mutable, token codec.Address, owner codec.Address, nonce uint64) error {
	return setUint64(ctx, mu, NonceKey(token, owner), nonce)
}
