// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/tstate"
)

var (
	minter = codec.CreateAddress(consts.ContractID, ids.GenerateTestID())
	alice  = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	bob    = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
)

func newEnv(t *testing.T, timestamp int64) (*chain.Env, codec.Address) {
	ctx := context.Background()
	view := tstate.New(state.NewMemory(), 16).NewView()
	tok := storage.TokenAddress("TKN")
	require.NoError(t, Create(ctx, view, tok, "Token", "TKN", 18, minter))
	env := chain.NewEnv(view, chain.Block{Height: 1, Timestamp: timestamp}, alice, nil)
	require.NoError(t, Mint(ctx, env, tok, minter, alice, uint256.NewInt(1_000)))
	return env, tok
}

func requireBalance(t *testing.T, env *chain.Env, tok, owner codec.Address, expected uint64) {
	bal, err := BalanceOf(context.Background(), env.State(), tok, owner)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(expected), bal)
}

func TestCreateValidatesMetadata(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		tokName  string
		symbol   string
		decimals uint8
		err      error
	}{
		{name: "valid", tokName: "Token", symbol: "TKN", decimals: 18},
		{name: "empty name", symbol: "TKN", err: ErrInvalidMetadata},
		{name: "long symbol", tokName: "Token", symbol: "ABCDEFGHIJKLMNOPQ", err: ErrInvalidMetadata},
		{name: "too many decimals", tokName: "Token", symbol: "TKN", decimals: 31, err: ErrInvalidMetadata},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tstate.New(state.NewMemory(), 4).NewView()
			err := Create(ctx, view, storage.TokenAddress(tt.symbol), tt.tokName, tt.symbol, tt.decimals, minter)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCreateTwice(t *testing.T) {
	env, tok := newEnv(t, 0)
	err := Create(context.Background(), env.State(), tok, "Token", "TKN", 18, minter)
	require.ErrorIs(t, err, ErrTokenExists)
}

func TestTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	env, tok := newEnv(t, 0)

	require.NoError(Transfer(ctx, env, tok, alice, bob, uint256.NewInt(400)))
	requireBalance(t, env, tok, alice, 600)
	requireBalance(t, env, tok, bob, 400)

	err := Transfer(ctx, env, tok, bob, alice, uint256.NewInt(401))
	require.ErrorIs(err, ErrInsufficientBalance)
	requireBalance(t, env, tok, bob, 400)

	require.ErrorIs(Transfer(ctx, env, tok, alice, codec.EmptyAddress, uint256.NewInt(1)), ErrTransferToEmpty)
	require.ErrorIs(Transfer(ctx, env, storage.TokenAddress("NOPE"), alice, bob, uint256.NewInt(1)), ErrTokenNotFound)

	events := env.Events()
	require.Len(events, 2)
	require.Equal(&TransferEvent{From: alice, To: bob, Value: uint256.NewInt(400)}, events[1].Event)
	require.Equal(tok, events[1].Emitter)
}

func TestTransferFrom(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	env, tok := newEnv(t, 0)

	require.NoError(Approve(ctx, env, tok, alice, bob, uint256.NewInt(300)))
	require.NoError(TransferFrom(ctx, env, tok, bob, alice, bob, uint256.NewInt(200)))
	requireBalance(t, env, tok, bob, 200)

	remaining, err := Allowance(ctx, env.State(), tok, alice, bob)
	require.NoError(err)
	require.Equal(uint256.NewInt(100), remaining)

	err = TransferFrom(ctx, env, tok, bob, alice, bob, uint256.NewInt(101))
	require.ErrorIs(err, ErrInsufficientAllowance)
}

func TestTransferFromMaxAllowance(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	env, tok := newEnv(t, 0)

	require.NoError(Approve(ctx, env, tok, alice, bob, MaxAllowance))
	require.NoError(TransferFrom(ctx, env, tok, bob, alice, bob, uint256.NewInt(500)))

	remaining, err := Allowance(ctx, env.State(), tok, alice, bob)
	require.NoError(err)
	require.Equal(MaxAllowance, remaining)
}

func TestMintAndBurn(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	env, tok := newEnv(t, 0)

	require.ErrorIs(Mint(ctx, env, tok, alice, alice, uint256.NewInt(1)), ErrUnauthorized)
	require.NoError(Mint(ctx, env, tok, minter, codec.EmptyAddress, uint256.NewInt(10)))

	supply, err := TotalSupply(ctx, env.State(), tok)
	require.NoError(err)
	require.Equal(uint256.NewInt(1_010), supply)

	require.NoError(Burn(ctx, env, tok, alice, uint256.NewInt(1_000)))
	require.ErrorIs(Burn(ctx, env, tok, alice, uint256.NewInt(1)), ErrInsufficientBalance)

	supply, err = TotalSupply(ctx, env.State(), tok)
	require.NoError(err)
	require.Equal(uint256.NewInt(10), supply)
	requireBalance(t, env, tok, codec.EmptyAddress, 10)
}

func TestPermit(t *testing.T) {
	ctx := context.Background()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_, otherPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	owner := OwnerAddress(pub)

	tests := []struct {
		name     string
		deadline int64
		signer   ed25519.PrivateKey
		pub      []byte
		err      error
	}{
		{name: "valid", deadline: 100, signer: priv, pub: pub},
		{name: "deadline equals timestamp", deadline: 50, signer: priv, pub: pub},
		{name: "expired", deadline: 49, signer: priv, pub: pub, err: ErrExpired},
		{name: "wrong signer", deadline: 100, signer: otherPriv, pub: pub, err: ErrInvalidSignature},
		{name: "short key", deadline: 100, signer: priv, pub: pub[:5], err: ErrInvalidPublicKeyLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			env, tok := newEnv(t, 50)
			value := uint256.NewInt(77)

			digest, err := SigningDigest(ctx, env.State(), tok, owner, bob, value, tt.deadline)
			require.NoError(err)
			sig := ed25519.Sign(tt.signer, digest)

			err = Permit(ctx, env, tok, owner, bob, value, tt.deadline, tt.pub, sig)
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				return
			}
			allowance, err := Allowance(ctx, env.State(), tok, owner, bob)
			require.NoError(err)
			require.Equal(value, allowance)

			nonce, err := Nonce(ctx, env.State(), tok, owner)
			require.NoError(err)
			require.Equal(uint64(1), nonce)

			// Replaying the same signature fails once the nonce moved.
			err = Permit(ctx, env, tok, owner, bob, value, tt.deadline, tt.pub, sig)
			require.ErrorIs(err, ErrInvalidSignature)
		})
	}
}

func TestDomainSeparatorDiffersPerToken(t *testing.T) {
	a := DomainSeparator("Token", storage.TokenAddress("A"))
	b := DomainSeparator("Token", storage.TokenAddress("B"))
	require.NotEqual(t, a, b)
	require.Len(t, a, 32)
}
