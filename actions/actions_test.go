// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/dexfarm/amm"
	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/token"
	"github.com/ava-labs/dexfarm/trace"
	"github.com/ava-labs/dexfarm/tstate"
)

var (
	alice  = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	bob    = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	minter = codec.CreateAddress(consts.ContractID, ids.GenerateTestID())

	tokenA = storage.TokenAddress("AAA")
	tokenB = storage.TokenAddress("BBB")
)

func ether(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), fixedpoint.Pow10(18))
}

func newTestState(t *testing.T) *tstate.TState {
	require := require.New(t)
	ctx := context.Background()
	ts := tstate.New(state.NewMemory(), 64)
	view := ts.NewView()
	require.NoError(amm.InitFactory(ctx, view, alice, amm.DefaultSwapFee))
	env := chain.NewEnv(view, chain.Block{}, minter, nil)
	for _, tok := range []codec.Address{tokenA, tokenB} {
		require.NoError(token.Create(ctx, view, tok, "Token", "TKN", 18, minter))
		require.NoError(token.Mint(ctx, env, tok, minter, alice, ether(1_000)))
	}
	view.Commit()
	return ts
}

func balance(t *testing.T, ts *tstate.TState, tok, owner codec.Address) *uint256.Int {
	b, err := token.BalanceOf(context.Background(), ts, tok, owner)
	require.NoError(t, err)
	return b
}

func TestParserCoversEveryAction(t *testing.T) {
	require := require.New(t)
	names := Parser.Names()
	require.Len(names, int(consts.StakingEmergencyRewardWithdrawID)+1)
	for id := uint8(0); id <= consts.StakingEmergencyRewardWithdrawID; id++ {
		action, ok := Parser.LookupIndex(id)
		require.True(ok, "id %d", id)
		require.Equal(id, action.GetTypeID())
		require.NotEqual(Name(id), "")
	}
	require.Equal("swap", Name(consts.SwapID))
	require.Equal("250", Name(250))
}

func TestDecode(t *testing.T) {
	pair := storage.PairAddress(tokenA, tokenB)
	farm0 := storage.FarmAddress(0)
	two := uint64(2)
	tests := []struct {
		name   string
		action string
		args   string
		want   chain.Action
		err    error
	}{
		{
			name:   "swap",
			action: "swap",
			args:   `{"pair":"` + pair.String() + `","amount0Out":"0","amount1Out":"1000000000000000000000","to":"` + bob.String() + `"}`,
			want: &Swap{
				Pair:       pair,
				Amount0Out: uint256.NewInt(0),
				Amount1Out: ether(1_000),
				To:         bob,
			},
		},
		{
			name:   "add with multiplier",
			action: "add",
			args:   `{"farm":"` + farm0.String() + `","allocPoint":1000,"depositToken":"` + pair.String() + `","withUpdate":true,"multiplier":2}`,
			want: &AddPool{
				Farm:         farm0,
				AllocPoint:   1_000,
				DepositToken: pair,
				WithUpdate:   true,
				Multiplier:   &two,
			},
		},
		{
			name:   "no arguments",
			action: "massUpdatePools",
			want:   &MassUpdatePools{},
		},
		{
			name:   "unknown action",
			action: "rugPull",
			err:    ErrUnknownAction,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			action, err := Decode(tt.action, []byte(tt.args))
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				return
			}
			require.Equal(tt.want, action)
		})
	}

	_, err := Decode("transfer", []byte(`{"to": 7}`))
	require.Error(t, err)
}

func TestExecuteThroughProcessor(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ts := newTestState(t)
	p := chain.NewProcessor(logging.NoLog{}, trace.Noop("test"), nil, nil, Name)
	blk := chain.Block{Height: 1, Timestamp: 1}

	out, _, err := p.Execute(ctx, ts, blk, alice, &CreatePair{TokenA: tokenA, TokenB: tokenB})
	require.NoError(err)
	pair := out.(*CreatePairResult).Pair
	require.Equal(storage.PairAddress(tokenA, tokenB), pair)

	for _, tok := range []codec.Address{tokenA, tokenB} {
		_, _, err := p.Execute(ctx, ts, blk, alice, &Transfer{Token: tok, To: pair, Value: ether(10)})
		require.NoError(err)
	}
	out, records, err := p.Execute(ctx, ts, blk, alice, &MintLiquidity{Pair: pair, To: alice})
	require.NoError(err)
	require.NotEmpty(records)
	liquidity := out.(*MintLiquidityResult).Liquidity
	require.Equal(new(uint256.Int).Sub(ether(10), uint256.NewInt(storage.MinimumLiquidity)), liquidity)

	// output is sent before the input check, and must be undone
	beforeA, beforeB := balance(t, ts, tokenA, alice), balance(t, ts, tokenB, alice)
	_, records, err = p.Execute(ctx, ts, blk, alice, &Swap{
		Pair:       pair,
		Amount0Out: ether(1),
		Amount1Out: uint256.NewInt(0),
		To:         alice,
	})
	require.ErrorIs(err, amm.ErrInsufficientInputAmount)
	require.Nil(records)
	require.Equal(beforeA, balance(t, ts, tokenA, alice))
	require.Equal(beforeB, balance(t, ts, tokenB, alice))

	_, _, err = p.Execute(ctx, ts, blk, alice, &Transfer{Token: tokenA, To: bob})
	require.ErrorIs(err, ErrValueZero)

	_, _, err = p.Execute(ctx, ts, blk, alice, &Swap{Pair: pair, Amount0Out: ether(1), To: alice, Data: make([]byte, MaxSwapDataSize+1)})
	require.ErrorIs(err, ErrDataTooLarge)
}

func TestStakingActions(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ts := newTestState(t)
	p := chain.NewProcessor(logging.NoLog{}, trace.Noop("test"), nil, nil, Name)

	out, _, err := p.Execute(ctx, ts, chain.Block{Height: 1}, alice, &CreateStakingPool{
		StakedToken:    tokenA,
		RewardToken:    tokenB,
		RewardPerBlock: ether(1),
		StartBlock:     10,
		EndBlock:       20,
	})
	require.NoError(err)
	pool := out.(*CreateStakingPoolResult).Pool
	require.Equal(storage.StakingPoolAddress(0), pool)

	_, _, err = p.Execute(ctx, ts, chain.Block{Height: 2}, alice, &Transfer{Token: tokenB, To: pool, Value: ether(10)})
	require.NoError(err)
	_, _, err = p.Execute(ctx, ts, chain.Block{Height: 3}, alice, &StakingDeposit{Pool: pool, Amount: ether(5)})
	require.NoError(err)
	_, _, err = p.Execute(ctx, ts, chain.Block{Height: 30}, alice, &StakingWithdraw{Pool: pool, Amount: ether(5)})
	require.NoError(err)

	require.Equal(ether(1_000), balance(t, ts, tokenA, alice))
	require.Equal(ether(1_000), balance(t, ts, tokenB, alice))
}
