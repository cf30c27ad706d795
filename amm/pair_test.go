// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/dexfarm/amm/ammmock"
	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/token"
	"github.com/ava-labs/dexfarm/tstate"
)

var (
	minter    = codec.CreateAddress(consts.ContractID, ids.GenerateTestID())
	feeSetter = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	alice     = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	feeTo     = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())

	errCallee = errors.New("callee failure")
)

func expand(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), fixedpoint.Pow10(18))
}

type testPair struct {
	view   *tstate.TStateView
	reg    *chain.Registry
	pair   codec.Address
	token0 codec.Address
	token1 codec.Address
}

func newTestPair(t *testing.T) *testPair {
	require := require.New(t)
	ctx := context.Background()
	tp := &testPair{
		view: tstate.New(state.NewMemory(), 64).NewView(),
		reg:  chain.NewRegistry(),
	}
	require.NoError(InitFactory(ctx, tp.view, feeSetter, DefaultSwapFee))
	env := tp.at(0)
	for _, symbol := range []string{"AAA", "BBB"} {
		tok := storage.TokenAddress(symbol)
		require.NoError(token.Create(ctx, tp.view, tok, symbol, symbol, 18, minter))
		require.NoError(token.Mint(ctx, env, tok, minter, alice, expand(1_000_000)))
	}
	pair, err := CreatePair(ctx, env, storage.TokenAddress("AAA"), storage.TokenAddress("BBB"))
	require.NoError(err)
	pr, err := Info(ctx, tp.view, pair)
	require.NoError(err)
	tp.pair, tp.token0, tp.token1 = pair, pr.Token0, pr.Token1
	return tp
}

// attempt runs [f] and discards its changes, like a failed call.
func (tp *testPair) attempt(f func() error) error {
	restore := tp.view.OpIndex()
	err := f()
	tp.view.Rollback(context.Background(), restore)
	return err
}

func (tp *testPair) at(timestamp int64) *chain.Env {
	return chain.NewEnv(tp.view, chain.Block{Height: 1, Timestamp: timestamp}, alice, tp.reg)
}

func (tp *testPair) addLiquidity(t *testing.T, env *chain.Env, amount0, amount1 *uint256.Int) *uint256.Int {
	ctx := context.Background()
	require.NoError(t, token.Transfer(ctx, env, tp.token0, alice, tp.pair, amount0))
	require.NoError(t, token.Transfer(ctx, env, tp.token1, alice, tp.pair, amount1))
	liquidity, err := Mint(ctx, env, tp.pair, alice)
	require.NoError(t, err)
	return liquidity
}

func (tp *testPair) balance(t *testing.T, tok, owner codec.Address) *uint256.Int {
	bal, err := token.BalanceOf(context.Background(), tp.view, tok, owner)
	require.NoError(t, err)
	return bal
}

func TestMint(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	tp := newTestPair(t)
	env := tp.at(10)

	liquidity := tp.addLiquidity(t, env, expand(1), expand(4))
	expected := new(uint256.Int).Sub(expand(2), uint256.NewInt(storage.MinimumLiquidity))
	require.Equal(expected, liquidity)

	supply, err := token.TotalSupply(ctx, tp.view, tp.pair)
	require.NoError(err)
	require.Equal(expand(2), supply)
	require.Equal(uint256.NewInt(storage.MinimumLiquidity), tp.balance(t, tp.pair, codec.EmptyAddress))
	require.Equal(expected, tp.balance(t, tp.pair, alice))

	r0, r1, ts, err := Reserves(ctx, tp.view, tp.pair)
	require.NoError(err)
	require.Equal(expand(1), r0)
	require.Equal(expand(4), r1)
	require.Equal(uint32(10), ts)

	events := env.Events()
	require.IsType(&SyncEvent{}, events[len(events)-2].Event)
	require.Equal(&MintEvent{Sender: alice, Amount0: expand(1), Amount1: expand(4)}, events[len(events)-1].Event)
}

func TestMintInsufficientLiquidity(t *testing.T) {
	ctx := context.Background()
	tp := newTestPair(t)
	env := tp.at(0)
	require.NoError(t, token.Transfer(ctx, env, tp.token0, alice, tp.pair, uint256.NewInt(1_000)))
	require.NoError(t, token.Transfer(ctx, env, tp.token1, alice, tp.pair, uint256.NewInt(1_000)))
	_, err := Mint(ctx, env, tp.pair, alice)
	require.ErrorIs(t, err, ErrInsufficientLiquidityMinted)
}

func TestMintProportional(t *testing.T) {
	require := require.New(t)
	tp := newTestPair(t)
	env := tp.at(0)
	tp.addLiquidity(t, env, expand(1), expand(4))

	// Imbalanced deposits are credited at the less favorable ratio.
	liquidity := tp.addLiquidity(t, env, expand(1), expand(8))
	require.Equal(expand(2), liquidity)
}

func TestSwap(t *testing.T) {
	tests := []struct {
		name      string
		swapIn    uint64
		reserve0  uint64
		reserve1  uint64
		expectOut uint64
	}{
		{name: "1 for 5/10", swapIn: 1, reserve0: 5, reserve1: 10, expectOut: 1_662_497_915_624_478_906},
		{name: "1 for 10/5", swapIn: 1, reserve0: 10, reserve1: 5, expectOut: 453_305_446_940_074_565},
		{name: "2 for 5/10", swapIn: 2, reserve0: 5, reserve1: 10, expectOut: 2_851_015_155_847_869_602},
		{name: "1 for 1000/1000", swapIn: 1, reserve0: 1_000, reserve1: 1_000, expectOut: 996_006_981_039_903_216},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			tp := newTestPair(t)
			env := tp.at(0)
			tp.addLiquidity(t, env, expand(tt.reserve0), expand(tt.reserve1))
			require.NoError(token.Transfer(ctx, env, tp.token0, alice, tp.pair, expand(tt.swapIn)))

			r0, r1, _, err := Reserves(ctx, tp.view, tp.pair)
			require.NoError(err)
			out, err := GetAmountOut(expand(tt.swapIn), r0, r1, DefaultSwapFee)
			require.NoError(err)
			require.Equal(uint256.NewInt(tt.expectOut), out)

			before := tp.balance(t, tp.token1, alice)
			tooMuch := new(uint256.Int).AddUint64(out, 1)
			err = tp.attempt(func() error {
				return Swap(ctx, env, tp.pair, fixedpoint.Zero(), tooMuch, alice, nil)
			})
			require.ErrorIs(err, ErrInvalidK)
			unchanged0, unchanged1, _, err := Reserves(ctx, tp.view, tp.pair)
			require.NoError(err)
			require.Equal(r0, unchanged0)
			require.Equal(r1, unchanged1)
			require.Equal(before, tp.balance(t, tp.token1, alice))

			require.NoError(Swap(ctx, env, tp.pair, fixedpoint.Zero(), out, alice, nil))
			require.Equal(new(uint256.Int).Add(before, out), tp.balance(t, tp.token1, alice))

			r0After, r1After, _, err := Reserves(ctx, tp.view, tp.pair)
			require.NoError(err)
			require.Equal(new(uint256.Int).Add(expand(tt.reserve0), expand(tt.swapIn)), r0After)
			require.Equal(new(uint256.Int).Sub(expand(tt.reserve1), out), r1After)

			// The raw product never shrinks.
			kBefore := new(uint256.Int).Mul(r0, r1)
			kAfter := new(uint256.Int).Mul(r0After, r1After)
			require.True(kAfter.Gt(kBefore))
		})
	}
}

func TestSwapPreconditions(t *testing.T) {
	ctx := context.Background()
	tp := newTestPair(t)
	env := tp.at(0)
	tp.addLiquidity(t, env, expand(5), expand(10))

	tests := []struct {
		name string
		out0 *uint256.Int
		out1 *uint256.Int
		to   codec.Address
		data []byte
		err  error
	}{
		{name: "no output", out0: fixedpoint.Zero(), out1: fixedpoint.Zero(), to: alice, err: ErrInsufficientOutputAmount},
		{name: "drains reserve", out0: expand(5), out1: fixedpoint.Zero(), to: alice, err: ErrInsufficientLiquidity},
		{name: "to token", out0: uint256.NewInt(1), out1: fixedpoint.Zero(), to: tp.token0, err: ErrInvalidTo},
		{name: "no input", out0: uint256.NewInt(1), out1: fixedpoint.Zero(), to: alice, err: ErrInsufficientInputAmount},
		{name: "callee missing", out0: uint256.NewInt(1), out1: fixedpoint.Zero(), to: feeTo, data: []byte{1}, err: ErrCalleeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tp.attempt(func() error {
				return Swap(ctx, env, tp.pair, tt.out0, tt.out1, tt.to, tt.data)
			})
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBurn(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	tp := newTestPair(t)
	env := tp.at(0)
	liquidity := tp.addLiquidity(t, env, expand(3), expand(3))
	expected := new(uint256.Int).Sub(expand(3), uint256.NewInt(storage.MinimumLiquidity))
	require.Equal(expected, liquidity)

	_, _, err := Burn(ctx, env, tp.pair, alice)
	require.ErrorIs(err, ErrInsufficientLiquidityBurned)

	require.NoError(token.Transfer(ctx, env, tp.pair, alice, tp.pair, liquidity))
	amount0, amount1, err := Burn(ctx, env, tp.pair, alice)
	require.NoError(err)
	require.Equal(expected, amount0)
	require.Equal(expected, amount1)

	supply, err := token.TotalSupply(ctx, tp.view, tp.pair)
	require.NoError(err)
	require.Equal(uint256.NewInt(storage.MinimumLiquidity), supply)
	require.Equal(uint256.NewInt(storage.MinimumLiquidity), tp.balance(t, tp.token0, tp.pair))
	require.Equal(uint256.NewInt(storage.MinimumLiquidity), tp.balance(t, tp.token1, tp.pair))

	events := env.Events()
	require.Equal(&BurnEvent{Sender: alice, Amount0: expected, Amount1: expected, To: alice}, events[len(events)-1].Event)
}

func TestSyncAccruesOracleWithStaleReserves(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	tp := newTestPair(t)
	tp.addLiquidity(t, tp.at(100), expand(3), expand(6))

	env := tp.at(110)
	require.NoError(token.Transfer(ctx, env, tp.token0, alice, tp.pair, expand(3)))
	require.NoError(Sync(ctx, env, tp.pair))

	pr, err := Info(ctx, tp.view, tp.pair)
	require.NoError(err)
	require.Equal(expand(6), pr.Reserve0)
	require.Equal(expand(6), pr.Reserve1)
	require.Equal(uint32(110), pr.BlockTimestampLast)

	// 10 seconds at the pre-sync price of 2 (and 1/2).
	q112 := new(uint256.Int).Lsh(uint256.NewInt(1), fixedpoint.Resolution)
	require.Equal(new(uint256.Int).Mul(q112, uint256.NewInt(20)), pr.Price0CumulativeLast)
	require.Equal(new(uint256.Int).Mul(q112, uint256.NewInt(5)), pr.Price1CumulativeLast)

	// No time elapsed: nothing accrues.
	require.NoError(Sync(ctx, env, tp.pair))
	pr2, err := Info(ctx, tp.view, tp.pair)
	require.NoError(err)
	require.Equal(pr.Price0CumulativeLast, pr2.Price0CumulativeLast)
}

func TestSkim(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	tp := newTestPair(t)
	env := tp.at(0)
	tp.addLiquidity(t, env, expand(3), expand(3))
	require.NoError(token.Transfer(ctx, env, tp.token1, alice, tp.pair, uint256.NewInt(42)))

	require.NoError(Skim(ctx, env, tp.pair, feeTo))
	require.Equal(uint256.NewInt(42), tp.balance(t, tp.token1, feeTo))
	require.Equal(expand(3), tp.balance(t, tp.token1, tp.pair))
}

func TestProtocolFee(t *testing.T) {
	tests := []struct {
		name         string
		feeOn        bool
		feeLiquidity uint64
	}{
		{name: "fee off"},
		{name: "fee on", feeOn: true, feeLiquidity: 249_750_499_251_388},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			tp := newTestPair(t)
			if tt.feeOn {
				require.NoError(SetFeeTo(ctx, chain.NewEnv(tp.view, chain.Block{}, feeSetter, nil), feeTo))
			}
			env := tp.at(0)
			liquidity := tp.addLiquidity(t, env, expand(1_000), expand(1_000))

			require.NoError(token.Transfer(ctx, env, tp.token1, alice, tp.pair, expand(1)))
			require.NoError(Swap(ctx, env, tp.pair, uint256.NewInt(996_006_981_039_903_216), fixedpoint.Zero(), alice, nil))

			require.NoError(token.Transfer(ctx, env, tp.pair, alice, tp.pair, liquidity))
			_, _, err := Burn(ctx, env, tp.pair, alice)
			require.NoError(err)

			supply, err := token.TotalSupply(ctx, tp.view, tp.pair)
			require.NoError(err)
			require.Equal(uint256.NewInt(storage.MinimumLiquidity+tt.feeLiquidity), supply)
			require.Equal(uint256.NewInt(tt.feeLiquidity), tp.balance(t, tp.pair, feeTo))

			pr, err := Info(ctx, tp.view, tp.pair)
			require.NoError(err)
			if tt.feeOn {
				require.Equal(uint256.NewInt(1_000+249_501_683_697_445), tp.balance(t, tp.token0, tp.pair))
				require.Equal(uint256.NewInt(1_000+250_000_187_312_969), tp.balance(t, tp.token1, tp.pair))
				require.False(pr.KLast.IsZero())
			} else {
				require.True(pr.KLast.IsZero())
			}
		})
	}
}

func TestFlashSwap(t *testing.T) {
	tests := []struct {
		name  string
		repay *uint256.Int
		err   error
	}{
		{name: "repaid with fee", repay: uint256.NewInt(1_003_009_027_081_243_732)},
		{name: "repaid without fee", repay: expand(1), err: ErrInvalidK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			tp := newTestPair(t)
			env := tp.at(0)
			tp.addLiquidity(t, env, expand(5), expand(10))

			calleeAddr := codec.CreateAddress(consts.ContractID, ids.GenerateTestID())
			require.NoError(token.Transfer(ctx, env, tp.token1, alice, calleeAddr, expand(2)))
			callee := ammmock.NewMockCallee(ctrl)
			require.NoError(tp.reg.Register(calleeAddr, callee))

			callee.EXPECT().
				DexCall(gomock.Any(), gomock.Any(), alice, gomock.Any(), gomock.Any(), []byte("flash")).
				DoAndReturn(func(ctx context.Context, cenv *chain.Env, _ codec.Address, _, amount1 *uint256.Int, _ []byte) error {
					require.Equal(calleeAddr, cenv.Actor())
					require.Equal(expand(1), amount1)
					return token.Transfer(ctx, cenv, tp.token1, cenv.Actor(), tp.pair, tt.repay)
				})

			err := Swap(ctx, env, tp.pair, fixedpoint.Zero(), expand(1), calleeAddr, []byte("flash"))
			require.ErrorIs(err, tt.err)
		})
	}
}

func TestFlashSwapCalleeErrors(t *testing.T) {
	tests := []struct {
		name string
		call func(ctx context.Context, cenv *chain.Env, pair codec.Address) error
		err  error
	}{
		{
			name: "callee fails",
			call: func(context.Context, *chain.Env, codec.Address) error { return errCallee },
			err:  errCallee,
		},
		{
			name: "callee reenters",
			call: func(ctx context.Context, cenv *chain.Env, pair codec.Address) error { return Sync(ctx, cenv, pair) },
			err:  ErrLocked,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			tp := newTestPair(t)
			env := tp.at(0)
			tp.addLiquidity(t, env, expand(5), expand(10))

			calleeAddr := codec.CreateAddress(consts.ContractID, ids.GenerateTestID())
			callee := ammmock.NewMockCallee(ctrl)
			require.NoError(tp.reg.Register(calleeAddr, callee))
			callee.EXPECT().
				DexCall(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, cenv *chain.Env, _ codec.Address, _, _ *uint256.Int, _ []byte) error {
					return tt.call(ctx, cenv, tp.pair)
				})

			err := Swap(ctx, env, tp.pair, fixedpoint.Zero(), expand(1), calleeAddr, []byte{1})
			require.ErrorIs(err, tt.err)

			// The lock is released even when the swap fails.
			locked, err := storage.IsPairLocked(ctx, tp.view, tp.pair)
			require.NoError(err)
			require.False(locked)
		})
	}
}
