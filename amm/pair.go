// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/token"
)

var feeDenominator = uint256.NewInt(FeeDenominator)

// Info returns the full pair record.
func Info(ctx context.Context, im state.Immutable, pair codec.Address) (*storage.Pair, error) {
	pr, exists, err := storage.GetPair(ctx, im, pair)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPairNotFound, pair)
	}
	return pr, nil
}

// Reserves returns the cached reserves and the timestamp (mod 2^32) they
// were last updated at.
func Reserves(ctx context.Context, im state.Immutable, pair codec.Address) (*uint256.Int, *uint256.Int, uint32, error) {
	pr, err := Info(ctx, im, pair)
	if err != nil {
		return nil, nil, 0, err
	}
	return pr.Reserve0, pr.Reserve1, pr.BlockTimestampLast, nil
}

// withLock runs [f] against the pair record while the pair is locked, so
// nothing [f] calls out to can re-enter any mutator of the same pair.
func withLock(ctx context.Context, env *chain.Env, pair codec.Address, f func(*storage.Pair) error) error {
	mu := env.State()
	pr, err := Info(ctx, mu, pair)
	if err != nil {
		return err
	}
	locked, err := storage.IsPairLocked(ctx, mu, pair)
	if err != nil {
		return err
	}
	if locked {
		return ErrLocked
	}
	if err := storage.SetPairLock(ctx, mu, pair, true); err != nil {
		return err
	}
	if err := f(pr); err != nil {
		_ = storage.SetPairLock(ctx, mu, pair, false)
		return err
	}
	return storage.SetPairLock(ctx, mu, pair, false)
}

func balances(ctx context.Context, im state.Immutable, pair codec.Address, pr *storage.Pair) (*uint256.Int, *uint256.Int, error) {
	balance0, err := token.BalanceOf(ctx, im, pr.Token0, pair)
	if err != nil {
		return nil, nil, err
	}
	balance1, err := token.BalanceOf(ctx, im, pr.Token1, pair)
	if err != nil {
		return nil, nil, err
	}
	return balance0, balance1, nil
}

// update accrues the price oracle against the current (old) reserves and
// then snaps the reserves to [balance0] and [balance1].
func update(
	ctx context.Context,
	env *chain.Env,
	pair codec.Address,
	pr *storage.Pair,
	balance0 *uint256.Int,
	balance1 *uint256.Int,
) error {
	if balance0.Gt(fixedpoint.MaxUint112) || balance1.Gt(fixedpoint.MaxUint112) {
		return ErrOverflow
	}
	blockTimestamp := uint32(env.Timestamp()) //nolint:gosec
	elapsed := blockTimestamp - pr.BlockTimestampLast
	if elapsed > 0 && !pr.Reserve0.IsZero() && !pr.Reserve1.IsZero() {
		price0, price1, err := fixedpoint.EncodePrice(pr.Reserve0, pr.Reserve1)
		if err != nil {
			return err
		}
		pr.Price0CumulativeLast = fixedpoint.AccumulatePrice(pr.Price0CumulativeLast, price0, elapsed)
		pr.Price1CumulativeLast = fixedpoint.AccumulatePrice(pr.Price1CumulativeLast, price1, elapsed)
	}
	pr.Reserve0 = fixedpoint.Clone(balance0)
	pr.Reserve1 = fixedpoint.Clone(balance1)
	pr.BlockTimestampLast = blockTimestamp
	if err := storage.SetPair(ctx, env.State(), pair, pr); err != nil {
		return err
	}
	env.Emit(pair, &SyncEvent{Reserve0: fixedpoint.Clone(balance0), Reserve1: fixedpoint.Clone(balance1)})
	return nil
}

// mintFee mints the protocol's share of the growth in sqrt(k) since the
// last liquidity event, one sixth of it, to the factory's feeTo.
func mintFee(ctx context.Context, env *chain.Env, pair codec.Address, pr *storage.Pair) (bool, error) {
	mu := env.State()
	f, err := storage.GetFactory(ctx, mu)
	if err != nil {
		return false, err
	}
	feeOn := f.FeeTo != codec.EmptyAddress
	if !feeOn {
		if !pr.KLast.IsZero() {
			pr.KLast = fixedpoint.Zero()
		}
		return false, nil
	}
	if pr.KLast.IsZero() {
		return true, nil
	}
	k, err := fixedpoint.Mul(pr.Reserve0, pr.Reserve1)
	if err != nil {
		return false, err
	}
	rootK := fixedpoint.Sqrt(k)
	rootKLast := fixedpoint.Sqrt(pr.KLast)
	if !rootK.Gt(rootKLast) {
		return true, nil
	}
	supply, err := token.TotalSupply(ctx, mu, pair)
	if err != nil {
		return false, err
	}
	numerator, err := fixedpoint.Mul(supply, new(uint256.Int).Sub(rootK, rootKLast))
	if err != nil {
		return false, err
	}
	denominator, err := fixedpoint.Mul(rootK, uint256.NewInt(5))
	if err != nil {
		return false, err
	}
	denominator, err = fixedpoint.Add(denominator, rootKLast)
	if err != nil {
		return false, err
	}
	liquidity, err := fixedpoint.Div(numerator, denominator)
	if err != nil {
		return false, err
	}
	if liquidity.IsZero() {
		return true, nil
	}
	return true, token.Mint(ctx, env, pair, pair, f.FeeTo, liquidity)
}

// Mint issues liquidity shares to [to] for the token amounts transferred to
// the pair since its reserves were last updated.
func Mint(ctx context.Context, env *chain.Env, pair codec.Address, to codec.Address) (*uint256.Int, error) {
	var liquidity *uint256.Int
	err := withLock(ctx, env, pair, func(pr *storage.Pair) error {
		mu := env.State()
		balance0, balance1, err := balances(ctx, mu, pair, pr)
		if err != nil {
			return err
		}
		amount0, err := fixedpoint.Sub(balance0, pr.Reserve0)
		if err != nil {
			return err
		}
		amount1, err := fixedpoint.Sub(balance1, pr.Reserve1)
		if err != nil {
			return err
		}
		feeOn, err := mintFee(ctx, env, pair, pr)
		if err != nil {
			return err
		}
		supply, err := token.TotalSupply(ctx, mu, pair)
		if err != nil {
			return err
		}
		if supply.IsZero() {
			product, err := fixedpoint.Mul(amount0, amount1)
			if err != nil {
				return err
			}
			liquidity, err = fixedpoint.Sub(fixedpoint.Sqrt(product), uint256.NewInt(storage.MinimumLiquidity))
			if err != nil {
				return ErrInsufficientLiquidityMinted
			}
			if err := token.Mint(ctx, env, pair, pair, codec.EmptyAddress, uint256.NewInt(storage.MinimumLiquidity)); err != nil {
				return err
			}
		} else {
			share0, err := fixedpoint.MulDiv(amount0, supply, pr.Reserve0)
			if err != nil {
				return err
			}
			share1, err := fixedpoint.MulDiv(amount1, supply, pr.Reserve1)
			if err != nil {
				return err
			}
			liquidity = fixedpoint.Min(share0, share1)
		}
		if liquidity.IsZero() {
			return ErrInsufficientLiquidityMinted
		}
		if err := token.Mint(ctx, env, pair, pair, to, liquidity); err != nil {
			return err
		}
		if feeOn {
			if pr.KLast, err = fixedpoint.Mul(balance0, balance1); err != nil {
				return err
			}
		}
		if err := update(ctx, env, pair, pr, balance0, balance1); err != nil {
			return err
		}
		env.Emit(pair, &MintEvent{Sender: env.Actor(), Amount0: amount0, Amount1: amount1})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return liquidity, nil
}

// Burn redeems the liquidity shares held by the pair itself for a pro-rata
// amount of both tokens, sent to [to].
func Burn(ctx context.Context, env *chain.Env, pair codec.Address, to codec.Address) (*uint256.Int, *uint256.Int, error) {
	var amount0, amount1 *uint256.Int
	err := withLock(ctx, env, pair, func(pr *storage.Pair) error {
		mu := env.State()
		balance0, balance1, err := balances(ctx, mu, pair, pr)
		if err != nil {
			return err
		}
		liquidity, err := token.BalanceOf(ctx, mu, pair, pair)
		if err != nil {
			return err
		}
		feeOn, err := mintFee(ctx, env, pair, pr)
		if err != nil {
			return err
		}
		supply, err := token.TotalSupply(ctx, mu, pair)
		if err != nil {
			return err
		}
		if supply.IsZero() {
			return ErrInsufficientLiquidityBurned
		}
		if amount0, err = fixedpoint.MulDiv(liquidity, balance0, supply); err != nil {
			return err
		}
		if amount1, err = fixedpoint.MulDiv(liquidity, balance1, supply); err != nil {
			return err
		}
		if amount0.IsZero() || amount1.IsZero() {
			return ErrInsufficientLiquidityBurned
		}
		if err := token.Burn(ctx, env, pair, pair, liquidity); err != nil {
			return err
		}
		if err := token.Transfer(ctx, env, pr.Token0, pair, to, amount0); err != nil {
			return err
		}
		if err := token.Transfer(ctx, env, pr.Token1, pair, to, amount1); err != nil {
			return err
		}
		if balance0, balance1, err = balances(ctx, mu, pair, pr); err != nil {
			return err
		}
		if feeOn {
			if pr.KLast, err = fixedpoint.Mul(balance0, balance1); err != nil {
				return err
			}
		}
		if err := update(ctx, env, pair, pr, balance0, balance1); err != nil {
			return err
		}
		env.Emit(pair, &BurnEvent{Sender: env.Actor(), Amount0: amount0, Amount1: amount1, To: to})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return amount0, amount1, nil
}

// Swap sends the requested outputs to [to] and then requires the input
// found in the pair's balances to keep the fee-adjusted product of the
// reserves from shrinking. When [data] is non-empty [to] must be a
// registered [Callee], which is invoked between the two steps.
func Swap(
	ctx context.Context,
	env *chain.Env,
	pair codec.Address,
	amount0Out *uint256.Int,
	amount1Out *uint256.Int,
	to codec.Address,
	data []byte,
) error {
	if amount0Out.IsZero() && amount1Out.IsZero() {
		return ErrInsufficientOutputAmount
	}
	return withLock(ctx, env, pair, func(pr *storage.Pair) error {
		if !amount0Out.Lt(pr.Reserve0) || !amount1Out.Lt(pr.Reserve1) {
			return ErrInsufficientLiquidity
		}
		if to == pr.Token0 || to == pr.Token1 {
			return ErrInvalidTo
		}
		if !amount0Out.IsZero() {
			if err := token.Transfer(ctx, env, pr.Token0, pair, to, amount0Out); err != nil {
				return err
			}
		}
		if !amount1Out.IsZero() {
			if err := token.Transfer(ctx, env, pr.Token1, pair, to, amount1Out); err != nil {
				return err
			}
		}
		if len(data) > 0 {
			c, ok := env.Contract(to)
			if !ok {
				return fmt.Errorf("%w: %s", ErrCalleeNotFound, to)
			}
			callee, ok := c.(Callee)
			if !ok {
				return fmt.Errorf("%w: %s", ErrCalleeNotFound, to)
			}
			if err := callee.DexCall(ctx, env.As(to), env.Actor(), amount0Out, amount1Out, data); err != nil {
				return err
			}
		}
		balance0, balance1, err := balances(ctx, env.State(), pair, pr)
		if err != nil {
			return err
		}
		amount0In := inputAmount(balance0, pr.Reserve0, amount0Out)
		amount1In := inputAmount(balance1, pr.Reserve1, amount1Out)
		if amount0In.IsZero() && amount1In.IsZero() {
			return ErrInsufficientInputAmount
		}
		adjusted0, err := adjustedBalance(balance0, amount0In, pr.Fee)
		if err != nil {
			return err
		}
		adjusted1, err := adjustedBalance(balance1, amount1In, pr.Fee)
		if err != nil {
			return err
		}
		k, err := fixedpoint.Mul(adjusted0, adjusted1)
		if err != nil {
			return err
		}
		kLast, err := fixedpoint.Mul(pr.Reserve0, pr.Reserve1)
		if err != nil {
			return err
		}
		kLast, err = fixedpoint.Mul(kLast, uint256.NewInt(FeeDenominator*FeeDenominator))
		if err != nil {
			return err
		}
		if k.Lt(kLast) {
			return ErrInvalidK
		}
		if err := update(ctx, env, pair, pr, balance0, balance1); err != nil {
			return err
		}
		env.Emit(pair, &SwapEvent{
			Sender:     env.Actor(),
			Amount0In:  amount0In,
			Amount1In:  amount1In,
			Amount0Out: fixedpoint.Clone(amount0Out),
			Amount1Out: fixedpoint.Clone(amount1Out),
			To:         to,
		})
		return nil
	})
}

// inputAmount is how much of [balance] arrived on top of what the reserve
// kept after paying [out].
func inputAmount(balance, reserve, out *uint256.Int) *uint256.Int {
	kept := new(uint256.Int).Sub(reserve, out)
	if balance.Gt(kept) {
		return new(uint256.Int).Sub(balance, kept)
	}
	return fixedpoint.Zero()
}

// adjustedBalance is balance*1000 - in*fee.
func adjustedBalance(balance, in *uint256.Int, fee uint64) (*uint256.Int, error) {
	scaled, err := fixedpoint.Mul(balance, feeDenominator)
	if err != nil {
		return nil, err
	}
	cut, err := fixedpoint.Mul(in, uint256.NewInt(fee))
	if err != nil {
		return nil, err
	}
	return fixedpoint.Sub(scaled, cut)
}

// Skim sends any balance above the reserves to [to].
func Skim(ctx context.Context, env *chain.Env, pair codec.Address, to codec.Address) error {
	return withLock(ctx, env, pair, func(pr *storage.Pair) error {
		balance0, balance1, err := balances(ctx, env.State(), pair, pr)
		if err != nil {
			return err
		}
		excess0, err := fixedpoint.Sub(balance0, pr.Reserve0)
		if err != nil {
			return err
		}
		excess1, err := fixedpoint.Sub(balance1, pr.Reserve1)
		if err != nil {
			return err
		}
		if err := token.Transfer(ctx, env, pr.Token0, pair, to, excess0); err != nil {
			return err
		}
		return token.Transfer(ctx, env, pr.Token1, pair, to, excess1)
	})
}

// Sync sets the reserves to the pair's balances without checking any
// invariant.
func Sync(ctx context.Context, env *chain.Env, pair codec.Address) error {
	return withLock(ctx, env, pair, func(pr *storage.Pair) error {
		balance0, balance1, err := balances(ctx, env.State(), pair, pr)
		if err != nil {
			return err
		}
		return update(ctx, env, pair, pr, balance0, balance1)
	})
}
