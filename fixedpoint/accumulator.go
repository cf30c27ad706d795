// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedpoint

import "github.com/holiman/uint256"

// RewardPrecision is the scale of a farm accumulator.
const RewardPrecision = 1_000_000_000_000

// Accumulator is a reward-per-share ledger scaled by a precision factor.
// acc grows by reward * precision / totalStaked, and a holder of [amount]
// has earned amount * acc / precision since acc was zero.
type Accumulator struct {
	Precision *uint256.Int
}

func NewAccumulator(precision *uint256.Int) Accumulator {
	return Accumulator{Precision: precision}
}

// Increase returns acc + reward * precision / totalStaked. A zero
// [totalStaked] leaves acc unchanged.
func (a Accumulator) Increase(acc, reward, totalStaked *uint256.Int) (*uint256.Int, error) {
	if totalStaked.IsZero() {
		return Clone(acc), nil
	}
	delta, err := MulDiv(reward, a.Precision, totalStaked)
	if err != nil {
		return nil, err
	}
	return Add(acc, delta)
}

// Debt returns amount * acc / precision, the checkpoint stored after every
// deposit or withdrawal.
func (a Accumulator) Debt(amount, acc *uint256.Int) (*uint256.Int, error) {
	return MulDiv(amount, acc, a.Precision)
}

// Pending returns amount * acc / precision - debt.
func (a Accumulator) Pending(amount, acc, debt *uint256.Int) (*uint256.Int, error) {
	owed, err := a.Debt(amount, acc)
	if err != nil {
		return nil, err
	}
	return Sub(owed, debt)
}

// Share returns total * weight / totalWeight, or zero when [totalWeight]
// is zero.
func Share(total *uint256.Int, weight, totalWeight uint64) (*uint256.Int, error) {
	if totalWeight == 0 {
		return new(uint256.Int), nil
	}
	return MulDiv(total, uint256.NewInt(weight), uint256.NewInt(totalWeight))
}
