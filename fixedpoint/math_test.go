// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedpoint

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestSqrt(t *testing.T) {
	tests := []struct {
		in       uint64
		expected uint64
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{15, 3},
		{16, 4},
		{1_000_000, 1_000},
		{4_000_000_000_000, 2_000_000},
		{math.MaxUint64, math.MaxUint32},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, Sqrt(uint256.NewInt(tt.in)).Uint64(), tt.in)
	}
}

func TestSqrtLarge(t *testing.T) {
	require := require.New(t)
	// (2^112-1)^2 fits in 256 bits
	sq := new(uint256.Int).Mul(MaxUint112, MaxUint112)
	require.Equal(MaxUint112, Sqrt(sq))
}

func TestCheckedArithmetic(t *testing.T) {
	require := require.New(t)
	maxU := new(uint256.Int).SetAllOne()

	_, err := Add(maxU, New(1))
	require.ErrorIs(err, ErrOverflow)
	_, err = Sub(New(1), New(2))
	require.ErrorIs(err, ErrUnderflow)
	_, err = Mul(maxU, New(2))
	require.ErrorIs(err, ErrOverflow)
	_, err = Div(New(1), Zero())
	require.ErrorIs(err, ErrDivisionByZero)

	v, err := MulDiv(New(10), New(3), New(4))
	require.NoError(err)
	require.Equal(uint64(7), v.Uint64())
}

func TestMinDoesNotAlias(t *testing.T) {
	require := require.New(t)
	a, b := New(1), New(2)
	m := Min(a, b)
	m.AddUint64(m, 5)
	require.Equal(uint64(1), a.Uint64())
}

func TestPow10(t *testing.T) {
	require := require.New(t)
	require.Equal(uint64(RewardPrecision), Pow10(12).Uint64())
	require.Equal("1000000000000000000000000000000", String(Pow10(30)))
	require.Equal("0", String(nil))
}
