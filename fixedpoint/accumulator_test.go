// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccumulator(t *testing.T) {
	require := require.New(t)
	a := NewAccumulator(New(RewardPrecision))

	// Zero stake leaves the accumulator alone
	acc, err := a.Increase(New(5), New(100), Zero())
	require.NoError(err)
	require.Equal(uint64(5), acc.Uint64())

	// 100 reward over 10 staked is 10 per share
	acc, err = a.Increase(Zero(), New(100), New(10))
	require.NoError(err)
	require.Equal(uint64(10*RewardPrecision), acc.Uint64())

	pending, err := a.Pending(New(10), acc, Zero())
	require.NoError(err)
	require.Equal(uint64(100), pending.Uint64())

	debt, err := a.Debt(New(10), acc)
	require.NoError(err)
	pending, err = a.Pending(New(10), acc, debt)
	require.NoError(err)
	require.True(pending.IsZero())
}

func TestAccumulatorRounding(t *testing.T) {
	require := require.New(t)
	a := NewAccumulator(New(RewardPrecision))

	// 100 over 3 stakers of 1: each gets floor(33.333...)
	acc, err := a.Increase(Zero(), New(100), New(3))
	require.NoError(err)
	pending, err := a.Pending(New(1), acc, Zero())
	require.NoError(err)
	require.Equal(uint64(33), pending.Uint64())
}

func TestShare(t *testing.T) {
	tests := []struct {
		name        string
		total       uint64
		weight      uint64
		totalWeight uint64
		expected    uint64
	}{
		{"sole pool", 100, 100, 100, 100},
		{"quarter", 100, 25, 100, 25},
		{"no weight", 100, 10, 0, 0},
		{"floor", 100, 1, 3, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Share(New(tt.total), tt.weight, tt.totalWeight)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got.Uint64())
		})
	}
}
