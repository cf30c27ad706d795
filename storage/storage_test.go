// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/tstate"
)

func newView() *tstate.TStateView {
	return tstate.New(state.NewMemory(), 16).NewView()
}

func TestPairAddressIsOrderIndependent(t *testing.T) {
	require := require.New(t)
	a := TokenAddress("AAA")
	b := TokenAddress("BBB")

	require.Equal(PairAddress(a, b), PairAddress(b, a))
	require.Equal(consts.PairID, PairAddress(a, b).TypeID())

	t0, t1 := SortTokens(b, a)
	t0b, t1b := SortTokens(a, b)
	require.Equal(t0, t0b)
	require.Equal(t1, t1b)
	require.NotEqual(t0, t1)
}

func TestBalanceZeroRemovesKey(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newView()
	token := TokenAddress("AAA")
	owner := codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())

	bal, err := GetBalance(ctx, mu, token, owner)
	require.NoError(err)
	require.True(bal.IsZero())

	require.NoError(SetBalance(ctx, mu, token, owner, uint256.NewInt(10)))
	bal, err = GetBalance(ctx, mu, token, owner)
	require.NoError(err)
	require.Equal(uint64(10), bal.Uint64())

	require.NoError(SetBalance(ctx, mu, token, owner, new(uint256.Int)))
	_, err = mu.GetValue(ctx, BalanceKey(token, owner))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestTokenInfo(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newView()
	token := TokenAddress("PTN")

	_, exists, err := GetTokenInfo(ctx, mu, token)
	require.NoError(err)
	require.False(exists)

	info := &TokenInfo{
		Name:        "PlatformToken",
		Symbol:      "PTN",
		Decimals:    18,
		TotalSupply: uint256.NewInt(1_000),
		Minter:      codec.CreateAddress(consts.FarmID, ids.GenerateTestID()),
	}
	require.NoError(SetTokenInfo(ctx, mu, token, info))
	got, exists, err := GetTokenInfo(ctx, mu, token)
	require.NoError(err)
	require.True(exists)
	require.Equal(info, got)
}

func TestPairRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newView()
	t0, t1 := SortTokens(TokenAddress("AAA"), TokenAddress("BBB"))
	pair := PairAddress(t0, t1)

	pr := &Pair{
		Token0:               t0,
		Token1:               t1,
		Reserve0:             uint256.NewInt(5),
		Reserve1:             uint256.NewInt(10),
		BlockTimestampLast:   42,
		Price0CumulativeLast: new(uint256.Int).SetAllOne(),
		Price1CumulativeLast: uint256.NewInt(7),
		KLast:                uint256.NewInt(50),
		Fee:                  3,
	}
	require.NoError(SetPair(ctx, mu, pair, pr))
	got, exists, err := GetPair(ctx, mu, pair)
	require.NoError(err)
	require.True(exists)
	require.Equal(pr, got)

	require.NoError(SetPairAt(ctx, mu, 0, pair))
	at, exists, err := GetPairAt(ctx, mu, 0)
	require.NoError(err)
	require.True(exists)
	require.Equal(pair, at)

	locked, err := IsPairLocked(ctx, mu, pair)
	require.NoError(err)
	require.False(locked)
	require.NoError(SetPairLock(ctx, mu, pair, true))
	locked, err = IsPairLocked(ctx, mu, pair)
	require.NoError(err)
	require.True(locked)
}

func TestFactoryDefaultsToZero(t *testing.T) {
	require := require.New(t)
	f, err := GetFactory(context.Background(), newView())
	require.NoError(err)
	require.Equal(codec.EmptyAddress, f.FeeTo)
	require.Zero(f.PairCount)
}

func TestFarmRecords(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newView()
	farm := FarmAddress(0)
	require.NotEqual(farm, FarmAddress(1))

	f := &Farm{
		Owner:           codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID()),
		RewardToken:     TokenAddress("PTN"),
		RewardPerBlock:  uint256.NewInt(100),
		StartBlock:      300,
		TotalAllocPoint: 133,
		PoolCount:       2,
		Schedule: []Breakpoint{
			{EndBlock: 400, Multiplier: 10},
			{EndBlock: 500, Multiplier: 2},
		},
		RewardReserve:  uint256.NewInt(9),
		StakingDivisor: 3,
	}
	require.NoError(SetFarm(ctx, mu, farm, f))
	got, exists, err := GetFarm(ctx, mu, farm)
	require.NoError(err)
	require.True(exists)
	require.Equal(f, got)

	f.Schedule = make([]Breakpoint, MaxScheduleBreakpoints+1)
	require.ErrorIs(SetFarm(ctx, mu, farm, f), ErrTooManyItems)

	pool := &FarmPool{
		DepositToken:      TokenAddress("LP"),
		Kind:              StandardPool,
		AllocPoint:        100,
		Multiplier:        1,
		LastRewardBlock:   300,
		AccRewardPerShare: uint256.NewInt(1),
		TotalStaked:       uint256.NewInt(2),
	}
	require.NoError(SetFarmPool(ctx, mu, farm, 1, pool))
	gotPool, exists, err := GetFarmPool(ctx, mu, farm, 1)
	require.NoError(err)
	require.True(exists)
	require.Equal(pool, gotPool)

	user := codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	s, err := GetFarmUser(ctx, mu, farm, 1, user)
	require.NoError(err)
	require.Equal(NewStake(), s)

	s.Amount = uint256.NewInt(3)
	require.NoError(SetFarmUser(ctx, mu, farm, 1, user, s))
	s2, err := GetFarmUser(ctx, mu, farm, 1, user)
	require.NoError(err)
	require.Equal(s, s2)

	require.NoError(SetFarmPoolByToken(ctx, mu, farm, pool.DepositToken, 1))
	pid, exists, err := GetFarmPoolByToken(ctx, mu, farm, pool.DepositToken)
	require.NoError(err)
	require.True(exists)
	require.Equal(uint64(1), pid)
}

func TestStakingPoolRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newView()
	pool := StakingPoolAddress(0)

	sp := &StakingPool{
		Owner:            codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID()),
		StakedToken:      TokenAddress("PTN"),
		RewardToken:      TokenAddress("PT"),
		RewardPerBlock:   uint256.NewInt(10),
		StartBlock:       100,
		EndBlock:         500,
		LastRewardBlock:  100,
		AccTokenPerShare: new(uint256.Int),
		PrecisionFactor:  uint256.NewInt(1_000_000_000_000),
		TotalStaked:      new(uint256.Int),
		UserLimit:        true,
		PoolLimitPerUser: uint256.NewInt(50),
		LimitBlocks:      10,
	}
	require.NoError(SetStakingPool(ctx, mu, pool, sp))
	got, exists, err := GetStakingPool(ctx, mu, pool)
	require.NoError(err)
	require.True(exists)
	require.Equal(sp, got)

	count, err := GetStakingCount(ctx, mu)
	require.NoError(err)
	require.Zero(count)
	require.NoError(SetStakingCount(ctx, mu, 1))
	count, err = GetStakingCount(ctx, mu)
	require.NoError(err)
	require.Equal(uint64(1), count)
}

func TestCorruptRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := newView()
	pair := PairAddress(TokenAddress("AAA"), TokenAddress("BBB"))
	require.NoError(mu.Insert(ctx, PairKey(pair), []byte{1, 2, 3}))

	_, _, err := GetPair(ctx, mu, pair)
	require.ErrorIs(err, ErrInvalidRecord)
}
