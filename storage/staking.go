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

// StakingPool is a single-pool distributor paying a pre-funded reward
// token to holders of a different staked token until [EndBlock].
type StakingPool struct {
	Owner       codec.Address
	StakedToken codec.Address
	RewardToken codec.Address

	RewardPerBlock  *uint256.Int
	StartBlock      uint64
	EndBlock        uint64
	LastRewardBlock uint64

	AccTokenPerShare *uint256.Int
	PrecisionFactor  *uint256.Int
	TotalStaked      *uint256.Int

	// The per-user cap applies while UserLimit is set and the block is
	// before StartBlock + LimitBlocks.
	UserLimit        bool
	PoolLimitPerUser *uint256.Int
	LimitBlocks      uint64
}

func (*StakingPool) Size() int {
	return codec.AddressLen*3 + consts.Uint256Len*5 + consts.Uint64Len*4 + consts.BoolLen
}

func (sp *StakingPool) Marshal(p *codec.Packer) {
	p.PackAddress(sp.Owner)
	p.PackAddress(sp.StakedToken)
	p.PackAddress(sp.RewardToken)
	p.PackUint256(sp.RewardPerBlock)
	p.PackUint64(sp.StartBlock)
	p.PackUint64(sp.EndBlock)
	p.PackUint64(sp.LastRewardBlock)
	p.PackUint256(sp.AccTokenPerShare)
	p.PackUint256(sp.PrecisionFactor)
	p.PackUint256(sp.TotalStaked)
	p.PackBool(sp.UserLimit)
	p.PackUint256(sp.PoolLimitPerUser)
	p.PackUint64(sp.LimitBlocks)
}

func (sp *StakingPool) unmarshal(p *codec.Packer) {
	p.UnpackOptionalAddress(&sp.Owner)
	p.UnpackAddress(&sp.StakedToken)
	p.UnpackAddress(&sp.RewardToken)
	sp.RewardPerBlock = p.UnpackUint256(false)
	sp.StartBlock = p.UnpackUint64(false)
	sp.EndBlock = p.UnpackUint64(false)
	sp.LastRewardBlock = p.UnpackUint64(false)
	sp.AccTokenPerShare = p.UnpackUint256(false)
	sp.PrecisionFactor = p.UnpackUint256(true)
	sp.TotalStaked = p.UnpackUint256(false)
	sp.UserLimit = p.UnpackBool()
	sp.PoolLimitPerUser = p.UnpackUint256(false)
	sp.LimitBlocks = p.UnpackUint64(false)
}

// StakingPoolAddress derives the address of the [index]-th staking pool.
func StakingPoolAddress(index uint64) codec.Address {
	return codec.CreateAddress(consts.StakingID, ToID(append([]byte("staking"), uint64Bytes(index)...)))
}

func StakingCountKey() []byte {
	return key(stakingCountPrefix, StakingCountChunks)
}

func GetStakingCount(ctx context.Context, im state.Immutable) (uint64, error) {
	return getUint64(ctx, im, StakingCountKey())
}

func SetStakingCount(ctx context.Context, mu state.Mutable, count uint64) error {
	return setUint64(ctx, mu, StakingCountKey(), count)
}

func StakingPoolKey(pool codec.Address) []byte {
	return key(stakingPoolPrefix, StakingPoolChunks, pool[:])
}

func GetStakingPool(ctx context.Context, im state.Immutable, pool codec.Address) (*StakingPool, bool, error) {
	var sp StakingPool
	exists, err := getRecord(ctx, im, StakingPoolKey(pool), sp.unmarshal)
	if err != nil || !exists {
		return nil, false, err
	}
	return &sp, true, nil
}

func SetStakingPool(ctx context.Context, mu state.Mutable, pool codec.Address, sp *StakingPool) error {
	return putRecord(ctx, mu, StakingPoolKey(pool), sp)
}

func StakingUserKey(pool codec.Address, user codec.Address) []byte {
	return key(stakingUserPrefix, StakingUserChunks, pool[:], user[:])
}

// GetStakingUser returns a zeroed record for users that never deposited.
func GetStakingUser(ctx context.Context, im state.Immutable, pool codec.Address, user codec.Address) (*Stake, error) {
	s := NewStake()
	if _, err := getRecord(ctx, im, StakingUserKey(pool, user), s.unmarshal); err != nil {
		return nil, err
	}
	return s, nil
}

func SetStakingUser(ctx context.Context, mu state.Mutable, pool codec.Address, user codec.Address, s *Stake) error {
	return putRecord(ctx, mu, StakingUserKey(pool, user), s)
}
