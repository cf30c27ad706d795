// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/state"
)

// PoolKind tags how a farm pool accepts deposits.
type PoolKind uint8

const (
	// StandardPool accepts any deposit token other than the reward token
	// through Deposit and Withdraw.
	StandardPool PoolKind = iota
	// SelfReferentialPool accepts the reward token itself through
	// EnterStaking and LeaveStaking.
	SelfReferentialPool
)

func (k PoolKind) String() string {
	switch k {
	case StandardPool:
		return "standard"
	case SelfReferentialPool:
		return "self-referential"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Breakpoint applies [Multiplier] to every block before [EndBlock] that is
// not covered by an earlier breakpoint.
type Breakpoint struct {
	EndBlock   uint64 `json:"endBlock" yaml:"endBlock"`
	Multiplier uint64 `json:"multiplier" yaml:"multiplier"`
}

// Farm is the global record of one reward distributor.
type Farm struct {
	Owner       codec.Address
	RewardToken codec.Address

	RewardPerBlock  *uint256.Int
	StartBlock      uint64
	TotalAllocPoint uint64
	PoolCount       uint64

	// Schedule is ordered by strictly increasing EndBlock.
	Schedule []Breakpoint

	// RewardReserve is minted reward not yet paid out.
	RewardReserve *uint256.Int

	// StakingDivisor recomputes the self-referential pool weight as
	// sum(other weights) / StakingDivisor after every weight change. Zero
	// keeps the weight as set.
	StakingDivisor uint64

	// OptionalMassUpdate honors a caller's withUpdate=false on Add and
	// Set. When false, every weight change updates all pools first.
	OptionalMassUpdate bool
}

func (f *Farm) Size() int {
	return codec.AddressLen*2 + consts.Uint256Len*2 + consts.Uint64Len*4 + consts.Uint16Len +
		len(f.Schedule)*consts.Uint64Len*2 + consts.BoolLen
}

func (f *Farm) Marshal(p *codec.Packer) {
	p.PackAddress(f.Owner)
	p.PackAddress(f.RewardToken)
	p.PackUint256(f.RewardPerBlock)
	p.PackUint64(f.StartBlock)
	p.PackUint64(f.TotalAllocPoint)
	p.PackUint64(f.PoolCount)
	p.PackUint16(uint16(len(f.Schedule)))
	for _, b := range f.Schedule {
		p.PackUint64(b.EndBlock)
		p.PackUint64(b.Multiplier)
	}
	p.PackUint256(f.RewardReserve)
	p.PackUint64(f.StakingDivisor)
	p.PackBool(f.OptionalMassUpdate)
}

func (f *Farm) unmarshal(p *codec.Packer) {
	p.UnpackOptionalAddress(&f.Owner)
	p.UnpackAddress(&f.RewardToken)
	f.RewardPerBlock = p.UnpackUint256(false)
	f.StartBlock = p.UnpackUint64(false)
	f.TotalAllocPoint = p.UnpackUint64(false)
	f.PoolCount = p.UnpackUint64(false)
	count := int(p.UnpackUint16())
	if count > MaxScheduleBreakpoints {
		p.AddErr(fmt.Errorf("%w: %d breakpoints", ErrTooManyItems, count))
		return
	}
	f.Schedule = make([]Breakpoint, count)
	for i := range f.Schedule {
		f.Schedule[i].EndBlock = p.UnpackUint64(false)
		f.Schedule[i].Multiplier = p.UnpackUint64(false)
	}
	f.RewardReserve = p.UnpackUint256(false)
	f.StakingDivisor = p.UnpackUint64(false)
	f.OptionalMassUpdate = p.UnpackBool()
}

// FarmPool is one entry in the farm's pool arena.
type FarmPool struct {
	DepositToken    codec.Address
	Kind            PoolKind
	AllocPoint      uint64
	Multiplier      uint64
	LastRewardBlock uint64

	AccRewardPerShare *uint256.Int
	TotalStaked       *uint256.Int
}

func (*FarmPool) Size() int {
	return codec.AddressLen + consts.ByteLen + consts.Uint64Len*3 + consts.Uint256Len*2
}

func (fp *FarmPool) Marshal(p *codec.Packer) {
	p.PackAddress(fp.DepositToken)
	p.PackByte(byte(fp.Kind))
	p.PackUint64(fp.AllocPoint)
	p.PackUint64(fp.Multiplier)
	p.PackUint64(fp.LastRewardBlock)
	p.PackUint256(fp.AccRewardPerShare)
	p.PackUint256(fp.TotalStaked)
}

func (fp *FarmPool) unmarshal(p *codec.Packer) {
	p.UnpackAddress(&fp.DepositToken)
	fp.Kind = PoolKind(p.UnpackByte())
	fp.AllocPoint = p.UnpackUint64(false)
	fp.Multiplier = p.UnpackUint64(false)
	fp.LastRewardBlock = p.UnpackUint64(false)
	fp.AccRewardPerShare = p.UnpackUint256(false)
	fp.TotalStaked = p.UnpackUint256(false)
}

// Stake is the per-user record of a farm or staking pool. It is kept after
// a full withdrawal.
type Stake struct {
	Amount     *uint256.Int
	RewardDebt *uint256.Int
}

// NewStake returns a zeroed record.
func NewStake() *Stake {
	return &Stake{Amount: new(uint256.Int), RewardDebt: new(uint256.Int)}
}

func (*Stake) Size() int {
	return consts.Uint256Len * 2
}

func (s *Stake) Marshal(p *codec.Packer) {
	p.PackUint256(s.Amount)
	p.PackUint256(s.RewardDebt)
}

func (s *Stake) unmarshal(p *codec.Packer) {
	s.Amount = p.UnpackUint256(false)
	s.RewardDebt = p.UnpackUint256(false)
}

// FarmAddress derives the address of the [index]-th farm.
func FarmAddress(index uint64) codec.Address {
	return codec.CreateAddress(consts.FarmID, ToID(append([]byte("farm"), uint64Bytes(index)...)))
}

func FarmCountKey() []byte {
	return key(farmCountPrefix, FarmCountChunks)
}

func GetFarmCount(ctx context.Context, im state.Immutable) (uint64, error) {
	return getUint64(ctx, im, FarmCountKey())
}

func SetFarmCount(ctx context.Context, mu state.Mutable, count uint64) error {
	return setUint64(ctx, mu, FarmCountKey(), count)
}

func FarmKey(farm codec.Address) []byte {
	return key(farmPrefix, FarmChunks, farm[:])
}

func GetFarm(ctx context.Context, im state.Immutable, farm codec.Address) (*Farm, bool, error) {
	var f Farm
	exists, err := getRecord(ctx, im, FarmKey(farm), f.unmarshal)
	if err != nil || !exists {
		return nil, false, err
	}
	return &f, true, nil
}

func SetFarm(ctx context.Context, mu state.Mutable, farm codec.Address, f *Farm) error {
	if len(f.Schedule) > MaxScheduleBreakpoints {
		return ErrTooManyItems
	}
	return putRecord(ctx, mu, FarmKey(farm), f)
}

func FarmPoolKey(farm codec.Address, pid uint64) []byte {
	return key(farmPoolPrefix, FarmPoolChunks, farm[:], uint64Bytes(pid))
}

func GetFarmPool(ctx context.Context, im state.Immutable, farm codec.Address, pid uint64) (*FarmPool, bool, error) {
	var fp FarmPool
	exists, err := getRecord(ctx, im, FarmPoolKey(farm, pid), fp.unmarshal)
	if err != nil || !exists {
		return nil, false, err
	}
	return &fp, true, nil
}

func SetFarmPool(ctx context.Context, mu state.Mutable, farm codec.Address, pid uint64, fp *FarmPool) error {
	return putRecord(ctx, mu, FarmPoolKey(farm, pid), fp)
}

func FarmUserKey(farm codec.Address, pid uint64, user codec.Address) []byte {
	return key(farmUserPrefix, FarmUserChunks, farm[:], uint64Bytes(pid), user[:])
}

// GetFarmUser returns a zeroed record for users that never deposited.
func GetFarmUser(ctx context.Context, im state.Immutable, farm codec.Address, pid uint64, user codec.Address) (*Stake, error) {
	s := NewStake()
	if _, err := getRecord(ctx, im, FarmUserKey(farm, pid, user), s.unmarshal); err != nil {
		return nil, err
	}
	return s, nil
}

func SetFarmUser(ctx context.Context, mu state.Mutable, farm codec.Address, pid uint64, user codec.Address, s *Stake) error {
	return putRecord(ctx, mu, FarmUserKey(farm, pid, user), s)
}

// FarmTokenKey indexes pools by deposit token.
func FarmTokenKey(farm codec.Address, token codec.Address) []byte {
	return key(farmTokenPrefix, FarmTokenChunks, farm[:], token[:])
}

func GetFarmPoolByToken(ctx context.Context, im state.Immutable, farm codec.Address, token codec.Address) (uint64, bool, error) {
	v, exists, err := getValue(ctx, im, FarmTokenKey(farm, token))
	if err != nil || !exists {
		return 0, false, err
	}
	p := codec.NewReader(v, consts.Uint64Len)
	pid := p.UnpackUint64(false)
	return pid, true, p.Err()
}

func SetFarmPoolByToken(ctx context.Context, mu state.Mutable, farm codec.Address, token codec.Address, pid uint64) error {
	return mu.Insert(ctx, FarmTokenKey(farm, token), uint64Bytes(pid))
}
