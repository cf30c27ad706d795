// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package farm

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/fixedpoint"
	"github.com/ava-labs/dexfarm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// ValidateSchedule requires strictly increasing breakpoints.
func ValidateSchedule(schedule []storage.Breakpoint) error {
	if len(schedule) > storage.MaxScheduleBreakpoints {
		return fmt.Errorf("%w: %d breakpoints", ErrInvalidSchedule, len(schedule))
	}
	var last uint64
	for i, b := range schedule {
		if i > 0 && b.EndBlock <= last {
			return fmt.Errorf("%w: breakpoint %d ends at %d after %d", ErrInvalidSchedule, i, b.EndBlock, last)
		}
		last = b.EndBlock
	}
	return nil
}

// WeightedBlocks counts the blocks in [from, to), each weighted by the
// multiplier of the first breakpoint ending after it, or 1 once the
// schedule is exhausted. An interval straddling a breakpoint is split
// there, so the breakpoint block itself is counted exactly once at the
// later segment's rate.
func WeightedBlocks(schedule []storage.Breakpoint, from, to uint64) (uint64, error) {
	var total uint64
	for _, b := range schedule {
		if from >= to {
			break
		}
		if from >= b.EndBlock {
			continue
		}
		end := min(to, b.EndBlock)
		segment, err := smath.Mul64(end-from, b.Multiplier)
		if err != nil {
			return 0, err
		}
		total, err = smath.Add64(total, segment)
		if err != nil {
			return 0, err
		}
		from = end
	}
	if from < to {
		return smath.Add64(total, to-from)
	}
	return total, nil
}

// RewardSince is the emission of the whole farm over [from, to).
func RewardSince(f *storage.Farm, from, to uint64) (*uint256.Int, error) {
	blocks, err := WeightedBlocks(f.Schedule, from, to)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Mul(uint256.NewInt(blocks), f.RewardPerBlock)
}

// poolReward is the share of [RewardSince] owed to [p]. Every factor is
// multiplied in before the single division by the total weight.
func poolReward(f *storage.Farm, p *storage.FarmPool, from, to uint64) (*uint256.Int, error) {
	if f.TotalAllocPoint == 0 || p.AllocPoint == 0 || p.Multiplier == 0 {
		return fixedpoint.Zero(), nil
	}
	reward, err := RewardSince(f, from, to)
	if err != nil {
		return nil, err
	}
	reward, err = fixedpoint.Mul(reward, uint256.NewInt(p.Multiplier))
	if err != nil {
		return nil, err
	}
	return fixedpoint.Share(reward, p.AllocPoint, f.TotalAllocPoint)
}
