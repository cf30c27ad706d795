// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
)

// Parser resolves every action by type ID and by the name used in scenario
// files.
var Parser = codec.NewTypeParser[chain.Action]()

func init() {
	for name, f := range map[string]func() chain.Action{
		"transfer":     func() chain.Action { return &Transfer{} },
		"approve":      func() chain.Action { return &Approve{} },
		"transferFrom": func() chain.Action { return &TransferFrom{} },
		"permit":       func() chain.Action { return &Permit{} },

		"createPair":     func() chain.Action { return &CreatePair{} },
		"setFeeTo":       func() chain.Action { return &SetFeeTo{} },
		"setFeeToSetter": func() chain.Action { return &SetFeeToSetter{} },
		"mint":           func() chain.Action { return &MintLiquidity{} },
		"burn":           func() chain.Action { return &BurnLiquidity{} },
		"swap":           func() chain.Action { return &Swap{} },
		"skim":           func() chain.Action { return &Skim{} },
		"sync":           func() chain.Action { return &Sync{} },

		"createFarm":           func() chain.Action { return &CreateFarm{} },
		"add":                  func() chain.Action { return &AddPool{} },
		"set":                  func() chain.Action { return &SetPool{} },
		"updateMultiplier":     func() chain.Action { return &UpdateMultiplier{} },
		"updatePool":           func() chain.Action { return &UpdatePool{} },
		"massUpdatePools":      func() chain.Action { return &MassUpdatePools{} },
		"deposit":              func() chain.Action { return &Deposit{} },
		"withdraw":             func() chain.Action { return &Withdraw{} },
		"enterStaking":         func() chain.Action { return &EnterStaking{} },
		"leaveStaking":         func() chain.Action { return &LeaveStaking{} },
		"emergencyWithdraw":    func() chain.Action { return &EmergencyWithdraw{} },
		"updateRewardPerBlock": func() chain.Action { return &UpdateRewardPerBlock{} },
		"setSchedule":          func() chain.Action { return &SetSchedule{} },
		"sweep":                func() chain.Action { return &Sweep{} },
		"transferOwnership":    func() chain.Action { return &TransferOwnership{} },

		"createStakingPool":              func() chain.Action { return &CreateStakingPool{} },
		"stakingDeposit":                 func() chain.Action { return &StakingDeposit{} },
		"stakingWithdraw":                func() chain.Action { return &StakingWithdraw{} },
		"stakingEmergencyWithdraw":       func() chain.Action { return &StakingEmergencyWithdraw{} },
		"stakingRecoverToken":            func() chain.Action { return &StakingRecoverToken{} },
		"stakingStopReward":              func() chain.Action { return &StakingStopReward{} },
		"stakingUpdateRewardPerBlock":    func() chain.Action { return &StakingUpdateRewardPerBlock{} },
		"stakingUpdateStartAndEndBlocks": func() chain.Action { return &StakingUpdateStartAndEndBlocks{} },
		"stakingUpdatePoolLimit":         func() chain.Action { return &StakingUpdatePoolLimit{} },
		"stakingEmergencyRewardWithdraw": func() chain.Action { return &StakingEmergencyRewardWithdraw{} },
	} {
		if err := Parser.Register(name, f); err != nil {
			panic(fmt.Sprintf("register %s: %v", name, err))
		}
	}
}

// Name renders an action type ID for logs and metrics.
func Name(id uint8) string {
	if name := Parser.Name(id); name != "" {
		return name
	}
	return strconv.Itoa(int(id))
}

// Decode builds the action registered as [name] from its JSON arguments.
func Decode(name string, args []byte) (chain.Action, error) {
	action, ok := Parser.LookupName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	if len(args) == 0 {
		return action, nil
	}
	if err := json.Unmarshal(args, action); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return action, nil
}
