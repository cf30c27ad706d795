// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/vm"
)

type queryParams struct {
	Token   codec.Address   `json:"token"`
	Owner   codec.Address   `json:"owner"`
	Spender codec.Address   `json:"spender"`
	Pair    codec.Address   `json:"pair"`
	Farm    codec.Address   `json:"farm"`
	Pool    codec.Address   `json:"pool"`
	User    codec.Address   `json:"user"`
	Pid     uint64          `json:"pid"`
	Height  uint64          `json:"height"`
	Amount  *uint256.Int    `json:"amount"`
	Path    []codec.Address `json:"path"`
	TokenA  codec.Address   `json:"tokenA"`
	TokenB  codec.Address   `json:"tokenB"`
}

type queryFunc func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error)

var queries = map[string]queryFunc{
	"balanceOf": func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error) {
		return decimal(v.BalanceOf(ctx, p.Token, p.Owner))
	},
	"allowance": func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error) {
		return decimal(v.Allowance(ctx, p.Token, p.Owner, p.Spender))
	},
	"totalSupply": func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error) {
		info, err := v.TokenInfo(ctx, p.Token)
		if err != nil {
			return nil, err
		}
		return []string{info.TotalSupply.Dec()}, nil
	},
	"getPair": func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error) {
		pair, exists, err := v.GetPair(ctx, p.TokenA, p.TokenB)
		if err != nil {
			return nil, err
		}
		return []string{pair.String(), strconv.FormatBool(exists)}, nil
	},
	"getReserves": func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error) {
		reserve0, reserve1, ts, err := v.Reserves(ctx, p.Pair)
		if err != nil {
			return nil, err
		}
		return []string{reserve0.Dec(), reserve1.Dec(), strconv.FormatUint(uint64(ts), 10)}, nil
	},
	"getAmountsOut": func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error) {
		return decimalList(v.GetAmountsOut(ctx, amountOrZero(p.Amount), p.Path))
	},
	"getAmountsIn": func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error) {
		return decimalList(v.GetAmountsIn(ctx, amountOrZero(p.Amount), p.Path))
	},
	"pendingReward": func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error) {
		return decimal(v.PendingFarmReward(ctx, p.Farm, p.Pid, p.User, p.Height))
	},
	"stakingPendingReward": func(ctx context.Context, v *vm.VM, p *queryParams) ([]string, error) {
		return decimal(v.PendingStakingReward(ctx, p.Pool, p.User, p.Height))
	},
}

func runQuery(ctx context.Context, v *vm.VM, method string, args []byte) ([]string, error) {
	f, ok := queries[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	p := &queryParams{}
	if len(args) > 0 {
		if err := json.Unmarshal(args, p); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}
	return f(ctx, v, p)
}

func decimal(v *uint256.Int, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return []string{v.Dec()}, nil
}

func decimalList(vs []*uint256.Int, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Dec()
	}
	return out, nil
}

func amountOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
