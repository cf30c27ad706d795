// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/dexfarm/amm"
	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/farm"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
	"github.com/ava-labs/dexfarm/token"
)

// Account names an address for use in references. An empty Address is
// derived from the name.
type Account struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
}

type Allocation struct {
	Address string `json:"address" yaml:"address"`

	// Decimal string, since YAML numbers cannot hold 256 bits.
	Balance string `json:"balance" yaml:"balance"`
}

type Token struct {
	Symbol      string        `json:"symbol" yaml:"symbol"`
	Name        string        `json:"name" yaml:"name"`
	Decimals    uint8         `json:"decimals" yaml:"decimals"`
	Minter      string        `json:"minter" yaml:"minter"`
	Allocations []*Allocation `json:"allocations" yaml:"allocations"`
}

type Factory struct {
	FeeToSetter string `json:"feeToSetter" yaml:"feeToSetter"`
	FeeTo       string `json:"feeTo" yaml:"feeTo"`
	SwapFee     uint64 `json:"swapFee" yaml:"swapFee"`
}

type Pair struct {
	TokenA string `json:"tokenA" yaml:"tokenA"`
	TokenB string `json:"tokenB" yaml:"tokenB"`
}

type FarmPool struct {
	Token      string `json:"token" yaml:"token"`
	AllocPoint uint64 `json:"allocPoint" yaml:"allocPoint"`
	// Zero means farm.DefaultMultiplier.
	Multiplier uint64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
}

type Farm struct {
	Owner              string               `json:"owner" yaml:"owner"`
	RewardToken        string               `json:"rewardToken" yaml:"rewardToken"`
	RewardPerBlock     string               `json:"rewardPerBlock" yaml:"rewardPerBlock"`
	StartBlock         uint64               `json:"startBlock" yaml:"startBlock"`
	Schedule           []storage.Breakpoint `json:"schedule" yaml:"schedule"`
	StakingAllocPoint  uint64               `json:"stakingAllocPoint" yaml:"stakingAllocPoint"`
	StakingDivisor     uint64               `json:"stakingDivisor" yaml:"stakingDivisor"`
	OptionalMassUpdate bool                 `json:"optionalMassUpdate" yaml:"optionalMassUpdate"`
	Pools              []*FarmPool          `json:"pools" yaml:"pools"`
}

// Genesis is the initial state of the chain. It is applied in field order:
// tokens, factory, pairs and then farms, so later sections may refer to
// anything created by earlier ones.
type Genesis struct {
	HRP      string     `json:"hrp" yaml:"hrp"`
	Accounts []*Account `json:"accounts" yaml:"accounts"`
	Tokens   []*Token   `json:"tokens" yaml:"tokens"`
	Factory  Factory    `json:"factory" yaml:"factory"`
	Pairs    []*Pair    `json:"pairs" yaml:"pairs"`
	Farms    []*Farm    `json:"farms" yaml:"farms"`
}

// Load parses a YAML or JSON genesis.
func Load(b []byte) (*Genesis, error) {
	g := &Genesis{HRP: consts.HRP, Factory: Factory{SwapFee: amm.DefaultSwapFee}}
	if err := yaml.UnmarshalStrict(b, g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal genesis: %w", err)
	}
	return g, nil
}

// Resolver returns a [Resolver] that knows every account in [g].
func (g *Genesis) Resolver() (*Resolver, error) {
	r := NewResolver(g.HRP)
	for _, acct := range g.Accounts {
		addr := AccountAddress(acct.Name)
		if len(acct.Address) > 0 {
			var err error
			addr, err = r.Resolve(acct.Address)
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", acct.Name, err)
			}
		}
		if err := r.AddAccount(acct.Name, addr); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func parseAmount(s string) (*uint256.Int, error) {
	if len(s) == 0 {
		return nil, ErrMissingBalance
	}
	return uint256.FromDecimal(s)
}

func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	r, err := g.Resolver()
	if err != nil {
		return err
	}
	env := func(actor codec.Address) *chain.Env {
		return chain.NewEnv(mu, chain.Block{}, actor, nil)
	}

	for _, t := range g.Tokens {
		addr := storage.TokenAddress(t.Symbol)
		minter, err := r.Resolve(t.Minter)
		if err != nil {
			return fmt.Errorf("token %s minter: %w", t.Symbol, err)
		}
		if err := token.Create(ctx, mu, addr, t.Name, t.Symbol, t.Decimals, minter); err != nil {
			return fmt.Errorf("token %s: %w", t.Symbol, err)
		}
		for _, alloc := range t.Allocations {
			to, err := r.Resolve(alloc.Address)
			if err != nil {
				return fmt.Errorf("token %s allocation: %w", t.Symbol, err)
			}
			balance, err := parseAmount(alloc.Balance)
			if err != nil {
				return fmt.Errorf("token %s allocation to %s: %w", t.Symbol, alloc.Address, err)
			}
			if err := token.Mint(ctx, env(minter), addr, minter, to, balance); err != nil {
				return fmt.Errorf("token %s allocation to %s: %w", t.Symbol, alloc.Address, err)
			}
		}
	}

	var setter codec.Address
	if len(g.Factory.FeeToSetter) > 0 {
		if setter, err = r.Resolve(g.Factory.FeeToSetter); err != nil {
			return fmt.Errorf("fee setter: %w", err)
		}
	}
	if err := amm.InitFactory(ctx, mu, setter, g.Factory.SwapFee); err != nil {
		return err
	}
	if len(g.Factory.FeeTo) > 0 {
		feeTo, err := r.Resolve(g.Factory.FeeTo)
		if err != nil {
			return fmt.Errorf("fee recipient: %w", err)
		}
		if err := amm.SetFeeTo(ctx, env(setter), feeTo); err != nil {
			return err
		}
	}

	for _, p := range g.Pairs {
		a, err := r.Resolve(p.TokenA)
		if err != nil {
			return err
		}
		b, err := r.Resolve(p.TokenB)
		if err != nil {
			return err
		}
		if _, err := amm.CreatePair(ctx, env(setter), a, b); err != nil {
			return fmt.Errorf("pair %s/%s: %w", p.TokenA, p.TokenB, err)
		}
	}

	for i, f := range g.Farms {
		if err := g.initFarm(ctx, r, env, f); err != nil {
			return fmt.Errorf("farm %d: %w", i, err)
		}
	}
	return nil
}

func (*Genesis) initFarm(ctx context.Context, r *Resolver, env func(codec.Address) *chain.Env, f *Farm) error {
	owner, err := r.Resolve(f.Owner)
	if err != nil {
		return err
	}
	rewardToken, err := r.Resolve(f.RewardToken)
	if err != nil {
		return err
	}
	rewardPerBlock, err := parseAmount(f.RewardPerBlock)
	if err != nil {
		return err
	}
	ownerEnv := env(owner)
	addr, err := farm.Create(ctx, ownerEnv, &farm.Params{
		RewardToken:        rewardToken,
		RewardPerBlock:     rewardPerBlock,
		StartBlock:         f.StartBlock,
		Schedule:           f.Schedule,
		StakingAllocPoint:  f.StakingAllocPoint,
		StakingDivisor:     f.StakingDivisor,
		OptionalMassUpdate: f.OptionalMassUpdate,
	})
	if err != nil {
		return err
	}
	for _, p := range f.Pools {
		tok, err := r.Resolve(p.Token)
		if err != nil {
			return err
		}
		multiplier := p.Multiplier
		if multiplier == 0 {
			multiplier = farm.DefaultMultiplier
		}
		if _, err := farm.Add(ctx, ownerEnv, addr, p.AllocPoint, tok, false, multiplier); err != nil {
			return fmt.Errorf("pool %s: %w", p.Token, err)
		}
	}
	return nil
}
