// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/token"
)

var (
	_ chain.Action = (*Transfer)(nil)
	_ chain.Action = (*Approve)(nil)
	_ chain.Action = (*TransferFrom)(nil)
	_ chain.Action = (*Permit)(nil)
)

type Transfer struct {
	Token codec.Address `json:"token"`

	// To is the recipient of the [Value].
	To    codec.Address `json:"to"`
	Value *uint256.Int  `json:"value"`
}

func (*Transfer) GetTypeID() uint8 {
	return consts.TransferID
}

func (t *Transfer) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	if t.Value == nil || t.Value.IsZero() {
		return nil, ErrValueZero
	}
	return nil, token.Transfer(ctx, env, t.Token, env.Actor(), t.To, t.Value)
}

type Approve struct {
	Token   codec.Address `json:"token"`
	Spender codec.Address `json:"spender"`
	Value   *uint256.Int  `json:"value"`
}

func (*Approve) GetTypeID() uint8 {
	return consts.ApproveID
}

func (a *Approve) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, token.Approve(ctx, env, a.Token, env.Actor(), a.Spender, amount(a.Value))
}

// TransferFrom spends the actor's allowance over [From].
type TransferFrom struct {
	Token codec.Address `json:"token"`
	From  codec.Address `json:"from"`
	To    codec.Address `json:"to"`
	Value *uint256.Int  `json:"value"`
}

func (*TransferFrom) GetTypeID() uint8 {
	return consts.TransferFromID
}

func (t *TransferFrom) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, token.TransferFrom(ctx, env, t.Token, env.Actor(), t.From, t.To, amount(t.Value))
}

// Permit submits an approval signed off-chain by [Owner]. Anyone may relay
// it.
type Permit struct {
	Token     codec.Address `json:"token"`
	Owner     codec.Address `json:"owner"`
	Spender   codec.Address `json:"spender"`
	Value     *uint256.Int  `json:"value"`
	Deadline  int64         `json:"deadline"`
	PublicKey []byte        `json:"publicKey"`
	Signature []byte        `json:"signature"`
}

func (*Permit) GetTypeID() uint8 {
	return consts.PermitID
}

func (p *Permit) Execute(ctx context.Context, env *chain.Env) (codec.Typed, error) {
	return nil, token.Permit(ctx, env, p.Token, p.Owner, p.Spender, amount(p.Value), p.Deadline, p.PublicKey, p.Signature)
}

// amount treats an omitted value as zero.
func amount(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
