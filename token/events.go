// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
)

var (
	_ chain.Event = (*TransferEvent)(nil)
	_ chain.Event = (*ApprovalEvent)(nil)
)

// TransferEvent is emitted by the token for every balance movement,
// including mint (From is empty) and burn (To is empty).
type TransferEvent struct {
	From  codec.Address `json:"from"`
	To    codec.Address `json:"to"`
	Value *uint256.Int  `json:"value"`
}

func (*TransferEvent) GetTypeID() uint8 {
	return consts.TransferEventID
}

type ApprovalEvent struct {
	Owner   codec.Address `json:"owner"`
	Spender codec.Address `json:"spender"`
	Value   *uint256.Int  `json:"value"`
}

func (*ApprovalEvent) GetTypeID() uint8 {
	return consts.ApprovalEventID
}
