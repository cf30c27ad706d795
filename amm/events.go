// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
)

var (
	_ chain.Event = (*MintEvent)(nil)
	_ chain.Event = (*BurnEvent)(nil)
	_ chain.Event = (*SwapEvent)(nil)
	_ chain.Event = (*SyncEvent)(nil)
	_ chain.Event = (*PairCreatedEvent)(nil)
)

type MintEvent struct {
	Sender  codec.Address `json:"sender"`
	Amount0 *uint256.Int  `json:"amount0"`
	Amount1 *uint256.Int  `json:"amount1"`
}

func (*MintEvent) GetTypeID() uint8 {
	return consts.MintEventID
}

type BurnEvent struct {
	Sender  codec.Address `json:"sender"`
	Amount0 *uint256.Int  `json:"amount0"`
	Amount1 *uint256.Int  `json:"amount1"`
	To      codec.Address `json:"to"`
}

func (*BurnEvent) GetTypeID() uint8 {
	return consts.BurnEventID
}

type SwapEvent struct {
	Sender     codec.Address `json:"sender"`
	Amount0In  *uint256.Int  `json:"amount0In"`
	Amount1In  *uint256.Int  `json:"amount1In"`
	Amount0Out *uint256.Int  `json:"amount0Out"`
	Amount1Out *uint256.Int  `json:"amount1Out"`
	To         codec.Address `json:"to"`
}

func (*SwapEvent) GetTypeID() uint8 {
	return consts.SwapEventID
}

// SyncEvent carries the reserves after every reserve update.
type SyncEvent struct {
	Reserve0 *uint256.Int `json:"reserve0"`
	Reserve1 *uint256.Int `json:"reserve1"`
}

func (*SyncEvent) GetTypeID() uint8 {
	return consts.SyncEventID
}

type PairCreatedEvent struct {
	Token0 codec.Address `json:"token0"`
	Token1 codec.Address `json:"token1"`
	Pair   codec.Address `json:"pair"`
	Index  uint64        `json:"index"`
}

func (*PairCreatedEvent) GetTypeID() uint8 {
	return consts.PairCreatedEventID
}
