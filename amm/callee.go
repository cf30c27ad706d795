// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
)

//go:generate go run go.uber.org/mock/mockgen -package=ammmock -destination=ammmock/callee.go . Callee

// Callee receives the optimistic output of a flash swap before the pair
// checks its invariant. [env] acts as the callee, so any repayment must be
// transferred from the callee's own balance. A returned error fails the
// whole swap.
type Callee interface {
	DexCall(
		ctx context.Context,
		env *chain.Env,
		sender codec.Address,
		amount0 *uint256.Int,
		amount1 *uint256.Int,
		data []byte,
	) error
}
