// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/dexfarm/codec"
)

// Action is a public entry point. Execute must leave all of its writes in
// env's state; the [Processor] discards them if it returns an error.
type Action interface {
	codec.Typed

	Execute(ctx context.Context, env *Env) (codec.Typed, error)
}
