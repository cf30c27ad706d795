// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrClosed          = errors.New("vm closed")
	ErrInvalidHeight   = errors.New("block height must increase")
	ErrInvalidTime     = errors.New("block timestamp must not decrease")
	ErrGenesisMismatch = errors.New("database was initialized with a different genesis")
)
