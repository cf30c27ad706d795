// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrDuplicateContract = errors.New("duplicate contract")
	ErrNilAction         = errors.New("nil action")
)
