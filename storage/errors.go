// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidRecord = errors.New("invalid record")
	ErrTooManyItems  = errors.New("too many items")
)
