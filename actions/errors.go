// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrDataTooLarge  = errors.New("data is too large")
	ErrValueZero     = errors.New("value is zero")
)
