// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "errors"

var (
	ErrDuplicateAccount = errors.New("duplicate account")
	ErrUnknownAccount   = errors.New("unknown account")
	ErrEmptyReference   = errors.New("empty reference")
	ErrInvalidReference = errors.New("invalid reference")
	ErrMissingBalance   = errors.New("missing balance")
)
