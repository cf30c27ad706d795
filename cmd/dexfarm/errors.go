// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import "errors"

var (
	ErrInvalidPlan      = errors.New("invalid plan")
	ErrInvalidStep      = errors.New("invalid step")
	ErrInvalidEndpoint  = errors.New("invalid endpoint")
	ErrUnknownMethod    = errors.New("unknown method")
	ErrInvalidOperator  = errors.New("invalid operator")
	ErrAssertionFailed  = errors.New("assertion failed")
	ErrMissingResult    = errors.New("missing result")
	ErrUnsupportedValue = errors.New("unsupported value")
)
