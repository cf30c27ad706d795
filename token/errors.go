// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import "errors"

var (
	ErrTokenNotFound          = errors.New("token not found")
	ErrTokenExists            = errors.New("token already exists")
	ErrInvalidMetadata        = errors.New("invalid token metadata")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInsufficientAllowance  = errors.New("insufficient allowance")
	ErrTransferToEmpty        = errors.New("transfer to the zero address")
	ErrTransferFromEmpty      = errors.New("transfer from the zero address")
	ErrApproveToEmpty         = errors.New("approve to the zero address")
	ErrUnauthorized           = errors.New("caller is not the minter")
	ErrExpired                = errors.New("expired")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrInvalidPublicKeyLength = errors.New("invalid public key length")
)
