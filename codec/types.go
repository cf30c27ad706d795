// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by every serializable action, event and result so
// it can be dispatched by its type ID.
type Typed interface {
	GetTypeID() uint8
}
