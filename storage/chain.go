// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/state"
)

// LastAccepted is the most recent block written to the database.
type LastAccepted struct {
	// GenesisID is the hash of the genesis the state was built from.
	GenesisID ids.ID
	Height    uint64
	Timestamp int64
}

func (*LastAccepted) Size() int {
	return ids.IDLen + consts.Uint64Len*2
}

func (l *LastAccepted) Marshal(p *codec.Packer) {
	p.PackID(l.GenesisID)
	p.PackUint64(l.Height)
	p.PackUint64(uint64(l.Timestamp))
}

func (l *LastAccepted) unmarshal(p *codec.Packer) {
	p.UnpackID(true, &l.GenesisID)
	l.Height = p.UnpackUint64(false)
	l.Timestamp = int64(p.UnpackUint64(false))
}

func LastAcceptedKey() []byte {
	return key(lastAcceptedPrefix, LastAcceptedChunks)
}

// GetLastAccepted returns false before genesis has been written.
func GetLastAccepted(ctx context.Context, im state.Immutable) (*LastAccepted, bool, error) {
	var l LastAccepted
	exists, err := getRecord(ctx, im, LastAcceptedKey(), l.unmarshal)
	if err != nil || !exists {
		return nil, false, err
	}
	return &l, true, nil
}

func SetLastAccepted(ctx context.Context, mu state.Mutable, l *LastAccepted) error {
	return putRecord(ctx, mu, LastAcceptedKey(), l)
}
