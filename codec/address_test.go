// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(2, ids.GenerateTestID())
	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
	require.Equal(uint8(2), parsedAddr.TypeID())
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestAddressString(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())

	originalAddr, err := StringToAddress(addr.String())
	require.NoError(err)
	require.Equal(addr, originalAddr)

	_, err = StringToAddress("0x0102")
	require.ErrorIs(err, ErrInvalidSize)
}

func TestAddressBech32(t *testing.T) {
	tests := []struct {
		name      string
		hrp       string
		parseHRP  string
		expectErr error
	}{
		{
			name:     "matching hrp",
			hrp:      "dex",
			parseHRP: "dex",
		},
		{
			name:      "wrong hrp",
			hrp:       "dex",
			parseHRP:  "avax",
			expectErr: ErrIncorrectHRP,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			addr := CreateAddress(0, ids.GenerateTestID())
			s, err := AddressBech32(tt.hrp, addr)
			require.NoError(err)

			parsed, err := ParseAddressBech32(tt.parseHRP, s)
			require.ErrorIs(err, tt.expectErr)
			if tt.expectErr == nil {
				require.Equal(addr, parsed)
			}
		})
	}
}
