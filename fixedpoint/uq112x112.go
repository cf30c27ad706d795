// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixedpoint

import "github.com/holiman/uint256"

// Resolution is the number of fractional bits of a UQ112x112 value.
const Resolution = 112

// MaxUint112 is the largest reserve a pair can hold.
var MaxUint112 = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), Resolution), 1)

// Encode returns [y] as a UQ112x112.
func Encode(y *uint256.Int) *uint256.Int {
	return new(uint256.Int).Lsh(y, Resolution)
}

// UQDiv divides a UQ112x112 by a uint112, returning a UQ112x112.
func UQDiv(x, y *uint256.Int) (*uint256.Int, error) {
	return Div(x, y)
}

// EncodePrice returns the UQ112x112 prices of token0 in token1 and of
// token1 in token0.
func EncodePrice(reserve0, reserve1 *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	price0, err := UQDiv(Encode(reserve1), reserve0)
	if err != nil {
		return nil, nil, err
	}
	price1, err := UQDiv(Encode(reserve0), reserve1)
	if err != nil {
		return nil, nil, err
	}
	return price0, price1, nil
}

// AccumulatePrice returns cumulative + price * elapsed modulo 2^256.
// Wrapping is expected: consumers difference two readings.
func AccumulatePrice(cumulative, price *uint256.Int, elapsed uint32) *uint256.Int {
	delta := new(uint256.Int).Mul(price, uint256.NewInt(uint64(elapsed)))
	return new(uint256.Int).Add(Clone(cumulative), delta)
}
