// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fixedpoint holds the integer-only arithmetic shared by the pool
// engine and the reward distributors. Every helper returns a fresh value and
// never mutates its arguments.
package fixedpoint

import "github.com/holiman/uint256"

// Zero returns a new zero value.
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// New returns [v] as a [uint256.Int].
func New(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// Clone returns a copy of [v], treating nil as zero.
func Clone(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(v)
}

func Add(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, ErrUnderflow
	}
	return z, nil
}

func Mul(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func Div(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, ErrDivisionByZero
	}
	return new(uint256.Int).Div(a, b), nil
}

// MulDiv returns floor(a * b / d). The product must fit in 256 bits.
func MulDiv(a, b, d *uint256.Int) (*uint256.Int, error) {
	p, err := Mul(a, b)
	if err != nil {
		return nil, err
	}
	return Div(p, d)
}

// Min returns a copy of the smaller of [a] and [b].
func Min(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return Clone(a)
	}
	return Clone(b)
}

// Sqrt is the Babylonian method, floor(sqrt(y)).
//
// https://github.com/Uniswap/v2-core/blob/ee547b17853e71ed4e0101ccfd52e70d5acded58/contracts/libraries/Math.sol#L10
func Sqrt(y *uint256.Int) *uint256.Int {
	three := uint256.NewInt(3)
	if y.Gt(three) {
		z := Clone(y)
		x := new(uint256.Int).Rsh(y, 1)
		x.AddUint64(x, 1)
		for x.Lt(z) {
			z.Set(x)
			// x = (y / x + x) / 2
			q := new(uint256.Int).Div(y, x)
			x.Add(q, x)
			x.Rsh(x, 1)
		}
		return z
	} else if !y.IsZero() {
		return uint256.NewInt(1)
	}
	return new(uint256.Int)
}

// Pow10 returns 10^n.
func Pow10(n uint64) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(n))
}

// String renders [v] in base 10, treating nil as zero.
func String(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
