// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/storage"
)

const (
	tokenPrefix   = "token:"
	pairPrefix    = "pair:"
	farmPrefix    = "farm:"
	stakingPrefix = "staking:"
)

// AccountAddress derives the address of a named account that does not
// declare one.
func AccountAddress(name string) codec.Address {
	return codec.CreateAddress(consts.ED25519ID, storage.ToID([]byte(consts.Name+"/account/"+name)))
}

// Resolver turns the references used in genesis and scenario files into
// addresses. A reference is one of:
//
//	@name              a genesis account
//	token:SYMBOL       a token
//	pair:SYMBOL/SYMBOL a pair, which is also its liquidity token
//	farm:N             the N-th farm
//	staking:N          the N-th staking pool
//	dex1...            a bech32 address
//	0x...              a hex address
type Resolver struct {
	hrp      string
	accounts map[string]codec.Address
}

func NewResolver(hrp string) *Resolver {
	return &Resolver{hrp: hrp, accounts: map[string]codec.Address{}}
}

func (r *Resolver) AddAccount(name string, addr codec.Address) error {
	if _, ok := r.accounts[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAccount, name)
	}
	r.accounts[name] = addr
	return nil
}

func (r *Resolver) Resolve(ref string) (codec.Address, error) {
	switch {
	case len(ref) == 0:
		return codec.EmptyAddress, ErrEmptyReference
	case strings.HasPrefix(ref, "@"):
		addr, ok := r.accounts[ref[1:]]
		if !ok {
			return codec.EmptyAddress, fmt.Errorf("%w: %s", ErrUnknownAccount, ref)
		}
		return addr, nil
	case strings.HasPrefix(ref, tokenPrefix):
		return storage.TokenAddress(ref[len(tokenPrefix):]), nil
	case strings.HasPrefix(ref, pairPrefix):
		a, b, ok := strings.Cut(ref[len(pairPrefix):], "/")
		if !ok {
			return codec.EmptyAddress, fmt.Errorf("%w: %s", ErrInvalidReference, ref)
		}
		return storage.PairAddress(storage.TokenAddress(a), storage.TokenAddress(b)), nil
	case strings.HasPrefix(ref, farmPrefix):
		n, err := strconv.ParseUint(ref[len(farmPrefix):], 10, 64)
		if err != nil {
			return codec.EmptyAddress, fmt.Errorf("%w: %s", ErrInvalidReference, ref)
		}
		return storage.FarmAddress(n), nil
	case strings.HasPrefix(ref, stakingPrefix):
		n, err := strconv.ParseUint(ref[len(stakingPrefix):], 10, 64)
		if err != nil {
			return codec.EmptyAddress, fmt.Errorf("%w: %s", ErrInvalidReference, ref)
		}
		return storage.StakingPoolAddress(n), nil
	case strings.HasPrefix(ref, "0x"):
		return codec.StringToAddress(ref)
	case strings.HasPrefix(ref, r.hrp+"1"):
		return codec.ParseAddressBech32(r.hrp, ref)
	default:
		return codec.EmptyAddress, fmt.Errorf("%w: %s", ErrInvalidReference, ref)
	}
}

// IsReference reports whether [s] has the form of a reference other than a
// hex address, which needs no resolving.
func (r *Resolver) IsReference(s string) bool {
	for _, prefix := range []string{"@", tokenPrefix, pairPrefix, farmPrefix, stakingPrefix, r.hrp + "1"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// Name returns the account name of [addr], if it has one.
func (r *Resolver) Name(addr codec.Address) (string, bool) {
	for name, a := range r.accounts {
		if a == addr {
			return name, true
		}
	}
	return "", false
}
