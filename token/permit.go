// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/hdevalence/ed25519consensus"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/ava-labs/dexfarm/chain"
	"github.com/ava-labs/dexfarm/codec"
	"github.com/ava-labs/dexfarm/consts"
	"github.com/ava-labs/dexfarm/state"
	"github.com/ava-labs/dexfarm/storage"
)

const PermitVersion = "1"

var (
	domainTypeHash = keccak256([]byte("EIP712Domain(string name,string version,address verifyingContract)"))
	permitTypeHash = keccak256([]byte("Permit(address owner,address spender,uint256 value,uint256 nonce,uint256 deadline)"))
)

func keccak256(parts ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.Sum(nil)
}

func word(v *uint256.Int) []byte {
	b := v.Bytes32()
	return b[:]
}

// OwnerAddress is the address controlled by an ed25519 public key.
func OwnerAddress(pub ed25519.PublicKey) codec.Address {
	return codec.CreateAddress(consts.ED25519ID, storage.ToID(pub))
}

// DomainSeparator binds permit signatures to a single token.
func DomainSeparator(name string, token codec.Address) []byte {
	return keccak256(
		domainTypeHash,
		keccak256([]byte(name)),
		keccak256([]byte(PermitVersion)),
		token[:],
	)
}

// PermitDigest is the message an owner signs to approve [spender].
func PermitDigest(
	domain []byte,
	owner codec.Address,
	spender codec.Address,
	value *uint256.Int,
	nonce uint64,
	deadline int64,
) []byte {
	structHash := keccak256(
		permitTypeHash,
		owner[:],
		spender[:],
		word(value),
		word(uint256.NewInt(nonce)),
		word(uint256.NewInt(uint64(deadline))),
	)
	return keccak256([]byte{0x19, 0x01}, domain, structHash)
}

// Permit approves [spender] using an off-chain signature from the key
// controlling [owner].
func Permit(
	ctx context.Context,
	env *chain.Env,
	token codec.Address,
	owner codec.Address,
	spender codec.Address,
	value *uint256.Int,
	deadline int64,
	pub []byte,
	sig []byte,
) error {
	if deadline < env.Timestamp() {
		return fmt.Errorf("%w: deadline %d before %d", ErrExpired, deadline, env.Timestamp())
	}
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: %d", ErrInvalidPublicKeyLength, len(pub))
	}
	if OwnerAddress(pub) != owner {
		return ErrInvalidSignature
	}
	digest, nonce, err := digestFor(ctx, env.State(), token, owner, spender, value, deadline)
	if err != nil {
		return err
	}
	if !ed25519consensus.Verify(pub, digest, sig) {
		return ErrInvalidSignature
	}
	if err := storage.SetNonce(ctx, env.State(), token, owner, nonce+1); err != nil {
		return err
	}
	return Approve(ctx, env, token, owner, spender, value)
}

// SigningDigest returns the digest [owner] must sign for their next permit.
func SigningDigest(
	ctx context.Context,
	im state.Immutable,
	token codec.Address,
	owner codec.Address,
	spender codec.Address,
	value *uint256.Int,
	deadline int64,
) ([]byte, error) {
	digest, _, err := digestFor(ctx, im, token, owner, spender, value, deadline)
	return digest, err
}

func digestFor(
	ctx context.Context,
	im state.Immutable,
	token codec.Address,
	owner codec.Address,
	spender codec.Address,
	value *uint256.Int,
	deadline int64,
) ([]byte, uint64, error) {
	info, err := Info(ctx, im, token)
	if err != nil {
		return nil, 0, err
	}
	nonce, err := storage.GetNonce(ctx, im, token, owner)
	if err != nil {
		return nil, 0, err
	}
	return PermitDigest(DomainSeparator(info.Name, token), owner, spender, value, nonce, deadline), nonce, nil
}
