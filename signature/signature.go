// Package signature implements the 64-byte ed25519 signature type.
package signature

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/address"
)

// Size is the number of bytes in a signature.
const Size = 64

// Signature is a 64-byte ed25519 signature. The zero value is the
// placeholder used for unsigned signature slots in a transaction.
type Signature [Size]byte

// FromBytes converts a byte slice into a Signature.
// The slice must be exactly 64 bytes long.
func FromBytes(b []byte) (Signature, error) {
	var s Signature
	if len(b) != Size {
		return s, xerrors.Errorf("invalid signature length: expected %v, got %v", Size, len(b))
	}

	copy(s[:], b)
	return s, nil
}

// FromBase58 decodes a base58 string into a Signature.
func FromBase58(str string) (Signature, error) {
	var s Signature
	b, err := base58.Decode(str)
	if err != nil {
		return s, xerrors.Errorf("failed to decode signature: %w", err)
	}

	return FromBytes(b)
}

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) Bytes() []byte {
	return s[:]
}

func (s Signature) IsZero() bool {
	return s == Signature{}
}

// Verify reports whether the signature is a valid ed25519 signature of
// message by the given address.
func (s Signature) Verify(signer address.Address, message []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(signer.Bytes()), message, s[:])
}
