// Package address implements the 32-byte account address used on chain,
// rendered in text as base58 (e.g. 14grJpemFaf88c8tiVb77W7TYg2W3ir6pfkKz3YjhhZ5).
package address

import (
	"bytes"
	"encoding/binary"
	"sync/atomic"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
	"golang.org/x/xerrors"
)

const (
	// Size is the number of bytes in an address.
	Size = 32

	// MaxSeedLen is the maximum byte length of a single derivation seed.
	MaxSeedLen = 32

	// MaxSeeds is the maximum number of seeds accepted by program address derivation.
	MaxSeeds = 16

	// maxBase58Len is the longest possible base58 encoding of 32 bytes.
	maxBase58Len = 44
)

// Address is the address of an on-chain account.
//
// Some addresses are ed25519 public keys with corresponding secret keys
// managed off-chain. Program derived addresses have no secret key at all;
// they are constructed to fall off the ed25519 curve.
type Address [Size]byte

var (
	ErrWrongSize   = xerrors.New("string decoded to wrong size for address")
	ErrInvalidChar = xerrors.New("invalid base58 string")
)

// FromBytes converts a byte slice into an Address.
// The slice must be exactly 32 bytes long.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Size {
		return a, xerrors.Errorf("invalid address length: expected %v, got %v", Size, len(b))
	}

	copy(a[:], b)
	return a, nil
}

// FromBase58 decodes a base58 string into an Address.
func FromBase58(s string) (Address, error) {
	var a Address
	if len(s) > maxBase58Len {
		return a, ErrWrongSize
	}

	b, err := base58.Decode(s)
	if err != nil {
		return a, ErrInvalidChar
	}

	if len(b) != Size {
		return a, ErrWrongSize
	}

	copy(a[:], b)
	return a, nil
}

// MustAddress parses a base58 string into an Address and panics on failure.
// It is intended for well-known program IDs declared as package variables.
func MustAddress(s string) Address {
	a, err := FromBase58(s)
	if err != nil {
		panic(xerrors.Errorf("failed to parse address %v: %w", s, err))
	}

	return a
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) Equals(other Address) bool {
	return a == other
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// IsOnCurve returns true if the address decompresses to a valid point on the
// ed25519 curve, i.e. it could be a public key with a corresponding secret key.
func (a Address) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err == nil
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	decoded, err := FromBase58(string(text))
	if err != nil {
		return err
	}

	*a = decoded
	return nil
}

var uniqueCounter uint32

// NewUnique returns a unique Address for tests and benchmarks.
// Recently generated addresses compare greater than earlier ones.
func NewUnique() Address {
	i := atomic.AddUint32(&uniqueCounter, 1)

	var a Address
	binary.BigEndian.PutUint32(a[:4], i)
	for j := 4; j < Size; j += 4 {
		// Fill the remainder with data derived from the counter so the bytes
		// are statistically similar to real addresses.
		i = i*1664525 + 1013904223
		binary.BigEndian.PutUint32(a[j:j+4], i)
	}

	return a
}

// Compare returns an integer comparing two addresses lexicographically.
func Compare(a Address, b Address) int {
	return bytes.Compare(a[:], b[:])
}
