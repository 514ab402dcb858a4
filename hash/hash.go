// Package hash implements the 32-byte hash type used for blockhashes and
// account state digests, plus the SHA-256 helpers that produce them.
package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"sync/atomic"

	"github.com/mr-tron/base58"
	"golang.org/x/xerrors"
)

// Size is the number of bytes in a hash.
const Size = 32

// maxBase58Len is the longest possible base58 encoding of 32 bytes.
const maxBase58Len = 44

// Hash is the 32-byte output of a hashing algorithm, most often SHA-256.
type Hash [Size]byte

var (
	ErrWrongSize   = xerrors.New("string decoded to wrong size for hash")
	ErrInvalidChar = xerrors.New("invalid base58 string")
)

// Sum returns the SHA-256 hash over the concatenation of the given slices.
func Sum(data ...[]byte) Hash {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}

	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// FromBytes converts a byte slice into a Hash.
// The slice must be exactly 32 bytes long.
func FromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != Size {
		return h, xerrors.Errorf("invalid hash length: expected %v, got %v", Size, len(b))
	}

	copy(h[:], b)
	return h, nil
}

// FromBase58 decodes a base58 string into a Hash.
func FromBase58(s string) (Hash, error) {
	var h Hash
	if len(s) > maxBase58Len {
		return h, ErrWrongSize
	}

	b, err := base58.Decode(s)
	if err != nil {
		return h, ErrInvalidChar
	}

	if len(b) != Size {
		return h, ErrWrongSize
	}

	copy(h[:], b)
	return h, nil
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	decoded, err := FromBase58(string(text))
	if err != nil {
		return err
	}

	*h = decoded
	return nil
}

var uniqueCounter uint64

// NewUnique returns a unique Hash for tests and benchmarks.
func NewUnique() Hash {
	i := atomic.AddUint64(&uniqueCounter, 1)

	var h Hash
	binary.LittleEndian.PutUint64(h[:8], i)
	return h
}
