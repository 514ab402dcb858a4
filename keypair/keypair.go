// Package keypair implements the 64-byte ed25519 signing key used to
// authorize transactions: 32 bytes of secret seed followed by the 32-byte
// public key.
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"

	bip39 "github.com/cosmos/go-bip39"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/address"
	"github.com/coinbase/chainkit/signature"
)

const (
	// Size is the number of bytes in a keypair: the secret seed plus the public key.
	Size = 64

	// SeedSize is the number of bytes in the secret seed.
	SeedSize = 32
)

// Keypair holds an ed25519 signing key. The value is kept unexported so the
// secret cannot be mutated in place; use Bytes to export it.
type Keypair struct {
	priv ed25519.PrivateKey
}

// New generates a keypair from crypto/rand.
func New() (*Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, xerrors.Errorf("failed to generate keypair: %w", err)
	}

	return &Keypair{priv: priv}, nil
}

// FromSeed derives a keypair from a 32-byte secret seed.
func FromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, xerrors.Errorf("invalid seed length: expected %v, got %v", SeedSize, len(seed))
	}

	return &Keypair{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// FromBytes recovers a keypair from its 64-byte form. The embedded public
// key must match the one derived from the seed; a corrupted or hand-rolled
// keypair is rejected.
func FromBytes(b []byte) (*Keypair, error) {
	if len(b) != Size {
		return nil, xerrors.Errorf("invalid length for keypair bytes: expected %v, got %v", Size, len(b))
	}

	kp, err := FromSeed(b[:SeedSize])
	if err != nil {
		return nil, err
	}

	if !kp.Address().Equals(mustAddress(b[SeedSize:])) {
		return nil, xerrors.New("keypair public key does not match its secret seed")
	}

	return kp, nil
}

// FromMnemonic derives a keypair from a BIP-39 mnemonic and passphrase,
// using the first 32 bytes of the PBKDF2 seed as the ed25519 seed.
func FromMnemonic(mnemonic string, passphrase string) (*Keypair, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, xerrors.Errorf("failed to derive seed from mnemonic: %w", err)
	}

	return FromSeed(seed[:SeedSize])
}

// NewMnemonic generates a fresh BIP-39 mnemonic with the given word count
// (one of 12, 15, 18, 21, 24).
func NewMnemonic(wordCount int) (string, error) {
	bitSize, ok := map[int]int{12: 128, 15: 160, 18: 192, 21: 224, 24: 256}[wordCount]
	if !ok {
		return "", xerrors.Errorf("invalid mnemonic word count: %v", wordCount)
	}

	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", xerrors.Errorf("failed to generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", xerrors.Errorf("failed to generate mnemonic: %w", err)
	}

	return mnemonic, nil
}

// Bytes returns the 64-byte form: secret seed followed by public key.
func (k *Keypair) Bytes() []byte {
	out := make([]byte, Size)
	copy(out[:SeedSize], k.priv.Seed())
	copy(out[SeedSize:], k.priv.Public().(ed25519.PublicKey))
	return out
}

// Address returns the public key of the keypair as an Address.
func (k *Keypair) Address() address.Address {
	var a address.Address
	copy(a[:], k.priv.Public().(ed25519.PublicKey))
	return a
}

// Sign signs the given message.
func (k *Keypair) Sign(message []byte) signature.Signature {
	var s signature.Signature
	copy(s[:], ed25519.Sign(k.priv, message))
	return s
}

func mustAddress(b []byte) address.Address {
	a, err := address.FromBytes(b)
	if err != nil {
		panic(err)
	}

	return a
}
