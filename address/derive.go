package address

import (
	"bytes"
	"crypto/sha256"

	"golang.org/x/xerrors"
)

// pdaMarker is mixed into every program derived address hash, and is banned
// as a suffix of the owner passed to CreateWithSeed.
var pdaMarker = []byte("ProgramDerivedAddress")

var (
	ErrMaxSeedLengthExceeded = xerrors.New("length of the seed is too long for address generation")
	ErrInvalidSeeds          = xerrors.New("provided seeds do not result in a valid address")
	ErrIllegalOwner          = xerrors.New("provided owner is not allowed")
	ErrTooManySeeds          = xerrors.New("too many seeds")
)

// CreateWithSeed derives an address from a base address, an ASCII seed and an
// owner program: sha256(base || seed || owner).
//
// The seed is limited to MaxSeedLen bytes. Owners ending in the program
// derived address marker are rejected, as they could otherwise be used to
// forge a PDA.
func CreateWithSeed(base Address, seed string, owner Address) (Address, error) {
	if len(seed) > MaxSeedLen {
		return Address{}, ErrMaxSeedLengthExceeded
	}

	if bytes.HasSuffix(owner[:], pdaMarker) {
		return Address{}, ErrIllegalOwner
	}

	h := sha256.New()
	h.Write(base[:])
	h.Write([]byte(seed))
	h.Write(owner[:])

	var out Address
	copy(out[:], h.Sum(nil))
	return out, nil
}

// CreateProgramAddress derives a program address from a set of seeds and a
// program ID: sha256(seeds... || programID || "ProgramDerivedAddress").
//
// Program addresses must not lie on the ed25519 curve; if the hash happens to
// be a curve point, ErrInvalidSeeds is returned and the caller is expected to
// perturb the seeds (see FindProgramAddress).
func CreateProgramAddress(seeds [][]byte, programID Address) (Address, error) {
	if err := validateSeeds(seeds); err != nil {
		return Address{}, err
	}

	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write(pdaMarker)

	var out Address
	copy(out[:], h.Sum(nil))
	if out.IsOnCurve() {
		return Address{}, ErrInvalidSeeds
	}

	return out, nil
}

// FindProgramAddress finds a valid program address and its bump seed by
// appending a one-byte bump to the seeds, searching down from 255.
//
// The search is guaranteed to terminate in practice: for any given input
// seeds, roughly half of the bump values produce an off-curve hash.
func FindProgramAddress(seeds [][]byte, programID Address) (Address, uint8, error) {
	if err := validateSeeds(seeds); err != nil {
		return Address{}, 0, err
	}

	seedsWithBump := make([][]byte, len(seeds), len(seeds)+1)
	copy(seedsWithBump, seeds)

	bumpSeed := []byte{255}
	seedsWithBump = append(seedsWithBump, bumpSeed)
	for {
		derived, err := CreateProgramAddress(seedsWithBump, programID)
		if err == nil {
			return derived, bumpSeed[0], nil
		}

		if !xerrors.Is(err, ErrInvalidSeeds) {
			return Address{}, 0, err
		}

		if bumpSeed[0] == 0 {
			return Address{}, 0, xerrors.Errorf("unable to find a viable program address bump seed: %w", ErrInvalidSeeds)
		}

		bumpSeed[0] -= 1
	}
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return xerrors.Errorf("too many seeds: %v > %v: %w", len(seeds), MaxSeeds, ErrTooManySeeds)
	}

	for i, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return xerrors.Errorf("seed %v too long: %v > %v: %w", i, len(seed), MaxSeedLen, ErrMaxSeedLengthExceeded)
		}
	}

	return nil
}
