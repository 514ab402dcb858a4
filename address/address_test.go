package address

import (
	"strings"
	"testing"

	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/internal/utils/testutil"
)

func TestNewUnique(t *testing.T) {
	require := testutil.Require(t)
	require.NotEqual(NewUnique(), NewUnique())
}

func TestFromBase58_RoundTrip(t *testing.T) {
	require := testutil.Require(t)

	a := NewUnique()
	parsed, err := FromBase58(a.String())
	require.NoError(err)
	require.Equal(a, parsed)
}

func TestFromBase58_WrongSize(t *testing.T) {
	require := testutil.Require(t)

	a := NewUnique()
	doubled := a.String() + a.String()
	_, err := FromBase58(doubled)
	require.ErrorIs(err, ErrWrongSize)

	_, err = FromBase58(a.String()[:len(a.String())/2])
	require.ErrorIs(err, ErrWrongSize)

	// Longest valid encoding plus one char.
	var max Address
	for i := range max {
		max[i] = 255
	}
	_, err = FromBase58(max.String() + "1")
	require.ErrorIs(err, ErrWrongSize)
}

func TestFromBase58_InvalidChar(t *testing.T) {
	require := testutil.Require(t)

	a := NewUnique()
	mangled := "I" + a.String()[1:]
	_, err := FromBase58(mangled)
	require.ErrorIs(err, ErrInvalidChar)
}

func TestFromBytes(t *testing.T) {
	require := testutil.Require(t)

	b := make([]byte, Size)
	b[0] = 7
	a, err := FromBytes(b)
	require.NoError(err)
	require.Equal(b, a.Bytes())

	_, err = FromBytes(make([]byte, Size-1))
	require.Error(err)
	require.Contains(err.Error(), "invalid address length")

	_, err = FromBytes(make([]byte, Size+1))
	require.Error(err)
}

func TestMarshalText_RoundTrip(t *testing.T) {
	require := testutil.Require(t)

	a := NewUnique()
	text, err := a.MarshalText()
	require.NoError(err)

	var parsed Address
	require.NoError(parsed.UnmarshalText(text))
	require.Equal(a, parsed)
}

func TestCreateWithSeed(t *testing.T) {
	require := testutil.Require(t)

	_, err := CreateWithSeed(NewUnique(), "☉", NewUnique())
	require.NoError(err)

	_, err = CreateWithSeed(NewUnique(), strings.Repeat("x", MaxSeedLen+1), NewUnique())
	require.ErrorIs(err, ErrMaxSeedLengthExceeded)

	// Seed length is counted in bytes, not runes.
	_, err = CreateWithSeed(NewUnique(), strings.Repeat("\U0010FFFF", 8), NewUnique())
	require.NoError(err)
	_, err = CreateWithSeed(NewUnique(), "x"+strings.Repeat("\U0010FFFF", 8), NewUnique())
	require.ErrorIs(err, ErrMaxSeedLengthExceeded)

	_, err = CreateWithSeed(NewUnique(), strings.Repeat("\x00", MaxSeedLen), NewUnique())
	require.NoError(err)

	_, err = CreateWithSeed(NewUnique(), "", NewUnique())
	require.NoError(err)

	derived, err := CreateWithSeed(Address{}, "limber chicken: 4/45", Address{})
	require.NoError(err)
	require.Equal("9h1HyLCW5dZnBVap8C5egQ9Z6pHyjsh5MNy83iPqqRuq", derived.String())
}

func TestCreateWithSeed_RejectsIllegalOwner(t *testing.T) {
	require := testutil.Require(t)

	marker := []byte("ProgramDerivedAddress")

	var owner Address
	copy(owner[Size-len(marker):], marker)
	_, err := CreateWithSeed(NewUnique(), "seed", owner)
	require.ErrorIs(err, ErrIllegalOwner)

	// Only the full marker as a suffix is rejected.
	var almost Address
	copy(almost[Size-len(marker)+1:], marker[1:])
	_, err = CreateWithSeed(NewUnique(), "seed", almost)
	require.NoError(err)
}

func TestCreateProgramAddress(t *testing.T) {
	require := testutil.Require(t)

	programID := MustAddress("BPFLoaderUpgradeab1e11111111111111111111111")
	publicKey := MustAddress("SeedPubey1111111111111111111111111111111111")

	exceededSeed := make([]byte, MaxSeedLen+1)
	_, err := CreateProgramAddress([][]byte{exceededSeed}, programID)
	require.ErrorIs(err, ErrMaxSeedLengthExceeded)

	_, err = CreateProgramAddress([][]byte{[]byte("short_seed"), exceededSeed}, programID)
	require.ErrorIs(err, ErrMaxSeedLengthExceeded)

	_, err = CreateProgramAddress([][]byte{make([]byte, MaxSeedLen)}, programID)
	require.NoError(err)

	exceededSeeds := make([][]byte, MaxSeeds+1)
	for i := range exceededSeeds {
		exceededSeeds[i] = []byte{byte(i + 1)}
	}
	_, err = CreateProgramAddress(exceededSeeds, programID)
	require.ErrorIs(err, ErrTooManySeeds)

	_, err = CreateProgramAddress(exceededSeeds[:MaxSeeds], programID)
	require.NoError(err)

	tests := []struct {
		seeds    [][]byte
		expected string
	}{
		{[][]byte{{}, {1}}, "BwqrghZA2htAcqq8dzP1WDAhTXYTYWj7CHxF5j7TDBAe"},
		{[][]byte{[]byte("☉"), {0}}, "13yWmRpaTR4r5nAktwLqMpRNr28tnVUZw26rTvPSSB19"},
		{[][]byte{[]byte("Talking"), []byte("Squirrels")}, "2fnQrngrQT4SeLcdToJAD96phoEjNL2man2kfRLCASVk"},
		{[][]byte{publicKey.Bytes(), {1}}, "976ymqVnfE32QFe6NfGDctSvVa36LWnvYxhU6G2232YL"},
	}
	for _, test := range tests {
		derived, err := CreateProgramAddress(test.seeds, programID)
		require.NoError(err)
		require.Equal(test.expected, derived.String())
	}

	first, err := CreateProgramAddress([][]byte{[]byte("Talking"), []byte("Squirrels")}, programID)
	require.NoError(err)
	second, err := CreateProgramAddress([][]byte{[]byte("Talking")}, programID)
	require.NoError(err)
	require.NotEqual(first, second)
}

func TestCreateProgramAddress_OffCurve(t *testing.T) {
	require := testutil.Require(t)

	seen := make(map[Address]bool)
	for i := 0; i < 64; i++ {
		programID := NewUnique()
		seed := NewUnique()
		derived, err := CreateProgramAddress([][]byte{seed.Bytes()}, programID)
		if xerrors.Is(err, ErrInvalidSeeds) {
			continue
		}

		require.NoError(err)
		require.False(derived.IsOnCurve())
		require.False(seen[derived])
		seen[derived] = true
	}
}

func TestFindProgramAddress(t *testing.T) {
	require := testutil.Require(t)

	for i := 0; i < 64; i++ {
		programID := NewUnique()
		derived, bump, err := FindProgramAddress([][]byte{[]byte("Lil'"), []byte("Bits")}, programID)
		require.NoError(err)

		expected, err := CreateProgramAddress([][]byte{[]byte("Lil'"), []byte("Bits"), {bump}}, programID)
		require.NoError(err)
		require.Equal(expected, derived)
	}
}

func TestFindProgramAddress_DoesNotMutateSeeds(t *testing.T) {
	require := testutil.Require(t)

	seeds := make([][]byte, 2, 4)
	seeds[0] = []byte("a")
	seeds[1] = []byte("b")
	_, _, err := FindProgramAddress(seeds, NewUnique())
	require.NoError(err)
	require.Equal(2, len(seeds))
}
