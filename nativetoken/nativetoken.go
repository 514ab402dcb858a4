// Package nativetoken defines the native token and its fractional unit, the
// lamport, with exact decimal conversions between the two.
package nativetoken

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

const (
	// LamportsPerSol is the number of lamports in one SOL.
	LamportsPerSol uint64 = 1_000_000_000

	// Decimals is the number of fraction digits in a SOL amount.
	Decimals = 9
)

// Sol renders a lamport amount in whole-token form, e.g. "◎1.500000000".
type Sol uint64

func (s Sol) String() string {
	return fmt.Sprintf("◎%d.%09d", uint64(s)/LamportsPerSol, uint64(s)%LamportsPerSol)
}

// ParseSol converts a decimal SOL string into lamports exactly. At most nine
// fraction digits are allowed and the result must fit in a uint64.
func ParseSol(s string) (uint64, error) {
	if s == "" || s == "." {
		return 0, xerrors.Errorf("invalid token amount: %q", s)
	}

	wholeStr, fracStr, _ := strings.Cut(s, ".")
	if strings.Contains(fracStr, ".") {
		return 0, xerrors.Errorf("invalid token amount: %q", s)
	}

	var whole uint64
	if wholeStr != "" {
		parsed, err := strconv.ParseUint(wholeStr, 10, 64)
		if err != nil {
			return 0, xerrors.Errorf("invalid token amount %q: %w", s, err)
		}

		whole = parsed
	}

	var frac uint64
	if fracStr != "" {
		if len(fracStr) > Decimals {
			return 0, xerrors.Errorf("invalid token amount %q: more than %v fraction digits", s, Decimals)
		}

		padded := fracStr + strings.Repeat("0", Decimals-len(fracStr))
		parsed, err := strconv.ParseUint(padded, 10, 64)
		if err != nil {
			return 0, xerrors.Errorf("invalid token amount %q: %w", s, err)
		}

		frac = parsed
	}

	if whole > (^uint64(0)-frac)/LamportsPerSol {
		return 0, xerrors.Errorf("token amount overflows: %q", s)
	}

	return whole*LamportsPerSol + frac, nil
}
