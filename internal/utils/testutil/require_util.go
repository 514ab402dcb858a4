package testutil

import (
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// Assertions extends require.Assertions with a structural diff helper for
// comparing wire-format structs.
type Assertions struct {
	*require.Assertions
}

func Require(t require.TestingT) *Assertions {
	return &Assertions{
		Assertions: require.New(t),
	}
}

// EqualDiff compares two values with go-cmp and fails with a readable diff.
// Unlike Equal, the failure message shows only the fields that differ, which
// matters for deeply nested messages and transactions.
func (a *Assertions) EqualDiff(expected interface{}, actual interface{}, msgAndArgs ...interface{}) {
	if diff := cmp.Diff(expected, actual); diff != "" {
		a.FailNow(diff, msgAndArgs...)
	}
}
