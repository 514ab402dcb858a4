package instruction

import (
	"testing"

	"github.com/coinbase/chainkit/address"
	"github.com/coinbase/chainkit/internal/utils/testutil"
)

func TestNew(t *testing.T) {
	require := testutil.Require(t)

	program := address.NewUnique()
	account := address.NewUnique()
	ix, err := New(program, []byte{1, 2, 3}, NewWritable(account, true))
	require.NoError(err)
	require.Equal(program, ix.ProgramID)
	require.Equal([]byte{1, 2, 3}, ix.Data)
	require.Len(ix.Accounts, 1)
	require.Equal(account, ix.Accounts[0].Address)
	require.True(ix.Accounts[0].IsSigner)
	require.True(ix.Accounts[0].IsWritable)
}

func TestNew_DataTooLarge(t *testing.T) {
	require := testutil.Require(t)

	_, err := New(address.NewUnique(), make([]byte, MaxDataLen))
	require.NoError(err)

	_, err = New(address.NewUnique(), make([]byte, MaxDataLen+1))
	require.Error(err)
	require.Contains(err.Error(), "instruction data too large")
}

func TestAccountMeta(t *testing.T) {
	require := testutil.Require(t)

	addr := address.NewUnique()

	meta := NewWritable(addr, false)
	require.False(meta.IsSigner)
	require.True(meta.IsWritable)

	meta = NewReadonly(addr, true)
	require.True(meta.IsSigner)
	require.False(meta.IsWritable)
}
