package transaction

import (
	"testing"

	"github.com/coinbase/chainkit/address"
	"github.com/coinbase/chainkit/hash"
	"github.com/coinbase/chainkit/instruction"
	"github.com/coinbase/chainkit/internal/utils/testutil"
	"github.com/coinbase/chainkit/keypair"
	"github.com/coinbase/chainkit/signature"
)

func newTestTransaction(t *testing.T, signers ...*keypair.Keypair) *Transaction {
	require := testutil.Require(t)

	program := address.NewUnique()
	metas := make([]instruction.AccountMeta, len(signers))
	for i, signer := range signers {
		metas[i] = instruction.NewWritable(signer.Address(), true)
	}

	ix, err := instruction.New(program, []byte{1, 2, 3}, metas...)
	require.NoError(err)

	txn, err := New([]instruction.Instruction{ix}, signers[0].Address())
	require.NoError(err)
	return txn
}

func TestSignAndVerify(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer)
	require.False(txn.IsSigned())

	blockhash := hash.Sum([]byte("blockhash"))
	require.NoError(txn.Sign([]*keypair.Keypair{payer}, blockhash))
	require.True(txn.IsSigned())
	require.NoError(txn.Verify())
	require.Equal(blockhash, txn.Message.RecentBlockhash)
}

func TestSign_MissingSigner(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)
	second, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer, second)

	err = txn.Sign([]*keypair.Keypair{payer}, hash.Sum([]byte("blockhash")))
	require.Error(err)
	require.Contains(err.Error(), "not enough signers")
}

func TestPartialSign(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)
	second, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer, second)
	blockhash := hash.Sum([]byte("blockhash"))

	require.NoError(txn.PartialSign([]*keypair.Keypair{payer}, blockhash))
	require.False(txn.IsSigned())

	require.NoError(txn.PartialSign([]*keypair.Keypair{second}, blockhash))
	require.True(txn.IsSigned())
	require.NoError(txn.Verify())
}

func TestPartialSign_NewBlockhashResetsSignatures(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)
	second, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer, second)

	require.NoError(txn.PartialSign([]*keypair.Keypair{payer}, hash.Sum([]byte("first"))))
	require.False(txn.Signatures[0].IsZero())

	// Signing against a different blockhash discards the stale signature.
	require.NoError(txn.PartialSign([]*keypair.Keypair{second}, hash.Sum([]byte("second"))))
	require.True(txn.Signatures[0].IsZero())
	require.False(txn.IsSigned())
}

func TestPartialSign_UnknownSigner(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)
	stranger, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer)
	err = txn.PartialSign([]*keypair.Keypair{stranger}, hash.Sum([]byte("blockhash")))
	require.Error(err)
	require.Contains(err.Error(), "unknown signer")
}

func TestVerify_TamperedMessage(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer)
	require.NoError(txn.Sign([]*keypair.Keypair{payer}, hash.Sum([]byte("blockhash"))))

	txn.Message.RecentBlockhash = hash.Sum([]byte("other"))
	require.Error(txn.Verify())
}

func TestMarshal_RoundTrip(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer)
	require.NoError(txn.Sign([]*keypair.Keypair{payer}, hash.Sum([]byte("blockhash"))))

	data, err := txn.Marshal()
	require.NoError(err)

	parsed, err := Unmarshal(data)
	require.NoError(err)
	require.EqualDiff(txn, parsed)
	require.NoError(parsed.Verify())
}

func TestMarshal_SizeCap(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)

	ix, err := instruction.New(address.NewUnique(), make([]byte, instruction.MaxDataLen))
	require.NoError(err)

	txn, err := New([]instruction.Instruction{ix}, payer.Address())
	require.NoError(err)

	_, err = txn.Marshal()
	require.Error(err)
	require.Contains(err.Error(), "transaction size too large")
}

func TestUnmarshal_SizeCap(t *testing.T) {
	require := testutil.Require(t)

	_, err := Unmarshal(make([]byte, MaxSize+1))
	require.Error(err)
	require.Contains(err.Error(), "transaction size too large")
}

func TestUnmarshal_SignatureCountMismatch(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer)
	require.NoError(txn.Sign([]*keypair.Keypair{payer}, hash.Sum([]byte("blockhash"))))

	// Claim two signatures while the header requires one.
	txn.Signatures = append(txn.Signatures, signature.Signature{})
	data, err := txn.Marshal()
	require.NoError(err)

	_, err = Unmarshal(data)
	require.Error(err)
}

func TestUnmarshal_TrailingBytes(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer)
	require.NoError(txn.Sign([]*keypair.Keypair{payer}, hash.Sum([]byte("blockhash"))))

	data, err := txn.Marshal()
	require.NoError(err)

	_, err = Unmarshal(append(data, 0))
	require.Error(err)
	require.Contains(err.Error(), "trailing bytes")
}

func TestMessageData(t *testing.T) {
	require := testutil.Require(t)

	payer, err := keypair.New()
	require.NoError(err)

	txn := newTestTransaction(t, payer)
	messageData, err := txn.MessageData()
	require.NoError(err)

	expected, err := txn.Message.Marshal()
	require.NoError(err)
	require.Equal(expected, messageData)
}
