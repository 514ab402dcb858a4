// Package transaction implements an atomically-processed set of instructions,
// signed by the accounts the message marks as signers and anchored to a
// recent blockhash.
package transaction

import (
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/address"
	"github.com/coinbase/chainkit/hash"
	"github.com/coinbase/chainkit/instruction"
	"github.com/coinbase/chainkit/keypair"
	"github.com/coinbase/chainkit/message"
	"github.com/coinbase/chainkit/signature"
)

// MaxSize is the maximum over-the-wire size of a transaction:
// 1280 is the IPv6 minimum MTU, minus 40 bytes of IPv6 header and 8 bytes of
// fragment header.
const MaxSize = 1280 - 40 - 8

// Transaction is an ordered set of compiled instructions plus one signature
// per required signer. Signature i covers the serialized message and belongs
// to account key i.
type Transaction struct {
	Signatures []signature.Signature
	Message    message.Message
}

// New compiles the instructions into an unsigned transaction paid for by payer.
// Signature slots are allocated and zeroed.
func New(instructions []instruction.Instruction, payer address.Address) (*Transaction, error) {
	msg, err := message.Compile(instructions, payer)
	if err != nil {
		return nil, xerrors.Errorf("failed to compile message: %w", err)
	}

	return &Transaction{
		Signatures: make([]signature.Signature, msg.Header.NumRequiredSignatures),
		Message:    msg,
	}, nil
}

// MessageData returns the serialized message: the bytes that signers sign.
func (t *Transaction) MessageData() ([]byte, error) {
	return t.Message.Marshal()
}

// Sign signs the transaction with all required signers and verifies that
// every signature slot is filled.
func (t *Transaction) Sign(signers []*keypair.Keypair, recentBlockhash hash.Hash) error {
	if err := t.PartialSign(signers, recentBlockhash); err != nil {
		return err
	}

	if !t.IsSigned() {
		return xerrors.New("not enough signers: transaction is missing signatures")
	}

	return nil
}

// PartialSign signs the transaction with a subset of the required signers.
//
// Setting a new recent blockhash invalidates any existing signatures, so the
// signature slots are zeroed when the blockhash changes. Each signer must
// appear in the message's signer keys.
func (t *Transaction) PartialSign(signers []*keypair.Keypair, recentBlockhash hash.Hash) error {
	if t.Message.RecentBlockhash != recentBlockhash {
		t.Message.RecentBlockhash = recentBlockhash
		for i := range t.Signatures {
			t.Signatures[i] = signature.Signature{}
		}
	}

	messageData, err := t.Message.Marshal()
	if err != nil {
		return xerrors.Errorf("failed to serialize message: %w", err)
	}

	signerKeys := t.Message.SignerKeys()
	for _, signer := range signers {
		position := -1
		for i, key := range signerKeys {
			if key.Equals(signer.Address()) {
				position = i
				break
			}
		}

		if position < 0 {
			return xerrors.Errorf("unknown signer: %v", signer.Address())
		}

		t.Signatures[position] = signer.Sign(messageData)
	}

	return nil
}

// IsSigned returns true if every signature slot is filled.
func (t *Transaction) IsSigned() bool {
	for _, sig := range t.Signatures {
		if sig.IsZero() {
			return false
		}
	}

	return len(t.Signatures) == int(t.Message.Header.NumRequiredSignatures)
}

// Verify checks every signature against its corresponding account key.
func (t *Transaction) Verify() error {
	if len(t.Signatures) != int(t.Message.Header.NumRequiredSignatures) {
		return xerrors.Errorf("signature count mismatch: %v != %v", len(t.Signatures), t.Message.Header.NumRequiredSignatures)
	}

	messageData, err := t.Message.Marshal()
	if err != nil {
		return xerrors.Errorf("failed to serialize message: %w", err)
	}

	signerKeys := t.Message.SignerKeys()
	for i, sig := range t.Signatures {
		if !sig.Verify(signerKeys[i], messageData) {
			return xerrors.Errorf("signature %v failed verification for %v", i, signerKeys[i])
		}
	}

	return nil
}
