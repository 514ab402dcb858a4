package transaction

import (
	bin "github.com/gagliardetto/binary"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/signature"
)

// Marshal serializes the transaction: a compact-u16 array of 64-byte
// signatures followed by the message. The result must fit in MaxSize bytes.
func (t *Transaction) Marshal() ([]byte, error) {
	messageData, err := t.Message.Marshal()
	if err != nil {
		return nil, xerrors.Errorf("failed to serialize message: %w", err)
	}

	buf := make([]byte, 0, 3+len(t.Signatures)*signature.Size+len(messageData))
	bin.EncodeCompactU16Length(&buf, len(t.Signatures))
	for _, sig := range t.Signatures {
		buf = append(buf, sig[:]...)
	}

	buf = append(buf, messageData...)

	if len(buf) > MaxSize {
		return nil, xerrors.Errorf("transaction size too large: %v > %v", len(buf), MaxSize)
	}

	return buf, nil
}

// Unmarshal parses a serialized transaction. Inputs larger than MaxSize are
// rejected before any parsing happens.
func Unmarshal(data []byte) (*Transaction, error) {
	if len(data) > MaxSize {
		return nil, xerrors.Errorf("transaction size too large: %v > %v", len(data), MaxSize)
	}

	decoder := bin.NewBinDecoder(data)

	numSignatures, err := bin.DecodeCompactU16LengthFromByteReader(decoder)
	if err != nil {
		return nil, xerrors.Errorf("failed to read signature count: %w", err)
	}

	if numSignatures*signature.Size > len(data) {
		return nil, xerrors.Errorf("signature count exceeds transaction size: %v", numSignatures)
	}

	t := &Transaction{
		Signatures: make([]signature.Signature, numSignatures),
	}
	for i := 0; i < numSignatures; i++ {
		sigBytes, err := decoder.ReadNBytes(signature.Size)
		if err != nil {
			return nil, xerrors.Errorf("failed to read signature %v: %w", i, err)
		}

		if t.Signatures[i], err = signature.FromBytes(sigBytes); err != nil {
			return nil, xerrors.Errorf("failed to parse signature %v: %w", i, err)
		}
	}

	if err := t.Message.UnmarshalWithDecoder(decoder); err != nil {
		return nil, xerrors.Errorf("failed to parse message: %w", err)
	}

	if decoder.Remaining() > 0 {
		return nil, xerrors.Errorf("unexpected %v trailing bytes after transaction", decoder.Remaining())
	}

	if numSignatures != int(t.Message.Header.NumRequiredSignatures) {
		return nil, xerrors.Errorf("signature count mismatch: %v != %v", numSignatures, t.Message.Header.NumRequiredSignatures)
	}

	return t, nil
}
