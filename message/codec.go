package message

import (
	bin "github.com/gagliardetto/binary"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/address"
	"github.com/coinbase/chainkit/hash"
)

// Marshal serializes the message into the legacy wire format:
// three header bytes, a compact-u16 array of 32-byte account keys, the
// recent blockhash, and a compact-u16 array of compiled instructions.
func (m *Message) Marshal() ([]byte, error) {
	if len(m.AccountKeys) > MaxAccountKeys {
		return nil, xerrors.Errorf("too many account keys: %v > %v", len(m.AccountKeys), MaxAccountKeys)
	}

	buf := make([]byte, 0, m.wireSize())
	buf = append(buf,
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	)

	bin.EncodeCompactU16Length(&buf, len(m.AccountKeys))
	for _, key := range m.AccountKeys {
		buf = append(buf, key[:]...)
	}

	buf = append(buf, m.RecentBlockhash[:]...)

	bin.EncodeCompactU16Length(&buf, len(m.Instructions))
	for _, ci := range m.Instructions {
		buf = append(buf, ci.ProgramIDIndex)

		bin.EncodeCompactU16Length(&buf, len(ci.Accounts))
		buf = append(buf, ci.Accounts...)

		bin.EncodeCompactU16Length(&buf, len(ci.Data))
		buf = append(buf, ci.Data...)
	}

	return buf, nil
}

// Unmarshal parses a message from its legacy wire format.
func Unmarshal(data []byte) (Message, error) {
	var m Message
	decoder := bin.NewBinDecoder(data)
	if err := m.UnmarshalWithDecoder(decoder); err != nil {
		return Message{}, err
	}

	if decoder.Remaining() > 0 {
		return Message{}, xerrors.Errorf("unexpected %v trailing bytes after message", decoder.Remaining())
	}

	return m, nil
}

// UnmarshalWithDecoder parses a message starting at the decoder's current
// position, leaving any trailing bytes unconsumed.
func (m *Message) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	if m.Header.NumRequiredSignatures, err = decoder.ReadUint8(); err != nil {
		return xerrors.Errorf("failed to read number of required signatures: %w", err)
	}

	if m.Header.NumReadonlySignedAccounts, err = decoder.ReadUint8(); err != nil {
		return xerrors.Errorf("failed to read number of readonly signed accounts: %w", err)
	}

	if m.Header.NumReadonlyUnsignedAccounts, err = decoder.ReadUint8(); err != nil {
		return xerrors.Errorf("failed to read number of readonly unsigned accounts: %w", err)
	}

	numKeys, err := bin.DecodeCompactU16LengthFromByteReader(decoder)
	if err != nil {
		return xerrors.Errorf("failed to read account key count: %w", err)
	}

	if numKeys > MaxAccountKeys {
		return xerrors.Errorf("too many account keys: %v > %v", numKeys, MaxAccountKeys)
	}

	if numKeys < int(m.Header.NumRequiredSignatures) {
		return xerrors.Errorf("account table smaller than required signatures: %v < %v", numKeys, m.Header.NumRequiredSignatures)
	}

	m.AccountKeys = make([]address.Address, numKeys)
	for i := 0; i < numKeys; i++ {
		keyBytes, err := decoder.ReadNBytes(address.Size)
		if err != nil {
			return xerrors.Errorf("failed to read account key %v: %w", i, err)
		}

		if m.AccountKeys[i], err = address.FromBytes(keyBytes); err != nil {
			return xerrors.Errorf("failed to parse account key %v: %w", i, err)
		}
	}

	blockhashBytes, err := decoder.ReadNBytes(hash.Size)
	if err != nil {
		return xerrors.Errorf("failed to read recent blockhash: %w", err)
	}

	if m.RecentBlockhash, err = hash.FromBytes(blockhashBytes); err != nil {
		return xerrors.Errorf("failed to parse recent blockhash: %w", err)
	}

	numInstructions, err := bin.DecodeCompactU16LengthFromByteReader(decoder)
	if err != nil {
		return xerrors.Errorf("failed to read instruction count: %w", err)
	}

	m.Instructions = make([]CompiledInstruction, numInstructions)
	for i := 0; i < numInstructions; i++ {
		ci := &m.Instructions[i]
		if ci.ProgramIDIndex, err = decoder.ReadUint8(); err != nil {
			return xerrors.Errorf("failed to read program id index of instruction %v: %w", i, err)
		}

		if int(ci.ProgramIDIndex) >= numKeys {
			return xerrors.Errorf("program id index out of range in instruction %v: %v >= %v", i, ci.ProgramIDIndex, numKeys)
		}

		numAccounts, err := bin.DecodeCompactU16LengthFromByteReader(decoder)
		if err != nil {
			return xerrors.Errorf("failed to read account count of instruction %v: %w", i, err)
		}

		accounts, err := decoder.ReadNBytes(numAccounts)
		if err != nil {
			return xerrors.Errorf("failed to read account indexes of instruction %v: %w", i, err)
		}

		ci.Accounts = make([]uint8, numAccounts)
		copy(ci.Accounts, accounts)
		for _, accountIndex := range ci.Accounts {
			if int(accountIndex) >= numKeys {
				return xerrors.Errorf("account index out of range in instruction %v: %v >= %v", i, accountIndex, numKeys)
			}
		}

		dataLen, err := bin.DecodeCompactU16LengthFromByteReader(decoder)
		if err != nil {
			return xerrors.Errorf("failed to read data length of instruction %v: %w", i, err)
		}

		if ci.Data, err = decoder.ReadNBytes(dataLen); err != nil {
			return xerrors.Errorf("failed to read data of instruction %v: %w", i, err)
		}
	}

	return nil
}

func (m *Message) wireSize() int {
	size := 3 + 3 + len(m.AccountKeys)*address.Size + hash.Size + 3
	for _, ci := range m.Instructions {
		size += 1 + 3 + len(ci.Accounts) + 3 + len(ci.Data)
	}

	return size
}
