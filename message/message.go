// Package message implements the legacy wire-format message: the portion of
// a transaction that is signed. A message pins the fee-paying account, the
// full set of accounts the transaction touches, a recent blockhash, and the
// instructions compiled down to account-table indexes.
package message

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/address"
	"github.com/coinbase/chainkit/hash"
	"github.com/coinbase/chainkit/instruction"
)

// MaxAccountKeys is the largest account table a message can carry, since
// compiled instructions refer to accounts by a one-byte index.
const MaxAccountKeys = 256

type (
	// Header counts the signature and permission classes of the account table.
	// The account table is laid out as: writable signers, readonly signers,
	// writable non-signers, readonly non-signers.
	Header struct {
		NumRequiredSignatures       uint8
		NumReadonlySignedAccounts   uint8
		NumReadonlyUnsignedAccounts uint8
	}

	// CompiledInstruction is an instruction with its accounts and program
	// resolved to indexes into the message's account table.
	CompiledInstruction struct {
		ProgramIDIndex uint8
		Accounts       []uint8
		Data           []byte
	}

	// Message is the signable unit of a transaction.
	Message struct {
		Header          Header
		AccountKeys     []address.Address
		RecentBlockhash hash.Hash
		Instructions    []CompiledInstruction
	}
)

// Compile builds a Message from instructions and a fee payer.
//
// The payer is forced to the front of the account table as a writable
// signer. Remaining accounts are deduplicated with their permission flags
// merged, then ordered writable signers, readonly signers, writable
// non-signers, readonly non-signers, preserving first-appearance order
// within each class. Program IDs join the table as readonly non-signers.
// The recent blockhash is left zeroed; it is set at signing time.
func Compile(instructions []instruction.Instruction, payer address.Address) (Message, error) {
	if payer.IsZero() {
		return Message{}, xerrors.New("transaction fee payer is required")
	}

	metas := make([]instruction.AccountMeta, 0, len(instructions)*4+1)
	metas = append(metas, instruction.NewWritable(payer, true))
	for _, ix := range instructions {
		metas = append(metas, ix.Accounts...)
	}
	for _, ix := range instructions {
		metas = append(metas, instruction.NewReadonly(ix.ProgramID, false))
	}

	// Deduplicate while merging permission flags. The payer was inserted
	// first, so after the stable sort below it stays at index 0.
	indexByAddress := make(map[address.Address]int)
	unique := make([]instruction.AccountMeta, 0, len(metas))
	for _, meta := range metas {
		if i, ok := indexByAddress[meta.Address]; ok {
			unique[i].IsSigner = unique[i].IsSigner || meta.IsSigner
			unique[i].IsWritable = unique[i].IsWritable || meta.IsWritable
			continue
		}

		indexByAddress[meta.Address] = len(unique)
		unique = append(unique, meta)
	}

	if len(unique) > MaxAccountKeys {
		return Message{}, xerrors.Errorf("too many account keys: %v > %v", len(unique), MaxAccountKeys)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if unique[i].IsSigner != unique[j].IsSigner {
			return unique[i].IsSigner
		}

		if unique[i].IsWritable != unique[j].IsWritable {
			return unique[i].IsWritable
		}

		return false
	})

	var header Header
	keys := make([]address.Address, len(unique))
	for i, meta := range unique {
		keys[i] = meta.Address
		indexByAddress[meta.Address] = i
		if meta.IsSigner {
			header.NumRequiredSignatures++
			if !meta.IsWritable {
				header.NumReadonlySignedAccounts++
			}
		} else if !meta.IsWritable {
			header.NumReadonlyUnsignedAccounts++
		}
	}

	compiled := make([]CompiledInstruction, len(instructions))
	for i, ix := range instructions {
		accounts := make([]uint8, len(ix.Accounts))
		for j, meta := range ix.Accounts {
			accounts[j] = uint8(indexByAddress[meta.Address])
		}

		compiled[i] = CompiledInstruction{
			ProgramIDIndex: uint8(indexByAddress[ix.ProgramID]),
			Accounts:       accounts,
			Data:           ix.Data,
		}
	}

	return Message{
		Header:       header,
		AccountKeys:  keys,
		Instructions: compiled,
	}, nil
}

// SignerKeys returns the accounts that must sign the message, in signature order.
func (m *Message) SignerKeys() []address.Address {
	return m.AccountKeys[:m.Header.NumRequiredSignatures]
}

// IsSigner returns true if the account at the given index must sign.
func (m *Message) IsSigner(index int) bool {
	return index < int(m.Header.NumRequiredSignatures)
}

// IsWritable returns true if the account at the given index may be modified.
func (m *Message) IsWritable(index int) bool {
	numRequired := int(m.Header.NumRequiredSignatures)
	numReadonlySigned := int(m.Header.NumReadonlySignedAccounts)
	numReadonlyUnsigned := int(m.Header.NumReadonlyUnsignedAccounts)

	if index < numRequired {
		return index < numRequired-numReadonlySigned
	}

	return index < len(m.AccountKeys)-numReadonlyUnsigned
}

// Program returns the program ID invoked by a compiled instruction.
func (m *Message) Program(ci CompiledInstruction) (address.Address, error) {
	if int(ci.ProgramIDIndex) >= len(m.AccountKeys) {
		return address.Address{}, xerrors.Errorf("program id index out of range: %v >= %v", ci.ProgramIDIndex, len(m.AccountKeys))
	}

	return m.AccountKeys[ci.ProgramIDIndex], nil
}
