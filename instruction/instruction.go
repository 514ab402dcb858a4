// Package instruction implements the request unit submitted to an on-chain
// program: the program to invoke, the accounts it may read or write, and an
// opaque data payload interpreted by the program itself.
package instruction

import (
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/address"
)

// MaxDataLen caps instruction data at the maximum over-the-wire transaction
// size; a single instruction can never exceed the packet it travels in.
const MaxDataLen = 1232

// AccountMeta describes an account required by an instruction and the
// permissions the program needs on it.
type AccountMeta struct {
	Address    address.Address
	IsSigner   bool
	IsWritable bool
}

// NewWritable returns an AccountMeta for a writable account.
func NewWritable(addr address.Address, isSigner bool) AccountMeta {
	return AccountMeta{
		Address:    addr,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonly returns an AccountMeta for a read-only account.
func NewReadonly(addr address.Address, isSigner bool) AccountMeta {
	return AccountMeta{
		Address:    addr,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// Instruction is a directive for a single invocation of an on-chain program.
type Instruction struct {
	// ProgramID is the address of the program to invoke.
	ProgramID address.Address

	// Accounts lists the accounts the program may read from or write to.
	Accounts []AccountMeta

	// Data is the opaque payload passed to the program.
	Data []byte
}

// New constructs an Instruction from a program ID, a data payload, and the
// account metadata the program requires.
func New(programID address.Address, data []byte, accounts ...AccountMeta) (Instruction, error) {
	if len(data) > MaxDataLen {
		return Instruction{}, xerrors.Errorf("instruction data too large: %v > %v", len(data), MaxDataLen)
	}

	return Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}, nil
}
