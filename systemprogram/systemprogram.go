// Package systemprogram builds instructions for the system program, which
// owns plain wallet accounts and is responsible for creating accounts,
// assigning them to programs, and transferring lamports.
package systemprogram

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"golang.org/x/xerrors"

	"github.com/coinbase/chainkit/address"
	"github.com/coinbase/chainkit/instruction"
)

// ProgramID is the address of the system program.
var ProgramID = address.MustAddress("11111111111111111111111111111111")

// Instruction discriminants, encoded as little-endian u32 in the bincode layout.
const (
	opCreateAccount         uint32 = 0
	opAssign                uint32 = 1
	opTransfer              uint32 = 2
	opCreateAccountWithSeed uint32 = 3
	opAllocate              uint32 = 8
	opAllocateWithSeed      uint32 = 9
	opAssignWithSeed        uint32 = 10
	opTransferWithSeed      uint32 = 11
)

// CreateAccount creates a new account funded by from, with the given size and
// owning program. Both accounts must sign.
func CreateAccount(from address.Address, newAccount address.Address, lamports uint64, space uint64, owner address.Address) (instruction.Instruction, error) {
	data, err := encode(opCreateAccount, func(enc *bin.Encoder) error {
		if err := enc.WriteUint64(lamports, bin.LE); err != nil {
			return err
		}

		if err := enc.WriteUint64(space, bin.LE); err != nil {
			return err
		}

		return enc.WriteBytes(owner.Bytes(), false)
	})
	if err != nil {
		return instruction.Instruction{}, err
	}

	return instruction.New(ProgramID, data,
		instruction.NewWritable(from, true),
		instruction.NewWritable(newAccount, true),
	)
}

// Assign changes the owning program of an account. The account must sign.
func Assign(account address.Address, owner address.Address) (instruction.Instruction, error) {
	data, err := encode(opAssign, func(enc *bin.Encoder) error {
		return enc.WriteBytes(owner.Bytes(), false)
	})
	if err != nil {
		return instruction.Instruction{}, err
	}

	return instruction.New(ProgramID, data,
		instruction.NewWritable(account, true),
	)
}

// Transfer moves lamports between system-owned accounts.
func Transfer(from address.Address, to address.Address, lamports uint64) (instruction.Instruction, error) {
	data, err := encode(opTransfer, func(enc *bin.Encoder) error {
		return enc.WriteUint64(lamports, bin.LE)
	})
	if err != nil {
		return instruction.Instruction{}, err
	}

	return instruction.New(ProgramID, data,
		instruction.NewWritable(from, true),
		instruction.NewWritable(to, false),
	)
}

// CreateAccountWithSeed creates an account at an address derived from a base
// address and seed (see address.CreateWithSeed).
func CreateAccountWithSeed(from address.Address, to address.Address, base address.Address, seed string, lamports uint64, space uint64, owner address.Address) (instruction.Instruction, error) {
	if err := validateSeed(seed); err != nil {
		return instruction.Instruction{}, err
	}

	data, err := encode(opCreateAccountWithSeed, func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(base.Bytes(), false); err != nil {
			return err
		}

		if err := writeSeed(enc, seed); err != nil {
			return err
		}

		if err := enc.WriteUint64(lamports, bin.LE); err != nil {
			return err
		}

		if err := enc.WriteUint64(space, bin.LE); err != nil {
			return err
		}

		return enc.WriteBytes(owner.Bytes(), false)
	})
	if err != nil {
		return instruction.Instruction{}, err
	}

	accounts := []instruction.AccountMeta{
		instruction.NewWritable(from, true),
		instruction.NewWritable(to, false),
	}
	if base != from {
		accounts = append(accounts, instruction.NewReadonly(base, true))
	}

	return instruction.New(ProgramID, data, accounts...)
}

// Allocate reserves space in an account. The account must sign.
func Allocate(account address.Address, space uint64) (instruction.Instruction, error) {
	data, err := encode(opAllocate, func(enc *bin.Encoder) error {
		return enc.WriteUint64(space, bin.LE)
	})
	if err != nil {
		return instruction.Instruction{}, err
	}

	return instruction.New(ProgramID, data,
		instruction.NewWritable(account, true),
	)
}

// AllocateWithSeed reserves space in a seed-derived account; the base
// address signs instead of the derived account.
func AllocateWithSeed(account address.Address, base address.Address, seed string, space uint64, owner address.Address) (instruction.Instruction, error) {
	if err := validateSeed(seed); err != nil {
		return instruction.Instruction{}, err
	}

	data, err := encode(opAllocateWithSeed, func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(base.Bytes(), false); err != nil {
			return err
		}

		if err := writeSeed(enc, seed); err != nil {
			return err
		}

		if err := enc.WriteUint64(space, bin.LE); err != nil {
			return err
		}

		return enc.WriteBytes(owner.Bytes(), false)
	})
	if err != nil {
		return instruction.Instruction{}, err
	}

	return instruction.New(ProgramID, data,
		instruction.NewWritable(account, false),
		instruction.NewReadonly(base, true),
	)
}

// AssignWithSeed changes the owner of a seed-derived account; the base
// address signs instead of the derived account.
func AssignWithSeed(account address.Address, base address.Address, seed string, owner address.Address) (instruction.Instruction, error) {
	if err := validateSeed(seed); err != nil {
		return instruction.Instruction{}, err
	}

	data, err := encode(opAssignWithSeed, func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(base.Bytes(), false); err != nil {
			return err
		}

		if err := writeSeed(enc, seed); err != nil {
			return err
		}

		return enc.WriteBytes(owner.Bytes(), false)
	})
	if err != nil {
		return instruction.Instruction{}, err
	}

	return instruction.New(ProgramID, data,
		instruction.NewWritable(account, false),
		instruction.NewReadonly(base, true),
	)
}

// TransferWithSeed moves lamports out of a seed-derived account; the base
// address signs instead of the funding account.
func TransferWithSeed(from address.Address, base address.Address, seed string, fromOwner address.Address, to address.Address, lamports uint64) (instruction.Instruction, error) {
	if err := validateSeed(seed); err != nil {
		return instruction.Instruction{}, err
	}

	data, err := encode(opTransferWithSeed, func(enc *bin.Encoder) error {
		if err := enc.WriteUint64(lamports, bin.LE); err != nil {
			return err
		}

		if err := writeSeed(enc, seed); err != nil {
			return err
		}

		return enc.WriteBytes(fromOwner.Bytes(), false)
	})
	if err != nil {
		return instruction.Instruction{}, err
	}

	return instruction.New(ProgramID, data,
		instruction.NewWritable(from, false),
		instruction.NewReadonly(base, true),
		instruction.NewWritable(to, false),
	)
}

func validateSeed(seed string) error {
	if len(seed) > address.MaxSeedLen {
		return xerrors.Errorf("seed too long: %v > %v: %w", len(seed), address.MaxSeedLen, address.ErrMaxSeedLengthExceeded)
	}

	return nil
}

// encode renders a system instruction payload in the bincode layout: a
// little-endian u32 discriminant followed by the fields.
func encode(discriminant uint32, write func(enc *bin.Encoder) error) ([]byte, error) {
	var buf bytes.Buffer
	enc := bin.NewBinEncoder(&buf)
	if err := enc.WriteUint32(discriminant, bin.LE); err != nil {
		return nil, xerrors.Errorf("failed to encode instruction discriminant: %w", err)
	}

	if err := write(enc); err != nil {
		return nil, xerrors.Errorf("failed to encode instruction data: %w", err)
	}

	return buf.Bytes(), nil
}

// writeSeed encodes a seed string as bincode does: u64 length plus bytes.
func writeSeed(enc *bin.Encoder, seed string) error {
	if err := enc.WriteUint64(uint64(len(seed)), bin.LE); err != nil {
		return err
	}

	return enc.WriteBytes([]byte(seed), false)
}
