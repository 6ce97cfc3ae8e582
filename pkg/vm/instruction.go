package vm

import "github.com/KasarLabs/rayquaza/pkg/vmerrors"

// DstRegister is the register the destination offset of an instruction is
// relative to.
type DstRegister uint8

const (
	DstAP DstRegister = 0
	DstFP DstRegister = 1
)

// Op0Register is the register the first operand offset of an instruction
// is relative to.
type Op0Register uint8

const (
	Op0AP Op0Register = 0
	Op0FP Op0Register = 1
)

// Op1Source is where the second operand of an instruction is read from.
type Op1Source uint8

const (
	Op1SrcOp0 Op1Source = iota
	Op1SrcPC
	Op1SrcFP
	Op1SrcAP
)

// ResultLogic is the operation combining op0 and op1 into res.
type ResultLogic uint8

const (
	ResOp1 ResultLogic = iota
	ResAdd
	ResMul
)

// PcUpdate is how the program counter advances after an instruction.
type PcUpdate uint8

const (
	PcUpdateRegular PcUpdate = iota
	PcUpdateAbsoluteJump
	PcUpdateRelativeJump
	PcUpdateConditionalJump
)

// ApUpdate is how the allocation pointer advances after an instruction.
type ApUpdate uint8

const (
	ApUpdateNone ApUpdate = iota
	ApUpdateAddResult
	ApUpdateIncrement
)

// OpCode selects the high-level behavior of an instruction.
type OpCode uint8

const (
	OpCodeNone OpCode = iota
	OpCodeCall
	OpCodeRet
	OpCodeAssertEq
)

// Instruction is a single decoded Cairo bytecode instruction: a 64-bit word
// split into three signed 16-bit offsets and a block of flag bits occupying
// the upper 16 bits. Decode never fails on the offsets -- only the flag
// bits can be malformed, and only once a specific field is read.
type Instruction struct {
	DstOffset int16
	Op0Offset int16
	Op1Offset int16

	raw uint64
}

// DecodeInstruction splits a raw 64-bit word into its offsets, checking only
// the reserved top bit. Every flag field is decoded lazily by its own
// accessor, each of which can fail independently with its own Undefined*
// error -- this mirrors how a real CPU only faults on the fields a given
// instruction actually uses.
func DecodeInstruction(word uint64) (Instruction, error) {
	if word&0x8000_0000_0000_0000 != 0 {
		return Instruction{}, vmerrors.ErrUndefinedInstruction
	}

	return Instruction{
		DstOffset: int16(uint16(word)),
		Op0Offset: int16(uint16(word >> 16)),
		Op1Offset: int16(uint16(word >> 32)),
		raw:       word,
	}, nil
}

// DstRegister returns the register the destination offset is relative to.
func (i Instruction) DstRegister() DstRegister {
	if i.raw&0x0001_0000_0000_0000 != 0 {
		return DstFP
	}
	return DstAP
}

// Op0Register returns the register the first operand offset is relative to.
func (i Instruction) Op0Register() Op0Register {
	if i.raw&0x0002_0000_0000_0000 != 0 {
		return Op0FP
	}
	return Op0AP
}

// Op1Source returns where the second operand is read from.
func (i Instruction) Op1Source() (Op1Source, error) {
	switch i.raw & 0x001C_0000_0000_0000 {
	case 0x0000_0000_0000_0000:
		return Op1SrcOp0, nil
	case 0x0004_0000_0000_0000:
		return Op1SrcPC, nil
	case 0x0008_0000_0000_0000:
		return Op1SrcFP, nil
	case 0x0010_0000_0000_0000:
		return Op1SrcAP, nil
	default:
		return 0, vmerrors.ErrUndefinedOp1Source
	}
}

// ResultLogic returns the operation combining op0 and op1.
func (i Instruction) ResultLogic() (ResultLogic, error) {
	switch i.raw & 0x0060_0000_0000_0000 {
	case 0x0000_0000_0000_0000:
		return ResOp1, nil
	case 0x0020_0000_0000_0000:
		return ResAdd, nil
	case 0x0040_0000_0000_0000:
		return ResMul, nil
	default:
		return 0, vmerrors.ErrUndefinedResultLogic
	}
}

// PcUpdate returns the update rule applied to the program counter.
func (i Instruction) PcUpdate() (PcUpdate, error) {
	switch i.raw & 0x0380_0000_0000_0000 {
	case 0x0000_0000_0000_0000:
		return PcUpdateRegular, nil
	case 0x0080_0000_0000_0000:
		return PcUpdateAbsoluteJump, nil
	case 0x0100_0000_0000_0000:
		return PcUpdateRelativeJump, nil
	case 0x0200_0000_0000_0000:
		return PcUpdateConditionalJump, nil
	default:
		return 0, vmerrors.ErrUndefinedPcUpdate
	}
}

// ApUpdate returns the update rule applied to the allocation pointer.
func (i Instruction) ApUpdate() (ApUpdate, error) {
	switch i.raw & 0x0C00_0000_0000_0000 {
	case 0x0000_0000_0000_0000:
		return ApUpdateNone, nil
	case 0x0400_0000_0000_0000:
		return ApUpdateAddResult, nil
	case 0x0800_0000_0000_0000:
		return ApUpdateIncrement, nil
	default:
		return 0, vmerrors.ErrUndefinedApUpdate
	}
}

// OpCode returns the high-level behavior of the instruction.
func (i Instruction) OpCode() (OpCode, error) {
	switch i.raw & 0xF000_0000_0000_0000 {
	case 0x0000_0000_0000_0000:
		return OpCodeNone, nil
	case 0x1000_0000_0000_0000:
		return OpCodeCall, nil
	case 0x2000_0000_0000_0000:
		return OpCodeRet, nil
	case 0x4000_0000_0000_0000:
		return OpCodeAssertEq, nil
	default:
		return 0, vmerrors.ErrUndefinedOpCode
	}
}

// Size returns how many memory cells the instruction occupies: two when
// op1 is read relative to PC (the second cell holds the immediate value),
// one otherwise.
func (i Instruction) Size() uint {
	if src, err := i.Op1Source(); err == nil && src == Op1SrcPC {
		return 2
	}
	return 1
}

// Encode reassembles the raw 64-bit word, for round-tripping a previously
// decoded instruction.
func (i Instruction) Encode() uint64 {
	return i.raw
}

// EncodeFields packs the bit-level flags of an instruction into a raw word,
// combined with the three offsets. It is the inverse of the various *()
// accessors and exists mainly to build instructions in tests without
// hand-computing bit masks.
func EncodeFields(dstOff, op0Off, op1Off int16, dstReg DstRegister, op0Reg Op0Register, op1Src Op1Source, resLogic ResultLogic, pcUpdate PcUpdate, apUpdate ApUpdate, opCode OpCode) Instruction {
	word := uint64(uint16(dstOff)) | uint64(uint16(op0Off))<<16 | uint64(uint16(op1Off))<<32

	if dstReg == DstFP {
		word |= 0x0001_0000_0000_0000
	}
	if op0Reg == Op0FP {
		word |= 0x0002_0000_0000_0000
	}

	switch op1Src {
	case Op1SrcPC:
		word |= 0x0004_0000_0000_0000
	case Op1SrcFP:
		word |= 0x0008_0000_0000_0000
	case Op1SrcAP:
		word |= 0x0010_0000_0000_0000
	}

	switch resLogic {
	case ResAdd:
		word |= 0x0020_0000_0000_0000
	case ResMul:
		word |= 0x0040_0000_0000_0000
	}

	switch pcUpdate {
	case PcUpdateAbsoluteJump:
		word |= 0x0080_0000_0000_0000
	case PcUpdateRelativeJump:
		word |= 0x0100_0000_0000_0000
	case PcUpdateConditionalJump:
		word |= 0x0200_0000_0000_0000
	}

	switch apUpdate {
	case ApUpdateAddResult:
		word |= 0x0400_0000_0000_0000
	case ApUpdateIncrement:
		word |= 0x0800_0000_0000_0000
	}

	switch opCode {
	case OpCodeCall:
		word |= 0x1000_0000_0000_0000
	case OpCodeRet:
		word |= 0x2000_0000_0000_0000
	case OpCodeAssertEq:
		word |= 0x4000_0000_0000_0000
	}

	instr, _ := DecodeInstruction(word)
	return instr
}
