package vm

import "github.com/KasarLabs/rayquaza/pkg/vm/memory"

// RunContext holds the three registers of the machine: the Program Counter,
// the Allocation Pointer and the Frame Pointer. PC is allowed to change
// segment on an absolute jump; AP and FP never do -- both only ever move
// within the single execution segment they were initialized in.
type RunContext struct {
	Pc memory.Relocatable
	Ap memory.Relocatable
	Fp memory.Relocatable
}

// ComputeDstAddr resolves the destination address of an instruction,
// relative to AP or FP depending on the instruction's dst register.
func (rc RunContext) ComputeDstAddr(instr Instruction) memory.Relocatable {
	base := rc.Ap
	if instr.DstRegister() == DstFP {
		base = rc.Fp
	}
	return base.AddSignedOffset(int(instr.DstOffset))
}

// ComputeOp0Addr resolves the address of the first operand of an
// instruction, relative to AP or FP depending on the instruction's op0
// register.
func (rc RunContext) ComputeOp0Addr(instr Instruction) memory.Relocatable {
	base := rc.Ap
	if instr.Op0Register() == Op0FP {
		base = rc.Fp
	}
	return base.AddSignedOffset(int(instr.Op0Offset))
}

// ComputeOp1Addr resolves the address of the second operand of an
// instruction. Its base depends on the instruction's op1 source: the
// address of op0, or one of the three registers.
func (rc RunContext) ComputeOp1Addr(instr Instruction, op0Addr memory.Relocatable) (memory.Relocatable, error) {
	src, err := instr.Op1Source()
	if err != nil {
		return memory.Relocatable{}, err
	}

	var base memory.Relocatable
	switch src {
	case Op1SrcOp0:
		base = op0Addr
	case Op1SrcPC:
		base = rc.Pc
	case Op1SrcFP:
		base = rc.Fp
	case Op1SrcAP:
		base = rc.Ap
	}
	return base.AddSignedOffset(int(instr.Op1Offset)), nil
}
