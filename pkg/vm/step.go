package vm

import (
	"errors"

	"github.com/KasarLabs/rayquaza/pkg/builtins"
	"github.com/KasarLabs/rayquaza/pkg/vm/memory"
	"github.com/KasarLabs/rayquaza/pkg/vmerrors"
)

// knowledge tracks how an operand's value came to be known during a step:
// read straight out of memory, or computed this step from the others. An
// operand that stays unknown simply never participated in this step's
// computation.
type knowledge uint8

const (
	unknown knowledge = iota
	asserted
	deduced
)

func (k knowledge) known() bool { return k != unknown }

const (
	operandDst = iota
	operandOp0
	operandOp1
)

// stepContext accumulates the state of a single step as it moves through
// address resolution, builtin deduction, and opcode-driven inversion. None
// of its fields are meaningful to a caller outside this package.
type stepContext struct {
	instruction Instruction
	instrSize   uint

	addr  [3]memory.Relocatable
	value [3]memory.MaybeRelocatable
	state [3]knowledge
}

func newStepContext(instr Instruction) *stepContext {
	return &stepContext{instruction: instr, instrSize: instr.Size()}
}

// Step advances the virtual machine by a single instruction. The trace
// argument is accepted but not called. Every register update and memory
// write is computed first; the writes are applied only after all earlier
// phases have succeeded, in the order dst, op0, op1, and the registers are
// updated only after every write has landed. On error the registers are
// unchanged; if one of the writes fails, the writes applied before it in
// the same step stay in memory.
func (vm *VirtualMachine) Step(trace Trace) error {
	instr, err := vm.fetchInstruction()
	if err != nil {
		return err
	}

	ctx := newStepContext(instr)

	if err := vm.computeOperandAddresses(ctx); err != nil {
		return err
	}
	if err := vm.runBuiltins(ctx); err != nil {
		return err
	}
	if err := vm.deduceFromOpCode(ctx); err != nil {
		return err
	}

	res, resKnown, err := vm.computeRes(ctx)
	if err != nil {
		return err
	}

	opcode, err := instr.OpCode()
	if err != nil {
		return err
	}
	if opcode == OpCodeAssertEq {
		ctx.value[operandDst] = res
		ctx.state[operandDst] = deduced
	}

	newPc, err := vm.computeNextPc(ctx, res, resKnown)
	if err != nil {
		return err
	}
	newAp, err := vm.computeNextAp(ctx, opcode, res, resKnown)
	if err != nil {
		return err
	}
	newFp, err := vm.computeNextFp(ctx, opcode, newAp)
	if err != nil {
		return err
	}

	for i := operandDst; i <= operandOp1; i++ {
		if ctx.state[i] != deduced {
			continue
		}
		if err := vm.Memory.AssertEq(ctx.addr[i], ctx.value[i]); err != nil {
			return err
		}
	}

	vm.RunContext.Pc = newPc
	vm.RunContext.Ap = newAp
	vm.RunContext.Fp = newFp
	return nil
}

func (vm *VirtualMachine) fetchInstruction() (Instruction, error) {
	cell, ok := vm.Memory.Get(vm.RunContext.Pc)
	if !ok {
		return Instruction{}, vmerrors.ErrProgramCounterLost
	}
	scalar, ok := cell.GetScalar()
	if !ok {
		return Instruction{}, vmerrors.ErrProgramCounterLost
	}
	word, err := scalar.ToU64()
	if err != nil {
		return Instruction{}, vmerrors.ErrUndefinedInstruction
	}
	return DecodeInstruction(word)
}

// computeOperandAddresses implements phase 2: it resolves the three
// operand addresses and records which ones are already known from memory.
func (vm *VirtualMachine) computeOperandAddresses(ctx *stepContext) error {
	ctx.addr[operandDst] = vm.RunContext.ComputeDstAddr(ctx.instruction)
	ctx.addr[operandOp0] = vm.RunContext.ComputeOp0Addr(ctx.instruction)

	op1Addr, err := vm.RunContext.ComputeOp1Addr(ctx.instruction, ctx.addr[operandOp0])
	if err != nil {
		return err
	}
	ctx.addr[operandOp1] = op1Addr

	for i := operandDst; i <= operandOp1; i++ {
		if v, ok := vm.Memory.Get(ctx.addr[i]); ok {
			ctx.value[i] = v
			ctx.state[i] = asserted
		}
	}
	return nil
}

// runBuiltins implements phase 3: op0 and op1 are offered to the builtin
// bound to their segment, if any, when still unknown.
func (vm *VirtualMachine) runBuiltins(ctx *stepContext) error {
	for _, i := range [...]int{operandOp0, operandOp1} {
		if ctx.state[i].known() {
			continue
		}
		v, ok, err := vm.deduceWithBuiltin(ctx.addr[i])
		if err != nil {
			return err
		}
		if ok {
			ctx.value[i] = v
			ctx.state[i] = deduced
		}
	}
	return nil
}

func (vm *VirtualMachine) deduceWithBuiltin(addr memory.Relocatable) (memory.MaybeRelocatable, bool, error) {
	runner, ok := vm.Builtins.GetRunner(addr.SegmentIndex)
	if !ok {
		return memory.MaybeRelocatable{}, false, nil
	}
	segment, ok := vm.Memory.Segment(addr.SegmentIndex)
	if !ok {
		return memory.MaybeRelocatable{}, false, nil
	}
	v, err := runner.Deduce(addr.Offset, segment)
	if err != nil {
		if errors.Is(err, builtins.ErrNotDeducible) {
			return memory.MaybeRelocatable{}, false, nil
		}
		return memory.MaybeRelocatable{}, false, vmerrors.ErrBuiltin
	}
	return v, true, nil
}

// deduceFromOpCode implements phase 4: Call asserts op0 = pc + instr_size
// and dst = fp (checking, rather than overwriting, whichever of the two
// was already known), and AssertEq inverts res_logic to fill in whichever
// of op0/op1 is still missing once dst is known.
func (vm *VirtualMachine) deduceFromOpCode(ctx *stepContext) error {
	opcode, err := ctx.instruction.OpCode()
	if err != nil {
		return err
	}

	switch opcode {
	case OpCodeCall:
		pcPlusSize := memory.NewPointer(vm.RunContext.Pc.AddOffset(ctx.instrSize))
		if err := assertOrDeduce(ctx, operandOp0, pcPlusSize); err != nil {
			return err
		}

		fp := memory.NewPointer(vm.RunContext.Fp)
		if err := assertOrDeduce(ctx, operandDst, fp); err != nil {
			return err
		}

	case OpCodeAssertEq:
		if !ctx.state[operandDst].known() {
			return nil
		}
		resLogic, err := ctx.instruction.ResultLogic()
		if err != nil {
			return err
		}

		if !ctx.state[operandOp1].known() {
			if err := deduceOp1FromOp0(resLogic, ctx); err != nil {
				return err
			}
		}
		if ctx.state[operandOp1].known() && !ctx.state[operandOp0].known() {
			if err := deduceOp0FromOp1(resLogic, ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

// assertOrDeduce checks operand i against want if already known, failing
// with Contradiction on mismatch; otherwise it sets it to want as deduced.
func assertOrDeduce(ctx *stepContext, i int, want memory.MaybeRelocatable) error {
	if ctx.state[i].known() {
		if !ctx.value[i].Equal(want) {
			return vmerrors.ErrContradiction
		}
		return nil
	}
	ctx.value[i] = want
	ctx.state[i] = deduced
	return nil
}

func deduceOp1FromOp0(resLogic ResultLogic, ctx *stepContext) error {
	dst := ctx.value[operandDst]
	switch resLogic {
	case ResOp1:
		ctx.value[operandOp1] = dst
		ctx.state[operandOp1] = deduced
	case ResAdd:
		if !ctx.state[operandOp0].known() {
			return nil
		}
		v, err := memory.Sub(dst, ctx.value[operandOp0])
		if err != nil {
			return err
		}
		ctx.value[operandOp1] = v
		ctx.state[operandOp1] = deduced
	case ResMul:
		if !ctx.state[operandOp0].known() {
			return nil
		}
		v, err := memory.Div(dst, ctx.value[operandOp0])
		if err != nil {
			return err
		}
		ctx.value[operandOp1] = v
		ctx.state[operandOp1] = deduced
	}
	return nil
}

func deduceOp0FromOp1(resLogic ResultLogic, ctx *stepContext) error {
	dst := ctx.value[operandDst]
	switch resLogic {
	case ResOp1:
		// dst = op1 alone determines nothing about op0.
		return nil
	case ResAdd:
		v, err := memory.Sub(dst, ctx.value[operandOp1])
		if err != nil {
			return err
		}
		ctx.value[operandOp0] = v
		ctx.state[operandOp0] = deduced
	case ResMul:
		v, err := memory.Div(dst, ctx.value[operandOp1])
		if err != nil {
			return err
		}
		ctx.value[operandOp0] = v
		ctx.state[operandOp0] = deduced
	}
	return nil
}

// computeRes implements phase 5: the result only requires the operands its
// result logic actually reads -- Op1 needs only op1, Add and Mul need both.
func (vm *VirtualMachine) computeRes(ctx *stepContext) (memory.MaybeRelocatable, bool, error) {
	resLogic, err := ctx.instruction.ResultLogic()
	if err != nil {
		return memory.MaybeRelocatable{}, false, err
	}

	switch resLogic {
	case ResOp1:
		if !ctx.state[operandOp1].known() {
			return memory.MaybeRelocatable{}, false, vmerrors.ErrCantDeduceOp1
		}
		return ctx.value[operandOp1], true, nil

	case ResAdd:
		if !ctx.state[operandOp0].known() {
			return memory.MaybeRelocatable{}, false, vmerrors.ErrCantDeduceOp0
		}
		if !ctx.state[operandOp1].known() {
			return memory.MaybeRelocatable{}, false, vmerrors.ErrCantDeduceOp1
		}
		v, err := memory.Add(ctx.value[operandOp0], ctx.value[operandOp1])
		return v, true, err

	case ResMul:
		if !ctx.state[operandOp0].known() {
			return memory.MaybeRelocatable{}, false, vmerrors.ErrCantDeduceOp0
		}
		if !ctx.state[operandOp1].known() {
			return memory.MaybeRelocatable{}, false, vmerrors.ErrCantDeduceOp1
		}
		v, err := memory.Mul(ctx.value[operandOp0], ctx.value[operandOp1])
		return v, true, err
	}

	return memory.MaybeRelocatable{}, false, nil
}

// computeNextPc implements the pc half of phase 6.
func (vm *VirtualMachine) computeNextPc(ctx *stepContext, res memory.MaybeRelocatable, resKnown bool) (memory.Relocatable, error) {
	pcUpdate, err := ctx.instruction.PcUpdate()
	if err != nil {
		return memory.Relocatable{}, err
	}

	switch pcUpdate {
	case PcUpdateRegular:
		return vm.RunContext.Pc.AddOffset(ctx.instrSize), nil

	case PcUpdateAbsoluteJump:
		p, ok := res.GetPointer()
		if !resKnown || !ok {
			return memory.Relocatable{}, vmerrors.ErrInvalidAbsoluteJump
		}
		return p, nil

	case PcUpdateRelativeJump:
		s, ok := res.GetScalar()
		if !resKnown || !ok {
			return memory.Relocatable{}, vmerrors.ErrInvalidRelativeJump
		}
		off, err := s.ToUsize()
		if err != nil {
			return memory.Relocatable{}, vmerrors.ErrInvalidRelativeJump
		}
		return vm.RunContext.Pc.AddOffset(off), nil

	case PcUpdateConditionalJump:
		resLogic, err := ctx.instruction.ResultLogic()
		if err != nil {
			return memory.Relocatable{}, err
		}
		opcode, err := ctx.instruction.OpCode()
		if err != nil {
			return memory.Relocatable{}, err
		}
		apUpdate, err := ctx.instruction.ApUpdate()
		if err != nil {
			return memory.Relocatable{}, err
		}
		if resLogic != ResOp1 || opcode != OpCodeNone || apUpdate != ApUpdateAddResult {
			return memory.Relocatable{}, vmerrors.ErrUndefinedConditionalJump
		}
		if !ctx.state[operandDst].known() {
			return memory.Relocatable{}, vmerrors.ErrCantDeduceDst
		}

		if ctx.value[operandDst].IsZero() {
			return vm.RunContext.Pc.AddOffset(ctx.instrSize), nil
		}
		s, ok := ctx.value[operandOp1].GetScalar()
		if !ok {
			return memory.Relocatable{}, vmerrors.ErrInvalidRelativeJump
		}
		off, err := s.ToUsize()
		if err != nil {
			return memory.Relocatable{}, vmerrors.ErrInvalidRelativeJump
		}
		return vm.RunContext.Pc.AddOffset(off), nil
	}

	return memory.Relocatable{}, vmerrors.ErrUndefinedPcUpdate
}

// computeNextAp implements the ap half of phase 6. Call forces ap_update
// to None and instead advances ap by 2 itself, per §6.2.
func (vm *VirtualMachine) computeNextAp(ctx *stepContext, opcode OpCode, res memory.MaybeRelocatable, resKnown bool) (memory.Relocatable, error) {
	apUpdate, err := ctx.instruction.ApUpdate()
	if err != nil {
		return memory.Relocatable{}, err
	}

	if opcode == OpCodeCall {
		if apUpdate != ApUpdateNone {
			return memory.Relocatable{}, vmerrors.ErrUndefinedApUpdateInCall
		}
		return vm.RunContext.Ap.AddOffset(2), nil
	}

	switch apUpdate {
	case ApUpdateNone:
		return vm.RunContext.Ap, nil
	case ApUpdateIncrement:
		return vm.RunContext.Ap.AddOffset(1), nil
	case ApUpdateAddResult:
		if !resKnown {
			return memory.Relocatable{}, vmerrors.ErrCantDeduceOp1
		}
		v, err := memory.Add(memory.NewPointer(vm.RunContext.Ap), res)
		if err != nil {
			return memory.Relocatable{}, err
		}
		p, ok := v.GetPointer()
		if !ok {
			return memory.Relocatable{}, vmerrors.ErrInvalidPointerArithmetic
		}
		return p, nil
	}

	return memory.Relocatable{}, vmerrors.ErrUndefinedApUpdate
}

// computeNextFp implements the fp half of phase 6: Call sets fp to the new
// ap, Ret restores it from dst (which must carry a pointer), everything
// else leaves it unchanged.
func (vm *VirtualMachine) computeNextFp(ctx *stepContext, opcode OpCode, newAp memory.Relocatable) (memory.Relocatable, error) {
	switch opcode {
	case OpCodeCall:
		return newAp, nil
	case OpCodeRet:
		p, ok := ctx.value[operandDst].GetPointer()
		if !ctx.state[operandDst].known() || !ok {
			return memory.Relocatable{}, vmerrors.ErrInvalidReturn
		}
		return p, nil
	default:
		return vm.RunContext.Fp, nil
	}
}
