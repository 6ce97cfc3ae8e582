// Package vmerrors collects the sentinel errors shared by the memory and
// vm packages. Keeping them in one leaf package lets every layer of the
// interpreter return errors.Is-comparable values without creating an import
// cycle between memory and vm.
//
// None of these are ever panics: every failure the core can produce is one
// of the values below, surfaced to the step caller.
package vmerrors

import "errors"

var (
	// ErrOutOfMemory is returned when a segment cannot grow to satisfy a
	// write, either because of allocator failure or because the required
	// capacity overflows.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrProgramCounterLost is returned when pc points at an unknown cell,
	// or at a cell known to hold a pointer rather than a scalar.
	ErrProgramCounterLost = errors.New("program counter lost")

	// ErrCantDeduceOp0 is returned when op0 remains unknown after builtin
	// and opcode deduction.
	ErrCantDeduceOp0 = errors.New("can't deduce op0")
	// ErrCantDeduceOp1 is returned when op1 remains unknown after builtin
	// and opcode deduction.
	ErrCantDeduceOp1 = errors.New("can't deduce op1")
	// ErrCantDeduceDst is returned when dst remains unknown after builtin
	// and opcode deduction.
	ErrCantDeduceDst = errors.New("can't deduce dst")

	// ErrBuiltin is returned when a builtin was consulted and failed due to
	// invalid input, as opposed to simply having nothing to deduce.
	ErrBuiltin = errors.New("builtin deduction failed")

	// ErrPointerTooLarge is returned when a scalar does not fit the machine
	// word size required to use it as a pointer offset.
	ErrPointerTooLarge = errors.New("pointer offset too large")
	// ErrInvalidPointerArithmetic is returned for arithmetic between values
	// whose provenance rules forbid the requested operation (e.g.
	// multiplying two pointers).
	ErrInvalidPointerArithmetic = errors.New("invalid pointer arithmetic")
	// ErrDivideByZero is returned when a field division's divisor is zero.
	ErrDivideByZero = errors.New("divide by zero")
	// ErrIncoherentProvenance is returned when subtracting two pointers
	// from different segments.
	ErrIncoherentProvenance = errors.New("incoherent provenance")

	// ErrInvalidAbsoluteJump is returned when an absolute jump's result is
	// not a pointer.
	ErrInvalidAbsoluteJump = errors.New("invalid absolute jump")
	// ErrInvalidRelativeJump is returned when a relative jump's result is
	// not a scalar.
	ErrInvalidRelativeJump = errors.New("invalid relative jump")
	// ErrInvalidReturn is returned when a Ret instruction's dst does not
	// carry a saved frame pointer.
	ErrInvalidReturn = errors.New("invalid return")

	// ErrContradiction is returned when a memory cell's asserted value
	// disagrees with a value already written there.
	ErrContradiction = errors.New("contradiction")

	// ErrUndefinedInstruction is returned when the fetched scalar does not
	// fit in a 64-bit instruction word, or its reserved bit is set.
	ErrUndefinedInstruction = errors.New("undefined instruction")
	// ErrUndefinedOp1Source is returned for an instruction whose op1_src
	// bit pattern is not one of the defined sources.
	ErrUndefinedOp1Source = errors.New("undefined op1 source")
	// ErrUndefinedResultLogic is returned for an instruction whose
	// res_logic bit pattern is not defined.
	ErrUndefinedResultLogic = errors.New("undefined result logic")
	// ErrUndefinedPcUpdate is returned for an instruction whose pc_update
	// bit pattern is not defined.
	ErrUndefinedPcUpdate = errors.New("undefined pc update")
	// ErrUndefinedApUpdate is returned for an instruction whose ap_update
	// bit pattern is not defined.
	ErrUndefinedApUpdate = errors.New("undefined ap update")
	// ErrUndefinedOpCode is returned for an instruction whose opcode bit
	// pattern is not defined.
	ErrUndefinedOpCode = errors.New("undefined opcode")
	// ErrUndefinedApUpdateInCall is returned when a Call instruction uses
	// an ap_update other than None.
	ErrUndefinedApUpdateInCall = errors.New("undefined ap update in call")
	// ErrUndefinedConditionalJump is returned when a conditional jump is
	// paired with a result logic, opcode or ap_update that isn't the one
	// required combination.
	ErrUndefinedConditionalJump = errors.New("undefined conditional jump")
)
