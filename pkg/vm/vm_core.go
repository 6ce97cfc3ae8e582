package vm

import (
	"github.com/KasarLabs/rayquaza/pkg/builtins"
	"github.com/KasarLabs/rayquaza/pkg/vm/memory"
)

// VirtualMachine is the Cairo step interpreter: a RunContext (the three
// registers), a Memory of preloaded segments, and an ordered group of
// builtins bound to a contiguous range of those segments. It advances one
// instruction at a time via Step; nothing about program loading, segment
// relocation, or proof-system trace hashing lives here -- those belong to
// whatever external collaborator embeds this core.
type VirtualMachine struct {
	RunContext  RunContext
	Memory      *memory.Memory
	Builtins    *builtins.Manager
	CurrentStep uint
}

// NewVirtualMachine constructs a VirtualMachine over already-preloaded
// memory, starting at the given registers, with builtins bound to their
// segments. A nil builtins manager is equivalent to no builtins at all.
func NewVirtualMachine(mem *memory.Memory, initial RunContext, builtinsMgr *builtins.Manager) *VirtualMachine {
	return &VirtualMachine{
		RunContext: initial,
		Memory:     mem,
		Builtins:   builtinsMgr,
	}
}

// RunStep advances the machine by exactly one instruction and bumps the
// step counter on success. It is a thin wrapper over Step that external
// embedders can call without having to track CurrentStep themselves.
func (vm *VirtualMachine) RunStep(trace Trace) error {
	if err := vm.Step(trace); err != nil {
		return err
	}
	vm.CurrentStep++
	return nil
}

// Pc returns the current program counter.
func (vm *VirtualMachine) Pc() memory.Relocatable { return vm.RunContext.Pc }

// Ap returns the current allocation pointer.
func (vm *VirtualMachine) Ap() memory.Relocatable { return vm.RunContext.Ap }

// Fp returns the current frame pointer.
func (vm *VirtualMachine) Fp() memory.Relocatable { return vm.RunContext.Fp }

// GetMemory returns the VM's memory for read-only inspection by a caller
// between steps.
func (vm *VirtualMachine) GetMemory() *memory.Memory { return vm.Memory }
