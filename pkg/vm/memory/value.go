package memory

import (
	"fmt"

	"github.com/KasarLabs/rayquaza/pkg/felt"
	"github.com/KasarLabs/rayquaza/pkg/vmerrors"
)

// Tag identifies which variant a MaybeRelocatable cell currently holds.
type Tag uint8

const (
	// Unknown marks a memory cell that has never been asserted.
	Unknown Tag = iota
	// ScalarTag marks a cell holding a field element with no provenance.
	ScalarTag
	// PointerTag marks a cell holding a pointer into some segment.
	PointerTag
)

// MaybeRelocatable is a value that can be stored in a memory cell: either a
// bare field element (Scalar) or a pointer into a segment (Pointer). The
// zero value is the Unknown-tagged placeholder and must never be written
// into memory directly -- it only appears transiently while a StepContext
// is still collecting operands.
type MaybeRelocatable struct {
	tag     Tag
	scalar  felt.Felt
	pointer Relocatable
}

// NewScalar wraps a field element into a MaybeRelocatable.
func NewScalar(f felt.Felt) MaybeRelocatable {
	return MaybeRelocatable{tag: ScalarTag, scalar: f}
}

// NewPointer wraps a pointer into a MaybeRelocatable.
func NewPointer(p Relocatable) MaybeRelocatable {
	return MaybeRelocatable{tag: PointerTag, pointer: p}
}

// Tag returns the discriminant of the value.
func (v MaybeRelocatable) Tag() Tag {
	return v.tag
}

// Known reports whether the value has been asserted to something, as
// opposed to being the placeholder zero value.
func (v MaybeRelocatable) Known() bool {
	return v.tag != Unknown
}

// GetScalar returns the held field element, if any.
func (v MaybeRelocatable) GetScalar() (felt.Felt, bool) {
	if v.tag != ScalarTag {
		return felt.Felt{}, false
	}
	return v.scalar, true
}

// GetPointer returns the held pointer, if any.
func (v MaybeRelocatable) GetPointer() (Relocatable, bool) {
	if v.tag != PointerTag {
		return Relocatable{}, false
	}
	return v.pointer, true
}

// IsZero reports whether the value is the scalar zero. Pointers are never
// zero, regardless of their offset.
func (v MaybeRelocatable) IsZero() bool {
	return v.tag == ScalarTag && v.scalar.IsZero()
}

// Equal reports whether two values carry the same tag and payload.
func (v MaybeRelocatable) Equal(other MaybeRelocatable) bool {
	if v.tag != other.tag {
		return false
	}
	switch v.tag {
	case ScalarTag:
		return v.scalar == other.scalar
	case PointerTag:
		return v.pointer == other.pointer
	default:
		return true
	}
}

func (v MaybeRelocatable) String() string {
	switch v.tag {
	case ScalarTag:
		return v.scalar.String()
	case PointerTag:
		return v.pointer.String()
	default:
		return "<unknown>"
	}
}

// usize converts a scalar to an offset usable in pointer arithmetic,
// failing with ErrPointerTooLarge if it does not fit.
func usize(f felt.Felt) (uint, error) {
	u, err := f.ToUsize()
	if err != nil {
		return 0, vmerrors.ErrPointerTooLarge
	}
	return u, nil
}

// Add computes a + b following the provenance rules of §4.1: scalar+scalar
// stays a scalar, scalar+pointer and pointer+scalar offset the pointer, and
// pointer+pointer is rejected outright.
func Add(a, b MaybeRelocatable) (MaybeRelocatable, error) {
	switch a.tag {
	case ScalarTag:
		switch b.tag {
		case ScalarTag:
			return NewScalar(a.scalar.Add(b.scalar)), nil
		case PointerTag:
			off, err := usize(a.scalar)
			if err != nil {
				return MaybeRelocatable{}, err
			}
			return NewPointer(b.pointer.AddOffset(off)), nil
		}
	case PointerTag:
		switch b.tag {
		case ScalarTag:
			off, err := usize(b.scalar)
			if err != nil {
				return MaybeRelocatable{}, err
			}
			return NewPointer(a.pointer.AddOffset(off)), nil
		case PointerTag:
			return MaybeRelocatable{}, vmerrors.ErrInvalidPointerArithmetic
		}
	}
	return MaybeRelocatable{}, fmt.Errorf("memory: add on unknown value")
}

// Sub computes a - b following the provenance rules of §4.1: scalar-scalar
// stays a scalar, pointer-scalar offsets the pointer, and pointer-pointer
// within the same segment yields the signed distance as a scalar. Every
// other combination is an error.
func Sub(a, b MaybeRelocatable) (MaybeRelocatable, error) {
	switch a.tag {
	case ScalarTag:
		if b.tag != ScalarTag {
			return MaybeRelocatable{}, vmerrors.ErrInvalidPointerArithmetic
		}
		return NewScalar(a.scalar.Sub(b.scalar)), nil
	case PointerTag:
		switch b.tag {
		case ScalarTag:
			off, err := usize(b.scalar)
			if err != nil {
				return MaybeRelocatable{}, err
			}
			return NewPointer(a.pointer.SubOffset(off)), nil
		case PointerTag:
			dist, err := a.pointer.Sub(b.pointer)
			if err != nil {
				return MaybeRelocatable{}, err
			}
			return NewScalar(felt.FeltFromInt64(int64(dist))), nil
		}
	}
	return MaybeRelocatable{}, fmt.Errorf("memory: sub on unknown value")
}

// Mul computes a * b. Only scalar*scalar is defined; any pointer operand is
// rejected.
func Mul(a, b MaybeRelocatable) (MaybeRelocatable, error) {
	if a.tag != ScalarTag || b.tag != ScalarTag {
		return MaybeRelocatable{}, vmerrors.ErrInvalidPointerArithmetic
	}
	return NewScalar(a.scalar.Mul(b.scalar)), nil
}

// Div computes a / b using field division. Only scalar/scalar is defined;
// any pointer operand is rejected, and a zero divisor yields
// ErrDivideByZero.
func Div(a, b MaybeRelocatable) (MaybeRelocatable, error) {
	if a.tag != ScalarTag || b.tag != ScalarTag {
		return MaybeRelocatable{}, vmerrors.ErrInvalidPointerArithmetic
	}
	q, err := a.scalar.Div(b.scalar)
	if err != nil {
		return MaybeRelocatable{}, vmerrors.ErrDivideByZero
	}
	return NewScalar(q), nil
}
