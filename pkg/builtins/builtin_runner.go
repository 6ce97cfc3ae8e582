// Package builtins defines the pluggable per-segment cell deducers the
// step interpreter consults when an operand cannot be read directly from
// memory. Concrete builtins (range-check, Pedersen hashing, and so on) are
// deliberately out of scope here: this package only fixes the interface
// through which such a builtin would plug into the machine.
package builtins

import (
	"errors"

	"github.com/KasarLabs/rayquaza/pkg/vm/memory"
)

// ErrNotDeducible is returned by a Builtin when it lacks the information to
// deduce the requested cell. It is not a failure of the machine: the
// caller simply falls back to other deduction strategies.
var ErrNotDeducible = errors.New("builtins: cell not deducible")

// Builtin is bound to exactly one memory segment. Given a read-only view
// of that segment, it may be able to produce the value that must reside at
// a given offset.
type Builtin interface {
	// Deduce attempts to compute the value at offset within segment. It
	// returns ErrNotDeducible if the builtin lacks the inputs to do so --
	// that is not an error condition. Any other returned error means the
	// builtin was consulted with invalid input and should surface as a
	// genuine failure to the caller.
	Deduce(offset uint, segment *memory.Segment) (memory.MaybeRelocatable, error)
}

// Manager holds an ordered group of builtins, each bound to one of a
// contiguous run of segments starting at MinSegment.
type Manager struct {
	minSegment int
	builtins   []Builtin
}

// NewManager returns a Manager whose builtins occupy the contiguous segment
// range [minSegment, minSegment+len(ordered)).
func NewManager(minSegment int, ordered []Builtin) *Manager {
	return &Manager{minSegment: minSegment, builtins: ordered}
}

// GetRunner returns the builtin bound to segment, if any.
func (m *Manager) GetRunner(segment int) (Builtin, bool) {
	if m == nil || segment < m.minSegment || segment >= m.minSegment+len(m.builtins) {
		return nil, false
	}
	return m.builtins[segment-m.minSegment], true
}

// MinSegment returns the first segment index covered by this manager.
func (m *Manager) MinSegment() int {
	if m == nil {
		return 0
	}
	return m.minSegment
}

// MaxSegment returns one past the last segment index covered by this
// manager.
func (m *Manager) MaxSegment() int {
	if m == nil {
		return 0
	}
	return m.minSegment + len(m.builtins)
}
