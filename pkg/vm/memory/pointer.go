package memory

import (
	"fmt"

	"github.com/KasarLabs/rayquaza/pkg/vmerrors"
)

// Relocatable is a pointer into the virtual machine's memory: a segment
// index together with an offset within that segment. The segment a
// Relocatable belongs to is its provenance -- two pointers from different
// segments cannot be meaningfully compared or subtracted.
type Relocatable struct {
	SegmentIndex int
	Offset       uint
}

// String renders a Relocatable the way Cairo tooling conventionally does:
// "segment:offset".
func (r Relocatable) String() string {
	return fmt.Sprintf("%d:%d", r.SegmentIndex, r.Offset)
}

// AddOffset returns r with off added to its offset, wrapping on overflow.
// Offsets are always added modulo the machine word size, mirroring the
// wrapping arithmetic used to resolve dst/op0/op1 addresses.
func (r Relocatable) AddOffset(off uint) Relocatable {
	return Relocatable{SegmentIndex: r.SegmentIndex, Offset: r.Offset + off}
}

// AddSignedOffset adds a signed offset to r's offset using wrapping
// arithmetic, as required when resolving instruction offsets (which are
// signed 16-bit values biased onto a register).
func (r Relocatable) AddSignedOffset(off int) Relocatable {
	return Relocatable{SegmentIndex: r.SegmentIndex, Offset: uint(int(r.Offset) + off)}
}

// SubOffset returns the Relocatable obtained by subtracting off from r's
// offset, wrapping on underflow.
func (r Relocatable) SubOffset(off uint) Relocatable {
	return Relocatable{SegmentIndex: r.SegmentIndex, Offset: r.Offset - off}
}

// Sub returns the signed distance between r and other. Both pointers must
// share the same segment, otherwise their provenance is incoherent and no
// meaningful distance exists.
func (r Relocatable) Sub(other Relocatable) (int, error) {
	if r.SegmentIndex != other.SegmentIndex {
		return 0, vmerrors.ErrIncoherentProvenance
	}
	return int(r.Offset) - int(other.Offset), nil
}
