package memory

import "fmt"

// Memory is an ordered collection of segments. Segment 0 conventionally
// holds the program being executed; further segments are added on demand
// as the running program needs fresh scratch space (the execution segment,
// builtin segments, and so on).
type Memory struct {
	segments []*Segment
}

// NewMemory returns an empty Memory with no segments.
func NewMemory() *Memory {
	return &Memory{}
}

// AddSegment appends a new, empty segment and returns its index.
func (m *Memory) AddSegment() int {
	m.segments = append(m.segments, NewSegment())
	return len(m.segments) - 1
}

// NumSegments returns how many segments have been added so far.
func (m *Memory) NumSegments() int {
	return len(m.segments)
}

// Segment returns the segment at index i, or false if no such segment has
// been added yet.
func (m *Memory) Segment(i int) (*Segment, bool) {
	if i < 0 || i >= len(m.segments) {
		return nil, false
	}
	return m.segments[i], true
}

// Get resolves a Relocatable to the value stored there, if any.
func (m *Memory) Get(addr Relocatable) (MaybeRelocatable, bool) {
	seg, ok := m.Segment(addr.SegmentIndex)
	if !ok {
		return MaybeRelocatable{}, false
	}
	return seg.Get(addr.Offset)
}

// AssertEq asserts that the cell at addr equals value, growing its segment
// as needed. The segment must already have been added with AddSegment.
func (m *Memory) AssertEq(addr Relocatable, value MaybeRelocatable) error {
	seg, ok := m.Segment(addr.SegmentIndex)
	if !ok {
		return fmt.Errorf("memory: segment %d does not exist", addr.SegmentIndex)
	}
	return seg.AssertEq(addr.Offset, value)
}
