package memory_test

import (
	"testing"

	"github.com/KasarLabs/rayquaza/pkg/felt"
	"github.com/KasarLabs/rayquaza/pkg/vm/memory"
)

func TestMemoryAddSegmentAssignsSequentialIndices(t *testing.T) {
	m := memory.NewMemory()

	first := m.AddSegment()
	second := m.AddSegment()

	if first != 0 || second != 1 {
		t.Fatalf("expected segments 0 and 1, got %d and %d", first, second)
	}
	if m.NumSegments() != 2 {
		t.Errorf("expected 2 segments, got %d", m.NumSegments())
	}
}

func TestMemoryAssertEqAndGetRoundTrip(t *testing.T) {
	m := memory.NewMemory()
	seg := m.AddSegment()
	addr := memory.Relocatable{SegmentIndex: seg, Offset: 4}
	v := memory.NewScalar(felt.FeltFromUint64(99))

	if err := m.AssertEq(addr, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := m.Get(addr)
	if !ok {
		t.Fatalf("expected address to be known")
	}
	if !got.Equal(v) {
		t.Errorf("expected %v, got %v", v, got)
	}
}

func TestMemoryAssertEqUnknownSegmentFails(t *testing.T) {
	m := memory.NewMemory()
	addr := memory.Relocatable{SegmentIndex: 0, Offset: 0}

	if err := m.AssertEq(addr, memory.NewScalar(felt.FeltZero())); err == nil {
		t.Errorf("expected an error writing into a segment that was never added")
	}
}

func TestMemoryGetUnknownAddressIsNotOk(t *testing.T) {
	m := memory.NewMemory()
	m.AddSegment()

	if _, ok := m.Get(memory.Relocatable{SegmentIndex: 0, Offset: 7}); ok {
		t.Errorf("expected an unasserted address to be unknown")
	}
	if _, ok := m.Segment(5); ok {
		t.Errorf("expected segment 5 to not exist")
	}
}
