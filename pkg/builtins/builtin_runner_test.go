package builtins_test

import (
	"errors"
	"testing"

	"github.com/KasarLabs/rayquaza/pkg/builtins"
	"github.com/KasarLabs/rayquaza/pkg/felt"
	"github.com/KasarLabs/rayquaza/pkg/vm/memory"
)

type constantBuiltin struct {
	value memory.MaybeRelocatable
}

func (c constantBuiltin) Deduce(offset uint, segment *memory.Segment) (memory.MaybeRelocatable, error) {
	return c.value, nil
}

type neverBuiltin struct{}

func (neverBuiltin) Deduce(offset uint, segment *memory.Segment) (memory.MaybeRelocatable, error) {
	return memory.MaybeRelocatable{}, builtins.ErrNotDeducible
}

func TestManagerGetRunnerWithinRange(t *testing.T) {
	mgr := builtins.NewManager(2, []builtins.Builtin{
		constantBuiltin{value: memory.NewScalar(felt.FeltFromUint64(1))},
		neverBuiltin{},
	})

	if _, ok := mgr.GetRunner(1); ok {
		t.Errorf("segment 1 is below MinSegment and should not resolve")
	}
	if _, ok := mgr.GetRunner(4); ok {
		t.Errorf("segment 4 is at or past MaxSegment and should not resolve")
	}

	r, ok := mgr.GetRunner(2)
	if !ok {
		t.Fatalf("expected segment 2 to resolve to a builtin")
	}
	v, err := r.Deduce(0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Equal(memory.NewScalar(felt.FeltFromUint64(1))) {
		t.Errorf("unexpected deduced value: %v", v)
	}
}

func TestBuiltinNotDeducibleIsNotAnError(t *testing.T) {
	b := neverBuiltin{}
	_, err := b.Deduce(0, nil)
	if !errors.Is(err, builtins.ErrNotDeducible) {
		t.Errorf("expected ErrNotDeducible, got %v", err)
	}
}

func TestManagerNilIsEmpty(t *testing.T) {
	var mgr *builtins.Manager
	if _, ok := mgr.GetRunner(0); ok {
		t.Errorf("a nil manager should never resolve a runner")
	}
}
