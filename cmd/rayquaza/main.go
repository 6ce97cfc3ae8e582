// Command rayquaza drives the Cairo step interpreter over a small,
// manually supplied program. It exists to exercise the embedding
// interface described in the core's design notes -- loading a program and
// relocating segments at the end of a run belong to a real loader, not to
// this shell.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/KasarLabs/rayquaza/pkg/builtins"
	"github.com/KasarLabs/rayquaza/pkg/felt"
	"github.com/KasarLabs/rayquaza/pkg/vm"
	"github.com/KasarLabs/rayquaza/pkg/vm/memory"
)

func main() {
	optProgram := getopt.StringLong("program", 'p', "", "comma-separated hex instruction words to preload into segment 0")
	optSteps := getopt.IntLong("steps", 'n', 64, "maximum number of steps to run")
	optVerbose := getopt.BoolLong("verbose", 'v', "log every fetched instruction")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *optVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *optProgram == "" {
		logger.Error("no program given, pass -p with comma-separated hex words")
		os.Exit(1)
	}

	words, err := parseWords(*optProgram)
	if err != nil {
		logger.Error("invalid program", "error", err)
		os.Exit(1)
	}

	mem := memory.NewMemory()
	programSegment := mem.AddSegment()
	executionSegment := mem.AddSegment()

	for i, w := range words {
		addr := memory.Relocatable{SegmentIndex: programSegment, Offset: uint(i)}
		if err := mem.AssertEq(addr, memory.NewScalar(felt.FeltFromUint64(w))); err != nil {
			logger.Error("failed to preload program", "offset", i, "error", err)
			os.Exit(1)
		}
	}

	initial := vm.RunContext{
		Pc: memory.Relocatable{SegmentIndex: programSegment, Offset: 0},
		Ap: memory.Relocatable{SegmentIndex: executionSegment, Offset: 0},
		Fp: memory.Relocatable{SegmentIndex: executionSegment, Offset: 0},
	}

	machine := vm.NewVirtualMachine(mem, initial, builtins.NewManager(0, nil))

	for step := 0; step < *optSteps; step++ {
		logger.Debug("fetch", "pc", machine.Pc().String())
		if err := machine.RunStep(vm.NoopTrace{}); err != nil {
			logger.Info("halted", "step", step, "pc", machine.Pc().String(), "reason", err)
			os.Exit(0)
		}
	}

	fmt.Printf("ran %d steps, pc=%s ap=%s fp=%s\n", *optSteps, machine.Pc(), machine.Ap(), machine.Fp())
}

func parseWords(csv string) ([]uint64, error) {
	parts := strings.Split(csv, ",")
	words := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "0x"))
		if p == "" {
			continue
		}
		w, err := strconv.ParseUint(p, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", p, err)
		}
		words = append(words, w)
	}
	return words, nil
}
