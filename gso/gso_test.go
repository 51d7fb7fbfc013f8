package gso

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/prng"
)

// sphereObjective rewards positions near the origin, giving every glowworm a well-defined gradient
// to climb.
func sphereObjective(pos coordinates.Coordinates) float64 {
	return -pos.SumOfSquares()
}

func newTestSwarm(seed int64) *Swarm {
	positions := []coordinates.Coordinates{
		coordinates.NewFrom(0, 0),
		coordinates.NewFrom(1, 1),
		coordinates.NewFrom(5, 5),
		coordinates.NewFrom(-3, 2),
	}
	params := DefaultBenchmarkParameters()
	params.MaxSteps = 10
	params.ReportInterval = 2
	return NewSwarm(positions, sphereObjective, BenchmarkDistance, BenchmarkMove, params, prng.New(seed))
}

func TestSwarmStateMachineTransitions(t *testing.T) {
	s := newTestSwarm(1)
	if s.State != Created {
		t.Fatalf("new swarm state = %v, want CREATED", s.State)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if s.State != Initialized {
		t.Fatalf("state after Init = %v, want INITIALIZED", s.State)
	}
	if err := s.StepOnce(); err != nil {
		t.Fatalf("StepOnce() error: %v", err)
	}
	if s.State != Running {
		t.Fatalf("state after step 1 (report interval 2) = %v, want RUNNING", s.State)
	}
	if err := s.StepOnce(); err != nil {
		t.Fatalf("StepOnce() error: %v", err)
	}
	if s.State != Reported {
		t.Fatalf("state after step 2 (report interval 2) = %v, want REPORTED", s.State)
	}
}

func TestStepOnceRequiresInitializedState(t *testing.T) {
	s := newTestSwarm(1)
	if err := s.StepOnce(); err == nil {
		t.Fatal("StepOnce() before Init(): want error, got nil")
	}
}

func TestLuciferinNeverNegative(t *testing.T) {
	s := newTestSwarm(2)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := s.StepOnce(); err != nil {
			t.Fatalf("StepOnce() error: %v", err)
		}
		for _, g := range s.Glowworms {
			if g.Luciferin < 0 {
				t.Fatalf("step %d: luciferin = %v, want >= 0", i, g.Luciferin)
			}
		}
	}
}

func TestRunIsBitReproducibleForSameSeed(t *testing.T) {
	var reportA, reportB bytes.Buffer

	a := newTestSwarm(42)
	if err := a.Run(func(step int, s *Swarm) {
		s.WriteReport(&reportA)
	}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	b := newTestSwarm(42)
	if err := b.Run(func(step int, s *Swarm) {
		s.WriteReport(&reportB)
	}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if reportA.String() != reportB.String() {
		t.Fatal("Run() with the same seed produced different reports")
	}
}

func TestRunTerminatesAtMaxSteps(t *testing.T) {
	s := newTestSwarm(7)
	if err := s.Run(nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if s.State != Terminated {
		t.Fatalf("state after Run() = %v, want TERMINATED", s.State)
	}
	if s.Step != s.Params.MaxSteps {
		t.Fatalf("Step = %d, want %d", s.Step, s.Params.MaxSteps)
	}
}

func TestWriteReportFormatIsStable(t *testing.T) {
	s := newTestSwarm(3)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	var buf bytes.Buffer
	if err := s.WriteReport(&buf); err != nil {
		t.Fatalf("WriteReport() error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(s.Glowworms) {
		t.Fatalf("WriteReport() produced %d lines, want %d", len(lines), len(s.Glowworms))
	}
	fields := strings.Fields(lines[0])
	// index + 2 coordinates + luciferin + vision_range + scoring + neighbors_count
	if len(fields) != 1+2+3+1 {
		t.Errorf("WriteReport() line has %d fields, want %d: %q", len(fields), 1+2+3+1, lines[0])
	}
}
