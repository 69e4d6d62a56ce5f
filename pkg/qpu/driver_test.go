package qpu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/consensys/go-grover/pkg/circuit"
)

func Test_Driver_01(t *testing.T) {
	// Job completing after a few polls yields its result
	backend := &fakeBackend{statuses: []Status{QUEUED, RUNNING, COMPLETE}}
	driver := &Driver{Backend: backend, Interval: time.Millisecond, MaxAttempts: 5}
	//
	result, err := driver.Run(context.Background(), bellProgram(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if result.Shots != 100 {
		t.Fatalf("expected 100 shots, got %d", result.Shots)
	}
}

func Test_Driver_02(t *testing.T) {
	// Polling budget exhausted
	backend := &fakeBackend{statuses: []Status{QUEUED, QUEUED, QUEUED, QUEUED}}
	driver := &Driver{Backend: backend, Interval: time.Millisecond, MaxAttempts: 3}
	//
	var timeout *TimeoutError
	//
	_, err := driver.Run(context.Background(), bellProgram(), 100)
	if !errors.As(err, &timeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	//
	if timeout.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", timeout.Attempts)
	}
}

func Test_Driver_03(t *testing.T) {
	// Backend failure surfaces as an execution error
	backend := &fakeBackend{statuses: []Status{RUNNING, FAILED}}
	driver := &Driver{Backend: backend, Interval: time.Millisecond, MaxAttempts: 5}
	//
	var failed *ExecutionError
	//
	_, err := driver.Run(context.Background(), bellProgram(), 100)
	if !errors.As(err, &failed) {
		t.Fatalf("expected execution error, got %v", err)
	}
}

func Test_Driver_04(t *testing.T) {
	// Context cancellation interrupts polling
	backend := &fakeBackend{statuses: []Status{QUEUED, QUEUED}}
	driver := &Driver{Backend: backend, Interval: time.Hour, MaxAttempts: 5}
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	if _, err := driver.Run(ctx, bellProgram(), 100); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

// Simulator

func Test_Simulator_01(t *testing.T) {
	// Bell state splits shots evenly
	backend := Simulator{}
	driver := &Driver{Backend: backend, Interval: time.Millisecond, MaxAttempts: 1}
	//
	result, err := driver.Run(context.Background(), bellProgram(), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if result.Histogram["00"] != 500 || result.Histogram["11"] != 500 {
		t.Fatalf("unexpected histogram: %v", result.Histogram)
	}
}

func Test_Simulator_02(t *testing.T) {
	// Deterministic outcome lands every shot on one bitstring
	program := circuit.NewProgram(2)
	program.AppendGates(circuit.New(circuit.X, 1))
	//
	job, err := Simulator{}.Submit(program, 64)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	result, _ := job.Result()
	//
	if len(result.Histogram) != 1 || result.Histogram["10"] != 64 {
		t.Fatalf("unexpected histogram: %v", result.Histogram)
	}
}

// Decoding

func Test_Solutions_01(t *testing.T) {
	result := &Result{Histogram: Histogram{"110": 480, "001": 20}, Shots: 500}
	//
	solutions := Solutions(result, 3)
	//
	if len(solutions) != 1 || solutions[0].Bits != "10" || solutions[0].Count != 480 {
		t.Fatalf("unexpected solutions: %v", solutions)
	}
}

func Test_Solutions_02(t *testing.T) {
	// Dirty ancillas are discarded as noise
	result := &Result{Histogram: Histogram{"101": 10, "011": 300}, Shots: 310}
	//
	solutions := Solutions(result, 2)
	//
	if len(solutions) != 1 || solutions[0].Bits != "1" {
		t.Fatalf("unexpected solutions: %v", solutions)
	}
}

func Test_Solutions_03(t *testing.T) {
	// Near-peak entries all survive, ranked by count
	result := &Result{Histogram: Histogram{"111": 260, "101": 240, "001": 20}, Shots: 520}
	//
	solutions := Solutions(result, 3)
	//
	if len(solutions) != 2 || solutions[0].Bits != "11" || solutions[1].Bits != "01" {
		t.Fatalf("unexpected solutions: %v", solutions)
	}
}

func Test_Solutions_04(t *testing.T) {
	result := &Result{Histogram: Histogram{}, Shots: 0}
	//
	if solutions := Solutions(result, 2); len(solutions) != 0 {
		t.Fatalf("expected no solutions, got %v", solutions)
	}
}

// ===================================================================
// Helpers
// ===================================================================

// fakeBackend walks a scripted status sequence, holding its final status
// forever.
type fakeBackend struct {
	statuses []Status
	polls    int
}

func (b *fakeBackend) Name() string {
	return "fake"
}

func (b *fakeBackend) Submit(program *circuit.Program, shots int) (Job, error) {
	return &fakeJob{b, shots}, nil
}

type fakeJob struct {
	backend *fakeBackend
	shots   int
}

func (j *fakeJob) Status() (Status, error) {
	statuses := j.backend.statuses
	index := min(j.backend.polls, len(statuses)-1)
	j.backend.polls++
	//
	return statuses[index], nil
}

func (j *fakeJob) Result() (*Result, error) {
	return &Result{Histogram: Histogram{}, Shots: j.shots}, nil
}

func bellProgram() *circuit.Program {
	program := circuit.NewProgram(2)
	program.AppendGates(circuit.New(circuit.H, 0), circuit.New(circuit.CNOT, 0, 1))
	//
	return program
}
