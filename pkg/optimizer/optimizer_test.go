package optimizer

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/consensys/go-grover/pkg/circuit"
	"github.com/consensys/go-grover/pkg/quantum"
)

func Test_Optimizer_01(t *testing.T) {
	// Adjacent self-inverse pair cancels
	testOptimize(t,
		[]circuit.Gate{circuit.New(circuit.H, 0), circuit.New(circuit.H, 0)},
		nil)
}

func Test_Optimizer_02(t *testing.T) {
	testOptimize(t,
		[]circuit.Gate{circuit.New(circuit.T, 0), circuit.New(circuit.Tdag, 0)},
		nil)
}

func Test_Optimizer_03(t *testing.T) {
	testOptimize(t,
		[]circuit.Gate{circuit.New(circuit.CNOT, 0, 1), circuit.New(circuit.CNOT, 0, 1)},
		nil)
}

func Test_Optimizer_04(t *testing.T) {
	// A gate on a disjoint qubit does not block cancellation
	testOptimize(t,
		[]circuit.Gate{circuit.New(circuit.X, 0), circuit.New(circuit.H, 1), circuit.New(circuit.X, 0)},
		[]circuit.Gate{circuit.New(circuit.H, 1)})
}

func Test_Optimizer_05(t *testing.T) {
	// An intervening gate on a shared qubit blocks cancellation
	input := []circuit.Gate{circuit.New(circuit.X, 0), circuit.New(circuit.CNOT, 0, 1), circuit.New(circuit.X, 0)}
	testOptimize(t, input, input)
}

func Test_Optimizer_06(t *testing.T) {
	// CNOTs with swapped operands are distinct
	input := []circuit.Gate{circuit.New(circuit.CNOT, 0, 1), circuit.New(circuit.CNOT, 1, 0)}
	testOptimize(t, input, input)
}

func Test_Optimizer_07(t *testing.T) {
	// Cascading: removing the inner pair exposes the outer pair
	testOptimize(t,
		[]circuit.Gate{
			circuit.New(circuit.H, 0),
			circuit.New(circuit.X, 0),
			circuit.New(circuit.X, 0),
			circuit.New(circuit.H, 0),
		},
		nil)
}

// Rotations

func Test_Optimizer_10(t *testing.T) {
	// Opposite rotations net to the identity
	testOptimize(t,
		[]circuit.Gate{
			circuit.NewRotation(circuit.CR, 0.5, 0, 1),
			circuit.NewRotation(circuit.CR, -0.5, 0, 1),
		},
		nil)
}

func Test_Optimizer_11(t *testing.T) {
	// Same-kind rotations merge
	testOptimize(t,
		[]circuit.Gate{
			circuit.NewRotation(circuit.Rz, 0.25, 0),
			circuit.NewRotation(circuit.Rz, 0.5, 0),
		},
		[]circuit.Gate{circuit.NewRotation(circuit.Rz, 0.75, 0)})
}

func Test_Optimizer_12(t *testing.T) {
	// A full turn disappears
	testOptimize(t,
		[]circuit.Gate{
			circuit.NewRotation(circuit.Rx, math.Pi, 0),
			circuit.NewRotation(circuit.Rx, math.Pi, 0),
		},
		nil)
}

func Test_Optimizer_13(t *testing.T) {
	// Different axes never merge
	input := []circuit.Gate{
		circuit.NewRotation(circuit.Rx, 0.5, 0),
		circuit.NewRotation(circuit.Rz, 0.5, 0),
	}
	testOptimize(t, input, input)
}

// Markers

func Test_Optimizer_20(t *testing.T) {
	// No rewrite spans a loop boundary
	program := circuit.NewProgram(1)
	program.AppendGates(circuit.New(circuit.X, 0))
	program.Append(circuit.BeginLoop{Iterations: 2})
	program.AppendGates(circuit.New(circuit.X, 0))
	//
	if optimized := Optimize(program); optimized.GateCount() != 2 {
		t.Fatalf("expected 2 gates, got %d", optimized.GateCount())
	}
}

// Configuration

func Test_Optimizer_30(t *testing.T) {
	program := circuit.NewProgram(1)
	program.AppendGates(circuit.New(circuit.H, 0), circuit.New(circuit.H, 0))
	//
	config := Config{CancelInverses: false, MergeRotations: true}
	//
	if optimized := OptimizeWith(program, config); optimized.GateCount() != 2 {
		t.Fatalf("expected pair to survive, got %d gates", optimized.GateCount())
	}
}

func Test_Optimizer_31(t *testing.T) {
	program := circuit.NewProgram(1)
	program.AppendGates(
		circuit.NewRotation(circuit.Rz, 0.5, 0),
		circuit.NewRotation(circuit.Rz, 0.5, 0))
	//
	config := Config{CancelInverses: true, MergeRotations: false}
	//
	if optimized := OptimizeWith(program, config); optimized.GateCount() != 2 {
		t.Fatalf("expected rotations to survive, got %d gates", optimized.GateCount())
	}
}

// Semantics

func Test_Optimizer_40(t *testing.T) {
	testOptimizePreserves(t, []circuit.Gate{
		circuit.New(circuit.H, 0),
		circuit.New(circuit.CNOT, 0, 1),
		circuit.New(circuit.T, 1),
		circuit.New(circuit.Tdag, 1),
		circuit.New(circuit.CNOT, 0, 1),
		circuit.NewRotation(circuit.CR, 0.7, 0, 2),
		circuit.NewRotation(circuit.CR, 0.3, 0, 2),
		circuit.New(circuit.X, 2),
	})
}

func Test_Optimizer_41(t *testing.T) {
	testOptimizePreserves(t, []circuit.Gate{
		circuit.New(circuit.H, 0),
		circuit.New(circuit.H, 1),
		circuit.New(circuit.Toffoli, 0, 1, 2),
		circuit.New(circuit.S, 2),
		circuit.New(circuit.Sdag, 2),
		circuit.New(circuit.Toffoli, 0, 1, 2),
	})
}

// ===================================================================
// Helpers
// ===================================================================

func testOptimize(t *testing.T, input []circuit.Gate, expected []circuit.Gate) {
	program := circuit.NewProgram(4)
	program.AppendGates(input...)
	//
	optimized := Optimize(program)
	//
	if optimized.GateCount() != len(expected) {
		t.Fatalf("expected %d gates, got %d", len(expected), optimized.GateCount())
	}
	//
	for i, instruction := range optimized.Instructions {
		if actual := instruction.(circuit.Gate); actual.String() != expected[i].String() {
			t.Fatalf("gate %d: expected %s, got %s", i, expected[i], actual)
		}
	}
}

func testOptimizePreserves(t *testing.T, gates []circuit.Gate) {
	program := circuit.NewProgram(3)
	program.AppendGates(gates...)
	//
	original := quantum.Run(program)
	optimized := quantum.Run(Optimize(program))
	//
	for i := range original.Amplitudes {
		if cmplx.Abs(original.Amplitudes[i]-optimized.Amplitudes[i]) > 1e-9 {
			t.Fatalf("amplitude %d differs: %v vs %v", i, original.Amplitudes[i], optimized.Amplitudes[i])
		}
	}
}
