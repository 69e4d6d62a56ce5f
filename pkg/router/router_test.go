package router

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/consensys/go-grover/pkg/circuit"
	"github.com/consensys/go-grover/pkg/compiler"
	"github.com/consensys/go-grover/pkg/quantum"
)

func Test_Router_01(t *testing.T) {
	// Gates already on the hub pass through untouched
	program := circuit.NewProgram(3)
	program.AppendGates(circuit.New(circuit.CNOT, 0, 1))
	//
	routed := testRoute(t, program, 0)
	//
	if routed.GateCount() != 1 {
		t.Fatalf("expected 1 gate, got %d", routed.GateCount())
	}
}

func Test_Router_02(t *testing.T) {
	// A gate avoiding the hub forces a swap
	program := circuit.NewProgram(3)
	program.AppendGates(circuit.New(circuit.CNOT, 1, 2))
	//
	testRoute(t, program, 0)
}

func Test_Router_03(t *testing.T) {
	program := circuit.NewProgram(4)
	program.AppendGates(
		circuit.New(circuit.H, 0),
		circuit.New(circuit.CNOT, 0, 1),
		circuit.New(circuit.CNOT, 2, 3),
		circuit.New(circuit.CNOT, 1, 3),
		circuit.New(circuit.H, 3))
	//
	testRoute(t, program, 1)
}

func Test_Router_04(t *testing.T) {
	// Placement is restored at structural markers, keeping loop bodies
	// permutation neutral
	program := circuit.NewProgram(3)
	program.AppendGates(circuit.New(circuit.H, 1), circuit.New(circuit.H, 2))
	program.Append(circuit.BeginLoop{Iterations: 3})
	program.AppendGates(circuit.New(circuit.CNOT, 1, 2), circuit.New(circuit.X, 1))
	program.Append(circuit.BeginMeasurement{}, circuit.MeasureAll{})
	//
	testRoute(t, program, 0)
}

func Test_Router_05(t *testing.T) {
	// Rotations route like any other two-qubit gate
	program := circuit.NewProgram(3)
	program.AppendGates(
		circuit.New(circuit.H, 1),
		circuit.NewRotation(circuit.CR, 0.5, 1, 2),
		circuit.New(circuit.Swap, 1, 2))
	//
	testRoute(t, program, 0)
}

// Errors

func Test_Router_10(t *testing.T) {
	program := circuit.NewProgram(3)
	//
	var incompatible *IncompatibleModeError
	//
	if _, err := Route(program, compiler.AncillaToffoli, 0); !errors.As(err, &incompatible) {
		t.Fatalf("expected incompatible mode error, got %v", err)
	}
}

func Test_Router_11(t *testing.T) {
	// Three-qubit gates are rejected regardless of the claimed mode
	program := circuit.NewProgram(3)
	program.AppendGates(circuit.New(circuit.Toffoli, 0, 1, 2))
	//
	var incompatible *IncompatibleModeError
	//
	if _, err := Route(program, compiler.ControlledRotation, 0); !errors.As(err, &incompatible) {
		t.Fatalf("expected incompatible mode error, got %v", err)
	}
}

func Test_Router_12(t *testing.T) {
	program := circuit.NewProgram(3)
	//
	if _, err := Route(program, compiler.ControlledRotation, 5); err == nil {
		t.Fatal("expected out-of-range hub to be rejected")
	}
}

// ===================================================================
// Helpers
// ===================================================================

// Route a program and check both the star property (every two-qubit gate
// touches the hub) and semantic equivalence with the original.
func testRoute(t *testing.T, program *circuit.Program, hub int) *circuit.Program {
	routed, err := Route(program, compiler.ControlledRotation, hub)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	for _, instruction := range routed.Instructions {
		gate, ok := instruction.(circuit.Gate)
		//
		if ok && len(gate.Qubits) == 2 && !gate.On(hub) {
			t.Fatalf("gate %s avoids hub %d", gate, hub)
		}
	}
	//
	original := quantum.Run(program)
	transformed := quantum.Run(routed)
	//
	for i := range original.Amplitudes {
		if cmplx.Abs(original.Amplitudes[i]-transformed.Amplitudes[i]) > 1e-9 {
			t.Fatalf("amplitude %d differs after routing: %v vs %v",
				i, original.Amplitudes[i], transformed.Amplitudes[i])
		}
	}
	//
	return routed
}
