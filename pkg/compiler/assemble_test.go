package compiler

import (
	"testing"

	"github.com/consensys/go-grover/pkg/circuit"
)

func Test_Iterations_01(t *testing.T) {
	testIterations(t, 2, 1)
}

func Test_Iterations_02(t *testing.T) {
	testIterations(t, 3, 2)
}

func Test_Iterations_03(t *testing.T) {
	testIterations(t, 4, 3)
}

func Test_Iterations_04(t *testing.T) {
	testIterations(t, 5, 4)
}

func Test_Assemble_01(t *testing.T) {
	// Superposition layer, loop marker, body, measurement epilogue
	oracle := []circuit.Gate{circuit.New(circuit.X, 2)}
	diffusion := []circuit.Gate{circuit.New(circuit.X, 0)}
	//
	program, meta, err := Assemble(oracle, diffusion, 2, 3, AncillaToffoli, ReuseGates)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if meta.Iterations != 2 || meta.QubitCount != 3 || meta.DataQubits != 3 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	//
	instructions := program.Instructions
	// Three H gates, loop, two body gates, two measurement markers
	if len(instructions) != 8 {
		t.Fatalf("expected 8 instructions, got %d", len(instructions))
	}
	//
	for i := 0; i < 3; i++ {
		if gate, ok := instructions[i].(circuit.Gate); !ok || gate.Kind != circuit.H {
			t.Fatalf("instruction %d: expected H, got %s", i, instructions[i])
		}
	}
	//
	if loop, ok := instructions[3].(circuit.BeginLoop); !ok || loop.Iterations != 2 {
		t.Fatalf("instruction 3: expected loop marker, got %s", instructions[3])
	}
	//
	if _, ok := instructions[6].(circuit.BeginMeasurement); !ok {
		t.Fatalf("instruction 6: expected measurement marker, got %s", instructions[6])
	}
	//
	if _, ok := instructions[7].(circuit.MeasureAll); !ok {
		t.Fatalf("instruction 7: expected measure_all, got %s", instructions[7])
	}
}

func Test_Assemble_02(t *testing.T) {
	// Ancilla modes reserve room for the widest chained lowering
	program, meta, err := Assemble(nil, nil, 4, 5, AncillaToffoli, ReuseGates)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if meta.QubitCount != 7 || program.Qubits != 7 {
		t.Fatalf("expected 7 qubits, got %d", meta.QubitCount)
	}
}

func Test_Assemble_03(t *testing.T) {
	// Ancilla-free modes take the oracle's own width
	_, meta, err := Assemble(nil, nil, 4, 5, ControlledRotation, ReuseGates)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if meta.QubitCount != 5 {
		t.Fatalf("expected 5 qubits, got %d", meta.QubitCount)
	}
}

func Test_Assemble_04(t *testing.T) {
	// Out-of-bounds oracle gates are rejected
	oracle := []circuit.Gate{circuit.New(circuit.X, 9)}
	//
	if _, _, err := Assemble(oracle, nil, 2, 3, AncillaToffoli, ReuseGates); err == nil {
		t.Fatal("expected validation failure")
	}
}

// Modes

func Test_Mode_01(t *testing.T) {
	for _, mode := range []Mode{AncillaToffoli, AncillaNoToffoli, ControlledRotation, AncillaFreeFast} {
		parsed, err := ParseMode(mode.String())
		//
		if err != nil || parsed != mode {
			t.Fatalf("mode \"%s\" failed to round trip", mode)
		}
	}
}

func Test_Mode_02(t *testing.T) {
	if _, err := ParseMode("telepathy"); err == nil {
		t.Fatal("expected unknown mode to be rejected")
	}
}

func Test_Mode_03(t *testing.T) {
	for _, strategy := range []Strategy{ReuseGates, ReuseQubits} {
		parsed, err := ParseStrategy(strategy.String())
		//
		if err != nil || parsed != strategy {
			t.Fatalf("strategy \"%s\" failed to round trip", strategy)
		}
	}
}

func Test_Mode_04(t *testing.T) {
	if AncillaToffoli.UsesToffoli() != true || AncillaNoToffoli.UsesToffoli() != false {
		t.Fatal("unexpected toffoli usage")
	}
	//
	if !AncillaToffoli.UsesAncillas() || !AncillaNoToffoli.UsesAncillas() {
		t.Fatal("chained modes consume ancillas")
	}
	//
	if ControlledRotation.UsesAncillas() || AncillaFreeFast.UsesAncillas() {
		t.Fatal("rotation modes are ancilla free")
	}
}

// ===================================================================
// Helpers
// ===================================================================

func testIterations(t *testing.T, dataQubits int, expected int) {
	if actual := Iterations(dataQubits); actual != expected {
		t.Fatalf("%d data qubits: expected %d iterations, got %d", dataQubits, expected, actual)
	}
}
