package compiler

import (
	"errors"
	"math"
	"testing"

	"github.com/consensys/go-grover/pkg/boolexpr"
	"github.com/consensys/go-grover/pkg/quantum"
)

func Test_Oracle_01(t *testing.T) {
	testOracle(t, "a")
}

func Test_Oracle_02(t *testing.T) {
	testOracle(t, "not a")
}

func Test_Oracle_03(t *testing.T) {
	testOracle(t, "a and b")
}

func Test_Oracle_04(t *testing.T) {
	testOracle(t, "a or b")
}

func Test_Oracle_05(t *testing.T) {
	testOracle(t, "a and not b")
}

func Test_Oracle_06(t *testing.T) {
	testOracle(t, "not a or not b")
}

func Test_Oracle_07(t *testing.T) {
	testOracle(t, "not (a and b)")
}

func Test_Oracle_08(t *testing.T) {
	testOracle(t, "(a or b) and c")
}

func Test_Oracle_09(t *testing.T) {
	testOracle(t, "a and b and c")
}

func Test_Oracle_10(t *testing.T) {
	testOracle(t, "(a and b) or (c and d)")
}

func Test_Oracle_11(t *testing.T) {
	testOracle(t, "(a or b) and (not a or not b)")
}

func Test_Oracle_12(t *testing.T) {
	testOracle(t, "(a or b) and (b or c) and (not a or not c)")
}

func Test_Oracle_13(t *testing.T) {
	// Shared subtrees evaluate once under gate reuse
	testOracle(t, "(a and b) or ((a and b) and c)")
}

func Test_Oracle_14(t *testing.T) {
	testOracle(t, "a and not a")
}

func Test_Oracle_15(t *testing.T) {
	testOracle(t, "a or not a or b")
}

// Budgets

func Test_Oracle_20(t *testing.T) {
	testBudget(t, "(a and b) or (c and d)", 1, true)
}

func Test_Oracle_21(t *testing.T) {
	testBudget(t, "(a and b) or (c and d)", 2, false)
}

func Test_Oracle_22(t *testing.T) {
	// Zero means unlimited
	testBudget(t, "(a and b) or (c and d)", 0, false)
}

// ===================================================================
// Helpers
// ===================================================================

// Check a synthesised oracle against the formula's truth table on every basis
// state: the phase flips exactly when the assignment satisfies the formula and
// the output qubit is set, and no basis state moves.
func testOracle(t *testing.T, formula string) {
	for _, strategy := range []Strategy{ReuseGates, ReuseQubits} {
		for _, mode := range []Mode{AncillaToffoli, AncillaNoToffoli, ControlledRotation, AncillaFreeFast} {
			testOracleWith(t, formula, strategy, mode)
		}
	}
}

func testOracleWith(t *testing.T, formula string, strategy Strategy, mode Mode) {
	tree, root, errs := boolexpr.Parse(formula)
	if len(errs) != 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Error())
	}
	//
	root, err := boolexpr.Normalize(tree, root)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	symbols := tree.SymbolsOf(root)
	//
	gates, lastQubit, err := SynthesizeOracle(tree, root, symbols, strategy, mode, 0)
	if err != nil {
		t.Fatalf("strategy \"%s\", mode \"%s\": unexpected error: %s", strategy, mode, err)
	}
	//
	n := len(symbols)
	qubits := lastQubit + 1
	//
	for input := 0; input < (1 << (n + 1)); input++ {
		state := quantum.NewBasisState(qubits, input)
		//
		for _, g := range gates {
			state.Apply(g)
		}
		// Reconstruct the assignment encoded by this basis state.
		assignment := make(map[string]bool)
		//
		for i, symbol := range symbols {
			assignment[symbol] = input&(1<<i) != 0
		}
		//
		expected := 1.0
		if tree.Eval(root, assignment) && input&(1<<n) != 0 {
			expected = -1.0
		}
		//
		if actual := real(state.Amplitudes[input]); math.Abs(actual-expected) > 1e-6 {
			t.Fatalf("strategy \"%s\", mode \"%s\", formula \"%s\", input %b: expected phase %f, got %f",
				strategy, mode, formula, input, expected, actual)
		}
	}
}

func testBudget(t *testing.T, formula string, budget int, fails bool) {
	tree, root, errs := boolexpr.Parse(formula)
	if len(errs) != 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Error())
	}
	//
	root, err := boolexpr.Normalize(tree, root)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	symbols := tree.SymbolsOf(root)
	//
	var exhausted *ResourceExhaustedError
	//
	_, _, err = SynthesizeOracle(tree, root, symbols, ReuseQubits, AncillaToffoli, budget)
	//
	if fails && !errors.As(err, &exhausted) {
		t.Fatalf("expected resource exhaustion with budget %d, got %v", budget, err)
	} else if !fails && err != nil {
		t.Fatalf("unexpected error with budget %d: %s", budget, err)
	}
}
