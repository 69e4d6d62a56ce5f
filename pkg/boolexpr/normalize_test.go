package boolexpr

import (
	"errors"
	"testing"
)

func Test_Normalize_01(t *testing.T) {
	testNormalize(t, "a", "a")
}

func Test_Normalize_02(t *testing.T) {
	testNormalize(t, "not not a", "a")
}

func Test_Normalize_03(t *testing.T) {
	testNormalize(t, "not not not a", "(not a)")
}

func Test_Normalize_04(t *testing.T) {
	testNormalize(t, "a and a", "a")
}

func Test_Normalize_05(t *testing.T) {
	testNormalize(t, "a and true", "a")
}

func Test_Normalize_06(t *testing.T) {
	testNormalize(t, "a or false", "a")
}

func Test_Normalize_07(t *testing.T) {
	testNormalize(t, "a or (b or c)", "(a or (b or c))")
}

func Test_Normalize_08(t *testing.T) {
	// Flatten, then rebalance
	testNormalize(t, "a and b and c and d", "((a and b) and (c and d))")
}

func Test_Normalize_09(t *testing.T) {
	testNormalize(t, "a and (b and (c and d))", "((a and b) and (c and d))")
}

func Test_Normalize_10(t *testing.T) {
	testNormalize(t, "(a or b) and not not c", "((a or b) and c)")
}

func Test_Normalize_11(t *testing.T) {
	testNormalize(t, "not (true and a)", "(not a)")
}

func Test_Normalize_12(t *testing.T) {
	testNormalize(t, "a and b and a", "(a and b)")
}

func Test_Normalize_13(t *testing.T) {
	testNormalize(t, "(a or b) and (a or b)", "(a or b)")
}

func Test_Normalize_14(t *testing.T) {
	// Negation is not involutive across distinct subtrees
	testNormalize(t, "not (a and b)", "(not (a and b))")
}

func Test_Normalize_15(t *testing.T) {
	testNormalize(t, "a or b or c or d or e", "((a or b) or (c or (d or e)))")
}

// Constants

func Test_Normalize_20(t *testing.T) {
	testNormalizeConstant(t, "true")
}

func Test_Normalize_21(t *testing.T) {
	testNormalizeConstant(t, "a and false")
}

func Test_Normalize_22(t *testing.T) {
	testNormalizeConstant(t, "a or true")
}

func Test_Normalize_23(t *testing.T) {
	testNormalizeConstant(t, "not 1 or true")
}

// Semantics preservation

func Test_Normalize_30(t *testing.T) {
	testNormalizePreserves(t, "a and b or not c")
}

func Test_Normalize_31(t *testing.T) {
	testNormalizePreserves(t, "(a or b) and (b or not c) and (not a or c)")
}

func Test_Normalize_32(t *testing.T) {
	testNormalizePreserves(t, "not (a and not (b or a))")
}

// ===================================================================
// Helpers
// ===================================================================

func testNormalize(t *testing.T, input string, expected string) {
	tree, root, errs := Parse(input)
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Error())
	}
	//
	root, err := Normalize(tree, root)
	if err != nil {
		t.Fatalf("unexpected error normalizing \"%s\": %s", input, err)
	}
	//
	if actual := tree.String(root); actual != expected {
		t.Fatalf("normalized \"%s\" to %s, expected %s", input, actual, expected)
	}
}

func testNormalizeConstant(t *testing.T, input string) {
	tree, root, errs := Parse(input)
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Error())
	}
	//
	if _, err := Normalize(tree, root); !errors.Is(err, ErrConstantFormula) {
		t.Fatalf("expected constant formula error for \"%s\", got %v", input, err)
	}
}

func testNormalizePreserves(t *testing.T, input string) {
	tree, root, errs := Parse(input)
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Error())
	}
	//
	normalized, err := Normalize(tree, root)
	if err != nil {
		t.Fatalf("unexpected error normalizing \"%s\": %s", input, err)
	}
	//
	symbols := tree.SymbolsOf(root)
	//
	for n := 0; n < (1 << len(symbols)); n++ {
		assignment := make(map[string]bool)
		//
		for i, symbol := range symbols {
			assignment[symbol] = n&(1<<i) != 0
		}
		//
		if tree.Eval(root, assignment) != tree.Eval(normalized, assignment) {
			t.Fatalf("normalizing \"%s\" changed its value under %v", input, assignment)
		}
	}
}
