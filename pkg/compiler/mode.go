// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package compiler

import "fmt"

// Mode determines how a multi-controlled operation is lowered into elementary
// gates, and in particular how many ancilla qubits the lowering consumes.
type Mode uint8

const (
	// AncillaToffoli chains native Toffoli gates through ancilla qubits.
	// O(k) gates and O(k) ancillas for k controls; requires a backend with
	// native three-qubit gate support.
	AncillaToffoli Mode = iota
	// AncillaNoToffoli uses the same chaining, but expands every Toffoli
	// into its two-qubit gate equivalent.  For backends without native
	// three-qubit gates.
	AncillaNoToffoli
	// ControlledRotation recursively splits a k-controlled operation into
	// (k-1)-controlled operations.  No ancillas, but gate count grows as
	// 3^k, hence only usable for small k.
	ControlledRotation
	// AncillaFreeFast accumulates controlled phase rotations along a Gray
	// code walk of the control set.  No ancillas, gate count grows as 2^k.
	AncillaFreeFast
)

// String returns the user-facing spelling of this mode.
func (m Mode) String() string {
	switch m {
	case AncillaToffoli:
		return "normal"
	case AncillaNoToffoli:
		return "no toffoli"
	case ControlledRotation:
		return "crot"
	case AncillaFreeFast:
		return "fancy cnot"
	}
	//
	panic("unreachable")
}

// ParseMode maps a user-facing mode spelling back to its mode.
func ParseMode(name string) (Mode, error) {
	for _, m := range []Mode{AncillaToffoli, AncillaNoToffoli, ControlledRotation, AncillaFreeFast} {
		if m.String() == name {
			return m, nil
		}
	}
	//
	return 0, fmt.Errorf("unknown decomposition mode \"%s\"", name)
}

// UsesToffoli determines whether this mode emits three-qubit gates.
func (m Mode) UsesToffoli() bool {
	return m == AncillaToffoli
}

// UsesAncillas determines whether this mode consumes ancilla qubits when
// lowering multi-controlled operations.
func (m Mode) UsesAncillas() bool {
	return m == AncillaToffoli || m == AncillaNoToffoli
}

// MaxControls returns the largest control set this mode can safely lower, or
// zero when unbounded.  The ancilla-free modes blow up exponentially in the
// control count, so they are capped where the gate count becomes absurd.
func (m Mode) MaxControls() int {
	switch m {
	case ControlledRotation:
		return 8
	case AncillaFreeFast:
		return 12
	}
	//
	return 0
}

// Strategy determines how oracle synthesis allocates ancilla qubits across
// sub-expression evaluation.
type Strategy uint8

const (
	// ReuseGates allocates a fresh ancilla per internal expression node and
	// uncomputes everything once at the end.  More qubits, fewer gates, and
	// structurally identical subtrees are evaluated only once.
	ReuseGates Strategy = iota
	// ReuseQubits threads a small ancilla pool through the recursion,
	// uncomputing each subtree as soon as its parent has consumed it.
	// Fewer qubits, more gates.
	ReuseQubits
)

// String returns the user-facing spelling of this strategy.
func (s Strategy) String() string {
	switch s {
	case ReuseGates:
		return "reuse gates"
	case ReuseQubits:
		return "reuse qubits"
	}
	//
	panic("unreachable")
}

// ParseStrategy maps a user-facing strategy spelling back to its strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{ReuseGates, ReuseQubits} {
		if s.String() == name {
			return s, nil
		}
	}
	//
	return 0, fmt.Errorf("unknown SAT strategy \"%s\"", name)
}
