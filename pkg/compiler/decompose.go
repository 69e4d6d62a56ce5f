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

import (
	"math"
	"math/bits"
	"slices"

	"github.com/consensys/go-grover/pkg/circuit"
)

// ControlSet is an ordered set of control qubit indices for a multi-controlled
// operation.  Control qubits must be pairwise distinct, and distinct from the
// target.
type ControlSet []int

// validate checks the control set invariants against a given target, panicking
// on violation since callers construct control sets internally.
func (cs ControlSet) validate(target int) {
	for i, c := range cs {
		if c == target || slices.Contains(cs[i+1:], c) {
			panic("malformed control set")
		}
	}
}

// MultiControlledX lowers an X gate controlled on every qubit in the given
// control set into elementary gates, using the given mode.  Ancilla-consuming
// modes draw ancillas from consecutive indices starting at ancilla; the number
// actually consumed is returned alongside the gates.  Every qubit other than
// the target is restored to its input state.
func MultiControlledX(controls ControlSet, target int, ancilla int, mode Mode) ([]circuit.Gate, int, error) {
	controls.validate(target)
	//
	k := len(controls)
	if k == 0 {
		return nil, 0, &UnsupportedModeError{mode, 0}
	} else if bound := mode.MaxControls(); bound != 0 && k > bound {
		return nil, 0, &UnsupportedModeError{mode, k}
	}
	//
	switch mode {
	case AncillaToffoli:
		gates, used := toffoliChain(controls, target, ancilla, false)
		return gates, used, nil
	case AncillaNoToffoli:
		gates, used := toffoliChain(controls, target, ancilla, true)
		return gates, used, nil
	case ControlledRotation:
		return crotChain(controls, target, math.Pi), 0, nil
	case AncillaFreeFast:
		return grayChain(controls, target), 0, nil
	}
	//
	panic("unreachable")
}

// toffoliChain pairs controls up through a chain of ancilla targets, combining
// the two survivors into the real target and finally uncomputing every
// intermediate conjunction in reverse.  Consumes k-2 ancillas for k > 2
// controls, none otherwise.
func toffoliChain(controls ControlSet, target int, ancilla int, expand bool) ([]circuit.Gate, int) {
	if len(controls) == 1 {
		return []circuit.Gate{circuit.New(circuit.CNOT, controls[0], target)}, 0
	}
	// Reduce pairs of pending controls into ancillas until only one pair
	// remains, which lands on the real target.
	pending := slices.Clone([]int(controls))
	used := 0
	//
	var steps [][]circuit.Gate
	//
	for len(pending) > 0 {
		c1, c2 := pending[0], pending[1]
		//
		if len(pending) == 2 {
			steps = append(steps, andGates(c1, c2, target, expand))
			pending = nil
		} else {
			t := ancilla + used
			used++
			steps = append(steps, andGates(c1, c2, t, expand))
			pending = append(pending[2:], t)
		}
	}
	// Mirror every step except the final combine to restore the ancillas.
	var gates, scratch []circuit.Gate
	//
	for i, step := range steps {
		gates = append(gates, step...)
		//
		if i+1 != len(steps) {
			scratch = append(scratch, step...)
		}
	}
	//
	return append(gates, circuit.Inverse(scratch)...), used
}

// andGates emits target ^= c1 & c2, either as a native Toffoli or expanded
// into one- and two-qubit gates.
func andGates(c1 int, c2 int, target int, expand bool) []circuit.Gate {
	if !expand {
		return []circuit.Gate{circuit.New(circuit.Toffoli, c1, c2, target)}
	}
	// Standard 15-gate Toffoli decomposition over H, T and CNOT.
	return []circuit.Gate{
		circuit.New(circuit.H, target),
		circuit.New(circuit.CNOT, c2, target),
		circuit.New(circuit.Tdag, target),
		circuit.New(circuit.CNOT, c1, target),
		circuit.New(circuit.T, target),
		circuit.New(circuit.CNOT, c2, target),
		circuit.New(circuit.Tdag, target),
		circuit.New(circuit.CNOT, c1, target),
		circuit.New(circuit.T, c2),
		circuit.New(circuit.T, target),
		circuit.New(circuit.H, target),
		circuit.New(circuit.CNOT, c1, c2),
		circuit.New(circuit.T, c1),
		circuit.New(circuit.Tdag, c2),
		circuit.New(circuit.CNOT, c1, c2),
	}
}

// crotChain lowers a multi-controlled phase-angle X using the Barenco
// recursion.  A k-controlled rotation by theta splits into single-controlled
// rotations by theta/2 and two (k-1)-controlled X gates, with a final
// (k-1)-controlled rotation by theta/2 on the target.
func crotChain(controls ControlSet, target int, angle float64) []circuit.Gate {
	if len(controls) == 1 {
		// Controlled X^(angle/pi) as H . CR(angle) . H
		return []circuit.Gate{
			circuit.New(circuit.H, target),
			circuit.NewRotation(circuit.CR, angle, controls[0], target),
			circuit.New(circuit.H, target),
		}
	}
	//
	last := controls[len(controls)-1]
	rest := controls[:len(controls)-1]
	//
	var gates []circuit.Gate
	//
	gates = append(gates, crotChain(ControlSet{last}, target, angle/2)...)
	gates = append(gates, crotChain(rest, last, math.Pi)...)
	gates = append(gates, crotChain(ControlSet{last}, target, -angle/2)...)
	gates = append(gates, crotChain(rest, last, math.Pi)...)
	gates = append(gates, crotChain(rest, target, angle/2)...)
	//
	return gates
}

// grayChain lowers a multi-controlled X by walking the Gray code over the
// control set, applying a controlled rotation of alternating sign at each
// step.  The phases telescope so that only the all-ones control assignment
// accumulates a net pi.
func grayChain(controls ControlSet, target int) []circuit.Gate {
	n := len(controls)
	if n == 1 {
		return []circuit.Gate{circuit.New(circuit.CNOT, controls[0], target)}
	}
	//
	theta := math.Pi / float64(uint(1)<<(n-1))
	gates := []circuit.Gate{circuit.New(circuit.H, target)}
	prev := uint(0)
	//
	for i := 1; i < (1 << n); i++ {
		cur := uint(i ^ (i >> 1))
		//
		if i == 1 {
			gates = append(gates, circuit.NewRotation(circuit.CR, theta, controls[0], target))
			prev = cur
			//
			continue
		}
		// Fold the flipped control into the highest set control, so the
		// rotation control carries the parity of the whole subset.
		flipped := bits.TrailingZeros(cur ^ prev)
		pivot := bits.Len(cur) - 1
		//
		if flipped == pivot {
			pivot = bits.Len(prev) - 1
		}
		//
		lo, hi := min(flipped, pivot), max(flipped, pivot)
		gates = append(gates, circuit.New(circuit.CNOT, controls[lo], controls[hi]))
		//
		angle := theta
		if bits.OnesCount(cur)%2 == 0 {
			angle = -theta
		}
		//
		gates = append(gates, circuit.NewRotation(circuit.CR, angle, controls[hi], target))
		prev = cur
	}
	//
	return append(gates, circuit.New(circuit.H, target))
}
