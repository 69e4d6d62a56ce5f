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
package optimizer

import (
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/consensys/go-grover/pkg/circuit"
)

// angleEps bounds the rotation angle below which a merged rotation is treated
// as the identity.
const angleEps = 1.0e-9

// Config determines which peephole rewrites are applied.
type Config struct {
	// CancelInverses removes adjacent gate pairs which are mutual inverses
	// on identical operands.
	CancelInverses bool
	// MergeRotations folds rotations of the same kind on the same operands
	// into one, dropping those whose net angle is a multiple of 2pi.
	MergeRotations bool
}

// DefaultConfig returns the configuration with every rewrite enabled.
func DefaultConfig() Config {
	return Config{CancelInverses: true, MergeRotations: true}
}

// Optimize applies every peephole rewrite to the given program until none
// fires, returning a fresh program.  The input is never modified.
func Optimize(program *circuit.Program) *circuit.Program {
	return OptimizeWith(program, DefaultConfig())
}

// OptimizeWith is as Optimize, but with an explicit rewrite selection.
// Structural markers act as barriers: no rewrite spans a loop or measurement
// boundary, since the gates either side execute different numbers of times.
func OptimizeWith(program *circuit.Program, config Config) *circuit.Program {
	optimized := circuit.NewProgram(program.Qubits)
	//
	var window []circuit.Gate
	//
	flush := func() {
		optimized.AppendGates(optimizeWindow(window, config)...)
		window = nil
	}
	//
	for _, instruction := range program.Instructions {
		if gate, ok := instruction.(circuit.Gate); ok {
			window = append(window, gate)
		} else {
			flush()
			optimized.Append(instruction)
		}
	}
	//
	flush()
	//
	return optimized
}

// optimizeWindow rewrites a marker-free run of gates to a fixpoint.
func optimizeWindow(gates []circuit.Gate, config Config) []circuit.Gate {
	for changed := true; changed; {
		changed = false
		//
		if config.CancelInverses {
			var c bool
			gates, c = cancelPass(gates)
			changed = changed || c
		}
		//
		if config.MergeRotations {
			var c bool
			gates, c = mergePass(gates)
			changed = changed || c
		}
	}
	//
	return gates
}

// cancelPass removes the first pair of mutually inverse gates separated only
// by gates on disjoint qubits, repeating until no pair remains.
func cancelPass(gates []circuit.Gate) ([]circuit.Gate, bool) {
	changed := false
	//
	for i := 0; i < len(gates); i++ {
		mask := operandMask(gates[i])
		//
		for j := i + 1; j < len(gates); j++ {
			if cancels(gates[i], gates[j]) {
				gates = append(gates[:j], gates[j+1:]...)
				gates = append(gates[:i], gates[i+1:]...)
				changed = true
				i--
				//
				break
			} else if operandMask(gates[j]).IntersectionCardinality(mask) != 0 {
				break
			}
		}
	}
	//
	return gates, changed
}

// mergePass folds runs of same-kind rotations on identical operands into a
// single rotation, dropping any whose net angle vanishes modulo 2pi.
func mergePass(gates []circuit.Gate) ([]circuit.Gate, bool) {
	changed := false
	//
	for i := 0; i < len(gates); i++ {
		if !gates[i].Kind.HasAngle() {
			continue
		}
		//
		mask := operandMask(gates[i])
		//
		for j := i + 1; j < len(gates); j++ {
			if sameRotation(gates[i], gates[j]) {
				gates[i].Angle += gates[j].Angle
				gates = append(gates[:j], gates[j+1:]...)
				changed = true
				//
				if identityAngle(gates[i].Angle) {
					gates = append(gates[:i], gates[i+1:]...)
					i--
				}
				//
				break
			} else if operandMask(gates[j]).IntersectionCardinality(mask) != 0 {
				break
			}
		}
	}
	//
	return gates, changed
}

// cancels checks whether rhs undoes lhs exactly.  Rotations are left to the
// merge pass.
func cancels(lhs circuit.Gate, rhs circuit.Gate) bool {
	if lhs.Kind.HasAngle() || !sameOperands(lhs, rhs) {
		return false
	}
	//
	switch {
	case lhs.Kind.SelfInverse():
		return lhs.Kind == rhs.Kind
	case lhs.Kind == circuit.T:
		return rhs.Kind == circuit.Tdag
	case lhs.Kind == circuit.Tdag:
		return rhs.Kind == circuit.T
	case lhs.Kind == circuit.S:
		return rhs.Kind == circuit.Sdag
	case lhs.Kind == circuit.Sdag:
		return rhs.Kind == circuit.S
	}
	//
	return false
}

func sameRotation(lhs circuit.Gate, rhs circuit.Gate) bool {
	return lhs.Kind == rhs.Kind && rhs.Kind.HasAngle() && sameOperands(lhs, rhs)
}

func sameOperands(lhs circuit.Gate, rhs circuit.Gate) bool {
	if len(lhs.Qubits) != len(rhs.Qubits) {
		return false
	}
	//
	for i := range lhs.Qubits {
		if lhs.Qubits[i] != rhs.Qubits[i] {
			return false
		}
	}
	//
	return true
}

// identityAngle checks whether an angle is a multiple of 2pi.
func identityAngle(angle float64) bool {
	_, frac := math.Modf(angle / (2 * math.Pi))
	return math.Abs(frac) < angleEps || math.Abs(frac) > 1-angleEps
}

func operandMask(gate circuit.Gate) *bitset.BitSet {
	mask := bitset.New(uint(len(gate.Qubits)))
	//
	for _, q := range gate.Qubits {
		mask.Set(uint(q))
	}
	//
	return mask
}
