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
package quantum

import (
	"math"
	"math/cmplx"
	"strings"

	"github.com/consensys/go-grover/pkg/circuit"
)

// State is a full statevector over a register of qubits.  Basis index bit q
// holds the value of qubit q.
type State struct {
	// Qubits gives the register width.
	Qubits int
	// Amplitudes holds one complex amplitude per basis state.
	Amplitudes []complex128
}

// NewState constructs the all-zeros state over the given register width.
func NewState(qubits int) *State {
	return NewBasisState(qubits, 0)
}

// NewBasisState constructs the computational basis state with the given
// index.
func NewBasisState(qubits int, index int) *State {
	amplitudes := make([]complex128, 1<<qubits)
	amplitudes[index] = 1
	//
	return &State{Qubits: qubits, Amplitudes: amplitudes}
}

// Run executes a program from the all-zeros state, unrolling the
// amplification loop, and returns the final state.  Measurement markers do
// not collapse the state.
func Run(program *circuit.Program) *State {
	state := NewState(program.Qubits)
	instructions := program.Instructions
	//
	for i := 0; i < len(instructions); i++ {
		switch instruction := instructions[i].(type) {
		case circuit.Gate:
			state.Apply(instruction)
		case circuit.BeginLoop:
			// Loop body runs to the next structural marker.
			end := i + 1
			for end < len(instructions) && !circuit.Marker(instructions[end]) {
				end++
			}
			//
			for n := 0; n < instruction.Iterations; n++ {
				for _, body := range instructions[i+1 : end] {
					state.Apply(body.(circuit.Gate))
				}
			}
			//
			i = end - 1
		}
	}
	//
	return state
}

// Apply applies a single gate to the state in place.
func (s *State) Apply(gate circuit.Gate) {
	q := gate.Qubits
	//
	switch gate.Kind {
	case circuit.H:
		h := complex(1/math.Sqrt2, 0)
		s.apply1(q[0], h, h, h, -h)
	case circuit.X:
		s.apply1(q[0], 0, 1, 1, 0)
	case circuit.Y:
		s.apply1(q[0], 0, complex(0, -1), complex(0, 1), 0)
	case circuit.Z:
		s.phase(1<<q[0], -1)
	case circuit.S:
		s.phase(1<<q[0], complex(0, 1))
	case circuit.Sdag:
		s.phase(1<<q[0], complex(0, -1))
	case circuit.T:
		s.phase(1<<q[0], cmplx.Exp(complex(0, math.Pi/4)))
	case circuit.Tdag:
		s.phase(1<<q[0], cmplx.Exp(complex(0, -math.Pi/4)))
	case circuit.Rx:
		c := complex(math.Cos(gate.Angle/2), 0)
		is := complex(0, -math.Sin(gate.Angle/2))
		s.apply1(q[0], c, is, is, c)
	case circuit.Ry:
		c := complex(math.Cos(gate.Angle/2), 0)
		sn := complex(math.Sin(gate.Angle/2), 0)
		s.apply1(q[0], c, -sn, sn, c)
	case circuit.Rz:
		s.apply1(q[0], cmplx.Exp(complex(0, -gate.Angle/2)), 0, 0, cmplx.Exp(complex(0, gate.Angle/2)))
	case circuit.CR:
		s.phase(1<<q[0]|1<<q[1], cmplx.Exp(complex(0, gate.Angle)))
	case circuit.CZ:
		s.phase(1<<q[0]|1<<q[1], -1)
	case circuit.CNOT:
		s.exchange(1<<q[0], q[1])
	case circuit.Toffoli:
		s.exchange(1<<q[0]|1<<q[1], q[2])
	case circuit.Swap:
		s.swap(q[0], q[1])
	default:
		panic("unreachable")
	}
}

// apply1 applies the single-qubit unitary [[a, b], [c, d]] to the given
// qubit.
func (s *State) apply1(qubit int, a, b, c, d complex128) {
	bit := 1 << qubit
	//
	for i := range s.Amplitudes {
		if i&bit == 0 {
			lo, hi := s.Amplitudes[i], s.Amplitudes[i|bit]
			s.Amplitudes[i] = a*lo + b*hi
			s.Amplitudes[i|bit] = c*lo + d*hi
		}
	}
}

// phase multiplies the amplitude of every basis state matching the given bit
// mask by a scalar.
func (s *State) phase(mask int, factor complex128) {
	for i := range s.Amplitudes {
		if i&mask == mask {
			s.Amplitudes[i] *= factor
		}
	}
}

// exchange flips the given target bit on every basis state matching the
// control mask.
func (s *State) exchange(mask int, target int) {
	bit := 1 << target
	//
	for i := range s.Amplitudes {
		if i&mask == mask && i&bit == 0 {
			s.Amplitudes[i], s.Amplitudes[i|bit] = s.Amplitudes[i|bit], s.Amplitudes[i]
		}
	}
}

// swap exchanges the values of two qubits on every basis state.
func (s *State) swap(a int, b int) {
	abit, bbit := 1<<a, 1<<b
	//
	for i := range s.Amplitudes {
		if i&abit != 0 && i&bbit == 0 {
			j := (i &^ abit) | bbit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Probabilities returns the measurement probability of every basis state.
func (s *State) Probabilities() []float64 {
	probabilities := make([]float64, len(s.Amplitudes))
	//
	for i, a := range s.Amplitudes {
		probabilities[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	//
	return probabilities
}

// BitString renders a basis state index with the highest qubit leftmost.
func (s *State) BitString(index int) string {
	var builder strings.Builder
	//
	for q := s.Qubits - 1; q >= 0; q-- {
		if index&(1<<q) != 0 {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	//
	return builder.String()
}
