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
package circuit

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies an elementary gate.
type Kind uint8

const (
	// H is the Hadamard gate.
	H Kind = iota
	// X is the Pauli X (bit flip) gate.
	X
	// Y is the Pauli Y gate.
	Y
	// Z is the Pauli Z (phase flip) gate.
	Z
	// S is the phase gate (square root of Z).
	S
	// Sdag is the inverse phase gate.
	Sdag
	// T is the pi/8 gate (fourth root of Z).
	T
	// Tdag is the inverse pi/8 gate.
	Tdag
	// Rx is a rotation about the X axis by a given angle.
	Rx
	// Ry is a rotation about the Y axis by a given angle.
	Ry
	// Rz is a rotation about the Z axis by a given angle.
	Rz
	// CR is a controlled phase rotation by a given angle.
	CR
	// CNOT is the controlled X gate.
	CNOT
	// CZ is the controlled Z gate.
	CZ
	// Toffoli is the doubly-controlled X gate.
	Toffoli
	// Swap exchanges the state of two qubits.
	Swap
)

// String returns the mnemonic used for this kind in program text.
func (k Kind) String() string {
	switch k {
	case H:
		return "H"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	case S:
		return "S"
	case Sdag:
		return "Sdag"
	case T:
		return "T"
	case Tdag:
		return "Tdag"
	case Rx:
		return "Rx"
	case Ry:
		return "Ry"
	case Rz:
		return "Rz"
	case CR:
		return "CR"
	case CNOT:
		return "CNOT"
	case CZ:
		return "CZ"
	case Toffoli:
		return "Toffoli"
	case Swap:
		return "SWAP"
	}
	//
	panic("unreachable")
}

// Arity returns the number of qubit operands this kind requires.
func (k Kind) Arity() int {
	switch k {
	case CR, CNOT, CZ, Swap:
		return 2
	case Toffoli:
		return 3
	}
	//
	return 1
}

// HasAngle determines whether this kind carries a rotation angle.
func (k Kind) HasAngle() bool {
	switch k {
	case Rx, Ry, Rz, CR:
		return true
	}
	//
	return false
}

// SelfInverse determines whether a gate of this kind is its own inverse.
func (k Kind) SelfInverse() bool {
	switch k {
	case H, X, Y, Z, CNOT, CZ, Toffoli, Swap:
		return true
	}
	//
	return false
}

// Gate is a single elementary operation applied to one or more qubits.  Gates
// are immutable once emitted.
type Gate struct {
	// Kind of this gate.
	Kind Kind
	// Qubit operands, in operational order (controls before targets).
	Qubits []int
	// Rotation angle in radians, for kinds which carry one.
	Angle float64
}

// New constructs an angle-free gate of a given kind, checking the operand
// count against its arity.
func New(kind Kind, qubits ...int) Gate {
	if kind.HasAngle() {
		panic(fmt.Sprintf("gate %s requires an angle", kind))
	} else if len(qubits) != kind.Arity() {
		panic(fmt.Sprintf("gate %s expects %d operands, got %d", kind, kind.Arity(), len(qubits)))
	}
	//
	return Gate{kind, qubits, 0}
}

// NewRotation constructs a rotation gate of a given kind and angle.
func NewRotation(kind Kind, angle float64, qubits ...int) Gate {
	if !kind.HasAngle() {
		panic(fmt.Sprintf("gate %s does not carry an angle", kind))
	} else if len(qubits) != kind.Arity() {
		panic(fmt.Sprintf("gate %s expects %d operands, got %d", kind, kind.Arity(), len(qubits)))
	}
	//
	return Gate{kind, qubits, angle}
}

// Inverse returns the gate implementing the inverse operation of this gate.
func (g Gate) Inverse() Gate {
	switch {
	case g.Kind.SelfInverse():
		return g
	case g.Kind.HasAngle():
		return Gate{g.Kind, g.Qubits, -g.Angle}
	}
	//
	switch g.Kind {
	case S:
		return Gate{Sdag, g.Qubits, 0}
	case Sdag:
		return Gate{S, g.Qubits, 0}
	case T:
		return Gate{Tdag, g.Qubits, 0}
	case Tdag:
		return Gate{T, g.Qubits, 0}
	}
	//
	panic("unreachable")
}

// On determines whether a given qubit is an operand of this gate.
func (g Gate) On(qubit int) bool {
	for _, q := range g.Qubits {
		if q == qubit {
			return true
		}
	}
	//
	return false
}

// String renders this gate as a single line of program text.
func (g Gate) String() string {
	var builder strings.Builder
	//
	builder.WriteString(g.Kind.String())
	builder.WriteString(" ")
	//
	for i, q := range g.Qubits {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		fmt.Fprintf(&builder, "q[%d]", q)
	}
	//
	if g.Kind.HasAngle() {
		builder.WriteString(", ")
		builder.WriteString(strconv.FormatFloat(g.Angle, 'g', -1, 64))
	}
	//
	return builder.String()
}

// Inverse constructs the exact inverse of a gate sequence: the gates in
// reverse order, each individually inverted.  Appending Inverse(ops) after ops
// yields the identity, which is how ancilla qubits are returned to their prior
// state after a computation.
func Inverse(ops []Gate) []Gate {
	inverse := make([]Gate, len(ops))
	//
	for i, g := range ops {
		inverse[len(ops)-1-i] = g.Inverse()
	}
	//
	return inverse
}
