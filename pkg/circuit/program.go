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
	"strings"
)

// Version identifies the program text dialect produced by this package.
const Version = "1.0"

// Instruction is either a gate or a structural marker within a program.
type Instruction interface {
	fmt.Stringer
	// Marker for the closed set of instruction forms.
	isInstruction()
}

func (g Gate) isInstruction() {}

// BeginLoop marks the start of a block which executes a given number of times.
// The block extends to the next structural marker.
type BeginLoop struct {
	// Number of times the block is executed.
	Iterations int
}

func (l BeginLoop) isInstruction() {}

func (l BeginLoop) String() string {
	return fmt.Sprintf(".grover_loop(%d)", l.Iterations)
}

// BeginMeasurement marks the start of the measurement epilogue.
type BeginMeasurement struct{}

func (m BeginMeasurement) isInstruction() {}

func (m BeginMeasurement) String() string {
	return ".do_measurement"
}

// MeasureAll reads out every qubit of the program.
type MeasureAll struct{}

func (m MeasureAll) isInstruction() {}

func (m MeasureAll) String() string {
	return "measure_all"
}

// Marker determines whether a given instruction is a structural marker rather
// than a gate.
func Marker(instruction Instruction) bool {
	_, ok := instruction.(Gate)
	return !ok
}

// Program is an ordered sequence of instructions over a fixed set of qubits.
// Compilation passes treat programs as immutable, producing a fresh program
// rather than mutating their input.
type Program struct {
	// Total number of qubits addressed by this program.
	Qubits int
	// Instructions in program order.
	Instructions []Instruction
}

// NewProgram constructs an empty program over a given number of qubits.
func NewProgram(qubits int) *Program {
	return &Program{qubits, nil}
}

// Append adds instructions at the end of this program.
func (p *Program) Append(instructions ...Instruction) {
	p.Instructions = append(p.Instructions, instructions...)
}

// AppendGates adds gates at the end of this program.
func (p *Program) AppendGates(gates ...Gate) {
	for _, g := range gates {
		p.Instructions = append(p.Instructions, g)
	}
}

// Clone returns a program sharing no instruction slice with the original.
func (p *Program) Clone() *Program {
	instructions := make([]Instruction, len(p.Instructions))
	copy(instructions, p.Instructions)
	//
	return &Program{p.Qubits, instructions}
}

// GateCount returns the number of gate instructions, ignoring markers and loop
// repetition.
func (p *Program) GateCount() int {
	count := 0
	//
	for _, instruction := range p.Instructions {
		if !Marker(instruction) {
			count++
		}
	}
	//
	return count
}

// Validate checks the well-formedness invariants: every operand index lies
// within bounds, and no gate references the same qubit twice.
func (p *Program) Validate() error {
	for _, instruction := range p.Instructions {
		gate, ok := instruction.(Gate)
		if !ok {
			continue
		}
		//
		for i, q := range gate.Qubits {
			if q < 0 || q >= p.Qubits {
				return fmt.Errorf("gate \"%s\" references qubit %d outside [0,%d)", gate, q, p.Qubits)
			}
			//
			for _, r := range gate.Qubits[:i] {
				if q == r {
					return fmt.Errorf("gate \"%s\" references qubit %d twice", gate, q)
				}
			}
		}
	}
	//
	return nil
}

// String renders this program in its canonical text form: a version header, a
// qubit count, then exactly one instruction per line with no blank lines.
func (p *Program) String() string {
	var builder strings.Builder
	//
	fmt.Fprintf(&builder, "version %s\n", Version)
	fmt.Fprintf(&builder, "qubits %d\n", p.Qubits)
	//
	for _, instruction := range p.Instructions {
		builder.WriteString(instruction.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
