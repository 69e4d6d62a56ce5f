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

	"github.com/consensys/go-grover/pkg/circuit"
)

// Metadata summarises a compiled search program.
type Metadata struct {
	// Iterations gives the number of amplification rounds.
	Iterations int
	// QubitCount gives the width of the program.
	QubitCount int
	// DataQubits gives the number of qubits carrying the search space,
	// including the output qubit.
	DataQubits int
	// Mode used to lower multi-controlled operations.
	Mode Mode
	// Strategy used to synthesize the oracle.
	Strategy Strategy
}

// Iterations returns the optimal number of amplification rounds for a search
// space of the given width with a single marked state.
func Iterations(dataQubits int) int {
	return int(math.Pi * math.Sqrt(math.Pow(2, float64(dataQubits))-1) / 4)
}

// Assemble wraps an oracle and diffusion operator into a complete search
// program: a uniform superposition over the data qubits, the amplification
// loop, and a final measurement of every qubit.
func Assemble(oracle []circuit.Gate, diffusion []circuit.Gate, lastQubit int,
	dataQubits int, mode Mode, strategy Strategy) (*circuit.Program, Metadata, error) {
	//
	qubits := lastQubit + 1
	// The chained lowering can touch ancillas above anything the oracle
	// itself reached.
	if mode.UsesAncillas() {
		qubits = max(qubits, 2*dataQubits-3)
	}
	//
	iterations := Iterations(dataQubits)
	program := circuit.NewProgram(qubits)
	//
	for q := 0; q < dataQubits; q++ {
		program.AppendGates(circuit.New(circuit.H, q))
	}
	//
	program.Append(circuit.BeginLoop{Iterations: iterations})
	program.AppendGates(oracle...)
	program.AppendGates(diffusion...)
	program.Append(circuit.BeginMeasurement{}, circuit.MeasureAll{})
	//
	if err := program.Validate(); err != nil {
		return nil, Metadata{}, err
	}
	//
	meta := Metadata{
		Iterations: iterations,
		QubitCount: qubits,
		DataQubits: dataQubits,
		Mode:       mode,
		Strategy:   strategy,
	}
	//
	return program, meta, nil
}
