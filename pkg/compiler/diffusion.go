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

import "github.com/consensys/go-grover/pkg/circuit"

// Diffusion builds the inversion-about-the-mean operator over the given data
// qubits: an H and X layer on every data qubit, a multi-controlled Z across
// them, and the mirror layers.  The multi-controlled Z is lowered via the
// given mode, drawing any ancillas from directly above the data qubits.
func Diffusion(dataQubits int, mode Mode) ([]circuit.Gate, error) {
	if dataQubits == 1 {
		return []circuit.Gate{circuit.New(circuit.X, 0)}, nil
	}
	//
	var gates []circuit.Gate
	//
	for q := 0; q < dataQubits; q++ {
		gates = append(gates, circuit.New(circuit.H, q))
	}
	//
	for q := 0; q < dataQubits; q++ {
		gates = append(gates, circuit.New(circuit.X, q))
	}
	// Z on the last data qubit, controlled on all the others.
	last := dataQubits - 1
	controls := make(ControlSet, last)
	//
	for q := range controls {
		controls[q] = q
	}
	//
	mcx, _, err := MultiControlledX(controls, last, dataQubits, mode)
	if err != nil {
		return nil, err
	}
	//
	gates = append(gates, circuit.New(circuit.H, last))
	gates = append(gates, mcx...)
	gates = append(gates, circuit.New(circuit.H, last))
	//
	for q := 0; q < dataQubits; q++ {
		gates = append(gates, circuit.New(circuit.X, q))
	}
	//
	for q := 0; q < dataQubits; q++ {
		gates = append(gates, circuit.New(circuit.H, q))
	}
	//
	return gates, nil
}
