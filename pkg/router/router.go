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
package router

import (
	"fmt"

	"github.com/consensys/go-grover/pkg/circuit"
	"github.com/consensys/go-grover/pkg/compiler"
)

// IncompatibleModeError signals an attempt to route a program containing
// three-qubit gates, which a star topology cannot host.
type IncompatibleModeError struct {
	// Mode the program was lowered with.
	Mode compiler.Mode
}

// Error implements the error interface.
func (e *IncompatibleModeError) Error() string {
	return fmt.Sprintf("mode \"%s\" emits three-qubit gates, which cannot be routed on a star topology", e.Mode)
}

// Route rewrites a program for a star topology where every two-qubit gate
// must involve the given hub qubit.  Qubit placement is tracked lazily: when
// neither operand of a two-qubit gate sits on the hub, one is swapped there
// and left in place until a structural marker forces the placement back to
// identity.  Loop bodies replay verbatim, so every marker is such a barrier.
func Route(program *circuit.Program, mode compiler.Mode, hub int) (*circuit.Program, error) {
	if mode.UsesToffoli() {
		return nil, &IncompatibleModeError{mode}
	}
	// Defensive: reject three-qubit gates regardless of the claimed mode.
	for _, instruction := range program.Instructions {
		if gate, ok := instruction.(circuit.Gate); ok && len(gate.Qubits) > 2 {
			return nil, &IncompatibleModeError{mode}
		}
	}
	//
	if hub < 0 || hub >= program.Qubits {
		return nil, fmt.Errorf("hub qubit %d out of range for %d qubit program", hub, program.Qubits)
	}
	//
	r := newPlacement(program.Qubits, hub)
	routed := circuit.NewProgram(program.Qubits)
	//
	for _, instruction := range program.Instructions {
		gate, ok := instruction.(circuit.Gate)
		//
		if !ok {
			routed.AppendGates(r.restore()...)
			routed.Append(instruction)
			//
			continue
		}
		//
		routed.AppendGates(r.route(gate)...)
	}
	//
	routed.AppendGates(r.restore()...)
	//
	return routed, nil
}

// placement tracks where each logical qubit currently lives.
type placement struct {
	hub int
	// position maps logical qubits to physical qubits.
	position []int
	// occupant maps physical qubits to logical qubits.
	occupant []int
}

func newPlacement(qubits int, hub int) *placement {
	p := &placement{
		hub:      hub,
		position: make([]int, qubits),
		occupant: make([]int, qubits),
	}
	//
	for i := 0; i < qubits; i++ {
		p.position[i] = i
		p.occupant[i] = i
	}
	//
	return p
}

// route maps a gate's operands to their physical positions, moving one onto
// the hub first if a two-qubit gate avoids it entirely.
func (p *placement) route(gate circuit.Gate) []circuit.Gate {
	var gates []circuit.Gate
	//
	if len(gate.Qubits) == 2 {
		first, second := p.position[gate.Qubits[0]], p.position[gate.Qubits[1]]
		//
		if first != p.hub && second != p.hub {
			gates = append(gates, p.swap(second))
		}
	}
	//
	mapped := make([]int, len(gate.Qubits))
	//
	for i, q := range gate.Qubits {
		mapped[i] = p.position[q]
	}
	//
	return append(gates, circuit.Gate{Kind: gate.Kind, Qubits: mapped, Angle: gate.Angle})
}

// restore emits the swaps returning every logical qubit to its own physical
// position, cycling each displaced qubit through the hub.
func (p *placement) restore() []circuit.Gate {
	var gates []circuit.Gate
	//
	for {
		if l := p.occupant[p.hub]; l != p.hub {
			gates = append(gates, p.swap(l))
			//
			continue
		}
		//
		displaced := -1
		//
		for physical, logical := range p.occupant {
			if physical != logical {
				displaced = physical
				break
			}
		}
		//
		if displaced < 0 {
			return gates
		}
		//
		gates = append(gates, p.swap(displaced))
	}
}

// swap exchanges the occupants of the hub and the given physical qubit,
// returning the gate realising it.
func (p *placement) swap(physical int) circuit.Gate {
	a, b := p.occupant[p.hub], p.occupant[physical]
	p.occupant[p.hub], p.occupant[physical] = b, a
	p.position[a], p.position[b] = physical, p.hub
	//
	return circuit.New(circuit.Swap, p.hub, physical)
}
