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

// UnsupportedModeError signals that a control set is too large (or too small)
// for the requested decomposition mode to lower.
type UnsupportedModeError struct {
	// Mode which could not perform the lowering.
	Mode Mode
	// Controls gives the size of the offending control set.
	Controls int
}

// Error implements the error interface.
func (e *UnsupportedModeError) Error() string {
	if e.Controls == 0 {
		return fmt.Sprintf("mode \"%s\" requires at least one control qubit", e.Mode)
	}
	//
	return fmt.Sprintf("mode \"%s\" cannot lower %d control qubits (max %d)", e.Mode, e.Controls, e.Mode.MaxControls())
}

// ResourceExhaustedError signals that oracle synthesis needed more ancilla
// qubits than the configured budget allows.
type ResourceExhaustedError struct {
	// Budget gives the configured ancilla limit.
	Budget int
	// Required gives the pool size synthesis actually needed.
	Required int
}

// Error implements the error interface.
func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("oracle synthesis requires %d ancilla qubits, but budget is %d", e.Required, e.Budget)
}
