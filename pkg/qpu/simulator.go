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
package qpu

import (
	"math"
	"time"

	"github.com/consensys/go-grover/pkg/circuit"
	"github.com/consensys/go-grover/pkg/quantum"
)

// Simulator is a local backend which evaluates programs on a statevector and
// reports deterministic counts proportional to the outcome probabilities.
// Jobs complete synchronously at submission.
type Simulator struct{}

// Name implements the Backend interface.
func (s Simulator) Name() string {
	return "statevector simulator"
}

// Submit implements the Backend interface.
func (s Simulator) Submit(program *circuit.Program, shots int) (Job, error) {
	if err := program.Validate(); err != nil {
		return nil, err
	}
	//
	started := time.Now()
	state := quantum.Run(program)
	histogram := make(Histogram)
	//
	for index, probability := range state.Probabilities() {
		if count := int(math.Round(probability * float64(shots))); count > 0 {
			histogram[state.BitString(index)] = count
		}
	}
	//
	return &simulatorJob{&Result{
		Histogram: histogram,
		Shots:     shots,
		Runtime:   time.Since(started),
	}}, nil
}

type simulatorJob struct {
	result *Result
}

// Status implements the Job interface.
func (j *simulatorJob) Status() (Status, error) {
	return COMPLETE, nil
}

// Result implements the Job interface.
func (j *simulatorJob) Result() (*Result, error) {
	return j.result, nil
}
