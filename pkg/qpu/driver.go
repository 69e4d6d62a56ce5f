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
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/consensys/go-grover/pkg/circuit"
)

// Status describes where a submitted job stands in its lifecycle.
type Status uint8

const (
	// QUEUED means the job is waiting for the backend to pick it up.
	QUEUED Status = iota
	// RUNNING means the backend is executing the job.
	RUNNING
	// COMPLETE means results are available.
	COMPLETE
	// FAILED means the backend gave up on the job.
	FAILED
)

// String returns the user-facing spelling of this status.
func (s Status) String() string {
	switch s {
	case QUEUED:
		return "queued"
	case RUNNING:
		return "running"
	case COMPLETE:
		return "complete"
	case FAILED:
		return "failed"
	}
	//
	panic("unreachable")
}

// Histogram maps measured bitstrings (highest qubit leftmost) to observation
// counts.
type Histogram map[string]int

// Result holds the outcome of a completed job.
type Result struct {
	// Histogram of measured bitstrings.
	Histogram Histogram
	// Shots executed.
	Shots int
	// Runtime reported by the backend for the execution itself.
	Runtime time.Duration
}

// Job is a handle on a submitted program.
type Job interface {
	// Status reports the job's current lifecycle stage.
	Status() (Status, error)
	// Result returns the outcome of a complete job.
	Result() (*Result, error)
}

// Backend accepts programs for execution.
type Backend interface {
	// Name identifies the backend in diagnostics.
	Name() string
	// Submit queues a program for the given number of shots.
	Submit(program *circuit.Program, shots int) (Job, error)
}

// TimeoutError signals that a job failed to complete within the polling
// budget.
type TimeoutError struct {
	// Attempts made before giving up.
	Attempts int
	// Elapsed wall-clock time before giving up.
	Elapsed time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("job still incomplete after %d attempts (%s)", e.Attempts, e.Elapsed)
}

// ExecutionError signals that the backend reported the job as failed.
type ExecutionError struct {
	// Backend which rejected the job.
	Backend string
	// Message from the backend, if any.
	Message string
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend \"%s\" reported job failure", e.Backend)
	}
	//
	return fmt.Sprintf("backend \"%s\" reported job failure: %s", e.Backend, e.Message)
}

// Driver submits programs to a backend and polls them to completion.
type Driver struct {
	// Backend receiving the programs.
	Backend Backend
	// Interval between status polls.
	Interval time.Duration
	// MaxAttempts bounds the number of status polls; zero means a single
	// attempt.
	MaxAttempts int
}

// Run submits a program and polls until it completes, fails, times out, or
// the context is cancelled.
func (d *Driver) Run(ctx context.Context, program *circuit.Program, shots int) (*Result, error) {
	job, err := d.Backend.Submit(program, shots)
	if err != nil {
		return nil, err
	}
	//
	started := time.Now()
	attempts := max(d.MaxAttempts, 1)
	//
	for attempt := 1; ; attempt++ {
		status, err := job.Status()
		//
		switch {
		case err != nil:
			return nil, err
		case status == COMPLETE:
			return job.Result()
		case status == FAILED:
			return nil, &ExecutionError{Backend: d.Backend.Name()}
		case attempt >= attempts:
			return nil, &TimeoutError{Attempts: attempt, Elapsed: time.Since(started)}
		}
		//
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d.Interval):
		}
	}
}

// Solution pairs a decoded assignment bitstring (highest data qubit leftmost,
// output qubit stripped) with its observation count.
type Solution struct {
	// Bits holds one character per symbol qubit.
	Bits string
	// Count of observations.
	Count int
}

// Solutions decodes a histogram measured from a search program over the given
// number of data qubits.  Entries with dirty ancillas are discarded as noise,
// the output qubit is stripped, and only entries observed more than half as
// often as the most frequent survive.  Survivors are ranked by count.
func Solutions(result *Result, dataQubits int) []Solution {
	peak := 0
	//
	for bits, count := range result.Histogram {
		if cleanAncillas(bits, dataQubits) && count > peak {
			peak = count
		}
	}
	//
	var solutions []Solution
	//
	for bits, count := range result.Histogram {
		if cleanAncillas(bits, dataQubits) && count > peak/2 {
			// Strip the ancillas and the output qubit.
			solutions = append(solutions, Solution{bits[len(bits)-dataQubits+1:], count})
		}
	}
	//
	sort.Slice(solutions, func(i, j int) bool {
		if solutions[i].Count != solutions[j].Count {
			return solutions[i].Count > solutions[j].Count
		}
		//
		return solutions[i].Bits < solutions[j].Bits
	})
	//
	return solutions
}

// cleanAncillas checks that every bit above the data qubits reads zero.
func cleanAncillas(bits string, dataQubits int) bool {
	if len(bits) < dataQubits {
		return false
	}
	//
	return strings.Count(bits[:len(bits)-dataQubits], "1") == 0
}
