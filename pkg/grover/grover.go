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
package grover

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-grover/pkg/boolexpr"
	"github.com/consensys/go-grover/pkg/circuit"
	"github.com/consensys/go-grover/pkg/compiler"
	"github.com/consensys/go-grover/pkg/optimizer"
	"github.com/consensys/go-grover/pkg/qpu"
	"github.com/consensys/go-grover/pkg/router"
	"github.com/consensys/go-grover/pkg/util/source"
)

// CompileConfig selects how a formula is compiled into a search program.
type CompileConfig struct {
	// Mode used to lower multi-controlled operations.
	Mode compiler.Mode
	// Strategy used to allocate oracle ancillas.
	Strategy compiler.Strategy
	// Optimize applies the peephole rewrites to the assembled program.
	Optimize bool
	// AncillaBudget caps the qubit-reuse ancilla pool; zero means
	// unlimited.
	AncillaBudget int
	// Hub requests routing for a star topology centred on the given
	// physical qubit; negative disables routing.
	Hub int
}

// DefaultCompileConfig returns the baseline configuration: Toffoli chaining,
// gate reuse, optimization on and no routing.
func DefaultCompileConfig() CompileConfig {
	return CompileConfig{
		Mode:     compiler.AncillaToffoli,
		Strategy: compiler.ReuseGates,
		Optimize: true,
		Hub:      -1,
	}
}

// Artifact is a compiled search program together with everything needed to
// interpret its measurements.
type Artifact struct {
	// Program ready for submission.
	Program *circuit.Program
	// Metadata summarising the compilation.
	Metadata compiler.Metadata
	// Symbols of the formula, where data qubit i carries Symbols[i].
	Symbols []string
}

// ParseErrors wraps the syntax errors arising from an unparseable formula.
type ParseErrors struct {
	// Errors in source order.
	Errors []source.SyntaxError
}

// Error implements the error interface.
func (e *ParseErrors) Error() string {
	return fmt.Sprintf("formula has %d syntax error(s)", len(e.Errors))
}

// Compile turns a boolean formula into a search program whose measurement
// distribution peaks on the satisfying assignments.
func Compile(input string, config CompileConfig) (*Artifact, error) {
	tree, root, errs := boolexpr.Parse(input)
	if len(errs) > 0 {
		return nil, &ParseErrors{errs}
	}
	//
	root, err := boolexpr.Normalize(tree, root)
	if err != nil {
		return nil, err
	}
	//
	symbols := tree.SymbolsOf(root)
	dataQubits := len(symbols) + 1
	//
	log.Debugf("compiling \"%s\" over %d symbol(s) (mode \"%s\", strategy \"%s\")",
		tree.String(root), len(symbols), config.Mode, config.Strategy)
	//
	oracle, lastQubit, err := compiler.SynthesizeOracle(tree, root, symbols,
		config.Strategy, config.Mode, config.AncillaBudget)
	if err != nil {
		return nil, err
	}
	//
	diffusion, err := compiler.Diffusion(dataQubits, config.Mode)
	if err != nil {
		return nil, err
	}
	//
	program, metadata, err := compiler.Assemble(oracle, diffusion, lastQubit,
		dataQubits, config.Mode, config.Strategy)
	if err != nil {
		return nil, err
	}
	//
	log.Debugf("assembled %d gate(s) over %d qubit(s), %d iteration(s)",
		program.GateCount(), metadata.QubitCount, metadata.Iterations)
	//
	if config.Optimize {
		before := program.GateCount()
		program = optimizer.Optimize(program)
		log.Debugf("optimizer removed %d gate(s)", before-program.GateCount())
	}
	//
	if config.Hub >= 0 {
		if program, err = router.Route(program, config.Mode, config.Hub); err != nil {
			return nil, err
		}
		//
		log.Debugf("routed for star topology on hub qubit %d", config.Hub)
	}
	//
	return &Artifact{Program: program, Metadata: metadata, Symbols: symbols}, nil
}

// Assignment maps each symbol of the formula to its decoded value.
type Assignment map[string]bool

// Assignments interprets decoded solutions against this artifact's symbol
// layout.
func (a *Artifact) Assignments(solutions []qpu.Solution) []Assignment {
	assignments := make([]Assignment, len(solutions))
	//
	for i, solution := range solutions {
		assignment := make(Assignment)
		//
		for q, symbol := range a.Symbols {
			assignment[symbol] = solution.Bits[len(solution.Bits)-1-q] == '1'
		}
		//
		assignments[i] = assignment
	}
	//
	return assignments
}

// Search runs a compiled artifact through the given driver and decodes the
// measured histogram into candidate solutions.
func Search(ctx context.Context, driver *qpu.Driver, artifact *Artifact, shots int) ([]qpu.Solution, *qpu.Result, error) {
	result, err := driver.Run(ctx, artifact.Program, shots)
	if err != nil {
		return nil, nil, err
	}
	//
	return qpu.Solutions(result, artifact.Metadata.DataQubits), result, nil
}
