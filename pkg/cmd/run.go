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
package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/consensys/go-grover/pkg/grover"
	"github.com/consensys/go-grover/pkg/qpu"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] formula",
	Short: "Compile a boolean formula and execute it on the local simulator.",
	Long: `Compile a boolean formula into a quantum search program, execute it on the
local statevector simulator, and report the satisfying assignments read off
the measurement histogram.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		config := readCompileConfig(cmd)
		artifact := compileFormula(readFormula(cmd, args), config)
		shots := int(GetUint(cmd, "shots"))
		//
		driver := &qpu.Driver{
			Backend:     qpu.Simulator{},
			Interval:    100 * time.Millisecond,
			MaxAttempts: int(GetUint(cmd, "attempts")),
		}
		//
		solutions, result, err := grover.Search(context.Background(), driver, artifact, shots)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Debugf("backend \"%s\" executed %d shot(s) in %s",
			driver.Backend.Name(), result.Shots, result.Runtime)
		//
		printHistogram(result)
		//
		if len(solutions) == 0 {
			fmt.Println("no satisfying assignment found")
			return
		}
		//
		for i, assignment := range artifact.Assignments(solutions) {
			fmt.Printf("%s (%d/%d shots)\n",
				formatAssignment(artifact.Symbols, assignment), solutions[i].Count, shots)
		}
	},
}

// Render a histogram with bars scaled to the terminal width (when stdout is a
// terminal).
func printHistogram(result *qpu.Result) {
	width := 40
	//
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = max(10, w-24)
		}
	}
	//
	bitstrings := make([]string, 0, len(result.Histogram))
	//
	for bits := range result.Histogram {
		bitstrings = append(bitstrings, bits)
	}
	//
	sort.Strings(bitstrings)
	//
	for _, bits := range bitstrings {
		count := result.Histogram[bits]
		bar := count * width / result.Shots
		fmt.Printf("%s %-*s %d\n", bits, width, strings.Repeat("#", bar), count)
	}
}

// Render an assignment with symbols in ascending order.
func formatAssignment(symbols []string, assignment grover.Assignment) string {
	var builder strings.Builder
	// Symbols are held in descending order.
	for i := len(symbols) - 1; i >= 0; i-- {
		if builder.Len() != 0 {
			builder.WriteString(", ")
		}
		//
		value := "0"
		if assignment[symbols[i]] {
			value = "1"
		}
		//
		builder.WriteString(fmt.Sprintf("%s=%s", symbols[i], value))
	}
	//
	return builder.String()
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Uint("shots", 1024, "number of shots to execute")
	runCmd.Flags().Uint("attempts", 10, "maximum number of status polls")
}
