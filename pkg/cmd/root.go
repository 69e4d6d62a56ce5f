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
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "go-grover",
	Short: "A compiler from boolean formulas to quantum search programs.",
	Long:  "A compiler (and execution toolbox) turning boolean satisfiability problems into quantum search programs.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("go-grover ")
			if Version != "" {
				// Built via "make"
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("mode", "normal", "gate decomposition mode (normal | no toffoli | crot | fancy cnot)")
	rootCmd.PersistentFlags().String("strategy", "reuse gates", "oracle synthesis strategy (reuse gates | reuse qubits)")
	rootCmd.PersistentFlags().Bool("optimize", true, "apply peephole optimizations")
	rootCmd.PersistentFlags().Uint("budget", 0, "cap the qubit-reuse ancilla pool (0 = unlimited)")
	rootCmd.PersistentFlags().Int("hub", -1, "route for a star topology centred on this qubit (-1 = off)")
	rootCmd.PersistentFlags().String("random", "", "generate a random k-SAT formula \"clauses,size,symbols\" instead of reading one")
}
