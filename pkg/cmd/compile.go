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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [flags] formula",
	Short: "Compile a boolean formula into a quantum search program.",
	Long: `Compile a boolean formula into a quantum search program whose
measurement distribution peaks on the satisfying assignments.  The program is
written in its textual form, either to stdout or to a given output file.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		config := readCompileConfig(cmd)
		artifact := compileFormula(readFormula(cmd, args), config)
		text := artifact.Program.String()
		//
		if output := GetString(cmd, "output"); output != "" {
			if err := os.WriteFile(output, []byte(text), 0644); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
		} else {
			fmt.Print(text)
		}
		//
		log.Debugf("compiled %d gate(s) over %d qubit(s)",
			artifact.Program.GateCount(), artifact.Metadata.QubitCount)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "write the program to a given file")
}
