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
package boolexpr

import (
	"fmt"
	"math/rand"
	"strings"
)

// RandomKSat generates an arbitrary k-SAT formula string: groups clauses of
// groupSize literals each, drawn from an alphabet of single-letter variables
// starting at 'a', with each literal negated with probability one half.
// Clauses are conjoined, literals within a clause disjoined.
func RandomKSat(groups int, groupSize int, symbols int, rnd *rand.Rand) (string, error) {
	if groupSize > symbols {
		return "", fmt.Errorf("clause size %d exceeds variable count %d", groupSize, symbols)
	} else if symbols > 26 {
		return "", fmt.Errorf("variable count %d exceeds single-letter alphabet", symbols)
	}
	//
	alphabet := make([]string, symbols)
	for i := range alphabet {
		alphabet[i] = string(rune('a' + i))
	}
	//
	clauses := make([]string, groups)
	//
	for i := range clauses {
		literals := make([]string, groupSize)
		// Sample distinct variables for this clause.
		for j, k := range rnd.Perm(symbols)[:groupSize] {
			if rnd.Intn(2) == 0 {
				literals[j] = "not " + alphabet[k]
			} else {
				literals[j] = alphabet[k]
			}
		}
		//
		clauses[i] = "(" + strings.Join(literals, " or ") + ")"
	}
	//
	return strings.Join(clauses, " and "), nil
}
