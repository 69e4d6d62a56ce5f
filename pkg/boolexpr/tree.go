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
	"sort"
	"strings"
)

// Kind distinguishes the different forms a boolean expression node can take.
type Kind uint8

const (
	// Symbol represents a named boolean variable.
	Symbol Kind = iota
	// Not represents logical negation of exactly one child.
	Not
	// And represents logical conjunction of two or more children.
	And
	// Or represents logical disjunction of two or more children.
	Or
	// True represents the constant truth value.
	True
	// False represents the constant false value.
	False
)

// Id identifies a node within the arena of a given tree.  Passes which
// transform an expression allocate new nodes into the same arena and return a
// new root identifier, leaving existing nodes untouched.
type Id uint32

// Tree is an arena of immutable boolean expression nodes.  Nodes are
// hash-consed, hence structurally identical subtrees always share the same
// identifier.
type Tree struct {
	nodes []node
	dedup map[string]Id
}

type node struct {
	kind Kind
	// Variable name (symbols only).
	name string
	// Child identifiers (Not has one, And/Or have two or more).
	children []Id
}

// NewTree constructs an empty arena.
func NewTree() *Tree {
	return &Tree{nil, make(map[string]Id)}
}

// Kind returns the kind of a given node.
func (t *Tree) Kind(id Id) Kind {
	return t.nodes[id].kind
}

// Name returns the variable name of a symbol node.
func (t *Tree) Name(id Id) string {
	return t.nodes[id].name
}

// Children returns the child identifiers of a given node.  The returned slice
// must not be mutated.
func (t *Tree) Children(id Id) []Id {
	return t.nodes[id].children
}

// NewSymbol allocates (or reuses) a symbol node for a given variable name.
func (t *Tree) NewSymbol(name string) Id {
	return t.alloc(node{Symbol, name, nil}, "s:"+name)
}

// NewNot allocates (or reuses) a negation node.
func (t *Tree) NewNot(child Id) Id {
	return t.alloc(node{Not, "", []Id{child}}, fmt.Sprintf("n:%d", child))
}

// NewAnd allocates (or reuses) a conjunction node.  At least two children are
// required.
func (t *Tree) NewAnd(children ...Id) Id {
	return t.alloc(node{And, "", children}, childKey("a", children))
}

// NewOr allocates (or reuses) a disjunction node.  At least two children are
// required.
func (t *Tree) NewOr(children ...Id) Id {
	return t.alloc(node{Or, "", children}, childKey("o", children))
}

// NewConstant allocates (or reuses) a constant node.
func (t *Tree) NewConstant(value bool) Id {
	if value {
		return t.alloc(node{True, "", nil}, "t")
	}
	//
	return t.alloc(node{False, "", nil}, "f")
}

// Eval computes the truth value of a node under a given assignment.  Symbols
// absent from the assignment evaluate to false.
func (t *Tree) Eval(id Id, assignment map[string]bool) bool {
	n := &t.nodes[id]
	//
	switch n.kind {
	case Symbol:
		return assignment[n.name]
	case Not:
		return !t.Eval(n.children[0], assignment)
	case And:
		for _, c := range n.children {
			if !t.Eval(c, assignment) {
				return false
			}
		}
		//
		return true
	case Or:
		for _, c := range n.children {
			if t.Eval(c, assignment) {
				return true
			}
		}
		//
		return false
	case True:
		return true
	case False:
		return false
	}
	//
	panic("unreachable")
}

// SymbolsOf returns the distinct variable names of an expression, sorted in
// reverse lexicographic order.  The position of a name in the returned slice
// is its data qubit index, hence decoded measurement strings read the symbols
// in forward lexicographic order (most significant bit last measured).
func (t *Tree) SymbolsOf(id Id) []string {
	seen := make(map[string]bool)
	t.collectSymbols(id, seen)
	//
	symbols := make([]string, 0, len(seen))
	for name := range seen {
		symbols = append(symbols, name)
	}
	//
	sort.Sort(sort.Reverse(sort.StringSlice(symbols)))
	//
	return symbols
}

// String returns a fully parenthesised rendering of a given node, useful for
// debugging and for checking the shape of normalised trees.
func (t *Tree) String(id Id) string {
	n := &t.nodes[id]
	//
	switch n.kind {
	case Symbol:
		return n.name
	case Not:
		return fmt.Sprintf("(not %s)", t.String(n.children[0]))
	case And:
		return t.infix(n.children, "and")
	case Or:
		return t.infix(n.children, "or")
	case True:
		return "true"
	case False:
		return "false"
	}
	//
	panic("unreachable")
}

func (t *Tree) infix(children []Id, op string) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, c := range children {
		if i != 0 {
			builder.WriteString(" ")
			builder.WriteString(op)
			builder.WriteString(" ")
		}
		//
		builder.WriteString(t.String(c))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

func (t *Tree) collectSymbols(id Id, seen map[string]bool) {
	n := &t.nodes[id]
	//
	if n.kind == Symbol {
		seen[n.name] = true
		return
	}
	//
	for _, c := range n.children {
		t.collectSymbols(c, seen)
	}
}

func (t *Tree) alloc(n node, key string) Id {
	if id, ok := t.dedup[key]; ok {
		return id
	}
	//
	id := Id(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.dedup[key] = id
	//
	return id
}

func childKey(prefix string, children []Id) string {
	var builder strings.Builder
	//
	builder.WriteString(prefix)
	//
	for _, c := range children {
		fmt.Fprintf(&builder, ":%d", c)
	}
	//
	return builder.String()
}
