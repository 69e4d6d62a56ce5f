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

import "errors"

// ErrConstantFormula indicates a formula which simplified to a constant, and
// hence describes no search problem at all.
var ErrConstantFormula = errors.New("formula simplifies to a constant")

// Normalize simplifies a parsed expression and rebalances it into a binary
// tree whose depth per connective level is logarithmic in the connective's
// arity.  Oracle synthesis relies on this shape for predictable ancilla
// counts.
func Normalize(tree *Tree, root Id) (Id, error) {
	root = Simplify(tree, root)
	// A constant formula leaves nothing to search for.
	if kind := tree.Kind(root); kind == True || kind == False {
		return 0, ErrConstantFormula
	}
	//
	return Balance(tree, root), nil
}

// Simplify applies standard boolean identities: double-negation elimination,
// constant folding, idempotence and flattening of nested connectives of the
// same kind.  The result is a tree in which every And/Or node has at least two
// distinct, non-constant children.
func Simplify(tree *Tree, id Id) Id {
	switch tree.Kind(id) {
	case Symbol, True, False:
		return id
	case Not:
		return simplifyNot(tree, tree.Children(id)[0])
	case And:
		return simplifyConnective(tree, id, And)
	case Or:
		return simplifyConnective(tree, id, Or)
	}
	//
	panic("unreachable")
}

func simplifyNot(tree *Tree, child Id) Id {
	child = Simplify(tree, child)
	//
	switch tree.Kind(child) {
	case Not:
		// not(not(e)) ==> e
		return tree.Children(child)[0]
	case True:
		return tree.NewConstant(false)
	case False:
		return tree.NewConstant(true)
	}
	//
	return tree.NewNot(child)
}

func simplifyConnective(tree *Tree, id Id, kind Kind) Id {
	var (
		children []Id
		seen     = make(map[Id]bool)
		// Truth value which annihilates this connective.
		zero = kind == Or
	)
	//
	for _, child := range tree.Children(id) {
		child = Simplify(tree, child)
		//
		switch tree.Kind(child) {
		case True:
			if zero {
				return child
			}
			// Identity element, drop it.
			continue
		case False:
			if !zero {
				return child
			}
			//
			continue
		}
		// Flatten same-kind children, dedupe via hash-consed identity.
		if tree.Kind(child) == kind {
			for _, grandchild := range tree.Children(child) {
				if !seen[grandchild] {
					seen[grandchild] = true
					children = append(children, grandchild)
				}
			}
		} else if !seen[child] {
			seen[child] = true
			children = append(children, child)
		}
	}
	//
	switch len(children) {
	case 0:
		// All children were identity elements.
		return tree.NewConstant(!zero)
	case 1:
		return children[0]
	}
	//
	if kind == And {
		return tree.NewAnd(children...)
	}
	//
	return tree.NewOr(children...)
}

// Balance splits the children of every n-ary connective into two halves of
// near-equal size, recursively, producing a strictly binary tree.  This bounds
// the serial gate-chain depth of the synthesised oracle.
func Balance(tree *Tree, id Id) Id {
	switch tree.Kind(id) {
	case Symbol, True, False:
		return id
	case Not:
		return tree.NewNot(Balance(tree, tree.Children(id)[0]))
	case And:
		return balanceList(tree, tree.Children(id), And)
	case Or:
		return balanceList(tree, tree.Children(id), Or)
	}
	//
	panic("unreachable")
}

func balanceList(tree *Tree, children []Id, kind Kind) Id {
	var left, right Id
	//
	switch len(children) {
	case 1:
		return Balance(tree, children[0])
	case 2:
		left = Balance(tree, children[0])
		right = Balance(tree, children[1])
	default:
		halfway := len(children) / 2
		left = balanceList(tree, children[:halfway], kind)
		right = balanceList(tree, children[halfway:], kind)
	}
	//
	if kind == And {
		return tree.NewAnd(left, right)
	}
	//
	return tree.NewOr(left, right)
}
