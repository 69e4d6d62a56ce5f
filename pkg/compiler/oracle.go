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

import (
	"slices"

	"github.com/consensys/go-grover/pkg/boolexpr"
	"github.com/consensys/go-grover/pkg/circuit"
)

// SynthesizeOracle turns a normalized boolean expression into a phase oracle:
// a gate sequence which flips the sign of exactly those basis states whose
// data qubits encode a satisfying assignment.  Data qubit i holds symbols[i],
// the output qubit sits at len(symbols), and ancillas are drawn from above
// that.  All qubits other than the phase are restored by construction.  The
// index of the highest qubit touched is returned alongside the gates.
func SynthesizeOracle(tree *boolexpr.Tree, root boolexpr.Id, symbols []string,
	strategy Strategy, mode Mode, ancillaBudget int) ([]circuit.Gate, int, error) {
	//
	s := &synthesizer{
		tree:   tree,
		mode:   mode,
		qubits: make(map[string]int),
		out:    len(symbols),
	}
	//
	for i, name := range symbols {
		s.qubits[name] = i
	}
	//
	switch strategy {
	case ReuseGates:
		return s.synthGateReuse(root)
	case ReuseQubits:
		return s.synthQubitReuse(root, ancillaBudget)
	}
	//
	panic("unreachable")
}

// synthesizer carries the state shared by both synthesis strategies.
type synthesizer struct {
	tree *boolexpr.Tree
	mode Mode
	// qubits maps each symbol to its data qubit.
	qubits map[string]int
	// out is the qubit the root value is combined into.
	out int
}

// operands splits a binary node into its two children, which normalization
// guarantees.
func (s *synthesizer) operands(id boolexpr.Id) (boolexpr.Id, boolexpr.Id) {
	children := s.tree.Children(id)
	if len(children) != 2 {
		panic("expression not balanced")
	}
	//
	return children[0], children[1]
}

// phaseMark wraps the root literal held on qubit q into the phase-kickback
// sandwich around the output qubit, applying the literal's polarity in place.
func phaseMark(q int, negated bool, out int) []circuit.Gate {
	var gates []circuit.Gate
	//
	if negated {
		gates = append(gates, circuit.New(circuit.X, q))
	}
	//
	gates = append(gates,
		circuit.New(circuit.H, out),
		circuit.New(circuit.CNOT, q, out),
		circuit.New(circuit.H, out))
	//
	if negated {
		gates = append(gates, circuit.New(circuit.X, q))
	}
	//
	return gates
}

// combine emits target ^= op(l, r) for a binary connective, where each
// operand is a qubit paired with a polarity.  Negations are realised by
// X-bracketing the operand at the use site, and disjunction goes through
// De Morgan over the conjunctive lowering.
func (s *synthesizer) combine(kind boolexpr.Kind, lq int, lneg bool, rq int, rneg bool,
	target int, ancilla int) ([]circuit.Gate, error) {
	// Degenerate case: both operands read the same qubit.
	if lq == rq {
		return combineSameQubit(kind, lq, lneg, rneg, target), nil
	}
	// For AND, flip the negated operands; for OR, flip the others plus the
	// target (De Morgan).
	flipL, flipR := lneg, rneg
	if kind == boolexpr.Or {
		flipL, flipR = !flipL, !flipR
	}
	//
	var pre []circuit.Gate
	//
	if flipL {
		pre = append(pre, circuit.New(circuit.X, lq))
	}
	//
	if flipR {
		pre = append(pre, circuit.New(circuit.X, rq))
	}
	//
	mcx, _, err := MultiControlledX(ControlSet{lq, rq}, target, ancilla, s.mode)
	if err != nil {
		return nil, err
	}
	//
	gates := append(pre, mcx...)
	//
	if kind == boolexpr.Or {
		gates = append(gates, circuit.New(circuit.X, target))
	}
	//
	return append(gates, pre...), nil
}

// combineSameQubit handles binary nodes whose operands resolve to the same
// qubit.  With equal polarity the connective collapses to the literal itself;
// with opposite polarity it collapses to a constant.
func combineSameQubit(kind boolexpr.Kind, q int, lneg bool, rneg bool, target int) []circuit.Gate {
	if lneg == rneg {
		gates := []circuit.Gate{circuit.New(circuit.CNOT, q, target)}
		//
		if lneg {
			gates = append(gates, circuit.New(circuit.X, target))
		}
		//
		return gates
	} else if kind == boolexpr.Or {
		// x or !x
		return []circuit.Gate{circuit.New(circuit.X, target)}
	}
	// x and !x
	return nil
}

// ===================================================================
// Gate reuse
// ===================================================================

// gateReuse allocates one ancilla per internal node, evaluating structurally
// identical subtrees only once, and uncomputes the whole forward pass in a
// single mirror at the end.
type gateReuse struct {
	*synthesizer
	// next free ancilla.
	next int
	// highest qubit touched so far.
	highest int
	// seen maps already-evaluated nodes to the ancilla holding their value.
	seen map[boolexpr.Id]int
}

func (s *synthesizer) synthGateReuse(root boolexpr.Id) ([]circuit.Gate, int, error) {
	g := &gateReuse{
		synthesizer: s,
		next:        s.out + 1,
		highest:     s.out,
		seen:        make(map[boolexpr.Id]int),
	}
	// Literal roots combine straight onto the output qubit.
	if kind := s.tree.Kind(root); kind != boolexpr.And && kind != boolexpr.Or {
		gates, q, neg, err := g.eval(root)
		if err != nil {
			return nil, 0, err
		}
		//
		marked := append(slices.Clone(gates), phaseMark(q, neg, s.out)...)
		//
		return append(marked, circuit.Inverse(gates)...), g.highest, nil
	}
	//
	left, right := s.operands(root)
	//
	lgates, lq, lneg, err := g.eval(left)
	if err != nil {
		return nil, 0, err
	}
	//
	rgates, rq, rneg, err := g.eval(right)
	if err != nil {
		return nil, 0, err
	}
	//
	mark, err := s.combine(s.tree.Kind(root), lq, lneg, rq, rneg, s.out, g.next)
	if err != nil {
		return nil, 0, err
	}
	//
	compute := append(lgates, rgates...)
	gates := slices.Clone(compute)
	gates = append(gates, circuit.New(circuit.H, s.out))
	gates = append(gates, mark...)
	gates = append(gates, circuit.New(circuit.H, s.out))
	gates = append(gates, circuit.Inverse(compute)...)
	//
	return gates, g.highest, nil
}

// eval emits gates computing the value of the given node, returning the qubit
// holding it along with a pending polarity.  Negation never emits gates; it
// just flips the polarity for the consumer to absorb.
func (g *gateReuse) eval(id boolexpr.Id) ([]circuit.Gate, int, bool, error) {
	switch g.tree.Kind(id) {
	case boolexpr.Symbol:
		return nil, g.qubits[g.tree.Name(id)], false, nil
	case boolexpr.Not:
		gates, q, neg, err := g.eval(g.tree.Children(id)[0])
		return gates, q, !neg, err
	case boolexpr.And, boolexpr.Or:
		if q, ok := g.seen[id]; ok {
			return nil, q, false, nil
		}
		//
		return g.evalBinary(id)
	}
	//
	panic("unreachable")
}

func (g *gateReuse) evalBinary(id boolexpr.Id) ([]circuit.Gate, int, bool, error) {
	left, right := g.operands(id)
	//
	lgates, lq, lneg, err := g.eval(left)
	if err != nil {
		return nil, 0, false, err
	}
	//
	rgates, rq, rneg, err := g.eval(right)
	if err != nil {
		return nil, 0, false, err
	}
	//
	target := g.next
	g.next++
	//
	if target > g.highest {
		g.highest = target
	}
	// Lowering ancillas sit above every expression ancilla in this strategy,
	// so reserve from the current frontier.
	gates, err := g.combine(g.tree.Kind(id), lq, lneg, rq, rneg, target, g.next)
	if err != nil {
		return nil, 0, false, err
	}
	//
	g.seen[id] = target
	gates = append(append(lgates, rgates...), gates...)
	//
	return gates, target, false, nil
}

// ===================================================================
// Qubit reuse
// ===================================================================

// qubitReuse threads an avoid list through the recursion, always grabbing the
// lowest free ancilla and uncomputing each child as soon as its parent has
// combined it.
type qubitReuse struct {
	*synthesizer
	// first index of the ancilla pool.
	first int
	// highest qubit touched so far.
	highest int
	// budget caps the pool size; zero means unlimited.
	budget int
}

func (s *synthesizer) synthQubitReuse(root boolexpr.Id, budget int) ([]circuit.Gate, int, error) {
	q := &qubitReuse{
		synthesizer: s,
		first:       s.out + 1,
		highest:     s.out,
		budget:      budget,
	}
	//
	if kind := s.tree.Kind(root); kind != boolexpr.And && kind != boolexpr.Or {
		gates, lq, neg, err := q.eval(root, nil)
		if err != nil {
			return nil, 0, err
		}
		//
		marked := append(slices.Clone(gates), phaseMark(lq, neg, s.out)...)
		//
		return append(marked, circuit.Inverse(gates)...), q.highest, nil
	}
	//
	left, right := s.operands(root)
	//
	lgates, lq, lneg, err := q.eval(left, nil)
	if err != nil {
		return nil, 0, err
	}
	//
	rgates, rq, rneg, err := q.eval(right, []int{lq})
	if err != nil {
		return nil, 0, err
	}
	//
	mark, err := s.combine(s.tree.Kind(root), lq, lneg, rq, rneg, s.out, q.highest+1)
	if err != nil {
		return nil, 0, err
	}
	//
	gates := append(slices.Clone(lgates), rgates...)
	gates = append(gates, circuit.New(circuit.H, s.out))
	gates = append(gates, mark...)
	gates = append(gates, circuit.New(circuit.H, s.out))
	gates = append(gates, circuit.Inverse(rgates)...)
	gates = append(gates, circuit.Inverse(lgates)...)
	//
	return gates, q.highest, nil
}

// eval is as for gateReuse.eval, except that the target ancilla is the lowest
// index not on the avoid list and children are uncomputed immediately, so only
// the returned qubit remains live.
func (q *qubitReuse) eval(id boolexpr.Id, avoid []int) ([]circuit.Gate, int, bool, error) {
	switch q.tree.Kind(id) {
	case boolexpr.Symbol:
		return nil, q.qubits[q.tree.Name(id)], false, nil
	case boolexpr.Not:
		gates, lq, neg, err := q.eval(q.tree.Children(id)[0], avoid)
		return gates, lq, !neg, err
	case boolexpr.And, boolexpr.Or:
		return q.evalBinary(id, avoid)
	}
	//
	panic("unreachable")
}

func (q *qubitReuse) evalBinary(id boolexpr.Id, avoid []int) ([]circuit.Gate, int, bool, error) {
	left, right := q.operands(id)
	//
	lgates, lq, lneg, err := q.eval(left, avoid)
	if err != nil {
		return nil, 0, false, err
	}
	//
	avoid = append(slices.Clone(avoid), lq)
	//
	rgates, rq, rneg, err := q.eval(right, avoid)
	if err != nil {
		return nil, 0, false, err
	}
	//
	avoid = append(avoid, rq)
	target := q.freeAncilla(avoid)
	//
	if pool := target - q.first + 1; q.budget > 0 && pool > q.budget {
		return nil, 0, false, &ResourceExhaustedError{q.budget, pool}
	}
	//
	if target > q.highest {
		q.highest = target
	}
	//
	mark, err := q.combine(q.tree.Kind(id), lq, lneg, rq, rneg, target, q.highest+1)
	if err != nil {
		return nil, 0, false, err
	}
	//
	gates := append(slices.Clone(lgates), rgates...)
	gates = append(gates, mark...)
	gates = append(gates, circuit.Inverse(rgates)...)
	gates = append(gates, circuit.Inverse(lgates)...)
	//
	return gates, target, false, nil
}

// freeAncilla returns the lowest pool index not on the avoid list.
func (q *qubitReuse) freeAncilla(avoid []int) int {
	for i := q.first; ; i++ {
		if !slices.Contains(avoid, i) {
			return i
		}
	}
}
