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
	"slices"

	"github.com/consensys/go-grover/pkg/util/source"
	"github.com/consensys/go-grover/pkg/util/source/lex"
)

// Parse a given input string into a boolean expression held in a fresh arena.
// Conjunction binds tighter than disjunction, and negation tighter than both.
func Parse(input string) (*Tree, Id, []source.SyntaxError) {
	var (
		tree    = NewTree()
		srcfile = source.NewSourceFile("formula", []byte(input))
		lexer   = lex.NewLexer[rune](srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")

		return tree, 0, []source.SyntaxError{*err}
	}
	// Remove any whitespace
	tokens = slices.DeleteFunc(tokens, func(t lex.Token) bool { return t.Kind == WHITESPACE })
	//
	parser := &Parser{tree, srcfile, tokens, 0}
	// Parse term
	root, errs := parser.parseTerm()
	// Check all parsed
	if len(errs) == 0 && !parser.Done() {
		if parser.follows(XOR) {
			return tree, 0, parser.syntaxErrors(parser.lookahead(), "unsupported operator")
		}
		//
		return tree, 0, parser.syntaxErrors(parser.lookahead(), "unknown token")
	}
	// All good!
	return tree, root, errs
}

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// LBRACE signals "left brace"
const LBRACE uint = 2

// RBRACE signals "right brace"
const RBRACE uint = 3

// IDENTIFIER signals a variable name.
const IDENTIFIER uint = 4

// TRUE signals the constant true.
const TRUE uint = 5

// FALSE signals the constant false.
const FALSE uint = 6

// AND represents logical conjunction
const AND uint = 7

// OR represents logical disjunction
const OR uint = 8

// NOT represents logical negation
const NOT uint = 9

// XOR represents exclusive disjunction, which is recognised only so that it
// can be reported as unsupported.
const XOR uint = 10

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n')))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// lexing rules.  Keyword rules must precede the identifier rule, and
// double-character operators their single-character prefixes.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Keyword("and"), AND),
	lex.Rule(lex.Unit('&', '&'), AND),
	lex.Rule(lex.Unit('&'), AND),
	lex.Rule(lex.Unit('∧'), AND),
	lex.Rule(lex.Keyword("or"), OR),
	lex.Rule(lex.Unit('|', '|'), OR),
	lex.Rule(lex.Unit('|'), OR),
	lex.Rule(lex.Unit('∨'), OR),
	lex.Rule(lex.Keyword("not"), NOT),
	lex.Rule(lex.Unit('~'), NOT),
	lex.Rule(lex.Unit('!'), NOT),
	lex.Rule(lex.Unit('¬'), NOT),
	lex.Rule(lex.Keyword("xor"), XOR),
	lex.Rule(lex.Unit('^'), XOR),
	lex.Rule(lex.Unit('⊕'), XOR),
	lex.Rule(lex.Keyword("true"), TRUE),
	lex.Rule(lex.Unit('1'), TRUE),
	lex.Rule(lex.Keyword("false"), FALSE),
	lex.Rule(lex.Unit('0'), FALSE),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Parser provides a recursive-descent parser for boolean formulas.
type Parser struct {
	tree    *Tree
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
}

// Done determines whether or not the parser has parsed all the available
// tokens.
func (p *Parser) Done() bool {
	return p.index+1 >= len(p.tokens)
}

func (p *Parser) parseTerm() (Id, []source.SyntaxError) {
	term, errs := p.parseConjunct()
	// match all disjuncts
	terms := []Id{term}
	//
	for len(errs) == 0 && p.follows(OR) {
		p.expect(OR)
		//
		term, errs = p.parseConjunct()
		// Accumulate arguments
		terms = append(terms, term)
	}
	//
	switch {
	case len(errs) != 0:
		return 0, errs
	case len(terms) == 1:
		return terms[0], nil
	}
	//
	return p.tree.NewOr(terms...), nil
}

func (p *Parser) parseConjunct() (Id, []source.SyntaxError) {
	term, errs := p.parseUnitTerm()
	// match all conjuncts
	terms := []Id{term}
	//
	for len(errs) == 0 && p.follows(AND) {
		p.expect(AND)
		//
		term, errs = p.parseUnitTerm()
		// Accumulate arguments
		terms = append(terms, term)
	}
	//
	switch {
	case len(errs) != 0:
		return 0, errs
	case len(terms) == 1:
		return terms[0], nil
	}
	//
	return p.tree.NewAnd(terms...), nil
}

func (p *Parser) parseUnitTerm() (Id, []source.SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case LBRACE:
		return p.parseBracketedTerm()
	case NOT:
		p.expect(NOT)
		//
		inner, errs := p.parseUnitTerm()
		if len(errs) != 0 {
			return 0, errs
		}
		//
		return p.tree.NewNot(inner), nil
	case IDENTIFIER:
		id := p.expect(IDENTIFIER)
		return p.tree.NewSymbol(p.string(id)), nil
	case TRUE:
		p.expect(TRUE)
		return p.tree.NewConstant(true), nil
	case FALSE:
		p.expect(FALSE)
		return p.tree.NewConstant(false), nil
	case XOR:
		return 0, p.syntaxErrors(token, "unsupported operator")
	}
	//
	return 0, p.syntaxErrors(token, "unknown expression")
}

func (p *Parser) parseBracketedTerm() (Id, []source.SyntaxError) {
	p.expect(LBRACE)
	//
	term, errs := p.parseTerm()
	//
	if len(errs) == 0 && !p.match(RBRACE) {
		return 0, p.syntaxErrors(p.lookahead(), "expected ')'")
	}
	//
	return term, errs
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

func (p *Parser) expect(kind uint) lex.Token {
	if p.lookahead().Kind != kind {
		panic("internal failure")
	}
	//
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
