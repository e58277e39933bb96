// Package cyk decides membership of words in the language of a grammar in
// Chomsky Normal Form and builds a parse tree for accepted words, using the
// Cocke–Younger–Kasami dynamic program.
//
// Parsing is a two-phase pipeline. The fill phase computes, for every span of
// the input, the variables deriving it together with one backpointer each.
// The decode phase follows backpointers from the start variable over the full
// span to materialize the tree. Ties between derivations are broken by the
// smallest split point, then by the earliest declared rule, so the same
// grammar and word always produce the same tree.
package cyk

import (
	"errors"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parsetree"
)

// Grammar is what the recognizer needs from a grammar. *grammar.Grammar
// implements it.
type Grammar interface {
	Rules() []grammar.Rule
	Start() grammar.Symbol
	IsInChomskyNormalForm() bool
}

// Reasons a word is rejected. They are ordinary outcomes, reported by Parse
// and Chart; Recognize and Tree fold them into false and nil.
var (
	ErrNotInNormalForm       = errors.New("grammar is not in Chomsky Normal Form")
	ErrEmptyWordNotDerivable = errors.New("empty word is not derivable: grammar has no start → ε rule")
	ErrNotInLanguage         = errors.New("word is not in the language of the grammar")
)

// Parser checks words against one grammar. The index is built once in New;
// every call gets its own table, so a Parser may be used from several
// goroutines at once.
type Parser struct {
	index *Index
	cnf   bool
}

// New prepares a parser for g. The CNF predicate is evaluated here, once,
// since grammars are immutable.
func New(g Grammar) *Parser {
	return &Parser{
		index: NewIndex(g),
		cnf:   g.IsInChomskyNormalForm(),
	}
}

// Index returns the lookup index of the parser's grammar.
func (p *Parser) Index() *Index {
	return p.index
}

// Chart runs the fill phase for w and returns the table. The table is nil when
// no fill took place: the grammar is not in CNF or w is empty. When w is
// rejected after a fill, both the table and ErrNotInLanguage are returned.
func (p *Parser) Chart(w grammar.Word) (*Table, error) {
	if !p.cnf {
		return nil, ErrNotInNormalForm
	}
	if len(w) == 0 {
		if p.index.epsilon {
			return nil, nil
		}
		return nil, ErrEmptyWordNotDerivable
	}

	began := time.Now()
	t := fill(p.index, w)
	logger().Debugf("filled %d cells for %d symbols with %d entries in %s",
		len(t.cells), t.n, t.Entries(), time.Since(began))

	if !t.Accepts() {
		return t, ErrNotInLanguage
	}
	return t, nil
}

// Recognize reports whether w is in the language of the grammar.
func (p *Parser) Recognize(w grammar.Word) bool {
	_, err := p.Chart(w)
	return err == nil
}

// Parse returns the parse tree of w, or nil and the reason w was rejected.
func (p *Parser) Parse(w grammar.Word) (*parsetree.Node, error) {
	t, err := p.Chart(w)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return parsetree.NewInternal(p.index.Start(), parsetree.NewEpsilon()), nil
	}
	return decode(t), nil
}

// Tree returns the parse tree of w, or nil if w is rejected.
func (p *Parser) Tree(w grammar.Word) *parsetree.Node {
	tree, _ := p.Parse(w)
	return tree
}

// Recognize reports whether w is in the language of g.
func Recognize(g Grammar, w grammar.Word) bool {
	return New(g).Recognize(w)
}

// BuildTree returns the parse tree of w under g, or nil if w is rejected.
func BuildTree(g Grammar, w grammar.Word) *parsetree.Node {
	return New(g).Tree(w)
}

func logger() commonlog.Logger {
	return commonlog.GetLogger("cyk")
}
