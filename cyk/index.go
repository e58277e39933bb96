package cyk

import (
	"github.com/dhamidi/cyk/grammar"
)

// production is a binary rule V → B C as seen from its right-hand side.
// ordinal is the position of the rule in the grammar and decides which rule
// wins when several derive the same variable over the same split.
type production struct {
	lhs     int
	ordinal int
}

type pair struct {
	left, right int
}

// Index is the lookup structure the recognizer uses instead of scanning the
// rule list for every cell. It maps terminals to the variables producing them
// and pairs of variables to the variables producing the pair.
//
// An Index is immutable once built and may be shared between goroutines.
type Index struct {
	start     int
	epsilon   bool
	variables []grammar.Symbol
	ids       map[grammar.Symbol]int
	unit      map[grammar.Symbol][]int
	binary    map[pair][]production
}

// NewIndex builds the index for the rules of g.
func NewIndex(g Grammar) *Index {
	x := &Index{
		ids:    make(map[grammar.Symbol]int),
		unit:   make(map[grammar.Symbol][]int),
		binary: make(map[pair][]production),
	}

	start := g.Start()
	x.start = x.id(start)

	for ordinal, r := range g.Rules() {
		lhs := x.id(r.LHS)
		switch {
		case r.IsEpsilon():
			if r.LHS == start {
				x.epsilon = true
			}
		case r.IsUnit():
			t := r.RHS[0]
			if !containsInt(x.unit[t], lhs) {
				x.unit[t] = append(x.unit[t], lhs)
			}
		case r.IsBinary():
			key := pair{x.id(r.RHS[0]), x.id(r.RHS[1])}
			x.binary[key] = append(x.binary[key], production{lhs: lhs, ordinal: ordinal})
		}
	}

	return x
}

func (x *Index) id(v grammar.Symbol) int {
	if id, ok := x.ids[v]; ok {
		return id
	}
	id := len(x.variables)
	x.ids[v] = id
	x.variables = append(x.variables, v)
	return id
}

// Start returns the start variable.
func (x *Index) Start() grammar.Symbol {
	return x.variables[x.start]
}

// DerivesEmpty reports whether the indexed grammar has start → ε.
func (x *Index) DerivesEmpty() bool {
	return x.epsilon
}

// UnitProducers returns every variable V with a rule V → t, in the order the
// rules were declared.
func (x *Index) UnitProducers(t grammar.Symbol) []grammar.Symbol {
	return x.symbols(x.unit[t])
}

// BinaryProducers returns every variable V with a rule V → b c, in the order
// the rules were declared.
func (x *Index) BinaryProducers(b, c grammar.Symbol) []grammar.Symbol {
	left, ok := x.ids[b]
	if !ok {
		return nil
	}
	right, ok := x.ids[c]
	if !ok {
		return nil
	}
	prods := x.binary[pair{left, right}]
	ids := make([]int, 0, len(prods))
	for _, p := range prods {
		if !containsInt(ids, p.lhs) {
			ids = append(ids, p.lhs)
		}
	}
	return x.symbols(ids)
}

func (x *Index) symbols(ids []int) []grammar.Symbol {
	if len(ids) == 0 {
		return nil
	}
	out := make([]grammar.Symbol, len(ids))
	for i, id := range ids {
		out[i] = x.variables[id]
	}
	return out
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
