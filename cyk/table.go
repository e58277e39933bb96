package cyk

import (
	"fmt"

	"github.com/dhamidi/cyk/grammar"
)

// Span identifies the substring w[I..J] of the input, 1-based and inclusive.
type Span struct {
	I, J int
}

// Len returns the number of symbols in the span.
func (s Span) Len() int {
	return s.J - s.I + 1
}

// String renders the span as "(i,j)".
func (s Span) String() string {
	return fmt.Sprintf("(%d,%d)", s.I, s.J)
}

// Backpointer records how a variable was derived over a span longer than one
// symbol: Left covers (i, Split) and Right covers (Split+1, j).
type Backpointer struct {
	Split int
	Left  grammar.Symbol
	Right grammar.Symbol
}

// entry is a variable recorded in a cell. split is zero for variables derived
// from a terminal; otherwise left and right are variable ids.
type entry struct {
	variable int
	split    int
	left     int
	right    int
}

type cell struct {
	entries []entry
	lookup  map[int]int
}

func (c *cell) has(v int) bool {
	_, ok := c.lookup[v]
	return ok
}

func (c *cell) get(v int) (entry, bool) {
	i, ok := c.lookup[v]
	if !ok {
		return entry{}, false
	}
	return c.entries[i], true
}

// add records e unless its variable is already present. The first entry for a
// variable is never replaced.
func (c *cell) add(e entry) bool {
	if c.lookup == nil {
		c.lookup = make(map[int]int)
	} else if c.has(e.variable) {
		return false
	}
	c.lookup[e.variable] = len(c.entries)
	c.entries = append(c.entries, e)
	return true
}

// Table is the triangular span table filled by the recognizer. Cells are
// stored in a flat slice addressed by span coordinates; backpointers hold
// coordinates and variable ids, never references to other cells.
//
// A Table is read-only once returned by the recognizer.
type Table struct {
	index *Index
	word  grammar.Word
	n     int
	cells []cell
}

func newTable(x *Index, w grammar.Word) *Table {
	n := len(w)
	return &Table{
		index: x,
		word:  w,
		n:     n,
		cells: make([]cell, n*(n+1)/2),
	}
}

// offset maps (i, j) to its position in cells; row i holds spans (i, i..n).
func (t *Table) offset(i, j int) int {
	if i < 1 || j < i || j > t.n {
		panic(fmt.Sprintf("cyk: span (%d,%d) out of range for length %d", i, j, t.n))
	}
	row := (i-1)*(t.n+1) - (i-1)*i/2
	return row + (j - i)
}

func (t *Table) cell(i, j int) *cell {
	return &t.cells[t.offset(i, j)]
}

// Len returns the length of the input word.
func (t *Table) Len() int {
	return t.n
}

// Word returns the input word the table was filled for.
func (t *Table) Word() grammar.Word {
	return t.word
}

// Variables returns the variables recorded for span (i, j) in the order they
// were first derived.
func (t *Table) Variables(i, j int) []grammar.Symbol {
	c := t.cell(i, j)
	out := make([]grammar.Symbol, len(c.entries))
	for k, e := range c.entries {
		out[k] = t.index.variables[e.variable]
	}
	return out
}

// Has reports whether v was recorded for span (i, j).
func (t *Table) Has(i, j int, v grammar.Symbol) bool {
	id, ok := t.index.ids[v]
	if !ok {
		return false
	}
	return t.cell(i, j).has(id)
}

// Backpointer returns the derivation recorded for v over span (i, j). ok is
// false when v is absent or was derived directly from a terminal.
func (t *Table) Backpointer(i, j int, v grammar.Symbol) (bp Backpointer, ok bool) {
	id, known := t.index.ids[v]
	if !known {
		return Backpointer{}, false
	}
	e, found := t.cell(i, j).get(id)
	if !found || e.split == 0 {
		return Backpointer{}, false
	}
	return Backpointer{
		Split: e.split,
		Left:  t.index.variables[e.left],
		Right: t.index.variables[e.right],
	}, true
}

// Accepts reports whether the start variable was recorded for the full span.
func (t *Table) Accepts() bool {
	if t.n == 0 {
		return false
	}
	return t.cell(1, t.n).has(t.index.start)
}

// Entries returns the total number of variables recorded across all cells.
func (t *Table) Entries() int {
	total := 0
	for i := range t.cells {
		total += len(t.cells[i].entries)
	}
	return total
}

// Spans calls fn for every span in fill order: by increasing length, then by
// start position.
func (t *Table) Spans(fn func(s Span)) {
	for l := 1; l <= t.n; l++ {
		for i := 1; i+l-1 <= t.n; i++ {
			fn(Span{I: i, J: i + l - 1})
		}
	}
}
