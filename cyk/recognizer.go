package cyk

import (
	"sort"

	"github.com/dhamidi/cyk/grammar"
)

// candidate is a binary production that applies to a span at one split point.
type candidate struct {
	ordinal int
	entry   entry
}

// fill runs the table-filling phase for w, which must have at least one
// symbol. Spans are processed by increasing length so every sub-span a
// combination reads is complete before it is read.
func fill(x *Index, w grammar.Word) *Table {
	t := newTable(x, w)
	n := t.n

	for i := 1; i <= n; i++ {
		c := t.cell(i, i)
		for _, v := range x.unit[w.At(i)] {
			c.add(entry{variable: v})
		}
	}

	var pending []candidate
	for l := 2; l <= n; l++ {
		for i := 1; i+l-1 <= n; i++ {
			j := i + l - 1
			target := t.cell(i, j)

			for k := i; k < j; k++ {
				left, right := t.cell(i, k), t.cell(k+1, j)
				if len(left.entries) == 0 || len(right.entries) == 0 {
					continue
				}

				pending = pending[:0]
				for _, b := range left.entries {
					for _, c := range right.entries {
						for _, p := range x.binary[pair{b.variable, c.variable}] {
							if target.has(p.lhs) {
								continue
							}
							pending = append(pending, candidate{
								ordinal: p.ordinal,
								entry: entry{
									variable: p.lhs,
									split:    k,
									left:     b.variable,
									right:    c.variable,
								},
							})
						}
					}
				}

				// Within one split point the earliest declared rule wins.
				sort.Slice(pending, func(a, b int) bool {
					return pending[a].ordinal < pending[b].ordinal
				})
				for _, cand := range pending {
					target.add(cand.entry)
				}
			}
		}
	}

	return t
}
