// Package derive decides membership by searching leftmost derivations
// directly. The search is exponential in the length of the word and serves
// as an independent reference for the table-based recognizer on small
// inputs. It is bounded by a budget of expanded sentential forms and reports
// ErrBudgetExceeded rather than growing without limit.
package derive

import (
	"errors"
	"strings"

	"github.com/dhamidi/cyk/grammar"
)

// DefaultMaxForms is the budget used when Options.MaxForms is zero.
const DefaultMaxForms = 200000

// ErrBudgetExceeded is returned when the search expands more sentential forms
// than allowed without deciding the word.
var ErrBudgetExceeded = errors.New("derivation search budget exceeded")

// Grammar is the part of a grammar the search reads.
type Grammar interface {
	Rules() []grammar.Rule
	Start() grammar.Symbol
}

type Options struct {
	// MaxForms bounds the number of sentential forms expanded.
	MaxForms int
}

// Result is the outcome of a search.
type Result struct {
	Accepted bool
	// Steps is the leftmost derivation of the word from the start variable,
	// beginning with the start variable itself. Empty when not accepted.
	Steps []grammar.Word
	// Expanded is the number of sentential forms taken off the queue.
	Expanded int
}

type form struct {
	word   grammar.Word
	parent int
}

// Search looks for a leftmost derivation of w in breadth-first order, so the
// derivation found is one of the shortest. Forms are pruned when their
// terminal prefix disagrees with w or when they hold more non-nullable
// symbols than w has terminals.
func Search(g Grammar, w grammar.Word, opts Options) (*Result, error) {
	budget := opts.MaxForms
	if budget <= 0 {
		budget = DefaultMaxForms
	}

	expansions := make(map[grammar.Symbol][]grammar.Word)
	for _, r := range g.Rules() {
		expansions[r.LHS] = append(expansions[r.LHS], r.RHS)
	}
	nullable := nullableVariables(g.Rules())

	start := grammar.NewWord(g.Start())
	queue := []form{{word: start, parent: -1}}
	seen := map[string]bool{key(start): true}
	res := &Result{}

	for head := 0; head < len(queue); head++ {
		if res.Expanded >= budget {
			return res, ErrBudgetExceeded
		}
		res.Expanded++

		current := queue[head].word
		pos := firstVariable(current)
		if pos < 0 {
			if current.Equal(w) {
				res.Accepted = true
				res.Steps = trace(queue, head)
				return res, nil
			}
			continue
		}

		for _, rhs := range expansions[current[pos]] {
			next := replace(current, pos, rhs)
			if !viable(next, w, nullable) {
				continue
			}
			k := key(next)
			if seen[k] {
				continue
			}
			seen[k] = true
			queue = append(queue, form{word: next, parent: head})
		}
	}

	return res, nil
}

// Derives is Search reduced to its verdict.
func Derives(g Grammar, w grammar.Word, opts Options) (bool, error) {
	res, err := Search(g, w, opts)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}

func firstVariable(w grammar.Word) int {
	for i, s := range w {
		if s.IsVariable() {
			return i
		}
	}
	return -1
}

func replace(w grammar.Word, pos int, rhs grammar.Word) grammar.Word {
	out := make(grammar.Word, 0, len(w)-1+len(rhs))
	out = append(out, w[:pos]...)
	out = append(out, rhs...)
	out = append(out, w[pos+1:]...)
	return out
}

// viable reports whether form can still derive w: its terminal prefix must
// match w and every non-nullable symbol needs at least one terminal of w.
func viable(form, w grammar.Word, nullable map[grammar.Symbol]bool) bool {
	required := 0
	prefix := true
	for i, s := range form {
		if s.IsVariable() {
			prefix = false
			if !nullable[s] {
				required++
			}
			continue
		}
		required++
		if prefix && (i >= len(w) || w[i] != s) {
			return false
		}
	}
	return required <= len(w)
}

func nullableVariables(rules []grammar.Rule) map[grammar.Symbol]bool {
	nullable := make(map[grammar.Symbol]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			if nullable[r.LHS] {
				continue
			}
			all := true
			for _, s := range r.RHS {
				if !nullable[s] {
					all = false
					break
				}
			}
			if all {
				nullable[r.LHS] = true
				changed = true
			}
		}
	}
	return nullable
}

func trace(queue []form, at int) []grammar.Word {
	var steps []grammar.Word
	for i := at; i >= 0; i = queue[i].parent {
		steps = append(steps, queue[i].word)
	}
	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	return steps
}

func key(w grammar.Word) string {
	var sb strings.Builder
	for _, s := range w {
		if s.IsTerminal() {
			sb.WriteByte('t')
		} else {
			sb.WriteByte('v')
		}
		sb.WriteString(s.Name)
		sb.WriteByte(0)
	}
	return sb.String()
}
