package grammar

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/pkg/errors"
)

// Rule rewrites the variable LHS to the word RHS. Pos is the location of the
// alternative in a grammar file and is the zero value for grammars built in
// code.
type Rule struct {
	LHS Symbol
	RHS Word
	Pos scanner.Position
}

// NewRule creates a rule LHS → RHS.
func NewRule(lhs Symbol, rhs ...Symbol) Rule {
	return Rule{LHS: lhs, RHS: NewWord(rhs...)}
}

// IsEpsilon reports whether the rule rewrites to the empty word.
func (r Rule) IsEpsilon() bool {
	return len(r.RHS) == 0
}

// IsUnit reports whether the rule has the CNF shape V → t.
func (r Rule) IsUnit() bool {
	return len(r.RHS) == 1 && r.RHS[0].IsTerminal()
}

// IsBinary reports whether the rule has the CNF shape V → B C.
func (r Rule) IsBinary() bool {
	return len(r.RHS) == 2 && r.RHS[0].IsVariable() && r.RHS[1].IsVariable()
}

func (r Rule) String() string {
	return fmt.Sprintf("%s → %s", r.LHS.Name, r.RHS)
}

// Grammar is a context-free grammar. A Grammar is immutable after New returns
// and safe for concurrent use.
type Grammar struct {
	variables []Symbol
	terminals []Symbol
	isMember  map[Symbol]bool
	rules     []Rule
	start     Symbol
}

// New creates a grammar and checks that every rule only mentions declared
// symbols. Rules keep their declaration order, which the recognizer uses to
// break ties between derivations.
func New(variables, terminals []Symbol, rules []Rule, start Symbol) (*Grammar, error) {
	g := &Grammar{
		isMember: make(map[Symbol]bool),
		start:    start,
	}

	for _, v := range variables {
		if !v.IsVariable() {
			return nil, errors.Errorf("%s declared as variable is a terminal", v)
		}
		if g.isMember[v] {
			continue
		}
		g.isMember[v] = true
		g.variables = append(g.variables, v)
	}
	for _, t := range terminals {
		if !t.IsTerminal() {
			return nil, errors.Errorf("%s declared as terminal is a variable", t)
		}
		if g.isMember[t] {
			continue
		}
		g.isMember[t] = true
		g.terminals = append(g.terminals, t)
	}

	if !g.isMember[start] || !start.IsVariable() {
		return nil, errors.Errorf("start symbol %s is not a declared variable", start)
	}

	g.rules = make([]Rule, len(rules))
	for i, r := range rules {
		if !r.LHS.IsVariable() || !g.isMember[r.LHS] {
			return nil, errors.Errorf("rule %d (%s): left-hand side is not a declared variable", i+1, r)
		}
		for _, s := range r.RHS {
			if !g.isMember[s] {
				return nil, errors.Errorf("rule %d (%s): %s is not declared", i+1, r, s)
			}
		}
		g.rules[i] = Rule{LHS: r.LHS, RHS: NewWord(r.RHS...), Pos: r.Pos}
	}

	return g, nil
}

// Rules returns the rules in declaration order.
func (g *Grammar) Rules() []Rule {
	return g.rules
}

// Start returns the start variable.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Variables returns the declared variables in declaration order.
func (g *Grammar) Variables() []Symbol {
	return g.variables
}

// Terminals returns the declared terminals in declaration order.
func (g *Grammar) Terminals() []Symbol {
	return g.terminals
}

// RulesFor returns the rules whose left-hand side is v.
func (g *Grammar) RulesFor(v Symbol) []Rule {
	var rules []Rule
	for _, r := range g.rules {
		if r.LHS == v {
			rules = append(rules, r)
		}
	}
	return rules
}

// DerivesEmpty reports whether the grammar contains the rule start → ε.
func (g *Grammar) DerivesEmpty() bool {
	for _, r := range g.rules {
		if r.LHS == g.start && r.IsEpsilon() {
			return true
		}
	}
	return false
}

// IsInChomskyNormalForm reports whether every rule is V → t or V → B C, with
// start → ε as the only permitted ε-rule.
func (g *Grammar) IsInChomskyNormalForm() bool {
	return len(g.Violations()) == 0
}

// Violation describes a rule that breaks Chomsky Normal Form.
type Violation struct {
	Rule   Rule
	Index  int
	Reason string
}

func (v Violation) Error() string {
	return fmt.Sprintf("rule %d (%s): %s", v.Index+1, v.Rule, v.Reason)
}

// Violations lists every rule that keeps g out of Chomsky Normal Form. When
// start → ε is present the start variable may not occur on any right-hand
// side, since the table fill never derives ε below the root.
func (g *Grammar) Violations() []Violation {
	var out []Violation
	epsilon := g.DerivesEmpty()
	for i, r := range g.rules {
		switch {
		case r.IsUnit(), r.IsBinary():
		case r.IsEpsilon():
			if r.LHS != g.start {
				out = append(out, Violation{Rule: r, Index: i, Reason: "ε-rule for a variable other than the start variable"})
			}
			continue
		case len(r.RHS) == 1:
			out = append(out, Violation{Rule: r, Index: i, Reason: "unit rule to a variable"})
			continue
		case len(r.RHS) == 2:
			out = append(out, Violation{Rule: r, Index: i, Reason: "binary rule mentions a terminal"})
			continue
		default:
			out = append(out, Violation{Rule: r, Index: i, Reason: fmt.Sprintf("right-hand side has %d symbols", len(r.RHS))})
			continue
		}
		if epsilon && r.IsBinary() && (r.RHS[0] == g.start || r.RHS[1] == g.start) {
			out = append(out, Violation{Rule: r, Index: i, Reason: "start variable appears on a right-hand side while start → ε is present"})
		}
	}
	return out
}

// String renders g in the EBNF notation accepted by Parse.
func (g *Grammar) String() string {
	var sb strings.Builder
	order := []Symbol{g.start}
	for _, v := range g.variables {
		if v != g.start {
			order = append(order, v)
		}
	}
	for _, v := range order {
		rules := g.RulesFor(v)
		if len(rules) == 0 {
			continue
		}
		sb.WriteString(v.Name)
		sb.WriteString(" =")
		for i, r := range rules {
			if i > 0 {
				sb.WriteString(" |")
			}
			if r.IsEpsilon() {
				sb.WriteString(` ""`)
				continue
			}
			for _, s := range r.RHS {
				sb.WriteByte(' ')
				sb.WriteString(s.String())
			}
		}
		sb.WriteString(" .\n")
	}
	return sb.String()
}
