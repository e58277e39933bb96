package grammar

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/pkg/errors"
	"golang.org/x/exp/ebnf"
)

// Problem is an error tied to a location in a grammar file.
type Problem struct {
	Pos scanner.Position
	Msg string
}

func (p *Problem) Error() string {
	return fmt.Sprintf("%s: %s", p.Pos, p.Msg)
}

// ErrorList collects the problems found while converting a grammar file.
type ErrorList []*Problem

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Load reads a grammar file written in EBNF. An empty start selects the first
// production in the file.
func Load(filename, start string) (*Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open grammar")
	}
	defer f.Close()

	return Parse(filename, f, start)
}

// Parse reads a grammar in EBNF notation:
//
//	S = E G | T H | "x" .
//
// Production names become variables and quoted tokens become terminals. An
// empty body or the empty token "" denotes ε. Groups, options, repetitions
// and ranges have no rule equivalent and are reported as errors. Rules are
// numbered in the order they appear in the source.
func Parse(filename string, src io.Reader, start string) (*Grammar, error) {
	eg, err := ebnf.Parse(filename, src)
	if err != nil {
		return nil, errors.Wrap(err, "parse grammar")
	}

	prods := sortedProductions(eg)
	if len(prods) == 0 {
		return nil, errors.Errorf("%s: grammar has no productions", filename)
	}
	if start == "" {
		start = prods[0].Name.String
	}

	if err := ebnf.Verify(eg, start); err != nil {
		return nil, errors.Wrap(err, "verify grammar")
	}

	var (
		problems  ErrorList
		variables []Symbol
		terminals []Symbol
		rules     []Rule
		seen      = make(map[Symbol]bool)
	)

	for _, p := range prods {
		variables = append(variables, Variable(p.Name.String))
	}

	addTerminal := func(t Symbol) {
		if !seen[t] {
			seen[t] = true
			terminals = append(terminals, t)
		}
	}

	for _, p := range prods {
		lhs := Variable(p.Name.String)
		if p.Expr == nil {
			rules = append(rules, Rule{LHS: lhs, RHS: Empty, Pos: p.Pos()})
			continue
		}

		alternatives, ok := p.Expr.(ebnf.Alternative)
		if !ok {
			alternatives = ebnf.Alternative{p.Expr}
		}
		for _, alt := range alternatives {
			rhs, err := convertAlternative(alt)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			for _, s := range rhs {
				if s.IsTerminal() {
					addTerminal(s)
				}
			}
			rules = append(rules, Rule{LHS: lhs, RHS: rhs, Pos: alt.Pos()})
		}
	}

	if err := problems.Err(); err != nil {
		return nil, err
	}

	return New(variables, terminals, rules, Variable(start))
}

func convertAlternative(expr ebnf.Expression) (Word, *Problem) {
	seq, ok := expr.(ebnf.Sequence)
	if !ok {
		seq = ebnf.Sequence{expr}
	}

	var rhs Word
	for _, item := range seq {
		switch e := item.(type) {
		case *ebnf.Name:
			rhs = append(rhs, Variable(e.String))
		case *ebnf.Token:
			if e.String == "" {
				if len(seq) > 1 {
					return nil, &Problem{Pos: e.Pos(), Msg: `"" must be the only term of an alternative`}
				}
				return Empty, nil
			}
			rhs = append(rhs, Terminal(e.String))
		case *ebnf.Group:
			return nil, &Problem{Pos: e.Pos(), Msg: "groups are not supported in rule grammars"}
		case *ebnf.Option:
			return nil, &Problem{Pos: e.Pos(), Msg: "options are not supported in rule grammars"}
		case *ebnf.Repetition:
			return nil, &Problem{Pos: e.Pos(), Msg: "repetitions are not supported in rule grammars"}
		case *ebnf.Range:
			return nil, &Problem{Pos: e.Pos(), Msg: "character ranges are not supported in rule grammars"}
		default:
			return nil, &Problem{Pos: item.Pos(), Msg: fmt.Sprintf("unexpected %T", item)}
		}
	}
	return rhs, nil
}

func sortedProductions(g ebnf.Grammar) []*ebnf.Production {
	prods := make([]*ebnf.Production, 0, len(g))
	for _, p := range g {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})
	return prods
}

var positionPrefix = regexp.MustCompile(`^(.*?):(\d+):(\d+): (.*)$`)

// Problems flattens err into positioned problems. It understands the error
// lists returned by the ebnf package as well as ErrorList; any other error
// becomes a single problem without a position.
func Problems(err error) []*Problem {
	if err == nil {
		return nil
	}

	cause := errors.Cause(err)
	switch e := cause.(type) {
	case ErrorList:
		return e
	case *Problem:
		return []*Problem{e}
	}

	var out []*Problem
	v := reflect.ValueOf(cause)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			if e, ok := v.Index(i).Interface().(error); ok {
				out = append(out, problemFromMessage(e.Error()))
			}
		}
		return out
	}
	return append(out, problemFromMessage(cause.Error()))
}

func problemFromMessage(msg string) *Problem {
	m := positionPrefix.FindStringSubmatch(msg)
	if m == nil {
		return &Problem{Msg: strings.TrimSpace(msg)}
	}
	line, _ := strconv.Atoi(m[2])
	col, _ := strconv.Atoi(m[3])
	return &Problem{
		Pos: scanner.Position{Filename: m[1], Line: line, Column: col},
		Msg: m[4],
	}
}
