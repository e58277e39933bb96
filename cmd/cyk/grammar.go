package main

import (
	"fmt"

	"github.com/dhamidi/cyk/grammar"
	"github.com/spf13/cobra"
)

// grammarSource selects the grammar a command works with: a file named by the
// first argument, or the built-in arithmetic grammar.
type grammarSource struct {
	arith   bool
	epsilon bool
	start   string
}

func (s *grammarSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.arith, "arith", false, "use the built-in arithmetic grammar instead of a file")
	cmd.Flags().BoolVar(&s.epsilon, "epsilon", false, "with --arith, add S → ε")
	cmd.Flags().StringVar(&s.start, "start", "", "start variable (default: first production of the file)")
}

// load returns the grammar and the arguments that follow the grammar file.
func (s *grammarSource) load(args []string) (*grammar.Grammar, []string, error) {
	if s.arith {
		return grammar.Arithmetic(s.epsilon), args, nil
	}
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("missing grammar file (or use --arith)")
	}

	g, err := grammar.Load(args[0], s.start)
	if err != nil {
		if problems := grammar.Problems(err); len(problems) > 1 {
			printProblems(problems)
			return nil, nil, errReported
		}
		return nil, nil, fmt.Errorf("load grammar: %w", err)
	}
	logger().Debugf("loaded %s: %d rules, start %s", args[0], len(g.Rules()), g.Start().Name)
	return g, args[1:], nil
}
