package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/cyk/grammar"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var src grammarSource

	cmd := &cobra.Command{
		Use:           "check <grammar>",
		Short:         "Parse a grammar file and report whether it is in Chomsky Normal Form",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := src.load(args)
			if err != nil {
				return err
			}

			violations := g.Violations()
			for _, v := range violations {
				if v.Rule.Pos.IsValid() {
					fmt.Printf("%s: %s\n", v.Rule.Pos, v.Error())
				} else {
					fmt.Println(v.Error())
				}
			}
			if len(violations) > 0 {
				return fmt.Errorf("%d rules outside Chomsky Normal Form", len(violations))
			}

			fmt.Printf("ok: %d variables, %d terminals, %d rules, start %s\n",
				len(g.Variables()), len(g.Terminals()), len(g.Rules()), g.Start().Name)
			return nil
		},
	}

	src.addFlags(cmd)

	return cmd
}

func printProblems(problems []*grammar.Problem) {
	for _, p := range problems {
		fmt.Fprintln(os.Stderr, p)
	}
}
