package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cyk/cyk"
	"github.com/dhamidi/cyk/format"
	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/lex"
	"github.com/spf13/cobra"
)

type parseOptions struct {
	format   string
	chart    bool
	allCells bool
}

func newParseCmd() *cobra.Command {
	var src grammarSource
	var opts parseOptions

	cmd := &cobra.Command{
		Use:           "parse <grammar> <word>",
		Short:         "Print the parse tree of a word",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, rest, err := src.load(args)
			if err != nil {
				return err
			}
			if len(rest) != 1 {
				return fmt.Errorf("expected exactly one word, got %d", len(rest))
			}

			return parseAndPrint(cmd.OutOrStdout(), cyk.New(g), g, rest[0], opts)
		},
	}

	src.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVar(&opts.chart, "chart", false, "print the span table before the tree")
	cmd.Flags().BoolVar(&opts.allCells, "all-cells", false, "with --chart, list empty cells too")

	return cmd
}

// parseAndPrint scans input against the terminals of g, parses it and writes
// the tree to w in the selected format.
func parseAndPrint(w io.Writer, p *cyk.Parser, g *grammar.Grammar, input string, opts parseOptions) error {
	enc, err := format.NewEncoder(opts.format, w)
	if err != nil {
		return err
	}

	word, err := lex.Scan(g.Terminals(), input)
	if err != nil {
		return fmt.Errorf("scan %q: %w", input, err)
	}

	if opts.chart {
		table, err := p.Chart(word)
		if table != nil {
			chart := format.NewChartEncoder(w)
			chart.All = opts.allCells
			if err := chart.Encode(table); err != nil {
				return fmt.Errorf("encode chart: %w", err)
			}
		} else if err == nil {
			fmt.Fprintln(w, "(empty word, no table)")
		}
	}

	tree, err := p.Parse(word)
	if err != nil {
		if errors.Is(err, cyk.ErrNotInLanguage) {
			return fmt.Errorf("%q: %w", lex.Describe(word), err)
		}
		return err
	}

	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
