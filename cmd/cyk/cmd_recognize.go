package main

import (
	"bufio"
	"fmt"
	"io"
	"runtime"

	"github.com/dhamidi/cyk/cyk"
	"github.com/dhamidi/cyk/derive"
	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/lex"
	"github.com/spf13/cobra"
)

func newRecognizeCmd() *cobra.Command {
	var src grammarSource
	var engine string
	var jobs int
	var maxForms int

	cmd := &cobra.Command{
		Use:           "recognize <grammar> [word...]",
		Short:         "Report whether each word is in the language of a grammar",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `Report whether each word is in the language of a grammar.

Words are read from the arguments, or one per line from standard input when
none are given. Each word is split into the grammar's terminals. The exit
status is 1 if any word is rejected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, inputs, err := src.load(args)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				inputs, err = readLines(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read words: %w", err)
				}
			}

			words := make([]grammar.Word, len(inputs))
			valid := make([]bool, len(inputs))
			for i, in := range inputs {
				w, err := lex.Scan(g.Terminals(), in)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%q: %v\n", in, err)
					continue
				}
				words[i], valid[i] = w, true
			}

			var accepted []bool
			switch engine {
			case "cyk":
				accepted, err = cyk.New(g).RecognizeAll(cmd.Context(), words, jobs)
				if err != nil {
					return fmt.Errorf("recognize: %w", err)
				}
			case "search":
				accepted = make([]bool, len(words))
				for i, w := range words {
					if !valid[i] {
						continue
					}
					accepted[i], err = derive.Derives(g, w, derive.Options{MaxForms: maxForms})
					if err != nil {
						return fmt.Errorf("search %q: %w", inputs[i], err)
					}
				}
			default:
				return fmt.Errorf("unknown engine: %s (expected cyk or search)", engine)
			}

			rejected := 0
			out := cmd.OutOrStdout()
			for i, in := range inputs {
				verdict := "accept"
				if !valid[i] || !accepted[i] {
					verdict = "reject"
					rejected++
				}
				fmt.Fprintf(out, "%s\t%q\n", verdict, in)
			}
			logger().Infof("%d of %d words accepted", len(inputs)-rejected, len(inputs))

			if rejected > 0 {
				return errReported
			}
			return nil
		},
	}

	src.addFlags(cmd)
	cmd.Flags().StringVar(&engine, "engine", "cyk", "recognition engine (cyk, search)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of words recognized concurrently")
	cmd.Flags().IntVar(&maxForms, "max-forms", derive.DefaultMaxForms, "with --engine search, bound on sentential forms expanded per word")

	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
