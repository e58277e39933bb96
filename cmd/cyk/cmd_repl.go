package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/cyk/cyk"
	"github.com/dhamidi/cyk/format"
	"github.com/dhamidi/cyk/grammar"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".cyk_history"
	prompt      = "cyk> "
)

const replHelp = `Type a word to parse it. Commands:
  :grammar           print the grammar
  :format <name>     switch output format (text, bracket, json, dot)
  :chart             toggle printing the span table
  :quit              leave`

func newReplCmd() *cobra.Command {
	var src grammarSource
	opts := parseOptions{format: "text"}

	cmd := &cobra.Command{
		Use:           "repl <grammar>",
		Short:         "Parse words interactively",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := src.load(args)
			if err != nil {
				return err
			}
			return runRepl(g, opts)
		},
	}

	src.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVar(&opts.chart, "chart", false, "print the span table before each tree")

	return cmd
}

func runRepl(g *grammar.Grammar, opts parseOptions) error {
	p := cyk.New(g)
	if !g.IsInChomskyNormalForm() {
		fmt.Fprintln(os.Stderr, "warning: grammar is not in Chomsky Normal Form, every word will be rejected")
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Printf("start %s, terminals %s. Type :help for commands.\n", g.Start().Name, terminalList(g))

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			ln.AppendHistory(line)
			fields := strings.Fields(line)
			switch fields[0] {
			case ":quit", ":q":
				return nil
			case ":help":
				fmt.Println(replHelp)
			case ":grammar":
				fmt.Print(g.String())
			case ":chart":
				opts.chart = !opts.chart
				fmt.Printf("chart %s\n", onOff(opts.chart))
			case ":format":
				if len(fields) != 2 {
					fmt.Println("usage: :format <name>")
					continue
				}
				if _, err := format.NewEncoder(fields[1], io.Discard); err != nil {
					fmt.Fprintln(os.Stderr, err)
					continue
				}
				opts.format = fields[1]
			default:
				fmt.Println("unknown command. Type :help for a list.")
			}
			continue
		}

		ln.AppendHistory(line)
		if err := parseAndPrint(os.Stdout, p, g, line, opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func terminalList(g *grammar.Grammar) string {
	names := make([]string, 0, len(g.Terminals()))
	for _, t := range g.Terminals() {
		names = append(names, t.Name)
	}
	return strings.Join(names, " ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
