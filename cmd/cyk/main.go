package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// errReported is returned by commands that have already printed their
// failure. It only sets the exit status.
var errReported = errors.New("reported")

func main() {
	var verbose int
	var logPath string

	rootCmd := &cobra.Command{
		Use:           "cyk",
		Short:         "Recognize and parse words with grammars in Chomsky Normal Form",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logPath != "" {
				commonlog.Configure(verbose, &logPath)
			} else {
				commonlog.Configure(verbose, nil)
			}
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRecognizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newLSPCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "cyk:", err)
		}
		os.Exit(1)
	}
}

func logger() commonlog.Logger {
	return commonlog.GetLogger("cyk.cli")
}
