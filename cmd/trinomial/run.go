package main

import (
	"context"
	"errors"
	"os"

	"github.com/aretw0/trinomial"
	"github.com/aretw0/trinomial/internal/logging"
	"github.com/aretw0/trinomial/internal/presentation/tui"
	"github.com/aretw0/trinomial/pkg/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive factoring session",
	Long: `Reads one expression per line and prints its explanation.
Type "exit" or "quit" (or send EOF) to leave.

With --json the session speaks NDJSON: each input line is an object
{"expression": "...", "notation": "..."}, a JSON string or raw text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		engine, closer, err := newEngine(cmd.Context(), logging.DebugHooks(logger))
		if err != nil {
			return err
		}
		defer closeQuietly(closer)

		var handler runner.IOHandler
		if jsonMode {
			handler = runner.NewJSONHandler(cmd.InOrStdin(), cmd.OutOrStdout())
		} else {
			var opts []runner.TextHandlerOption
			if tui.IsInteractive(os.Stdin) && tui.IsInteractive(os.Stdout) {
				tui.PrintBanner(cmd.OutOrStdout(), trinomial.Version)
				opts = append(opts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
			} else {
				opts = append(opts, runner.WithPrompt(""))
			}
			handler = runner.NewTextHandler(cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
		}

		r := runner.NewRunner(engine,
			runner.WithLogger(logger),
			runner.WithInputHandler(handler),
			runner.WithNotation(terminalNotation(cmd)),
		)
		err = r.Run(cmd.Context())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
}
