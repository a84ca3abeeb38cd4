package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/trinomial/internal/logging"
	"github.com/aretw0/trinomial/internal/presentation/tui"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/runner"
	"github.com/spf13/cobra"
)

var factorCmd = &cobra.Command{
	Use:   "factor EXPR...",
	Short: "Factor one or more expressions and print the explanation",
	Example: `  trinomial factor "b^2-5b+6"
  trinomial factor --notation plain "v^16+58v^8+697"
  trinomial factor --json "x^2+5x+6" "b^2+4b"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		engine, closer, err := newEngine(cmd.Context(), logging.DebugHooks(logger))
		if err != nil {
			return err
		}
		defer closeQuietly(closer)

		var render runner.ContentRenderer
		if !jsonMode && out == os.Stdout && tui.IsInteractive(os.Stdout) {
			render = tui.NewRenderer()
		}
		enc := json.NewEncoder(out)
		notation := terminalNotation(cmd)

		failed := 0
		for _, arg := range args {
			exp, ferr := engine.FactorWith(cmd.Context(), arg, notation)
			if ferr != nil {
				failed++
			}
			if jsonMode {
				resp := runner.Response{Type: "explanation", Explanation: exp}
				if ferr != nil {
					resp.Error = ferr.Error()
				}
				if err := enc.Encode(resp); err != nil {
					return err
				}
				continue
			}
			printExplanation(cmd, exp, ferr, render)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d expressions could not be factored", failed, len(args))
		}
		return nil
	},
}

func printExplanation(cmd *cobra.Command, exp *domain.Explanation, err error, render runner.ContentRenderer) {
	out := cmd.OutOrStdout()
	if exp == nil {
		fprintf(out, "Error: %v\n", err)
		return
	}
	md := runner.Markdown(exp)
	if render != nil {
		if rendered, rerr := render(md); rerr == nil {
			md = rendered
		}
	}
	fprintf(out, "%s\n", md)
}

func init() {
	rootCmd.AddCommand(factorCmd)
	factorCmd.Flags().Bool("json", false, "Print one JSON object per expression")
}
