package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/trinomial/internal/logging"
	"github.com/aretw0/trinomial/pkg/adapters/loam"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/persistence/middleware"
	"github.com/aretw0/trinomial/pkg/runner"
	"github.com/spf13/cobra"
)

var worksheetCmd = &cobra.Command{
	Use:   "worksheet DIR",
	Short: "Grade a directory of exercises",
	Long: `Loads every Markdown or JSON document in DIR as an exercise and factors it.

Frontmatter keys: id, title, expression, expect. When expression is
missing the first body line is used. An exercise passes when its
factorization matches expect (binomial order ignored), or when it is
solved and no expect is given. The command fails if any exercise fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		if cmd.Flags().Changed("concurrency") {
			cfg.Worksheet.Concurrency, _ = cmd.Flags().GetInt("concurrency")
		}

		loader, err := loam.Open(args[0])
		if err != nil {
			return err
		}

		engine, closer, err := newEngine(cmd.Context(), logging.DebugHooks(logger), middleware.ReadOnly())
		if err != nil {
			return err
		}
		defer closeQuietly(closer)

		grades, err := runner.GradeWorksheet(cmd.Context(), engine, loader, domain.NotationPlain, cfg.Worksheet.Concurrency)
		if err != nil {
			return err
		}

		if jsonMode {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(grades); err != nil {
				return err
			}
		} else {
			printGrades(cmd, grades)
		}

		passed, total := runner.Summary(grades)
		if passed < total {
			return fmt.Errorf("%d of %d exercises failed", total-passed, total)
		}
		return nil
	},
}

func printGrades(cmd *cobra.Command, grades []domain.Grade) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fprintf(tw, "STATUS\tID\tEXPRESSION\tGOT\tEXPECT\n")
	for _, g := range grades {
		status := "PASS"
		if !g.Passed {
			status = "FAIL"
		}
		got := g.Got
		if g.Error != "" {
			got = "error: " + g.Error
		} else if got == "" {
			got = "(no integer pair)"
		}
		fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", status, g.Exercise.ID, g.Exercise.Expression, got, g.Exercise.Expect)
	}
	_ = tw.Flush()

	passed, total := runner.Summary(grades)
	fprintf(cmd.OutOrStdout(), "\n%d/%d passed\n", passed, total)
}

func init() {
	rootCmd.AddCommand(worksheetCmd)
	worksheetCmd.Flags().Bool("json", false, "Print grades as JSON")
	worksheetCmd.Flags().Int("concurrency", 4, "Exercises graded in parallel")
}
