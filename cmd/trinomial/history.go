package main

import (
	"encoding/json"
	"time"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or forget stored results",
	Long: `Reads the configured history store (memory stores are empty in a new process,
so this is mostly useful with redis or postgres).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		forget, _ := cmd.Flags().GetString("forget")
		jsonMode, _ := cmd.Flags().GetBool("json")

		engine, closer, err := newEngine(cmd.Context(), domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeQuietly(closer)

		if forget != "" {
			return engine.Forget(cmd.Context(), forget)
		}

		records, err := engine.History(cmd.Context())
		if err != nil {
			return err
		}
		if jsonMode {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(records)
		}
		for _, rec := range records {
			factored := "(unsolved)"
			if rec.Explanation != nil && rec.Explanation.Solved {
				factored = rec.Explanation.Factored
			}
			fprintf(cmd.OutOrStdout(), "%s  %s = %s\n", rec.CreatedAt.Local().Format(time.DateTime), rec.Key, factored)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("forget", "", "Remove the stored result for this expression")
	historyCmd.Flags().Bool("json", false, "Print records as JSON")
}
