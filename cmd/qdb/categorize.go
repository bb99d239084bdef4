package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/assessdb/cleaner/internal/categorizer"
	"github.com/assessdb/cleaner/internal/cleaner"
	"github.com/assessdb/cleaner/internal/store"
)

var categorizeOut string

var categorizeCmd = &cobra.Command{
	Use:   "categorize <questions-file>",
	Short: "Classify raw interview questions into categories",
	Long: `Reads a grouped interview-question export (an array of groups, each
with a questions array), classifies every question through the model, and
writes the categorized records with freshly minted ids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := store.LoadGroups(args[0])
		if err != nil {
			return err
		}

		llm := cleaner.NewClient(cfg, logger)
		// The classification endpoint rate-limits slightly above 1 rps.
		throttle := cleaner.NewSleepThrottle(1100 * time.Millisecond)

		cat := categorizer.New(llm, throttle, logger)
		cat.CallTimeout = cfg.CallTimeout

		results, err := cat.Categorize(cmd.Context(), groups)
		if err != nil {
			return err
		}

		if err := store.WriteJSON(categorizeOut, results); err != nil {
			return err
		}
		cmd.Printf("Done. Saved %d categorized questions to %s\n", len(results), categorizeOut)
		return nil
	},
}

func init() {
	categorizeCmd.Flags().StringVarP(&categorizeOut, "out", "o", "categorized_questions.json", "output file")
	rootCmd.AddCommand(categorizeCmd)
}
