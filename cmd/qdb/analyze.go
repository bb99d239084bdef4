package main

import (
	"github.com/spf13/cobra"

	"github.com/assessdb/cleaner/internal/analyzer"
	"github.com/assessdb/cleaner/internal/models"
	"github.com/assessdb/cleaner/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [database-file]",
	Short: "Report the category distribution of a database snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := cfg.InputPath
		if len(args) == 1 {
			dbPath = args[0]
		}

		records, err := store.LoadRecords(dbPath)
		if err != nil {
			return err
		}

		analysis := analyzer.Analyze(records, models.DefaultDenylist())
		analysis.Write(cmd.OutOrStdout())

		if err := store.WriteJSON(store.AnalysisFile, analysis.Counts); err != nil {
			return err
		}
		cmd.Printf("\nAnalysis saved to: %s\n", store.AnalysisFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
