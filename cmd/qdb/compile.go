package main

import (
	"github.com/spf13/cobra"

	"github.com/assessdb/cleaner/internal/compiler"
	"github.com/assessdb/cleaner/internal/models"
	"github.com/assessdb/cleaner/internal/store"
)

var compileDir string

// extractCategories are pulled straight from the main database during
// compilation; they never go through a cleaning pass.
var extractCategories = []models.Category{
	models.CategorySpatialReasoning,
	models.CategoryAbstractReasoning,
}

var compileCmd = &cobra.Command{
	Use:   "compile [database-file]",
	Short: "Compile all categories into one master database file",
	Long: `Extracts the uncleaned categories (spatial_reasoning,
abstract_reasoning) from the main database, discovers previously cleaned
per-category files by naming convention, and concatenates everything into
a single timestamped snapshot with a per-category breakdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := cfg.InputPath
		if len(args) == 1 {
			dbPath = args[0]
		}

		records, err := store.LoadRecords(dbPath)
		if err != nil {
			// Source-load failure is fatal for a compile run.
			return err
		}
		cmd.Printf("Loaded %d total questions from %s\n", len(records), dbPath)

		extractor := &compiler.Extractor{OutputDir: compileDir, Logger: logger}
		extracted, err := extractor.Extract(records, extractCategories)
		if err != nil {
			return err
		}

		files, err := compiler.DiscoverCleanedFiles(compileDir, compiler.DiscoverCategories, logger)
		if err != nil {
			return err
		}

		comp := &compiler.Compiler{OutputDir: compileDir, Logger: logger}
		all, counts := comp.Compile(extracted, extractCategories, files, compiler.DiscoverCategories)

		result, err := comp.Save(all, counts)
		if err != nil {
			return err
		}

		cmd.Printf("Compiled database: %s\n\n", result.OutputFile)
		compiler.BuildReport(counts, result.Total).Write(cmd.OutOrStdout())
		return nil
	},
}

var stripRCCmd = &cobra.Command{
	Use:   "strip-rc <compiled-file>",
	Short: "Remove RC questions from a compiled database snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := store.LoadRecords(args[0])
		if err != nil {
			return err
		}

		filtered, removed := compiler.StripRC(records)
		if err := store.WriteJSON(store.NoRCFile, filtered); err != nil {
			return err
		}

		cmd.Printf("Removed %d RC questions\n", removed)
		cmd.Printf("Saved to: %s\n", store.NoRCFile)
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVar(&compileDir, "dir", ".", "directory holding cleaned category files; compiled output goes here too")
	rootCmd.AddCommand(compileCmd, stripRCCmd)
}
