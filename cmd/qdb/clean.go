package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/assessdb/cleaner/internal/cleaner"
	"github.com/assessdb/cleaner/internal/models"
	"github.com/assessdb/cleaner/internal/store"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <category|all>",
	Short: "Clean one general category (or all of them) through the model",
	Long: `Runs the general cleaning pipeline over every question in the given
category. The reserved keyword "all" cleans every category except the
denylist (rc, spatial_reasoning, abstract_reasoning).`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("expected a category argument\nAvailable categories: %s\nUse 'all' to process every general category", generalCategoryList())
		}
		category := models.ParseCategory(args[0])
		if string(category) == models.CategoryAll {
			return nil
		}
		for _, c := range models.GeneralCategories {
			if category == c {
				return nil
			}
		}
		return fmt.Errorf("invalid category: %s\nAvailable categories: %s\nUse 'all' to process every general category", args[0], generalCategoryList())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		category := strings.ToLower(args[0])

		if err := cfg.ValidateForCleaning(); err != nil {
			return err
		}

		records, err := store.LoadRecords(cfg.InputPath)
		if err != nil {
			return err
		}

		c := newCleaner(cfg.GeneralDelay)
		result, err := c.CleanGeneral(cmd.Context(), records, category)
		if err != nil {
			return err
		}

		printCleanResult(cmd, result)
		return nil
	},
}

var cleanRCCmd = &cobra.Command{
	Use:   "clean-rc",
	Short: "Clean every reading-comprehension question through the model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateForCleaning(); err != nil {
			return err
		}

		records, err := store.LoadRecords(cfg.InputPath)
		if err != nil {
			return err
		}

		c := newCleaner(cfg.RCDelay)
		result, err := c.CleanRC(cmd.Context(), records)
		if err != nil {
			return err
		}

		printCleanResult(cmd, result)
		return nil
	},
}

var cleanBatchCmd = &cobra.Command{
	Use:   "clean-all-categories",
	Short: "Run the general cleaner over every general category in sequence",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateForCleaning(); err != nil {
			return err
		}

		records, err := store.LoadRecords(cfg.InputPath)
		if err != nil {
			return err
		}

		for _, category := range models.GeneralCategories {
			cmd.Printf(">>> Processing %s...\n", category)

			// Each category gets its own cleaner so processing logs stay
			// per-run.
			c := newCleaner(cfg.GeneralDelay)
			result, err := c.CleanGeneral(cmd.Context(), records, string(category))
			if err != nil {
				logger.Error().Err(err).Str("category", string(category)).Msg("category failed")
				cmd.Printf("x %s failed: %v\n", category, err)
				continue
			}
			cmd.Printf("+ %s completed: %d cleaned, %d failed\n", category, result.Cleaned, result.Failed)
		}
		return nil
	},
}

func newCleaner(delay time.Duration) *cleaner.Cleaner {
	llm := cleaner.NewClient(cfg, logger)
	return cleaner.New(llm, cleaner.NewSleepThrottle(delay), logger, cleaner.Options{
		OutputDir:   cfg.OutputDir,
		CallTimeout: cfg.CallTimeout,
		Denylist:    models.DefaultDenylist(),
	})
}

func printCleanResult(cmd *cobra.Command, result *models.CleanResult) {
	cmd.Printf("Category: %s\n", result.Category)
	cmd.Printf("Total questions processed: %d\n", result.Total)
	cmd.Printf("Successfully cleaned: %d\n", result.Cleaned)
	cmd.Printf("Failed to process: %d\n", result.Failed)
	cmd.Printf("Cleaned data: %s\n", result.OutputFile)
	cmd.Printf("Processing log: %s\n", result.LogFile)
	if len(result.FailedIDs) > 0 {
		cmd.Printf("Failed questions: %s\n", strings.Join(result.FailedIDs, ", "))
	}
}

func generalCategoryList() string {
	names := make([]string, len(models.GeneralCategories))
	for i, c := range models.GeneralCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(cleanCmd, cleanRCCmd, cleanBatchCmd)
}
