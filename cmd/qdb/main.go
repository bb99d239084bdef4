// qdb is the question database maintenance tool: it cleans assessment
// questions through a model-driven pipeline, classifies raw interview
// questions, and compiles per-category snapshots into a master database.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/assessdb/cleaner/internal/config"
	"github.com/assessdb/cleaner/internal/logging"
)

var (
	cfg    *config.Config
	logger zerolog.Logger

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "qdb",
	Short: "Assessment question database cleaner and compiler",
	Long: `qdb maintains the assessment question database.

It runs model-driven cleaning passes over question categories, classifies
raw interview questions, analyzes category distribution, and compiles
per-category snapshots into a single master database file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger = logging.New("qdb", cfg.Env)
		if verbose {
			logger = logger.Level(zerolog.DebugLevel)
		} else {
			logger = logger.Level(zerolog.InfoLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
