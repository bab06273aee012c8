package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pommel-dev/probe/internal/pipeline"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex [path]",
	Short: "Reindex only files changed since the last index or reindex",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, args []string) error {
	root := GetProjectRoot()
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	store, err := openStore(root, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	fp := loadFingerprints(root)
	result, err := pipeline.Incremental(root, store, fp, pipelineConfig(cfg))
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}

	if IsJSONOutput() {
		return JSON(result)
	}
	Success("reindexed %d files (%d skipped)", result.IndexedFiles, result.SkippedFiles)
	return nil
}
