package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pommel-dev/probe/internal/pipeline"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build a fresh index, discarding any existing one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	root := GetProjectRoot()
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(probeDir(root)); err != nil {
		return fmt.Errorf("clean existing index: %w", err)
	}

	store, err := createStore(root, cfg)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer store.Close()

	fp := loadFingerprints(root)
	result, err := pipeline.Full(root, store, fp, pipelineConfig(cfg))
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}

	if IsJSONOutput() {
		return JSON(result)
	}
	Success("indexed %d files (%d skipped) in %s", result.IndexedFiles, result.SkippedFiles, probeDir(root))
	return nil
}
