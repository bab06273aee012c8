package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Delete the .probe index directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	root := GetProjectRoot()
	if len(args) == 1 {
		root = args[0]
	}

	dir := probeDir(root)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		Info("nothing to clean: %s does not exist", dir)
		return nil
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	Success("removed %s", dir)
	return nil
}
