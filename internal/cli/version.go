package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsJSONOutput() {
			return JSON(map[string]string{
				"version": Version,
				"commit":  BuildCommit,
				"date":    BuildDate,
			})
		}
		fmt.Printf("probe %s (commit %s, built %s)\n", Version, BuildCommit, BuildDate)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
