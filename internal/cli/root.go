package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version     = "0.1.0"
	BuildCommit = "unknown"
	BuildDate   = "unknown"

	jsonOutput  bool
	verbose     bool
	projectRoot string
)

var rootCmd = &cobra.Command{
	Use:   "probe",
	Short: "A local, persistent code-search engine",
	Long: `probe indexes a codebase into a persistent inverted index and answers
keyword searches ranked by declaration/name/body relevance, with an
optional cross-encoder reranking pass.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "project", "p", "", "project root directory (default: current directory)")
	cobra.OnInitialize(initProjectRoot)
}

func initProjectRoot() {
	if projectRoot == "" {
		var err error
		projectRoot, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get current directory: %v\n", err)
			os.Exit(1)
		}
	}
}

// GetProjectRoot returns the resolved project root for the current invocation.
func GetProjectRoot() string { return projectRoot }

// IsJSONOutput reports whether --json was passed.
func IsJSONOutput() bool { return jsonOutput }

// IsVerbose reports whether --verbose was passed.
func IsVerbose() bool { return verbose }
