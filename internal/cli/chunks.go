package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pommel-dev/probe/internal/chunker"
)

var chunksCmd = &cobra.Command{
	Use:   "chunks <file>",
	Short: "Show the chunks probe would extract from a file, without indexing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)
}

func runChunks(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("chunks: %w", err)
	}

	reg := chunker.NewRegistry()
	chunks, err := reg.Dump(path, content)
	if err != nil {
		return fmt.Errorf("chunks: %w", err)
	}

	if IsJSONOutput() {
		return JSON(chunks)
	}

	for i, c := range chunks {
		fmt.Printf("#%d %s %q lines %d-%d\n", i+1, c.Kind, c.Name, c.StartLine, c.EndLine)
		fmt.Printf("  declaration: %s\n", c.Declaration)
	}
	return nil
}
