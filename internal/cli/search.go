package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pommel-dev/probe/internal/output"
)

var (
	searchLimit      int
	searchExt        string
	searchNoRerank   bool
	searchContextNum int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the index",
	Long: `Search runs a boosted keyword query against declaration, name and body
fields, optionally reranked by a cross-encoder collaborator.

Examples:
  probe search "parse config"
  probe search "http handler" --ext go --limit 5
  probe search "retry logic" --no-rerank --context 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum results (default: config search.default_limit)")
	searchCmd.Flags().StringVar(&searchExt, "ext", "", "filter by exact file extension (e.g. go, java)")
	searchCmd.Flags().BoolVar(&searchNoRerank, "no-rerank", false, "skip the reranking stage even if configured")
	searchCmd.Flags().IntVar(&searchContextNum, "context", -1, "context lines around a match (default: config search.context_lines)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	queryText := args[0]
	root := GetProjectRoot()

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	store, err := openStore(root, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if searchNoRerank {
		cfg.Reranker.Enabled = false
	}
	engine := buildEngine(store, cfg)

	limit := searchLimit
	if limit <= 0 {
		limit = cfg.Search.DefaultLimit
	}
	contextLines := searchContextNum
	if contextLines < 0 {
		contextLines = cfg.Search.ContextLines
	}

	results, err := engine.Search(searchContext(), queryText, limit, searchExt, contextLines)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if IsJSONOutput() {
		return JSON(results)
	}

	if len(results) == 0 {
		Info("No results found for: %s", queryText)
		return nil
	}

	mode := output.FormatNormal
	if IsVerbose() {
		mode = output.FormatVerbose
	}
	formatter := output.NewFormatter(mode, queryText)

	Info("%s for: %s\n", formatter.FormatSummary(len(results)), queryText)
	for i, r := range results {
		fmt.Println(formatter.FormatResult(r, i))
		if !IsVerbose() {
			for _, line := range strings.Split(strings.TrimRight(r.Snippet, "\n"), "\n") {
				fmt.Printf("   | %s\n", line)
			}
		}
	}
	return nil
}
