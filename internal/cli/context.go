package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"codescope/internal/relevance"
)

var contextLimitFlag int

// contextCmd represents the context command
var contextCmd = &cobra.Command{
	Use:   "context <keywords...>",
	Short: "Rank project files by relevance to free-text keywords",
	Long: `Context tokenizes the given text into keywords (including camel-case
decomposition) and ranks every project file by weighted matches against file
names, paths, exported symbols, function names and type names.

Examples:
  codescope context optimize getUserProfile performance
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().IntVarP(&contextLimitFlag, "limit", "n", 20, "maximum number of matches to report")
}

func runContext(cmd *cobra.Command, args []string) error {
	ac, err := newAnalysisContext()
	if err != nil {
		return err
	}
	defer ac.provider.Close()

	files, err := ac.inv.List()
	if err != nil {
		return err
	}

	scorer := relevance.NewScorer(ac.provider, ac.root)
	matches := scorer.Rank(files, strings.Join(args, " "))

	if contextLimitFlag > 0 && len(matches) > contextLimitFlag {
		matches = matches[:contextLimitFlag]
	}

	return printJSON(matches)
}
