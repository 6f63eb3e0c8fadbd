package cli

import (
	"github.com/spf13/cobra"

	"codescope/internal/blocks"
	"codescope/internal/gitdiff"
)

// changesCmd represents the changes command
var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Map staged changes onto the declarations they touch",
	Long: `Changes reads the staged file list from git, parses each file's
zero-context diff into per-line change events, and maps every changed line
to its smallest enclosing named declaration.

Examples:
  # Analyze the currently staged changes
  codescope changes
`,
	RunE: runChanges,
}

func init() {
	rootCmd.AddCommand(changesCmd)
}

func runChanges(cmd *cobra.Command, args []string) error {
	ac, err := newAnalysisContext()
	if err != nil {
		return err
	}
	defer ac.provider.Close()

	extractor := gitdiff.NewExtractor(ac.root, nil)
	changes, err := extractor.StagedChanges()
	if err != nil {
		return err
	}

	analysis := blocks.AnalyzeChanges(ac.provider, ac.root, changes)
	return printJSON(analysis)
}
