package cli

import (
	"github.com/spf13/cobra"
)

// impactCmd represents the impact command
var impactCmd = &cobra.Command{
	Use:   "impact <file>",
	Short: "Analyze what a file depends on and what depends on it",
	Long: `Impact builds the forward dependency set of a file (bounded depth,
deduplicated) and scans the whole project for its dependents, then reports
which of its exports are actually used externally.

Examples:
  # Analyze a component
  codescope impact src/components/Button.tsx

  # Analyze against a different project root
  codescope impact -r /path/to/project src/utils/format.ts
`,
	Args: cobra.ExactArgs(1),
	RunE: runImpact,
}

func init() {
	rootCmd.AddCommand(impactCmd)
}

func runImpact(cmd *cobra.Command, args []string) error {
	ac, err := newAnalysisContext()
	if err != nil {
		return err
	}
	defer ac.provider.Close()

	analysis, err := ac.newAnalyzer().Analyze(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return printJSON(analysis)
}
