package cli

import (
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"codescope/internal/blocks"
)

// markersCmd represents the markers command
var markersCmd = &cobra.Command{
	Use:   "markers [file]",
	Short: "Find task markers and the declarations they annotate",
	Long: `Markers scans comments for task-marker tokens (TODO, FIXME, ...) and
attributes each marker to the nearest declaration that follows it. With no
argument, the whole project inventory is scanned.

Examples:
  codescope markers
  codescope markers src/services/auth.ts
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMarkers,
}

func init() {
	rootCmd.AddCommand(markersCmd)
}

// fileMarkers groups markers by file for reporting.
type fileMarkers struct {
	Path    string              `json:"path"`
	Markers []blocks.TaskMarker `json:"markers"`
}

func runMarkers(cmd *cobra.Command, args []string) error {
	ac, err := newAnalysisContext()
	if err != nil {
		return err
	}
	defer ac.provider.Close()

	var files []string
	if len(args) == 1 {
		files = []string{args[0]}
	} else {
		files, err = ac.inv.List()
		if err != nil {
			return err
		}
	}

	mapper := blocks.NewMapper()
	var results []fileMarkers

	for _, file := range files {
		unit, err := ac.provider.Parse(file)
		if err != nil {
			log.Printf("Warning: failed to parse %s: %v", file, err)
			continue
		}

		markers := mapper.ScanMarkers(unit, ac.cfg.Markers.Tokens)
		if len(markers) == 0 {
			continue
		}

		relPath, _ := filepath.Rel(ac.root, unit.Path)
		results = append(results, fileMarkers{
			Path:    filepath.ToSlash(relPath),
			Markers: markers,
		})
	}

	return printJSON(results)
}
