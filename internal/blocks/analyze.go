package blocks

import (
	"log"
	"path/filepath"

	"codescope/internal/gitdiff"
	"codescope/internal/source"
)

// FileAnalysis is the change analysis of one staged file.
type FileAnalysis struct {
	Path           string         `json:"path"`
	Status         gitdiff.Status `json:"status"`
	ChangedLines   []int          `json:"changed_lines"`
	AffectedBlocks []CodeBlock    `json:"affected_blocks"`
}

// DiffAnalysis is the change analysis of the whole staged set.
type DiffAnalysis struct {
	Root  string         `json:"root"`
	Files []FileAnalysis `json:"files"`
}

// AnalyzeChanges maps every staged file's changed lines onto declarations.
// Deleted files keep an empty block list; files that fail to parse keep
// their line-level changes but contribute no blocks.
func AnalyzeChanges(provider *source.Provider, root string, changes []gitdiff.FileChanges) *DiffAnalysis {
	mapper := NewMapper()
	analysis := &DiffAnalysis{Root: root}

	for _, fc := range changes {
		fa := FileAnalysis{
			Path:         fc.Path,
			Status:       fc.Status,
			ChangedLines: fc.ChangedLines,
		}

		if fc.Status != gitdiff.StatusDeleted && len(fc.ChangedLines) > 0 {
			unit, err := provider.Parse(filepath.Join(root, fc.Path))
			if err != nil {
				log.Printf("Warning: failed to parse %s: %v", fc.Path, err)
			} else {
				fa.AffectedBlocks = mapper.MapChangedLines(unit, fc.ChangedLines)
			}
		}

		analysis.Files = append(analysis.Files, fa)
	}

	return analysis
}
