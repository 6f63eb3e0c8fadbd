package gitdiff

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileChanges is the structured change set of one staged file.
type FileChanges struct {
	Path         string       `json:"path"` // repo-relative
	Status       Status       `json:"status"`
	Changes      []LineChange `json:"changes"`
	ChangedLines []int        `json:"changed_lines"`
}

// Extractor obtains staged changes through git Operations.
type Extractor struct {
	ops      Operations
	repoPath string
}

// NewExtractor creates an extractor for the repository at repoPath.
func NewExtractor(repoPath string, ops Operations) *Extractor {
	if ops == nil {
		ops = NewOperations()
	}
	return &Extractor{ops: ops, repoPath: repoPath}
}

// StagedChanges returns per-file change sets for all staged source files.
// Test files are excluded; deleted files produce an empty change set since
// there is nothing left to map.
func (e *Extractor) StagedChanges() ([]FileChanges, error) {
	staged, err := e.ops.StagedFiles(e.repoPath)
	if err != nil {
		return nil, err
	}

	var results []FileChanges

	for _, file := range staged {
		if !isSourceFile(file.Path) || isTestFile(file.Path) {
			continue
		}

		fc := FileChanges{Path: file.Path, Status: file.Status}

		if file.Status != StatusDeleted {
			diff, err := e.ops.UnifiedDiff(e.repoPath, file.Path)
			if err != nil {
				return nil, fmt.Errorf("failed to diff %s: %w", file.Path, err)
			}
			fc.Changes = ParseUnifiedDiff(diff)
			fc.ChangedLines = ChangedLineNumbers(fc.Changes)
		}

		results = append(results, fc)
	}

	return results, nil
}

// sourceExtensions are the extensions kept by the extractor.
var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
}

func isSourceFile(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// isTestFile filters test and spec files by filename pattern.
func isTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	slashed := filepath.ToSlash(strings.ToLower(path))
	return strings.Contains(slashed, "__tests__/") || strings.Contains(slashed, "__mocks__/")
}
