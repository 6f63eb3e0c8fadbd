package blocks

// Test Plan for Change Analysis:
// - Changed lines of each staged file map to affected blocks
// - Deleted files carry no blocks
// - Files that fail to parse keep line-level changes with no blocks
// - Files without mappable lines still appear with empty blocks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescope/internal/gitdiff"
	"codescope/internal/source"
)

func TestAnalyzeChanges(t *testing.T) {
	root := t.TempDir()
	content := "export function greet(name: string) {\n  return 'hi ' + name\n}\n"
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "greet.ts"), []byte(content), 0644))

	provider, err := source.NewProvider()
	require.NoError(t, err)
	defer provider.Close()

	changes := []gitdiff.FileChanges{
		{Path: "src/greet.ts", Status: gitdiff.StatusModified, ChangedLines: []int{2}},
		{Path: "src/gone.ts", Status: gitdiff.StatusDeleted},
	}

	analysis := AnalyzeChanges(provider, root, changes)
	require.Len(t, analysis.Files, 2)
	assert.Equal(t, root, analysis.Root)

	greet := analysis.Files[0]
	assert.Equal(t, []int{2}, greet.ChangedLines)
	require.Len(t, greet.AffectedBlocks, 1)
	assert.Equal(t, "greet", greet.AffectedBlocks[0].Name)

	gone := analysis.Files[1]
	assert.Equal(t, gitdiff.StatusDeleted, gone.Status)
	assert.Empty(t, gone.AffectedBlocks)
}

func TestAnalyzeChanges_UnparsableFile(t *testing.T) {
	root := t.TempDir()

	provider, err := source.NewProvider()
	require.NoError(t, err)
	defer provider.Close()

	// The file is staged but missing on disk, so parsing fails.
	changes := []gitdiff.FileChanges{
		{Path: "src/missing.ts", Status: gitdiff.StatusModified, ChangedLines: []int{1}},
	}

	analysis := AnalyzeChanges(provider, root, changes)
	require.Len(t, analysis.Files, 1)
	assert.Equal(t, []int{1}, analysis.Files[0].ChangedLines)
	assert.Empty(t, analysis.Files[0].AffectedBlocks)
}
