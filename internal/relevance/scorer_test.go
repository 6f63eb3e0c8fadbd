package relevance

// Test Plan for Relevance Scoring:
// - A file-name match scores 10 and suppresses the path tier
// - A path-only match scores 5
// - Export, function and type matches stack on top of name tiers
// - Matches at or above the threshold carry the full source text
// - Zero-score files are excluded
// - Results sort by score descending; ties keep inventory order
// - An empty query ranks nothing

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescope/internal/source"
)

// setupScorer writes files under a temp root and returns a scorer plus the
// absolute file list in name order.
func setupScorer(t *testing.T, files map[string]string) (*Scorer, string, []string) {
	t.Helper()
	root := t.TempDir()

	var list []string
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		list = append(list, path)
	}
	sort.Strings(list)

	provider, err := source.NewProvider()
	require.NoError(t, err)
	t.Cleanup(provider.Close)

	return NewScorer(provider, root), root, list
}

func TestRank_FileNameMatch(t *testing.T) {
	scorer, _, files := setupScorer(t, map[string]string{
		"src/userProfile.ts": "export const x = 1\n",
		"src/orders.ts":      "export const y = 2\n",
	})

	matches := scorer.Rank(files, "user")
	require.Len(t, matches, 1)
	assert.Equal(t, "src/userProfile.ts", matches[0].RelativePath)
	assert.Equal(t, scoreFileName, matches[0].Score)
	assert.Equal(t, []string{"user"}, matches[0].Keywords)

	// Score 10 reaches the full-source threshold.
	assert.Equal(t, "export const x = 1\n", matches[0].Source)
}

func TestRank_PathMatchScoresLower(t *testing.T) {
	scorer, _, files := setupScorer(t, map[string]string{
		"src/billing/invoice.ts": "export const x = 1\n",
	})

	matches := scorer.Rank(files, "billing")
	require.Len(t, matches, 1)
	assert.Equal(t, scorePath, matches[0].Score)
	assert.Empty(t, matches[0].Source)
}

func TestRank_SymbolTiersStack(t *testing.T) {
	scorer, _, files := setupScorer(t, map[string]string{
		"src/profile.ts": "export function loadProfile() {}\nexport interface ProfileData { id: string }\n",
	})

	matches := scorer.Rank(files, "profile")
	require.Len(t, matches, 1)

	// File name 10, export loadProfile 8, export ProfileData 8, function
	// loadProfile 6, type ProfileData 6.
	assert.Equal(t, scoreFileName+2*scoreExport+scoreFunction+scoreType, matches[0].Score)
	assert.NotEmpty(t, matches[0].Source)
	assert.Contains(t, matches[0].Summary, "loadprofile")
}

func TestRank_ZeroScoreExcluded(t *testing.T) {
	scorer, _, files := setupScorer(t, map[string]string{
		"src/orders.ts": "export const y = 2\n",
	})

	assert.Empty(t, scorer.Rank(files, "authentication"))
}

func TestRank_SortsByScoreDescending(t *testing.T) {
	scorer, _, files := setupScorer(t, map[string]string{
		"src/api/user.ts":  "export const u = 1\n",        // file name: 10
		"src/user/util.ts": "export const v = 2\n",        // path only: 5
		"src/userList.ts":  "export function user() {}\n", // file name + export + function: 24
	})

	matches := scorer.Rank(files, "user")
	require.Len(t, matches, 3)
	assert.Equal(t, "src/userList.ts", matches[0].RelativePath)
	assert.Equal(t, "src/api/user.ts", matches[1].RelativePath)
	assert.Equal(t, "src/user/util.ts", matches[2].RelativePath)
}

func TestRank_TiesKeepInventoryOrder(t *testing.T) {
	scorer, _, files := setupScorer(t, map[string]string{
		"src/a/user.ts": "export const a = 1\n",
		"src/b/user.ts": "export const b = 2\n",
	})

	matches := scorer.Rank(files, "user")
	require.Len(t, matches, 2)
	assert.Equal(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, "src/a/user.ts", matches[0].RelativePath)
	assert.Equal(t, "src/b/user.ts", matches[1].RelativePath)
}

func TestRank_EmptyQuery(t *testing.T) {
	scorer, _, files := setupScorer(t, map[string]string{
		"src/user.ts": "export const u = 1\n",
	})

	assert.Empty(t, scorer.Rank(files, ""))
	assert.Empty(t, scorer.Rank(files, "!!"))
}
