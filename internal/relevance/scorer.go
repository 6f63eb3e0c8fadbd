package relevance

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"codescope/internal/source"
)

// Match tier weights, applied additively per keyword. File-name beats path;
// symbol tiers stack on top of either.
const (
	scoreFileName = 10
	scorePath     = 5
	scoreExport   = 8
	scoreFunction = 6
	scoreType     = 6
)

// FullSourceThreshold is the score at or above which a match carries the
// file's complete source text. A token-budget trade-off for the consumer,
// not a correctness requirement.
const FullSourceThreshold = 10

// ContextMatch is one ranked file.
type ContextMatch struct {
	File         string   `json:"file"`
	RelativePath string   `json:"relative_path"`
	Score        int      `json:"score"`
	Keywords     []string `json:"keywords"`
	Summary      string   `json:"summary"`
	Source       string   `json:"source,omitempty"`
}

// Scorer ranks inventory files by weighted textual matches.
type Scorer struct {
	provider *source.Provider
	root     string
}

// NewScorer creates a scorer over the given provider and project root.
func NewScorer(provider *source.Provider, root string) *Scorer {
	return &Scorer{provider: provider, root: root}
}

// Rank scores every file against the query's keyword set, drops zero-score
// files, and sorts descending by score. The sort is stable, so ties keep
// inventory order.
func (s *Scorer) Rank(files []string, query string) []ContextMatch {
	keywords := ExtractKeywords(query)
	if len(keywords) == 0 {
		return nil
	}

	var matches []ContextMatch

	for _, file := range files {
		match := s.scoreFile(file, keywords)
		if match.Score == 0 {
			continue
		}

		if match.Score >= FullSourceThreshold {
			if unit, err := s.provider.Parse(file); err == nil {
				match.Source = string(unit.Source)
			}
		}

		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// scoreFile scores one file across all keywords and all tiers. Tiers are not
// mutually exclusive except file-name vs path; a keyword may score the name
// tier and several symbol tiers at once.
func (s *Scorer) scoreFile(file string, keywords []string) ContextMatch {
	relPath, _ := filepath.Rel(s.root, file)
	relPath = filepath.ToSlash(relPath)

	fileName := strings.ToLower(filepath.Base(file))
	lowerPath := strings.ToLower(relPath)

	// Symbol extraction is on-demand; a file that fails to parse still
	// participates in the name and path tiers.
	var exports []string
	var functions []string
	var types []string
	if unit, err := s.provider.Parse(file); err == nil {
		for _, exp := range unit.Exports() {
			exports = append(exports, strings.ToLower(exp.Name))
		}
		for _, name := range unit.FunctionNames() {
			functions = append(functions, strings.ToLower(name))
		}
		for _, name := range unit.TypeNames() {
			types = append(types, strings.ToLower(name))
		}
	}

	match := ContextMatch{File: file, RelativePath: relPath}
	matched := map[string]bool{}

	for _, kw := range keywords {
		points := 0

		if strings.Contains(fileName, kw) {
			points += scoreFileName
		} else if strings.Contains(lowerPath, kw) {
			points += scorePath
		}

		for _, name := range exports {
			if strings.Contains(name, kw) {
				points += scoreExport
			}
		}
		for _, name := range functions {
			if strings.Contains(name, kw) {
				points += scoreFunction
			}
		}
		for _, name := range types {
			if strings.Contains(name, kw) {
				points += scoreType
			}
		}

		if points > 0 {
			match.Score += points
			if !matched[kw] {
				matched[kw] = true
				match.Keywords = append(match.Keywords, kw)
			}
		}
	}

	if match.Score > 0 {
		match.Summary = summarize(exports, functions, types)
	}

	return match
}

// summarize builds a short symbol overview for the match.
func summarize(exports, functions, types []string) string {
	var parts []string
	if len(exports) > 0 {
		parts = append(parts, fmt.Sprintf("exports: %s", strings.Join(clip(exports, 8), ", ")))
	}
	if len(functions) > 0 {
		parts = append(parts, fmt.Sprintf("functions: %s", strings.Join(clip(functions, 8), ", ")))
	}
	if len(types) > 0 {
		parts = append(parts, fmt.Sprintf("types: %s", strings.Join(clip(types, 8), ", ")))
	}
	return strings.Join(parts, "; ")
}

func clip(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return append(append([]string{}, s[:n]...), "...")
}
