// Package inventory lists project source files for full-tree scans.
package inventory

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks the project tree and returns files matching the configured
// glob patterns, honoring ignore patterns and the root .gitignore.
type Discovery struct {
	rootDir        string
	patterns       []compiledPattern
	ignorePatterns []compiledPattern
	gitIgnore      *ignore.GitIgnore
}

// New creates a discovery instance for rootDir. Patterns and ignore patterns
// are slash-separated globs matched against root-relative paths.
func New(rootDir string, patterns, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.patterns = append(d.patterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	// Root .gitignore rules apply on top of configured ignores.
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(rootDir, ".gitignore")); err == nil {
		d.gitIgnore = gi
	}

	return d, nil
}

// List returns the absolute paths of all matching files, sorted for
// deterministic output.
func (d *Discovery) List() ([]string, error) {
	files := []string{}

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}

		if d.matchesAnyPattern(relPath, d.patterns) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// shouldIgnore checks configured ignore patterns and .gitignore rules.
func (d *Discovery) shouldIgnore(relPath string) bool {
	if strings.HasPrefix(relPath, ".git/") || relPath == ".git" {
		return true
	}

	if d.matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}

	// A directory pattern like "node_modules/**" should also catch the bare
	// directory path itself.
	if d.matchesAnyPattern(relPath+"/**", d.ignorePatterns) {
		return true
	}

	return d.gitIgnore != nil && d.gitIgnore.MatchesPath(relPath)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level files have no slash, so "**/*.ts" never matches them. Retry
	// with the **/ prefix stripped, as users expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
