// Package resolver maps import specifiers to files on disk. Only
// same-project relative and alias imports resolve; package imports are
// treated as external.
package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultAliasPrefix is the conventional root-relative import marker.
const DefaultAliasPrefix = "@/"

// probeSuffixes is the fixed probe order for extensionless specifiers.
var probeSuffixes = []string{
	"",
	".ts",
	".tsx",
	".js",
	".jsx",
	"/index.ts",
	"/index.tsx",
	"/index.js",
	"/index.jsx",
}

// Resolver resolves import specifiers against the project tree.
type Resolver struct {
	root        string
	aliasPrefix string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAliasPrefix overrides the root-relative alias prefix.
func WithAliasPrefix(prefix string) Option {
	return func(r *Resolver) {
		r.aliasPrefix = prefix
	}
}

// New creates a resolver rooted at the project root.
func New(root string, opts ...Option) *Resolver {
	r := &Resolver{
		root:        root,
		aliasPrefix: DefaultAliasPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the project root the resolver is anchored to.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve turns a specifier imported from fromDir into an absolute file path.
// The second return is false for external packages and for specifiers that
// match no file at any probed suffix; neither case is an error.
func (r *Resolver) Resolve(fromDir, specifier string) (string, bool) {
	var base string

	switch {
	case r.aliasPrefix != "" && strings.HasPrefix(specifier, r.aliasPrefix):
		base = filepath.Join(r.root, strings.TrimPrefix(specifier, r.aliasPrefix))
	case strings.HasPrefix(specifier, "."):
		base = filepath.Join(fromDir, specifier)
	case strings.HasPrefix(specifier, "/"):
		base = specifier
	default:
		// Bare specifier: a package import, not resolvable in-project.
		return "", false
	}

	for _, suffix := range probeSuffixes {
		candidate := base + suffix
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", false
			}
			return abs, true
		}
	}

	return "", false
}

// IsLocal reports whether a specifier would resolve inside the project,
// without touching the filesystem.
func (r *Resolver) IsLocal(specifier string) bool {
	if r.aliasPrefix != "" && strings.HasPrefix(specifier, r.aliasPrefix) {
		return true
	}
	return strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/")
}
