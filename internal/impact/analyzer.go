// Package impact builds the forward dependency set and reverse dependent set
// of a source file and reconciles export usage across them.
package impact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"codescope/internal/inventory"
	"codescope/internal/resolver"
	"codescope/internal/source"
)

// DefaultMaxDepth bounds forward traversal.
const DefaultMaxDepth = 3

// ErrTargetNotFound means the target file does not exist on disk.
var ErrTargetNotFound = errors.New("target file not found")

// ProgressReporter reports progress during the full-project dependent scan.
type ProgressReporter interface {
	OnScanStart(totalFiles int)
	OnFileScanned(processed, totalFiles int, fileName string)
	OnScanComplete(dependents int, duration time.Duration)
}

// Analyzer answers impact queries against one project tree.
type Analyzer struct {
	provider *source.Provider
	res      *resolver.Resolver
	inv      *inventory.Discovery
	maxDepth int
	progress ProgressReporter
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxDepth overrides the forward traversal depth bound.
func WithMaxDepth(depth int) Option {
	return func(a *Analyzer) {
		if depth > 0 {
			a.maxDepth = depth
		}
	}
}

// WithProgress configures progress reporting for the dependent scan.
func WithProgress(progress ProgressReporter) Option {
	return func(a *Analyzer) {
		a.progress = progress
	}
}

// NewAnalyzer creates an analyzer over the given collaborators.
func NewAnalyzer(provider *source.Provider, res *resolver.Resolver, inv *inventory.Discovery, opts ...Option) *Analyzer {
	a := &Analyzer{
		provider: provider,
		res:      res,
		inv:      inv,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the ImpactAnalysis for target. The target must exist on
// disk; external and unresolved imports are silently excluded from the graph.
func (a *Analyzer) Analyze(ctx context.Context, target string) (*ImpactAnalysis, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, target)
	}

	eg := newEdgeGraph()

	// The visited set is scoped to this call and threaded through the
	// recursion, so nested or concurrent queries cannot interfere.
	visited := map[string]bool{abs: true}
	dependencies := a.collectDependencies(abs, 1, visited, eg)

	dependents, err := a.scanDependents(ctx, abs, eg)
	if err != nil {
		return nil, err
	}

	exports := a.extractExports(abs)
	markExternalUsage(exports, dependents)

	relPath, _ := filepath.Rel(a.res.Root(), abs)
	nodes, edges := eg.counts()

	return &ImpactAnalysis{
		AnalysisID:   uuid.NewString(),
		Target:       abs,
		RelativePath: filepath.ToSlash(relPath),
		GeneratedAt:  time.Now().UTC(),
		Exports:      exports,
		Dependencies: dependencies,
		Dependents:   dependents,
		NodeCount:    nodes,
		EdgeCount:    edges,
	}, nil
}

// collectDependencies walks imports recursively up to the depth bound,
// returning a flattened list. Imports recorded at depth d are d hops from
// the target; the walk stops once depth reaches maxDepth. The first edge to
// reach a file wins; files already in the visited set are skipped, which
// also bounds cycles.
func (a *Analyzer) collectDependencies(file string, depth int, visited map[string]bool, eg *edgeGraph) []DependencyNode {
	unit, err := a.provider.Parse(file)
	if err != nil {
		log.Printf("Warning: failed to parse %s: %v", file, err)
		return nil
	}

	var nodes []DependencyNode

	for _, imp := range unit.Imports() {
		resolved, ok := a.res.Resolve(filepath.Dir(file), imp.Specifier)
		if !ok {
			continue // external or unresolved
		}
		if !a.insideRoot(resolved) {
			continue
		}
		if visited[resolved] {
			continue
		}
		visited[resolved] = true

		relPath, _ := filepath.Rel(a.res.Root(), resolved)
		content, _ := os.ReadFile(resolved)

		nodes = append(nodes, DependencyNode{
			File:          resolved,
			RelativePath:  filepath.ToSlash(relPath),
			Role:          ClassifyRole(relPath, content),
			ImportedNames: imp.Names,
		})
		eg.addEdge(file, resolved)

		if depth < a.maxDepth {
			nodes = append(nodes, a.collectDependencies(resolved, depth+1, visited, eg)...)
		}
	}

	return nodes
}

// scanDependents scans every in-project source file and collects the ones
// whose imports resolve to the target. Always a full scan; dependents cannot
// be known locally.
func (a *Analyzer) scanDependents(ctx context.Context, target string, eg *edgeGraph) ([]DependentRecord, error) {
	files, err := a.inv.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list project files: %w", err)
	}

	startTime := time.Now()
	if a.progress != nil {
		a.progress.OnScanStart(len(files))
	}

	var dependents []DependentRecord

	for i, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if a.progress != nil {
			a.progress.OnFileScanned(i+1, len(files), filepath.Base(file))
		}

		abs, err := filepath.Abs(file)
		if err != nil || abs == target {
			continue
		}

		unit, err := a.provider.Parse(abs)
		if err != nil {
			// One malformed file must not abort a scan over thousands.
			log.Printf("Warning: failed to parse %s: %v", abs, err)
			continue
		}

		names := map[string]bool{}
		imported := false
		for _, imp := range unit.Imports() {
			resolved, ok := a.res.Resolve(filepath.Dir(abs), imp.Specifier)
			if !ok || resolved != target {
				continue
			}
			imported = true
			for _, name := range imp.Names {
				names[name] = true
			}
		}
		if !imported {
			continue
		}

		relPath, _ := filepath.Rel(a.res.Root(), abs)
		record := DependentRecord{
			File:         abs,
			RelativePath: filepath.ToSlash(relPath),
			UsageCount:   len(names),
		}
		for name := range names {
			record.ImportedNames = append(record.ImportedNames, name)
		}
		sort.Strings(record.ImportedNames)

		dependents = append(dependents, record)
		eg.addEdge(abs, target)
	}

	if a.progress != nil {
		a.progress.OnScanComplete(len(dependents), time.Since(startTime))
	}

	return dependents, nil
}

// extractExports reads the target's exported symbols. Usage is unknown at
// this stage; markExternalUsage fills it in afterwards.
func (a *Analyzer) extractExports(target string) []ExportedSymbol {
	unit, err := a.provider.Parse(target)
	if err != nil {
		log.Printf("Warning: failed to parse %s: %v", target, err)
		return nil
	}

	var exports []ExportedSymbol
	for _, exp := range unit.Exports() {
		exports = append(exports, ExportedSymbol{Name: exp.Name, Kind: exp.Kind})
	}
	return exports
}

// markExternalUsage reconciles exports against the dependent scan: an export
// is used externally iff some dependent imports it by name.
func markExternalUsage(exports []ExportedSymbol, dependents []DependentRecord) {
	used := map[string]bool{}
	for _, dep := range dependents {
		for _, name := range dep.ImportedNames {
			used[name] = true
		}
	}
	for i := range exports {
		exports[i].UsedExternally = used[exports[i].Name]
	}
}

// insideRoot reports whether path lies inside the project root.
func (a *Analyzer) insideRoot(path string) bool {
	rel, err := filepath.Rel(a.res.Root(), path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
