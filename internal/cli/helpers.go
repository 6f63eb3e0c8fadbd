package cli

import (
	"fmt"

	"codescope/internal/config"
	"codescope/internal/impact"
	"codescope/internal/inventory"
	"codescope/internal/resolver"
	"codescope/internal/source"
)

// analysisContext bundles the collaborators every analysis command needs.
type analysisContext struct {
	cfg      *config.Config
	root     string
	provider *source.Provider
	res      *resolver.Resolver
	inv      *inventory.Discovery
}

// newAnalysisContext builds the collaborators from the loaded configuration.
func newAnalysisContext() (*analysisContext, error) {
	cfg, root, err := loadProject()
	if err != nil {
		return nil, err
	}

	provider, err := source.NewProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create source provider: %w", err)
	}

	inv, err := inventory.New(root, cfg.Paths.Source, cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid path patterns: %w", err)
	}

	return &analysisContext{
		cfg:      cfg,
		root:     root,
		provider: provider,
		res:      resolver.New(root, resolver.WithAliasPrefix(cfg.Analysis.AliasPrefix)),
		inv:      inv,
	}, nil
}

// newAnalyzer builds an impact analyzer with CLI progress reporting.
func (ac *analysisContext) newAnalyzer() *impact.Analyzer {
	return impact.NewAnalyzer(ac.provider, ac.res, ac.inv,
		impact.WithMaxDepth(ac.cfg.Analysis.MaxDepth),
		impact.WithProgress(NewScanProgressReporter(quietFlag)),
	)
}
