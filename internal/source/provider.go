package source

import (
	"fmt"
	"path/filepath"

	"github.com/maypok86/otter"
)

// Parse-cache capacity. Units are small relative to the trees they keep
// alive, so the bound is on file count rather than bytes.
const defaultCacheCapacity = 4096

// Provider parses source files and caches the resulting Units for the
// lifetime of the process. The cache is keyed by absolute path and is only
// ever read-then-insert-if-absent, so repeated lookups within one analysis
// reuse the same parse.
type Provider struct {
	cache otter.Cache[string, *Unit]
}

// NewProvider creates a provider with the default cache capacity.
func NewProvider() (*Provider, error) {
	cache, err := otter.MustBuilder[string, *Unit](defaultCacheCapacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build parse cache: %w", err)
	}
	return &Provider{cache: cache}, nil
}

// Parse returns the Unit for path, parsing it on first use.
func (p *Provider) Parse(path string) (*Unit, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if unit, ok := p.cache.Get(abs); ok {
		return unit, nil
	}

	unit, err := parseFile(abs)
	if err != nil {
		return nil, err
	}

	p.cache.Set(abs, unit)
	return unit, nil
}

// Close releases the cache.
func (p *Provider) Close() {
	p.cache.Close()
}
