// Package config holds the analysis configuration, loadable from
// .codescope.yml with environment variable overrides.
package config

// Config is the complete codescope configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Markers  MarkersConfig  `yaml:"markers" mapstructure:"markers"`
}

// AnalysisConfig tunes dependency traversal and import resolution.
type AnalysisConfig struct {
	MaxDepth    int    `yaml:"max_depth" mapstructure:"max_depth"`       // forward traversal bound
	AliasPrefix string `yaml:"alias_prefix" mapstructure:"alias_prefix"` // root-relative import marker
}

// PathsConfig defines which files belong to the project inventory.
type PathsConfig struct {
	Source []string `yaml:"source" mapstructure:"source"` // glob patterns for source files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// MarkersConfig configures task-marker scanning.
type MarkersConfig struct {
	Tokens []string `yaml:"tokens" mapstructure:"tokens"` // comment tokens treated as task markers
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MaxDepth:    3,
			AliasPrefix: "@/",
		},
		Paths: PathsConfig{
			Source: []string{
				"**/*.ts",
				"**/*.tsx",
				"**/*.js",
				"**/*.jsx",
			},
			Ignore: []string{
				"node_modules/**",
				"dist/**",
				"build/**",
				"coverage/**",
				".next/**",
				"**/*.test.*",
				"**/*.spec.*",
				"**/__tests__/**",
				"**/__mocks__/**",
			},
		},
		Markers: MarkersConfig{
			Tokens: []string{"TODO", "FIXME", "HACK"},
		},
	}
}
