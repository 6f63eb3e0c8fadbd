package impact

import "time"

// Role is a closed classification of a file's purpose.
type Role string

const (
	RoleComponent Role = "component"
	RoleHook      Role = "hook"
	RoleUtility   Role = "utility"
	RoleService   Role = "service"
	RoleType      Role = "type"
	RoleConfig    Role = "config"
	RoleUnknown   Role = "unknown"
)

// DependencyNode is one resolved forward edge: a file the target imports,
// directly or transitively within the depth bound.
type DependencyNode struct {
	File          string   `json:"file"`
	RelativePath  string   `json:"relative_path"`
	Role          Role     `json:"role"`
	ImportedNames []string `json:"imported_names"`
}

// DependentRecord is one file whose imports resolve to the target.
// UsageCount is the number of distinct imported names, a proxy for coupling
// strength.
type DependentRecord struct {
	File          string   `json:"file"`
	RelativePath  string   `json:"relative_path"`
	ImportedNames []string `json:"imported_names"`
	UsageCount    int      `json:"usage_count"`
}

// ExportedSymbol is an export of the target file. UsedExternally is unknown
// at extraction time; it is reconciled against the dependent scan afterwards.
type ExportedSymbol struct {
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	UsedExternally bool   `json:"used_externally"`
}

// ImpactAnalysis is the complete answer to "what does this file depend on,
// and what depends on it".
type ImpactAnalysis struct {
	AnalysisID   string    `json:"analysis_id"`
	Target       string    `json:"target"`
	RelativePath string    `json:"relative_path"`
	GeneratedAt  time.Time `json:"generated_at"`

	Exports      []ExportedSymbol  `json:"exports"`
	Dependencies []DependencyNode  `json:"dependencies"`
	Dependents   []DependentRecord `json:"dependents"`

	// Edge counts from the underlying directed graph.
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}
