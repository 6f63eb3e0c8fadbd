package impact

import (
	"path/filepath"
	"strings"
)

// roleInput is what a role rule may look at: the file's base name, its
// slash-separated relative path, and its raw content.
type roleInput struct {
	base    string // lower-cased file name without extension
	ext     string // lower-cased extension with dot
	relPath string // slash-separated, lower-cased
	content string
}

// roleRule is one classification rule. Rules are evaluated in order; the
// first match wins.
type roleRule struct {
	role  Role
	match func(in roleInput) bool
}

// roleRules is the fixed classification policy. Order is significant: hooks
// before components so useButton.tsx classifies as a hook, types before
// utilities so shared type barrels are not swallowed by the /lib/ rule.
var roleRules = []roleRule{
	{RoleHook, func(in roleInput) bool {
		return strings.HasPrefix(in.base, "use") && len(in.base) > 3
	}},
	{RoleHook, func(in roleInput) bool {
		return strings.Contains(in.relPath, "/hooks/")
	}},
	{RoleComponent, func(in roleInput) bool {
		return in.ext == ".tsx" || in.ext == ".jsx"
	}},
	{RoleComponent, func(in roleInput) bool {
		return strings.Contains(in.relPath, "/components/")
	}},
	{RoleType, func(in roleInput) bool {
		return strings.HasSuffix(in.base, ".d") || in.base == "types" ||
			strings.Contains(in.relPath, "/types/")
	}},
	{RoleConfig, func(in roleInput) bool {
		return strings.Contains(in.base, "config") || strings.HasSuffix(in.base, "rc")
	}},
	{RoleService, func(in roleInput) bool {
		return strings.Contains(in.relPath, "/services/") || strings.Contains(in.relPath, "/api/") ||
			strings.Contains(in.base, "service") || strings.Contains(in.base, "client")
	}},
	{RoleService, func(in roleInput) bool {
		return strings.Contains(in.content, "fetch(") || strings.Contains(in.content, "axios")
	}},
	{RoleUtility, func(in roleInput) bool {
		return strings.Contains(in.relPath, "/utils/") || strings.Contains(in.relPath, "/lib/") ||
			strings.Contains(in.base, "util") || strings.Contains(in.base, "helper")
	}},
	{RoleType, func(in roleInput) bool {
		// Pure declaration files: interfaces and type aliases only.
		return strings.Contains(in.content, "interface ") && !strings.Contains(in.content, "function ") &&
			!strings.Contains(in.content, "=>")
	}},
}

// ClassifyRole derives the role of a file from its name, path and content.
// relPath is the project-relative path; content may be nil.
func ClassifyRole(relPath string, content []byte) Role {
	fileName := filepath.Base(relPath)
	ext := strings.ToLower(filepath.Ext(fileName))

	in := roleInput{
		base:    strings.ToLower(strings.TrimSuffix(fileName, ext)),
		ext:     ext,
		relPath: "/" + strings.ToLower(filepath.ToSlash(relPath)),
		content: string(content),
	}

	for _, rule := range roleRules {
		if rule.match(in) {
			return rule.role
		}
	}
	return RoleUnknown
}
