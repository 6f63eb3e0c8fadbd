package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// SourceExtensions lists the file extensions the provider understands, in
// resolver probe order.
var SourceExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// IsSourceFile reports whether path has a supported source extension.
func IsSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// languageFor selects the grammar for a file path.
func languageFor(path string) (*sitter.Language, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return sitter.NewLanguage(typescript.LanguageTypescript()), "typescript", nil
	case ".tsx":
		return sitter.NewLanguage(typescript.LanguageTSX()), "tsx", nil
	case ".js", ".jsx":
		return sitter.NewLanguage(javascript.Language()), "javascript", nil
	default:
		return nil, "", fmt.Errorf("unsupported source extension: %s", path)
	}
}

// parseFile reads and parses a single file into a Unit.
func parseFile(path string) (*Unit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	language, langName, err := languageFor(path)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(language)

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s file: %s", langName, path)
	}

	return newUnit(path, langName, src, tree), nil
}
