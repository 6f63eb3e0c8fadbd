package source

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Import is one import statement: the raw specifier plus the names it binds.
type Import struct {
	Specifier string
	Names     []string
	Line      int
}

// Imports returns the import statements of the unit in source order.
func (u *Unit) Imports() []Import {
	var imports []Import

	for _, stmt := range findChildrenByKind(u.Root(), "import_statement") {
		sourceNode := stmt.ChildByFieldName("source")
		if sourceNode == nil {
			continue
		}

		imp := Import{
			Specifier: trimStringLiteral(u.Text(sourceNode)),
			Line:      u.StartLine(stmt),
		}

		for _, clause := range findChildrenByKind(stmt, "import_clause") {
			imp.Names = append(imp.Names, u.importedNames(clause)...)
		}

		imports = append(imports, imp)
	}

	return imports
}

// importedNames collects the local bindings introduced by an import clause:
// the default import, named imports (aliases win), and namespace imports.
func (u *Unit) importedNames(clause *sitter.Node) []string {
	var names []string

	for i := 0; i < int(clause.ChildCount()); i++ {
		child := clause.Child(uint(i))
		switch child.Kind() {
		case "identifier":
			// Default import
			names = append(names, u.Text(child))
		case "namespace_import":
			for j := 0; j < int(child.ChildCount()); j++ {
				if inner := child.Child(uint(j)); inner.Kind() == "identifier" {
					names = append(names, u.Text(inner))
				}
			}
		case "named_imports":
			for _, spec := range findChildrenByKind(child, "import_specifier") {
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					names = append(names, u.Text(alias))
				} else if name := spec.ChildByFieldName("name"); name != nil {
					names = append(names, u.Text(name))
				}
			}
		}
	}

	return names
}

// trimStringLiteral strips the surrounding quotes from a string literal.
func trimStringLiteral(s string) string {
	return strings.Trim(s, "\"'`")
}
