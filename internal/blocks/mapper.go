package blocks

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"codescope/internal/source"
)

// Direction selects which declaration a line maps to: the smallest one
// enclosing it, or the nearest one starting after it. Markers precede the
// code they annotate, so marker mapping walks forward; diff lines sit inside
// the code they change, so diff mapping walks outward.
type Direction int

const (
	Enclosing Direction = iota
	Following
)

// Mapper locates declarations relative to line numbers inside parsed units.
type Mapper struct{}

// NewMapper creates a Mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapChangedLines maps each changed line to its smallest enclosing named
// declaration and merges lines that land in the same declaration. Lines with
// no enclosing declaration (changes in an import list, say) are dropped.
func (m *Mapper) MapChangedLines(unit *source.Unit, lines []int) []CodeBlock {
	set := newBlockSet()

	for _, line := range lines {
		block, ok := m.NearestDeclaration(unit, line, Enclosing)
		if !ok {
			continue
		}
		set.add(block, line)
	}

	return set.blocks()
}

// NearestDeclaration finds the declaration for a line in the given
// direction. For Enclosing it walks the ancestor chain of the smallest node
// at the line outward; for Following it picks the minimum positive
// line-distance across all declarations in the file.
func (m *Mapper) NearestDeclaration(unit *source.Unit, line int, dir Direction) (CodeBlock, bool) {
	switch dir {
	case Enclosing:
		return m.enclosingDeclaration(unit, line)
	case Following:
		return m.followingDeclaration(unit, line)
	}
	return CodeBlock{}, false
}

// enclosingDeclaration walks from the smallest node at the line's first
// character outward until a declaration kind is found.
func (m *Mapper) enclosingDeclaration(unit *source.Unit, line int) (CodeBlock, bool) {
	offset, ok := unit.OffsetOfLine(line)
	if !ok {
		return CodeBlock{}, false
	}

	// Skip the line's indentation so the lookup starts inside the
	// declaration rather than in the surrounding block.
	for offset < len(unit.Source) && (unit.Source[offset] == ' ' || unit.Source[offset] == '\t') {
		offset++
	}

	for node := unit.NodeAt(offset); node != nil; node = node.Parent() {
		if kind, ok := declarationKind(node); ok {
			return m.makeBlock(unit, node, kind), true
		}
		if inner, kind, ok := wrappedDeclaration(node); ok {
			return m.makeBlock(unit, inner, kind), true
		}
	}

	return CodeBlock{}, false
}

// wrappedDeclaration drills through nodes whose first line belongs to a
// wrapper rather than the declaration itself: export statements, and the
// declaration lists around function-valued declarators.
func wrappedDeclaration(node *sitter.Node) (*sitter.Node, Kind, bool) {
	switch node.Kind() {
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			if kind, ok := declarationKind(decl); ok {
				return decl, kind, true
			}
			return wrappedDeclaration(decl)
		}
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(uint(i))
			if child.Kind() != "variable_declarator" {
				continue
			}
			if kind, ok := declarationKind(child); ok {
				return child, kind, true
			}
		}
	}
	return nil, "", false
}

// followingDeclaration picks the declaration whose start line is nearest
// after the given line, across the whole file.
func (m *Mapper) followingDeclaration(unit *source.Unit, line int) (CodeBlock, bool) {
	var best *sitter.Node
	var bestKind Kind
	bestDistance := -1

	walkDeclarations(unit.Root(), func(node *sitter.Node, kind Kind) {
		distance := unit.StartLine(node) - line
		if distance <= 0 {
			return
		}
		if bestDistance < 0 || distance < bestDistance {
			best, bestKind, bestDistance = node, kind, distance
		}
	})

	if best == nil {
		return CodeBlock{}, false
	}
	return m.makeBlock(unit, best, bestKind), true
}

// makeBlock builds a CodeBlock from a declaration node, upgrading functions
// that return markup to components.
func (m *Mapper) makeBlock(unit *source.Unit, node *sitter.Node, kind Kind) CodeBlock {
	if kind == KindFunction && returnsMarkup(node) {
		kind = KindComponent
	}

	return CodeBlock{
		Kind:      kind,
		Name:      declarationName(unit, node),
		StartLine: unit.LineOf(int(node.StartByte())),
		EndLine:   unit.LineOf(int(node.EndByte())),
		Signature: signatureOf(unit, node),
		FullText:  unit.Text(node),
	}
}

// declarationKind reports whether a node is one of the mapped declaration
// kinds. An arrow function or function expression counts only through the
// variable declarator it is bound to, so the block carries the binding name.
func declarationKind(node *sitter.Node) (Kind, bool) {
	switch node.Kind() {
	case "function_declaration", "generator_function_declaration":
		return KindFunction, true
	case "method_definition":
		return KindMethod, true
	case "class_declaration", "abstract_class_declaration":
		return KindClass, true
	case "interface_declaration":
		return KindInterface, true
	case "variable_declarator":
		if value := node.ChildByFieldName("value"); value != nil {
			switch value.Kind() {
			case "arrow_function", "function_expression", "function", "generator_function":
				return KindFunction, true
			}
		}
	}
	return "", false
}

// walkDeclarations visits every declaration node in the tree.
func walkDeclarations(root *sitter.Node, visit func(node *sitter.Node, kind Kind)) {
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if kind, ok := declarationKind(node); ok {
			visit(node, kind)
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(uint(i)))
		}
	}
	walk(root)
}

// declarationName extracts the name of a declaration node.
func declarationName(unit *source.Unit, node *sitter.Node) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return unit.Text(name)
	}
	return ""
}

// returnsMarkup checks structurally whether a function body returns a
// JSX-like expression. Being a tree walk over return statements, markup
// mentioned in comments or strings cannot trigger it.
func returnsMarkup(decl *sitter.Node) bool {
	found := false

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil || found {
			return
		}
		if node.Kind() == "return_statement" && containsJSX(node) {
			found = true
			return
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(uint(i)))
		}
	}
	walk(decl)

	return found
}

// containsJSX reports whether any descendant is a JSX node.
func containsJSX(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if containsJSX(node.Child(uint(i))) {
			return true
		}
	}
	return false
}

// signatureOf extracts the declaration text up to the opening brace of its
// body, falling back to the first line when no brace is present.
func signatureOf(unit *source.Unit, node *sitter.Node) string {
	text := unit.Text(node)
	if idx := strings.Index(text, "{"); idx >= 0 {
		return strings.TrimSpace(text[:idx]) + " { ... }"
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return strings.TrimSpace(text)
}
