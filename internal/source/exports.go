package source

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Export is one exported symbol of a unit.
type Export struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // function, class, interface, type, enum, variable
}

// Exports returns the unit's exported symbols in source order.
func (u *Unit) Exports() []Export {
	var exports []Export

	for _, stmt := range findChildrenByKind(u.Root(), "export_statement") {
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			exports = append(exports, u.declarationExports(decl)...)
			continue
		}

		// export { a, b as c }
		for _, clause := range findChildrenByKind(stmt, "export_clause") {
			for _, spec := range findChildrenByKind(clause, "export_specifier") {
				name := spec.ChildByFieldName("name")
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					name = alias
				}
				if name != nil {
					exports = append(exports, Export{Name: u.Text(name), Kind: "variable"})
				}
			}
		}

		// export default <expression>
		if value := stmt.ChildByFieldName("value"); value != nil {
			exports = append(exports, Export{Name: "default", Kind: kindOfValue(value)})
		}
	}

	return exports
}

// declarationExports maps an exported declaration node to symbols.
func (u *Unit) declarationExports(decl *sitter.Node) []Export {
	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration":
		return []Export{{Name: u.nameOf(decl), Kind: "function"}}
	case "class_declaration", "abstract_class_declaration":
		return []Export{{Name: u.nameOf(decl), Kind: "class"}}
	case "interface_declaration":
		return []Export{{Name: u.nameOf(decl), Kind: "interface"}}
	case "type_alias_declaration":
		return []Export{{Name: u.nameOf(decl), Kind: "type"}}
	case "enum_declaration":
		return []Export{{Name: u.nameOf(decl), Kind: "enum"}}
	case "lexical_declaration", "variable_declaration":
		var exports []Export
		for _, declarator := range findChildrenByKind(decl, "variable_declarator") {
			name := declarator.ChildByFieldName("name")
			if name == nil {
				continue
			}
			kind := "variable"
			if value := declarator.ChildByFieldName("value"); value != nil {
				kind = kindOfValue(value)
			}
			exports = append(exports, Export{Name: u.Text(name), Kind: kind})
		}
		return exports
	}
	return nil
}

// kindOfValue classifies an exported value expression.
func kindOfValue(value *sitter.Node) string {
	switch value.Kind() {
	case "arrow_function", "function_expression", "function", "generator_function":
		return "function"
	case "class", "class_declaration":
		return "class"
	}
	return "variable"
}

// nameOf returns the text of a declaration's name field.
func (u *Unit) nameOf(decl *sitter.Node) string {
	if name := decl.ChildByFieldName("name"); name != nil {
		return u.Text(name)
	}
	return ""
}

// FunctionNames returns the names of top-level functions, including arrow
// functions bound to const/let declarations.
func (u *Unit) FunctionNames() []string {
	var names []string

	visit := func(decl *sitter.Node) {
		switch decl.Kind() {
		case "function_declaration", "generator_function_declaration":
			if name := u.nameOf(decl); name != "" {
				names = append(names, name)
			}
		case "lexical_declaration", "variable_declaration":
			for _, declarator := range findChildrenByKind(decl, "variable_declarator") {
				value := declarator.ChildByFieldName("value")
				if value == nil {
					continue
				}
				if kindOfValue(value) != "function" {
					continue
				}
				if name := declarator.ChildByFieldName("name"); name != nil {
					names = append(names, u.Text(name))
				}
			}
		}
	}

	root := u.Root()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		if child.Kind() == "export_statement" {
			if decl := child.ChildByFieldName("declaration"); decl != nil {
				visit(decl)
			}
			continue
		}
		visit(child)
	}

	return names
}

// TypeNames returns the names of top-level interfaces and type aliases.
func (u *Unit) TypeNames() []string {
	var names []string

	visit := func(decl *sitter.Node) {
		switch decl.Kind() {
		case "interface_declaration", "type_alias_declaration":
			if name := u.nameOf(decl); name != "" {
				names = append(names, name)
			}
		}
	}

	root := u.Root()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		if child.Kind() == "export_statement" {
			if decl := child.ChildByFieldName("declaration"); decl != nil {
				visit(decl)
			}
			continue
		}
		visit(child)
	}

	return names
}
