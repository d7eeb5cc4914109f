package tsfile

import sitter "github.com/smacker/go-tree-sitter"

// ExportedDecl is one exported binding found at the top level of a file:
// a function/variable declaration, or a named re-export.
type ExportedDecl struct {
	// Name is the exported binding name (the alias, if the export renames it).
	Name string
	// Decl is the declaration node backing the export (function_declaration,
	// variable_declarator, arrow function value, ...), or nil for a
	// re-export whose original binding lives in another module.
	Decl *sitter.Node
	// Node is the export site itself (export_statement or export_specifier),
	// used for line-number reporting.
	Node *sitter.Node
}

// NamedExports walks the file's top level and returns every exported
// binding: function declarations, variable declarators (Decl is the
// arrow/function value when the initializer is one, else the declarator
// itself), and named re-export specifiers (export { a, b as c }).
func (f *File) NamedExports() []ExportedDecl {
	var out []ExportedDecl
	for _, stmt := range f.TopLevelStatements() {
		if stmt.Type() != "export_statement" {
			continue
		}
		if FindChildByType(stmt, "default") != nil {
			continue // handled by DefaultExport
		}
		if clause := FindChildByType(stmt, "export_clause"); clause != nil {
			out = append(out, f.exportSpecifiers(stmt, clause)...)
			continue
		}
		for i := 0; i < int(stmt.ChildCount()); i++ {
			child := stmt.Child(i)
			switch child.Type() {
			case "function_declaration", "generator_function_declaration":
				if name := FindChildByFieldName(child, "name"); name != nil {
					out = append(out, ExportedDecl{Name: f.Text(name), Decl: child, Node: stmt})
				}
			case "lexical_declaration", "variable_declaration":
				out = append(out, f.exportedDeclarators(stmt, child)...)
			}
		}
	}
	return out
}

func (f *File) exportSpecifiers(stmt, clause *sitter.Node) []ExportedDecl {
	var out []ExportedDecl
	for _, spec := range ChildrenOfType(clause, "export_specifier") {
		nameNode := FindChildByFieldName(spec, "name")
		aliasNode := FindChildByFieldName(spec, "alias")
		if nameNode == nil {
			continue
		}
		exportedName := f.Text(nameNode)
		var decl *sitter.Node
		if aliasNode != nil {
			exportedName = f.Text(aliasNode)
		} else {
			// Re-exporting a binding under its own name; resolve it within
			// this file. A binding that lives only in another module finds
			// no declaration here and stays nil.
			decl = f.FindDeclaration(f.Text(nameNode))
		}
		if aliasNode != nil {
			decl = f.FindDeclaration(f.Text(nameNode))
		}
		out = append(out, ExportedDecl{Name: exportedName, Decl: decl, Node: spec})
	}
	return out
}

func (f *File) exportedDeclarators(stmt, declList *sitter.Node) []ExportedDecl {
	var out []ExportedDecl
	for _, d := range ChildrenOfType(declList, "variable_declarator") {
		nameNode := FindChildByFieldName(d, "name")
		if nameNode == nil {
			continue
		}
		valueNode := FindChildByFieldName(d, "value")
		decl := d
		if valueNode != nil && (valueNode.Type() == "arrow_function" || valueNode.Type() == "function") {
			decl = valueNode
		}
		out = append(out, ExportedDecl{Name: f.Text(nameNode), Decl: decl, Node: stmt})
	}
	return out
}

// DefaultExport returns the node backing `export default ...`, or nil.
func (f *File) DefaultExport() *sitter.Node {
	for _, stmt := range f.TopLevelStatements() {
		if stmt.Type() != "export_statement" {
			continue
		}
		if FindChildByType(stmt, "default") == nil {
			continue
		}
		for i := 0; i < int(stmt.ChildCount()); i++ {
			child := stmt.Child(i)
			switch child.Type() {
			case "function_declaration", "generator_function_declaration", "class_declaration",
				"arrow_function", "function", "identifier", "call_expression", "member_expression":
				return child
			}
		}
	}
	return nil
}

// FindDeclaration resolves an identifier to its top-level declaration within
// this file: a function declaration, or a variable declarator's initializer
// value of any kind (the declarator itself when it has no initializer).
// Returns nil if no matching declaration is found (identifier resolution is
// deliberately shallow — no cross-file or type-level following).
func (f *File) FindDeclaration(name string) *sitter.Node {
	var found *sitter.Node
	for _, stmt := range f.TopLevelStatements() {
		decl := stmt
		if stmt.Type() == "export_statement" {
			if d := FindChildByType(stmt, "function_declaration"); d != nil {
				decl = d
			} else if d := FindChildByType(stmt, "lexical_declaration"); d != nil {
				decl = d
			} else if d := FindChildByType(stmt, "variable_declaration"); d != nil {
				decl = d
			} else {
				continue
			}
		}
		switch decl.Type() {
		case "function_declaration", "generator_function_declaration":
			if n := FindChildByFieldName(decl, "name"); n != nil && f.Text(n) == name {
				found = decl
			}
		case "lexical_declaration", "variable_declaration":
			for _, d := range ChildrenOfType(decl, "variable_declarator") {
				n := FindChildByFieldName(d, "name")
				if n == nil || f.Text(n) != name {
					continue
				}
				if v := FindChildByFieldName(d, "value"); v != nil {
					found = v
				} else {
					found = d
				}
			}
		}
		if found != nil {
			return found
		}
	}
	return nil
}

// FindChildByFieldName returns the child bound to the given grammar field.
func FindChildByFieldName(node *sitter.Node, field string) *sitter.Node {
	if node == nil {
		return nil
	}
	return node.ChildByFieldName(field)
}
