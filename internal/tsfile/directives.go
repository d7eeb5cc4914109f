package tsfile

// FirstDirective returns the literal string value of the file's leading
// directive prologue statement (e.g. "use server", "use client"), or ""
// if the file has no such statement as its first non-comment statement.
func (f *File) FirstDirective() string {
	for _, stmt := range f.TopLevelStatements() {
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" {
			return ""
		}
		str := FindChildByType(stmt, "string")
		if str == nil {
			return ""
		}
		return StripQuotes(f.Text(str))
	}
	return ""
}

// Imports returns the module specifier of every import_statement in the file.
func (f *File) Imports() []string {
	var out []string
	for _, stmt := range f.TopLevelStatements() {
		if stmt.Type() != "import_statement" {
			continue
		}
		src := FindChildByFieldName(stmt, "source")
		if src == nil {
			continue
		}
		out = append(out, StripQuotes(f.Text(src)))
	}
	return out
}

// SourceText returns the raw text of the whole file, for cheap substring
// checks that don't need a syntactic answer (e.g. detecting a symbol
// reference anywhere in the file body).
func (f *File) SourceText() string {
	return string(f.Content)
}
