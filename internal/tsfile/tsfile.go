// Package tsfile provides per-file syntactic navigation over a parsed
// TypeScript or JavaScript source file: named exports, the default export,
// function/variable declarations, and identifier-to-declaration resolution
// within the file. It is the "source file" half of the TypeScript source
// project abstraction; internal/tsproject is the "file set" half.
package tsfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	tstypescript "github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// File wraps a parsed source file and its concrete syntax tree.
type File struct {
	Path    string
	Content []byte
	tree    *sitter.Tree
	Root    *sitter.Node
}

// Parse parses source content according to the language implied by path's
// extension. Callers must call Close when done with the file.
func Parse(path string, content []byte) (*File, error) {
	lang, err := languageFor(path)
	if err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	p.SetLanguage(lang)

	tree, err := p.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &File{
		Path:    path,
		Content: content,
		tree:    tree,
		Root:    tree.RootNode(),
	}, nil
}

// Close releases the underlying syntax tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
	}
}

func languageFor(path string) (*sitter.Language, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return tstypescript.GetLanguage(), nil
	case ".tsx":
		return tsx.GetLanguage(), nil
	case ".js", ".mjs", ".cjs":
		return javascript.GetLanguage(), nil
	case ".jsx":
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported extension for %s", path)
	}
}

// Text returns the source text spanned by node.
func (f *File) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(f.Content)
}

// StartLine returns the 1-based line on which node begins.
func (f *File) StartLine(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// EndLine returns the 1-based line on which node ends.
func (f *File) EndLine(node *sitter.Node) int {
	return int(node.EndPoint().Row) + 1
}

// FindChildByType returns the first direct child of the given type, or nil.
func FindChildByType(node *sitter.Node, typeName string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == typeName {
			return child
		}
	}
	return nil
}

// ChildrenOfType returns every direct child of the given type, in order.
func ChildrenOfType(node *sitter.Node, typeName string) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == typeName {
			out = append(out, child)
		}
	}
	return out
}

// NamedChildren returns every direct named (non-punctuation) child.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		out = append(out, node.NamedChild(i))
	}
	return out
}

// HasChildWithText reports whether any direct child's text equals value.
func (f *File) HasChildWithText(node *sitter.Node, value string) bool {
	if node == nil {
		return false
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if f.Text(node.Child(i)) == value {
			return true
		}
	}
	return false
}

// StripQuotes removes a single layer of matching quote characters.
func StripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') || (first == '`' && last == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Walk visits node and every descendant in depth-first pre-order.
func Walk(node *sitter.Node, visit func(*sitter.Node)) {
	if node == nil {
		return
	}
	visit(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(i), visit)
	}
}

// TopLevelStatements returns the direct children of the file's program root.
func (f *File) TopLevelStatements() []*sitter.Node {
	return NamedChildren(f.Root)
}
