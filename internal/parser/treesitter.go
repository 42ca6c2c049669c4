package parser

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"github.com/altidx/altidx/internal/canon"
	"github.com/altidx/altidx/internal/symbol"
)

// TreeSitterParser parses C++ source into Definitions. It is a
// narrow, single-language front-end: namespaces, classes, structs,
// free functions, methods and fields become definitions; calls and
// field expressions (obj.f, p->f) become usages attached to the
// innermost enclosing function or method. A member named without an
// object (a bare identifier inside a method body) is not recorded as a
// usage.
type TreeSitterParser struct {
	language *tree_sitter.Language
}

// NewTreeSitterParser builds a parser bound to the C++ grammar.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{language: tree_sitter.NewLanguage(tree_sitter_cpp.Language())}
}

func (p *TreeSitterParser) Parse(path, text string) (map[string]symbol.Definition, error) {
	ts := tree_sitter.NewParser()
	defer ts.Close()
	if err := ts.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}

	content := []byte(text)
	tree := ts.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: tree-sitter returned no tree", path)
	}
	defer tree.Close()

	w := &cppWalker{
		content: content,
		prefix:  canon.FilePrefix(path),
		out:     make(map[string]symbol.Definition),
	}
	w.visit(tree.RootNode(), nil)
	return w.out, nil
}

// cppWalker recurses the parse tree carrying a stack of enclosing
// namespace/class names and the innermost function/method currently
// open (usages attach to it).
type cppWalker struct {
	content []byte
	prefix  []string
	out     map[string]symbol.Definition
}

func (w *cppWalker) text(n *tree_sitter.Node) string {
	return string(w.content[n.StartByte():n.EndByte()])
}

func (w *cppWalker) rangeOf(n *tree_sitter.Node) symbol.Range {
	sp, ep := n.StartPosition(), n.EndPosition()
	return symbol.Range{
		StartByte:  uint32(n.StartByte()),
		EndByte:    uint32(n.EndByte()),
		StartPoint: symbol.Point{Row: uint32(sp.Row), Column: uint32(sp.Column)},
		EndPoint:   symbol.Point{Row: uint32(ep.Row), Column: uint32(ep.Column)},
	}
}

func (w *cppWalker) define(path []string, kind symbol.SymbolType, n *tree_sitter.Node) {
	full := append([]string{}, w.prefix...)
	for _, c := range path {
		full = append(full, canon.NormalizeComponent(c))
	}
	def := symbol.Definition{
		OfficialPath:    full,
		SymbolType:      kind,
		FullRange:       w.rangeOf(n),
		DefinitionRange: w.rangeOf(n),
	}
	key := def.Path()
	if existing, ok := w.out[key]; ok {
		def.Usages = existing.Usages
	}
	w.out[key] = def
}

func (w *cppWalker) addUsage(path []string, u symbol.Usage) {
	full := append([]string{}, w.prefix...)
	for _, c := range path {
		full = append(full, canon.NormalizeComponent(c))
	}
	key := symbol.Definition{OfficialPath: full}.Path()
	def, ok := w.out[key]
	if !ok {
		def = symbol.Definition{OfficialPath: full}
	}
	def.Usages = append(def.Usages, u)
	w.out[key] = def
}

// visit walks n. scope is the stack of enclosing namespace/class/function
// names; scope[len(scope)-1], if it names a function, is where usages
// found directly under n attach.
func (w *cppWalker) visit(n *tree_sitter.Node, scope []string) {
	if n == nil {
		return
	}

	switch n.Kind() {
	case "namespace_definition":
		if name := n.ChildByFieldName("name"); name != nil {
			nested := append(append([]string{}, scope...), w.text(name))
			w.define(nested, symbol.NamespaceDeclaration, n)
			w.visitChildren(n, nested)
			return
		}

	case "class_specifier":
		if name := n.ChildByFieldName("name"); name != nil {
			nested := append(append([]string{}, scope...), w.text(name))
			w.define(nested, symbol.ClassDeclaration, n)
			w.visitChildren(n, nested)
			return
		}

	case "struct_specifier":
		if name := n.ChildByFieldName("name"); name != nil {
			nested := append(append([]string{}, scope...), w.text(name))
			w.define(nested, symbol.StructDeclaration, n)
			w.visitChildren(n, nested)
			return
		}

	case "field_declaration":
		if decl := n.ChildByFieldName("declarator"); decl != nil {
			if name := w.fieldName(decl); name != "" {
				nested := append(append([]string{}, scope...), name)
				w.define(nested, symbol.ClassFieldDeclaration, n)
			}
		}
		w.visitChildren(n, scope)
		return

	case "function_definition":
		decl := n.ChildByFieldName("declarator")
		if name, kind := w.functionName(decl, scope); name != "" {
			nested := append(append([]string{}, scope...), name)
			w.define(nested, kind, n)
			w.visitChildren(n, nested)
			return
		}

	case "preproc_include":
		w.define(append(append([]string{}, scope...), w.text(n)), symbol.ImportDeclaration, n)

	case "using_declaration":
		w.define(append(append([]string{}, scope...), w.text(n)), symbol.ImportDeclaration, n)

	case "call_expression":
		if fn := n.ChildByFieldName("function"); fn != nil {
			target := w.callTarget(fn)
			if target != "" {
				w.addUsage(scope, symbol.Usage{
					TargetsForGuesswork: []string{target},
					DebugHint:           "call " + target,
				})
			}
		}

	case "field_expression":
		if field := n.ChildByFieldName("field"); field != nil {
			w.addUsage(scope, symbol.Usage{
				TargetsForGuesswork: []string{w.text(field)},
				DebugHint:           "member access " + w.text(field),
			})
		}
	}

	w.visitChildren(n, scope)
}

func (w *cppWalker) visitChildren(n *tree_sitter.Node, scope []string) {
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		w.visit(child, scope)
	}
}

// fieldName unwraps pointer/reference/array declarators to find the
// field_identifier at the core of a field_declaration's declarator.
func (w *cppWalker) fieldName(decl *tree_sitter.Node) string {
	for decl != nil {
		if decl.Kind() == "field_identifier" {
			return w.text(decl)
		}
		if inner := decl.ChildByFieldName("declarator"); inner != nil {
			decl = inner
			continue
		}
		break
	}
	return ""
}

// functionName extracts a function/method/constructor name from a
// function_declarator, qualifying constructors and out-of-line method
// definitions (Class::method) against the current scope.
func (w *cppWalker) functionName(decl *tree_sitter.Node, scope []string) (string, symbol.SymbolType) {
	if decl == nil {
		return "", symbol.FunctionDeclaration
	}
	inner := decl.ChildByFieldName("declarator")
	if inner == nil {
		return "", symbol.FunctionDeclaration
	}
	switch inner.Kind() {
	case "qualified_identifier":
		parts := strings.Split(w.text(inner), "::")
		name := parts[len(parts)-1]
		if len(scope) > 0 && name == scope[len(scope)-1] {
			return name, symbol.ConstructorDeclaration
		}
		return name, symbol.MethodDeclaration
	case "identifier", "field_identifier":
		name := w.text(inner)
		if len(scope) > 0 && name == scope[len(scope)-1] {
			return name, symbol.ConstructorDeclaration
		}
		if len(scope) > 0 {
			return name, symbol.MethodDeclaration
		}
		return name, symbol.FunctionDeclaration
	}
	return "", symbol.FunctionDeclaration
}

func (w *cppWalker) callTarget(fn *tree_sitter.Node) string {
	switch fn.Kind() {
	case "identifier":
		return w.text(fn)
	case "field_expression":
		if field := fn.ChildByFieldName("field"); field != nil {
			return w.text(field)
		}
	case "qualified_identifier":
		return w.text(fn)
	}
	return ""
}
