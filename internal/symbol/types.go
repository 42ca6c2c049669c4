// Package symbol defines the language-agnostic symbol records the index
// stores and serializes: SymbolType, Usage, and Definition.
package symbol

import (
	"fmt"
	"strings"
)

// SymbolType tags the kind of a Definition. It is a closed enumeration;
// unknown tags never occur in a well-formed index, but Decode
// never rejects a value outside the known range, since the wire encoding
// must tolerate schema evolution.
type SymbolType int

const (
	Unknown SymbolType = iota
	NamespaceDeclaration
	ClassDeclaration
	StructDeclaration
	TypeAlias
	ImportDeclaration
	CommentDefinition
	FunctionDeclaration
	MethodDeclaration
	ConstructorDeclaration
	ClassFieldDeclaration
	VariableDefinition
	FunctionCall
	VariableUsage
)

// symbolTypeNames provides O(1) lookup for symbol type names, following
// the same table-over-switch pattern used for SymbolKind elsewhere in
// this codebase's lineage.
var symbolTypeNames = map[SymbolType]string{
	NamespaceDeclaration:   "namespace_declaration",
	ClassDeclaration:       "class_declaration",
	StructDeclaration:      "struct_declaration",
	TypeAlias:              "type_alias",
	ImportDeclaration:      "import_declaration",
	CommentDefinition:      "comment_definition",
	FunctionDeclaration:    "function_declaration",
	MethodDeclaration:      "method_declaration",
	ConstructorDeclaration: "constructor_declaration",
	ClassFieldDeclaration:  "class_field_declaration",
	VariableDefinition:     "variable_definition",
	FunctionCall:           "function_call",
	VariableUsage:          "variable_usage",
}

// String returns the human-readable name of the symbol type, or
// "unknown" for any value outside the closed enumeration.
func (t SymbolType) String() string {
	if name, ok := symbolTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Point is a single line/column location in a source file.
type Point struct {
	Row    uint32 `cbor:"row"`
	Column uint32 `cbor:"column"`
}

// Range is a byte/point span in the original file text.
type Range struct {
	StartByte  uint32 `cbor:"start_byte"`
	EndByte    uint32 `cbor:"end_byte"`
	StartPoint Point  `cbor:"start_point"`
	EndPoint   Point  `cbor:"end_point"`
}

// Usage is a reference from inside a Definition's body to some other
// symbol. TargetsForGuesswork is ordered most-specific first; a leading
// "?" component means "unresolved root" and is stripped before indexing.
type Usage struct {
	TargetsForGuesswork []string `cbor:"targets_for_guesswork"`
	ResolvedAs          string   `cbor:"resolved_as"`
	DebugHint           string   `cbor:"debug_hint"`
}

// String renders a Usage the way the index's debug dump does: the
// resolved path if one was ever assigned, otherwise the join of the
// guess list with an ", unresolved" suffix.
func (u Usage) String() string {
	target := u.ResolvedAs
	if target == "" {
		target = strings.Join(u.TargetsForGuesswork, " ") + ", unresolved"
	}
	return fmt.Sprintf("Link{ %s %s }", u.DebugHint, target)
}

// Definition is a parsed symbol: a declaration or a usage site, carried
// under one fully-qualified, "::"-joined identifier.
type Definition struct {
	OfficialPath     []string   `cbor:"official_path"`
	SymbolType       SymbolType `cbor:"symbol_type"`
	DerivedFrom      []Usage    `cbor:"derived_from"`
	Usages           []Usage    `cbor:"usages"`
	FullRange        Range      `cbor:"full_range"`
	DeclarationRange Range      `cbor:"declaration_range"`
	DefinitionRange  Range      `cbor:"definition_range"`
}

// Path joins OfficialPath with "::", the form used as a store key.
func (d Definition) Path() string {
	return strings.Join(d.OfficialPath, "::")
}

// Name returns the last component of OfficialPath, or "" if it is empty.
func (d Definition) Name() string {
	if len(d.OfficialPath) == 0 {
		return ""
	}
	return d.OfficialPath[len(d.OfficialPath)-1]
}

// Debug renders a Definition including its usage and derivation links,
// mirroring the compact single-line form the original index prints.
func (d Definition) Debug() string {
	var usagesStr, derivedStr string
	if len(d.Usages) > 0 {
		parts := make([]string, len(d.Usages))
		for i, u := range d.Usages {
			parts[i] = u.String()
		}
		usagesStr = ", usages: " + strings.Join(parts, " ")
	}
	if len(d.DerivedFrom) > 0 {
		parts := make([]string, len(d.DerivedFrom))
		for i, u := range d.DerivedFrom {
			parts[i] = u.String()
		}
		derivedStr = ", derived_from: " + strings.Join(parts, " ")
	}
	return fmt.Sprintf("Definition { %s%s%s }", d.Path(), usagesStr, derivedStr)
}
