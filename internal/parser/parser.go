// Package parser turns source text into symbol.Definition records.
//
// The Parser contract is deliberately narrow: a function from
// (path, text) to a map of official-path strings to Definitions. A
// full multi-language engine is out of scope here; this package ships
// one real implementation (TreeSitterParser, C++ only) plus a fixed
// in-memory parser used by the rest of the module's tests.
package parser

import "github.com/altidx/altidx/internal/symbol"

// Parser is the abstract front-end collaborator the index depends on.
type Parser interface {
	Parse(path, text string) (map[string]symbol.Definition, error)
}
