package parser

import "github.com/altidx/altidx/internal/symbol"

// Fixed is a test double: it returns a pre-built definition set
// regardless of its input, so store and query tests can exercise the
// index without linking tree-sitter.
type Fixed struct {
	Defs map[string]symbol.Definition
	Err  error
}

func (f *Fixed) Parse(path, text string) (map[string]symbol.Definition, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Defs, nil
}
