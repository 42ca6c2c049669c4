// Package index assembles the path canonicalizer, symbol model, store
// and query engine behind the seven public operations the rest of the
// module (and the CLI) drives: Init, DocAdd, DocRemove, DocSymbols,
// Definitions, Usages and DumpDatabase.
package index

import (
	"context"
	"fmt"

	"github.com/altidx/altidx/internal/altidxerr"
	"github.com/altidx/altidx/internal/config"
	"github.com/altidx/altidx/internal/parser"
	"github.com/altidx/altidx/internal/query"
	"github.com/altidx/altidx/internal/store"
	"github.com/altidx/altidx/internal/symbol"
)

// Index is an owned handle onto one index's store, query engine and
// parser. There is no package-level singleton: callers construct and
// close their own Index.
type Index struct {
	store  *store.Store
	engine *query.Engine
	parser parser.Parser
	cfg    *config.Config
}

// Init opens (creating if necessary) the bbolt-backed store at
// cfg.Store.Path and wires it to p.
func Init(cfg *config.Config, p parser.Parser) (*Index, error) {
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Index{
		store:  s,
		engine: query.New(s),
		parser: p,
		cfg:    cfg,
	}, nil
}

// Close releases the underlying store handle.
func (idx *Index) Close() error {
	return idx.store.Close()
}

// DocAdd parses text and writes the result in one atomic batch. Records
// with the same official path are overwritten; records already stored
// for cpath whose paths the new parse does not produce stay in place
// until DocRemove. A parser failure is logged and leaves the store
// untouched, per the parser-failure edge case.
func (idx *Index) DocAdd(ctx context.Context, cpath, text string) error {
	defs, err := idx.parser.Parse(cpath, text)
	if err != nil {
		logError("%v", altidxerr.NewParseError(cpath, err))
		return nil
	}
	return idx.store.Add(ctx, cpath, defs)
}

// DocRemove deletes every key derived from cpath's definitions.
func (idx *Index) DocRemove(ctx context.Context, cpath string) error {
	return idx.store.Remove(ctx, cpath)
}

// DocSymbols returns every definition whose official path was derived
// from cpath, in the order the store's prefix scan yields them.
func (idx *Index) DocSymbols(ctx context.Context, cpath string) ([]symbol.Definition, error) {
	return idx.engine.DocSymbols(ctx, cpath)
}

// Definitions resolves shortPath to its shallowest matching definitions.
func (idx *Index) Definitions(ctx context.Context, shortPath string) ([]symbol.Definition, error) {
	return idx.engine.Definitions(ctx, shortPath)
}

// Usages resolves shortPath to every definition that reads or calls it.
func (idx *Index) Usages(ctx context.Context, shortPath string) ([]symbol.Definition, error) {
	return idx.engine.Usages(ctx, shortPath)
}

// DumpDatabase renders the entire store for debugging.
func (idx *Index) DumpDatabase(ctx context.Context) (string, error) {
	return idx.store.DumpDatabase(ctx)
}

// MatchesGlob reports whether relPath should be indexed under this
// Index's configured include/exclude globs.
func (idx *Index) MatchesGlob(relPath string) bool {
	return idx.cfg.MatchesGlob(relPath)
}
