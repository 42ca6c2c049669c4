// Package query answers definitions(short_path) and usages(short_path)
// by prefix-scanning the store's c/ and u/ key families and ranking the
// results, per the resolution algorithm in spec.md §4.4.
package query

import (
	"context"
	"strings"

	"github.com/altidx/altidx/internal/altidxerr"
	"github.com/altidx/altidx/internal/store"
	"github.com/altidx/altidx/internal/symbol"
)

const (
	dPrefix = "d/"
	cPrefix = "c/"
	uPrefix = "u/"
)

// Engine answers definitions()/usages() queries against a Store. It
// holds no state of its own beyond the store handle: every call is a
// fresh scan, so Definitions is idempotent between writes.
type Engine struct {
	store *store.Store
}

func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// scanSuffixFamily prefix-scans family+shortPath and returns the
// validated (full path) side of every well-formed hit, logging and
// skipping malformed keys. Key validation itself is store.SplitIndexKey,
// so this and the store agree on exactly one definition of "well-formed".
func (e *Engine) scanSuffixFamily(ctx context.Context, family, shortPath string) ([]string, error) {
	prefix := family + shortPath
	var paths []string
	err := e.store.Scan(ctx, prefix, func(key string, _ []byte) {
		path, err := store.SplitIndexKey(key, prefix)
		if err != nil {
			logMalformed(key)
			return
		}
		paths = append(paths, path)
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func logMalformed(key string) {
	err := altidxerr.NewMalformedKeyError(key)
	logError("%v", err)
}

// Definitions returns the AltDefinitions whose official_path ends with
// shortPath, preferring the group with the fewest "::" separators (the
// most specific match). Ties within that depth are all returned.
func (e *Engine) Definitions(ctx context.Context, shortPath string) ([]symbol.Definition, error) {
	paths, err := e.scanSuffixFamily(ctx, cPrefix, shortPath)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	groups := make(map[int][]string)
	minDepth := -1
	for _, p := range paths {
		depth := strings.Count(p, "::")
		groups[depth] = append(groups[depth], p)
		if minDepth == -1 || depth < minDepth {
			minDepth = depth
		}
	}

	return e.resolveAll(ctx, groups[minDepth])
}

// Usages returns every AltDefinition whose body references shortPath.
// No depth ranking is applied.
func (e *Engine) Usages(ctx context.Context, shortPath string) ([]symbol.Definition, error) {
	paths, err := e.scanSuffixFamily(ctx, uPrefix, shortPath)
	if err != nil {
		return nil, err
	}
	return e.resolveAll(ctx, paths)
}

// DocSymbols returns every definition stored for the file at cpath.
func (e *Engine) DocSymbols(ctx context.Context, cpath string) ([]symbol.Definition, error) {
	return e.store.DocSymbols(ctx, cpath)
}

// ConnectUsages is a reserved hook for a future cross-reference
// resolution pass that would populate Usage.ResolvedAs by looking each
// usage's guess list up through Definitions and writing the result
// back. Per the resolved Open Question in spec.md §9, it is a no-op.
func (e *Engine) ConnectUsages(ctx context.Context) error {
	return nil
}

func (e *Engine) resolveAll(ctx context.Context, paths []string) ([]symbol.Definition, error) {
	var out []symbol.Definition
	for _, p := range paths {
		def, ok, err := e.store.Get(ctx, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, def)
	}
	return out, nil
}
