package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/altidx/altidx/internal/altidxerr"
	"github.com/altidx/altidx/internal/symbol"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "index.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// goatMainDefs mirrors cpp_goat_main.cpp: it defines CosmicJustice's
// constructor and a main() that also reads Animal::age.
func goatMainDefs() map[string]symbol.Definition {
	prefix := []string{"alt_testsuite", "cpp_goat_main"}
	path := func(parts ...string) []string { return append(append([]string{}, prefix...), parts...) }
	out := map[string]symbol.Definition{}

	ctor := symbol.Definition{OfficialPath: path("CosmicJustice", "CosmicJustice"), SymbolType: symbol.ConstructorDeclaration}
	out[ctor.Path()] = ctor

	mainFn := symbol.Definition{
		OfficialPath: path("main"),
		SymbolType:   symbol.FunctionDeclaration,
		Usages: []symbol.Usage{
			{TargetsForGuesswork: []string{"Animal::age"}, DebugHint: "field read"},
		},
	}
	out[mainFn.Path()] = mainFn

	return out
}

func TestAddThenDocSymbols(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	defs := goatMainDefs()
	require.NoError(t, s.Add(ctx, "alt_testsuite/cpp_goat_main.cpp", defs))

	got, err := s.DocSymbols(ctx, "alt_testsuite/cpp_goat_main.cpp")
	require.NoError(t, err)
	assert.Len(t, got, len(defs))
}

func TestRemoveRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	before, err := s.DumpDatabase(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Add(ctx, "alt_testsuite/cpp_goat_main.cpp", goatMainDefs()))
	require.NoError(t, s.Remove(ctx, "alt_testsuite/cpp_goat_main.cpp"))

	after, err := s.DumpDatabase(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	syms, err := s.DocSymbols(ctx, "alt_testsuite/cpp_goat_main.cpp")
	require.NoError(t, err)
	assert.Empty(t, syms)
}

func TestRemoveDeletesAllThreeFamilies(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "alt_testsuite/cpp_goat_main.cpp", goatMainDefs()))

	var keys []string
	require.NoError(t, s.Scan(ctx, "", func(key string, _ []byte) {
		keys = append(keys, key)
	}))
	require.NotEmpty(t, keys)

	require.NoError(t, s.Remove(ctx, "alt_testsuite/cpp_goat_main.cpp"))

	var remaining []string
	require.NoError(t, s.Scan(ctx, "", func(key string, _ []byte) {
		remaining = append(remaining, key)
	}))
	for _, k := range remaining {
		assert.NotContains(t, k, "cpp_goat_main")
	}
}

func TestCKeyCountMatchesPathDepth(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, "alt_testsuite/cpp_goat_main.cpp", goatMainDefs()))

	path := "alt_testsuite::cpp_goat_main::CosmicJustice::CosmicJustice"
	var count int
	require.NoError(t, s.Scan(ctx, "c/", func(key string, _ []byte) {
		if strHasSuffix(key, path) {
			count++
		}
	}))
	// The constructor's full path has 4 components, so 4 suffixes.
	assert.Equal(t, 4, count)
}

func strHasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func TestEmptyDefsWritesNoKeys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "empty.cpp", map[string]symbol.Definition{}))

	var keys []string
	require.NoError(t, s.Scan(ctx, "", func(key string, _ []byte) { keys = append(keys, key) }))
	assert.Empty(t, keys)
}

func TestUsageWithSentinelRootContributesNoUKeys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	def := symbol.Definition{
		OfficialPath: []string{"f", "fn"},
		Usages: []symbol.Usage{
			{TargetsForGuesswork: []string{"?"}},
		},
	}
	require.NoError(t, s.Add(ctx, "f.cpp", map[string]symbol.Definition{def.Path(): def}))

	var uKeys []string
	require.NoError(t, s.Scan(ctx, "u/", func(key string, _ []byte) { uKeys = append(uKeys, key) }))
	assert.Empty(t, uKeys)
}

func TestEmptyTargetsForGuessworkContributesNoUKeys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	def := symbol.Definition{
		OfficialPath: []string{"f", "fn"},
		Usages:       []symbol.Usage{{}},
	}
	require.NoError(t, s.Add(ctx, "f.cpp", map[string]symbol.Definition{def.Path(): def}))

	var uKeys []string
	require.NoError(t, s.Scan(ctx, "u/", func(key string, _ []byte) { uKeys = append(uKeys, key) }))
	assert.Empty(t, uKeys)
}

func TestMalformedKeyIsStoredAndScannable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InjectRawForTest("u/x ⚡ a ⚡ b", []byte("1")))

	var seen []string
	require.NoError(t, s.Scan(ctx, "u/x", func(key string, _ []byte) { seen = append(seen, key) }))
	assert.Len(t, seen, 1, "Scan itself never filters malformed keys; validation is the query engine's job")
}

func TestAcquireTimesOutWhileLockHeld(t *testing.T) {
	s := openTestStore(t)

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.sem.Acquire(context.Background(), 1)
		close(held)
		<-release
		s.sem.Release(1)
	}()
	<-held
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := s.DocSymbols(ctx, "anything.cpp")
	assert.ErrorIs(t, err, altidxerr.ErrBusy)
}

func TestOpenCreatesNestedParentMissingFails(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sub", "index.bolt")

	_, err := Open(p)
	assert.Error(t, err, "bbolt does not create missing parent directories")

	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	s, err := Open(p)
	require.NoError(t, err)
	defer s.Close()

	_, statErr := os.Stat(p)
	assert.NoError(t, statErr)
}
