package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altidx/altidx/internal/symbol"
)

const goatLibrarySource = `
class Animal {
public:
    int age;
    void grow() { age = age + 1; }
    void eat() { age = age; }
};
`

const goatMainSource = `
class CosmicJustice {
public:
    CosmicJustice() {}
};

int main() {
    Animal a;
    a.age;
    return 0;
}
`

func TestTreeSitterParserExtractsClassAndFields(t *testing.T) {
	p := NewTreeSitterParser()
	defs, err := p.Parse("alt_testsuite/cpp_goat_library.h", goatLibrarySource)
	require.NoError(t, err)

	class, ok := defs["alt_testsuite::cpp_goat_library::Animal"]
	require.True(t, ok, "expected Animal class definition, got %v", keys(defs))
	assert.Equal(t, "class_declaration", class.SymbolType.String())

	field, ok := defs["alt_testsuite::cpp_goat_library::Animal::age"]
	require.True(t, ok)
	assert.Equal(t, "class_field_declaration", field.SymbolType.String())
}

func TestTreeSitterParserExtractsMethodsWithUsages(t *testing.T) {
	p := NewTreeSitterParser()
	defs, err := p.Parse("alt_testsuite/cpp_goat_library.h", goatLibrarySource)
	require.NoError(t, err)

	grow, ok := defs["alt_testsuite::cpp_goat_library::Animal::grow"]
	require.True(t, ok, "expected Animal::grow method, got %v", keys(defs))
	assert.Equal(t, "method_declaration", grow.SymbolType.String())
	assert.NotEmpty(t, grow.Usages)
}

func TestTreeSitterParserExtractsConstructor(t *testing.T) {
	p := NewTreeSitterParser()
	defs, err := p.Parse("alt_testsuite/cpp_goat_main.cpp", goatMainSource)
	require.NoError(t, err)

	ctor, ok := defs["alt_testsuite::cpp_goat_main::CosmicJustice::CosmicJustice"]
	require.True(t, ok, "expected CosmicJustice constructor, got %v", keys(defs))
	assert.Equal(t, "constructor_declaration", ctor.SymbolType.String())
}

func TestTreeSitterParserExtractsMainWithFieldUsage(t *testing.T) {
	p := NewTreeSitterParser()
	defs, err := p.Parse("alt_testsuite/cpp_goat_main.cpp", goatMainSource)
	require.NoError(t, err)

	mainFn, ok := defs["alt_testsuite::cpp_goat_main::main"]
	require.True(t, ok, "expected main function, got %v", keys(defs))
	assert.Equal(t, "function_declaration", mainFn.SymbolType.String())
	require.NotEmpty(t, mainFn.Usages)
	assert.Contains(t, mainFn.Usages[0].TargetsForGuesswork, "age")
}

func TestTreeSitterParserEmptySourceYieldsNoDefinitions(t *testing.T) {
	p := NewTreeSitterParser()
	defs, err := p.Parse("empty.cpp", "")
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func keys(m map[string]symbol.Definition) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
