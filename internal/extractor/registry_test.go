package extractor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

// Test Plan for Registry:
// - Register returns the same ID for the same declaration
// - Distinct declarations get distinct IDs under every strategy
// - Store keeps the first DTO and ignores unknown IDs
// - Hash and UUID IDs are stable across registries
// - Colliding derived IDs fall back to a counter suffix

func TestRegistry_RegisterIsIdempotent(t *testing.T) {
	t.Parallel()

	f := sourceFile("a.ts", "export function a() {}")
	d := f.AddStatement(declAt(f, ast.ShapeFunctionDeclaration, "a", "function"))

	r := NewRegistry(IDSequential, testProjectDir)
	first := r.Register(d, contracts.KindFunction)
	second := r.Register(d, contracts.KindFunction)

	assert.Equal(t, first, second)
	assert.Equal(t, "function-0", first)
	assert.True(t, r.HasDeclaration(d))
	assert.Equal(t, []string{first}, r.IDs())
}

func TestRegistry_StoreIsWriteOnce(t *testing.T) {
	t.Parallel()

	r := NewRegistry(IDSequential, testProjectDir)
	d := decl(ast.ShapeVariableDeclaration, "v")
	id := r.Register(d, contracts.KindVariable)

	firstDto := &contracts.VariableDto{VariableKind: "const"}
	assert.True(t, r.Store(id, firstDto))
	assert.False(t, r.Store(id, &contracts.VariableDto{VariableKind: "let"}))
	assert.False(t, r.Store("variable-99", firstDto))

	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, firstDto, got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Strategies(t *testing.T) {
	t.Parallel()

	for _, strategy := range []IDStrategy{IDSequential, IDHash, IDUUID} {
		strategy := strategy
		t.Run(string(strategy), func(t *testing.T) {
			t.Parallel()

			f := sourceFile("a.ts", "interface A {}\ninterface B {}")
			a := f.AddStatement(declAt(f, ast.ShapeInterfaceDeclaration, "A", "interface A"))
			b := f.AddStatement(declAt(f, ast.ShapeInterfaceDeclaration, "B", "interface B"))

			r := NewRegistry(strategy, testProjectDir)
			idA := r.Register(a, contracts.KindInterface)
			idB := r.Register(b, contracts.KindInterface)
			assert.NotEqual(t, idA, idB)

			if strategy == IDUUID {
				_, err := uuid.Parse(idA)
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistry_DerivedIDsAreStable(t *testing.T) {
	t.Parallel()

	build := func() *ast.Declaration {
		f := sourceFile("src/a.ts", "export class Box {}")
		return f.AddStatement(declAt(f, ast.ShapeClassDeclaration, "Box", "class"))
	}

	for _, strategy := range []IDStrategy{IDHash, IDUUID} {
		first := NewRegistry(strategy, testProjectDir).Register(build(), contracts.KindClass)
		second := NewRegistry(strategy, testProjectDir).Register(build(), contracts.KindClass)
		assert.Equal(t, first, second, strategy)
	}

	// Moving the checkout keeps hash IDs.
	moved := sourceFile("/elsewhere/src/a.ts", "export class Box {}")
	d := moved.AddStatement(declAt(moved, ast.ShapeClassDeclaration, "Box", "class"))
	original := NewRegistry(IDHash, testProjectDir).Register(build(), contracts.KindClass)
	assert.Equal(t, original, NewRegistry(IDHash, "/elsewhere").Register(d, contracts.KindClass))
}

func TestRegistry_CollisionSuffix(t *testing.T) {
	t.Parallel()

	// Two detached declarations with identical keys.
	a := decl(ast.ShapeTypeLiteral, "")
	b := decl(ast.ShapeTypeLiteral, "")

	r := NewRegistry(IDHash, testProjectDir)
	idA := r.Register(a, contracts.KindTypeLiteral)
	idB := r.Register(b, contracts.KindTypeLiteral)

	assert.NotEqual(t, idA, idB)
	assert.Equal(t, idA+"-1", idB)
}

func TestParseIDStrategy(t *testing.T) {
	t.Parallel()

	s, ok := ParseIDStrategy("hash")
	assert.True(t, ok)
	assert.Equal(t, IDHash, s)

	_, ok = ParseIDStrategy("random")
	assert.False(t, ok)
}
