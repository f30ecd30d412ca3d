package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ts-extractor/internal/ast"
)

// Test Plan for Boundary:
// - Project files are visited unless excluded by path or pattern
// - Files outside the project are never visited
// - node_modules packages are visited only when allow-listed
// - Invalid glob patterns fail construction

func TestBoundary_ShouldVisit(t *testing.T) {
	t.Parallel()

	files := map[string]*ast.SourceFile{}
	for _, name := range []string{
		"/project/src/a.ts",
		"/project/src/a.spec.ts",
		"/project/src/gen/b.ts",
		"/other/c.ts",
		"/project/node_modules/lib/index.d.ts",
		"/project/node_modules/@scope/pkg/types.d.ts",
		"/project/node_modules/other/index.d.ts",
	} {
		files[name] = sourceFile(name, "")
	}

	p := ast.NewProgram(testProjectDir)
	decls := map[string]*ast.Declaration{}
	for name, f := range files {
		p.AddFile(f)
		decls[name] = f.AddStatement(decl(ast.ShapeVariableDeclaration, "x"))
	}

	b, err := NewBoundary(p, Options{
		ProjectDirectory: testProjectDir,
		ExternalPackages: []string{"lib", "@scope/pkg"},
		Exclude:          []string{"src/gen/b.ts"},
		ExcludePatterns:  []string{"**/*.spec.ts"},
	})
	require.NoError(t, err)

	tests := []struct {
		file string
		want bool
	}{
		{"/project/src/a.ts", true},
		{"/project/src/a.spec.ts", false},
		{"/project/src/gen/b.ts", false},
		{"/other/c.ts", false},
		{"/project/node_modules/lib/index.d.ts", true},
		{"/project/node_modules/@scope/pkg/types.d.ts", true},
		{"/project/node_modules/other/index.d.ts", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.ShouldVisit(decls[tt.file]), tt.file)
	}

	assert.False(t, b.ShouldVisit(nil))
	assert.False(t, b.ShouldVisit(decl(ast.ShapeVariableDeclaration, "detached")))
}

func TestBoundary_AbsoluteExclude(t *testing.T) {
	t.Parallel()

	f := sourceFile("src/a.ts", "")
	d := f.AddStatement(decl(ast.ShapeVariableDeclaration, "x"))
	p := ast.NewProgram(testProjectDir)
	p.AddFile(f)

	b, err := NewBoundary(p, Options{
		ProjectDirectory: testProjectDir,
		Exclude:          []string{"/project/src/./a.ts"},
	})
	require.NoError(t, err)
	assert.False(t, b.ShouldVisit(d))
}

func TestNewBoundary_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewBoundary(ast.NewProgram(testProjectDir), Options{
		ProjectDirectory: testProjectDir,
		ExcludePatterns:  []string{"src/[a"},
	})
	assert.Error(t, err)
}
