package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Program:
// - Exported declarations land in both locals and exports with one symbol
// - Function overloads merge into one symbol in declaration order
// - Import and export specifiers follow one alias hop across files
// - `export *` is searched by ResolveExport, except for "default"
// - Qualified names resolve through namespace exports
// - Parameters and type parameters are visible from nested declarations
// - node_modules paths map to package names and specifiers
// - Line positions treat \r\n, lone \r, U+2028 and U+2029 as line breaks

func exported(d *Declaration) *Declaration {
	d.Modifiers |= ModifierExport
	return d
}

func newTestProgram(files ...*SourceFile) *Program {
	p := NewProgram("/project")
	for _, f := range files {
		p.AddFile(f)
		p.RootNames = append(p.RootNames, f.FileName)
	}
	p.Bind()
	return p
}

func TestBind_ExportsAndLocals(t *testing.T) {
	t.Parallel()

	f := NewSourceFile("/project/src/index.ts", []byte("export function foo() {}"))
	foo := f.AddStatement(exported(NewDeclaration(ShapeFunctionDeclaration, "foo", 0, 24)))
	bar := f.AddStatement(NewDeclaration(ShapeInterfaceDeclaration, "Bar", 0, 0))

	p := newTestProgram(f)

	module := p.ModuleSymbol(f)
	require.NotNil(t, module)
	assert.Equal(t, `"/project/src/index"`, module.Name)
	assert.True(t, module.IsModule())
	assert.Equal(t, []string{"foo"}, module.Exports.Names())

	assert.Same(t, foo.Symbol(), module.Exports.Get("foo"))
	assert.Same(t, foo.Symbol(), f.Locals().Get("foo"))
	assert.Nil(t, module.Exports.Get("Bar"))
	assert.Same(t, bar.Symbol(), f.Locals().Get("Bar"))
	assert.Same(t, f, foo.File)
}

func TestBind_MergesOverloads(t *testing.T) {
	t.Parallel()

	f := NewSourceFile("/project/a.ts", nil)
	first := f.AddStatement(exported(NewDeclaration(ShapeFunctionDeclaration, "parse", 0, 0)))
	second := f.AddStatement(exported(NewDeclaration(ShapeFunctionDeclaration, "parse", 10, 20)))
	second.HasBody = true

	p := newTestProgram(f)

	sym := p.ModuleSymbol(f).Exports.Get("parse")
	require.NotNil(t, sym)
	assert.Equal(t, []*Declaration{first, second}, sym.Declarations)
}

func TestBind_DefaultExport(t *testing.T) {
	t.Parallel()

	f := NewSourceFile("/project/a.ts", nil)
	named := exported(NewDeclaration(ShapeClassDeclaration, "Widget", 0, 0))
	named.Modifiers |= ModifierDefault
	f.AddStatement(named)

	p := newTestProgram(f)

	exports := p.ModuleSymbol(f).Exports
	assert.Same(t, named.Symbol(), exports.Get(DefaultName))
	assert.Nil(t, exports.Get("Widget"))
	assert.Same(t, named.Symbol(), f.Locals().Get("Widget"))
}

func TestBind_ClassMembers(t *testing.T) {
	t.Parallel()

	f := NewSourceFile("/project/a.ts", nil)
	class := f.AddStatement(exported(NewDeclaration(ShapeClassDeclaration, "Box", 0, 0)))
	ctor := class.AddMember(NewDeclaration(ShapeConstructor, "", 0, 0))
	ctor.AddParameter(NewDeclaration(ShapeParameter, "value", 0, 0))
	class.AddMember(NewDeclaration(ShapePropertyDeclaration, "value", 0, 0))
	class.AddTypeParameter(NewDeclaration(ShapeTypeParameter, "T", 0, 0))

	newTestProgram(f)

	members := class.Symbol().Members
	require.NotNil(t, members)
	assert.Equal(t, []string{ConstructorName, "value"}, members.Names())
	assert.NotNil(t, class.Locals().Get("T"))
	assert.NotNil(t, ctor.Locals().Get("value"))
	assert.Same(t, class, ctor.Parent)
}

func TestBind_InlineTypeLiteral(t *testing.T) {
	t.Parallel()

	f := NewSourceFile("/project/a.ts", nil)
	v := f.AddStatement(exported(NewDeclaration(ShapeVariableDeclaration, "opts", 0, 0)))
	lit := NewDeclaration(ShapeTypeLiteral, "", 0, 0)
	lit.AddMember(NewDeclaration(ShapePropertySignature, "debug", 0, 0))
	v.SetType(&TypeNode{Kind: TypeObject, Text: "{ debug: boolean }", Decl: lit})

	newTestProgram(f)

	require.NotNil(t, lit.Symbol())
	assert.Equal(t, TypeName, lit.Symbol().Name)
	assert.Same(t, v, lit.Parent)
	assert.Same(t, f, lit.File)
	assert.Equal(t, []string{"debug"}, lit.Symbol().Members.Names())
}

func TestProgram_AliasTargets(t *testing.T) {
	t.Parallel()

	impl := NewSourceFile("/project/impl.ts", nil)
	helper := impl.AddStatement(exported(NewDeclaration(ShapeFunctionDeclaration, "helper", 0, 0)))

	index := NewSourceFile("/project/index.ts", nil)
	index.ResolvedModules["./impl"] = impl.FileName
	imp := index.AddStatement(NewDeclaration(ShapeImportSpecifier, "h", 0, 0))
	imp.PropertyName = "helper"
	imp.ModuleSpecifier = "./impl"
	local := index.AddStatement(NewDeclaration(ShapeExportSpecifier, "helper", 0, 0))
	local.PropertyName = "h"
	reexport := index.AddStatement(NewDeclaration(ShapeExportSpecifier, "helper2", 0, 0))
	reexport.PropertyName = "helper"
	reexport.ModuleSpecifier = "./impl"

	p := newTestProgram(impl, index)

	// import { helper as h } from "./impl"
	assert.Same(t, helper.Symbol(), p.AliasTarget(imp.Symbol()))

	// export { h as helper } resolves to the local import alias, one hop only.
	assert.Same(t, imp.Symbol(), p.ExportSpecifierTarget(local))
	assert.Same(t, imp.Symbol(), p.AliasTarget(local.Symbol()))

	// export { helper as helper2 } from "./impl"
	assert.Same(t, helper.Symbol(), p.ExportSpecifierTarget(reexport))

	assert.Nil(t, p.AliasTarget(helper.Symbol()))
}

func TestProgram_ResolveExportStar(t *testing.T) {
	t.Parallel()

	a := NewSourceFile("/project/a.ts", nil)
	thing := a.AddStatement(exported(NewDeclaration(ShapeVariableDeclaration, "thing", 0, 0)))
	def := exported(NewDeclaration(ShapeFunctionDeclaration, "", 0, 0))
	def.Modifiers |= ModifierDefault
	a.AddStatement(def)

	b := NewSourceFile("/project/b.ts", nil)
	b.ResolvedModules["./a"] = a.FileName
	star := b.AddStatement(NewDeclaration(ShapeExportDeclaration, "", 0, 0))
	star.ModuleSpecifier = "./a"

	// Cycle: a re-exports everything from b.
	back := a.AddStatement(NewDeclaration(ShapeExportDeclaration, "", 0, 0))
	back.ModuleSpecifier = "./b"
	a.ResolvedModules["./b"] = b.FileName

	p := newTestProgram(a, b)

	moduleB := p.ModuleSymbol(b)
	assert.Same(t, thing.Symbol(), p.ResolveExport(moduleB, "thing"))
	assert.Nil(t, p.ResolveExport(moduleB, DefaultName))
	assert.Nil(t, p.ResolveExport(moduleB, "missing"))
	assert.Same(t, a, p.ModuleSourceFile(star))
}

func TestProgram_ResolveName(t *testing.T) {
	t.Parallel()

	f := NewSourceFile("/project/a.ts", nil)
	ns := f.AddStatement(exported(NewDeclaration(ShapeModuleDeclaration, "Shapes", 0, 0)))
	circle := ns.AddMember(exported(NewDeclaration(ShapeInterfaceDeclaration, "Circle", 0, 0)))
	fn := f.AddStatement(NewDeclaration(ShapeFunctionDeclaration, "area", 0, 0))
	tp := fn.AddTypeParameter(NewDeclaration(ShapeTypeParameter, "T", 0, 0))
	param := fn.AddParameter(NewDeclaration(ShapeParameter, "shape", 0, 0))

	p := newTestProgram(f)

	assert.Same(t, circle.Symbol(), p.ResolveName("Shapes.Circle", f.Root))
	assert.Same(t, circle.Symbol(), p.ResolveName("Circle", circle))
	assert.Same(t, tp.Symbol(), p.ResolveName("T", param))
	assert.Nil(t, p.ResolveName("T", f.Root))
	assert.Nil(t, p.ResolveName("Shapes.Square", f.Root))
}

func TestProgram_ResolveNameThroughNamespaceImport(t *testing.T) {
	t.Parallel()

	lib := NewSourceFile("/project/lib.ts", nil)
	opts := lib.AddStatement(exported(NewDeclaration(ShapeInterfaceDeclaration, "Options", 0, 0)))

	f := NewSourceFile("/project/a.ts", nil)
	f.ResolvedModules["./lib"] = lib.FileName
	nsImport := f.AddStatement(NewDeclaration(ShapeNamespaceImport, "lib", 0, 0))
	nsImport.ModuleSpecifier = "./lib"

	p := newTestProgram(lib, f)

	assert.Same(t, opts.Symbol(), p.ResolveName("lib.Options", f.Root))
}

func TestPackageOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileName string
		want     PackageInfo
		ok       bool
	}{
		{"project file", "/project/src/a.ts", PackageInfo{}, false},
		{"package index", "/project/node_modules/left-pad/index.d.ts", PackageInfo{Name: "left-pad", Specifier: "left-pad"}, true},
		{"package subpath", "/project/node_modules/rxjs/operators/map.d.ts", PackageInfo{Name: "rxjs", Specifier: "rxjs/operators/map"}, true},
		{"scoped package", "/project/node_modules/@scope/pkg/dist/index.d.ts", PackageInfo{Name: "@scope/pkg", Specifier: "@scope/pkg/dist"}, true},
		{"nested node_modules", "/project/node_modules/a/node_modules/b/lib.d.ts", PackageInfo{Name: "b", Specifier: "b/lib"}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := PackageOf(tt.fileName)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceFile_LineAndCharacter(t *testing.T) {
	t.Parallel()

	f := NewSourceFile("/project/a.ts", []byte("const a = 1;\n// héllo\nexport const b = 2;"))

	line, char := f.LineAndCharacter(0)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, char)

	line, char = f.LineAndCharacter(6)
	assert.Equal(t, 0, line)
	assert.Equal(t, 6, char)

	// "// héllo\n" is 10 bytes and 9 runes; the third line starts at 23.
	line, char = f.LineAndCharacter(23)
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, char)

	// "é" takes two bytes but counts as one character.
	line, char = f.LineAndCharacter(13 + len("// hé"))
	assert.Equal(t, 1, line)
	assert.Equal(t, 5, char)
}

func TestSourceFile_LineTerminators(t *testing.T) {
	t.Parallel()

	text := "a\r\nb\rc\u2028d\u2029e\nf"
	f := NewSourceFile("/project/a.ts", []byte(text))

	for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
		line, char := f.LineAndCharacter(strings.Index(text, name))
		assert.Equal(t, i, line, name)
		assert.Equal(t, 0, char, name)
	}
}
