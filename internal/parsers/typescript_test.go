package parsers

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ts-extractor/internal/ast"
)

// Test Plan for TypeScript Parser:
// - Functions: parameters, rest parameters, return types, overload bodies, JSDoc
// - Classes: heritage, type parameters, member shapes and modifiers
// - Decorators on classes, fields and methods
// - Interfaces: every member shape, including index signatures
// - Type annotations: function, mapped, union/intersection flattening
// - Imports and exports of every form, with module specifiers collected once
// - Namespaces: dotted names, top-level namespaces, ambient modules, global
// - Variables: kinds and initializer values
// - Syntax errors are reported without failing the parse
// - Syntax error excerpts are cut on rune boundaries

func parseSource(t *testing.T, name, src string) *ParseResult {
	t.Helper()
	result, err := NewTypeScriptParser().ParseFile(context.Background(), "/project/"+name, []byte(src))
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func shapes(decls []*ast.Declaration) []string {
	var out []string
	for _, d := range decls {
		out = append(out, d.String())
	}
	return out
}

func TestTypeScriptParser_ParseFunction(t *testing.T) {
	t.Parallel()

	src := "/** Greets. */\n" +
		"export function greet(name: string, ...rest: number[]): void {}\n" +
		"export function parse(x: string): number;\n" +
		"export function parse(x: any): any { return x; }\n"
	result := parseSource(t, "fn.ts", src)
	assert.Nil(t, result.SyntaxError)

	members := result.File.Root.Members
	require.Equal(t, []string{"FunctionDeclaration greet", "FunctionDeclaration parse", "FunctionDeclaration parse"}, shapes(members))

	greet := members[0]
	assert.True(t, greet.Modifiers.Has(ast.ModifierExport))
	assert.Equal(t, "/** Greets. */", greet.Doc)
	assert.Equal(t, 15, greet.Pos)
	assert.True(t, greet.HasBody)
	assert.Same(t, result.File, greet.File)
	assert.Same(t, result.File.Root, greet.Parent)

	require.Len(t, greet.Parameters, 2)
	name, rest := greet.Parameters[0], greet.Parameters[1]
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, ast.TypeBasic, name.Type.Kind)
	assert.Equal(t, "string", name.Type.Text)
	assert.Same(t, greet, name.Parent)

	assert.Equal(t, "rest", rest.Name)
	assert.True(t, rest.Rest)
	assert.Equal(t, ast.TypeArray, rest.Type.Kind)
	require.Len(t, rest.Type.Args, 1)
	assert.Equal(t, "number", rest.Type.Args[0].Text)

	require.NotNil(t, greet.Type)
	assert.Equal(t, "void", greet.Type.Text)

	assert.False(t, members[1].HasBody)
	assert.True(t, members[2].HasBody)
}

func TestTypeScriptParser_ParseClass(t *testing.T) {
	t.Parallel()

	src := `export abstract class Box<T extends Shape = Shape> extends Base<T> implements Sized, Named {
    private secret: { key: string };
    static readonly count?: number = 0;
    constructor(public value: T) { super(); }
    get size(): number { return 1; }
    set size(v: number) {}
    abstract render(): string;
}`
	result := parseSource(t, "box.ts", src)
	require.Len(t, result.File.Root.Members, 1)

	box := result.File.Root.Members[0]
	assert.Equal(t, ast.ShapeClassDeclaration, box.Shape)
	assert.Equal(t, "Box", box.Name)
	assert.True(t, box.Modifiers.Has(ast.ModifierExport|ast.ModifierAbstract))

	require.Len(t, box.TypeParameters, 1)
	tp := box.TypeParameters[0]
	assert.Equal(t, "T", tp.Name)
	require.NotNil(t, tp.Constraint)
	assert.Equal(t, "Shape", tp.Constraint.Name)
	require.NotNil(t, tp.Default)
	assert.Equal(t, "Shape", tp.Default.Name)

	require.Len(t, box.Extends, 1)
	assert.Equal(t, "Base", box.Extends[0].Name)
	assert.Equal(t, "Base<T>", box.Extends[0].Text)
	require.Len(t, box.Extends[0].Args, 1)
	assert.Equal(t, "T", box.Extends[0].Args[0].Name)
	assert.Same(t, box, box.Extends[0].Scope)

	var implements []string
	for _, impl := range box.Implements {
		implements = append(implements, impl.Name)
	}
	assert.Equal(t, []string{"Sized", "Named"}, implements)

	assert.Equal(t, []string{
		"PropertyDeclaration secret",
		"PropertyDeclaration count",
		"Constructor constructor",
		"GetAccessor size",
		"SetAccessor size",
		"MethodDeclaration render",
	}, shapes(box.Members))

	secret := box.Members[0]
	assert.True(t, secret.Modifiers.Has(ast.ModifierPrivate))
	require.NotNil(t, secret.Type)
	assert.Equal(t, ast.TypeObject, secret.Type.Kind)
	require.NotNil(t, secret.Type.Decl)
	assert.Equal(t, ast.ShapeTypeLiteral, secret.Type.Decl.Shape)
	assert.Same(t, secret, secret.Type.Decl.Parent)
	assert.Equal(t, []string{"PropertySignature key"}, shapes(secret.Type.Decl.Members))

	count := box.Members[1]
	assert.True(t, count.Modifiers.Has(ast.ModifierStatic|ast.ModifierReadonly))
	assert.True(t, count.Optional)
	assert.Equal(t, "0", count.Initializer)

	ctor := box.Members[2]
	require.Len(t, ctor.Parameters, 1)
	assert.True(t, ctor.Parameters[0].Modifiers.Has(ast.ModifierPublic))

	setter := box.Members[4]
	require.Len(t, setter.Parameters, 1)
	assert.Equal(t, "v", setter.Parameters[0].Name)

	render := box.Members[5]
	assert.True(t, render.Modifiers.Has(ast.ModifierAbstract))
	assert.False(t, render.HasBody)
}

func TestTypeScriptParser_ParseDecorators(t *testing.T) {
	t.Parallel()

	src := `@Component({ selector: "box" })
class Widget {
    @Input() label = "x";

    /** Handles clicks. */
    @HostListener("click")
    onClick(): void {}
}`
	result := parseSource(t, "widget.ts", src)
	require.Len(t, result.File.Root.Members, 1)

	widget := result.File.Root.Members[0]
	assert.Equal(t, []ast.Decorator{{Name: "Component", Arguments: `{ selector: "box" }`}}, widget.Decorators)
	require.Len(t, widget.Members, 2)

	label, onClick := widget.Members[0], widget.Members[1]
	assert.Equal(t, []ast.Decorator{{Name: "Input"}}, label.Decorators)
	assert.Equal(t, `"x"`, label.Initializer)
	assert.Equal(t, []ast.Decorator{{Name: "HostListener", Arguments: `"click"`}}, onClick.Decorators)
	assert.Equal(t, "/** Handles clicks. */", onClick.Doc)
}

func TestTypeScriptParser_ParseInterface(t *testing.T) {
	t.Parallel()

	src := `export interface Dict<V> extends Base {
    readonly size: number;
    lookup?(key: string): V | undefined;
    [key: string]: V;
    (x: number): string;
    new (x: number): Dict<V>;
}`
	result := parseSource(t, "dict.ts", src)
	require.Len(t, result.File.Root.Members, 1)

	dict := result.File.Root.Members[0]
	assert.Equal(t, ast.ShapeInterfaceDeclaration, dict.Shape)
	require.Len(t, dict.Extends, 1)
	assert.Equal(t, "Base", dict.Extends[0].Name)
	assert.Equal(t, []string{
		"PropertySignature size",
		"MethodSignature lookup",
		"IndexSignature",
		"CallSignature",
		"ConstructSignature",
	}, shapes(dict.Members))

	size := dict.Members[0]
	assert.True(t, size.Modifiers.Has(ast.ModifierReadonly))

	lookup := dict.Members[1]
	assert.True(t, lookup.Optional)
	require.NotNil(t, lookup.Type)
	assert.Equal(t, ast.TypeUnion, lookup.Type.Kind)

	index := dict.Members[2]
	require.Len(t, index.Parameters, 1)
	assert.Equal(t, "key", index.Parameters[0].Name)
	require.NotNil(t, index.Parameters[0].Type)
	assert.Equal(t, "string", index.Parameters[0].Type.Text)
	require.NotNil(t, index.Type)
	assert.Equal(t, "V", index.Type.Name)

	construct := dict.Members[4]
	require.NotNil(t, construct.Type)
	assert.Equal(t, "Dict", construct.Type.Name)
	require.Len(t, construct.Parameters, 1)
}

func TestTypeScriptParser_ParseTypeAnnotations(t *testing.T) {
	t.Parallel()

	src := `export type Handler = (event: Event) => void;
export type Flags<T> = { readonly [K in keyof T]?: boolean };
export type Mixed = A | B | C & D;
export type Pair = [string, number];
export type Names = typeof names;`
	result := parseSource(t, "types.ts", src)
	members := result.File.Root.Members
	require.Len(t, members, 5)

	handler := members[0].Type
	require.NotNil(t, handler)
	assert.Equal(t, ast.TypeFunction, handler.Kind)
	require.NotNil(t, handler.Decl)
	assert.Equal(t, ast.ShapeFunctionType, handler.Decl.Shape)
	assert.Same(t, members[0], handler.Decl.Parent)
	require.Len(t, handler.Decl.Parameters, 1)
	assert.Equal(t, "event", handler.Decl.Parameters[0].Name)
	assert.Equal(t, "void", handler.Decl.Type.Text)

	flags := members[1].Type
	require.NotNil(t, flags)
	assert.Equal(t, ast.TypeMapped, flags.Kind)
	mapped := flags.Decl
	require.NotNil(t, mapped)
	assert.Equal(t, ast.ShapeMappedType, mapped.Shape)
	assert.True(t, mapped.Optional)
	assert.True(t, mapped.Modifiers.Has(ast.ModifierReadonly))
	require.Len(t, mapped.TypeParameters, 1)
	assert.Equal(t, "K", mapped.TypeParameters[0].Name)
	require.NotNil(t, mapped.TypeParameters[0].Constraint)
	assert.Equal(t, "keyof T", mapped.TypeParameters[0].Constraint.Text)
	assert.Equal(t, "boolean", mapped.Type.Text)

	mixed := members[2].Type
	require.NotNil(t, mixed)
	assert.Equal(t, ast.TypeUnion, mixed.Kind)
	require.Len(t, mixed.Args, 3)
	assert.Equal(t, "A", mixed.Args[0].Name)
	assert.Equal(t, "B", mixed.Args[1].Name)
	assert.Equal(t, ast.TypeIntersection, mixed.Args[2].Kind)
	assert.Len(t, mixed.Args[2].Args, 2)

	pair := members[3].Type
	require.NotNil(t, pair)
	assert.Equal(t, ast.TypeTuple, pair.Kind)
	assert.Len(t, pair.Args, 2)

	names := members[4].Type
	require.NotNil(t, names)
	assert.Equal(t, ast.TypeQuery, names.Kind)
	assert.Equal(t, "names", names.Name)
}

func TestTypeScriptParser_ParseImportsAndExports(t *testing.T) {
	t.Parallel()

	src := `import Default, { a, b as c } from "./dep";
import * as ns from "./ns";
import legacy = require("./legacy");
import "./side-effect";
export { a, c as d };
export { x as y } from "./dep";
export * from "./all";
export * as grouped from "./grouped";
export default Default;`
	result := parseSource(t, "index.ts", src)

	assert.Equal(t, []string{"./dep", "./ns", "./legacy", "./side-effect", "./all", "./grouped"}, result.ModuleSpecifiers)

	members := result.File.Root.Members
	assert.Equal(t, []string{
		"ImportClause Default",
		"ImportSpecifier a",
		"ImportSpecifier c",
		"NamespaceImport ns",
		"NamespaceImport legacy",
		"ExportSpecifier a",
		"ExportSpecifier d",
		"ExportSpecifier y",
		"ExportDeclaration",
		"ExportDeclaration grouped",
		"ExportAssignment default",
	}, shapes(members))

	assert.Equal(t, "./dep", members[0].ModuleSpecifier)
	assert.Equal(t, "b", members[2].PropertyName)
	assert.Equal(t, "./legacy", members[4].ModuleSpecifier)
	assert.Empty(t, members[5].ModuleSpecifier)
	assert.Equal(t, "c", members[6].PropertyName)
	assert.Equal(t, "x", members[7].PropertyName)
	assert.Equal(t, "./dep", members[7].ModuleSpecifier)
	assert.Equal(t, "./all", members[8].ModuleSpecifier)
	assert.Equal(t, "./grouped", members[9].ModuleSpecifier)
	assert.Equal(t, "Default", members[10].PropertyName)
}

func TestTypeScriptParser_ParseDefaultExports(t *testing.T) {
	t.Parallel()

	result := parseSource(t, "default.ts", "export default class Widget {}\n")
	require.Len(t, result.File.Root.Members, 1)
	widget := result.File.Root.Members[0]
	assert.Equal(t, "Widget", widget.Name)
	assert.True(t, widget.Modifiers.Has(ast.ModifierExport|ast.ModifierDefault))

	result = parseSource(t, "anonymous.ts", "export default function () {}\n")
	require.Len(t, result.File.Root.Members, 1)
	fn := result.File.Root.Members[0]
	assert.Equal(t, ast.ShapeFunctionDeclaration, fn.Shape)
	assert.Empty(t, fn.Name)
	assert.True(t, fn.Modifiers.Has(ast.ModifierDefault))

	result = parseSource(t, "assign.ts", "const api = {};\nexport = api;\n")
	require.Len(t, result.File.Root.Members, 2)
	assign := result.File.Root.Members[1]
	assert.Equal(t, ast.ShapeExportAssignment, assign.Shape)
	assert.Equal(t, "export=", assign.Name)
	assert.Equal(t, "api", assign.PropertyName)
}

func TestTypeScriptParser_ParseNamespaces(t *testing.T) {
	t.Parallel()

	src := `export namespace Outer.Inner {
    export const x = 1;
}
namespace Local {
    function hidden(): void {}
}
declare module "ambient" {
    export function f(): void;
}
declare global {
    interface Window { extra: string }
}`
	result := parseSource(t, "ns.ts", src)
	members := result.File.Root.Members
	require.Equal(t, []string{
		"ModuleDeclaration Outer",
		"ModuleDeclaration Local",
		`ModuleDeclaration "ambient"`,
		"ModuleDeclaration global",
	}, shapes(members))

	outer := members[0]
	assert.True(t, outer.Modifiers.Has(ast.ModifierExport))
	require.Len(t, outer.Members, 1)
	inner := outer.Members[0]
	assert.Equal(t, "Inner", inner.Name)
	assert.True(t, inner.Modifiers.Has(ast.ModifierExport))
	require.Equal(t, []string{"VariableDeclaration x"}, shapes(inner.Members))
	assert.Equal(t, "const", inner.Members[0].VariableKind)

	local := members[1]
	assert.False(t, local.Modifiers.Has(ast.ModifierExport))
	assert.Equal(t, []string{"FunctionDeclaration hidden"}, shapes(local.Members))

	ambient := members[2]
	assert.True(t, ambient.Modifiers.Has(ast.ModifierDeclare))
	assert.Equal(t, []string{"FunctionDeclaration f"}, shapes(ambient.Members))

	global := members[3]
	assert.Equal(t, []string{"InterfaceDeclaration Window"}, shapes(global.Members))
}

func TestTypeScriptParser_ParseVariables(t *testing.T) {
	t.Parallel()

	src := `let a: string, b = () => 1;
var v;
export const point = { x: 0, move(dx: number) {} };`
	result := parseSource(t, "vars.ts", src)
	members := result.File.Root.Members
	require.Equal(t, []string{
		"VariableDeclaration a",
		"VariableDeclaration b",
		"VariableDeclaration v",
		"VariableDeclaration point",
	}, shapes(members))

	assert.Equal(t, "let", members[0].VariableKind)
	assert.Equal(t, "string", members[0].Type.Text)

	require.NotNil(t, members[1].Value)
	assert.Equal(t, ast.ShapeArrowFunction, members[1].Value.Shape)
	assert.Equal(t, "() => 1", members[1].Initializer)

	assert.Equal(t, "var", members[2].VariableKind)

	point := members[3]
	assert.True(t, point.Modifiers.Has(ast.ModifierExport|ast.ModifierConst))
	require.NotNil(t, point.Value)
	assert.Equal(t, ast.ShapeObjectLiteral, point.Value.Shape)
	assert.Equal(t, []string{"PropertyAssignment x", "MethodDeclaration move"}, shapes(point.Value.Members))
}

func TestTypeScriptParser_SyntaxError(t *testing.T) {
	t.Parallel()

	result := parseSource(t, "broken.ts", "export interface Ok {}\nexport function broken( {\n")
	require.NotNil(t, result.SyntaxError)
	assert.NotEmpty(t, result.File.Root.Members)
}

func TestTypeScriptParser_SyntaxErrorTextIsValidUTF8(t *testing.T) {
	t.Parallel()

	// The error node starts at "(" and its text runs past the excerpt limit
	// with a multi-byte rune straddling it.
	src := "export function broken( {\n" + strings.Repeat("é", 40) + "\n"
	result := parseSource(t, "broken.ts", src)
	require.NotNil(t, result.SyntaxError)
	assert.True(t, utf8.ValidString(result.SyntaxError.Text))
	assert.LessOrEqual(t, len(result.SyntaxError.Text), maxErrorText)
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateRunes("short", 40))
	assert.Equal(t, "ab", truncateRunes("abé", 3))
	assert.Equal(t, "abé", truncateRunes("abéd", 4))
	assert.Equal(t, "", truncateRunes("é", 1))
}

func TestTypeScriptParser_EmptyFile(t *testing.T) {
	t.Parallel()

	result := parseSource(t, "empty.d.ts", "")
	assert.Nil(t, result.SyntaxError)
	assert.Empty(t, result.File.Root.Members)
	assert.Empty(t, result.ModuleSpecifiers)
	assert.True(t, result.File.IsDeclarationFile)
}

func TestTypeScriptParser_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewTypeScriptParser().ParseFile(ctx, "/project/a.ts", []byte("export {}"))
	assert.ErrorIs(t, err, context.Canceled)
}
