package parsers

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/ts-extractor/internal/ast"
)

// SyntaxError is the position of the first error node of a file.
// Line and Character are 0-based.
type SyntaxError struct {
	Line      int
	Character int
	Text      string
}

// ParseResult is one converted file.
type ParseResult struct {
	File *ast.SourceFile

	// ModuleSpecifiers lists the unquoted specifiers of every import and
	// re-export in source order, without duplicates.
	ModuleSpecifiers []string

	// SyntaxError is set when the file did not parse cleanly. The file is
	// still converted as far as tree-sitter recovered.
	SyntaxError *SyntaxError
}

// TypeScriptParser converts TypeScript and TSX sources into declaration
// trees.
type TypeScriptParser struct {
	typescript *treeSitterParser
	tsx        *treeSitterParser
}

// NewTypeScriptParser creates a new TypeScript parser.
func NewTypeScriptParser() *TypeScriptParser {
	return &TypeScriptParser{
		typescript: newTreeSitterParser(sitter.NewLanguage(typescript.LanguageTypescript()), "typescript"),
		tsx:        newTreeSitterParser(sitter.NewLanguage(typescript.LanguageTSX()), "tsx"),
	}
}

// ParseFile parses source and converts it into a source file named fileName.
// fileName must be absolute and slash-separated.
func (p *TypeScriptParser) ParseFile(ctx context.Context, fileName string, source []byte) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tsp := p.typescript
	if strings.HasSuffix(fileName, ".tsx") {
		tsp = p.tsx
	}
	tree, err := tsp.parse(fileName, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	c := newConverter(fileName, source)
	c.statements(c.file.Root, root)

	result := &ParseResult{File: c.file, ModuleSpecifiers: c.specifiers}
	if root.HasError() {
		result.SyntaxError = c.firstError(root)
	}
	return result, nil
}

// IsDeclarationFile reports whether fileName is an ambient declaration file.
func IsDeclarationFile(fileName string) bool {
	for _, ext := range []string{".d.ts", ".d.mts", ".d.cts"} {
		if strings.HasSuffix(fileName, ext) {
			return true
		}
	}
	return false
}

type converter struct {
	file       *ast.SourceFile
	source     []byte
	specifiers []string
	seen       map[string]bool
}

func newConverter(fileName string, source []byte) *converter {
	f := ast.NewSourceFile(fileName, source)
	f.IsDeclarationFile = IsDeclarationFile(fileName)
	return &converter{file: f, source: source, seen: make(map[string]bool)}
}

func (c *converter) text(n *sitter.Node) string {
	return extractNodeText(n, c.source)
}

func (c *converter) addSpecifier(spec string) {
	if spec == "" || c.seen[spec] {
		return
	}
	c.seen[spec] = true
	c.specifiers = append(c.specifiers, spec)
}

// decl creates a declaration spanning from the start of start to the end of
// end.
func (c *converter) decl(shape ast.Shape, name string, start, end *sitter.Node) *ast.Declaration {
	return ast.NewDeclaration(shape, name, int(start.StartByte()), int(end.EndByte()))
}

func (c *converter) firstError(root *sitter.Node) *SyntaxError {
	var found *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return false
		}
		return n.HasError()
	})
	if found == nil {
		found = root
	}
	line, char := c.file.LineAndCharacter(int(found.StartByte()))
	return &SyntaxError{Line: line, Character: char, Text: truncateRunes(c.text(found), maxErrorText)}
}

// maxErrorText bounds the source excerpt of a syntax error, in bytes.
const maxErrorText = 40

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// statements converts every statement of block into members of parent.
func (c *converter) statements(parent *ast.Declaration, block *sitter.Node) {
	for _, n := range namedChildren(block) {
		c.statement(parent, n, n, 0, nil)
	}
}

// statement converts n. outer is the node that owns the leading comment and
// the start position, which is the export statement for exported
// declarations.
func (c *converter) statement(parent *ast.Declaration, n, outer *sitter.Node, mods ast.ModifierFlags, decorators []ast.Decorator) {
	switch n.Kind() {
	case "import_statement":
		c.importStatement(parent, n)
	case "export_statement":
		c.exportStatement(parent, n)
	case "function_declaration", "generator_function_declaration", "function_signature":
		parent.AddMember(c.function(n, outer, mods))
	case "class_declaration", "abstract_class_declaration":
		parent.AddMember(c.class(n, outer, mods, decorators))
	case "interface_declaration":
		parent.AddMember(c.interfaceDecl(n, outer, mods))
	case "type_alias_declaration":
		parent.AddMember(c.typeAlias(n, outer, mods))
	case "enum_declaration":
		parent.AddMember(c.enum(n, outer, mods))
	case "lexical_declaration", "variable_declaration":
		c.variables(parent, n, outer, mods)
	case "internal_module", "module":
		parent.AddMember(c.module(n, outer, mods))
	case "ambient_declaration":
		c.ambient(parent, n, outer, mods)
	case "expression_statement":
		// `namespace A {}` parses as an expression statement at the top level.
		if inner := namedChildren(n); len(inner) == 1 {
			switch inner[0].Kind() {
			case "internal_module", "module":
				c.statement(parent, inner[0], outer, mods, decorators)
			}
		}
	}
}

func (c *converter) importStatement(parent *ast.Declaration, n *sitter.Node) {
	if req := findChildByType(n, "import_require_clause"); req != nil {
		// import x = require("...")
		source := unquote(field(req, "source", "string"), c.source)
		c.addSpecifier(source)
		if id := findChildByType(req, "identifier"); id != nil {
			d := parent.AddMember(c.decl(ast.ShapeNamespaceImport, c.text(id), req, req))
			d.ModuleSpecifier = source
		}
		return
	}

	sourceNode := field(n, "source")
	if sourceNode == nil {
		return
	}
	source := unquote(sourceNode, c.source)
	c.addSpecifier(source)

	clause := findChildByType(n, "import_clause")
	if clause == nil {
		return
	}
	for _, child := range namedChildren(clause) {
		switch child.Kind() {
		case "identifier":
			d := parent.AddMember(c.decl(ast.ShapeImportClause, c.text(child), child, child))
			d.ModuleSpecifier = source
		case "namespace_import":
			id := findChildByType(child, "identifier")
			d := parent.AddMember(c.decl(ast.ShapeNamespaceImport, c.text(id), child, child))
			d.ModuleSpecifier = source
		case "named_imports":
			for _, spec := range findChildrenByType(child, "import_specifier") {
				name := c.moduleExportName(field(spec, "name", "identifier"))
				d := c.decl(ast.ShapeImportSpecifier, name, spec, spec)
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					d.PropertyName = name
					d.Name = c.text(alias)
				}
				d.ModuleSpecifier = source
				parent.AddMember(d)
			}
		}
	}
}

func (c *converter) exportStatement(parent *ast.Declaration, n *sitter.Node) {
	decorators := c.decorators(n)
	var source string
	if s := n.ChildByFieldName("source"); s != nil {
		source = unquote(s, c.source)
		c.addSpecifier(source)
	}
	mods := ast.ModifierExport
	if hasChild(n, "default") {
		mods |= ast.ModifierDefault
	}

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		c.statement(parent, decl, n, mods, decorators)
		return
	}

	if clause := findChildByType(n, "export_clause"); clause != nil {
		for _, spec := range findChildrenByType(clause, "export_specifier") {
			name := c.moduleExportName(field(spec, "name", "identifier"))
			d := c.decl(ast.ShapeExportSpecifier, name, spec, spec)
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				d.PropertyName = name
				d.Name = c.moduleExportName(alias)
			}
			d.ModuleSpecifier = source
			parent.AddMember(d)
		}
		return
	}

	if ns := findChildByType(n, "namespace_export"); ns != nil {
		// export * as ns from "..."
		var name string
		if ids := namedChildren(ns); len(ids) > 0 {
			name = c.moduleExportName(ids[len(ids)-1])
		}
		d := parent.AddMember(c.decl(ast.ShapeExportDeclaration, name, n, n))
		d.ModuleSpecifier = source
		return
	}

	if hasChild(n, "*") {
		d := parent.AddMember(c.decl(ast.ShapeExportDeclaration, "", n, n))
		d.ModuleSpecifier = source
		return
	}

	if value := n.ChildByFieldName("value"); value != nil {
		c.exportDefault(parent, n, value, decorators)
		return
	}

	if hasChild(n, "=") {
		// export = expr
		d := c.decl(ast.ShapeExportAssignment, "export=", n, n)
		if exprs := namedChildren(n); len(exprs) > 0 {
			if expr := exprs[len(exprs)-1]; expr.Kind() == "identifier" {
				d.PropertyName = c.text(expr)
			}
		}
		d.Doc = precedingDocComment(n, c.source)
		parent.AddMember(d)
	}
}

// exportDefault converts `export default <expression>`.
func (c *converter) exportDefault(parent *ast.Declaration, n, value *sitter.Node, decorators []ast.Decorator) {
	mods := ast.ModifierExport | ast.ModifierDefault
	value = unwrapExpression(value)
	switch value.Kind() {
	case "function_expression", "function", "generator_function":
		d := c.function(value, n, mods)
		d.Shape = ast.ShapeFunctionDeclaration
		parent.AddMember(d)
		return
	case "class":
		parent.AddMember(c.class(value, n, mods, decorators))
		return
	}

	d := c.decl(ast.ShapeExportAssignment, ast.DefaultName, n, n)
	if value.Kind() == "identifier" {
		d.PropertyName = c.text(value)
	}
	d.Doc = precedingDocComment(n, c.source)
	parent.AddMember(d)
}

func (c *converter) ambient(parent *ast.Declaration, n, outer *sitter.Node, mods ast.ModifierFlags) {
	mods |= ast.ModifierDeclare
	if hasChild(n, "global") {
		d := c.decl(ast.ShapeModuleDeclaration, "global", outer, n)
		d.Modifiers = mods
		d.Doc = precedingDocComment(outer, c.source)
		c.statements(d, findChildByType(n, "statement_block"))
		parent.AddMember(d)
		return
	}
	for _, child := range namedChildren(n) {
		c.statement(parent, child, outer, mods, nil)
	}
}

func (c *converter) function(n, outer *sitter.Node, mods ast.ModifierFlags) *ast.Declaration {
	d := c.decl(ast.ShapeFunctionDeclaration, c.text(n.ChildByFieldName("name")), outer, n)
	d.Modifiers = mods | c.modifiers(n)
	d.Doc = precedingDocComment(outer, c.source)
	c.signature(d, n)
	d.HasBody = n.ChildByFieldName("body") != nil
	return d
}

// signature converts the type parameters, parameters and return type of a
// callable node.
func (c *converter) signature(d *ast.Declaration, n *sitter.Node) {
	c.typeParameters(d, n.ChildByFieldName("type_parameters"))
	if params := field(n, "parameters", "formal_parameters"); params != nil {
		c.parameters(d, params)
	} else if p := n.ChildByFieldName("parameter"); p != nil {
		// x => x
		d.AddParameter(c.decl(ast.ShapeParameter, c.text(p), p, p))
	}
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		d.SetType(c.typeNode(rt))
	}
}

func (c *converter) typeParameters(d *ast.Declaration, n *sitter.Node) {
	for _, tp := range findChildrenByType(n, "type_parameter") {
		p := c.decl(ast.ShapeTypeParameter, c.text(field(tp, "name", "type_identifier")), tp, tp)
		if con := field(tp, "constraint", "constraint"); con != nil {
			p.Constraint = p.AdoptType(c.typeNode(con))
		}
		if def := field(tp, "value", "default_type"); def != nil {
			p.Default = p.AdoptType(c.typeNode(def))
		}
		d.AddTypeParameter(p)
	}
}

func (c *converter) parameters(d *ast.Declaration, n *sitter.Node) {
	index := 0
	for _, p := range namedChildren(n) {
		if p.Kind() != "required_parameter" && p.Kind() != "optional_parameter" {
			continue
		}
		name, rest := c.parameterName(p, index)
		index++

		pd := c.decl(ast.ShapeParameter, name, p, p)
		pd.Modifiers = c.modifiers(p)
		pd.Rest = rest
		pd.Optional = p.Kind() == "optional_parameter"
		pd.Decorators = c.decorators(p)
		if t := field(p, "type", "type_annotation"); t != nil {
			pd.SetType(c.typeNode(t))
		}
		if v := p.ChildByFieldName("value"); v != nil {
			c.initializer(pd, v)
		}
		d.AddParameter(pd)
	}
}

// parameterName names a parameter after its binding. Destructured
// parameters are named after their position.
func (c *converter) parameterName(p *sitter.Node, index int) (string, bool) {
	pattern := field(p, "pattern", "identifier", "this", "rest_pattern", "object_pattern", "array_pattern")
	if pattern == nil {
		return "__" + strconv.Itoa(index), false
	}
	switch pattern.Kind() {
	case "identifier", "this":
		return c.text(pattern), false
	case "rest_pattern":
		if id := findChildByType(pattern, "identifier"); id != nil {
			return c.text(id), true
		}
		return "__" + strconv.Itoa(index), true
	}
	return "__" + strconv.Itoa(index), false
}

func (c *converter) class(n, outer *sitter.Node, mods ast.ModifierFlags, decorators []ast.Decorator) *ast.Declaration {
	d := c.decl(ast.ShapeClassDeclaration, c.text(n.ChildByFieldName("name")), outer, n)
	d.Modifiers = mods | c.modifiers(n)
	d.Doc = precedingDocComment(outer, c.source)
	d.Decorators = append(decorators, c.decorators(n)...)
	c.typeParameters(d, n.ChildByFieldName("type_parameters"))

	if heritage := findChildByType(n, "class_heritage"); heritage != nil {
		if ext := findChildByType(heritage, "extends_clause"); ext != nil {
			if t := c.extendsClause(ext); t != nil {
				d.Extends = append(d.Extends, d.AdoptType(t))
			}
		}
		if impl := findChildByType(heritage, "implements_clause"); impl != nil {
			for _, child := range namedChildren(impl) {
				if t := c.typeNode(child); t != nil {
					d.Implements = append(d.Implements, d.AdoptType(t))
				}
			}
		}
	}

	c.classBody(d, field(n, "body", "class_body"))
	return d
}

// extendsClause converts the base class expression of a class.
func (c *converter) extendsClause(ext *sitter.Node) *ast.TypeNode {
	value := ext.ChildByFieldName("value")
	if value == nil {
		children := namedChildren(ext)
		if len(children) == 0 {
			return nil
		}
		value = children[0]
	}
	t := &ast.TypeNode{Kind: ast.TypeReference, Name: c.text(value)}
	end := value.EndByte()
	if args := ext.ChildByFieldName("type_arguments"); args != nil {
		t.Args = c.typeArguments(args)
		end = args.EndByte()
	}
	t.Text = string(c.source[value.StartByte():end])
	return t
}

func (c *converter) classBody(d *ast.Declaration, body *sitter.Node) {
	var pending []ast.Decorator
	for _, m := range namedChildren(body) {
		var member *ast.Declaration
		switch m.Kind() {
		case "decorator":
			pending = append(pending, c.decorator(m))
			continue
		case "method_definition", "method_signature", "abstract_method_signature":
			member = c.method(m)
		case "public_field_definition":
			member = c.property(m, ast.ShapePropertyDeclaration)
		case "index_signature":
			member = c.indexSignature(m)
		default:
			pending = nil
			continue
		}
		member.Decorators = append(pending, member.Decorators...)
		pending = nil
		d.AddMember(member)
	}
}

func (c *converter) method(m *sitter.Node) *ast.Declaration {
	name := c.propertyName(field(m, "name"))
	shape := ast.ShapeMethodDeclaration
	switch {
	case hasChild(m, "get"):
		shape = ast.ShapeGetAccessor
	case hasChild(m, "set"):
		shape = ast.ShapeSetAccessor
	case name == "constructor":
		shape = ast.ShapeConstructor
	}

	d := c.decl(shape, name, m, m)
	d.Modifiers = c.modifiers(m)
	if m.Kind() == "abstract_method_signature" {
		d.Modifiers |= ast.ModifierAbstract
	}
	d.Optional = hasChild(m, "?")
	d.Doc = precedingDocComment(m, c.source)
	d.Decorators = c.decorators(m)
	c.signature(d, m)
	d.HasBody = m.ChildByFieldName("body") != nil
	return d
}

func (c *converter) property(m *sitter.Node, shape ast.Shape) *ast.Declaration {
	d := c.decl(shape, c.propertyName(field(m, "name")), m, m)
	d.Modifiers = c.modifiers(m)
	d.Optional = hasChild(m, "?")
	d.Doc = precedingDocComment(m, c.source)
	d.Decorators = c.decorators(m)
	if t := field(m, "type", "type_annotation"); t != nil {
		d.SetType(c.typeNode(t))
	}
	if v := m.ChildByFieldName("value"); v != nil {
		c.initializer(d, v)
	}
	return d
}

func (c *converter) indexSignature(m *sitter.Node) *ast.Declaration {
	d := c.decl(ast.ShapeIndexSignature, "", m, m)
	d.Modifiers = c.modifiers(m)
	d.Doc = precedingDocComment(m, c.source)
	if id := field(m, "name", "identifier"); id != nil {
		p := c.decl(ast.ShapeParameter, c.text(id), id, id)
		indexType := m.ChildByFieldName("index_type")
		if indexType == nil {
			for _, child := range namedChildren(m) {
				if child.Kind() != "identifier" && !isAnnotation(child) {
					indexType = child
					break
				}
			}
		}
		p.SetType(c.typeNode(indexType))
		d.AddParameter(p)
	}
	d.SetType(c.typeNode(annotationOf(m)))
	return d
}

func (c *converter) interfaceDecl(n, outer *sitter.Node, mods ast.ModifierFlags) *ast.Declaration {
	d := c.decl(ast.ShapeInterfaceDeclaration, c.text(n.ChildByFieldName("name")), outer, n)
	d.Modifiers = mods | c.modifiers(n)
	d.Doc = precedingDocComment(outer, c.source)
	c.typeParameters(d, n.ChildByFieldName("type_parameters"))
	if ext := findChildByType(n, "extends_type_clause"); ext != nil {
		for _, child := range namedChildren(ext) {
			if t := c.typeNode(child); t != nil {
				d.Extends = append(d.Extends, d.AdoptType(t))
			}
		}
	}
	c.typeMembers(d, field(n, "body", "interface_body", "object_type"))
	return d
}

// typeMembers converts the members of an interface body or object type.
func (c *converter) typeMembers(d *ast.Declaration, body *sitter.Node) {
	for _, m := range namedChildren(body) {
		var member *ast.Declaration
		switch m.Kind() {
		case "property_signature":
			member = c.property(m, ast.ShapePropertySignature)
		case "method_signature":
			member = c.method(m)
			member.Shape = ast.ShapeMethodSignature
		case "call_signature":
			member = c.decl(ast.ShapeCallSignature, "", m, m)
			member.Doc = precedingDocComment(m, c.source)
			c.signature(member, m)
		case "construct_signature":
			member = c.decl(ast.ShapeConstructSignature, "", m, m)
			member.Doc = precedingDocComment(m, c.source)
			c.typeParameters(member, m.ChildByFieldName("type_parameters"))
			c.parameters(member, field(m, "parameters", "formal_parameters"))
			member.SetType(c.typeNode(field(m, "type", "type_annotation")))
		case "index_signature":
			member = c.indexSignature(m)
		default:
			continue
		}
		d.AddMember(member)
	}
}

func (c *converter) typeAlias(n, outer *sitter.Node, mods ast.ModifierFlags) *ast.Declaration {
	d := c.decl(ast.ShapeTypeAliasDeclaration, c.text(n.ChildByFieldName("name")), outer, n)
	d.Modifiers = mods | c.modifiers(n)
	d.Doc = precedingDocComment(outer, c.source)
	c.typeParameters(d, n.ChildByFieldName("type_parameters"))
	d.SetType(c.typeNode(n.ChildByFieldName("value")))
	return d
}

func (c *converter) enum(n, outer *sitter.Node, mods ast.ModifierFlags) *ast.Declaration {
	d := c.decl(ast.ShapeEnumDeclaration, c.text(n.ChildByFieldName("name")), outer, n)
	d.Modifiers = mods | c.modifiers(n)
	d.Doc = precedingDocComment(outer, c.source)
	for _, m := range namedChildren(field(n, "body", "enum_body")) {
		var member *ast.Declaration
		switch m.Kind() {
		case "enum_assignment":
			nameNode := m.ChildByFieldName("name")
			if nameNode == nil {
				if children := namedChildren(m); len(children) > 0 {
					nameNode = children[0]
				}
			}
			member = c.decl(ast.ShapeEnumMember, c.propertyName(nameNode), m, m)
			if v := m.ChildByFieldName("value"); v != nil {
				member.Initializer = c.text(v)
			}
		case "property_identifier", "string", "number":
			member = c.decl(ast.ShapeEnumMember, c.propertyName(m), m, m)
		default:
			continue
		}
		member.Doc = precedingDocComment(m, c.source)
		d.AddMember(member)
	}
	return d
}

func (c *converter) variables(parent *ast.Declaration, n, outer *sitter.Node, mods ast.ModifierFlags) {
	kind := "var"
	if k := n.ChildByFieldName("kind"); k != nil {
		kind = c.text(k)
	} else if n.ChildCount() > 0 {
		switch first := n.Child(0).Kind(); first {
		case "const", "let", "var":
			kind = first
		}
	}
	doc := precedingDocComment(outer, c.source)

	for _, v := range findChildrenByType(n, "variable_declarator") {
		nameNode := field(v, "name", "identifier")
		if nameNode == nil || nameNode.Kind() != "identifier" {
			// Destructuring declarations do not declare an API item.
			continue
		}
		d := c.decl(ast.ShapeVariableDeclaration, c.text(nameNode), v, v)
		d.Modifiers = mods
		if kind == "const" {
			d.Modifiers |= ast.ModifierConst
		}
		d.VariableKind = kind
		d.Doc = doc
		if t := field(v, "type", "type_annotation"); t != nil {
			d.SetType(c.typeNode(t))
		}
		if value := v.ChildByFieldName("value"); value != nil {
			c.initializer(d, value)
		}
		parent.AddMember(d)
	}
}

func (c *converter) module(n, outer *sitter.Node, mods ast.ModifierFlags) *ast.Declaration {
	nameNode := field(n, "name", "identifier", "nested_identifier", "string")
	name := c.text(nameNode)
	parts := []string{name}
	if nameNode != nil && nameNode.Kind() == "nested_identifier" {
		parts = strings.Split(strings.ReplaceAll(name, " ", ""), ".")
	}

	d := c.decl(ast.ShapeModuleDeclaration, parts[0], outer, n)
	d.Modifiers = mods | c.modifiers(n)
	d.Doc = precedingDocComment(outer, c.source)

	// namespace A.B {} nests B inside A.
	inner := d
	for _, part := range parts[1:] {
		next := c.decl(ast.ShapeModuleDeclaration, part, n, n)
		next.Modifiers = ast.ModifierExport | (mods & ast.ModifierDeclare)
		inner = inner.AddMember(next)
	}
	c.statements(inner, field(n, "body", "statement_block"))
	return d
}

// initializer records the initializer text of d and converts function,
// class and object literal values into declarations.
func (c *converter) initializer(d *ast.Declaration, value *sitter.Node) {
	d.Initializer = c.text(value)
	if v := c.valueDeclaration(value); v != nil {
		d.SetValue(v)
	}
}

func (c *converter) valueDeclaration(n *sitter.Node) *ast.Declaration {
	n = unwrapExpression(n)
	switch n.Kind() {
	case "arrow_function":
		d := c.decl(ast.ShapeArrowFunction, "", n, n)
		d.Modifiers = c.modifiers(n)
		c.signature(d, n)
		d.HasBody = true
		return d
	case "function_expression", "function", "generator_function":
		d := c.decl(ast.ShapeFunctionExpression, c.text(n.ChildByFieldName("name")), n, n)
		d.Modifiers = c.modifiers(n)
		c.signature(d, n)
		d.HasBody = true
		return d
	case "class":
		return c.class(n, n, 0, nil)
	case "object":
		d := c.decl(ast.ShapeObjectLiteral, "", n, n)
		for _, m := range namedChildren(n) {
			switch m.Kind() {
			case "pair":
				p := c.decl(ast.ShapePropertyAssignment, c.propertyName(m.ChildByFieldName("key")), m, m)
				if v := m.ChildByFieldName("value"); v != nil {
					c.initializer(p, v)
				}
				d.AddMember(p)
			case "shorthand_property_identifier":
				d.AddMember(c.decl(ast.ShapeShorthandPropertyAssignment, c.text(m), m, m))
			case "method_definition":
				d.AddMember(c.method(m))
			}
		}
		return d
	}
	return nil
}

func (c *converter) decorators(n *sitter.Node) []ast.Decorator {
	var out []ast.Decorator
	for _, d := range findChildrenByType(n, "decorator") {
		out = append(out, c.decorator(d))
	}
	return out
}

func (c *converter) decorator(n *sitter.Node) ast.Decorator {
	children := namedChildren(n)
	if len(children) == 0 {
		return ast.Decorator{Name: strings.TrimPrefix(c.text(n), "@")}
	}
	expr := children[0]
	if expr.Kind() != "call_expression" {
		return ast.Decorator{Name: c.text(expr)}
	}
	args := c.text(expr.ChildByFieldName("arguments"))
	args = strings.TrimSuffix(strings.TrimPrefix(args, "("), ")")
	return ast.Decorator{
		Name:      c.text(expr.ChildByFieldName("function")),
		Arguments: strings.TrimSpace(args),
	}
}

// modifiers collects the modifier keywords written directly on n.
func (c *converter) modifiers(n *sitter.Node) ast.ModifierFlags {
	var m ast.ModifierFlags
	if n == nil {
		return m
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		switch child.Kind() {
		case "async":
			m |= ast.ModifierAsync
		case "static":
			m |= ast.ModifierStatic
		case "readonly":
			m |= ast.ModifierReadonly
		case "abstract":
			m |= ast.ModifierAbstract
		case "declare":
			m |= ast.ModifierDeclare
		case "const":
			m |= ast.ModifierConst
		case "accessibility_modifier":
			switch c.text(child) {
			case "public":
				m |= ast.ModifierPublic
			case "private":
				m |= ast.ModifierPrivate
			case "protected":
				m |= ast.ModifierProtected
			}
		}
	}
	return m
}

func (c *converter) propertyName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind() == "string" {
		return unquote(n, c.source)
	}
	return c.text(n)
}

// moduleExportName reads `a` or `"a"` in import and export specifiers.
func (c *converter) moduleExportName(n *sitter.Node) string {
	return c.propertyName(n)
}

// unwrapExpression strips parentheses and type assertions around a value.
func unwrapExpression(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Kind() {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
			children := namedChildren(n)
			if len(children) == 0 {
				return n
			}
			n = children[0]
		default:
			return n
		}
	}
	return n
}
