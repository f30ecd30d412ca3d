package ast

import (
	"strings"
)

// scope is the pair of tables a statement list binds into.
type scope struct {
	locals  *SymbolTable
	exports *SymbolTable
}

// bindFile creates the module symbol of f and binds every declaration in it.
func bindFile(f *SourceFile) {
	root := f.Root
	if root.symbol != nil {
		return
	}
	module := NewSymbol(moduleSymbolName(f.FileName), SymbolModule)
	module.Exports = NewSymbolTable()
	module.addDeclaration(root)
	root.locals = NewSymbolTable()

	bindStatements(root.Members, scope{locals: root.locals, exports: module.Exports})
}

func moduleSymbolName(fileName string) string {
	return `"` + trimExtension(fileName) + `"`
}

func trimExtension(name string) string {
	for _, ext := range []string{".d.ts", ".d.mts", ".d.cts", ".tsx", ".ts", ".mts", ".cts", ".jsx", ".js", ".mjs", ".cjs"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

func bindStatements(statements []*Declaration, sc scope) {
	for _, d := range statements {
		bindStatement(d, sc)
	}
}

func bindStatement(d *Declaration, sc scope) {
	switch d.Shape {
	case ShapeExportDeclaration:
		if d.Name == "" {
			sc.exports.getOrCreate(ExportStarName, SymbolExportStar).addDeclaration(d)
			return
		}
		// export * as ns from "..."
		bindAlias(d, d.Name, sc.exports)

	case ShapeExportSpecifier:
		bindAlias(d, d.Name, sc.exports)

	case ShapeExportAssignment:
		bindAlias(d, d.Name, sc.exports)

	case ShapeImportSpecifier, ShapeImportClause, ShapeNamespaceImport:
		bindAlias(d, d.Name, sc.locals)

	case ShapeVariableDeclaration, ShapeFunctionDeclaration, ShapeClassDeclaration,
		ShapeInterfaceDeclaration, ShapeEnumDeclaration, ShapeTypeAliasDeclaration,
		ShapeModuleDeclaration:
		bindNamed(d, sc)

	default:
		bindChildren(d)
	}
}

func bindAlias(d *Declaration, name string, table *SymbolTable) {
	s := NewSymbol(name, SymbolAlias)
	s.addDeclaration(d)
	table.Set(name, s)
}

// bindNamed binds a declaration into the scope, merging it with earlier
// declarations of the same name.
func bindNamed(d *Declaration, sc scope) {
	name := d.Name
	exportName := name
	if d.Modifiers.Has(ModifierDefault) {
		exportName = DefaultName
		if name == "" {
			name = DefaultName
		}
	}

	var s *Symbol
	if name == DefaultName && d.Modifiers.Has(ModifierDefault) {
		s = sc.exports.getOrCreate(DefaultName, 0)
	} else {
		s = sc.locals.getOrCreate(name, 0)
	}
	if d.Modifiers.Has(ModifierExport) && sc.exports != nil {
		if existing := sc.exports.Get(exportName); existing == nil || !existing.IsAlias() {
			sc.exports.Set(exportName, s)
		}
	}
	s.addDeclaration(d)

	if d.Shape == ShapeModuleDeclaration {
		if s.Exports == nil {
			s.Exports = NewSymbolTable()
		}
		d.locals = NewSymbolTable()
		bindStatements(d.Members, scope{locals: d.locals, exports: s.Exports})
		return
	}
	bindChildren(d)
}

// bindChildren binds the members, parameters, type parameters and inline
// declarations owned by d.
func bindChildren(d *Declaration) {
	if len(d.TypeParameters) > 0 || len(d.Parameters) > 0 {
		if d.locals == nil {
			d.locals = NewSymbolTable()
		}
		for _, tp := range d.TypeParameters {
			bindLocal(tp, d.locals)
		}
		for _, p := range d.Parameters {
			bindLocal(p, d.locals)
		}
	}

	if hasMemberTable(d.Shape) {
		owner := d.symbol
		if owner == nil {
			owner = bindAnonymous(d)
		}
		if owner.Members == nil {
			owner.Members = NewSymbolTable()
		}
		for _, m := range d.Members {
			owner.Members.getOrCreate(memberName(m), 0).addDeclaration(m)
			bindChildren(m)
		}
	}

	if d.Value != nil {
		bindAnonymous(d.Value)
		bindChildren(d.Value)
	}

	for _, t := range d.typeNodes() {
		for _, inline := range t.inlineDeclarations() {
			bindAnonymous(inline)
			bindChildren(inline)
		}
	}
}

func bindLocal(d *Declaration, locals *SymbolTable) {
	name := d.Name
	if name == "" {
		name = "__" + strings.ToLower(string(d.Shape))
	}
	s := NewSymbol(name, 0)
	s.addDeclaration(d)
	if locals.Get(name) == nil {
		locals.Set(name, s)
	}
	bindChildren(d)
}

// bindAnonymous gives a nameless declaration its own symbol.
func bindAnonymous(d *Declaration) *Symbol {
	if d.symbol != nil {
		return d.symbol
	}
	name := d.Name
	if name == "" {
		switch d.Shape {
		case ShapeObjectLiteral:
			name = ObjectName
		case ShapeArrowFunction, ShapeFunctionExpression:
			name = FunctionName
		default:
			name = TypeName
		}
	}
	s := NewSymbol(name, 0)
	s.addDeclaration(d)
	return s
}

func hasMemberTable(shape Shape) bool {
	switch shape {
	case ShapeClassDeclaration, ShapeInterfaceDeclaration, ShapeEnumDeclaration,
		ShapeTypeLiteral, ShapeObjectLiteral, ShapeMappedType:
		return true
	}
	return false
}

func memberName(m *Declaration) string {
	switch m.Shape {
	case ShapeConstructor:
		return ConstructorName
	case ShapeIndexSignature:
		return IndexName
	case ShapeCallSignature:
		return CallName
	case ShapeConstructSignature:
		return NewName
	}
	if m.Name == "" {
		return TypeName
	}
	return m.Name
}
