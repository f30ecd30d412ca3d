package ast

import (
	"path"
	"strings"
)

// Program is a set of bound source files and the queries the extractor
// runs against them.
type Program struct {
	// ProjectDir is the absolute, slash-separated project directory.
	ProjectDir string

	// RootNames are the entry file names in the order they were given.
	RootNames []string

	files map[string]*SourceFile
	order []string
}

// NewProgram creates an empty program rooted at projectDir.
func NewProgram(projectDir string) *Program {
	return &Program{
		ProjectDir: projectDir,
		files:      make(map[string]*SourceFile),
	}
}

// AddFile registers f, replacing an earlier file with the same name.
func (p *Program) AddFile(f *SourceFile) {
	if _, ok := p.files[f.FileName]; !ok {
		p.order = append(p.order, f.FileName)
	}
	p.files[f.FileName] = f
}

// SourceFile returns the file with the given name, or nil.
func (p *Program) SourceFile(fileName string) *SourceFile {
	return p.files[fileName]
}

// Files returns every file in load order.
func (p *Program) Files() []*SourceFile {
	out := make([]*SourceFile, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.files[name])
	}
	return out
}

// RootFiles returns the entry files that were loaded.
func (p *Program) RootFiles() []*SourceFile {
	var out []*SourceFile
	for _, name := range p.RootNames {
		if f := p.files[name]; f != nil {
			out = append(out, f)
		}
	}
	return out
}

// Bind builds symbol tables for every file not bound yet.
func (p *Program) Bind() {
	for _, f := range p.Files() {
		bindFile(f)
	}
}

// SymbolOf returns the symbol of a declaration.
func (p *Program) SymbolOf(d *Declaration) *Symbol {
	if d == nil {
		return nil
	}
	return d.symbol
}

// ModuleSymbol returns the module symbol of f.
func (p *Program) ModuleSymbol(f *SourceFile) *Symbol {
	if f == nil {
		return nil
	}
	return f.Root.symbol
}

// ResolveModule returns the file a module specifier used in from resolves to.
func (p *Program) ResolveModule(from *SourceFile, specifier string) *SourceFile {
	if from == nil {
		return nil
	}
	name, ok := from.ResolvedModules[specifier]
	if !ok {
		return nil
	}
	return p.files[name]
}

// ModuleSourceFile returns the file targeted by the module specifier of an
// import or export declaration.
func (p *Program) ModuleSourceFile(d *Declaration) *SourceFile {
	if d == nil || d.ModuleSpecifier == "" {
		return nil
	}
	return p.ResolveModule(d.File, d.ModuleSpecifier)
}

// AliasTarget follows one alias hop. It returns nil for non-alias symbols and
// for aliases whose target cannot be found.
func (p *Program) AliasTarget(s *Symbol) *Symbol {
	if s == nil || !s.IsAlias() || len(s.Declarations) == 0 {
		return nil
	}
	d := s.Declarations[0]
	switch d.Shape {
	case ShapeExportSpecifier:
		return p.ExportSpecifierTarget(d)
	case ShapeImportSpecifier:
		return p.ResolveExport(p.ModuleSymbol(p.ModuleSourceFile(d)), importedName(d))
	case ShapeImportClause:
		return p.ResolveExport(p.ModuleSymbol(p.ModuleSourceFile(d)), DefaultName)
	case ShapeNamespaceImport, ShapeExportDeclaration:
		return p.ModuleSymbol(p.ModuleSourceFile(d))
	case ShapeExportAssignment:
		if d.PropertyName == "" {
			return nil
		}
		return p.ResolveName(d.PropertyName, d.Parent)
	}
	return nil
}

// ExportSpecifierTarget returns the symbol an export specifier names: the
// local symbol for `export { a }`, or the target module's export for
// `export { a } from "..."`. The result may itself be an alias.
func (p *Program) ExportSpecifierTarget(d *Declaration) *Symbol {
	if d == nil || d.Shape != ShapeExportSpecifier {
		return nil
	}
	name := importedName(d)
	if d.ModuleSpecifier != "" {
		return p.ResolveExport(p.ModuleSymbol(p.ModuleSourceFile(d)), name)
	}
	return p.ResolveName(name, d.Parent)
}

func importedName(d *Declaration) string {
	if d.PropertyName != "" {
		return d.PropertyName
	}
	return d.Name
}

// ResolveExport looks up name in the exports of a module, following
// `export *` declarations.
func (p *Program) ResolveExport(module *Symbol, name string) *Symbol {
	return p.resolveExport(module, name, make(map[*Symbol]bool))
}

func (p *Program) resolveExport(module *Symbol, name string, visited map[*Symbol]bool) *Symbol {
	if module == nil || visited[module] {
		return nil
	}
	visited[module] = true
	if s := module.Exports.Get(name); s != nil {
		return s
	}
	if name == DefaultName {
		return nil
	}
	star := module.Exports.Get(ExportStarName)
	if star == nil {
		return nil
	}
	for _, d := range star.Declarations {
		if s := p.resolveExport(p.ModuleSymbol(p.ModuleSourceFile(d)), name, visited); s != nil {
			return s
		}
	}
	return nil
}

// ResolveName resolves a possibly qualified name ("ns.Foo") lexically,
// starting at location and walking outwards.
func (p *Program) ResolveName(name string, location *Declaration) *Symbol {
	parts := strings.Split(name, ".")
	s := p.resolveIdentifier(parts[0], location)
	for _, part := range parts[1:] {
		if s == nil {
			return nil
		}
		s = p.followAliases(s)
		next := s.Exports.Get(part)
		if next == nil {
			next = s.Members.Get(part)
		}
		s = next
	}
	return s
}

func (p *Program) resolveIdentifier(name string, location *Declaration) *Symbol {
	for d := location; d != nil; d = d.Parent {
		if s := d.locals.Get(name); s != nil {
			return s
		}
		if d.Shape == ShapeModuleDeclaration && d.symbol != nil {
			if s := d.symbol.Exports.Get(name); s != nil {
				return s
			}
		}
	}
	return nil
}

func (p *Program) followAliases(s *Symbol) *Symbol {
	seen := make(map[*Symbol]bool)
	for s.IsAlias() && !seen[s] {
		seen[s] = true
		target := p.AliasTarget(s)
		if target == nil {
			break
		}
		s = target
	}
	return s
}

// PackageInfo identifies an external package a file belongs to.
type PackageInfo struct {
	// Name is the package name, including the scope ("@scope/pkg").
	Name string
	// Specifier is the import path of the file within the package, without
	// extension or a trailing "/index".
	Specifier string
}

// ExternalPackage reports whether f lives under a node_modules directory and
// which package it belongs to.
func (p *Program) ExternalPackage(f *SourceFile) (PackageInfo, bool) {
	if f == nil {
		return PackageInfo{}, false
	}
	return PackageOf(f.FileName)
}

// PackageOf parses the package name and specifier out of a node_modules path.
func PackageOf(fileName string) (PackageInfo, bool) {
	const marker = "/node_modules/"
	idx := strings.LastIndex(fileName, marker)
	if idx < 0 {
		return PackageInfo{}, false
	}
	rest := fileName[idx+len(marker):]
	segments := strings.Split(rest, "/")
	if len(segments) == 0 || segments[0] == "" {
		return PackageInfo{}, false
	}
	name := segments[0]
	if strings.HasPrefix(name, "@") {
		if len(segments) < 2 {
			return PackageInfo{}, false
		}
		name = path.Join(segments[0], segments[1])
	}

	spec := trimExtension(rest)
	spec = strings.TrimSuffix(spec, "/index")
	if spec == "index" {
		spec = name
	}
	return PackageInfo{Name: name, Specifier: spec}, true
}
