// Package extractor resolves a bound TypeScript program into a flat registry
// of API items keyed by stable IDs.
package extractor

import (
	"errors"
	"path/filepath"

	"github.com/mvp-joe/ts-extractor/internal/ast"
)

// DefaultMaxAliasHops bounds alias chains when Options.MaxAliasHops is zero.
const DefaultMaxAliasHops = 64

// ErrNoProgram is returned by Extract when no frontend is available.
var ErrNoProgram = errors.New("no program to extract")

// Options configure one extraction run.
type Options struct {
	// ProjectDirectory bounds extraction; files outside it are skipped unless
	// they belong to an allow-listed external package.
	ProjectDirectory string

	// OutputPathSeparator replaces "/" in emitted file paths. Defaults to "/".
	OutputPathSeparator string

	// ExternalPackages lists package names whose declarations are extracted.
	ExternalPackages []string

	// Exclude lists file paths, relative to ProjectDirectory or absolute,
	// whose declarations are skipped.
	Exclude []string

	// ExcludePatterns are glob patterns matched against project-relative,
	// slash-separated file paths.
	ExcludePatterns []string

	// FilterItems rejects an item when it returns false.
	FilterItems func(Item) bool

	IDStrategy   IDStrategy
	MaxAliasHops int
}

func (o Options) withDefaults() Options {
	if o.OutputPathSeparator == "" {
		o.OutputPathSeparator = "/"
	}
	if o.IDStrategy == "" {
		o.IDStrategy = IDSequential
	}
	if o.MaxAliasHops <= 0 {
		o.MaxAliasHops = DefaultMaxAliasHops
	}
	if o.ProjectDirectory != "" {
		o.ProjectDirectory = filepath.ToSlash(filepath.Clean(o.ProjectDirectory))
	}
	return o
}

// Frontend is the set of program queries the resolver depends on.
// *ast.Program implements it.
type Frontend interface {
	SymbolOf(d *ast.Declaration) *ast.Symbol
	AliasTarget(s *ast.Symbol) *ast.Symbol
	ExportSpecifierTarget(d *ast.Declaration) *ast.Symbol
	ResolveName(name string, location *ast.Declaration) *ast.Symbol
	ModuleSymbol(f *ast.SourceFile) *ast.Symbol
	ModuleSourceFile(d *ast.Declaration) *ast.SourceFile
	ExternalPackage(f *ast.SourceFile) (ast.PackageInfo, bool)
	SourceFile(fileName string) *ast.SourceFile
	RootFiles() []*ast.SourceFile
}

var _ Frontend = (*ast.Program)(nil)
