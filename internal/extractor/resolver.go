package extractor

import (
	"fmt"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
	"github.com/mvp-joe/ts-extractor/internal/diag"
)

// Resolver drives registry-guarded, depth-first resolution of declarations
// into items. A Resolver belongs to one run and is not safe for concurrent
// use.
type Resolver struct {
	fe       Frontend
	opts     Options
	registry *Registry
	boundary *Boundary
	aliases  *AliasResolver
	sink     diag.Sink

	// rejected remembers declarations that produced no item so warnings are
	// reported once.
	rejected map[*ast.Declaration]bool
}

// NewResolver creates a resolver with an empty registry.
func NewResolver(fe Frontend, opts Options, sink diag.Sink) (*Resolver, error) {
	if fe == nil {
		return nil, ErrNoProgram
	}
	opts = opts.withDefaults()
	if sink == nil {
		sink = diag.Discard
	}
	boundary, err := NewBoundary(fe, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build boundary: %w", err)
	}
	r := &Resolver{
		fe:       fe,
		opts:     opts,
		registry: NewRegistry(opts.IDStrategy, opts.ProjectDirectory),
		boundary: boundary,
		sink:     sink,
		rejected: make(map[*ast.Declaration]bool),
	}
	r.aliases = NewAliasResolver(fe, opts.MaxAliasHops, r.warn)
	return r, nil
}

// Registry returns the run's registry.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// ResolveID returns the item ID of a declaration, resolving and storing the
// item on first request. The ID is registered before the item gathers its
// references, so cycles observe it instead of recursing.
func (r *Resolver) ResolveID(d *ast.Declaration, s *ast.Symbol) (string, bool) {
	if d == nil || s == nil {
		return "", false
	}
	if !r.boundary.ShouldVisit(d) {
		return "", false
	}
	if id, ok := r.registry.DeclarationID(d); ok {
		return id, true
	}
	if r.rejected[d] {
		return "", false
	}

	target := r.aliases.Resolve(s)
	it := r.newItem(d, target)
	if it == nil {
		r.rejected[d] = true
		return "", false
	}

	id := r.registry.Register(d, it.Kind())
	gather(it, r)
	r.registry.Store(id, extract(it, r))
	return id, true
}

// ResolveSymbol resolves every declaration of s into one reference. Merged
// namespace declarations count once.
func (r *Resolver) ResolveSymbol(s *ast.Symbol) (contracts.ItemReference, bool) {
	if s == nil || len(s.Declarations) == 0 {
		return contracts.ItemReference{}, false
	}

	var ids []string
	seenNamespace := false
	for _, d := range s.Declarations {
		if d.Shape == ast.ShapeModuleDeclaration {
			if seenNamespace {
				continue
			}
			seenNamespace = true
		}
		if id, ok := r.ResolveID(d, s); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return contracts.ItemReference{}, false
	}
	return contracts.ItemReference{Alias: s.Name, Ids: ids}, true
}

// ResolveDeclarations resolves a declaration list, grouping IDs by symbol
// name in first-seen order so overloads share one reference.
func (r *Resolver) ResolveDeclarations(decls []*ast.Declaration) []contracts.ItemReference {
	refs := []contracts.ItemReference{}
	index := make(map[string]int)
	for _, d := range decls {
		s := r.fe.SymbolOf(d)
		if s == nil {
			continue
		}
		id, ok := r.ResolveID(d, s)
		if !ok {
			continue
		}
		if i, ok := index[s.Name]; ok {
			refs[i].Ids = append(refs[i].Ids, id)
			continue
		}
		index[s.Name] = len(refs)
		refs = append(refs, contracts.ItemReference{Alias: s.Name, Ids: []string{id}})
	}
	return refs
}

// ResolveSymbolTable resolves every symbol of an ordered table.
func (r *Resolver) ResolveSymbolTable(t *ast.SymbolTable) []contracts.ItemReference {
	refs := []contracts.ItemReference{}
	for _, s := range t.Symbols() {
		if ref, ok := r.ResolveSymbol(s); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// ParentID returns the ID of the direct parent declaration. Members of a
// merged namespace all belong to its first declaration.
func (r *Resolver) ParentID(d *ast.Declaration) (string, bool) {
	if d == nil || d.Parent == nil {
		return "", false
	}
	parent := d.Parent
	s := r.fe.SymbolOf(parent)
	if s == nil {
		return "", false
	}
	if parent.Shape == ast.ShapeModuleDeclaration {
		for _, other := range s.Declarations {
			if other.Shape == ast.ShapeModuleDeclaration {
				parent = other
				break
			}
		}
	}
	return r.ResolveID(parent, s)
}

func (r *Resolver) warn(d *ast.Declaration, code, message string) {
	diagnostic := diag.Diagnostic{Severity: diag.SeverityWarning, Code: code, Message: message}
	if d != nil && d.File != nil {
		diagnostic.File = d.File.FileName
		diagnostic.Line, diagnostic.Character = d.File.LineAndCharacter(d.Pos)
	}
	r.sink.Report(diagnostic)
}
