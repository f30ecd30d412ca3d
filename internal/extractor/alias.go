package extractor

import (
	"fmt"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/diag"
)

// AliasResolver follows import and export aliases to the symbol that owns the
// real declarations.
type AliasResolver struct {
	fe      Frontend
	maxHops int
	report  func(d *ast.Declaration, code, message string)
	cache   map[*ast.Symbol]*ast.Symbol
}

// NewAliasResolver creates a resolver giving up after maxHops hops.
func NewAliasResolver(fe Frontend, maxHops int, report func(d *ast.Declaration, code, message string)) *AliasResolver {
	if maxHops <= 0 {
		maxHops = DefaultMaxAliasHops
	}
	return &AliasResolver{
		fe:      fe,
		maxHops: maxHops,
		report:  report,
		cache:   make(map[*ast.Symbol]*ast.Symbol),
	}
}

// Resolve returns the first non-alias symbol on the chain starting at s. When
// the chain loops, exceeds the hop limit or dead-ends, a warning is reported
// and s itself is returned. Results are cached per symbol.
func (a *AliasResolver) Resolve(s *ast.Symbol) *ast.Symbol {
	if s == nil || !s.IsAlias() {
		return s
	}
	if target, ok := a.cache[s]; ok {
		return target
	}
	target := a.follow(s)
	a.cache[s] = target
	return target
}

func (a *AliasResolver) follow(s *ast.Symbol) *ast.Symbol {
	visited := make(map[*ast.Symbol]bool)
	current := s
	for hops := 0; current.IsAlias(); hops++ {
		if visited[current] || hops >= a.maxHops {
			a.warn(s, diag.CodeUnterminatedAlias, fmt.Sprintf("Alias %q does not terminate.", s.Name))
			return s
		}
		visited[current] = true

		next := a.fe.AliasTarget(current)
		if next == nil {
			a.warn(s, diag.CodeUnresolvedAlias, fmt.Sprintf("Alias %q cannot be resolved.", s.Name))
			return s
		}
		current = next
	}
	return current
}

func (a *AliasResolver) warn(s *ast.Symbol, code, message string) {
	if a.report == nil {
		return
	}
	var d *ast.Declaration
	if len(s.Declarations) > 0 {
		d = s.Declarations[0]
	}
	a.report(d, code, message)
}
