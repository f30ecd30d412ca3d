package extractor

import (
	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

var typeKinds = map[ast.TypeKind]contracts.ApiTypeKind{
	ast.TypeBasic:        contracts.TypeBasic,
	ast.TypeReference:    contracts.TypeReference,
	ast.TypeUnion:        contracts.TypeUnion,
	ast.TypeIntersection: contracts.TypeIntersection,
	ast.TypeArray:        contracts.TypeArray,
	ast.TypeTuple:        contracts.TypeTuple,
	ast.TypeLiteral:      contracts.TypeLiteral,
	ast.TypeQuery:        contracts.TypeQuery,
	ast.TypeFunction:     contracts.TypeFunction,
	ast.TypeObject:       contracts.TypeTypeLiteral,
	ast.TypeMapped:       contracts.TypeMapped,
	ast.TypeOther:        contracts.TypeOther,
}

// Type flattens an annotation. Named types become references to the items
// of the symbol they resolve to; inline declarations become references to
// their own items. Unresolved names keep only their text.
func (r *Resolver) Type(t *ast.TypeNode) *contracts.TypeDto {
	if t == nil {
		return nil
	}
	kind, ok := typeKinds[t.Kind]
	if !ok {
		kind = contracts.TypeOther
	}
	dto := &contracts.TypeDto{ApiTypeKind: kind, Text: t.Text}

	switch t.Kind {
	case ast.TypeReference, ast.TypeQuery:
		if s := r.fe.ResolveName(t.Name, t.Scope); s != nil {
			if ref, ok := r.ResolveSymbol(r.aliases.Resolve(s)); ok {
				dto.Reference = &ref
			}
		}
		for _, arg := range t.Args {
			dto.Generics = append(dto.Generics, r.Type(arg))
		}

	case ast.TypeFunction, ast.TypeObject, ast.TypeMapped:
		if ref, ok := r.declarationReference(t.Decl); ok {
			dto.Reference = &ref
		}

	default:
		for _, arg := range t.Args {
			dto.Types = append(dto.Types, r.Type(arg))
		}
	}
	return dto
}

// valueType describes an unannotated initializer such as an arrow function
// or an object literal.
func (r *Resolver) valueType(v *ast.Declaration) *contracts.TypeDto {
	if v == nil {
		return nil
	}
	kind := contracts.TypeFunction
	if v.Shape == ast.ShapeObjectLiteral {
		kind = contracts.TypeTypeLiteral
	}
	dto := &contracts.TypeDto{ApiTypeKind: kind, Text: declarationText(v)}
	if ref, ok := r.declarationReference(v); ok {
		dto.Reference = &ref
	}
	return dto
}

func (r *Resolver) declarationReference(d *ast.Declaration) (contracts.ItemReference, bool) {
	if d == nil {
		return contracts.ItemReference{}, false
	}
	s := r.fe.SymbolOf(d)
	if s == nil {
		return contracts.ItemReference{}, false
	}
	id, ok := r.ResolveID(d, s)
	if !ok {
		return contracts.ItemReference{}, false
	}
	return contracts.ItemReference{Alias: s.Name, Ids: []string{id}}, true
}

func declarationText(d *ast.Declaration) string {
	if d.File == nil || d.Pos < 0 || d.End > len(d.File.Text) || d.Pos > d.End {
		return ""
	}
	return string(d.File.Text[d.Pos:d.End])
}
