package ast

// TypeKind classifies a type annotation.
type TypeKind string

const (
	TypeBasic        TypeKind = "basic"
	TypeReference    TypeKind = "reference"
	TypeUnion        TypeKind = "union"
	TypeIntersection TypeKind = "intersection"
	TypeArray        TypeKind = "array"
	TypeTuple        TypeKind = "tuple"
	TypeLiteral      TypeKind = "literal"
	TypeQuery        TypeKind = "type-query"
	TypeFunction     TypeKind = "function"
	TypeObject       TypeKind = "type-literal"
	TypeMapped       TypeKind = "mapped"
	TypeOther        TypeKind = "other"
)

// TypeNode is a syntactic type annotation.
type TypeNode struct {
	Kind TypeKind
	Text string

	// Name is the referenced entity name for references and type queries,
	// possibly qualified ("ns.Foo").
	Name string

	// Args holds type arguments of references, members of unions,
	// intersections and tuples, and the element type of arrays.
	Args []*TypeNode

	// Decl is the inline declaration of function, constructor, object and
	// mapped types.
	Decl *Declaration

	// Scope is the declaration names in this annotation are resolved from.
	Scope *Declaration
}

func (t *TypeNode) inlineDeclarations() []*Declaration {
	if t == nil {
		return nil
	}
	var out []*Declaration
	if t.Decl != nil {
		out = append(out, t.Decl)
	}
	for _, arg := range t.Args {
		out = append(out, arg.inlineDeclarations()...)
	}
	return out
}
