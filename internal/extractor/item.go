package extractor

import (
	"strings"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

// Item is the in-memory form of one declaration. Items gather their
// references first and then extract an immutable DTO; each phase runs once.
type Item interface {
	Kind() contracts.ApiKind
	Name() string
	Declaration() *ast.Declaration
	Symbol() *ast.Symbol
	IsPrivate() bool

	base() *itemBase
	onGather(r *Resolver)
	onExtract(r *Resolver) contracts.ItemDto
}

type itemBase struct {
	kind contracts.ApiKind
	decl *ast.Declaration
	sym  *ast.Symbol

	gathered bool
	dto      contracts.ItemDto
}

func (b *itemBase) Kind() contracts.ApiKind        { return b.kind }
func (b *itemBase) Declaration() *ast.Declaration { return b.decl }
func (b *itemBase) Symbol() *ast.Symbol           { return b.sym }
func (b *itemBase) base() *itemBase               { return b }

// Name is the symbol name, or the declared name when the item has no symbol.
func (b *itemBase) Name() string {
	if b.sym != nil {
		return b.sym.Name
	}
	return b.decl.Name
}

// IsPrivate is false for every kind that is not a class member. Parameter
// properties carry the private modifier but still belong to the signature.
func (b *itemBase) IsPrivate() bool { return false }

// memberPrivate reports a private class member, including #names.
func memberPrivate(d *ast.Declaration) bool {
	return d.Modifiers.Has(ast.ModifierPrivate) || strings.HasPrefix(d.Name, "#")
}

func gather(it Item, r *Resolver) {
	b := it.base()
	if b.gathered {
		return
	}
	b.gathered = true
	it.onGather(r)
}

func extract(it Item, r *Resolver) contracts.ItemDto {
	b := it.base()
	if b.dto == nil {
		gather(it, r)
		b.dto = it.onExtract(r)
	}
	return b.dto
}

// baseDto fills the fields shared by every DTO.
func baseDto(it Item, r *Resolver) contracts.BaseItemDto {
	d := it.Declaration()
	parentID, _ := r.ParentID(d)
	return contracts.BaseItemDto{
		ApiKind:  it.Kind(),
		Name:     it.Name(),
		ParentId: parentID,
		Metadata: r.Metadata(d),
		Location: r.Locate(d),
	}
}

func accessModifier(d *ast.Declaration) contracts.AccessModifier {
	switch {
	case d.Modifiers.Has(ast.ModifierPrivate):
		return contracts.AccessPrivate
	case d.Modifiers.Has(ast.ModifierProtected):
		return contracts.AccessProtected
	}
	return contracts.AccessPublic
}
