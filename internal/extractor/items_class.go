package extractor

import (
	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

type classItem struct {
	itemBase
	members        []contracts.ItemReference
	typeParameters []contracts.ItemReference
	extends        *contracts.TypeDto
	implements     []*contracts.TypeDto
}

func (it *classItem) onGather(r *Resolver) {
	it.typeParameters = r.ResolveDeclarations(it.decl.TypeParameters)
	if len(it.decl.Extends) > 0 {
		it.extends = r.Type(it.decl.Extends[0])
	}
	it.implements = []*contracts.TypeDto{}
	for _, t := range it.decl.Implements {
		it.implements = append(it.implements, r.Type(t))
	}
	it.members = r.ResolveDeclarations(it.decl.Members)
}

func (it *classItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.ClassDto{
		BaseItemDto:    baseDto(it, r),
		Members:        it.members,
		TypeParameters: it.typeParameters,
		Extends:        it.extends,
		Implements:     it.implements,
		IsAbstract:     it.decl.Modifiers.Has(ast.ModifierAbstract),
	}
}

type classPropertyItem struct {
	itemBase
	typ *contracts.TypeDto
}

func (it *classPropertyItem) IsPrivate() bool { return memberPrivate(it.decl) }

func (it *classPropertyItem) onGather(r *Resolver) {
	it.typ = r.Type(it.decl.Type)
	if it.typ == nil {
		it.typ = r.valueType(it.decl.Value)
	}
}

func (it *classPropertyItem) onExtract(r *Resolver) contracts.ItemDto {
	m := it.decl.Modifiers
	return &contracts.ClassPropertyDto{
		BaseItemDto:    baseDto(it, r),
		AccessModifier: accessModifier(it.decl),
		IsAbstract:     m.Has(ast.ModifierAbstract),
		IsStatic:       m.Has(ast.ModifierStatic),
		IsReadonly:     m.Has(ast.ModifierReadonly),
		IsOptional:     it.decl.Optional,
		Type:           it.typ,
	}
}
