package extractor

import (
	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

type interfaceItem struct {
	itemBase
	members        []contracts.ItemReference
	typeParameters []contracts.ItemReference
	extends        []*contracts.TypeDto
}

func (it *interfaceItem) onGather(r *Resolver) {
	it.typeParameters = r.ResolveDeclarations(it.decl.TypeParameters)
	it.extends = []*contracts.TypeDto{}
	for _, t := range it.decl.Extends {
		it.extends = append(it.extends, r.Type(t))
	}
	it.members = r.ResolveDeclarations(it.decl.Members)
}

func (it *interfaceItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.InterfaceDto{
		BaseItemDto:    baseDto(it, r),
		Members:        it.members,
		TypeParameters: it.typeParameters,
		Extends:        it.extends,
	}
}

// propertyItem covers property signatures and object literal properties.
type propertyItem struct {
	itemBase
	typ *contracts.TypeDto
}

func (it *propertyItem) onGather(r *Resolver) {
	it.typ = r.Type(it.decl.Type)
	if it.typ == nil {
		it.typ = r.valueType(it.decl.Value)
	}
}

func (it *propertyItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.PropertyDto{
		BaseItemDto: baseDto(it, r),
		IsOptional:  it.decl.Optional,
		IsReadonly:  it.decl.Modifiers.Has(ast.ModifierReadonly),
		Type:        it.typ,
	}
}

type parameterItem struct {
	itemBase
	typ *contracts.TypeDto
}

func (it *parameterItem) onGather(r *Resolver) {
	it.typ = r.Type(it.decl.Type)
}

func (it *parameterItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.ParameterDto{
		BaseItemDto: baseDto(it, r),
		Type:        it.typ,
		IsOptional:  it.decl.Optional || it.decl.Initializer != "",
		IsSpread:    it.decl.Rest,
		Initializer: it.decl.Initializer,
	}
}

type typeAliasItem struct {
	itemBase
	typeParameters []contracts.ItemReference
	typ            *contracts.TypeDto
}

func (it *typeAliasItem) onGather(r *Resolver) {
	it.typeParameters = r.ResolveDeclarations(it.decl.TypeParameters)
	it.typ = r.Type(it.decl.Type)
}

func (it *typeAliasItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.TypeAliasDto{
		BaseItemDto:    baseDto(it, r),
		TypeParameters: it.typeParameters,
		Type:           it.typ,
	}
}

type variableItem struct {
	itemBase
	typ *contracts.TypeDto
}

func (it *variableItem) onGather(r *Resolver) {
	it.typ = r.Type(it.decl.Type)
	if it.typ == nil {
		it.typ = r.valueType(it.decl.Value)
	}
}

func (it *variableItem) onExtract(r *Resolver) contracts.ItemDto {
	kind := it.decl.VariableKind
	if kind == "" {
		kind = "var"
	}
	return &contracts.VariableDto{
		BaseItemDto:  baseDto(it, r),
		VariableKind: kind,
		Type:         it.typ,
	}
}

type enumItem struct {
	itemBase
	members []contracts.ItemReference
}

func (it *enumItem) onGather(r *Resolver) {
	it.members = r.ResolveDeclarations(it.decl.Members)
}

func (it *enumItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.EnumDto{
		BaseItemDto: baseDto(it, r),
		Members:     it.members,
		IsConst:     it.decl.Modifiers.Has(ast.ModifierConst),
	}
}

type enumMemberItem struct {
	itemBase
}

func (it *enumMemberItem) onGather(*Resolver) {}

func (it *enumMemberItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.EnumMemberDto{BaseItemDto: baseDto(it, r), Value: it.decl.Initializer}
}

type indexItem struct {
	itemBase
	parameter string
	typ       *contracts.TypeDto
}

func (it *indexItem) onGather(r *Resolver) {
	if len(it.decl.Parameters) > 0 {
		p := it.decl.Parameters[0]
		it.parameter, _ = r.ResolveID(p, r.fe.SymbolOf(p))
	}
	it.typ = r.Type(it.decl.Type)
}

func (it *indexItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.IndexDto{
		BaseItemDto: baseDto(it, r),
		Parameter:   it.parameter,
		Type:        it.typ,
		IsReadonly:  it.decl.Modifiers.Has(ast.ModifierReadonly),
	}
}

type typeParameterItem struct {
	itemBase
	constraint *contracts.TypeDto
	def        *contracts.TypeDto
}

func (it *typeParameterItem) onGather(r *Resolver) {
	it.constraint = r.Type(it.decl.Constraint)
	it.def = r.Type(it.decl.Default)
}

func (it *typeParameterItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.TypeParameterDto{
		BaseItemDto:    baseDto(it, r),
		ConstraintType: it.constraint,
		DefaultType:    it.def,
	}
}

// typeLiteralItem covers type literals and object literals.
type typeLiteralItem struct {
	itemBase
	members []contracts.ItemReference
}

func (it *typeLiteralItem) onGather(r *Resolver) {
	it.members = r.ResolveDeclarations(it.decl.Members)
}

func (it *typeLiteralItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.TypeLiteralDto{BaseItemDto: baseDto(it, r), Members: it.members}
}

type mappedItem struct {
	itemBase
	typeParameter string
	typ           *contracts.TypeDto
}

func (it *mappedItem) onGather(r *Resolver) {
	if len(it.decl.TypeParameters) > 0 {
		tp := it.decl.TypeParameters[0]
		it.typeParameter, _ = r.ResolveID(tp, r.fe.SymbolOf(tp))
	}
	it.typ = r.Type(it.decl.Type)
}

func (it *mappedItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.MappedDto{
		BaseItemDto:   baseDto(it, r),
		TypeParameter: it.typeParameter,
		Type:          it.typ,
		IsReadonly:    it.decl.Modifiers.Has(ast.ModifierReadonly),
		IsOptional:    it.decl.Optional,
	}
}
