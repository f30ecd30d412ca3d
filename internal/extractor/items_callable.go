package extractor

import (
	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

// callable holds what every signature-shaped item gathers.
type callable struct {
	parameters     []contracts.ItemReference
	typeParameters []contracts.ItemReference
	returnType     *contracts.TypeDto
	overloadBase   bool
}

func (c *callable) gatherCallable(r *Resolver, d *ast.Declaration, s *ast.Symbol) {
	c.typeParameters = r.ResolveDeclarations(d.TypeParameters)
	c.parameters = r.ResolveDeclarations(d.Parameters)
	c.returnType = r.Type(d.Type)
	c.overloadBase = isOverloadBase(d, s)
}

func (c *callable) callableDto(base contracts.BaseItemDto) contracts.CallableDto {
	return contracts.CallableDto{
		BaseItemDto:    base,
		Parameters:     c.parameters,
		TypeParameters: c.typeParameters,
		ReturnType:     c.returnType,
		IsOverloadBase: c.overloadBase,
	}
}

// isOverloadBase reports the implementation of an overloaded function: the
// declaration with a body when the symbol has several declarations.
func isOverloadBase(d *ast.Declaration, s *ast.Symbol) bool {
	return d.HasBody && s != nil && len(s.Declarations) > 1
}

type functionItem struct {
	itemBase
	callable
}

func (it *functionItem) onGather(r *Resolver) { it.gatherCallable(r, it.decl, it.sym) }

func (it *functionItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.FunctionDto{
		CallableDto: it.callableDto(baseDto(it, r)),
		IsAsync:     it.decl.Modifiers.Has(ast.ModifierAsync),
	}
}

type methodItem struct {
	itemBase
	callable
}

func (it *methodItem) onGather(r *Resolver) { it.gatherCallable(r, it.decl, it.sym) }

func (it *methodItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.MethodDto{
		CallableDto: it.callableDto(baseDto(it, r)),
		IsOptional:  it.decl.Optional,
	}
}

type callItem struct {
	itemBase
	callable
}

func (it *callItem) onGather(r *Resolver) { it.gatherCallable(r, it.decl, it.sym) }

func (it *callItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.CallDto{CallableDto: it.callableDto(baseDto(it, r))}
}

// constructItem covers construct signatures and constructor types.
type constructItem struct {
	itemBase
	callable
}

func (it *constructItem) onGather(r *Resolver) { it.gatherCallable(r, it.decl, it.sym) }

func (it *constructItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.ConstructDto{CallableDto: it.callableDto(baseDto(it, r))}
}

// functionExpressionItem covers function types, arrow functions and function
// expressions.
type functionExpressionItem struct {
	itemBase
	callable
}

func (it *functionExpressionItem) onGather(r *Resolver) { it.gatherCallable(r, it.decl, it.sym) }

func (it *functionExpressionItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.FunctionExpressionDto{
		CallableDto: it.callableDto(baseDto(it, r)),
		IsAsync:     it.decl.Modifiers.Has(ast.ModifierAsync),
	}
}

type classConstructorItem struct {
	itemBase
	callable
}

func (it *classConstructorItem) IsPrivate() bool { return memberPrivate(it.decl) }

func (it *classConstructorItem) onGather(r *Resolver) { it.gatherCallable(r, it.decl, it.sym) }

func (it *classConstructorItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.ClassConstructorDto{
		CallableDto:    it.callableDto(baseDto(it, r)),
		AccessModifier: accessModifier(it.decl),
	}
}

type classMethodItem struct {
	itemBase
	callable
}

func (it *classMethodItem) IsPrivate() bool { return memberPrivate(it.decl) }

func (it *classMethodItem) onGather(r *Resolver) { it.gatherCallable(r, it.decl, it.sym) }

func (it *classMethodItem) onExtract(r *Resolver) contracts.ItemDto {
	m := it.decl.Modifiers
	return &contracts.ClassMethodDto{
		CallableDto:    it.callableDto(baseDto(it, r)),
		AccessModifier: accessModifier(it.decl),
		IsAbstract:     m.Has(ast.ModifierAbstract),
		IsStatic:       m.Has(ast.ModifierStatic),
		IsOptional:     it.decl.Optional,
		IsAsync:        m.Has(ast.ModifierAsync),
	}
}

type getAccessorItem struct {
	itemBase
	typ *contracts.TypeDto
}

func (it *getAccessorItem) IsPrivate() bool { return memberPrivate(it.decl) }

func (it *getAccessorItem) onGather(r *Resolver) {
	it.typ = r.Type(it.decl.Type)
}

func (it *getAccessorItem) onExtract(r *Resolver) contracts.ItemDto {
	m := it.decl.Modifiers
	return &contracts.GetAccessorDto{
		BaseItemDto:    baseDto(it, r),
		AccessModifier: accessModifier(it.decl),
		IsAbstract:     m.Has(ast.ModifierAbstract),
		IsStatic:       m.Has(ast.ModifierStatic),
		Type:           it.typ,
	}
}

type setAccessorItem struct {
	itemBase
	parameter *contracts.ItemReference
}

func (it *setAccessorItem) IsPrivate() bool { return memberPrivate(it.decl) }

func (it *setAccessorItem) onGather(r *Resolver) {
	if refs := r.ResolveDeclarations(it.decl.Parameters); len(refs) > 0 {
		it.parameter = &refs[0]
	}
}

func (it *setAccessorItem) onExtract(r *Resolver) contracts.ItemDto {
	m := it.decl.Modifiers
	return &contracts.SetAccessorDto{
		BaseItemDto:    baseDto(it, r),
		AccessModifier: accessModifier(it.decl),
		IsAbstract:     m.Has(ast.ModifierAbstract),
		IsStatic:       m.Has(ast.ModifierStatic),
		Parameter:      it.parameter,
	}
}
