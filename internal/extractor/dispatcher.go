package extractor

import (
	"fmt"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
	"github.com/mvp-joe/ts-extractor/internal/diag"
)

// Classify maps a declaration shape to the item kind extracted for it. The
// second result is false for shapes that have no item kind.
func Classify(d *ast.Declaration) (contracts.ApiKind, bool) {
	switch d.Shape {
	case ast.ShapeSourceFile:
		return contracts.KindSourceFile, true
	case ast.ShapeExportDeclaration:
		return contracts.KindExport, true
	case ast.ShapeExportSpecifier:
		return contracts.KindExportSpecifier, true
	case ast.ShapeImportSpecifier:
		return contracts.KindImportSpecifier, true
	case ast.ShapeVariableDeclaration:
		return contracts.KindVariable, true
	case ast.ShapeModuleDeclaration, ast.ShapeNamespaceImport:
		return contracts.KindNamespace, true
	case ast.ShapeFunctionDeclaration:
		return contracts.KindFunction, true
	case ast.ShapeEnumDeclaration:
		return contracts.KindEnum, true
	case ast.ShapeEnumMember:
		return contracts.KindEnumMember, true
	case ast.ShapeInterfaceDeclaration:
		return contracts.KindInterface, true
	case ast.ShapePropertySignature, ast.ShapePropertyAssignment:
		return contracts.KindProperty, true
	case ast.ShapeMethodSignature:
		return contracts.KindMethod, true
	case ast.ShapeParameter:
		return contracts.KindParameter, true
	case ast.ShapeTypeAliasDeclaration:
		return contracts.KindType, true
	case ast.ShapeClassDeclaration:
		return contracts.KindClass, true
	case ast.ShapeConstructor:
		return contracts.KindClassConstructor, true
	case ast.ShapePropertyDeclaration:
		return contracts.KindClassProperty, true
	case ast.ShapeMethodDeclaration:
		return contracts.KindClassMethod, true
	case ast.ShapeGetAccessor:
		return contracts.KindGetAccessor, true
	case ast.ShapeSetAccessor:
		return contracts.KindSetAccessor, true
	case ast.ShapeIndexSignature:
		return contracts.KindIndex, true
	case ast.ShapeCallSignature:
		return contracts.KindCall, true
	case ast.ShapeConstructSignature, ast.ShapeConstructorType:
		return contracts.KindConstruct, true
	case ast.ShapeTypeParameter:
		return contracts.KindTypeParameter, true
	case ast.ShapeTypeLiteral:
		return contracts.KindTypeLiteral, true
	case ast.ShapeObjectLiteral:
		return contracts.KindObjectLiteral, true
	case ast.ShapeFunctionType, ast.ShapeArrowFunction, ast.ShapeFunctionExpression:
		return contracts.KindFunctionExpression, true
	case ast.ShapeMappedType:
		return contracts.KindMapped, true
	}
	return "", false
}

// newItem builds the item for a declaration, or returns nil when the shape
// is unsupported or the item filter rejects it.
func (r *Resolver) newItem(d *ast.Declaration, s *ast.Symbol) Item {
	kind, ok := Classify(d)
	if !ok {
		r.warn(d, diag.CodeUnsupportedShape, fmt.Sprintf("Declaration %q is not supported yet.", string(d.Shape)))
		return nil
	}

	base := itemBase{kind: kind, decl: d, sym: s}
	var it Item
	switch kind {
	case contracts.KindSourceFile:
		it = &sourceFileItem{itemBase: base}
	case contracts.KindExport:
		it = &exportItem{itemBase: base}
	case contracts.KindExportSpecifier:
		it = &exportSpecifierItem{itemBase: base}
	case contracts.KindImportSpecifier:
		it = &importSpecifierItem{itemBase: base}
	case contracts.KindVariable:
		it = &variableItem{itemBase: base}
	case contracts.KindNamespace:
		it = &namespaceItem{itemBase: base}
	case contracts.KindFunction:
		it = &functionItem{itemBase: base}
	case contracts.KindEnum:
		it = &enumItem{itemBase: base}
	case contracts.KindEnumMember:
		it = &enumMemberItem{itemBase: base}
	case contracts.KindInterface:
		it = &interfaceItem{itemBase: base}
	case contracts.KindProperty:
		it = &propertyItem{itemBase: base}
	case contracts.KindMethod:
		it = &methodItem{itemBase: base}
	case contracts.KindParameter:
		it = &parameterItem{itemBase: base}
	case contracts.KindType:
		it = &typeAliasItem{itemBase: base}
	case contracts.KindClass:
		it = &classItem{itemBase: base}
	case contracts.KindClassConstructor:
		it = &classConstructorItem{itemBase: base}
	case contracts.KindClassProperty:
		it = &classPropertyItem{itemBase: base}
	case contracts.KindClassMethod:
		it = &classMethodItem{itemBase: base}
	case contracts.KindGetAccessor:
		it = &getAccessorItem{itemBase: base}
	case contracts.KindSetAccessor:
		it = &setAccessorItem{itemBase: base}
	case contracts.KindIndex:
		it = &indexItem{itemBase: base}
	case contracts.KindCall:
		it = &callItem{itemBase: base}
	case contracts.KindConstruct:
		it = &constructItem{itemBase: base}
	case contracts.KindTypeParameter:
		it = &typeParameterItem{itemBase: base}
	case contracts.KindTypeLiteral, contracts.KindObjectLiteral:
		it = &typeLiteralItem{itemBase: base}
	case contracts.KindFunctionExpression:
		it = &functionExpressionItem{itemBase: base}
	case contracts.KindMapped:
		it = &mappedItem{itemBase: base}
	default:
		return nil
	}

	if r.opts.FilterItems != nil && !r.opts.FilterItems(it) {
		return nil
	}
	return it
}
