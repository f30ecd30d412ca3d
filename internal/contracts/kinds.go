package contracts

// ApiKind is the discriminant of an item DTO.
type ApiKind string

const (
	KindSourceFile         ApiKind = "source-file"
	KindExport             ApiKind = "export"
	KindExportSpecifier    ApiKind = "export-specifier"
	KindImportSpecifier    ApiKind = "import-specifier"
	KindVariable           ApiKind = "variable"
	KindNamespace          ApiKind = "namespace"
	KindFunction           ApiKind = "function"
	KindEnum               ApiKind = "enum"
	KindEnumMember         ApiKind = "enum-member"
	KindInterface          ApiKind = "interface"
	KindProperty           ApiKind = "property"
	KindMethod             ApiKind = "method"
	KindParameter          ApiKind = "parameter"
	KindType               ApiKind = "type"
	KindClass              ApiKind = "class"
	KindClassConstructor   ApiKind = "class-constructor"
	KindClassProperty      ApiKind = "class-property"
	KindClassMethod        ApiKind = "class-method"
	KindGetAccessor        ApiKind = "get-accessor"
	KindSetAccessor        ApiKind = "set-accessor"
	KindIndex              ApiKind = "index"
	KindCall               ApiKind = "call"
	KindConstruct          ApiKind = "construct"
	KindTypeParameter      ApiKind = "type-parameter"
	KindTypeLiteral        ApiKind = "type-literal"
	KindObjectLiteral      ApiKind = "object-literal"
	KindFunctionExpression ApiKind = "function-expression"
	KindMapped             ApiKind = "mapped"
)

// AllKinds lists every kind in classification order.
var AllKinds = []ApiKind{
	KindSourceFile, KindExport, KindExportSpecifier, KindImportSpecifier,
	KindVariable, KindNamespace, KindFunction, KindEnum, KindEnumMember,
	KindInterface, KindProperty, KindMethod, KindParameter, KindType,
	KindClass, KindClassConstructor, KindClassProperty, KindClassMethod,
	KindGetAccessor, KindSetAccessor, KindIndex, KindCall, KindConstruct,
	KindTypeParameter, KindTypeLiteral, KindObjectLiteral,
	KindFunctionExpression, KindMapped,
}

// ParseKind returns the kind named s.
func ParseKind(s string) (ApiKind, bool) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// AccessModifier is the accessibility of a class member.
type AccessModifier string

const (
	AccessPublic    AccessModifier = "public"
	AccessPrivate   AccessModifier = "private"
	AccessProtected AccessModifier = "protected"
)

// ApiTypeKind classifies a TypeDto.
type ApiTypeKind string

const (
	TypeBasic        ApiTypeKind = "basic"
	TypeReference    ApiTypeKind = "reference"
	TypeUnion        ApiTypeKind = "union"
	TypeIntersection ApiTypeKind = "intersection"
	TypeArray        ApiTypeKind = "array"
	TypeTuple        ApiTypeKind = "tuple"
	TypeLiteral      ApiTypeKind = "literal"
	TypeQuery        ApiTypeKind = "type-query"
	TypeFunction     ApiTypeKind = "function"
	TypeTypeLiteral  ApiTypeKind = "type-literal"
	TypeMapped       ApiTypeKind = "mapped"
	TypeOther        ApiTypeKind = "other"
)
