package contracts

type SourceFileDto struct {
	BaseItemDto
	Path    string          `json:"Path"`
	Members []ItemReference `json:"Members"`
}

type ExportDto struct {
	BaseItemDto
	ExportPath string          `json:"ExportPath,omitempty"`
	Members    []ItemReference `json:"Members"`
}

type ExportSpecifierDto struct {
	BaseItemDto
	ApiItems []string `json:"ApiItems,omitempty" ref:"id"`
}

type ImportSpecifierDto struct {
	BaseItemDto
	ApiItems []string `json:"ApiItems,omitempty" ref:"id"`
}

type NamespaceDto struct {
	BaseItemDto
	Members []ItemReference `json:"Members"`
}

type VariableDto struct {
	BaseItemDto
	VariableKind string   `json:"VariableKind"`
	Type         *TypeDto `json:"Type,omitempty"`
}

// CallableDto holds the fields shared by every callable kind.
type CallableDto struct {
	BaseItemDto
	Parameters     []ItemReference `json:"Parameters"`
	TypeParameters []ItemReference `json:"TypeParameters"`
	ReturnType     *TypeDto        `json:"ReturnType,omitempty"`
	IsOverloadBase bool            `json:"IsOverloadBase"`
}

type FunctionDto struct {
	CallableDto
	IsAsync bool `json:"IsAsync"`
}

type MethodDto struct {
	CallableDto
	IsOptional bool `json:"IsOptional"`
}

type CallDto struct {
	CallableDto
}

type ConstructDto struct {
	CallableDto
}

type FunctionExpressionDto struct {
	CallableDto
	IsAsync bool `json:"IsAsync"`
}

type ClassConstructorDto struct {
	CallableDto
	AccessModifier AccessModifier `json:"AccessModifier"`
}

type ClassMethodDto struct {
	CallableDto
	AccessModifier AccessModifier `json:"AccessModifier"`
	IsAbstract     bool           `json:"IsAbstract"`
	IsStatic       bool           `json:"IsStatic"`
	IsOptional     bool           `json:"IsOptional"`
	IsAsync        bool           `json:"IsAsync"`
}

type GetAccessorDto struct {
	BaseItemDto
	AccessModifier AccessModifier `json:"AccessModifier"`
	IsAbstract     bool           `json:"IsAbstract"`
	IsStatic       bool           `json:"IsStatic"`
	Type           *TypeDto       `json:"Type,omitempty"`
}

type SetAccessorDto struct {
	BaseItemDto
	AccessModifier AccessModifier `json:"AccessModifier"`
	IsAbstract     bool           `json:"IsAbstract"`
	IsStatic       bool           `json:"IsStatic"`
	Parameter      *ItemReference `json:"Parameter,omitempty"`
}

type ClassDto struct {
	BaseItemDto
	Members        []ItemReference `json:"Members"`
	TypeParameters []ItemReference `json:"TypeParameters"`
	Extends        *TypeDto        `json:"Extends,omitempty"`
	Implements     []*TypeDto      `json:"Implements"`
	IsAbstract     bool            `json:"IsAbstract"`
}

type ClassPropertyDto struct {
	BaseItemDto
	AccessModifier AccessModifier `json:"AccessModifier"`
	IsAbstract     bool           `json:"IsAbstract"`
	IsStatic       bool           `json:"IsStatic"`
	IsReadonly     bool           `json:"IsReadonly"`
	IsOptional     bool           `json:"IsOptional"`
	Type           *TypeDto       `json:"Type,omitempty"`
}

type InterfaceDto struct {
	BaseItemDto
	Members        []ItemReference `json:"Members"`
	TypeParameters []ItemReference `json:"TypeParameters"`
	Extends        []*TypeDto      `json:"Extends"`
}

type PropertyDto struct {
	BaseItemDto
	IsOptional bool     `json:"IsOptional"`
	IsReadonly bool     `json:"IsReadonly"`
	Type       *TypeDto `json:"Type,omitempty"`
}

type ParameterDto struct {
	BaseItemDto
	Type        *TypeDto `json:"Type,omitempty"`
	IsOptional  bool     `json:"IsOptional"`
	IsSpread    bool     `json:"IsSpread"`
	Initializer string   `json:"Initializer,omitempty"`
}

type EnumDto struct {
	BaseItemDto
	Members []ItemReference `json:"Members"`
	IsConst bool            `json:"IsConst"`
}

type EnumMemberDto struct {
	BaseItemDto
	Value string `json:"Value"`
}

type TypeAliasDto struct {
	BaseItemDto
	TypeParameters []ItemReference `json:"TypeParameters"`
	Type           *TypeDto        `json:"Type,omitempty"`
}

type IndexDto struct {
	BaseItemDto
	Parameter  string   `json:"Parameter,omitempty" ref:"id"`
	Type       *TypeDto `json:"Type,omitempty"`
	IsReadonly bool     `json:"IsReadonly"`
}

type TypeParameterDto struct {
	BaseItemDto
	ConstraintType *TypeDto `json:"ConstraintType,omitempty"`
	DefaultType    *TypeDto `json:"DefaultType,omitempty"`
}

// TypeLiteralDto describes both type literals and object literals.
type TypeLiteralDto struct {
	BaseItemDto
	Members []ItemReference `json:"Members"`
}

type MappedDto struct {
	BaseItemDto
	TypeParameter string   `json:"TypeParameter,omitempty" ref:"id"`
	Type          *TypeDto `json:"Type,omitempty"`
	IsReadonly    bool     `json:"IsReadonly"`
	IsOptional    bool     `json:"IsOptional"`
}

// NewDto returns an empty DTO of the concrete type used for kind.
func NewDto(kind ApiKind) (ItemDto, bool) {
	switch kind {
	case KindSourceFile:
		return &SourceFileDto{}, true
	case KindExport:
		return &ExportDto{}, true
	case KindExportSpecifier:
		return &ExportSpecifierDto{}, true
	case KindImportSpecifier:
		return &ImportSpecifierDto{}, true
	case KindNamespace:
		return &NamespaceDto{}, true
	case KindVariable:
		return &VariableDto{}, true
	case KindFunction:
		return &FunctionDto{}, true
	case KindMethod:
		return &MethodDto{}, true
	case KindCall:
		return &CallDto{}, true
	case KindConstruct:
		return &ConstructDto{}, true
	case KindFunctionExpression:
		return &FunctionExpressionDto{}, true
	case KindClassConstructor:
		return &ClassConstructorDto{}, true
	case KindClassMethod:
		return &ClassMethodDto{}, true
	case KindGetAccessor:
		return &GetAccessorDto{}, true
	case KindSetAccessor:
		return &SetAccessorDto{}, true
	case KindClass:
		return &ClassDto{}, true
	case KindClassProperty:
		return &ClassPropertyDto{}, true
	case KindInterface:
		return &InterfaceDto{}, true
	case KindProperty:
		return &PropertyDto{}, true
	case KindParameter:
		return &ParameterDto{}, true
	case KindEnum:
		return &EnumDto{}, true
	case KindEnumMember:
		return &EnumMemberDto{}, true
	case KindType:
		return &TypeAliasDto{}, true
	case KindIndex:
		return &IndexDto{}, true
	case KindTypeParameter:
		return &TypeParameterDto{}, true
	case KindTypeLiteral, KindObjectLiteral:
		return &TypeLiteralDto{}, true
	case KindMapped:
		return &MappedDto{}, true
	}
	return nil, false
}
