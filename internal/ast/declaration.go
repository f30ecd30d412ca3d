package ast

import "fmt"

// Shape is the syntactic discriminant of a declaration.
type Shape string

const (
	ShapeSourceFile                  Shape = "SourceFile"
	ShapeExportDeclaration           Shape = "ExportDeclaration"
	ShapeExportSpecifier             Shape = "ExportSpecifier"
	ShapeExportAssignment            Shape = "ExportAssignment"
	ShapeImportSpecifier             Shape = "ImportSpecifier"
	ShapeImportClause                Shape = "ImportClause"
	ShapeNamespaceImport             Shape = "NamespaceImport"
	ShapeVariableDeclaration         Shape = "VariableDeclaration"
	ShapeModuleDeclaration           Shape = "ModuleDeclaration"
	ShapeFunctionDeclaration         Shape = "FunctionDeclaration"
	ShapeEnumDeclaration             Shape = "EnumDeclaration"
	ShapeEnumMember                  Shape = "EnumMember"
	ShapeInterfaceDeclaration        Shape = "InterfaceDeclaration"
	ShapePropertySignature           Shape = "PropertySignature"
	ShapePropertyAssignment          Shape = "PropertyAssignment"
	ShapeShorthandPropertyAssignment Shape = "ShorthandPropertyAssignment"
	ShapeMethodSignature             Shape = "MethodSignature"
	ShapeParameter                   Shape = "Parameter"
	ShapeTypeAliasDeclaration        Shape = "TypeAliasDeclaration"
	ShapeClassDeclaration            Shape = "ClassDeclaration"
	ShapeConstructor                 Shape = "Constructor"
	ShapePropertyDeclaration         Shape = "PropertyDeclaration"
	ShapeMethodDeclaration           Shape = "MethodDeclaration"
	ShapeGetAccessor                 Shape = "GetAccessor"
	ShapeSetAccessor                 Shape = "SetAccessor"
	ShapeIndexSignature              Shape = "IndexSignature"
	ShapeCallSignature               Shape = "CallSignature"
	ShapeConstructSignature          Shape = "ConstructSignature"
	ShapeConstructorType             Shape = "ConstructorType"
	ShapeTypeParameter               Shape = "TypeParameter"
	ShapeTypeLiteral                 Shape = "TypeLiteral"
	ShapeObjectLiteral               Shape = "ObjectLiteralExpression"
	ShapeFunctionType                Shape = "FunctionType"
	ShapeArrowFunction               Shape = "ArrowFunction"
	ShapeFunctionExpression          Shape = "FunctionExpression"
	ShapeMappedType                  Shape = "MappedType"
)

// ModifierFlags is a set of declaration modifiers.
type ModifierFlags uint32

const (
	ModifierExport ModifierFlags = 1 << iota
	ModifierDefault
	ModifierDeclare
	ModifierPublic
	ModifierPrivate
	ModifierProtected
	ModifierStatic
	ModifierReadonly
	ModifierAbstract
	ModifierAsync
	ModifierConst
)

// Has reports whether all flags in f are set.
func (m ModifierFlags) Has(f ModifierFlags) bool {
	return m&f == f
}

// Decorator is a decorator applied to a declaration.
type Decorator struct {
	Name      string
	Arguments string
}

// Declaration is a node introducing a named (or anonymous) entity.
// Declarations are compared by pointer identity.
type Declaration struct {
	Shape Shape
	Name  string

	// PropertyName is the original name of a renamed import/export specifier
	// ("a" in `export { a as b }`).
	PropertyName string

	File   *SourceFile
	Pos    int // byte offset of the first token
	End    int // byte offset past the last token
	Parent *Declaration

	Modifiers  ModifierFlags
	Optional   bool
	Rest       bool
	HasBody    bool
	Doc        string // raw leading JSDoc comment
	Decorators []Decorator

	// Type is the annotation of a variable, property or parameter, the
	// return type of a callable, or the aliased type of a type alias.
	Type         *TypeNode
	Initializer  string
	VariableKind string // const, let or var

	// ModuleSpecifier is the unquoted "from" target of import and export
	// declarations.
	ModuleSpecifier string

	Members        []*Declaration
	Parameters     []*Declaration
	TypeParameters []*Declaration
	Constraint     *TypeNode
	Default        *TypeNode
	Extends        []*TypeNode
	Implements     []*TypeNode

	// Value is the declaration produced by an initializer such as an object
	// literal or an arrow function.
	Value *Declaration

	symbol *Symbol
	locals *SymbolTable
}

// NewDeclaration creates a detached declaration.
func NewDeclaration(shape Shape, name string, pos, end int) *Declaration {
	return &Declaration{Shape: shape, Name: name, Pos: pos, End: end}
}

// Symbol returns the bound symbol, or nil before binding or for
// declarations that do not introduce a name.
func (d *Declaration) Symbol() *Symbol {
	return d.symbol
}

// Locals returns the parameter and type parameter scope of the declaration.
func (d *Declaration) Locals() *SymbolTable {
	return d.locals
}

// AddMember appends a member and adopts it.
func (d *Declaration) AddMember(m *Declaration) *Declaration {
	d.adopt(m)
	d.Members = append(d.Members, m)
	return m
}

// AddParameter appends a parameter and adopts it.
func (d *Declaration) AddParameter(p *Declaration) *Declaration {
	d.adopt(p)
	d.Parameters = append(d.Parameters, p)
	return p
}

// AddTypeParameter appends a type parameter and adopts it.
func (d *Declaration) AddTypeParameter(p *Declaration) *Declaration {
	d.adopt(p)
	d.TypeParameters = append(d.TypeParameters, p)
	return p
}

// SetValue attaches an initializer declaration.
func (d *Declaration) SetValue(v *Declaration) *Declaration {
	d.adopt(v)
	d.Value = v
	return v
}

// SetType attaches an annotation and adopts its inline declarations.
func (d *Declaration) SetType(t *TypeNode) *TypeNode {
	d.Type = d.AdoptType(t)
	return t
}

// AdoptType makes d the lexical scope of t and the parent of every inline
// declaration inside it.
func (d *Declaration) AdoptType(t *TypeNode) *TypeNode {
	if t == nil {
		return nil
	}
	t.Scope = d
	if t.Decl != nil {
		d.adopt(t.Decl)
	}
	for _, arg := range t.Args {
		d.AdoptType(arg)
	}
	return t
}

func (d *Declaration) adopt(child *Declaration) {
	child.Parent = d
	if child.File == nil && d.File != nil {
		child.setFile(d.File)
	}
}

func (d *Declaration) setFile(f *SourceFile) {
	d.File = f
	for _, m := range d.children() {
		if m.File == nil {
			m.setFile(f)
		}
	}
}

// children returns every declaration directly owned by d, including inline
// declarations reachable through its type annotations.
func (d *Declaration) children() []*Declaration {
	var out []*Declaration
	out = append(out, d.TypeParameters...)
	out = append(out, d.Parameters...)
	out = append(out, d.Members...)
	if d.Value != nil {
		out = append(out, d.Value)
	}
	for _, t := range d.typeNodes() {
		out = append(out, t.inlineDeclarations()...)
	}
	return out
}

func (d *Declaration) typeNodes() []*TypeNode {
	var out []*TypeNode
	for _, t := range []*TypeNode{d.Type, d.Constraint, d.Default} {
		if t != nil {
			out = append(out, t)
		}
	}
	out = append(out, d.Extends...)
	out = append(out, d.Implements...)
	return out
}

// IsCallable reports whether the declaration has a parameter list.
func (d *Declaration) IsCallable() bool {
	switch d.Shape {
	case ShapeFunctionDeclaration, ShapeMethodSignature, ShapeMethodDeclaration,
		ShapeConstructor, ShapeCallSignature, ShapeConstructSignature,
		ShapeConstructorType, ShapeFunctionType, ShapeArrowFunction,
		ShapeFunctionExpression, ShapeGetAccessor, ShapeSetAccessor:
		return true
	}
	return false
}

func (d *Declaration) String() string {
	if d.Name == "" {
		return string(d.Shape)
	}
	return fmt.Sprintf("%s %s", d.Shape, d.Name)
}
