package ast

// Internal symbol names for declarations without an identifier.
const (
	ExportStarName  = "__export"
	ConstructorName = "__constructor"
	IndexName       = "__index"
	CallName        = "__call"
	NewName         = "__new"
	TypeName        = "__type"
	ObjectName      = "__object"
	FunctionName    = "__function"
	DefaultName     = "default"
)

// SymbolFlags describes a symbol.
type SymbolFlags uint32

const (
	SymbolAlias SymbolFlags = 1 << iota
	SymbolModule
	SymbolExportStar
)

// Symbol groups every declaration that denotes one name in one scope.
type Symbol struct {
	Name         string
	Flags        SymbolFlags
	Declarations []*Declaration

	// Exports holds the exported names of modules and namespaces, shared by
	// all merged declarations.
	Exports *SymbolTable

	// Members holds the members of classes, interfaces, enums and literals,
	// shared by all merged declarations.
	Members *SymbolTable
}

// NewSymbol creates a symbol without declarations.
func NewSymbol(name string, flags SymbolFlags) *Symbol {
	return &Symbol{Name: name, Flags: flags}
}

// IsAlias reports whether the symbol is an import/export indirection.
func (s *Symbol) IsAlias() bool {
	return s.Flags&SymbolAlias != 0
}

// IsModule reports whether the symbol belongs to a source file.
func (s *Symbol) IsModule() bool {
	return s.Flags&SymbolModule != 0
}

func (s *Symbol) addDeclaration(d *Declaration) {
	d.symbol = s
	s.Declarations = append(s.Declarations, d)
}

// SymbolTable is an insertion-ordered name to symbol map.
type SymbolTable struct {
	names  []string
	byName map[string]*Symbol
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

// Get returns the symbol bound to name, or nil.
func (t *SymbolTable) Get(name string) *Symbol {
	if t == nil {
		return nil
	}
	return t.byName[name]
}

// Set binds name to s, keeping the original position on rebinding.
func (t *SymbolTable) Set(name string, s *Symbol) {
	if _, ok := t.byName[name]; !ok {
		t.names = append(t.names, name)
	}
	t.byName[name] = s
}

// Len returns the number of names.
func (t *SymbolTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns the names in insertion order.
func (t *SymbolTable) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}

// Symbols returns the symbols in insertion order.
func (t *SymbolTable) Symbols() []*Symbol {
	if t == nil {
		return nil
	}
	out := make([]*Symbol, 0, len(t.names))
	for _, name := range t.names {
		out = append(out, t.byName[name])
	}
	return out
}

func (t *SymbolTable) getOrCreate(name string, flags SymbolFlags) *Symbol {
	if s := t.byName[name]; s != nil {
		return s
	}
	s := NewSymbol(name, flags)
	t.Set(name, s)
	return s
}
