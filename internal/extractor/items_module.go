package extractor

import (
	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
	"github.com/mvp-joe/ts-extractor/internal/diag"
)

type sourceFileItem struct {
	itemBase
	members []contracts.ItemReference
}

func (it *sourceFileItem) onGather(r *Resolver) {
	it.members = r.ResolveSymbolTable(it.sym.Exports)
}

func (it *sourceFileItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.SourceFileDto{
		BaseItemDto: baseDto(it, r),
		Path:        r.RelativeFileName(it.decl.File.FileName),
		Members:     it.members,
	}
}

// exportItem is `export * from "..."` and `export * as ns from "..."`.
type exportItem struct {
	itemBase
	target  *ast.SourceFile
	members []contracts.ItemReference
}

func (it *exportItem) Name() string {
	if it.decl.Name != "" {
		return it.decl.Name
	}
	return it.itemBase.Name()
}

func (it *exportItem) onGather(r *Resolver) {
	it.target = r.fe.ModuleSourceFile(it.decl)
	if it.target == nil {
		r.warn(it.decl, diag.CodeMissingSourceFile, "Exported source file is not found!")
		it.members = []contracts.ItemReference{}
		return
	}
	it.members = r.ResolveSymbolTable(r.fe.ModuleSymbol(it.target).Exports)
}

func (it *exportItem) onExtract(r *Resolver) contracts.ItemDto {
	dto := &contracts.ExportDto{
		BaseItemDto: baseDto(it, r),
		Members:     it.members,
	}
	if it.target != nil {
		dto.ExportPath = r.RelativeFileName(it.target.FileName)
	}
	return dto
}

type exportSpecifierItem struct {
	itemBase
	apiItems []string
}

func (it *exportSpecifierItem) Name() string { return it.decl.Name }

// onGather follows the specifier to the declaring symbol so a re-export
// points at the same items as the original export.
func (it *exportSpecifierItem) onGather(r *Resolver) {
	target := r.fe.ExportSpecifierTarget(it.decl)
	if target != nil {
		if ref, ok := r.ResolveSymbol(r.aliases.Resolve(target)); ok {
			it.apiItems = ref.Ids
			return
		}
	}
	r.warn(it.decl, diag.CodeMissingExport, "Exported item does not exist.")
}

func (it *exportSpecifierItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.ExportSpecifierDto{BaseItemDto: baseDto(it, r), ApiItems: it.apiItems}
}

type importSpecifierItem struct {
	itemBase
	apiItems []string
}

func (it *importSpecifierItem) Name() string { return it.decl.Name }

func (it *importSpecifierItem) onGather(r *Resolver) {
	// The symbol is the alias itself when it could not be followed.
	if it.sym.IsAlias() {
		return
	}
	if ref, ok := r.ResolveSymbol(it.sym); ok {
		it.apiItems = ref.Ids
	}
}

func (it *importSpecifierItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.ImportSpecifierDto{BaseItemDto: baseDto(it, r), ApiItems: it.apiItems}
}

// namespaceItem covers namespace declarations and namespace imports. Merged
// declarations share one exports table.
type namespaceItem struct {
	itemBase
	members []contracts.ItemReference
}

func (it *namespaceItem) Name() string {
	if it.decl.Shape == ast.ShapeNamespaceImport {
		return it.decl.Name
	}
	return it.itemBase.Name()
}

func (it *namespaceItem) onGather(r *Resolver) {
	if it.sym.IsAlias() {
		it.members = []contracts.ItemReference{}
		return
	}
	it.members = r.ResolveSymbolTable(it.sym.Exports)
}

func (it *namespaceItem) onExtract(r *Resolver) contracts.ItemDto {
	return &contracts.NamespaceDto{BaseItemDto: baseDto(it, r), Members: it.members}
}
