package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/mvp-joe/ts-extractor/internal/ast"
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

// IDStrategy selects how item IDs are minted.
type IDStrategy string

const (
	// IDSequential mints "<kind>-<n>" from a per-run counter.
	IDSequential IDStrategy = "sequential"
	// IDHash mints "<kind>-<xxhash64>" of the declaration position, stable
	// across runs over unchanged sources.
	IDHash IDStrategy = "hash"
	// IDUUID mints a name-based UUIDv5 of the declaration position.
	IDUUID IDStrategy = "uuid"
)

// ParseIDStrategy validates s.
func ParseIDStrategy(s string) (IDStrategy, bool) {
	switch IDStrategy(s) {
	case IDSequential, IDHash, IDUUID:
		return IDStrategy(s), true
	}
	return "", false
}

// Registry maps declarations to item IDs and IDs to finished DTOs. An ID is
// minted once per declaration and a DTO is stored once per ID.
type Registry struct {
	strategy   IDStrategy
	projectDir string

	ids     map[*ast.Declaration]string
	taken   map[string]bool
	dtos    map[string]contracts.ItemDto
	order   []string
	counter int
}

// NewRegistry creates an empty registry.
func NewRegistry(strategy IDStrategy, projectDir string) *Registry {
	if strategy == "" {
		strategy = IDSequential
	}
	return &Registry{
		strategy:   strategy,
		projectDir: projectDir,
		ids:        make(map[*ast.Declaration]string),
		taken:      make(map[string]bool),
		dtos:       make(map[string]contracts.ItemDto),
	}
}

// Register returns the ID of d, minting one on first sight.
func (r *Registry) Register(d *ast.Declaration, kind contracts.ApiKind) string {
	if id, ok := r.ids[d]; ok {
		return id
	}
	id := r.mint(d, kind)
	r.ids[d] = id
	r.taken[id] = true
	r.order = append(r.order, id)
	return id
}

func (r *Registry) mint(d *ast.Declaration, kind contracts.ApiKind) string {
	var id string
	switch r.strategy {
	case IDHash:
		id = fmt.Sprintf("%s-%016x", kind, xxhash.Sum64String(r.declarationKey(d)))
	case IDUUID:
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(r.declarationKey(d))).String()
	default:
		id = fmt.Sprintf("%s-%d", kind, r.counter)
		r.counter++
	}

	if !r.taken[id] {
		return id
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !r.taken[candidate] {
			return candidate
		}
	}
}

// declarationKey identifies a declaration by position, relative to the
// project so keys survive moving the checkout.
func (r *Registry) declarationKey(d *ast.Declaration) string {
	file := ""
	if d.File != nil {
		file = d.File.FileName
		if r.projectDir != "" {
			if rel, err := filepath.Rel(filepath.FromSlash(r.projectDir), filepath.FromSlash(file)); err == nil {
				file = filepath.ToSlash(rel)
			}
		}
	}
	return strings.Join([]string{file, fmt.Sprint(d.Pos), string(d.Shape), d.Name}, ":")
}

// HasDeclaration reports whether d already has an ID.
func (r *Registry) HasDeclaration(d *ast.Declaration) bool {
	_, ok := r.ids[d]
	return ok
}

// DeclarationID returns the ID of d.
func (r *Registry) DeclarationID(d *ast.Declaration) (string, bool) {
	id, ok := r.ids[d]
	return id, ok
}

// Store records the DTO of a registered ID. It returns false if the ID is
// unknown or already has a DTO; the first DTO wins.
func (r *Registry) Store(id string, dto contracts.ItemDto) bool {
	if !r.taken[id] {
		return false
	}
	if _, ok := r.dtos[id]; ok {
		return false
	}
	r.dtos[id] = dto
	return true
}

// Get returns the stored DTO of id.
func (r *Registry) Get(id string) (contracts.ItemDto, bool) {
	dto, ok := r.dtos[id]
	return dto, ok
}

// Items returns every stored DTO keyed by ID.
func (r *Registry) Items() map[string]contracts.ItemDto {
	out := make(map[string]contracts.ItemDto, len(r.dtos))
	for id, dto := range r.dtos {
		out[id] = dto
	}
	return out
}

// IDs returns every minted ID in mint order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of stored DTOs.
func (r *Registry) Len() int {
	return len(r.dtos)
}
