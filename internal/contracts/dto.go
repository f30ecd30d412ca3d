package contracts

import "strings"

// ItemReference is one named binding to one or more item IDs. Overloads and
// merged declarations share a single reference.
type ItemReference struct {
	Alias string   `json:"Alias"`
	Ids   []string `json:"Ids"`
}

// LocationDto is the source position of an item.
type LocationDto struct {
	FileName          string `json:"FileName"`
	Line              int    `json:"Line"`      // 0-based
	Character         int    `json:"Character"` // 0-based, in runes
	IsExternalPackage bool   `json:"IsExternalPackage"`
}

// JSDocTagDto is one block tag of a documentation comment.
type JSDocTagDto struct {
	Name string `json:"Name"`
	Text string `json:"Text,omitempty"`
}

// DecoratorDto is a decorator applied to a declaration.
type DecoratorDto struct {
	Name      string `json:"Name"`
	Arguments string `json:"Arguments,omitempty"`
}

// MetadataDto carries documentation attached to a declaration.
type MetadataDto struct {
	DocumentationComment string         `json:"DocumentationComment"`
	JSDocTags            []JSDocTagDto  `json:"JSDocTags"`
	Decorators           []DecoratorDto `json:"Decorators,omitempty"`
}

// TypeDto is a flattened type annotation. Named types point at items by
// reference; they are never inlined.
type TypeDto struct {
	ApiTypeKind ApiTypeKind    `json:"ApiTypeKind"`
	Text        string         `json:"Text"`
	Reference   *ItemReference `json:"ReferenceId,omitempty"`
	Generics    []*TypeDto     `json:"Generics,omitempty"`
	Types       []*TypeDto     `json:"Types,omitempty"`
}

// ItemDto is implemented by every per-kind DTO.
type ItemDto interface {
	Base() *BaseItemDto
}

// BaseItemDto holds the fields shared by every DTO.
type BaseItemDto struct {
	ApiKind  ApiKind      `json:"ApiKind"`
	Name     string       `json:"Name"`
	ParentId string       `json:"ParentId,omitempty" ref:"parent"`
	Metadata MetadataDto  `json:"Metadata"`
	Location *LocationDto `json:"Location,omitempty"`
}

// Base returns b itself.
func (b *BaseItemDto) Base() *BaseItemDto {
	return b
}

// IsPrivate reports whether dto describes a private class member, either by
// access modifier or by a #name.
func IsPrivate(dto ItemDto) bool {
	if dto == nil {
		return false
	}
	var access AccessModifier
	switch v := dto.(type) {
	case *ClassPropertyDto:
		access = v.AccessModifier
	case *ClassMethodDto:
		access = v.AccessModifier
	case *ClassConstructorDto:
		access = v.AccessModifier
	case *GetAccessorDto:
		access = v.AccessModifier
	case *SetAccessorDto:
		access = v.AccessModifier
	default:
		return false
	}
	return access == AccessPrivate || strings.HasPrefix(dto.Base().Name, "#")
}
